package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"candidature-api/internal/builder"
	"candidature-api/internal/client"
	"candidature-api/internal/domain"
	"candidature-api/internal/dto"
	"candidature-api/internal/repository"
	"candidature-api/internal/response"
	"candidature-api/internal/session"
)

type draftFixture struct {
	store        repository.DraftStore
	candidatures *MockCandidatureRepository
	templates    *MockTemplateRepository
	service      *draftServiceImpl
	sess         *session.Session
}

func newDraftFixture() *draftFixture {
	f := &draftFixture{
		store:        repository.NewMemoryDraftStore(time.Hour),
		candidatures: &MockCandidatureRepository{},
		templates:    &MockTemplateRepository{},
		sess:         &session.Session{UserID: uuid.New(), Role: session.RoleAdmin},
	}
	candidatureSvc := NewCandidatureService(f.candidatures, f.templates, &MockAttachmentRepository{}, client.NewMockS3Client(), nil, zap.NewNop())
	svc := NewDraftService(f.store, f.candidatures, f.templates, candidatureSvc, testMetrics(), zap.NewNop())
	f.service = svc.(*draftServiceImpl)

	n := 0
	f.service.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return f
}

func (f *draftFixture) create(t *testing.T) *builder.Draft {
	t.Helper()
	d, err := f.service.CreateDraft(context.Background(), f.sess, &dto.CreateDraftRequest{})
	require.NoError(t, err)
	return d
}

func (f *draftFixture) add(t *testing.T, draftID string, ft domain.FieldType) domain.Field {
	t.Helper()
	component := builder.PaletteComponent{Type: ft}
	if ft.HasOptions() {
		component.Options = []builder.OptionSeed{{}, {}}
	}
	d, err := f.service.AddField(context.Background(), f.sess, draftID, &dto.AddFieldRequest{Component: &component})
	require.NoError(t, err)
	return d.Fields[len(d.Fields)-1]
}

func (f *draftFixture) stored(t *testing.T, draftID string) *builder.Draft {
	t.Helper()
	d, err := f.store.Get(context.Background(), draftID)
	require.NoError(t, err)
	return d
}

func TestCreateDraft_FromTemplate(t *testing.T) {
	f := newDraftFixture()
	tplID := uuid.New()
	f.templates.FindTemplateByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.CandidatureTemplate, error) {
		return &domain.CandidatureTemplate{
			BaseModel: domain.BaseModel{ID: tplID},
			Title:     domain.NewBilingual("Incubation", "احتضان"),
			Fields: []domain.TemplateField{
				{BaseModel: domain.BaseModel{ID: uuid.New()}, DisplayOrder: 1, Type: domain.FieldTypeEmail, Label: domain.NewBilingual("Email", "البريد"), Name: "email"},
				{BaseModel: domain.BaseModel{ID: uuid.New()}, DisplayOrder: 0, Type: domain.FieldTypeText, Label: domain.NewBilingual("Nom", "الاسم"), Name: "name"},
			},
		}, nil
	}

	d, err := f.service.CreateDraft(context.Background(), f.sess, &dto.CreateDraftRequest{TemplateID: &tplID})
	require.NoError(t, err)
	require.Len(t, d.Fields, 2)
	assert.Equal(t, "name", d.Fields[0].Name)
	assert.Equal(t, "email", d.Fields[1].Name)
	assert.True(t, d.Fields[0].IsTemplate)
	assert.Equal(t, "Incubation", d.Meta.Title.FR)
	assert.Equal(t, f.sess.UserID.String(), d.OwnerID)
	assert.False(t, d.UpdatedAt.IsZero())
}

func TestCreateDraft_Exclusive(t *testing.T) {
	f := newDraftFixture()
	a, b := uuid.New(), uuid.New()
	_, err := f.service.CreateDraft(context.Background(), f.sess, &dto.CreateDraftRequest{TemplateID: &a, CandidatureID: &b})
	requireAppError(t, err, response.ErrCodeValidation)
}

func TestGetDraft_OtherOwner(t *testing.T) {
	f := newDraftFixture()
	d := f.create(t)

	other := &session.Session{UserID: uuid.New(), Role: session.RoleAdmin}
	_, err := f.service.GetDraft(context.Background(), other, d.ID)
	requireAppError(t, err, response.ErrCodeNotFound)

	_, err = f.service.GetDraft(context.Background(), f.sess, "missing")
	requireAppError(t, err, response.ErrCodeNotFound)
}

func TestDraft_FieldLifecycle(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()
	d := f.create(t)

	text := f.add(t, d.ID, domain.FieldTypeText)
	radio := f.add(t, d.ID, domain.FieldTypeRadio)
	assert.Len(t, radio.Options, 2)
	assert.Equal(t, radio.ID, f.stored(t, d.ID).SelectedID)

	name := "full_name"
	required := true
	updated, err := f.service.UpdateField(ctx, f.sess, d.ID, text.ID, builder.FieldPatch{Name: &name, Required: &required})
	require.NoError(t, err)
	assert.Equal(t, "full_name", updated.Fields[0].Name)
	assert.True(t, updated.Fields[0].Required)

	withOption, err := f.service.AddOption(ctx, f.sess, d.ID, radio.ID)
	require.NoError(t, err)
	opts := withOption.Fields[1].Options
	require.Len(t, opts, 3)

	label := "Autre"
	patched, err := f.service.UpdateOption(ctx, f.sess, d.ID, radio.ID, opts[2].ID, builder.OptionPatch{Label: &builder.TextPatch{FR: &label}})
	require.NoError(t, err)
	assert.Equal(t, "Autre", patched.Fields[1].Options[2].Label.FR)

	trimmed, err := f.service.RemoveOption(ctx, f.sess, d.ID, radio.ID, opts[0].ID)
	require.NoError(t, err)
	assert.Len(t, trimmed.Fields[1].Options, 2)

	reordered, err := f.service.ReorderFields(ctx, f.sess, d.ID, []string{radio.ID, text.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{radio.ID, text.ID}, reordered.IDs())

	removed, err := f.service.RemoveField(ctx, f.sess, d.ID, radio.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{text.ID}, removed.IDs())
	assert.Empty(t, removed.SelectedID)

	assert.Equal(t, []string{text.ID}, f.stored(t, d.ID).IDs())
}

func TestDraft_UnknownFieldLeavesDraftUnchanged(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()
	d := f.create(t)
	f.add(t, d.ID, domain.FieldTypeText)
	before, err := json.Marshal(f.stored(t, d.ID))
	require.NoError(t, err)

	required := true
	_, err = f.service.UpdateField(ctx, f.sess, d.ID, "nope", builder.FieldPatch{Required: &required})
	appErr := requireAppError(t, err, response.ErrCodeFieldNotFound)
	assert.Equal(t, "nope", appErr.Details)

	_, err = f.service.RemoveField(ctx, f.sess, d.ID, "nope")
	requireAppError(t, err, response.ErrCodeFieldNotFound)
	_, err = f.service.AddOption(ctx, f.sess, d.ID, "nope")
	requireAppError(t, err, response.ErrCodeFieldNotFound)
	_, err = f.service.Select(ctx, f.sess, d.ID, "nope")
	requireAppError(t, err, response.ErrCodeFieldNotFound)

	after, err := json.Marshal(f.stored(t, d.ID))
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestDraft_InvalidReorder(t *testing.T) {
	f := newDraftFixture()
	d := f.create(t)
	a := f.add(t, d.ID, domain.FieldTypeText)
	f.add(t, d.ID, domain.FieldTypeEmail)

	_, err := f.service.ReorderFields(context.Background(), f.sess, d.ID, []string{a.ID, a.ID})
	requireAppError(t, err, response.ErrCodeValidation)
}

func TestDraft_OptionErrors(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()
	d := f.create(t)
	text := f.add(t, d.ID, domain.FieldTypeText)
	radio := f.add(t, d.ID, domain.FieldTypeRadio)

	_, err := f.service.AddOption(ctx, f.sess, d.ID, text.ID)
	requireAppError(t, err, response.ErrCodeValidation)

	_, err = f.service.RemoveOption(ctx, f.sess, d.ID, radio.ID, "missing")
	requireAppError(t, err, response.ErrCodeNotFound)
}

func TestDraft_RemoveLastOptionIsRefused(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()
	d := f.create(t)
	radio := f.add(t, d.ID, domain.FieldTypeRadio)

	current := f.stored(t, d.ID)
	opts := current.Fields[0].Options
	require.NotEmpty(t, opts)
	for _, o := range opts[1:] {
		_, err := f.service.RemoveOption(ctx, f.sess, d.ID, radio.ID, o.ID)
		require.NoError(t, err)
	}

	_, err := f.service.RemoveOption(ctx, f.sess, d.ID, radio.ID, opts[0].ID)
	appErr := requireAppError(t, err, response.ErrCodeValidation)
	assert.Equal(t, "a choice field keeps at least one option", appErr.Message)
	require.Len(t, f.stored(t, d.ID).Fields[0].Options, 1)
}

func TestDraft_TemplateFieldOptionsAreLocked(t *testing.T) {
	f := newDraftFixture()
	tfID := uuid.New()
	f.templates.FindFieldByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.TemplateField, error) {
		return &domain.TemplateField{
			BaseModel: domain.BaseModel{ID: tfID},
			Type:      domain.FieldTypeSelect,
			Label:     domain.NewBilingual("Gouvernorat", "الولاية"),
			Name:      "governorate",
			Options: []domain.TemplateOption{
				{ID: "o-sfax", Label: domain.NewBilingual("Sfax", "صفاقس"), Value: "sfax"},
			},
		}, nil
	}
	d := f.create(t)

	added, err := f.service.AddField(context.Background(), f.sess, d.ID, &dto.AddFieldRequest{TemplateFieldID: &tfID})
	require.NoError(t, err)
	field := added.Fields[0]
	require.True(t, field.IsTemplate)

	_, err = f.service.AddOption(context.Background(), f.sess, d.ID, field.ID)
	requireAppError(t, err, response.ErrCodeForbidden)

	name := "renamed"
	required := true
	updated, err := f.service.UpdateField(context.Background(), f.sess, d.ID, field.ID, builder.FieldPatch{Name: &name, Required: &required})
	require.NoError(t, err)
	assert.Equal(t, "governorate", updated.Fields[0].Name)
	assert.True(t, updated.Fields[0].Required)
}

func TestAddField_RequestValidation(t *testing.T) {
	f := newDraftFixture()
	d := f.create(t)

	_, err := f.service.AddField(context.Background(), f.sess, d.ID, &dto.AddFieldRequest{})
	requireAppError(t, err, response.ErrCodeValidation)

	_, err = f.service.AddField(context.Background(), f.sess, d.ID, &dto.AddFieldRequest{
		Component: &builder.PaletteComponent{Type: "slider"},
	})
	requireAppError(t, err, response.ErrCodeValidation)

	index := 0
	f.add(t, d.ID, domain.FieldTypeText)
	inserted, err := f.service.AddField(context.Background(), f.sess, d.ID, &dto.AddFieldRequest{
		Component: &builder.PaletteComponent{Type: domain.FieldTypeDivider},
		Index:     &index,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FieldTypeDivider, inserted.Fields[0].Type)
}

func TestSelect_ClearsWithEmptyID(t *testing.T) {
	f := newDraftFixture()
	d := f.create(t)
	a := f.add(t, d.ID, domain.FieldTypeText)
	f.add(t, d.ID, domain.FieldTypeEmail)

	selected, err := f.service.Select(context.Background(), f.sess, d.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, selected.SelectedID)

	cleared, err := f.service.Select(context.Background(), f.sess, d.ID, "")
	require.NoError(t, err)
	assert.Empty(t, cleared.SelectedID)
}

func TestDrop(t *testing.T) {
	f := newDraftFixture()
	ctx := context.Background()
	d := f.create(t)
	a := f.add(t, d.ID, domain.FieldTypeText)
	b := f.add(t, d.ID, domain.FieldTypeEmail)
	c := f.add(t, d.ID, domain.FieldTypeNumber)

	resp, err := f.service.Drop(ctx, f.sess, d.ID, &dto.DropRequest{Data: "", SourceIndex: 0, Row: 2})
	require.NoError(t, err)
	assert.True(t, resp.Result.Changed)
	assert.Equal(t, builder.PayloadReorder, resp.Result.Kind)
	assert.Equal(t, []string{b.ID, c.ID, a.ID}, resp.Draft.IDs())

	resp, err = f.service.Drop(ctx, f.sess, d.ID, &dto.DropRequest{
		Data: `{"component":{"type":"date"},"isTemplate":false}`,
		Row:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, builder.PayloadNewComponent, resp.Result.Kind)
	require.NotNil(t, resp.Result.Field)
	assert.Equal(t, domain.FieldTypeDate, resp.Draft.Fields[1].Type)
	assert.Len(t, f.stored(t, d.ID).Fields, 4)

	resp, err = f.service.Drop(ctx, f.sess, d.ID, &dto.DropRequest{Data: "", SourceIndex: 9, Row: 0})
	require.NoError(t, err)
	assert.False(t, resp.Result.Changed)
}

func TestLoadSource(t *testing.T) {
	f := newDraftFixture()
	source := validCandidature()
	f.candidatures.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Candidature, error) {
		return source, nil
	}
	d := f.create(t)
	f.add(t, d.ID, domain.FieldTypeEmail)

	loaded, err := f.service.LoadSource(context.Background(), f.sess, d.ID, source.ID)
	require.NoError(t, err)
	assert.Equal(t, source.ID.String(), loaded.SourceID)
	assert.Equal(t, []string{"f1"}, loaded.IDs())
	assert.Equal(t, source.Title, loaded.Meta.Title)
	assert.Empty(t, f.stored(t, d.ID).Load.Pending)
}

func TestLoadSource_StaleResultIsDiscarded(t *testing.T) {
	f := newDraftFixture()
	d := f.create(t)
	f.add(t, d.ID, domain.FieldTypeEmail)

	source := validCandidature()
	f.candidatures.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Candidature, error) {
		// runs on a fetch goroutine: a second load lands meanwhile
		current, err := f.store.Get(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		current.BeginLoad("newer")
		return source, f.store.Save(ctx, current)
	}

	result, err := f.service.LoadSource(context.Background(), f.sess, d.ID, source.ID)
	require.NoError(t, err)
	assert.Empty(t, result.SourceID)
	assert.Len(t, result.Fields, 1)
	assert.Equal(t, domain.FieldTypeEmail, result.Fields[0].Type)
	assert.Equal(t, "newer", f.stored(t, d.ID).Load.Pending)
}

func TestLoadSource_NotFound(t *testing.T) {
	f := newDraftFixture()
	d := f.create(t)
	_, err := f.service.LoadSource(context.Background(), f.sess, d.ID, uuid.New())
	requireAppError(t, err, response.ErrCodeNotFound)
}

func metadataFor(t *testing.T, f *draftFixture, draftID string) {
	t.Helper()
	title, region, regionAR := "Appel", "Sfax", "صفاقس"
	_, err := f.service.UpdateMetadata(context.Background(), f.sess, draftID, &dto.MetadataRequest{
		Title:  &builder.TextPatch{FR: &title},
		Region: &builder.TextPatch{FR: &region, AR: &regionAR},
	})
	require.NoError(t, err)
}

func TestUpdateMetadata_ClearFlags(t *testing.T) {
	f := newDraftFixture()
	d := f.create(t)
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	_, err := f.service.UpdateMetadata(context.Background(), f.sess, d.ID, &dto.MetadataRequest{StartDate: &start})
	require.NoError(t, err)
	require.NotNil(t, f.stored(t, d.ID).Meta.StartDate)

	_, err = f.service.UpdateMetadata(context.Background(), f.sess, d.ID, &dto.MetadataRequest{StartDate: &start, ClearStartDate: true})
	appErr := requireAppError(t, err, response.ErrCodeValidation)
	assert.Equal(t, []string{"startDate cannot be set and cleared at once"}, appErr.Messages)
	require.NotNil(t, f.stored(t, d.ID).Meta.StartDate)

	result, err := f.service.UpdateMetadata(context.Background(), f.sess, d.ID, &dto.MetadataRequest{ClearStartDate: true})
	require.NoError(t, err)
	assert.Nil(t, result.Meta.StartDate)
	assert.Nil(t, f.stored(t, d.ID).Meta.StartDate)
}

func TestSave_CreatesThenUpdates(t *testing.T) {
	f := newDraftFixture()
	d := f.create(t)
	metadataFor(t, f, d.ID)
	f.add(t, d.ID, domain.FieldTypeText)

	var created *domain.Candidature
	f.candidatures.CreateFunc = func(ctx context.Context, c *domain.Candidature) error {
		c.ID = uuid.New()
		created = c
		return nil
	}
	saved, err := f.service.Save(context.Background(), f.sess, d.ID)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, f.sess.UserID, saved.CreatedBy)
	assert.Equal(t, "Appel", saved.Title.FR)
	assert.Equal(t, saved.ID.String(), f.stored(t, d.ID).SourceID)

	f.candidatures.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Candidature, error) {
		require.Equal(t, created.ID, id)
		return created, nil
	}
	updatedCalls := 0
	f.candidatures.UpdateFunc = func(ctx context.Context, c *domain.Candidature) error {
		updatedCalls++
		return nil
	}
	f.add(t, d.ID, domain.FieldTypeEmail)

	again, err := f.service.Save(context.Background(), f.sess, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updatedCalls)
	assert.Equal(t, created.ID, again.ID)
	assert.Len(t, again.Fields, 2)
}

func TestSave_InvalidDraftKeepsDraft(t *testing.T) {
	f := newDraftFixture()
	d := f.create(t)
	f.add(t, d.ID, domain.FieldTypeText)

	_, err := f.service.Save(context.Background(), f.sess, d.ID)
	requireAppError(t, err, response.ErrCodeValidation)

	stored := f.stored(t, d.ID)
	assert.Empty(t, stored.SourceID)
	assert.Len(t, stored.Fields, 1)
}

func TestDeleteDraft(t *testing.T) {
	f := newDraftFixture()
	d := f.create(t)
	require.NoError(t, f.service.DeleteDraft(context.Background(), f.sess, d.ID))

	_, err := f.store.Get(context.Background(), d.ID)
	assert.ErrorIs(t, err, repository.ErrDraftNotFound)
}

func TestPalette(t *testing.T) {
	f := newDraftFixture()
	f.templates.FindStandaloneFieldsFunc = func(ctx context.Context) ([]*domain.TemplateField, error) {
		return []*domain.TemplateField{{Name: "cin"}}, nil
	}
	palette, err := f.service.Palette(context.Background())
	require.NoError(t, err)
	assert.Len(t, palette.Components, len(domain.FieldTypes))
	assert.Len(t, palette.TemplateFields, 1)
}
