package builder

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"candidature-api/internal/domain"
)

// ErrNotPermutation is returned by Reorder when the order is not a
// permutation of the draft's field ids.
var ErrNotPermutation = errors.New("order is not a permutation of the current fields")

// Metadata is the non-field part of a candidature being edited.
type Metadata struct {
	Title             domain.Bilingual   `json:"title"`
	Description       domain.Bilingual   `json:"description"`
	EventLocation     domain.Bilingual   `json:"eventLocation"`
	Region            domain.Bilingual   `json:"region"`
	StartDate         *time.Time         `json:"startDate,omitempty"`
	EndDate           *time.Time         `json:"endDate,omitempty"`
	EventDates        []domain.EventDate `json:"eventDates"`
	Prizes            []domain.Prize     `json:"prizes"`
	ImageURL          string             `json:"imageUrl,omitempty"`
	ImageAttachmentID *uuid.UUID         `json:"imageAttachmentId,omitempty"`
}

// LoadState records the latest requested source of a draft.
type LoadState struct {
	Seq     uint64 `json:"seq"`
	Pending string `json:"pending,omitempty"`
}

// LoadTicket identifies one load request; see BeginLoad.
type LoadTicket struct {
	Seq      uint64
	SourceID string
}

// Draft is an unsaved candidature: metadata, ordered fields and the current selection.
type Draft struct {
	ID         string         `json:"id"`
	OwnerID    string         `json:"ownerId"`
	SourceID   string         `json:"sourceId,omitempty"`
	Meta       Metadata       `json:"metadata"`
	Fields     []domain.Field `json:"fields"`
	SelectedID string         `json:"selectedFieldId,omitempty"`
	Load       LoadState      `json:"load"`
	UpdatedAt  time.Time      `json:"updatedAt"`

	ids IDGenerator
}

// NewDraft returns an empty draft owned by ownerID.
func NewDraft(id, ownerID string) *Draft {
	return &Draft{ID: id, OwnerID: ownerID, Fields: []domain.Field{}}
}

// SetIDGenerator replaces the generator used for new field and option ids.
func (d *Draft) SetIDGenerator(gen IDGenerator) {
	d.ids = gen
}

func (d *Draft) factory() *Factory {
	return NewFactory(d.ids)
}

func (d *Draft) indexOf(fieldID string) int {
	for i := range d.Fields {
		if d.Fields[i].ID == fieldID {
			return i
		}
	}
	return -1
}

// Field returns the field with the given id.
func (d *Draft) Field(fieldID string) (domain.Field, bool) {
	if i := d.indexOf(fieldID); i >= 0 {
		return d.Fields[i], true
	}
	return domain.Field{}, false
}

// Selected returns the selected field, if any.
func (d *Draft) Selected() (domain.Field, bool) {
	if d.SelectedID == "" {
		return domain.Field{}, false
	}
	return d.Field(d.SelectedID)
}

// Select makes fieldID the selected field. Unknown ids leave the selection unchanged.
func (d *Draft) Select(fieldID string) bool {
	if d.indexOf(fieldID) < 0 {
		return false
	}
	d.SelectedID = fieldID
	return true
}

// ClearSelection deselects any field.
func (d *Draft) ClearSelection() {
	d.SelectedID = ""
}

// prepare normalizes f and gives it a fresh id when its id is missing or taken.
func (d *Draft) prepare(f domain.Field) domain.Field {
	f = f.Clone()
	if f.ID == "" || d.indexOf(f.ID) >= 0 {
		f.ID = d.factory().ID()
	}
	f.Normalize()
	return f
}

// Add appends f and selects it.
func (d *Draft) Add(f domain.Field) domain.Field {
	f = d.prepare(f)
	d.Fields = append(d.Fields, f)
	d.SelectedID = f.ID
	return f
}

// Insert splices f at index (clamped to the sequence bounds) and selects it.
func (d *Draft) Insert(index int, f domain.Field) domain.Field {
	f = d.prepare(f)
	if index < 0 {
		index = 0
	}
	if index > len(d.Fields) {
		index = len(d.Fields)
	}
	d.Fields = append(d.Fields, domain.Field{})
	copy(d.Fields[index+1:], d.Fields[index:])
	d.Fields[index] = f
	d.SelectedID = f.ID
	return f
}

// TextPatch edits the French and/or Arabic value of a bilingual text.
type TextPatch struct {
	FR *string `json:"fr,omitempty"`
	AR *string `json:"ar,omitempty"`
}

// Apply returns b with the supplied languages replaced.
func (p *TextPatch) Apply(b domain.Bilingual) domain.Bilingual {
	if p == nil {
		return b
	}
	if p.FR != nil {
		b = b.With(domain.LangFR, *p.FR)
	}
	if p.AR != nil {
		b = b.With(domain.LangAR, *p.AR)
	}
	return b
}

// FieldPatch lists the properties to change; nil members are left alone.
type FieldPatch struct {
	Type        *domain.FieldType `json:"type,omitempty"`
	Label       *TextPatch        `json:"label,omitempty"`
	Name        *string           `json:"name,omitempty"`
	Required    *bool             `json:"required,omitempty"`
	Placeholder *TextPatch        `json:"placeholder,omitempty"`
	Options     *[]domain.Option  `json:"options,omitempty"`
	Layout      *domain.Layout    `json:"layout,omitempty"`
}

// templateSafe keeps only what a template-derived field may change.
func (p FieldPatch) templateSafe() FieldPatch {
	return FieldPatch{Required: p.Required, Placeholder: p.Placeholder, Layout: p.Layout}
}

func (p FieldPatch) applyTo(f *domain.Field) {
	if p.Type != nil {
		f.Type = *p.Type
	}
	f.Label = p.Label.Apply(f.Label)
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Required != nil {
		f.Required = *p.Required
	}
	f.Placeholder = p.Placeholder.Apply(f.Placeholder)
	if p.Options != nil {
		f.Options = append([]domain.Option{}, (*p.Options)...)
	}
	if p.Layout != nil {
		f.Layout = *p.Layout
	}
}

// Update merges patch into the field. Template-derived fields only take
// required, placeholder and layout; other keys are dropped.
func (d *Draft) Update(fieldID string, patch FieldPatch) (domain.Field, bool) {
	i := d.indexOf(fieldID)
	if i < 0 {
		return domain.Field{}, false
	}
	f := d.Fields[i].Clone()
	if f.IsTemplate {
		patch = patch.templateSafe()
	}
	patch.applyTo(&f)
	for j := range f.Options {
		if f.Options[j].ID == "" {
			f.Options[j].ID = d.factory().ID()
		}
	}
	f.Normalize()
	d.Fields[i] = f
	return f, true
}

// Remove deletes the field and clears the selection if it pointed at it.
func (d *Draft) Remove(fieldID string) bool {
	i := d.indexOf(fieldID)
	if i < 0 {
		return false
	}
	d.Fields = append(d.Fields[:i], d.Fields[i+1:]...)
	if d.SelectedID == fieldID {
		d.SelectedID = ""
	}
	return true
}

// Reorder rearranges the fields to follow order, which must name every
// current field exactly once.
func (d *Draft) Reorder(order []string) error {
	if len(order) != len(d.Fields) {
		return fmt.Errorf("%w: got %d ids for %d fields", ErrNotPermutation, len(order), len(d.Fields))
	}
	byID := make(map[string]domain.Field, len(d.Fields))
	for _, f := range d.Fields {
		byID[f.ID] = f
	}
	next := make([]domain.Field, 0, len(order))
	for _, id := range order {
		f, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: unknown or repeated id %q", ErrNotPermutation, id)
		}
		delete(byID, id)
		next = append(next, f)
	}
	d.Fields = next
	return nil
}

// Move takes the field at from and places it so that it ends up at index to.
func (d *Draft) Move(from, to int) bool {
	n := len(d.Fields)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	f := d.Fields[from]
	d.Fields = append(d.Fields[:from], d.Fields[from+1:]...)
	d.Fields = append(d.Fields, domain.Field{})
	copy(d.Fields[to+1:], d.Fields[to:])
	d.Fields[to] = f
	return true
}

// IDs returns the field ids in order.
func (d *Draft) IDs() []string {
	ids := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		ids[i] = f.ID
	}
	return ids
}

func (d *Draft) editableChoice(fieldID string) int {
	i := d.indexOf(fieldID)
	if i < 0 || d.Fields[i].IsTemplate || !d.Fields[i].Type.HasOptions() {
		return -1
	}
	return i
}

// AddOption appends a default option to a choice field.
// Template-derived fields keep their option list.
func (d *Draft) AddOption(fieldID string) (domain.Option, bool) {
	i := d.editableChoice(fieldID)
	if i < 0 {
		return domain.Option{}, false
	}
	f := d.Fields[i].Clone()
	n := len(f.Options) + 1
	for {
		if _, taken := f.OptionByValue(defaultOptionValue(n)); !taken {
			break
		}
		n++
	}
	opt := domain.Option{ID: d.factory().ID(), Label: defaultOptionLabel(len(f.Options) + 1), Value: defaultOptionValue(n)}
	f.Options = append(f.Options, opt)
	d.Fields[i] = f
	return opt, true
}

// OptionPatch changes the label and/or value of an option.
type OptionPatch struct {
	Label *TextPatch `json:"label,omitempty"`
	Value *string    `json:"value,omitempty"`
}

// UpdateOption edits one option of a choice field.
func (d *Draft) UpdateOption(fieldID, optionID string, patch OptionPatch) (domain.Option, bool) {
	i := d.editableChoice(fieldID)
	if i < 0 {
		return domain.Option{}, false
	}
	f := d.Fields[i].Clone()
	for j := range f.Options {
		if f.Options[j].ID != optionID {
			continue
		}
		f.Options[j].Label = patch.Label.Apply(f.Options[j].Label)
		if patch.Value != nil {
			f.Options[j].Value = *patch.Value
		}
		d.Fields[i] = f
		return f.Options[j], true
	}
	return domain.Option{}, false
}

// RemoveOption deletes one option of a choice field. The last option of a
// field is never removed.
func (d *Draft) RemoveOption(fieldID, optionID string) bool {
	i := d.editableChoice(fieldID)
	if i < 0 || len(d.Fields[i].Options) < 2 {
		return false
	}
	f := d.Fields[i].Clone()
	for j := range f.Options {
		if f.Options[j].ID == optionID {
			f.Options = append(f.Options[:j], f.Options[j+1:]...)
			d.Fields[i] = f
			return true
		}
	}
	return false
}

// ApplyTemplate appends a copy of every template field in display order.
// Title and description are taken from the template when the draft has none.
func (d *Draft) ApplyTemplate(tpl domain.CandidatureTemplate) {
	fields := append([]domain.TemplateField{}, tpl.Fields...)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].DisplayOrder < fields[j].DisplayOrder })

	factory := d.factory()
	for _, tf := range fields {
		d.Add(factory.FromTemplate(SourceFromTemplateField(tf)))
	}
	d.SelectedID = ""

	if d.Meta.Title.IsEmpty() {
		d.Meta.Title = tpl.Title
	}
	if d.Meta.Description.IsEmpty() {
		d.Meta.Description = tpl.Description
	}
}

// BeginLoad records sourceID as the latest requested source and returns
// the ticket its result must present to ApplyLoad.
func (d *Draft) BeginLoad(sourceID string) LoadTicket {
	d.Load.Seq++
	d.Load.Pending = sourceID
	return LoadTicket{Seq: d.Load.Seq, SourceID: sourceID}
}

// ApplyLoad replaces the draft content with c unless a newer load was
// requested since the ticket was issued.
func (d *Draft) ApplyLoad(ticket LoadTicket, c *domain.Candidature) bool {
	if ticket.Seq != d.Load.Seq || ticket.SourceID != d.Load.Pending {
		return false
	}
	d.SourceID = c.ID.String()
	d.Meta = Metadata{
		Title:             c.Title,
		Description:       c.Description,
		EventLocation:     c.EventLocation,
		Region:            c.Region,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		EventDates:        append([]domain.EventDate{}, c.EventDates...),
		Prizes:            append([]domain.Prize{}, c.Prizes...),
		ImageURL:          c.ImageURL,
		ImageAttachmentID: c.ImageAttachmentID,
	}
	d.Fields = make([]domain.Field, 0, len(c.Fields))
	for _, f := range c.Fields {
		f = f.Clone()
		f.Normalize()
		d.Fields = append(d.Fields, f)
	}
	d.SelectedID = ""
	d.Load.Pending = ""
	return true
}

// ToCandidature builds the aggregate to persist: metadata plus every field.
func (d *Draft) ToCandidature() *domain.Candidature {
	c := &domain.Candidature{
		Title:             d.Meta.Title,
		Description:       d.Meta.Description,
		EventLocation:     d.Meta.EventLocation,
		Region:            d.Meta.Region,
		StartDate:         d.Meta.StartDate,
		EndDate:           d.Meta.EndDate,
		EventDates:        append([]domain.EventDate{}, d.Meta.EventDates...),
		Prizes:            append([]domain.Prize{}, d.Meta.Prizes...),
		ImageURL:          d.Meta.ImageURL,
		ImageAttachmentID: d.Meta.ImageAttachmentID,
		Fields:            make([]domain.Field, 0, len(d.Fields)),
	}
	for _, f := range d.Fields {
		c.Fields = append(c.Fields, f.Clone())
	}
	return c
}
