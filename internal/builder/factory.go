// Package builder holds the candidature form builder: the field factory, the
// draft mutation API and the drag-reorder state machine. Nothing here does I/O.
package builder

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"candidature-api/internal/domain"
)

// IDGenerator returns a new unique identifier.
type IDGenerator func() string

// NewUUID is the default IDGenerator.
func NewUUID() string {
	return uuid.NewString()
}

// OptionSeed is an option supplied with a palette component. Blank parts get defaults.
type OptionSeed struct {
	Label domain.Bilingual `json:"label"`
	Value string           `json:"value"`
}

// PaletteComponent describes a field the user picked from the palette.
type PaletteComponent struct {
	Type    domain.FieldType  `json:"type"`
	Label   *domain.Bilingual `json:"label,omitempty"`
	Options []OptionSeed      `json:"options,omitempty"`
}

// TemplateOptionSource is an option of a template field as received from the API.
// PersistedID is set once stored; TempID is a client-side id of an unsaved option.
type TemplateOptionSource struct {
	PersistedID string           `json:"_id,omitempty"`
	TempID      string           `json:"id,omitempty"`
	Label       domain.Bilingual `json:"label"`
	Value       string           `json:"value"`
}

// TemplateSource is a template field as received from the API.
type TemplateSource struct {
	ID          string                 `json:"_id"`
	Type        domain.FieldType       `json:"type"`
	Label       domain.Bilingual       `json:"label"`
	Name        string                 `json:"name"`
	Required    bool                   `json:"required"`
	Placeholder domain.Bilingual       `json:"placeholder"`
	Options     []TemplateOptionSource `json:"options"`
	Layout      domain.Layout          `json:"layout,omitempty"`
}

// SourceFromTemplateField converts a stored template field.
func SourceFromTemplateField(tf domain.TemplateField) TemplateSource {
	src := TemplateSource{
		ID:          tf.ID.String(),
		Type:        tf.Type,
		Label:       tf.Label,
		Name:        tf.Name,
		Required:    tf.Required,
		Placeholder: tf.Placeholder,
		Layout:      tf.Layout,
	}
	for _, o := range tf.Options {
		src.Options = append(src.Options, TemplateOptionSource{PersistedID: o.ID, Label: o.Label, Value: o.Value})
	}
	return src
}

var typeNames = map[domain.FieldType]domain.Bilingual{
	domain.FieldTypeText:     {FR: "texte", AR: "نص"},
	domain.FieldTypeEmail:    {FR: "e-mail", AR: "بريد إلكتروني"},
	domain.FieldTypeTextarea: {FR: "zone de texte", AR: "نص طويل"},
	domain.FieldTypeNumber:   {FR: "nombre", AR: "رقم"},
	domain.FieldTypePhone:    {FR: "téléphone", AR: "هاتف"},
	domain.FieldTypeSelect:   {FR: "liste déroulante", AR: "قائمة منسدلة"},
	domain.FieldTypeRadio:    {FR: "choix unique", AR: "اختيار واحد"},
	domain.FieldTypeCheckbox: {FR: "cases à cocher", AR: "خانات اختيار"},
	domain.FieldTypeDate:     {FR: "date", AR: "تاريخ"},
	domain.FieldTypeFile:     {FR: "fichier", AR: "ملف"},
	domain.FieldTypeSection:  {FR: "section", AR: "قسم"},
	domain.FieldTypeDivider:  {FR: "séparateur", AR: "فاصل"},
}

// TypeName is the display name of a field type in both languages.
func TypeName(t domain.FieldType) domain.Bilingual {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return domain.NewBilingual(string(t), string(t))
}

// DefaultLabel is the placeholder label given to a new field of type t.
func DefaultLabel(t domain.FieldType) domain.Bilingual {
	n := TypeName(t)
	return domain.NewBilingual("Nouveau champ "+n.FR, "حقل جديد "+n.AR)
}

func defaultOptionLabel(n int) domain.Bilingual {
	return domain.NewBilingual(fmt.Sprintf("Option %d", n), fmt.Sprintf("خيار %d", n))
}

func defaultOptionValue(n int) string {
	return fmt.Sprintf("option_%d", n)
}

// DefaultPalette lists one component per field type. Choice components come
// with two options so that palette-created fields are valid as is.
func DefaultPalette() []PaletteComponent {
	palette := make([]PaletteComponent, 0, len(domain.FieldTypes))
	for _, t := range domain.FieldTypes {
		c := PaletteComponent{Type: t}
		if t.HasOptions() {
			c.Options = []OptionSeed{{}, {}}
		}
		palette = append(palette, c)
	}
	return palette
}

// Factory creates well-formed fields.
type Factory struct {
	newID IDGenerator
}

// NewFactory returns a factory using gen for identifiers, or uuids when gen is nil.
func NewFactory(gen IDGenerator) *Factory {
	if gen == nil {
		gen = NewUUID
	}
	return &Factory{newID: gen}
}

// ID returns a fresh identifier.
func (f *Factory) ID() string {
	return f.newID()
}

// NewField builds a field from a palette component.
func (f *Factory) NewField(c PaletteComponent) domain.Field {
	id := f.newID()
	field := domain.Field{
		ID:    id,
		Type:  c.Type,
		Label: DefaultLabel(c.Type),
		Name:  machineName(string(c.Type), id),
	}
	if c.Label != nil && !c.Label.IsEmpty() {
		field.Label = *c.Label
	}
	if c.Type.HasOptions() {
		field.Options = make([]domain.Option, 0, len(c.Options))
		for i, seed := range c.Options {
			opt := domain.Option{ID: f.newID(), Label: seed.Label, Value: seed.Value}
			if opt.Label.IsEmpty() {
				opt.Label = defaultOptionLabel(i + 1)
			}
			if strings.TrimSpace(opt.Value) == "" {
				opt.Value = defaultOptionValue(i + 1)
			}
			field.Options = append(field.Options, opt)
		}
	}
	field.Normalize()
	return field
}

// FromTemplate deep-copies a template field into a template-derived field.
// The field id is the template's backing id.
func (f *Factory) FromTemplate(src TemplateSource) domain.Field {
	field := domain.Field{
		ID:          src.ID,
		Type:        src.Type,
		Label:       src.Label,
		Name:        src.Name,
		Required:    src.Required,
		Placeholder: src.Placeholder,
		Layout:      src.Layout,
		IsTemplate:  true,
		TemplateID:  src.ID,
	}
	if field.ID == "" {
		field.ID = f.newID()
	}
	if strings.TrimSpace(field.Name) == "" {
		field.Name = machineName("field", field.ID)
	}
	if src.Type.HasOptions() {
		field.Options = make([]domain.Option, 0, len(src.Options))
		for _, o := range src.Options {
			field.Options = append(field.Options, domain.Option{
				ID:    f.optionID(o),
				Label: o.Label,
				Value: o.Value,
			})
		}
	}
	field.Normalize()
	return field
}

func (f *Factory) optionID(o TemplateOptionSource) string {
	switch {
	case o.PersistedID != "":
		return o.PersistedID
	case o.TempID != "":
		return o.TempID
	default:
		return f.newID()
	}
}

// machineName derives an answer key like "email_3f9a1c2b".
func machineName(prefix, id string) string {
	var b strings.Builder
	for _, r := range id {
		if b.Len() == 8 {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	if b.Len() == 0 {
		return prefix
	}
	return prefix + "_" + b.String()
}
