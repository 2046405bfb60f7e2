package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TemplateOption is an option of a template field. ID is its persisted identifier.
type TemplateOption struct {
	ID    string    `json:"_id"`
	Label Bilingual `json:"label"`
	Value string    `json:"value"`
}

// TemplateField is a centrally managed, reusable field definition.
// Standalone palette fields have no TemplateID.
type TemplateField struct {
	BaseModel
	TemplateID   *uuid.UUID                          `gorm:"type:uuid;index:idx_template_fields_template,priority:1" json:"templateId,omitempty"`
	DisplayOrder int                                 `gorm:"not null;default:0;index:idx_template_fields_template,priority:2" json:"displayOrder"`
	Type         FieldType                           `gorm:"type:varchar(20);not null" json:"type"`
	Label        Bilingual                           `gorm:"embedded;embeddedPrefix:label_" json:"label"`
	Name         string                              `gorm:"type:varchar(100);not null" json:"name"`
	Required     bool                                `gorm:"not null;default:false" json:"required"`
	Placeholder  Bilingual                           `gorm:"embedded;embeddedPrefix:placeholder_" json:"placeholder"`
	Options      datatypes.JSONSlice[TemplateOption] `json:"options"`
	Layout       Layout                              `gorm:"type:varchar(20)" json:"layout,omitempty"`
}

// TableName specifies the table name for TemplateField
func (TemplateField) TableName() string {
	return "template_fields"
}

// Validate applies the field rules to the template definition.
func (t TemplateField) Validate() []string {
	f := Field{
		ID:          t.ID.String(),
		Type:        t.Type,
		Label:       t.Label,
		Name:        t.Name,
		Required:    t.Required,
		Placeholder: t.Placeholder,
		Layout:      t.Layout,
	}
	if t.Type.HasOptions() {
		f.Options = make([]Option, 0, len(t.Options))
		for _, o := range t.Options {
			f.Options = append(f.Options, Option{ID: o.ID, Label: o.Label, Value: o.Value})
		}
	}
	return f.Validate()
}

// CandidatureTemplate is an ordered set of template fields used to seed a new candidature
type CandidatureTemplate struct {
	BaseModel
	Title       Bilingual       `gorm:"embedded;embeddedPrefix:title_" json:"title"`
	Description Bilingual       `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	Fields      []TemplateField `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"fields"`
}

// TableName specifies the table name for CandidatureTemplate
func (CandidatureTemplate) TableName() string {
	return "candidature_templates"
}
