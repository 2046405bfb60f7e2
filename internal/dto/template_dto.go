package dto

import "candidature-api/internal/domain"

// TemplateOptionRequest is an option of a template field being created
type TemplateOptionRequest struct {
	Label domain.Bilingual `json:"label"`
	Value string           `json:"value" example:"option_1"`
}

// TemplateFieldRequest is the body for creating a reusable field
type TemplateFieldRequest struct {
	Type        domain.FieldType        `json:"type" binding:"required" example:"radio"`
	Label       domain.Bilingual        `json:"label"`
	Name        string                  `json:"name" binding:"required" example:"gender"`
	Required    bool                    `json:"required"`
	Placeholder domain.Bilingual        `json:"placeholder"`
	Options     []TemplateOptionRequest `json:"options,omitempty"`
	Layout      domain.Layout           `json:"layout,omitempty" example:"vertical"`
}

// ToDomain builds the template field; option ids are assigned by the caller
func (r TemplateFieldRequest) ToDomain(order int) *domain.TemplateField {
	f := &domain.TemplateField{
		DisplayOrder: order,
		Type:         r.Type,
		Label:        r.Label,
		Name:         r.Name,
		Required:     r.Required,
		Placeholder:  r.Placeholder,
		Layout:       r.Layout,
		Options:      make([]domain.TemplateOption, 0, len(r.Options)),
	}
	for _, o := range r.Options {
		f.Options = append(f.Options, domain.TemplateOption{Label: o.Label, Value: o.Value})
	}
	return f
}

// CreateTemplateRequest is the body for creating a candidature template
type CreateTemplateRequest struct {
	Title       domain.Bilingual       `json:"title"`
	Description domain.Bilingual       `json:"description"`
	Fields      []TemplateFieldRequest `json:"fields"`
}
