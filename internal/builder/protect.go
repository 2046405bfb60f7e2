package builder

import "candidature-api/internal/domain"

// EnforceTemplateIdentity rebuilds a template-derived field from its
// template, keeping only the properties an editor may change: required,
// placeholder and layout. Fields that are not template-derived are returned as is.
func EnforceTemplateIdentity(f domain.Field, src TemplateSource) domain.Field {
	if !f.IsTemplate {
		return f
	}
	existing := make(map[string]string, len(f.Options))
	for _, o := range f.Options {
		existing[o.Value] = o.ID
	}
	gen := func() string { return "" }
	restored := NewFactory(gen).FromTemplate(src)
	for i := range restored.Options {
		if restored.Options[i].ID == "" {
			restored.Options[i].ID = existing[restored.Options[i].Value]
		}
	}

	restored.ID = f.ID
	restored.Required = f.Required
	restored.Placeholder = f.Placeholder
	restored.Layout = f.Layout
	restored.Normalize()
	return restored
}
