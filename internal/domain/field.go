package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldType is the closed set of field kinds a candidature form may contain
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeNumber   FieldType = "number"
	FieldTypePhone    FieldType = "phone"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDate     FieldType = "date"
	FieldTypeFile     FieldType = "file"
	FieldTypeSection  FieldType = "section"
	FieldTypeDivider  FieldType = "divider"
)

// FieldTypes lists every supported type in palette order.
var FieldTypes = []FieldType{
	FieldTypeText, FieldTypeEmail, FieldTypeTextarea, FieldTypeNumber, FieldTypePhone,
	FieldTypeSelect, FieldTypeRadio, FieldTypeCheckbox, FieldTypeDate, FieldTypeFile,
	FieldTypeSection, FieldTypeDivider,
}

// IsValid reports whether t belongs to the closed set.
func (t FieldType) IsValid() bool {
	for _, ft := range FieldTypes {
		if ft == t {
			return true
		}
	}
	return false
}

// HasOptions reports whether fields of this type carry a choice list.
func (t FieldType) HasOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeRadio || t == FieldTypeCheckbox
}

// HasPlaceholder reports whether a placeholder is rendered for this type.
func (t FieldType) HasPlaceholder() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeTextarea, FieldTypeNumber, FieldTypePhone, FieldTypeSelect:
		return true
	}
	return false
}

// HasLayout reports whether the vertical/inline layout applies.
func (t FieldType) HasLayout() bool {
	return t == FieldTypeRadio || t == FieldTypeCheckbox
}

// IsInteractive is false for decorative types that collect no answer.
func (t FieldType) IsInteractive() bool {
	return t != FieldTypeSection && t != FieldTypeDivider
}

// Layout controls how radio and checkbox options are arranged
type Layout string

const (
	LayoutVertical Layout = "vertical"
	LayoutInline   Layout = "inline"
)

// Option is one choice of a select, radio or checkbox field
type Option struct {
	ID    string    `json:"id"`
	Label Bilingual `json:"label"`
	Value string    `json:"value"`
}

// Field is one entry of a candidature form
type Field struct {
	ID          string    `json:"id"`
	Type        FieldType `json:"type"`
	Label       Bilingual `json:"label"`
	Name        string    `json:"name"`
	Required    bool      `json:"required"`
	Placeholder Bilingual `json:"placeholder"`
	Options     []Option  `json:"options,omitempty"`
	IsTemplate  bool      `json:"isTemplate"`
	TemplateID  string    `json:"templateId,omitempty"`
	Layout      Layout    `json:"layout,omitempty"`
}

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Clone returns a deep copy; the options slice is not shared.
func (f Field) Clone() Field {
	if f.Options != nil {
		opts := make([]Option, len(f.Options))
		copy(opts, f.Options)
		f.Options = opts
	}
	return f
}

// Normalize drops attributes that have no meaning for the field's type.
func (f *Field) Normalize() {
	if f.Type.HasOptions() {
		if f.Options == nil {
			f.Options = []Option{}
		}
	} else {
		f.Options = nil
	}
	if !f.Type.HasPlaceholder() {
		f.Placeholder = Bilingual{}
	}
	if f.Type.HasLayout() {
		if f.Layout != LayoutInline {
			f.Layout = LayoutVertical
		}
	} else {
		f.Layout = ""
	}
	if !f.Type.IsInteractive() {
		f.Required = false
	}
}

// OptionByValue looks up an option by its submitted value.
func (f Field) OptionByValue(value string) (Option, bool) {
	for _, o := range f.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// Validate returns one message per violated rule, or nil.
func (f Field) Validate() []string {
	var msgs []string
	ref := f.ref()

	if strings.TrimSpace(f.ID) == "" {
		msgs = append(msgs, fmt.Sprintf("field %s: id is required", ref))
	}
	if !f.Type.IsValid() {
		return append(msgs, fmt.Sprintf("field %s: unknown type %q", ref, f.Type))
	}
	if !f.Type.IsInteractive() {
		return msgs
	}

	if f.Label.IsEmpty() {
		msgs = append(msgs, fmt.Sprintf("field %s: label is required", ref))
	}
	if !fieldNamePattern.MatchString(f.Name) {
		msgs = append(msgs, fmt.Sprintf("field %s: name must start with a letter and use only letters digits '_' or '-'", ref))
	}
	if f.IsTemplate && strings.TrimSpace(f.TemplateID) == "" {
		msgs = append(msgs, fmt.Sprintf("field %s: template field without templateId", ref))
	}

	if f.Type.HasOptions() {
		if len(f.Options) == 0 {
			msgs = append(msgs, fmt.Sprintf("field %s: at least one option is required", ref))
		}
		ids := make(map[string]bool, len(f.Options))
		values := make(map[string]bool, len(f.Options))
		for _, o := range f.Options {
			switch {
			case strings.TrimSpace(o.ID) == "":
				msgs = append(msgs, fmt.Sprintf("field %s: option without id", ref))
			case ids[o.ID]:
				msgs = append(msgs, fmt.Sprintf("field %s: duplicate option id %q", ref, o.ID))
			}
			ids[o.ID] = true
			switch {
			case strings.TrimSpace(o.Value) == "":
				msgs = append(msgs, fmt.Sprintf("field %s: option %q has an empty value", ref, o.ID))
			case values[o.Value]:
				msgs = append(msgs, fmt.Sprintf("field %s: duplicate option value %q", ref, o.Value))
			}
			values[o.Value] = true
		}
	} else if len(f.Options) > 0 {
		msgs = append(msgs, fmt.Sprintf("field %s: type %s cannot have options", ref, f.Type))
	}

	if f.Layout != "" && f.Layout != LayoutVertical && f.Layout != LayoutInline {
		msgs = append(msgs, fmt.Sprintf("field %s: unknown layout %q", ref, f.Layout))
	}
	return msgs
}

func (f Field) ref() string {
	if f.Name != "" {
		return fmt.Sprintf("%q", f.Name)
	}
	return fmt.Sprintf("%q", f.ID)
}
