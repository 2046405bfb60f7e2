// Package render resolves a candidature into a single-language form schema
// for the public submission page.
package render

import (
	"time"

	"candidature-api/internal/domain"
)

// Option is a resolved choice.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Field is a resolved form field.
type Field struct {
	ID          string           `json:"id"`
	Type        domain.FieldType `json:"type"`
	Name        string           `json:"name"`
	Label       string           `json:"label"`
	Placeholder string           `json:"placeholder,omitempty"`
	Required    bool             `json:"required"`
	Layout      domain.Layout    `json:"layout,omitempty"`
	Options     []Option         `json:"options,omitempty"`
}

// Prize is a resolved prize.
type Prize struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// EventDate is a resolved milestone.
type EventDate struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// Form is a candidature resolved for one language.
type Form struct {
	ID            string      `json:"_id"`
	Lang          domain.Lang `json:"lang"`
	Dir           string      `json:"dir"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	EventLocation string      `json:"eventLocation"`
	Region        string      `json:"region"`
	StartDate     *time.Time  `json:"startDate,omitempty"`
	EndDate       *time.Time  `json:"endDate,omitempty"`
	ImageURL      string      `json:"imageUrl,omitempty"`
	EventDates    []EventDate `json:"eventDates"`
	Prizes        []Prize     `json:"prizes"`
	Fields        []Field     `json:"fields"`
}

// Direction is the text direction of lang.
func Direction(lang domain.Lang) string {
	if lang == domain.LangAR {
		return "rtl"
	}
	return "ltr"
}

// Candidature renders c in lang. Missing translations become domain.MissingText.
func Candidature(c *domain.Candidature, lang domain.Lang) Form {
	form := Form{
		ID:            c.ID.String(),
		Lang:          lang,
		Dir:           Direction(lang),
		Title:         c.Title.Render(lang),
		Description:   c.Description.Render(lang),
		EventLocation: c.EventLocation.Render(lang),
		Region:        c.Region.Render(lang),
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		ImageURL:      c.ImageURL,
		EventDates:    make([]EventDate, 0, len(c.EventDates)),
		Prizes:        make([]Prize, 0, len(c.Prizes)),
		Fields:        make([]Field, 0, len(c.Fields)),
	}
	for _, d := range c.EventDates {
		form.EventDates = append(form.EventDates, EventDate{Date: d.Date, Description: d.Description.Render(lang)})
	}
	for _, p := range c.Prizes {
		form.Prizes = append(form.Prizes, Prize{Amount: p.Amount, Description: p.Description.Render(lang)})
	}
	for _, f := range c.Fields {
		form.Fields = append(form.Fields, field(f, lang))
	}
	return form
}

func field(f domain.Field, lang domain.Lang) Field {
	out := Field{
		ID:       f.ID,
		Type:     f.Type,
		Name:     f.Name,
		Label:    f.Label.Render(lang),
		Required: f.Required,
		Layout:   f.Layout,
	}
	if f.Type.HasPlaceholder() && !f.Placeholder.IsEmpty() {
		out.Placeholder = f.Placeholder.Render(lang)
	}
	if f.Type == domain.FieldTypeDivider {
		out.Label = ""
	}
	for _, o := range f.Options {
		out.Options = append(out.Options, Option{ID: o.ID, Label: o.Label.Render(lang), Value: o.Value})
	}
	return out
}
