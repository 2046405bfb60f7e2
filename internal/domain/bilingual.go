package domain

import "strings"

// Lang is one of the two languages every user-facing text is authored in.
type Lang string

const (
	LangFR Lang = "fr"
	LangAR Lang = "ar"
)

// ParseLang accepts "fr", "ar" and region-tagged variants such as "ar-MA".
// Anything else falls back to French.
func ParseLang(s string) Lang {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_,;"); i >= 0 {
		s = s[:i]
	}
	if s == string(LangAR) {
		return LangAR
	}
	return LangFR
}

var missingText = map[Lang]string{
	LangFR: "(non renseigné)",
	LangAR: "(غير متوفر)",
}

// MissingText is rendered in place of an empty translation.
func MissingText(lang Lang) string {
	if s, ok := missingText[lang]; ok {
		return s
	}
	return missingText[LangFR]
}

// Bilingual holds the French and Arabic versions of one text.
// The two values are edited independently.
type Bilingual struct {
	FR string `json:"fr"`
	AR string `json:"ar"`
}

// NewBilingual builds a pair.
func NewBilingual(fr, ar string) Bilingual {
	return Bilingual{FR: fr, AR: ar}
}

// Get returns the raw value for lang, possibly empty.
func (b Bilingual) Get(lang Lang) string {
	if lang == LangAR {
		return b.AR
	}
	return b.FR
}

// With returns a copy with only lang's value replaced.
func (b Bilingual) With(lang Lang, value string) Bilingual {
	if lang == LangAR {
		b.AR = value
	} else {
		b.FR = value
	}
	return b
}

// Render returns the value for lang, or MissingText when it is blank.
// It never borrows the other language's text.
func (b Bilingual) Render(lang Lang) string {
	if v := strings.TrimSpace(b.Get(lang)); v != "" {
		return v
	}
	return MissingText(lang)
}

// IsEmpty reports whether both values are blank.
func (b Bilingual) IsEmpty() bool {
	return strings.TrimSpace(b.FR) == "" && strings.TrimSpace(b.AR) == ""
}

// IsComplete reports whether both values are set.
func (b Bilingual) IsComplete() bool {
	return strings.TrimSpace(b.FR) != "" && strings.TrimSpace(b.AR) != ""
}
