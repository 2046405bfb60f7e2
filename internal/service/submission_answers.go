package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"candidature-api/internal/domain"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)
)

// checkedAnswers is the outcome of validating a submission against its form.
type checkedAnswers struct {
	answers       []domain.Answer
	attachmentIDs []uuid.UUID
	messages      []string
}

// checkAnswers validates answers against the fields of c and returns them in
// field order. Empty values count as unanswered.
func checkAnswers(c *domain.Candidature, answers []domain.Answer) checkedAnswers {
	var out checkedAnswers

	given := make(map[string]any, len(answers))
	for _, a := range answers {
		f, ok := c.FieldByID(a.Field)
		switch {
		case !ok:
			out.messages = append(out.messages, fmt.Sprintf("answer references unknown field %q", a.Field))
			continue
		case !f.Type.IsInteractive():
			out.messages = append(out.messages, fmt.Sprintf("field %q does not accept answers", f.Name))
			continue
		}
		if _, dup := given[a.Field]; dup {
			out.messages = append(out.messages, fmt.Sprintf("field %q answered more than once", f.Name))
			continue
		}
		given[a.Field] = a.Value
	}

	for _, f := range c.Fields {
		if !f.Type.IsInteractive() {
			continue
		}
		value, ok := given[f.ID]
		if !ok || isBlank(value) {
			if f.Required {
				out.messages = append(out.messages, fmt.Sprintf("field %q is required", f.Name))
			}
			continue
		}

		normalized, attachmentID, msg := checkValue(f, value)
		if msg != "" {
			out.messages = append(out.messages, fmt.Sprintf("field %q %s", f.Name, msg))
			continue
		}
		if attachmentID != uuid.Nil {
			out.attachmentIDs = append(out.attachmentIDs, attachmentID)
		}
		out.answers = append(out.answers, domain.Answer{Field: f.ID, Value: normalized})
	}
	return out
}

func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	}
	return false
}

// checkValue returns the value to store, the attachment id of file answers
// and a message when the value is not acceptable for f.
func checkValue(f domain.Field, v any) (any, uuid.UUID, string) {
	switch f.Type {
	case domain.FieldTypeNumber:
		var parsed float64
		switch n := v.(type) {
		case float64:
			parsed = n
		case string:
			var err error
			if parsed, err = strconv.ParseFloat(strings.TrimSpace(n), 64); err != nil {
				return nil, uuid.Nil, "must be a number"
			}
		default:
			return nil, uuid.Nil, "must be a number"
		}
		// NaN and infinities parse but cannot be stored as JSON.
		if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return nil, uuid.Nil, "must be a number"
		}
		return parsed, uuid.Nil, ""

	case domain.FieldTypeCheckbox:
		items, ok := v.([]any)
		if !ok {
			return nil, uuid.Nil, "must be a list of options"
		}
		values := make([]string, 0, len(items))
		seen := make(map[string]bool, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, uuid.Nil, "must be a list of options"
			}
			if _, valid := f.OptionByValue(s); !valid {
				return nil, uuid.Nil, fmt.Sprintf("has no option %q", s)
			}
			if !seen[s] {
				seen[s] = true
				values = append(values, s)
			}
		}
		return values, uuid.Nil, ""
	}

	s, ok := v.(string)
	if !ok {
		return nil, uuid.Nil, "must be a string"
	}
	s = strings.TrimSpace(s)

	switch f.Type {
	case domain.FieldTypeEmail:
		if !emailPattern.MatchString(s) {
			return nil, uuid.Nil, "must be a valid email address"
		}
	case domain.FieldTypePhone:
		if !phonePattern.MatchString(s) {
			return nil, uuid.Nil, "must be a valid phone number"
		}
	case domain.FieldTypeDate:
		if _, err := parseDate(s); err != nil {
			return nil, uuid.Nil, "must be a date (YYYY-MM-DD)"
		}
	case domain.FieldTypeSelect, domain.FieldTypeRadio:
		if _, valid := f.OptionByValue(s); !valid {
			return nil, uuid.Nil, fmt.Sprintf("has no option %q", s)
		}
	case domain.FieldTypeFile:
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, uuid.Nil, "must reference an uploaded file"
		}
		return id.String(), id, ""
	}
	return s, uuid.Nil, ""
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// formatAnswer renders a stored value as one CSV cell.
func formatAnswer(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []string:
		return strings.Join(val, ";")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, formatAnswer(item))
		}
		return strings.Join(parts, ";")
	}
	return fmt.Sprint(v)
}
