package builder

import (
	"fmt"

	"candidature-api/internal/domain"
)

// seqIDs yields prefix1, prefix2, ...
func seqIDs(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func newTestDraft() *Draft {
	d := NewDraft("d1", "owner-1")
	d.SetIDGenerator(seqIDs("gen"))
	return d
}

func textField(id string) domain.Field {
	return domain.Field{ID: id, Type: domain.FieldTypeText, Name: "k_" + id, Label: domain.NewBilingual("L"+id, "ل"+id)}
}

func draftWith(ids ...string) *Draft {
	d := newTestDraft()
	for _, id := range ids {
		d.Add(textField(id))
	}
	d.ClearSelection()
	return d
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
