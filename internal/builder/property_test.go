package builder

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"candidature-api/internal/domain"
)

func idsOf(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("f%d", i)
	}
	return ids
}

func sameMultiset(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string{}, a...)
	y := append([]string{}, b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func fieldsByID(fields []domain.Field) map[string]domain.Field {
	m := make(map[string]domain.Field, len(fields))
	for _, f := range fields {
		m[f.ID] = f
	}
	return m
}

// Reordering with any permutation keeps every field and its content.
func TestProperty_ReorderPreservesFields(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("reorder is a pure permutation", prop.ForAll(
		func(n int, seed int64) bool {
			d := draftWith(idsOf(n)...)
			before := fieldsByID(d.Fields)

			order := d.IDs()
			rand.New(rand.NewSource(seed)).Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

			if err := d.Reorder(order); err != nil {
				return false
			}
			after := fieldsByID(d.Fields)
			for id, f := range before {
				if fmt.Sprint(after[id]) != fmt.Sprint(f) {
					return false
				}
			}
			return sameMultiset(d.IDs(), idsOf(n)) && fmt.Sprint(d.IDs()) == fmt.Sprint(order)
		},
		gen.IntRange(0, 30),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

// A drag drop never loses or duplicates a field, and lands where ComputeInsertionIndex says.
func TestProperty_DragDropPreservesMultiset(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("drop keeps the id multiset", prop.ForAll(
		func(n, source, row int) bool {
			source %= n
			row %= n + 1
			d := draftWith(idsOf(n)...)
			moved := d.Fields[source].ID

			tracker := NewDragTracker()
			tracker.StartReorder(source)
			res := tracker.Drop(d, row)

			if !sameMultiset(d.IDs(), idsOf(n)) {
				return false
			}
			if tracker.Phase() != DragIdle {
				return false
			}
			return d.Fields[res.To].ID == moved
		},
		gen.IntRange(1, 20),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}

// The insertion index always addresses an element of the post-removal sequence plus the moved item.
func TestProperty_InsertionIndexInRange(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("0 <= index < n", prop.ForAll(
		func(n, source, drop int) bool {
			source %= n
			drop %= n + 1
			idx := ComputeInsertionIndex(source, drop)
			return idx >= 0 && idx < n
		},
		gen.IntRange(1, 50),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}

// Updating an id that is not in the draft never changes it.
func TestProperty_UpdateUnknownIDIsNoOp(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("unknown ids leave the draft untouched", prop.ForAll(
		func(n int, name string, required bool) bool {
			d := draftWith(idsOf(n)...)
			before := fmt.Sprint(d.Fields)

			_, ok := d.Update("missing", FieldPatch{Name: &name, Required: &required})

			return !ok && fmt.Sprint(d.Fields) == before
		},
		gen.IntRange(0, 15),
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Template fields keep type, label and name under any patch.
func TestProperty_TemplateIdentityImmutable(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("only required, placeholder and layout change", prop.ForAll(
		func(label, name string, required bool) bool {
			d := newTestDraft()
			d.Add(NewFactory(nil).FromTemplate(TemplateSource{
				ID: "t1", Type: domain.FieldTypeText, Name: "cin", Label: domain.NewBilingual("CIN", "البطاقة"),
			}))
			typ := domain.FieldTypeDate

			got, _ := d.Update("t1", FieldPatch{
				Type: &typ, Name: &name, Required: &required,
				Label: &TextPatch{FR: &label, AR: &label},
			})

			return got.Type == domain.FieldTypeText &&
				got.Name == "cin" &&
				got.Label == domain.NewBilingual("CIN", "البطاقة") &&
				got.Required == required
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
