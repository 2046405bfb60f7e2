package builder

import (
	"bytes"
	"encoding/json"

	"candidature-api/internal/domain"
)

// PayloadKind tells a drop of a new component from a reorder.
type PayloadKind string

const (
	PayloadNewComponent PayloadKind = "new-component"
	PayloadReorder      PayloadKind = "reorder"
)

// DropPayload is the decoded content of a drag transfer.
// For PayloadNewComponent exactly one of Component and Template is set.
type DropPayload struct {
	Kind        PayloadKind
	Component   *PaletteComponent
	Template    *TemplateSource
	SourceIndex int
}

type transferEnvelope struct {
	Component  json.RawMessage `json:"component"`
	IsTemplate bool            `json:"isTemplate"`
}

// DecodeDropPayload classifies the raw transfer data once. Data without a
// usable component marker, including malformed JSON, is a reorder of
// sourceIndex.
func DecodeDropPayload(raw string, sourceIndex int) DropPayload {
	reorder := DropPayload{Kind: PayloadReorder, SourceIndex: sourceIndex}

	var env transferEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return reorder
	}
	body := bytes.TrimSpace(env.Component)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return reorder
	}

	if env.IsTemplate {
		var src TemplateSource
		if err := json.Unmarshal(body, &src); err != nil || !src.Type.IsValid() {
			return reorder
		}
		return DropPayload{Kind: PayloadNewComponent, Template: &src, SourceIndex: -1}
	}

	var c PaletteComponent
	if err := json.Unmarshal(body, &c); err != nil || !c.Type.IsValid() {
		return reorder
	}
	return DropPayload{Kind: PayloadNewComponent, Component: &c, SourceIndex: -1}
}

// ComputeInsertionIndex maps a drop gap of the pre-removal sequence to the
// index the moved element takes once it has been removed from sourceIndex.
func ComputeInsertionIndex(sourceIndex, dropIndex int) int {
	if sourceIndex < dropIndex {
		return dropIndex - 1
	}
	return dropIndex
}

// DragPhase is the state of a DragTracker.
type DragPhase string

const (
	DragIdle           DragPhase = "idle"
	DragExisting       DragPhase = "dragging-existing"
	DragExternal       DragPhase = "dragging-external"
	DragHoveringTarget DragPhase = "hovering-target"
)

// DropResult describes what a drop did to the draft.
type DropResult struct {
	Changed bool          `json:"changed"`
	Kind    PayloadKind   `json:"kind"`
	Field   *domain.Field `json:"field,omitempty"`
	From    int           `json:"from"`
	To      int           `json:"to"`
}

// DragTracker follows one drag gesture over the field list. Enter and Leave
// are counted because nested rows report their own enter/leave pairs.
type DragTracker struct {
	dragging DragPhase
	payload  DropPayload
	hover    int
	depth    int
}

// NewDragTracker returns an idle tracker.
func NewDragTracker() *DragTracker {
	t := &DragTracker{}
	t.End()
	return t
}

// Phase reports the current state.
func (t *DragTracker) Phase() DragPhase {
	if t.dragging != DragIdle && t.hover >= 0 {
		return DragHoveringTarget
	}
	return t.dragging
}

// HoverIndex is the row under the pointer, or -1.
func (t *DragTracker) HoverIndex() int {
	return t.hover
}

// Start begins a gesture with a decoded payload.
func (t *DragTracker) Start(p DropPayload) {
	t.End()
	t.payload = p
	if p.Kind == PayloadNewComponent {
		t.dragging = DragExternal
	} else {
		t.dragging = DragExisting
	}
}

// StartReorder begins dragging the existing field at sourceIndex.
func (t *DragTracker) StartReorder(sourceIndex int) {
	t.Start(DropPayload{Kind: PayloadReorder, SourceIndex: sourceIndex})
}

// Enter marks row as the hovered target.
func (t *DragTracker) Enter(row int) {
	if t.dragging == DragIdle {
		return
	}
	t.depth++
	t.hover = row
}

// Leave undoes one Enter; the hover clears once every Enter is balanced.
func (t *DragTracker) Leave() {
	if t.depth == 0 {
		return
	}
	t.depth--
	if t.depth == 0 {
		t.hover = -1
	}
}

// End cancels the gesture and returns to idle.
func (t *DragTracker) End() {
	t.dragging = DragIdle
	t.payload = DropPayload{}
	t.hover = -1
	t.depth = 0
}

// Drop applies the gesture to d with the pointer over row (len(d.Fields)
// is the trailing drop zone). The tracker is idle afterwards whatever the outcome.
func (t *DragTracker) Drop(d *Draft, row int) DropResult {
	defer t.End()

	switch t.dragging {
	case DragExternal:
		var f domain.Field
		factory := d.factory()
		switch {
		case t.payload.Template != nil:
			f = factory.FromTemplate(*t.payload.Template)
		case t.payload.Component != nil:
			f = factory.NewField(*t.payload.Component)
		default:
			return DropResult{Kind: PayloadNewComponent, From: -1, To: -1}
		}
		added := d.Insert(row, f)
		return DropResult{Changed: true, Kind: PayloadNewComponent, Field: &added, From: -1, To: d.indexOf(added.ID)}

	case DragExisting:
		src := t.payload.SourceIndex
		res := DropResult{Kind: PayloadReorder, From: src, To: src}
		if src < 0 || src >= len(d.Fields) {
			return res
		}
		gap := row
		if src < row {
			gap = row + 1
		}
		if gap < 0 {
			gap = 0
		}
		if gap > len(d.Fields) {
			gap = len(d.Fields)
		}
		res.To = ComputeInsertionIndex(src, gap)
		res.Changed = d.Move(src, res.To)
		return res
	}
	return DropResult{From: -1, To: -1}
}
