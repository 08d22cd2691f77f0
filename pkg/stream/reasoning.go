package stream

import (
	"github.com/iwannatoa/ooc-app/pkg/segment"
)

// ReasoningView is the per-ordinal UI state of one reasoning span.
type ReasoningView struct {
	Collapsed bool

	open  bool // last observed open flag
	seen  bool
	fired bool // completed notification already emitted
}

// ReasoningTracker derives collapsed/expanded state for the reasoning spans
// of one streamed message. Transitions are edge-triggered: first observation
// of an open span forces expanded, the open-to-closed edge forces collapsed
// and fires the completion callback exactly once per ordinal. Manual toggles
// persist until the next forced expand.
type ReasoningTracker struct {
	views       map[int]*ReasoningView
	onCompleted func(ordinal int)
}

// NewReasoningTracker creates a tracker. onCompleted may be nil; when set it
// is invoked once per ordinal the moment that span is observed complete.
func NewReasoningTracker(onCompleted func(ordinal int)) *ReasoningTracker {
	return &ReasoningTracker{
		views:       make(map[int]*ReasoningView),
		onCompleted: onCompleted,
	}
}

// Observe feeds one reconciliation step's segment list through the state
// machine.
func (t *ReasoningTracker) Observe(segments []segment.Segment) {
	for _, seg := range segments {
		if seg.Kind != segment.KindReasoning {
			continue
		}

		view, ok := t.views[seg.Ordinal]
		if !ok {
			view = &ReasoningView{}
			t.views[seg.Ordinal] = view
		}

		switch {
		case !view.seen && seg.Open:
			// First observation of an open span: forced expand.
			view.Collapsed = false

		case !view.seen && !seg.Open:
			// Span appeared already closed within a single step; the
			// open-to-closed edge happened inside one chunk. Collapse
			// and fire as if both observations had been made.
			view.Collapsed = true
			t.fire(seg.Ordinal, view)

		case view.open && !seg.Open:
			// The edge: forced collapse, one-time completion event.
			view.Collapsed = true
			t.fire(seg.Ordinal, view)

		case !view.open && seg.Open:
			// Reopened (only possible within the same growing stream):
			// forced expand again.
			view.Collapsed = false
		}

		view.seen = true
		view.open = seg.Open
	}
}

func (t *ReasoningTracker) fire(ordinal int, view *ReasoningView) {
	if view.fired {
		return
	}
	view.fired = true
	if t.onCompleted != nil {
		t.onCompleted(ordinal)
	}
}

// Toggle flips the collapsed state of the given ordinal by user action.
func (t *ReasoningTracker) Toggle(ordinal int) {
	view, ok := t.views[ordinal]
	if !ok {
		return
	}
	view.Collapsed = !view.Collapsed
}

// Collapsed reports the view state for an ordinal. Unknown ordinals render
// collapsed; they belong to messages no longer being streamed.
func (t *ReasoningTracker) Collapsed(ordinal int) bool {
	view, ok := t.views[ordinal]
	if !ok {
		return true
	}
	return view.Collapsed
}
