// Package session owns the per-job working state of the editing cycle and
// the state machine sequencing selector, sanitizer, validator, and codec
// across upload, save, and build.
package session

import "fmt"

// State is the lifecycle position of an edit session.
type State string

const (
	// StateEmpty means no attachment has been extracted yet.
	StateEmpty State = "empty"
	// StateExtracted means an attachment was selected and persisted.
	StateExtracted State = "extracted"
	// StateEditingText means the raw-text path last replaced the working document.
	StateEditingText State = "editing-text"
	// StateEditingForm means the form path last replaced the working document.
	StateEditingForm State = "editing-form"
	// StateBuilt means at least one output container has been produced.
	StateBuilt State = "built"
)

// ParseState converts a persisted string back into a State.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StateEmpty, StateExtracted, StateEditingText, StateEditingForm, StateBuilt:
		return State(s), nil
	case "":
		return StateEmpty, nil
	default:
		return StateEmpty, fmt.Errorf("unknown session state: %q", s)
	}
}

// editable reports whether the session holds a working document that can
// be saved to or built from.
func (s State) editable() bool {
	return s != StateEmpty
}
