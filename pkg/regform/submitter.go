package regform

import (
	"context"

	"github.com/vango-dev/regform/pkg/validate"
)

// Submitter receives the record of an accepted form.
type Submitter interface {
	Submit(ctx context.Context, rec Record) error
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, rec Record) error

// Submit calls f(ctx, rec).
func (f SubmitterFunc) Submit(ctx context.Context, rec Record) error { return f(ctx, rec) }

// State is the position of the submit state machine.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateAccepted
	StateRejected
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateAccepted:
		return "accepted"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Outcome describes one pass through the submit flow.
type Outcome struct {
	// State is StateAccepted or StateRejected.
	State State

	// Record is set when the form was accepted.
	Record Record

	// Failures lists the failed rules in display order when rejected.
	Failures []validate.ValidationError

	// Err is the submitter's error, if any. Validation still accepted the form.
	Err error
}

// Accepted reports whether validation passed.
func (o Outcome) Accepted() bool { return o.State == StateAccepted }
