// Package trace carries the observability stream of human-readable status
// events for evaluation sessions. Sinks are append-only and fire-and-forget:
// the pipeline never reads events back to make decisions.
package trace

import (
	"context"
	"time"
)

// #region kind
// Kind categorizes a trace event.
type Kind string

const (
	KindPlanning   Kind = "planning"
	KindEvaluating Kind = "evaluating"
	KindEvaluated  Kind = "evaluated"
	KindRetrying   Kind = "retrying"
	KindAdvancing  Kind = "advancing"
	KindFinalized  Kind = "finalized"
	KindApproved   Kind = "approved"
	KindError      Kind = "error"
)
// #endregion kind

// #region event
// Event is one session-scoped thought record. StepNumber is 0 for events
// not tied to a specific step.
type Event struct {
	SessionID  string
	StepNumber int
	Kind       Kind
	Message    string
	CreatedAt  time.Time
}
// #endregion event

// #region sink
// Sink receives session events in emission order.
type Sink interface {
	Append(ctx context.Context, ev Event) error
}
// #endregion sink
