// Package orchestrator drives one evaluation session through its configured
// steps: scoring, threshold checks, bounded retries, aggregation, and
// publication. Per-session execution is strictly sequential; sessions are
// independent of each other.
package orchestrator

// #region imports
import (
	"context"
	"time"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/candidate"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/library"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/results"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/stepcfg"
)
// #endregion imports

// #region phase

// Phase tracks where a session is in its lifecycle. Phases only move
// forward; a finished session is either done or failed, never both.
type Phase string

const (
	PhaseLoading    Phase = "loading"
	PhaseConfigured Phase = "configured"
	PhaseEvaluating Phase = "evaluating"
	PhaseFinalizing Phase = "finalizing"
	PhaseApproving  Phase = "approving"
	PhaseDone       Phase = "done"
	PhaseFailed     Phase = "failed"
)

// #endregion

// #region overall

// Overall is the session's tri-state aggregate outcome. It leaves pending
// exactly once, when the session finalizes.
type Overall string

const (
	OverallPending Overall = "pending"
	OverallPassed  Overall = "passed"
	OverallFailed  Overall = "failed"
)

// #endregion

// #region verdict

// Verdict is the externally visible disposition of a finished session.
// approved_unpublished marks an evaluation that passed but whose library
// publication failed; the evaluation verdict is never reverted.
type Verdict string

const (
	VerdictApproved            Verdict = "approved"
	VerdictApprovedUnpublished Verdict = "approved_unpublished"
	VerdictRejected            Verdict = "rejected"
)

// #endregion

// #region session

// Session is the mutable state of one evaluation attempt. It is created at
// session start and mutated only through Transition.
type Session struct {
	SessionID   string
	CandidateID string
	Version     int
	SubmitterID string
	PipelineID  string

	Phase       Phase
	CurrentStep int // 1-based position in the configured step sequence; never decreases
	RetryCount  int // retries consumed for the current step
	Results     map[int]results.StepResult
	Overall     Overall

	StartedAt  time.Time
	FinishedAt time.Time
}

// #endregion

// #region trigger

// Trigger starts one evaluation session. SessionID must be globally unique
// per attempt and is supplied by the caller.
type Trigger struct {
	CandidateID string
	Version     int
	SubmitterID string
	SessionID   string
	PipelineID  string
}

// #endregion

// #region result

// Result is the structured outcome returned to the caller. Failures are
// always folded into this shape, never surfaced as raw errors.
type Result struct {
	Success       bool
	SessionID     string
	CandidateID   string
	OverallPassed bool
	Verdict       Verdict
	FinalScore    float64
	Scores        map[string]float64
	Feedback      map[string]string
	Error         string
	Warning       string
}

// #endregion

// #region collaborators

// CandidateSource loads the artifact under evaluation.
type CandidateSource interface {
	Get(ctx context.Context, id string, version int) (candidate.Candidate, error)
}

// StepSource supplies the ordered, validated step configs for a pipeline.
type StepSource interface {
	LoadSteps(ctx context.Context, pipelineID string) ([]stepcfg.StepConfig, error)
}

// ResultStore persists finished sessions and verdict corrections.
type ResultStore interface {
	SaveSession(ctx context.Context, rec results.SessionRecord) error
	SetVerdict(ctx context.Context, sessionID, verdict string) error
}

// Publisher writes approved candidates into the shared library.
type Publisher interface {
	Publish(ctx context.Context, cand candidate.Candidate, rec results.SessionRecord) (library.Entry, error)
}

// #endregion
