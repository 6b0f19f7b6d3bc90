package orchestrator

// #region imports
import (
	"time"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/gate"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/results"
)
// #endregion imports

// #region new-session

// NewSession initializes a configured session at step 1.
func NewSession(trig Trigger) Session {
	return Session{
		SessionID:   trig.SessionID,
		CandidateID: trig.CandidateID,
		Version:     trig.Version,
		SubmitterID: trig.SubmitterID,
		PipelineID:  trig.PipelineID,
		Phase:       PhaseConfigured,
		CurrentStep: 1,
		RetryCount:  0,
		Results:     make(map[int]results.StepResult),
		Overall:     OverallPending,
		StartedAt:   time.Now().UTC(),
	}
}

// #endregion

// #region transition

// Transition folds one checked step attempt into the session and returns
// the next session state. It is pure: the input session is never mutated,
// so decisions can be unit-tested without timers or network calls.
//
// Only a final attempt is recorded per step: a retry discards the failing
// attempt and bumps the retry counter, leaving everything else untouched.
func Transition(sess Session, res results.StepResult, d gate.Decision) Session {
	next := sess
	next.Results = make(map[int]results.StepResult, len(sess.Results)+1)
	for k, v := range sess.Results {
		next.Results[k] = v
	}

	switch d.Action {
	case gate.ActionRetry:
		next.RetryCount++
		next.Phase = PhaseEvaluating

	case gate.ActionAdvance:
		next.Results[res.StepNumber] = res
		next.CurrentStep++
		next.RetryCount = 0
		next.Phase = PhaseEvaluating

	case gate.ActionFinalize:
		next.Results[res.StepNumber] = res
		next.Phase = PhaseFinalizing
		if d.Passed {
			next.Overall = OverallPassed
		} else {
			next.Overall = OverallFailed
		}
	}

	return next
}

// #endregion
