// Package results aggregates per-step scores into an overall verdict and
// persists session outcomes.
package results

import "time"

// #region step-result
// StepResult is the final attempt for one step in one session. Intermediate
// retry attempts are not retained.
type StepResult struct {
	StepNumber int
	Name       string
	Score      float64
	Passed     bool // Score >= the step's threshold, inclusive
	Feedback   string
	RetryCount int // retries consumed before this result
	Timestamp  time.Time
}
// #endregion step-result

// #region session-record
// SessionRecord is the persisted outcome of one evaluation session.
type SessionRecord struct {
	SessionID   string
	CandidateID string
	Version     int
	SubmitterID string
	PipelineID  string
	Overall     string // "pending" | "passed" | "failed"
	Verdict     string // "approved" | "approved_unpublished" | "rejected"
	FinalScore  float64
	Reason      string
	Steps       []StepResult
	StartedAt   time.Time
	FinishedAt  time.Time
}
// #endregion session-record

// #region summary
// Summary is the aggregate view over a session's final step results.
type Summary struct {
	OverallPassed bool
	FinalScore    float64 // mean of evaluated step scores; 0 when none ran
	Evaluated     int
	Configured    int
	Reason        string
}
// #endregion summary
