package gate

// #region action
// Action is what the controller does after checking a step score.
type Action string

const (
	ActionAdvance  Action = "advance"  // step passed and a later step exists
	ActionRetry    Action = "retry"    // step failed with retry budget remaining
	ActionFinalize Action = "finalize" // last step passed, or retries exhausted
)
// #endregion action

// #region gate-config
// Config holds the retry budget for step checks.
type Config struct {
	MaxRetries int // retries per step beyond the first attempt
}

// DefaultConfig returns the standard budget: 3 retries, 4 attempts total.
func DefaultConfig() Config {
	return Config{MaxRetries: 3}
}
// #endregion gate-config

// #region decision
// Decision is the output of checking one step attempt.
type Decision struct {
	Action Action
	Passed bool
	Reason string
}
// #endregion decision
