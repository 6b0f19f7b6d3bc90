// Package gate decides, for one scored step attempt, whether the session
// advances, retries the step, or finalizes. The decision is pure: score and
// budget in, action out.
package gate

import "fmt"

// #region gate
// Gate applies the inclusive threshold check and the per-step retry budget.
type Gate struct {
	config Config
}

// New creates a gate with the given configuration.
func New(config Config) *Gate {
	return &Gate{config: config}
}

// Decide checks score against threshold. The comparison is inclusive: a
// score exactly at threshold passes. retryCount is the number of retries
// already consumed for the current step; hasNext reports whether a later
// step is configured.
func (g *Gate) Decide(score, threshold float64, retryCount int, hasNext bool) Decision {
	if score >= threshold {
		if hasNext {
			return Decision{
				Action: ActionAdvance,
				Passed: true,
				Reason: fmt.Sprintf("score %.3f >= threshold %.3f", score, threshold),
			}
		}
		return Decision{
			Action: ActionFinalize,
			Passed: true,
			Reason: fmt.Sprintf("final step passed: score %.3f >= threshold %.3f", score, threshold),
		}
	}

	if retryCount < g.config.MaxRetries {
		return Decision{
			Action: ActionRetry,
			Passed: false,
			Reason: fmt.Sprintf("score %.3f below threshold %.3f, retry %d/%d",
				score, threshold, retryCount+1, g.config.MaxRetries),
		}
	}

	return Decision{
		Action: ActionFinalize,
		Passed: false,
		Reason: fmt.Sprintf("retry budget exhausted: score %.3f below threshold %.3f after %d attempts",
			score, threshold, retryCount+1),
	}
}
// #endregion gate
