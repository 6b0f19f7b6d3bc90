package results

import (
	"fmt"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/stepcfg"
)

// #region summarize
// Summarize combines the final step results of a session into an overall
// verdict. Overall pass requires every configured step to have a passing
// final result; steps never evaluated because of early termination count as
// failed for the verdict but are excluded from the mean score.
func Summarize(steps []stepcfg.StepConfig, byStep map[int]StepResult) Summary {
	sum := Summary{Configured: len(steps), OverallPassed: true}

	var scoreTotal float64
	var firstFailure string

	for _, cfg := range steps {
		res, ok := byStep[cfg.StepNumber]
		if !ok {
			sum.OverallPassed = false
			if firstFailure == "" {
				firstFailure = fmt.Sprintf("step %d (%s) never evaluated", cfg.StepNumber, cfg.Name)
			}
			continue
		}
		sum.Evaluated++
		scoreTotal += res.Score
		if !res.Passed {
			sum.OverallPassed = false
			if firstFailure == "" {
				firstFailure = fmt.Sprintf("step %d (%s) failed with score %.3f after %d attempts",
					cfg.StepNumber, cfg.Name, res.Score, res.RetryCount+1)
			}
		}
	}

	if sum.Evaluated > 0 {
		sum.FinalScore = scoreTotal / float64(sum.Evaluated)
	}

	if sum.OverallPassed {
		sum.Reason = fmt.Sprintf("all %d steps passed, mean score %.3f", sum.Configured, sum.FinalScore)
	} else {
		sum.Reason = firstFailure
	}
	return sum
}
// #endregion summarize
