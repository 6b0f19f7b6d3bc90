package orchestrator

// #region imports
import (
	"strings"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/candidate"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/results"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/stepcfg"
)
// #endregion imports

// #region render

// renderInstructions substitutes candidate fields into a step's instruction
// template. Templates use {content}, {title} and {category} placeholders.
// The template itself is never mutated, so retries of the same step see
// identical instructions.
func renderInstructions(template string, cand candidate.Candidate) string {
	r := strings.NewReplacer(
		"{content}", cand.Content,
		"{title}", cand.Title,
		"{category}", cand.Category,
	)
	return r.Replace(template)
}

// #endregion

// #region prior-outputs

// priorOutputs collects the feedback of already-completed steps keyed by
// step name, in config order, for prior-step chaining.
func priorOutputs(sess Session, steps []stepcfg.StepConfig) map[string]string {
	prior := make(map[string]string)
	for i := 0; i < sess.CurrentStep-1 && i < len(steps); i++ {
		cfg := steps[i]
		if res, ok := sess.Results[cfg.StepNumber]; ok {
			prior[cfg.Name] = res.Feedback
		}
	}
	return prior
}

// resultsByName projects final step results into the name-keyed maps of the
// caller-facing Result.
func resultsByName(byStep map[int]results.StepResult) (map[string]float64, map[string]string) {
	scores := make(map[string]float64, len(byStep))
	feedback := make(map[string]string, len(byStep))
	for _, res := range byStep {
		scores[res.Name] = res.Score
		feedback[res.Name] = res.Feedback
	}
	return scores, feedback
}

// #endregion
