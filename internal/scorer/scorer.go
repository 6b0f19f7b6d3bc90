// Package scorer defines the gateway contract to the external text-scoring
// service and its implementations. The pipeline treats the scorer as opaque:
// instructions plus candidate content in, a numeric score plus feedback out.
package scorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMalformedResponse is returned when the scorer output cannot be parsed
// into a score/feedback pair.
var ErrMalformedResponse = errors.New("malformed scorer response")

// #region types
// Request carries one step evaluation to the scorer.
type Request struct {
	Instructions string
	Content      string
	Prior        map[string]string // step name -> feedback from completed steps
}

// Result is the scorer's verdict for one attempt.
type Result struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Gateway scores candidate content against step instructions.
type Gateway interface {
	Score(ctx context.Context, req Request) (Result, error)
}
// #endregion types

// #region clamp
// Clamp forces a score into [0, 1] regardless of what the scorer returned.
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
// #endregion clamp

// #region parse
// parseResult extracts a Result from raw model output. Tolerates prose and
// fenced code blocks around the JSON object.
func parseResult(raw string) (Result, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return Result{}, fmt.Errorf("no JSON object in %q: %w", truncate(raw, 80), ErrMalformedResponse)
	}
	var res Result
	if err := json.Unmarshal([]byte(raw[start:end+1]), &res); err != nil {
		return Result{}, fmt.Errorf("parse scorer JSON: %v: %w", err, ErrMalformedResponse)
	}
	return res, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
// #endregion parse

// #region prior-block
// priorBlock renders prior step feedback in step-name order so retries see
// byte-identical input for identical sessions.
func priorBlock(prior map[string]string) string {
	if len(prior) == 0 {
		return ""
	}
	names := make([]string, 0, len(prior))
	for name := range prior {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("\n\nFeedback from earlier stages:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: %s\n", name, prior[name])
	}
	return b.String()
}
// #endregion prior-block
