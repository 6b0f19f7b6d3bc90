// Package replay runs recorded evaluation scenarios through the real state
// machine with a scripted scorer, entirely in memory, for deterministic
// regression checks.
package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/candidate"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/scorer"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/stepcfg"
)

// #region fixture-types

// Fixture is the top-level JSON structure for one replay scenario.
type Fixture struct {
	Description string                   `json:"description"`
	Candidate   FixtureCandidate         `json:"candidate"`
	Steps       []FixtureStep            `json:"steps"`
	MaxRetries  int                      `json:"max_retries,omitempty"`
	Script      []scorer.ScriptedAttempt `json:"script"`
	Expected    FixtureExpected          `json:"expected"`
}

// FixtureCandidate mirrors candidate.Candidate with JSON tags.
type FixtureCandidate struct {
	ID          string `json:"id"`
	Version     int    `json:"version"`
	SubmitterID string `json:"submitter_id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Category    string `json:"category,omitempty"`
}

// FixtureStep mirrors stepcfg.StepConfig with JSON tags.
type FixtureStep struct {
	StepNumber          int     `json:"step_number"`
	Name                string  `json:"name"`
	Threshold           float64 `json:"threshold"`
	InstructionTemplate string  `json:"instruction_template"`
}

// FixtureExpected captures the expected session outcome.
type FixtureExpected struct {
	OverallPassed bool    `json:"overall_passed"`
	Verdict       string  `json:"verdict"`
	FinalScore    float64 `json:"final_score"`
	ScorerCalls   int     `json:"scorer_calls"`
	Published     bool    `json:"published"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToCandidate converts the fixture candidate to the domain type.
func (fc *FixtureCandidate) ToCandidate() candidate.Candidate {
	return candidate.Candidate{
		ID:          fc.ID,
		Version:     fc.Version,
		SubmitterID: fc.SubmitterID,
		Title:       fc.Title,
		Content:     fc.Content,
		Category:    fc.Category,
	}
}

// ToSteps converts fixture steps to validated domain configs.
func (f *Fixture) ToSteps() ([]stepcfg.StepConfig, error) {
	steps := make([]stepcfg.StepConfig, len(f.Steps))
	for i, fs := range f.Steps {
		steps[i] = stepcfg.StepConfig{
			StepNumber:          fs.StepNumber,
			Name:                fs.Name,
			Threshold:           fs.Threshold,
			InstructionTemplate: fs.InstructionTemplate,
		}
	}
	if err := stepcfg.ValidateSteps(steps); err != nil {
		return nil, fmt.Errorf("fixture steps: %w", err)
	}
	return steps, nil
}

// #endregion fixture-loader
