// Package stepcfg defines the ordered step configuration for an evaluation
// pipeline and the registry that loads it.
package stepcfg

import (
	"errors"
	"fmt"
)

// ErrNoSteps is returned when a pipeline has no usable step configuration.
// A pipeline must never start a session with zero steps.
var ErrNoSteps = errors.New("pipeline has no step configs")

// #region step-config
// StepConfig is one ordered scoring stage. Instruction templates use
// {content}, {title} and {category} placeholders that are substituted with
// candidate fields at evaluation time.
type StepConfig struct {
	StepNumber          int     // >= 1, unique within a pipeline
	Name                string
	Threshold           float64 // minimum passing score, inclusive, in [0, 1]
	InstructionTemplate string
}
// #endregion step-config

// #region validate
// ValidateSteps rejects malformed configs at load time rather than at
// evaluation time. Steps must already be ordered ascending by step number.
func ValidateSteps(steps []StepConfig) error {
	if len(steps) == 0 {
		return ErrNoSteps
	}
	prev := 0
	for i, s := range steps {
		if s.StepNumber < 1 {
			return fmt.Errorf("step %d: step number %d must be >= 1", i, s.StepNumber)
		}
		if s.StepNumber <= prev {
			return fmt.Errorf("step %d: step number %d not strictly ascending after %d", i, s.StepNumber, prev)
		}
		if s.Name == "" {
			return fmt.Errorf("step %d: empty name", s.StepNumber)
		}
		if s.Threshold < 0 || s.Threshold > 1 {
			return fmt.Errorf("step %d (%s): threshold %.3f outside [0, 1]", s.StepNumber, s.Name, s.Threshold)
		}
		if s.InstructionTemplate == "" {
			return fmt.Errorf("step %d (%s): empty instruction template", s.StepNumber, s.Name)
		}
		prev = s.StepNumber
	}
	return nil
}
// #endregion validate
