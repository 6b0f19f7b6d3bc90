package stepcfg

// #region default-steps

// DefaultSteps returns the built-in evaluation sequence used when a pipeline
// has no persisted configuration: relevance, then accuracy, then engagement.
func DefaultSteps() []StepConfig {
	return []StepConfig{
		{
			StepNumber: 1,
			Name:       "relevance",
			Threshold:  0.75,
			InstructionTemplate: "Judge how well this artifact matches its stated category ({category}) " +
				"and title ({title}). Consider topical fit and audience intent.\n\n{content}",
		},
		{
			StepNumber: 2,
			Name:       "accuracy",
			Threshold:  0.80,
			InstructionTemplate: "Judge the factual soundness and internal consistency of this artifact. " +
				"Penalize fabricated claims, contradictions, and misleading framing.\n\n{content}",
		},
		{
			StepNumber: 3,
			Name:       "engagement",
			Threshold:  0.70,
			InstructionTemplate: "Judge how compelling this artifact is for readers of {category} content: " +
				"clarity, hook strength, and tone. Weigh feedback raised by earlier review stages.\n\n{content}",
		},
	}
}

// #endregion default-steps
