package gate

import "testing"

func TestDecideInclusiveThreshold(t *testing.T) {
	g := New(DefaultConfig())

	// A score exactly at the threshold passes.
	d := g.Decide(0.75, 0.75, 0, true)
	if d.Action != ActionAdvance || !d.Passed {
		t.Fatalf("score at threshold: got action=%s passed=%v, want advance/true", d.Action, d.Passed)
	}

	d = g.Decide(0.7499, 0.75, 0, true)
	if d.Action != ActionRetry || d.Passed {
		t.Fatalf("score below threshold: got action=%s passed=%v, want retry/false", d.Action, d.Passed)
	}
}

func TestDecideLastStepFinalizes(t *testing.T) {
	g := New(DefaultConfig())

	d := g.Decide(0.9, 0.7, 0, false)
	if d.Action != ActionFinalize || !d.Passed {
		t.Fatalf("passing last step: got action=%s passed=%v, want finalize/true", d.Action, d.Passed)
	}
}

func TestDecideRetryBudget(t *testing.T) {
	g := New(Config{MaxRetries: 3})

	for retry := 0; retry < 3; retry++ {
		d := g.Decide(0.1, 0.8, retry, true)
		if d.Action != ActionRetry {
			t.Fatalf("retry %d: got action=%s, want retry", retry, d.Action)
		}
	}

	// Fourth failing attempt exhausts the budget regardless of later steps.
	d := g.Decide(0.1, 0.8, 3, true)
	if d.Action != ActionFinalize || d.Passed {
		t.Fatalf("exhausted budget: got action=%s passed=%v, want finalize/false", d.Action, d.Passed)
	}
}

func TestDecideZeroRetries(t *testing.T) {
	g := New(Config{MaxRetries: 0})

	d := g.Decide(0.1, 0.8, 0, true)
	if d.Action != ActionFinalize {
		t.Fatalf("no retry budget: got action=%s, want finalize", d.Action)
	}
}
