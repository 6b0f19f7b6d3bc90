package replay

import (
	"context"
	"testing"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/scorer"
)

func passFixture() *Fixture {
	return &Fixture{
		Description: "all steps pass first try",
		Candidate: FixtureCandidate{
			ID: "cand-1", Version: 1, SubmitterID: "user-1",
			Title: "Ten Kubernetes Pitfalls", Content: "body", Category: "devops",
		},
		Steps: []FixtureStep{
			{StepNumber: 1, Name: "relevance", Threshold: 0.75, InstructionTemplate: "judge {content}"},
			{StepNumber: 2, Name: "accuracy", Threshold: 0.80, InstructionTemplate: "judge {content}"},
		},
		Script: []scorer.ScriptedAttempt{
			{Score: 0.9, Feedback: "on topic"},
			{Score: 0.85, Feedback: "sound"},
		},
		Expected: FixtureExpected{
			OverallPassed: true,
			Verdict:       "approved",
			FinalScore:    0.875,
			ScorerCalls:   2,
			Published:     true,
		},
	}
}

func TestReplayMatchingFixture(t *testing.T) {
	rr, err := Replay(context.Background(), passFixture())
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !rr.OK() {
		t.Fatalf("unexpected mismatches: %v", rr.Mismatches)
	}
	if rr.ScorerCalls != 2 || rr.Published != 1 {
		t.Fatalf("calls=%d published=%d", rr.ScorerCalls, rr.Published)
	}
	if len(rr.Trace) == 0 {
		t.Fatal("replay produced no trace")
	}
}

func TestReplayReportsDivergence(t *testing.T) {
	f := passFixture()
	f.Expected.OverallPassed = false
	f.Expected.Verdict = "rejected"

	rr, err := Replay(context.Background(), f)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if rr.OK() {
		t.Fatal("divergent fixture reported as matching")
	}
	if len(rr.Mismatches) != 2 {
		t.Fatalf("got %d mismatches, want 2: %v", len(rr.Mismatches), rr.Mismatches)
	}
}

func TestReplayRetryScenario(t *testing.T) {
	f := passFixture()
	f.Description = "step 1 fails twice before passing"
	f.Script = []scorer.ScriptedAttempt{
		{Score: 0.5, Feedback: "weak"},
		{Err: "connection reset"},
		{Score: 0.9, Feedback: "on topic"},
		{Score: 0.85, Feedback: "sound"},
	}
	f.Expected = FixtureExpected{
		OverallPassed: true,
		Verdict:       "approved",
		FinalScore:    0.875,
		ScorerCalls:   4,
		Published:     true,
	}

	rr, err := Replay(context.Background(), f)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !rr.OK() {
		t.Fatalf("mismatches: %v", rr.Mismatches)
	}
}

func TestReplayExhaustedRetries(t *testing.T) {
	f := passFixture()
	f.Description = "step 2 exhausts its retry budget"
	f.MaxRetries = 2
	f.Script = []scorer.ScriptedAttempt{
		{Score: 0.9, Feedback: "on topic"},
		{Score: 0.4, Feedback: "shaky"},
		{Score: 0.4, Feedback: "shaky"},
		{Score: 0.4, Feedback: "shaky"},
	}
	f.Expected = FixtureExpected{
		OverallPassed: false,
		Verdict:       "rejected",
		FinalScore:    0.65,
		ScorerCalls:   4,
		Published:     false,
	}

	rr, err := Replay(context.Background(), f)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !rr.OK() {
		t.Fatalf("mismatches: %v", rr.Mismatches)
	}
}

func TestReplayRejectsBadFixtureSteps(t *testing.T) {
	f := passFixture()
	f.Steps = nil

	if _, err := Replay(context.Background(), f); err == nil {
		t.Fatal("fixture without steps should fail validation")
	}
}
