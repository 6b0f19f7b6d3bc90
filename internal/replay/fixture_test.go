package replay

import (
	"context"
	"path/filepath"
	"testing"
)

func TestLoadFixtureFromDisk(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "pass_all_steps.json"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	if f.Candidate.ID != "cand-42" || len(f.Steps) != 3 || len(f.Script) != 4 {
		t.Fatalf("fixture parsed wrong: %+v", f)
	}

	steps, err := f.ToSteps()
	if err != nil {
		t.Fatalf("to steps: %v", err)
	}
	if steps[1].Name != "accuracy" || steps[1].Threshold != 0.80 {
		t.Fatalf("step conversion wrong: %+v", steps[1])
	}

	rr, err := Replay(context.Background(), f)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !rr.OK() {
		t.Fatalf("canned fixture diverged: %v", rr.Mismatches)
	}
}

func TestLoadFixtureMissingFile(t *testing.T) {
	if _, err := LoadFixture(filepath.Join("testdata", "nope.json")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}
