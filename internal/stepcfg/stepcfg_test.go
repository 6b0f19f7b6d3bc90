package stepcfg

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/storage"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	r, err := NewRegistry(db)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return r
}

func TestValidateSteps(t *testing.T) {
	valid := []StepConfig{
		{StepNumber: 1, Name: "relevance", Threshold: 0.75, InstructionTemplate: "judge {content}"},
		{StepNumber: 2, Name: "accuracy", Threshold: 0.80, InstructionTemplate: "judge {content}"},
		{StepNumber: 5, Name: "engagement", Threshold: 0.70, InstructionTemplate: "judge {content}"},
	}
	if err := ValidateSteps(valid); err != nil {
		t.Fatalf("valid steps rejected: %v", err)
	}

	if err := ValidateSteps(nil); !errors.Is(err, ErrNoSteps) {
		t.Fatalf("empty steps: got %v, want ErrNoSteps", err)
	}

	cases := []struct {
		name  string
		steps []StepConfig
	}{
		{"zero step number", []StepConfig{{StepNumber: 0, Name: "a", Threshold: 0.5, InstructionTemplate: "x"}}},
		{"duplicate step number", []StepConfig{
			{StepNumber: 1, Name: "a", Threshold: 0.5, InstructionTemplate: "x"},
			{StepNumber: 1, Name: "b", Threshold: 0.5, InstructionTemplate: "x"},
		}},
		{"descending order", []StepConfig{
			{StepNumber: 2, Name: "a", Threshold: 0.5, InstructionTemplate: "x"},
			{StepNumber: 1, Name: "b", Threshold: 0.5, InstructionTemplate: "x"},
		}},
		{"threshold above one", []StepConfig{{StepNumber: 1, Name: "a", Threshold: 1.01, InstructionTemplate: "x"}}},
		{"negative threshold", []StepConfig{{StepNumber: 1, Name: "a", Threshold: -0.1, InstructionTemplate: "x"}}},
		{"empty name", []StepConfig{{StepNumber: 1, Name: "", Threshold: 0.5, InstructionTemplate: "x"}}},
		{"empty template", []StepConfig{{StepNumber: 1, Name: "a", Threshold: 0.5, InstructionTemplate: ""}}},
	}
	for _, tc := range cases {
		if err := ValidateSteps(tc.steps); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestDefaultStepsAreValid(t *testing.T) {
	steps := DefaultSteps()
	if err := ValidateSteps(steps); err != nil {
		t.Fatalf("default steps invalid: %v", err)
	}
	if len(steps) != 3 {
		t.Fatalf("got %d default steps, want 3", len(steps))
	}
	for _, s := range steps {
		if !strings.Contains(s.InstructionTemplate, "{content}") {
			t.Errorf("step %s template missing {content} placeholder", s.Name)
		}
	}
}

func TestLoadStepsFallsBackToDefaults(t *testing.T) {
	r := testRegistry(t)

	steps, err := r.LoadSteps(context.Background(), "unseen-pipeline")
	if err != nil {
		t.Fatalf("load steps: %v", err)
	}
	want := DefaultSteps()
	if len(steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(steps), len(want))
	}
	for i := range steps {
		if steps[i] != want[i] {
			t.Errorf("step %d: got %+v, want %+v", i, steps[i], want[i])
		}
	}
}

func TestSaveAndLoadSteps(t *testing.T) {
	r := testRegistry(t)
	ctx := context.Background()

	custom := []StepConfig{
		{StepNumber: 1, Name: "tone", Threshold: 0.6, InstructionTemplate: "judge tone of {content}"},
		{StepNumber: 3, Name: "depth", Threshold: 0.9, InstructionTemplate: "judge depth of {content}"},
	}
	if err := r.SaveSteps(ctx, "custom", custom); err != nil {
		t.Fatalf("save steps: %v", err)
	}

	steps, err := r.LoadSteps(ctx, "custom")
	if err != nil {
		t.Fatalf("load steps: %v", err)
	}
	if len(steps) != 2 || steps[0].Name != "tone" || steps[1].Name != "depth" {
		t.Fatalf("got %+v, want the two custom steps in order", steps)
	}

	// Other pipelines keep seeing the defaults.
	other, err := r.LoadSteps(ctx, "other")
	if err != nil {
		t.Fatalf("load other pipeline: %v", err)
	}
	if len(other) != len(DefaultSteps()) {
		t.Fatalf("other pipeline got %d steps, want defaults", len(other))
	}
}

func TestSaveStepsReplacesExisting(t *testing.T) {
	r := testRegistry(t)
	ctx := context.Background()

	first := []StepConfig{
		{StepNumber: 1, Name: "a", Threshold: 0.5, InstructionTemplate: "x {content}"},
		{StepNumber: 2, Name: "b", Threshold: 0.5, InstructionTemplate: "y {content}"},
	}
	if err := r.SaveSteps(ctx, "p", first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := []StepConfig{
		{StepNumber: 1, Name: "c", Threshold: 0.7, InstructionTemplate: "z {content}"},
	}
	if err := r.SaveSteps(ctx, "p", second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	steps, err := r.LoadSteps(ctx, "p")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(steps) != 1 || steps[0].Name != "c" {
		t.Fatalf("got %+v, want only the replacement step", steps)
	}
}

func TestSaveStepsRejectsInvalid(t *testing.T) {
	r := testRegistry(t)

	err := r.SaveSteps(context.Background(), "p", []StepConfig{
		{StepNumber: 1, Name: "a", Threshold: 2.0, InstructionTemplate: "x"},
	})
	if err == nil {
		t.Fatal("expected validation error for threshold outside [0, 1]")
	}
}
