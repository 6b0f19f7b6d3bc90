package library

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/candidate"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/results"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/storage"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func testInputs() (candidate.Candidate, results.SessionRecord) {
	cand := candidate.Candidate{
		ID: "cand-1", Version: 1, SubmitterID: "user-1",
		Title: "Ten Kubernetes Pitfalls", Content: "body", Category: "devops",
	}
	rec := results.SessionRecord{
		SessionID:   "sess-1",
		CandidateID: "cand-1",
		Version:     1,
		SubmitterID: "user-1",
		FinalScore:  0.9,
		Steps: []results.StepResult{
			{StepNumber: 1, Name: "relevance", Score: 0.9, Passed: true, Feedback: "on topic"},
			{StepNumber: 2, Name: "accuracy", Score: 0.85, Passed: true, Feedback: "sound"},
		},
	}
	return cand, rec
}

func TestPublishAndList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	cand, rec := testInputs()

	entry, err := s.Publish(ctx, cand, rec)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if entry.EntryID == "" {
		t.Fatal("entry id not assigned")
	}
	if entry.StepScores["accuracy"] != 0.85 || entry.StepFeedback["relevance"] != "on topic" {
		t.Fatalf("step maps wrong: %+v", entry)
	}

	entries, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	got := entries[0]
	if got.EntryID != entry.EntryID || got.Title != cand.Title || got.FinalScore != 0.9 {
		t.Fatalf("got %+v", got)
	}
	if got.StepScores["relevance"] != 0.9 || got.StepFeedback["accuracy"] != "sound" {
		t.Fatalf("step maps did not round-trip: %+v", got)
	}
}

func TestPublishIsAppendOnly(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	cand, rec := testInputs()

	first, err := s.Publish(ctx, cand, rec)
	if err != nil {
		t.Fatalf("first publish: %v", err)
	}
	rec.SessionID = "sess-2"
	second, err := s.Publish(ctx, cand, rec)
	if err != nil {
		t.Fatalf("second publish: %v", err)
	}
	if first.EntryID == second.EntryID {
		t.Fatal("entry ids must be unique per approval")
	}

	entries, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// Re-approving the same candidate appends rather than replacing.
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
}
