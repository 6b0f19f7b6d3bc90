package replay

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/candidate"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/library"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/orchestrator"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/results"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/scorer"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/stepcfg"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/trace"
)

const scoreTolerance = 1e-6

// #region replay-result

// ReplayResult is the outcome of replaying one fixture, plus any
// divergences from its expectations.
type ReplayResult struct {
	Result      orchestrator.Result
	ScorerCalls int
	Published   int
	Trace       []trace.Event
	Mismatches  []string
}

// OK reports whether the replay matched every expectation.
func (r *ReplayResult) OK() bool {
	return len(r.Mismatches) == 0
}

// #endregion replay-result

// #region replay

// Replay drives the fixture through the real controller with in-memory
// collaborators and a scripted scorer, then diffs the outcome against the
// fixture's expectations.
func Replay(ctx context.Context, f *Fixture) (ReplayResult, error) {
	steps, err := f.ToSteps()
	if err != nil {
		return ReplayResult{}, err
	}

	cand := f.Candidate.ToCandidate()
	sc := scorer.NewScripted(f.Script)
	sink := trace.NewMemorySink()
	lib := &memoryLibrary{}

	ctrl := orchestrator.New(
		orchestrator.Config{PipelineID: "replay", MaxRetries: f.MaxRetries},
		orchestrator.Deps{
			Candidates: &memoryCandidates{cand: cand},
			Steps:      &memorySteps{steps: steps},
			Scorer:     sc,
			Results:    &memoryResults{},
			Publisher:  lib,
			Trace:      sink,
		},
	)

	res := ctrl.Run(ctx, orchestrator.Trigger{
		CandidateID: cand.ID,
		Version:     cand.Version,
		SubmitterID: cand.SubmitterID,
		SessionID:   "replay-session",
		PipelineID:  "replay",
	})

	rr := ReplayResult{
		Result:      res,
		ScorerCalls: sc.Calls(),
		Published:   lib.count(),
		Trace:       sink.Events(),
	}
	rr.Mismatches = diff(f.Expected, rr)
	return rr, nil
}

// diff compares the replay outcome to the fixture expectations.
func diff(want FixtureExpected, got ReplayResult) []string {
	var out []string
	if got.Result.OverallPassed != want.OverallPassed {
		out = append(out, fmt.Sprintf("overall_passed: want %v, got %v", want.OverallPassed, got.Result.OverallPassed))
	}
	if want.Verdict != "" && string(got.Result.Verdict) != want.Verdict {
		out = append(out, fmt.Sprintf("verdict: want %s, got %s", want.Verdict, got.Result.Verdict))
	}
	if math.Abs(got.Result.FinalScore-want.FinalScore) > scoreTolerance {
		out = append(out, fmt.Sprintf("final_score: want %.6f, got %.6f", want.FinalScore, got.Result.FinalScore))
	}
	if want.ScorerCalls > 0 && got.ScorerCalls != want.ScorerCalls {
		out = append(out, fmt.Sprintf("scorer_calls: want %d, got %d", want.ScorerCalls, got.ScorerCalls))
	}
	published := got.Published > 0
	if published != want.Published {
		out = append(out, fmt.Sprintf("published: want %v, got %v", want.Published, published))
	}
	return out
}

// #endregion replay

// #region memory-collaborators

type memoryCandidates struct {
	cand candidate.Candidate
}

func (m *memoryCandidates) Get(_ context.Context, id string, version int) (candidate.Candidate, error) {
	if id != m.cand.ID || version != m.cand.Version {
		return candidate.Candidate{}, candidate.ErrNotFound
	}
	return m.cand, nil
}

type memorySteps struct {
	steps []stepcfg.StepConfig
}

func (m *memorySteps) LoadSteps(context.Context, string) ([]stepcfg.StepConfig, error) {
	return m.steps, nil
}

type memoryResults struct {
	mu   sync.Mutex
	recs map[string]results.SessionRecord
}

func (m *memoryResults) SaveSession(_ context.Context, rec results.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recs == nil {
		m.recs = make(map[string]results.SessionRecord)
	}
	m.recs[rec.SessionID] = rec
	return nil
}

func (m *memoryResults) SetVerdict(_ context.Context, sessionID, verdict string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.recs[sessionID]; ok {
		rec.Verdict = verdict
		m.recs[sessionID] = rec
	}
	return nil
}

type memoryLibrary struct {
	mu      sync.Mutex
	entries []library.Entry
}

func (m *memoryLibrary) Publish(_ context.Context, cand candidate.Candidate, rec results.SessionRecord) (library.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := library.Entry{
		EntryID:     fmt.Sprintf("replay-entry-%d", len(m.entries)+1),
		CandidateID: cand.ID,
		Version:     cand.Version,
		SessionID:   rec.SessionID,
		FinalScore:  rec.FinalScore,
	}
	m.entries = append(m.entries, entry)
	return entry, nil
}

func (m *memoryLibrary) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// #endregion memory-collaborators
