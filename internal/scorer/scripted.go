package scorer

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// #region scripted
// ScriptedAttempt is one pre-recorded scorer outcome. A non-empty Err
// simulates a transport or parse failure instead of a result.
type ScriptedAttempt struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
	Err      string  `json:"error,omitempty"`
}

// Scripted replays a fixed sequence of attempts in call order. It backs the
// replay harness and deterministic tests; no model is involved.
type Scripted struct {
	mu       sync.Mutex
	attempts []ScriptedAttempt
	requests []Request
	next     int
}

// NewScripted creates a scripted scorer over the given attempt sequence.
func NewScripted(attempts []ScriptedAttempt) *Scripted {
	return &Scripted{attempts: attempts}
}
// #endregion scripted

// #region score
// Score implements Gateway by consuming the next scripted attempt.
func (s *Scripted) Score(ctx context.Context, req Request) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	if s.next >= len(s.attempts) {
		return Result{}, fmt.Errorf("scripted scorer exhausted after %d calls", s.next)
	}
	a := s.attempts[s.next]
	s.next++

	if a.Err != "" {
		return Result{}, errors.New(a.Err)
	}
	return Result{Score: a.Score, Feedback: a.Feedback}, nil
}
// #endregion score

// #region introspection
// Calls reports how many times Score was invoked.
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns a copy of every request seen, in call order.
func (s *Scripted) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}
// #endregion introspection
