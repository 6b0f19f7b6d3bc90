// Package library is the append-only store of approved candidates. Every
// approval creates a new immutable entry; entries are never updated or
// deleted.
package library

import "time"

// #region entry
// Entry is one published approval of a candidate.
type Entry struct {
	EntryID      string
	CandidateID  string
	Version      int
	SessionID    string
	ApprovedBy   string
	ApprovedAt   time.Time
	FinalScore   float64 // mean of the evaluated step scores
	StepScores   map[string]float64
	StepFeedback map[string]string
	Title        string
	Content      string
	Category     string
}
// #endregion entry
