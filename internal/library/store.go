package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/candidate"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/results"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS library_entries (
	entry_id      TEXT PRIMARY KEY,
	candidate_id  TEXT NOT NULL,
	version       INTEGER NOT NULL,
	session_id    TEXT NOT NULL,
	approved_by   TEXT NOT NULL,
	approved_at   TEXT NOT NULL,
	final_score   REAL NOT NULL,
	step_scores   TEXT NOT NULL,
	step_feedback TEXT NOT NULL,
	title         TEXT NOT NULL,
	content       TEXT NOT NULL,
	category      TEXT
);

CREATE INDEX IF NOT EXISTS idx_library_entries_candidate
ON library_entries(candidate_id, approved_at);
`
// #endregion schema

// #region store-struct
// Store publishes approved candidates into the shared library.
type Store struct {
	db *sql.DB
}

// NewStore runs migrations and returns a library store.
func NewStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate library: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion store-struct

// #region publish
// Publish writes a new uniquely identified entry for an approved session.
// Prior entries for the same candidate are left untouched; each approval is
// a new version in the library.
func (s *Store) Publish(ctx context.Context, cand candidate.Candidate, rec results.SessionRecord) (Entry, error) {
	entry := Entry{
		EntryID:      uuid.New().String(),
		CandidateID:  cand.ID,
		Version:      cand.Version,
		SessionID:    rec.SessionID,
		ApprovedBy:   rec.SubmitterID,
		ApprovedAt:   time.Now().UTC(),
		FinalScore:   rec.FinalScore,
		StepScores:   make(map[string]float64, len(rec.Steps)),
		StepFeedback: make(map[string]string, len(rec.Steps)),
		Title:        cand.Title,
		Content:      cand.Content,
		Category:     cand.Category,
	}
	for _, sr := range rec.Steps {
		entry.StepScores[sr.Name] = sr.Score
		entry.StepFeedback[sr.Name] = sr.Feedback
	}

	scoresJSON, err := json.Marshal(entry.StepScores)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal step scores: %w", err)
	}
	feedbackJSON, err := json.Marshal(entry.StepFeedback)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal step feedback: %w", err)
	}

	var categoryPtr interface{}
	if entry.Category != "" {
		categoryPtr = entry.Category
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO library_entries
		 (entry_id, candidate_id, version, session_id, approved_by, approved_at, final_score, step_scores, step_feedback, title, content, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.EntryID, entry.CandidateID, entry.Version, entry.SessionID, entry.ApprovedBy,
		entry.ApprovedAt.Format(time.RFC3339Nano), entry.FinalScore,
		string(scoresJSON), string(feedbackJSON), entry.Title, entry.Content, categoryPtr,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert library entry for %s: %w", cand.ID, err)
	}
	return entry, nil
}
// #endregion publish

// #region list
// List returns the most recently approved entries.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT entry_id, candidate_id, version, session_id, approved_by, approved_at, final_score, step_scores, step_feedback, title, content, category
		 FROM library_entries ORDER BY approved_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list library entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var approvedStr, scoresJSON, feedbackJSON string
		var category sql.NullString
		if err := rows.Scan(&e.EntryID, &e.CandidateID, &e.Version, &e.SessionID, &e.ApprovedBy,
			&approvedStr, &e.FinalScore, &scoresJSON, &feedbackJSON, &e.Title, &e.Content, &category); err != nil {
			return nil, fmt.Errorf("scan library entry: %w", err)
		}
		e.ApprovedAt, _ = time.Parse(time.RFC3339Nano, approvedStr)
		if category.Valid {
			e.Category = category.String
		}
		if err := json.Unmarshal([]byte(scoresJSON), &e.StepScores); err != nil {
			return nil, fmt.Errorf("unmarshal step scores: %w", err)
		}
		if err := json.Unmarshal([]byte(feedbackJSON), &e.StepFeedback); err != nil {
			return nil, fmt.Errorf("unmarshal step feedback: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
// #endregion list
