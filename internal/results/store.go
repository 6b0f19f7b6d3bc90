package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS evaluation_sessions (
	session_id   TEXT PRIMARY KEY,
	candidate_id TEXT NOT NULL,
	version      INTEGER NOT NULL,
	submitter_id TEXT NOT NULL,
	pipeline_id  TEXT NOT NULL,
	overall      TEXT NOT NULL,
	verdict      TEXT NOT NULL,
	final_score  REAL NOT NULL DEFAULT 0,
	reason       TEXT,
	started_at   TEXT NOT NULL,
	finished_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS step_results (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	step_number INTEGER NOT NULL,
	name        TEXT NOT NULL,
	score       REAL NOT NULL,
	passed      INTEGER NOT NULL DEFAULT 0,
	feedback    TEXT,
	retry_count INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL,
	UNIQUE (session_id, step_number),
	FOREIGN KEY (session_id) REFERENCES evaluation_sessions(session_id)
);
`
// #endregion schema

// #region store-struct
// Store persists session outcomes and their final step results. Only the
// owning session's controller ever writes its rows, so no cross-session
// locking is needed.
type Store struct {
	db *sql.DB
}

// NewStore runs migrations and returns a result store.
func NewStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate results: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion store-struct

// #region save-session
// SaveSession writes a finished session and all its step results atomically.
func (s *Store) SaveSession(ctx context.Context, rec SessionRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO evaluation_sessions
		 (session_id, candidate_id, version, submitter_id, pipeline_id, overall, verdict, final_score, reason, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.CandidateID, rec.Version, rec.SubmitterID, rec.PipelineID,
		rec.Overall, rec.Verdict, rec.FinalScore, nullIfEmpty(rec.Reason),
		rec.StartedAt.Format(time.RFC3339Nano), rec.FinishedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", rec.SessionID, err)
	}

	for _, sr := range rec.Steps {
		passed := 0
		if sr.Passed {
			passed = 1
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO step_results (session_id, step_number, name, score, passed, feedback, retry_count, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.SessionID, sr.StepNumber, sr.Name, sr.Score, passed,
			nullIfEmpty(sr.Feedback), sr.RetryCount, sr.Timestamp.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("insert step result %d for %s: %w", sr.StepNumber, rec.SessionID, err)
		}
	}

	return tx.Commit()
}
// #endregion save-session

// #region set-verdict
// SetVerdict updates a saved session's verdict, e.g. when publishing fails
// after an approved evaluation.
func (s *Store) SetVerdict(ctx context.Context, sessionID, verdict string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE evaluation_sessions SET verdict = ? WHERE session_id = ?`, verdict, sessionID,
	)
	if err != nil {
		return fmt.Errorf("set verdict for %s: %w", sessionID, err)
	}
	return nil
}
// #endregion set-verdict

// #region get-session
// GetSession loads one session with its step results.
func (s *Store) GetSession(ctx context.Context, sessionID string) (SessionRecord, error) {
	var rec SessionRecord
	var reason sql.NullString
	var startedStr, finishedStr string

	err := s.db.QueryRowContext(ctx,
		`SELECT session_id, candidate_id, version, submitter_id, pipeline_id, overall, verdict, final_score, reason, started_at, finished_at
		 FROM evaluation_sessions WHERE session_id = ?`, sessionID,
	).Scan(&rec.SessionID, &rec.CandidateID, &rec.Version, &rec.SubmitterID, &rec.PipelineID,
		&rec.Overall, &rec.Verdict, &rec.FinalScore, &reason, &startedStr, &finishedStr)
	if err != nil {
		return SessionRecord{}, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	if reason.Valid {
		rec.Reason = reason.String
	}
	rec.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
	rec.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedStr)

	rows, err := s.db.QueryContext(ctx,
		`SELECT step_number, name, score, passed, feedback, retry_count, created_at
		 FROM step_results WHERE session_id = ? ORDER BY step_number ASC`, sessionID,
	)
	if err != nil {
		return SessionRecord{}, fmt.Errorf("get step results for %s: %w", sessionID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sr StepResult
		var passed int
		var feedback sql.NullString
		var createdStr string
		if err := rows.Scan(&sr.StepNumber, &sr.Name, &sr.Score, &passed, &feedback, &sr.RetryCount, &createdStr); err != nil {
			return SessionRecord{}, fmt.Errorf("scan step result: %w", err)
		}
		sr.Passed = passed != 0
		if feedback.Valid {
			sr.Feedback = feedback.String
		}
		sr.Timestamp, _ = time.Parse(time.RFC3339Nano, createdStr)
		rec.Steps = append(rec.Steps, sr)
	}
	return rec, rows.Err()
}
// #endregion get-session

// #region list-sessions
// ListSessions returns the most recently finished sessions without their
// step results.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, candidate_id, version, submitter_id, pipeline_id, overall, verdict, final_score, reason, started_at, finished_at
		 FROM evaluation_sessions ORDER BY finished_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var reason sql.NullString
		var startedStr, finishedStr string
		if err := rows.Scan(&rec.SessionID, &rec.CandidateID, &rec.Version, &rec.SubmitterID, &rec.PipelineID,
			&rec.Overall, &rec.Verdict, &rec.FinalScore, &reason, &startedStr, &finishedStr); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if reason.Valid {
			rec.Reason = reason.String
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
		rec.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}
// #endregion list-sessions

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
// #endregion helpers
