package trace

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DefaultTTL is the retention window for trace rows. Events are diagnostic
// only, so they expire.
const DefaultTTL = 30 * 24 * time.Hour

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS trace_events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	step_number INTEGER NOT NULL DEFAULT 0,
	kind        TEXT NOT NULL,
	message     TEXT,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trace_events_session
ON trace_events(session_id, id);
`
// #endregion schema

// #region sqlite-sink
// SQLiteSink persists trace events with a bounded retention window.
type SQLiteSink struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSQLiteSink runs migrations, purges expired rows, and returns a sink.
// ttl <= 0 uses DefaultTTL.
func NewSQLiteSink(db *sql.DB, ttl time.Duration) (*SQLiteSink, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate trace events: %w", err)
	}
	s := &SQLiteSink{db: db, ttl: ttl}
	if _, err := s.PurgeExpired(time.Now().UTC()); err != nil {
		return nil, err
	}
	return s, nil
}
// #endregion sqlite-sink

// #region append
// Append implements Sink.
func (s *SQLiteSink) Append(ctx context.Context, ev Event) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trace_events (session_id, step_number, kind, message, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		ev.SessionID, ev.StepNumber, string(ev.Kind), nullIfEmpty(ev.Message),
		ev.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append trace event: %w", err)
	}
	return nil
}
// #endregion append

// #region purge
// PurgeExpired deletes events older than the retention window as of now.
// Returns the number of rows removed.
func (s *SQLiteSink) PurgeExpired(now time.Time) (int64, error) {
	cutoff := now.Add(-s.ttl).Format(time.RFC3339Nano)
	res, err := s.db.Exec(`DELETE FROM trace_events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge trace events: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
// #endregion purge

// #region session-events
// SessionEvents returns the events for one session in emission order. Used
// by inspection tools, never by the pipeline itself.
func (s *SQLiteSink) SessionEvents(ctx context.Context, sessionID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, step_number, kind, message, created_at
		 FROM trace_events WHERE session_id = ? ORDER BY id ASC`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("session events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var message sql.NullString
		var createdStr string
		if err := rows.Scan(&ev.SessionID, &ev.StepNumber, (*string)(&ev.Kind), &message, &createdStr); err != nil {
			return nil, fmt.Errorf("scan trace event: %w", err)
		}
		if message.Valid {
			ev.Message = message.String
		}
		ev.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		events = append(events, ev)
	}
	return events, rows.Err()
}
// #endregion session-events

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
// #endregion helpers
