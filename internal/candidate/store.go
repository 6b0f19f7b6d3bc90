package candidate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no candidate exists for an (id, version) pair.
var ErrNotFound = errors.New("candidate not found")

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS candidates (
	candidate_id TEXT NOT NULL,
	version      INTEGER NOT NULL,
	submitter_id TEXT NOT NULL,
	title        TEXT NOT NULL,
	content      TEXT NOT NULL,
	category     TEXT,
	created_at   TEXT NOT NULL,
	PRIMARY KEY (candidate_id, version)
);
`
// #endregion schema

// #region store-struct
// Store reads and seeds candidates in SQLite. The pipeline only ever reads;
// Put exists for seeding tools and tests.
type Store struct {
	db *sql.DB
}

// NewStore runs migrations and returns a candidate store.
func NewStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate candidates: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion store-struct

// #region get
// Get fetches a candidate by id and version.
func (s *Store) Get(ctx context.Context, id string, version int) (Candidate, error) {
	var c Candidate
	var category sql.NullString
	var createdStr string

	err := s.db.QueryRowContext(ctx,
		`SELECT candidate_id, version, submitter_id, title, content, category, created_at
		 FROM candidates WHERE candidate_id = ? AND version = ?`, id, version,
	).Scan(&c.ID, &c.Version, &c.SubmitterID, &c.Title, &c.Content, &category, &createdStr)
	if errors.Is(err, sql.ErrNoRows) {
		return Candidate{}, fmt.Errorf("candidate %s v%d: %w", id, version, ErrNotFound)
	}
	if err != nil {
		return Candidate{}, fmt.Errorf("get candidate %s v%d: %w", id, version, err)
	}

	if category.Valid {
		c.Category = category.String
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return c, nil
}
// #endregion get

// #region put
// Put inserts a new candidate version. Existing (id, version) rows are never
// overwritten; attempting to do so is an error.
func (s *Store) Put(ctx context.Context, c Candidate) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	var categoryPtr interface{}
	if c.Category != "" {
		categoryPtr = c.Category
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO candidates (candidate_id, version, submitter_id, title, content, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Version, c.SubmitterID, c.Title, c.Content, categoryPtr,
		c.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert candidate %s v%d: %w", c.ID, c.Version, err)
	}
	return nil
}
// #endregion put
