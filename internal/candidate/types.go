package candidate

import "time"

// #region candidate
// Candidate is one artifact under evaluation: a prompt template or a
// generated title batch. A candidate is immutable per (id, version); a new
// revision of the same artifact gets a new version number.
type Candidate struct {
	ID          string
	Version     int
	SubmitterID string
	Title       string
	Content     string
	Category    string
	CreatedAt   time.Time
}
// #endregion candidate
