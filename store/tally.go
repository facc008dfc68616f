// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// CandidateID returns the id of the n-th seeded candidate (1-indexed).
func CandidateID(n int) string {
	return fmt.Sprintf("candidate-%d", n)
}

// CandidateTally is one row of candidate_tally.
type CandidateTally struct {
	CandidateID string `db:"candidate_id" json:"candidate_id"`
	VoteCount   int    `db:"vote_count" json:"vote_count"`
}

// Tallies is the per-candidate vote counter table.
type Tallies struct {
	db *sqlx.DB
	q  statements
}

func NewTallies(db *sqlx.DB) *Tallies {
	return &Tallies{
		db: db,
		q: rebind(db, map[string]string{
			"count":     `SELECT COUNT(*) FROM candidate_tally`,
			"insert":    `INSERT INTO candidate_tally (candidate_id, vote_count) VALUES (?, 0)`,
			"increment": `UPDATE candidate_tally SET vote_count = vote_count + 1 WHERE candidate_id = ?`,
			"snapshot":  `SELECT candidate_id, vote_count FROM candidate_tally`,
			"ids":       `SELECT candidate_id FROM candidate_tally ORDER BY LENGTH(candidate_id), candidate_id`,
			"reset":     `DELETE FROM candidate_tally`,
		}),
	}
}

// Initialize seeds candidate-1..candidate-N with zero votes. The store must
// be empty; call Reset first when re-seeding.
func (t *Tallies) Initialize(ctx context.Context, candidateCount int) error {
	if candidateCount < 1 {
		return fmt.Errorf("%w: candidate count must be at least 1, got %d", ErrConfiguration, candidateCount)
	}

	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return castErr("begin initialize", err)
	}
	defer tx.Rollback()

	var existing int
	if err := tx.GetContext(ctx, &existing, t.q["count"]); err != nil {
		return castErr("count tallies", err)
	}
	if existing > 0 {
		return ErrAlreadyInitialized
	}

	for i := 1; i <= candidateCount; i++ {
		if _, err := tx.ExecContext(ctx, t.q["insert"], CandidateID(i)); err != nil {
			return castErr("insert tally", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return castErr("commit initialize", err)
	}

	slog.Info("tallies initialized", "candidates", candidateCount)
	return nil
}

// Increment adds one vote to candidateID using e, which is normally the
// transaction of the cast in progress.
func (t *Tallies) Increment(ctx context.Context, e Execer, candidateID string) error {
	res, err := e.ExecContext(ctx, t.q["increment"], candidateID)
	if err != nil {
		return castErr("increment tally", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return castErr("increment tally", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownCandidate, candidateID)
	}
	return nil
}

// Snapshot returns candidate id -> votes read by a single statement, so no
// partially applied cast is ever visible.
func (t *Tallies) Snapshot(ctx context.Context) (map[string]int, error) {
	var rows []CandidateTally
	if err := t.db.SelectContext(ctx, &rows, t.q["snapshot"]); err != nil {
		return nil, castErr("snapshot tallies", err)
	}

	snapshot := make(map[string]int, len(rows))
	for _, r := range rows {
		snapshot[r.CandidateID] = r.VoteCount
	}
	return snapshot, nil
}

// Candidates lists the seeded candidate ids in numeric order.
func (t *Tallies) Candidates(ctx context.Context) ([]string, error) {
	var ids []string
	if err := t.db.SelectContext(ctx, &ids, t.q["ids"]); err != nil {
		return nil, castErr("list candidates", err)
	}
	return ids, nil
}

// Reset deletes every tally.
func (t *Tallies) Reset(ctx context.Context) error {
	if _, err := t.db.ExecContext(ctx, t.q["reset"]); err != nil {
		return castErr("reset tallies", err)
	}
	return nil
}
