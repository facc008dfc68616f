// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

// NormalizeVoterID case-folds a voter id. Every ledger lookup and write goes
// through it.
func NormalizeVoterID(voterID string) string {
	return strings.ToLower(voterID)
}

// VoterRecord is one row of voter_ledger.
type VoterRecord struct {
	VoterID   string `db:"voter_id" json:"voter_id"`
	VoteCount int    `db:"vote_count" json:"vote_count"`
}

// Ledger counts the votes each voter has cast. It does not enforce the
// per-voter cap; the engine does, inside the cast transaction.
type Ledger struct {
	db *sqlx.DB
	q  statements
}

func NewLedger(db *sqlx.DB) *Ledger {
	// SQLite has no row locks; its transactions are opened with BEGIN
	// IMMEDIATE (see db.Open) which already serializes writers.
	forUpdate := ""
	if db.DriverName() == "postgres" {
		forUpdate = " FOR UPDATE"
	}

	return &Ledger{
		db: db,
		q: rebind(db, map[string]string{
			"count": `SELECT vote_count FROM voter_ledger WHERE voter_id = ?`,
			"claim": `INSERT INTO voter_ledger (voter_id, vote_count) VALUES (?, 0)
				ON CONFLICT (voter_id) DO NOTHING`,
			"lock": `SELECT vote_count FROM voter_ledger WHERE voter_id = ?` + forUpdate,
			"record": `INSERT INTO voter_ledger (voter_id, vote_count) VALUES (?, 1)
				ON CONFLICT (voter_id) DO UPDATE SET vote_count = voter_ledger.vote_count + 1`,
			"snapshot": `SELECT voter_id, vote_count FROM voter_ledger`,
			"reset":    `DELETE FROM voter_ledger`,
		}),
	}
}

// Count returns how many votes voterID has cast, 0 if none.
func (l *Ledger) Count(ctx context.Context, voterID string) (int, error) {
	var n int
	err := l.db.GetContext(ctx, &n, l.q["count"], NormalizeVoterID(voterID))
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, castErr("count votes", err)
	}
	return n, nil
}

// CountForUpdate reads voterID's count inside q and holds the voter's row
// until q commits or rolls back. The row is materialized first so that a
// voter's very first cast is locked too; rolling back removes it again.
func (l *Ledger) CountForUpdate(ctx context.Context, q Querier, voterID string) (int, error) {
	id := NormalizeVoterID(voterID)
	if _, err := q.ExecContext(ctx, l.q["claim"], id); err != nil {
		return 0, castErr("claim voter row", err)
	}

	var n int
	if err := q.GetContext(ctx, &n, l.q["lock"], id); err != nil {
		return 0, castErr("lock voter row", err)
	}
	return n, nil
}

// RecordVote creates voterID's record with one vote or adds one to it.
func (l *Ledger) RecordVote(ctx context.Context, e Execer, voterID string) error {
	if _, err := e.ExecContext(ctx, l.q["record"], NormalizeVoterID(voterID)); err != nil {
		return castErr("record vote", err)
	}
	return nil
}

// Snapshot returns voter id -> votes cast.
func (l *Ledger) Snapshot(ctx context.Context) (map[string]int, error) {
	var rows []VoterRecord
	if err := l.db.SelectContext(ctx, &rows, l.q["snapshot"]); err != nil {
		return nil, castErr("snapshot ledger", err)
	}

	snapshot := make(map[string]int, len(rows))
	for _, r := range rows {
		snapshot[r.VoterID] = r.VoteCount
	}
	return snapshot, nil
}

// Reset deletes every voter record.
func (l *Ledger) Reset(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, l.q["reset"]); err != nil {
		return castErr("reset ledger", err)
	}
	return nil
}
