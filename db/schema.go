// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateSchema creates the tally and ledger tables.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// DropSchema removes both tables and everything in them.
func DropSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		DROP TABLE IF EXISTS candidate_tally;
		DROP TABLE IF EXISTS voter_ledger;
	`)
	if err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}

	return nil
}

const schema = `
-- Votes per candidate, seeded once per run
CREATE TABLE IF NOT EXISTS candidate_tally (
    candidate_id TEXT PRIMARY KEY,
    vote_count INTEGER NOT NULL DEFAULT 0 CHECK (vote_count >= 0)
);

-- Votes per voter, created on a voter's first accepted vote
CREATE TABLE IF NOT EXISTS voter_ledger (
    voter_id TEXT PRIMARY KEY,
    vote_count INTEGER NOT NULL DEFAULT 0 CHECK (vote_count >= 0)
);
`
