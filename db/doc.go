// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the backing database and manages its schema.

# Connecting

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)

"sqlite" uses the pure-Go modernc.org/sqlite driver on a local file;
SQLiteDSN adds WAL mode, a busy timeout and BEGIN IMMEDIATE transactions.
"postgres" uses lib/pq.

# Tables

	candidate_tally (candidate_id TEXT PK, vote_count INTEGER >= 0)
	voter_ledger    (voter_id TEXT PK, vote_count INTEGER >= 0)

CreateSchema is safe to call multiple times - uses IF NOT EXISTS.

# Startup

Bootstrap creates the schema and seeds the candidates, dropping everything
first when cfg.ResetOnStart is set.
*/
package db
