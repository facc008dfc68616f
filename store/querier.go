// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Getter loads a single row into dest.
type Getter interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Selector loads many rows into dest.
type Selector interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Execer runs a statement that returns no rows.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Querier is satisfied by both *sqlx.DB and *sqlx.Tx, so the same store
// method can run standalone or inside a caller's transaction.
type Querier interface {
	Getter
	Selector
	Execer
}

var (
	_ Querier = (*sqlx.DB)(nil)
	_ Querier = (*sqlx.Tx)(nil)
)

// statements holds queries already rebound to the driver's placeholder style.
type statements map[string]string

func rebind(db *sqlx.DB, raw map[string]string) statements {
	out := make(statements, len(raw))
	for name, q := range raw {
		out[name] = db.Rebind(q)
	}
	return out
}
