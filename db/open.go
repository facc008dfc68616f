// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/hershey108/HH-CountMeUp/cliparse"
	"github.com/hershey108/HH-CountMeUp/store"
)

// Open connects to the configured backend and verifies the connection.
// driver is "sqlite" (an embedded database file) or "postgres".
func Open(ctx context.Context, driver, databaseURL string) (*sqlx.DB, error) {
	dsn := databaseURL
	switch driver {
	case cliparse.DatabaseSQLite:
		dsn = SQLiteDSN(databaseURL)
	case cliparse.DatabasePostgres:
	default:
		return nil, fmt.Errorf("unsupported database type %q", driver)
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	return conn, nil
}

// sqliteDefaults are applied to every connection unless the DSN already sets
// the same option. _txlock=immediate makes BEGIN take the write lock, which
// is what serializes the ledger read inside a cast on SQLite.
var sqliteDefaults = []struct {
	key, value string
}{
	{"_pragma", "busy_timeout(5000)"},
	{"_pragma", "journal_mode(WAL)"},
	{"_pragma", "foreign_keys(1)"},
	{"_txlock", "immediate"},
}

// SQLiteDSN adds the connection options the vote engine relies on.
func SQLiteDSN(databaseURL string) string {
	base, rawQuery, _ := strings.Cut(databaseURL, "?")
	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		params = url.Values{}
	}

	for _, opt := range sqliteDefaults {
		if hasOption(params, opt.key, opt.value) {
			continue
		}
		params.Add(opt.key, opt.value)
	}

	return base + "?" + params.Encode()
}

// hasOption reports whether params already configures the option. Pragmas
// are compared by name only, so a caller's busy_timeout(100) wins.
func hasOption(params url.Values, key, value string) bool {
	if key != "_pragma" {
		return params.Has(key)
	}
	name, _, _ := strings.Cut(value, "(")
	for _, p := range params[key] {
		existing, _, _ := strings.Cut(p, "(")
		if strings.EqualFold(strings.TrimSpace(existing), name) {
			return true
		}
	}
	return false
}

// Bootstrap prepares storage for a run. With cfg.ResetOnStart the tables
// are dropped and reseeded with cfg.CandidateCount zeroed tallies and an
// empty ledger. Otherwise existing state is kept, as long as it was seeded
// with the same number of candidates.
func Bootstrap(ctx context.Context, conn *sqlx.DB, cfg cliparse.Config, tallies *store.Tallies, ledger *store.Ledger) error {
	if cfg.ResetOnStart {
		if err := DropSchema(ctx, conn); err != nil {
			return err
		}
		slog.Info("Database cleared")
	}

	if err := CreateSchema(ctx, conn); err != nil {
		return err
	}

	existing, err := tallies.Candidates(ctx)
	if err != nil {
		return err
	}

	switch {
	case len(existing) == 0:
		// Stale voter rows without tallies would break conservation.
		if err := ledger.Reset(ctx); err != nil {
			return err
		}
		return tallies.Initialize(ctx, cfg.CandidateCount)
	case len(existing) != cfg.CandidateCount:
		return fmt.Errorf("%w: database holds %d candidates, configured %d (restart with -reset)",
			store.ErrConfiguration, len(existing), cfg.CandidateCount)
	}

	slog.Info("Keeping existing tallies", "candidates", len(existing))
	return nil
}
