// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hershey108/HH-CountMeUp/cliparse"
	"github.com/hershey108/HH-CountMeUp/db"
	"github.com/hershey108/HH-CountMeUp/store"
	"github.com/hershey108/HH-CountMeUp/testutil"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantBase   string
		wantPragma []string
		wantTxLock string
	}{
		{
			name:       "bare file",
			in:         "file:countmeup.db",
			wantBase:   "file:countmeup.db",
			wantPragma: []string{"busy_timeout(5000)", "journal_mode(WAL)", "foreign_keys(1)"},
			wantTxLock: "immediate",
		},
		{
			name:       "caller timeout wins",
			in:         "file:x.db?_pragma=busy_timeout(100)",
			wantBase:   "file:x.db",
			wantPragma: []string{"busy_timeout(100)", "journal_mode(WAL)", "foreign_keys(1)"},
			wantTxLock: "immediate",
		},
		{
			name:       "caller txlock wins",
			in:         "file:x.db?_txlock=deferred",
			wantBase:   "file:x.db",
			wantPragma: []string{"busy_timeout(5000)", "journal_mode(WAL)", "foreign_keys(1)"},
			wantTxLock: "deferred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := db.SQLiteDSN(tt.in)
			base, rawQuery, _ := strings.Cut(got, "?")
			if base != tt.wantBase {
				t.Errorf("Expected base %q, got %q", tt.wantBase, base)
			}

			params, err := url.ParseQuery(rawQuery)
			if err != nil {
				t.Fatalf("Failed to parse %q: %v", got, err)
			}
			if len(params["_pragma"]) != len(tt.wantPragma) {
				t.Errorf("Expected pragmas %v, got %v", tt.wantPragma, params["_pragma"])
			}
			for _, p := range tt.wantPragma {
				found := false
				for _, have := range params["_pragma"] {
					if have == p {
						found = true
					}
				}
				if !found {
					t.Errorf("Missing pragma %s in %v", p, params["_pragma"])
				}
			}
			if params.Get("_txlock") != tt.wantTxLock {
				t.Errorf("Expected _txlock=%s, got %q", tt.wantTxLock, params.Get("_txlock"))
			}
		})
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := db.Open(context.Background(), "mysql", "root@/votes")
	if err == nil {
		t.Fatal("Expected error for unsupported driver")
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	// SetupTestDB already created it once
	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Fatalf("Second CreateSchema failed: %v", err)
	}
}

func TestSchema_RejectsNegativeCounts(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	_, err := conn.Exec(`INSERT INTO voter_ledger (voter_id, vote_count) VALUES ('x', -1)`)
	if err == nil {
		t.Error("Expected CHECK constraint to reject a negative count")
	}
}

func bootstrapConfig(t *testing.T, candidates int, reset bool) cliparse.Config {
	cfg := testutil.GetTestConfig()
	cfg.DatabaseURL = "file:" + filepath.Join(t.TempDir(), "bootstrap.db")
	cfg.CandidateCount = candidates
	cfg.ResetOnStart = reset
	return cfg
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	cfg := bootstrapConfig(t, 5, true)

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		t.Fatalf("Failed to open: %v", err)
	}
	defer conn.Close()

	tallies := store.NewTallies(conn)
	ledger := store.NewLedger(conn)

	if err := db.Bootstrap(ctx, conn, cfg, tallies, ledger); err != nil {
		t.Fatalf("Failed to bootstrap: %v", err)
	}

	if err := tallies.Increment(ctx, conn, "candidate-1"); err != nil {
		t.Fatalf("Failed to increment: %v", err)
	}
	if err := ledger.RecordVote(ctx, conn, "voter"); err != nil {
		t.Fatalf("Failed to record: %v", err)
	}

	t.Run("keeps state without reset", func(t *testing.T) {
		keep := cfg
		keep.ResetOnStart = false
		if err := db.Bootstrap(ctx, conn, keep, tallies, ledger); err != nil {
			t.Fatalf("Failed to bootstrap: %v", err)
		}
		snapshot, _ := tallies.Snapshot(ctx)
		if snapshot["candidate-1"] != 1 {
			t.Errorf("Expected existing vote to survive, got %v", snapshot)
		}
	})

	t.Run("candidate count mismatch", func(t *testing.T) {
		other := cfg
		other.ResetOnStart = false
		other.CandidateCount = 4
		err := db.Bootstrap(ctx, conn, other, tallies, ledger)
		if !errors.Is(err, store.ErrConfiguration) {
			t.Errorf("Expected ErrConfiguration, got %v", err)
		}
	})

	t.Run("reset wipes everything", func(t *testing.T) {
		if err := db.Bootstrap(ctx, conn, cfg, tallies, ledger); err != nil {
			t.Fatalf("Failed to bootstrap: %v", err)
		}
		snapshot, _ := tallies.Snapshot(ctx)
		if len(snapshot) != 5 || snapshot["candidate-1"] != 0 {
			t.Errorf("Expected 5 zeroed candidates, got %v", snapshot)
		}
		if n, _ := ledger.Count(ctx, "voter"); n != 0 {
			t.Errorf("Expected empty ledger, got %d", n)
		}
	})
}
