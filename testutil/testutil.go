// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/hershey108/HH-CountMeUp/cliparse"
	"github.com/hershey108/HH-CountMeUp/db"
	"github.com/hershey108/HH-CountMeUp/store"
)

// PostgresURLEnv names the variable that enables the Postgres-backed tests.
const PostgresURLEnv = "TEST_DATABASE_URL"

// SetupTestDB creates a fresh SQLite database file with the full schema.
// The file lives in t.TempDir and disappears with the test.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	url := "file:" + filepath.Join(t.TempDir(), "countmeup.db")
	conn, err := db.Open(context.Background(), cliparse.DatabaseSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupPostgresDB connects to the database named by TEST_DATABASE_URL and
// recreates the schema. The test is skipped when the variable is unset.
func SetupPostgresDB(t *testing.T) *sqlx.DB {
	t.Helper()

	url := os.Getenv(PostgresURLEnv)
	if url == "" {
		t.Skipf("%s not set, skipping Postgres test", PostgresURLEnv)
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cliparse.DatabasePostgres, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Clean up tables before each test
	if err := db.DropSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}
	if err := db.CreateSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3318,
		DatabaseURL:       "file:countmeup_test.db",
		DatabaseType:      cliparse.DatabaseSQLite,
		CandidateCount:    5,
		MaxVotes:          3,
		ResetOnStart:      true,
		SimulationVotes:   100,
		SimulationWorkers: 4,
		LogSalt:           "test-log-salt",
	}
}

// NewTestStores wraps conn in both stores and seeds candidateCount
// candidates with zero votes.
func NewTestStores(t *testing.T, conn *sqlx.DB, candidateCount int) (*store.Tallies, *store.Ledger) {
	t.Helper()

	tallies := store.NewTallies(conn)
	ledger := store.NewLedger(conn)
	if err := tallies.Initialize(context.Background(), candidateCount); err != nil {
		t.Fatalf("Failed to seed candidates: %v", err)
	}

	return tallies, ledger
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
