// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/lib/pq"
	"modernc.org/sqlite"
)

var (
	ErrConfiguration      = errors.New("invalid configuration")
	ErrAlreadyInitialized = fmt.Errorf("%w: tallies already initialized, reset first", ErrConfiguration)
	ErrUnknownCandidate   = errors.New("unknown candidate")
)

// StorageError reports a failed storage call. Code carries the driver's
// diagnostic code when there is one: a SQLSTATE for Postgres, a result code
// for SQLite.
type StorageError struct {
	Op   string
	Code string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (code %s)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// castErr wraps a driver error into a StorageError for op. nil and
// sql.ErrNoRows pass through untouched so callers can still compare them.
func castErr(op string, err error) error {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Code: driverCode(err), Err: err}
}

func driverCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return strconv.Itoa(liteErr.Code())
	}
	return ""
}
