// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/hershey108/HH-CountMeUp/fingerprint"
	"github.com/hershey108/HH-CountMeUp/store"
)

// Outcome is the result of a single cast attempt.
type Outcome int

const (
	Accepted Outcome = iota
	RejectedLimitReached
	RejectedUnknownCandidate
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case RejectedLimitReached:
		return "rejected_limit_reached"
	case RejectedUnknownCandidate:
		return "rejected_unknown_candidate"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// TallyWriter is the part of the tally store a cast writes to.
type TallyWriter interface {
	Increment(ctx context.Context, e store.Execer, candidateID string) error
}

// LedgerWriter is the part of the voter ledger a cast reads and writes.
type LedgerWriter interface {
	CountForUpdate(ctx context.Context, q store.Querier, voterID string) (int, error)
	RecordVote(ctx context.Context, e store.Execer, voterID string) error
}

type Options struct {
	// MaxVotes is the per-voter cap.
	MaxVotes int
	// LogSalt keys the voter fingerprints written to logs.
	LogSalt string
}

// Engine casts votes. It is the only writer of both stores.
type Engine struct {
	db      *sqlx.DB
	tallies TallyWriter
	ledger  LedgerWriter
	opts    Options
	locks   *voterLocks
}

func New(db *sqlx.DB, tallies TallyWriter, ledger LedgerWriter, opts Options) *Engine {
	if opts.MaxVotes < 1 {
		opts.MaxVotes = 3
	}
	return &Engine{
		db:      db,
		tallies: tallies,
		ledger:  ledger,
		opts:    opts,
		locks:   newVoterLocks(),
	}
}

// MaxVotes returns the per-voter cap the engine enforces.
func (e *Engine) MaxVotes() int {
	return e.opts.MaxVotes
}

// CastVote records one vote from voterID for candidateID if the voter is
// still under the cap. The ledger check and both writes run in one
// transaction while the voter's lock is held; other voters are not blocked.
// A Failed outcome leaves both stores as they were.
func (e *Engine) CastVote(ctx context.Context, voterID, candidateID string) Outcome {
	voterID = store.NormalizeVoterID(voterID)
	if voterID == "" {
		slog.Warn("cast refused: empty voter id", "candidate", candidateID)
		return Failed
	}

	voter := fingerprint.Voter(voterID, e.opts.LogSalt)

	unlock, err := e.locks.lock(ctx, voterID)
	if err != nil {
		slog.Warn("cast abandoned waiting for voter", "voter", voter, "candidate", candidateID, "error", err)
		return Failed
	}
	defer unlock()

	outcome, err := e.cast(ctx, voterID, candidateID)
	if err != nil {
		var se *store.StorageError
		code := ""
		if errors.As(err, &se) {
			code = se.Code
		}
		slog.Error("cast failed", "voter", voter, "candidate", candidateID, "code", code, "error", err)
		return Failed
	}

	slog.Debug("cast", "voter", voter, "candidate", candidateID, "outcome", outcome)
	return outcome
}

func (e *Engine) cast(ctx context.Context, voterID, candidateID string) (Outcome, error) {
	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return Failed, fmt.Errorf("begin cast: %w", err)
	}
	// No-op after a successful commit
	defer tx.Rollback()

	count, err := e.ledger.CountForUpdate(ctx, tx, voterID)
	if err != nil {
		return Failed, err
	}
	if count >= e.opts.MaxVotes {
		return RejectedLimitReached, nil
	}

	if err := e.tallies.Increment(ctx, tx, candidateID); err != nil {
		if errors.Is(err, store.ErrUnknownCandidate) {
			return RejectedUnknownCandidate, nil
		}
		return Failed, err
	}

	if err := e.ledger.RecordVote(ctx, tx, voterID); err != nil {
		return Failed, err
	}

	if err := tx.Commit(); err != nil {
		return Failed, fmt.Errorf("commit cast: %w", err)
	}

	return Accepted, nil
}
