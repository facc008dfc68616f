// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine implements the vote-casting transaction.

# Casting

	eng := engine.New(conn, tallies, ledger, engine.Options{MaxVotes: 3})
	switch eng.CastVote(ctx, "Voter@Example.com", "candidate-2") {
	case engine.Accepted:
	case engine.RejectedLimitReached:
	case engine.RejectedUnknownCandidate:
	case engine.Failed:
	}

Voter ids are lower-cased before anything else happens.

# Transaction

One cast is one database transaction:

 1. read the voter's count, locking the voter's ledger row
 2. count >= MaxVotes: roll back, RejectedLimitReached
 3. add one to the candidate's tally; no such candidate: roll back, RejectedUnknownCandidate
 4. add one to (or create) the voter's ledger row
 5. commit: Accepted

Any storage error along the way rolls the transaction back and yields
Failed, so a tally is never incremented without the matching ledger row or
the other way round. Failures are logged; rejections are not.

# Concurrency

Two casts by the same voter are serialized twice over: by an in-process lock
keyed on the voter id, held across the whole transaction, and by the
database (BEGIN IMMEDIATE on SQLite, SELECT ... FOR UPDATE on Postgres) so
that several processes sharing a Postgres database keep the cap too. Casts
by different voters take different locks and only meet at the database.
A cast waiting on its voter's lock gives up with Failed when ctx is done.
*/
package engine
