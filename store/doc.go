// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds the two tables a vote touches.

Tallies maps candidate ids to vote counts. Its key set is fixed by
Initialize; Increment on any other id fails with ErrUnknownCandidate.

Ledger maps lower-cased voter ids to the number of votes they have cast.

Write methods take an Execer or Querier so the engine can run them inside its
own transaction. Driver failures come back as *StorageError.
*/
package store
