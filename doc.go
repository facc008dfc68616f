// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the CountMeUp server.

CountMeUp counts votes for a fixed set of candidates. Each voter, identified
by a case-insensitive id such as an email address, may vote at most three
times across all candidates.

# Starting the Server

With no configuration it serves on :8080 from a local SQLite file:

	go run .

Or against Postgres:

	go run . -t postgres -d "postgres://..." -candidates 5

# Architecture

  - store: candidate tallies and the voter ledger
  - engine: the vote transaction and per-voter cap
  - query: read side
  - simulate: synthetic vote bursts
  - handlers, router, middleware, models: HTTP surface
  - fingerprint: salted hashes for log lines
  - db: connection and schema
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
