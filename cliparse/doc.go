// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p            Server port (default 8080)
	-d            Database URL (default file:countmeup.db for sqlite)
	-t            Database type: sqlite or postgres (default sqlite)
	-candidates   Candidates seeded at startup (default 5)
	-max-votes    Votes each voter may cast (default 3)
	-reset        Drop and reseed tables on start (default true)
	-sim-votes    Votes cast by one simulation run (default 10000)
	-sim-workers  Concurrent simulation workers (default 8)
	-log-level    debug, info, warn or error (default info)
	-log-salt     Salt for voter and IP fingerprints in logs
	-env          dotenv file read before the environment (default .env)

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	CANDIDATE_COUNT    → -candidates
	MAX_VOTES          → -max-votes
	RESET_ON_START     → -reset
	SIMULATION_VOTES   → -sim-votes
	SIMULATION_WORKERS → -sim-workers
	LOG_LEVEL          → -log-level
	LOG_SALT           → -log-salt

CLI flags take precedence over environment variables, and real environment
variables take precedence over the dotenv file.

# Validation

Counts below 1 are rejected with an error wrapping store.ErrConfiguration.
Postgres has no default URL.
*/
package cliparse
