// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the CountMeUp API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(router.Deps{
		Engine:    eng,
		Query:     query.New(tallies),
		Simulator: sim,
	}, cfg)

# Endpoints

	GET  /health                      - Liveness
	GET  /service/countmeup           - Current tally, counts as strings
	POST /service/countmeup/vote      - Cast a vote
	GET  /service/countmeup/simulate  - Cast a burst of synthetic votes (?votes=N)
	GET  /                            - API banner

The /service/countmeup paths are the ones the existing web front end calls, so it
keeps working. Every route except /health and / goes through
middleware.WithLogging.
*/
package router
