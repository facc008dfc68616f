// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the CountMeUp API.

# Handler Types

Each handler is a struct holding the service it calls and the config:

  - VotingHandler: POST /service/countmeup/vote
  - ResultsHandler: GET /service/countmeup
  - SimulationHandler: GET /service/countmeup/simulate

Handlers depend on small interfaces (Caster, Tallier, Runner) so tests can
pass fakes.

# Wire Format

A vote request names the voter and candidate:

	{"voterId": "someone@example.com", "candidateId": "candidate-2"}

"userId" is accepted in place of "voterId". The response is always 200 once
the body is valid:

	{"success": true}
	{"success": false, "reason": "vote limit"}
	{"success": false, "reason": "exception"}

The tally maps candidate ids to counts rendered as strings:

	{"candidate-1": "6", "candidate-2": "4"}
*/
package handlers
