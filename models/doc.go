// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the JSON request and response types of the API.

# Request Types

  - VoteRequest: voterId (alias userId), candidateId

# Response Types

  - VoteResponse: success, reason ("vote limit" or "exception")
  - TallyResponse: candidate id -> count, counts as strings
  - SimulateResponse: success, report
  - ErrorResponse: error, message

The payload shapes follow the wire format of the existing CountMeUp
front end, which is why tally counts are strings.
*/
package models
