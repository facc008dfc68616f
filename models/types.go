// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Rejection reasons sent to clients
const (
	ReasonVoteLimit = "vote limit"
	ReasonException = "exception"
)

// Request types

// VoteRequest is the body of POST /service/countmeup/vote.
// Older front ends send the voter as "userId"; it is accepted as an
// alias for "voterId".
type VoteRequest struct {
	VoterID     string `json:"voterId"`
	UserID      string `json:"userId,omitempty"`
	CandidateID string `json:"candidateId"`
}

// Voter returns whichever voter field the client filled in.
func (r VoteRequest) Voter() string {
	if r.VoterID != "" {
		return r.VoterID
	}
	return r.UserID
}

// Response types

type VoteResponse struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// TallyResponse maps candidate id to its vote count. Counts are strings for
// compatibility with the existing front end.
type TallyResponse map[string]string

type SimulateResponse struct {
	Success bool           `json:"success"`
	Report  SimulateReport `json:"report"`
}

type SimulateReport struct {
	RunID            string `json:"run_id"`
	Attempts         int    `json:"attempts"`
	Accepted         int    `json:"accepted"`
	LimitReached     int    `json:"limit_reached"`
	UnknownCandidate int    `json:"unknown_candidate"`
	Failed           int    `json:"failed"`
	DurationMS       int64  `json:"duration_ms"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
