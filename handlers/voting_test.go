// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/hershey108/HH-CountMeUp/engine"
	"github.com/hershey108/HH-CountMeUp/middleware"
	"github.com/hershey108/HH-CountMeUp/models"
	"github.com/hershey108/HH-CountMeUp/testutil"
)

// stubCaster answers every cast with outcome and remembers the last call
type stubCaster struct {
	mu        sync.Mutex
	outcome   engine.Outcome
	calls     int
	voter     string
	candidate string
}

func (s *stubCaster) CastVote(ctx context.Context, voterID, candidateID string) engine.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.voter = voterID
	s.candidate = candidateID
	return s.outcome
}

func TestVote(t *testing.T) {
	tests := []struct {
		name           string
		outcome        engine.Outcome
		requestBody    interface{}
		expectedStatus int
		expectedCalls  int
		checkResponse  func(t *testing.T, resp *models.VoteResponse)
	}{
		{
			name:           "accepted",
			outcome:        engine.Accepted,
			requestBody:    models.VoteRequest{VoterID: "a@example.com", CandidateID: "candidate-1"},
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
			checkResponse: func(t *testing.T, resp *models.VoteResponse) {
				if !resp.Success || resp.Reason != "" {
					t.Errorf("Expected plain success, got %+v", resp)
				}
			},
		},
		{
			name:           "limit reached",
			outcome:        engine.RejectedLimitReached,
			requestBody:    models.VoteRequest{VoterID: "a@example.com", CandidateID: "candidate-1"},
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
			checkResponse: func(t *testing.T, resp *models.VoteResponse) {
				if resp.Success || resp.Reason != "vote limit" {
					t.Errorf("Expected vote limit, got %+v", resp)
				}
			},
		},
		{
			name:           "unknown candidate",
			outcome:        engine.RejectedUnknownCandidate,
			requestBody:    models.VoteRequest{VoterID: "a@example.com", CandidateID: "candidate-99"},
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
			checkResponse: func(t *testing.T, resp *models.VoteResponse) {
				if resp.Success || resp.Reason != "exception" {
					t.Errorf("Expected exception, got %+v", resp)
				}
			},
		},
		{
			name:           "storage failure",
			outcome:        engine.Failed,
			requestBody:    models.VoteRequest{VoterID: "a@example.com", CandidateID: "candidate-1"},
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
			checkResponse: func(t *testing.T, resp *models.VoteResponse) {
				if resp.Success || resp.Reason != "exception" {
					t.Errorf("Expected exception, got %+v", resp)
				}
			},
		},
		{
			name:           "userId alias",
			outcome:        engine.Accepted,
			requestBody:    map[string]string{"userId": "legacy@example.com", "candidateId": "candidate-2"},
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
		},
		{
			name:           "missing voter",
			requestBody:    models.VoteRequest{CandidateID: "candidate-1"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing candidate goes to the engine",
			outcome:        engine.RejectedUnknownCandidate,
			requestBody:    models.VoteRequest{VoterID: "a@example.com"},
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
			checkResponse: func(t *testing.T, resp *models.VoteResponse) {
				if resp.Success || resp.Reason != "exception" {
					t.Errorf("Expected exception, got %+v", resp)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caster := &stubCaster{outcome: tt.outcome}
			handler := NewVotingHandler(caster)

			req := testutil.MakeRequest("POST", "/service/countmeup/vote", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.Vote(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if caster.calls != tt.expectedCalls {
				t.Errorf("Expected %d engine calls, got %d", tt.expectedCalls, caster.calls)
			}

			if tt.checkResponse != nil && w.Code == http.StatusOK {
				var resp models.VoteResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestVote_PassesIDsThrough(t *testing.T) {
	caster := &stubCaster{outcome: engine.Accepted}
	handler := NewVotingHandler(caster)

	req := testutil.MakeRequest("POST", "/service/countmeup/vote",
		map[string]string{"userId": "Legacy@Example.com", "candidateId": "candidate-2"}, nil)
	handler.Vote(httptest.NewRecorder(), req)

	// Normalization belongs to the engine
	if caster.voter != "Legacy@Example.com" || caster.candidate != "candidate-2" {
		t.Errorf("Unexpected call: voter=%q candidate=%q", caster.voter, caster.candidate)
	}
}

func TestVote_InvalidJSON(t *testing.T) {
	caster := &stubCaster{}
	handler := NewVotingHandler(caster)

	req := httptest.NewRequest("POST", "/service/countmeup/vote", strings.NewReader(`{invalid json}`))
	w := httptest.NewRecorder()

	handler.Vote(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
	if caster.calls != 0 {
		t.Error("Engine should not be called for a malformed body")
	}
}

func TestVoteResponse_WireFormat(t *testing.T) {
	tests := []struct {
		outcome  engine.Outcome
		expected string
	}{
		{engine.Accepted, `{"success":true}`},
		{engine.RejectedLimitReached, `{"success":false,"reason":"vote limit"}`},
		{engine.RejectedUnknownCandidate, `{"success":false,"reason":"exception"}`},
		{engine.Failed, `{"success":false,"reason":"exception"}`},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			w := httptest.NewRecorder()
			middleware.JSONResponse(w, http.StatusOK, VoteResponse(tt.outcome))

			body := strings.TrimSpace(w.Body.String())
			if body != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, body)
			}
		})
	}
}
