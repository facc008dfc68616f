// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hershey108/HH-CountMeUp/engine"
	"github.com/hershey108/HH-CountMeUp/middleware"
	"github.com/hershey108/HH-CountMeUp/models"
)

// Caster is implemented by *engine.Engine.
type Caster interface {
	CastVote(ctx context.Context, voterID, candidateID string) engine.Outcome
}

type VotingHandler struct {
	engine Caster
}

func NewVotingHandler(engine Caster) *VotingHandler {
	return &VotingHandler{engine: engine}
}

// Vote handles POST /service/countmeup/vote
// Every engine outcome is a 200; the payload says whether the vote counted.
// A missing candidateId is an unknown candidate, not a bad request.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voterID := req.Voter()
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voterId is required")
		return
	}

	outcome := h.engine.CastVote(r.Context(), voterID, req.CandidateID)

	if outcome == engine.Accepted {
		slog.Info("vote accepted",
			"request_id", middleware.RequestID(r.Context()),
			"candidate", req.CandidateID,
		)
	}

	middleware.JSONResponse(w, http.StatusOK, VoteResponse(outcome))
}

// VoteResponse maps an engine outcome onto the wire payload.
func VoteResponse(outcome engine.Outcome) models.VoteResponse {
	switch outcome {
	case engine.Accepted:
		return models.VoteResponse{Success: true}
	case engine.RejectedLimitReached:
		return models.VoteResponse{Success: false, Reason: models.ReasonVoteLimit}
	default:
		return models.VoteResponse{Success: false, Reason: models.ReasonException}
	}
}
