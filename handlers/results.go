// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hershey108/HH-CountMeUp/middleware"
	"github.com/hershey108/HH-CountMeUp/models"
)

// Tallier is implemented by *query.Facade.
type Tallier interface {
	Tally(ctx context.Context) (map[string]int, error)
}

type ResultsHandler struct {
	query Tallier
}

func NewResultsHandler(query Tallier) *ResultsHandler {
	return &ResultsHandler{query: query}
}

// GetTally handles GET /service/countmeup
// Returns every candidate with its current count
func (h *ResultsHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	tally, err := h.query.Tally(r.Context())
	if err != nil {
		slog.Error("failed to read tally", "request_id", middleware.RequestID(r.Context()), "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, TallyResponse(tally))
}

// TallyResponse renders counts as strings, as the front end expects.
func TallyResponse(tally map[string]int) models.TallyResponse {
	resp := make(models.TallyResponse, len(tally))
	for candidateID, count := range tally {
		resp[candidateID] = strconv.Itoa(count)
	}
	return resp
}
