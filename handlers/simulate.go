// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hershey108/HH-CountMeUp/cliparse"
	"github.com/hershey108/HH-CountMeUp/middleware"
	"github.com/hershey108/HH-CountMeUp/models"
	"github.com/hershey108/HH-CountMeUp/simulate"
	"github.com/hershey108/HH-CountMeUp/store"
)

// maxSimulationVotes bounds the ?votes= override.
const maxSimulationVotes = 1_000_000

// Runner is implemented by *simulate.Simulator.
type Runner interface {
	Run(ctx context.Context, votes int) (simulate.Report, error)
}

type SimulationHandler struct {
	sim Runner
	cfg cliparse.Config
}

func NewSimulationHandler(sim Runner, cfg cliparse.Config) *SimulationHandler {
	return &SimulationHandler{sim: sim, cfg: cfg}
}

// Simulate handles GET /service/countmeup/simulate
// Casts a burst of synthetic votes; ?votes=N overrides the configured count
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	votes := h.cfg.SimulationVotes
	if raw := r.URL.Query().Get("votes"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSimulationVotes {
			middleware.ErrorResponse(w, http.StatusBadRequest, "votes must be between 1 and "+strconv.Itoa(maxSimulationVotes))
			return
		}
		votes = n
	}

	report, err := h.sim.Run(r.Context(), votes)
	switch {
	case errors.Is(err, simulate.ErrRunning):
		middleware.ErrorResponse(w, http.StatusConflict, "A simulation is already running")
		return
	case errors.Is(err, store.ErrConfiguration):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Warn("simulation interrupted", "request_id", middleware.RequestID(r.Context()), "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Simulation interrupted")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SimulateResponse{
		Success: true,
		Report: models.SimulateReport{
			RunID:            report.RunID,
			Attempts:         report.Attempts,
			Accepted:         report.Accepted,
			LimitReached:     report.LimitReached,
			UnknownCandidate: report.UnknownCandidate,
			Failed:           report.Failed,
			DurationMS:       report.Duration.Milliseconds(),
		},
	})
}
