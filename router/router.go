// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/hershey108/HH-CountMeUp/cliparse"
	"github.com/hershey108/HH-CountMeUp/handlers"
	"github.com/hershey108/HH-CountMeUp/middleware"
)

// Deps are the services the HTTP layer calls into.
type Deps struct {
	Engine    handlers.Caster
	Query     handlers.Tallier
	Simulator handlers.Runner
}

func NewRouter(deps Deps, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	votingHandler := handlers.NewVotingHandler(deps.Engine)
	resultsHandler := handlers.NewResultsHandler(deps.Query)
	simulationHandler := handlers.NewSimulationHandler(deps.Simulator, cfg)

	logged := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(cfg.LogSalt, h)
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Vote counting
	mux.HandleFunc("GET /service/countmeup", logged(resultsHandler.GetTally))
	mux.HandleFunc("POST /service/countmeup/vote", logged(votingHandler.Vote))
	mux.HandleFunc("GET /service/countmeup/simulate", logged(simulationHandler.Simulate))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("countmeup API v1"))
	})

	return mux
}
