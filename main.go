// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/hershey108/HH-CountMeUp/cliparse"
	"github.com/hershey108/HH-CountMeUp/db"
	"github.com/hershey108/HH-CountMeUp/engine"
	"github.com/hershey108/HH-CountMeUp/fingerprint"
	"github.com/hershey108/HH-CountMeUp/middleware"
	"github.com/hershey108/HH-CountMeUp/query"
	"github.com/hershey108/HH-CountMeUp/router"
	"github.com/hershey108/HH-CountMeUp/simulate"
	"github.com/hershey108/HH-CountMeUp/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if cfg.LogSalt == "" {
		cfg.LogSalt, err = fingerprint.NewSalt(16)
		if err != nil {
			slog.Error("log salt generation failed", "error", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()

	// Connect to the embedded store file or Postgres
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	tallies := store.NewTallies(dbConn)
	ledger := store.NewLedger(dbConn)

	// Create schema and seed candidates
	if err := db.Bootstrap(ctx, dbConn, cfg, tallies, ledger); err != nil {
		slog.Error("database bootstrap failed", "error", err)
		dbConn.Close()
		os.Exit(1)
	}
	slog.Info("Database ready", "type", cfg.DatabaseType, "candidates", cfg.CandidateCount, "max_votes", cfg.MaxVotes)

	eng := engine.New(dbConn, tallies, ledger, engine.Options{
		MaxVotes: cfg.MaxVotes,
		LogSalt:  cfg.LogSalt,
	})

	// Create router
	mux := router.NewRouter(router.Deps{
		Engine:    eng,
		Query:     query.New(tallies),
		Simulator: simulate.New(eng, cfg.CandidateCount, cfg.SimulationWorkers),
	}, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
