// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package simulate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/hershey108/HH-CountMeUp/engine"
	"github.com/hershey108/HH-CountMeUp/store"
)

// ErrRunning is returned when a simulation is started while another one is
// still casting.
var ErrRunning = errors.New("simulation already running")

// Caster is implemented by *engine.Engine.
type Caster interface {
	CastVote(ctx context.Context, voterID, candidateID string) engine.Outcome
}

// Report summarizes one run.
type Report struct {
	RunID            string
	Attempts         int
	Accepted         int
	LimitReached     int
	UnknownCandidate int
	Failed           int
	Duration         time.Duration
}

// Simulator casts a burst of votes from synthetic voters through the engine.
type Simulator struct {
	caster     Caster
	candidates int
	workers    int
	running    sync.Mutex

	// pick returns a candidate number in [1, candidates].
	pick func(candidates int) int
}

func New(caster Caster, candidateCount, workers int) *Simulator {
	if workers < 1 {
		workers = 1
	}
	return &Simulator{
		caster:     caster,
		candidates: candidateCount,
		workers:    workers,
		pick: func(n int) int {
			return rand.IntN(n) + 1
		},
	}
}

// Run casts votes votes, one per synthetic voter sim0..sim<votes-1>, each
// for a uniformly chosen candidate. It stops early when ctx is done; the
// report then covers the attempts made so far.
func (s *Simulator) Run(ctx context.Context, votes int) (Report, error) {
	if votes < 1 {
		return Report{}, fmt.Errorf("%w: simulation needs at least 1 vote, got %d", store.ErrConfiguration, votes)
	}
	if s.candidates < 1 {
		return Report{}, fmt.Errorf("%w: simulation needs at least 1 candidate", store.ErrConfiguration)
	}
	if !s.running.TryLock() {
		return Report{}, ErrRunning
	}
	defer s.running.Unlock()

	report := Report{RunID: uuid.NewString()}
	slog.Info("Starting simulated votes", "run_id", report.RunID, "votes", humanize.Comma(int64(votes)), "workers", s.workers)
	start := time.Now()

	var counts [4]atomic.Int64
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				candidate := store.CandidateID(s.pick(s.candidates))
				outcome := s.caster.CastVote(ctx, "sim"+strconv.Itoa(i), candidate)
				if int(outcome) >= 0 && int(outcome) < len(counts) {
					counts[outcome].Add(1)
				}
			}
		}()
	}

feed:
	for i := 0; i < votes; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	report.Accepted = int(counts[engine.Accepted].Load())
	report.LimitReached = int(counts[engine.RejectedLimitReached].Load())
	report.UnknownCandidate = int(counts[engine.RejectedUnknownCandidate].Load())
	report.Failed = int(counts[engine.Failed].Load())
	report.Attempts = report.Accepted + report.LimitReached + report.UnknownCandidate + report.Failed
	report.Duration = time.Since(start)

	rate := float64(report.Attempts) / report.Duration.Seconds()
	slog.Info("Simulation complete",
		"run_id", report.RunID,
		"attempts", humanize.Comma(int64(report.Attempts)),
		"accepted", humanize.Comma(int64(report.Accepted)),
		"failed", report.Failed,
		"duration", report.Duration,
		"votes_per_sec", humanize.Comma(int64(rate)),
	)

	if err := ctx.Err(); err != nil && report.Attempts < votes {
		return report, fmt.Errorf("simulation stopped after %d of %d votes: %w", report.Attempts, votes, err)
	}
	return report, nil
}
