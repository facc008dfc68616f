// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package query is the read side: the current tally, straight from the
// tally store.
package query

import "context"

// Snapshotter is implemented by store.Tallies.
type Snapshotter interface {
	Snapshot(ctx context.Context) (map[string]int, error)
}

type Facade struct {
	tallies Snapshotter
}

func New(tallies Snapshotter) *Facade {
	return &Facade{tallies: tallies}
}

// Tally returns candidate id -> votes.
func (f *Facade) Tally(ctx context.Context) (map[string]int, error) {
	return f.tallies.Snapshot(ctx)
}
