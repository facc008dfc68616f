// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"sync"
)

// voterLocks hands out one lock per voter id. Entries are reference counted
// and dropped once nobody holds or waits on them, so the table only ever
// holds voters with a cast in flight.
type voterLocks struct {
	mu    sync.Mutex
	locks map[string]*voterLock
}

// voterLock is a one-slot semaphore so a waiter can give up on ctx.
type voterLock struct {
	sem  chan struct{}
	refs int
}

func newVoterLocks() *voterLocks {
	return &voterLocks{locks: make(map[string]*voterLock)}
}

// lock blocks until voterID is free or ctx is done, and returns the
// matching unlock. On ctx.Done it returns ctx.Err() and holds nothing.
func (l *voterLocks) lock(ctx context.Context, voterID string) (unlock func(), err error) {
	l.mu.Lock()
	vl, ok := l.locks[voterID]
	if !ok {
		vl = &voterLock{sem: make(chan struct{}, 1)}
		l.locks[voterID] = vl
	}
	vl.refs++
	l.mu.Unlock()

	select {
	case vl.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(voterID, vl)
		return nil, ctx.Err()
	}

	return func() {
		<-vl.sem
		l.release(voterID, vl)
	}, nil
}

func (l *voterLocks) release(voterID string, vl *voterLock) {
	l.mu.Lock()
	vl.refs--
	if vl.refs == 0 {
		delete(l.locks, voterID)
	}
	l.mu.Unlock()
}

func (l *voterLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
