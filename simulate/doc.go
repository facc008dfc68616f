// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package simulate drives the engine with synthetic voters, one vote each,
// for load and smoke testing. Only one run may be active at a time.
package simulate
