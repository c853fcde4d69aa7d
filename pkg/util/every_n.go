// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package util

import (
	"time"

	"github.com/cockroachdb/geombr/pkg/util/syncutil"
)

// EveryN rate limits repetitive events. It lets an event through at most once
// every N and counts the events it held back in between.
//
// The zero value lets every event through.
type EveryN struct {
	// N is the minimum duration between two events that are let through.
	N time.Duration

	mu struct {
		syncutil.Mutex
		lastProcessed time.Time
		skipped       int
	}
}

// Every returns an EveryN letting an event through every n.
func Every(n time.Duration) EveryN {
	return EveryN{N: n}
}

// ShouldProcess returns whether it's been at least N since the last event
// that was let through.
func (e *EveryN) ShouldProcess(now time.Time) bool {
	ok, _ := e.ShouldProcessSkipped(now)
	return ok
}

// ShouldProcessSkipped is ShouldProcess, also returning how many events were
// held back since the previous one was let through. The count is only
// meaningful when the event is let through.
func (e *EveryN) ShouldProcessSkipped(now time.Time) (ok bool, skipped int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if now.Sub(e.mu.lastProcessed) < e.N {
		e.mu.skipped++
		return false, 0
	}
	skipped = e.mu.skipped
	e.mu.lastProcessed = now
	e.mu.skipped = 0
	return true, skipped
}
