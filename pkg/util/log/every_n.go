// Copyright 2017 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package log

import (
	"time"

	"github.com/cockroachdb/geombr/pkg/util"
)

// EveryN provides a way to rate limit spammy log messages. It tracks how
// recently a given log message has been emitted so that it can determine
// whether it's worth logging again.
type EveryN struct {
	util.EveryN
}

// Every is a convenience constructor for an EveryN object that allows a log
// message every n duration.
func Every(n time.Duration) EveryN {
	return EveryN{EveryN: util.Every(n)}
}

// ShouldLog returns whether it's been more than N time since the last event.
func (e *EveryN) ShouldLog() bool {
	return e.shouldLog(time.Now())
}

func (e *EveryN) shouldLog(now time.Time) bool {
	ok, _ := e.shouldLogSkipped(now)
	return ok
}

// ShouldLogSkipped is ShouldLog, also returning how many messages were
// suppressed since the last one that was logged.
func (e *EveryN) ShouldLogSkipped() (ok bool, skipped int) {
	return e.shouldLogSkipped(time.Now())
}

func (e *EveryN) shouldLogSkipped(now time.Time) (bool, int) {
	if V(2) {
		// Always log when high verbosity is desired.
		return true, 0
	}
	return e.ShouldProcessSkipped(now)
}
