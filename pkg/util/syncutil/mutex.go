// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package syncutil

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/util/buildutil"
)

// A Mutex is a mutual exclusion lock.
type Mutex struct {
	sync.Mutex
}

// AssertHeld panics in invariants builds if the mutex is not locked. It does
// not check which goroutine holds the lock.
func (m *Mutex) AssertHeld() {
	if buildutil.Invariants && m.TryLock() {
		m.Unlock()
		panic(errors.AssertionFailedf("mutex is not locked"))
	}
}

// An RWMutex is a reader/writer mutual exclusion lock.
type RWMutex struct {
	sync.RWMutex
}

// AssertHeld panics in invariants builds if the mutex is not locked for
// writing.
func (rw *RWMutex) AssertHeld() {
	if !buildutil.Invariants {
		return
	}
	if rw.TryRLock() {
		rw.RUnlock()
		panic(errors.AssertionFailedf("mutex is not locked for writing"))
	}
}

// AssertRHeld panics in invariants builds if the mutex is not locked for
// reading. A write lock counts as a read lock.
func (rw *RWMutex) AssertRHeld() {
	if buildutil.Invariants && rw.TryLock() {
		rw.Unlock()
		panic(errors.AssertionFailedf("mutex is not locked"))
	}
}
