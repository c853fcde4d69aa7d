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
	"testing"

	"github.com/cockroachdb/geombr/pkg/util/buildutil"
	"github.com/stretchr/testify/require"
)

func TestAssertHeld(t *testing.T) {
	var m Mutex
	m.Lock()
	m.AssertHeld()
	m.Unlock()

	var rw RWMutex
	rw.Lock()
	rw.AssertHeld()
	rw.AssertRHeld()
	rw.Unlock()
	rw.RLock()
	rw.AssertRHeld()
	rw.RUnlock()

	if !buildutil.Invariants {
		// Unchecked without invariants.
		m.AssertHeld()
		rw.AssertHeld()
		rw.AssertRHeld()
		return
	}
	require.Panics(t, m.AssertHeld)
	require.Panics(t, rw.AssertHeld)
	require.Panics(t, rw.AssertRHeld)
	rw.RLock()
	require.Panics(t, rw.AssertHeld)
	rw.RUnlock()
}
