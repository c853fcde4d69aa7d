// Copyright 2017 The Cockroach Authors.
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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEveryN(t *testing.T) {
	testCases := []struct {
		t        time.Duration // time since start
		expected bool
	}{
		{0, true}, // the first attempt to log should always succeed
		{0, false},
		{time.Second, false},
		{time.Minute - 1, false},
		{time.Minute, true},
		{time.Minute, false},
		{time.Minute + 30*time.Second, false},
		{10 * time.Minute, true},
		{10 * time.Minute, false},
		{10*time.Minute + 59*time.Second, false},
		{11 * time.Minute, true},
	}
	start := time.Now()
	en := Every(time.Minute)
	for _, tc := range testCases {
		require.Equal(t, tc.expected, en.ShouldProcess(start.Add(tc.t)))
	}
}

func TestEveryNSkipped(t *testing.T) {
	start := time.Now()
	en := Every(time.Minute)
	ok, skipped := en.ShouldProcessSkipped(start)
	require.True(t, ok)
	require.Equal(t, 0, skipped)
	for i := 1; i <= 3; i++ {
		ok, _ = en.ShouldProcessSkipped(start.Add(time.Duration(i) * time.Second))
		require.False(t, ok)
	}
	ok, skipped = en.ShouldProcessSkipped(start.Add(time.Minute))
	require.True(t, ok)
	require.Equal(t, 3, skipped)
	ok, skipped = en.ShouldProcessSkipped(start.Add(2 * time.Minute))
	require.True(t, ok)
	require.Equal(t, 0, skipped)
}

func TestEveryNZeroValue(t *testing.T) {
	var en EveryN
	now := time.Now()
	require.True(t, en.ShouldProcess(now))
	require.True(t, en.ShouldProcess(now))
}
