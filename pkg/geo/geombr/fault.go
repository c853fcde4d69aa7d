// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geombr

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/util/buildutil"
	"github.com/cockroachdb/geombr/pkg/util/log"
	"github.com/cockroachdb/logtags"
)

// faultLogEvery limits how often absorbed faults are logged.
var faultLogEvery = log.Every(10 * time.Second)

// absorbedFaults counts the faults replaced by a default value.
var absorbedFaults int64

// outcome is the result of a computation that may have faulted.
type outcome[T any] struct {
	val T
	err error
}

// compute runs fn, turning a panic into an assertion failure.
func compute[T any](fn func() (T, error)) (o outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				o = outcome[T]{err: errors.NewAssertionErrorWithWrappedErrf(err, "geometry computation panicked")}
			} else {
				o = outcome[T]{err: errors.AssertionFailedf("geometry computation panicked: %v", r)}
			}
		}
	}()
	val, err := fn()
	return outcome[T]{val: val, err: err}
}

// or returns the computed value, or def if the computation faulted. Builds
// with invariants enabled panic on a fault instead.
func (o outcome[T]) or(op string, def T) T {
	if o.err == nil {
		return o.val
	}
	absorbFault(op, o.err)
	return def
}

func absorbFault(op string, err error) {
	if buildutil.Invariants {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "%s", op))
	}
	atomic.AddInt64(&absorbedFaults, 1)
	if ok, skipped := faultLogEvery.ShouldLogSkipped(); ok {
		ctx := logtags.AddTag(context.Background(), "geombr", op)
		if skipped > 0 {
			log.Warningf(ctx, "absorbed fault: %v (%d more since the last report)", err, skipped)
		} else {
			log.Warningf(ctx, "absorbed fault: %v", err)
		}
	}
}

// AbsorbedFaults returns the number of faults replaced by a default value
// since the process started.
func AbsorbedFaults() int64 {
	return atomic.LoadInt64(&absorbedFaults)
}
