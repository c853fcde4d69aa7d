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
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
	"github.com/cockroachdb/geombr/pkg/geo/geoprojbase"
	"github.com/cockroachdb/geombr/pkg/util/buildutil"
)

// Contains returns whether every point of b lies in a, boundaries included.
// Both boxes must be valid. It returns false if the comparison faults.
func Contains(srs *geoprojbase.SpatialReferenceSystem, a, b geopb.BoundingBox) bool {
	return compute(func() (bool, error) {
		aBox, bBox, err := validBoxes(srs, a, b)
		if err != nil {
			return false, err
		}
		return bBox.coveredBy(aBox), nil
	}).or("contains", false)
}

// Equals returns whether a and b describe the same region. Both boxes must be
// valid. It returns false if the comparison faults.
func Equals(srs *geoprojbase.SpatialReferenceSystem, a, b geopb.BoundingBox) bool {
	return compute(func() (bool, error) {
		aBox, bBox, err := validBoxes(srs, a, b)
		if err != nil {
			return false, err
		}
		return aBox.equals(bBox), nil
	}).or("equals", false)
}

// Intersects always returns true. The index treats every pair of boxes as a
// candidate and leaves the exact test to the caller. Builds with invariants
// enabled check that the boxes pass a loose overlap test.
func Intersects(_ *geoprojbase.SpatialReferenceSystem, a, b geopb.BoundingBox) bool {
	if buildutil.Invariants {
		if !((b.LoX <= a.HiX || b.HiX >= a.LoX) && (b.LoY <= a.HiY || b.HiY >= a.LoY)) {
			panic(errors.AssertionFailedf("boxes %s and %s fail the overlap test", a, b))
		}
	}
	return true
}

// Disjoint is the negation of Intersects, and so always returns false.
func Disjoint(srs *geoprojbase.SpatialReferenceSystem, a, b geopb.BoundingBox) bool {
	return !Intersects(srs, a, b)
}

// Within returns whether a lies in b. Boxes with swapped min and max corners
// are normalized first. If a has both axes swapped and is not identical to b,
// the result is inverted. It returns false if the comparison faults.
func Within(srs *geoprojbase.SpatialReferenceSystem, a, b geopb.BoundingBox) bool {
	invert := a.IsReversed() && a != b
	return compute(func() (bool, error) {
		aBox, bBox, err := ModelFor(srs).makeBoxes(a.Normalized(), b.Normalized())
		if err != nil {
			return false, err
		}
		return aBox.coveredBy(bBox) != invert, nil
	}).or("within", false)
}

func validBoxes(
	srs *geoprojbase.SpatialReferenceSystem, a, b geopb.BoundingBox,
) (box, box, error) {
	if !a.IsValid() || !b.IsValid() {
		return nil, nil, errors.AssertionFailedf("invalid boxes %s and %s", a, b)
	}
	return ModelFor(srs).makeBoxes(a, b)
}
