// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geopb

import (
	"fmt"
	"math"
)

// BoundingBox is an axis aligned minimum bounding rectangle. For geographic
// reference systems X is the longitude and Y the latitude, both expressed in
// the angular unit of the reference system.
//
// A well formed box has LoX <= HiX and LoY <= HiY. The one place a reversed
// box is meaningful is as the first argument of a within comparison.
type BoundingBox struct {
	LoX, HiX float64
	LoY, HiY float64
}

// NewBoundingBox returns a properly initialized bounding box, ready to be
// extended with Update.
func NewBoundingBox() *BoundingBox {
	return &BoundingBox{
		LoX: math.Inf(1),
		HiX: math.Inf(-1),
		LoY: math.Inf(1),
		HiY: math.Inf(-1),
	}
}

// NaNBoundingBox returns the box of an empty geometry: all coordinates are NaN.
func NaNBoundingBox() BoundingBox {
	nan := math.NaN()
	return BoundingBox{LoX: nan, HiX: nan, LoY: nan, HiY: nan}
}

// FullDomainBoundingBox returns the box covering every representable
// coordinate. It stands in for geometries that have no bounding box of their
// own, so that they match everything rather than nothing.
func FullDomainBoundingBox() BoundingBox {
	return BoundingBox{
		LoX: -math.MaxFloat64,
		HiX: math.MaxFloat64,
		LoY: -math.MaxFloat64,
		HiY: math.MaxFloat64,
	}
}

// Update updates the BoundingBox coordinates.
func (b *BoundingBox) Update(x, y float64) {
	b.LoX = math.Min(b.LoX, x)
	b.HiX = math.Max(b.HiX, x)
	b.LoY = math.Min(b.LoY, y)
	b.HiY = math.Max(b.HiY, y)
}

// IsNaN returns whether any coordinate of the box is NaN.
func (b BoundingBox) IsNaN() bool {
	return math.IsNaN(b.LoX) || math.IsNaN(b.HiX) || math.IsNaN(b.LoY) || math.IsNaN(b.HiY)
}

// IsReversed returns whether both axes of the box have their min and max
// swapped.
func (b BoundingBox) IsReversed() bool {
	return b.LoX > b.HiX && b.LoY > b.HiY
}

// IsValid returns whether LoX <= HiX and LoY <= HiY.
func (b BoundingBox) IsValid() bool {
	return b.LoX <= b.HiX && b.LoY <= b.HiY
}

// Normalized returns the box with the min and max corners corrected on each
// axis.
func (b BoundingBox) Normalized() BoundingBox {
	return BoundingBox{
		LoX: math.Min(b.LoX, b.HiX),
		HiX: math.Max(b.LoX, b.HiX),
		LoY: math.Min(b.LoY, b.HiY),
		HiY: math.Max(b.LoY, b.HiY),
	}
}

// Flat returns the box in the storage engine's (xmin, xmax, ymin, ymax) order.
func (b BoundingBox) Flat() []float64 {
	return []float64{b.LoX, b.HiX, b.LoY, b.HiY}
}

// BoundingBoxFromFlat builds a box from coordinates in (xmin, xmax, ymin,
// ymax) order. It returns false if fewer than four coordinates are given.
func BoundingBoxFromFlat(c []float64) (BoundingBox, bool) {
	if len(c) < 4 {
		return BoundingBox{}, false
	}
	return BoundingBox{LoX: c[0], HiX: c[1], LoY: c[2], HiY: c[3]}, true
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("BOX(%g %g,%g %g)", b.LoX, b.LoY, b.HiX, b.HiY)
}
