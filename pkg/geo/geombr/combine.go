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
	"math"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
	"github.com/cockroachdb/geombr/pkg/geo/geoprojbase"
)

// Join returns the smallest box covering both a and b. Geographic boxes
// crossing the antimeridian are returned with HiX past 180 degrees. If the
// computation faults, a is returned unchanged.
func Join(srs *geoprojbase.SpatialReferenceSystem, a, b geopb.BoundingBox) geopb.BoundingBox {
	return compute(func() (geopb.BoundingBox, error) {
		aBox, bBox, err := ModelFor(srs).makeBoxes(a, b)
		if err != nil {
			return geopb.BoundingBox{}, err
		}
		return aBox.expand(bBox).bounds(), nil
	}).or("join", a)
}

// JoinArea returns the area of Join(srs, a, b). Non-finite and negative
// areas are clamped to math.MaxFloat64, which is also returned if the
// computation faults.
func JoinArea(srs *geoprojbase.SpatialReferenceSystem, a, b geopb.BoundingBox) float64 {
	area := compute(func() (float64, error) {
		aBox, bBox, err := ModelFor(srs).makeBoxes(a, b)
		if err != nil {
			return 0, err
		}
		return aBox.expand(bBox).area()
	}).or("join area", math.MaxFloat64)
	if math.IsNaN(area) || math.IsInf(area, 0) || area < 0 {
		return math.MaxFloat64
	}
	return area
}

// ComputeArea returns the area of a. The result is not clamped. It returns 0
// if the computation faults.
func ComputeArea(srs *geoprojbase.SpatialReferenceSystem, a geopb.BoundingBox) float64 {
	return compute(func() (float64, error) {
		aBox, err := ModelFor(srs).makeBox(a)
		if err != nil {
			return 0, err
		}
		return aBox.area()
	}).or("compute area", 0)
}

// flatBoxes decodes boxes stored as (xmin, xmax, ymin, ymax) with nDims
// dimensions.
func flatBoxes(nDims int, flat ...[]float64) ([]geopb.BoundingBox, error) {
	if nDims != 2 {
		return nil, errors.AssertionFailedf("unsupported number of dimensions: %d", nDims)
	}
	boxes := make([]geopb.BoundingBox, len(flat))
	for i, f := range flat {
		b, ok := geopb.BoundingBoxFromFlat(f)
		if !ok {
			return nil, errors.AssertionFailedf("%d coordinates do not form a box", len(f))
		}
		boxes[i] = b
	}
	return boxes, nil
}

// JoinFlat is Join for boxes in the storage engine's layout. It expands a in
// place. Only two dimensions are supported; a is left unchanged otherwise.
func JoinFlat(srs *geoprojbase.SpatialReferenceSystem, a, b []float64, nDims int) {
	boxes, err := flatBoxes(nDims, a, b)
	if err != nil {
		absorbFault("join", err)
		return
	}
	copy(a, Join(srs, boxes[0], boxes[1]).Flat())
}

// JoinAreaFlat is JoinArea for boxes in the storage engine's layout.
func JoinAreaFlat(srs *geoprojbase.SpatialReferenceSystem, a, b []float64, nDims int) float64 {
	boxes, err := flatBoxes(nDims, a, b)
	if err != nil {
		absorbFault("join area", err)
		return math.MaxFloat64
	}
	return JoinArea(srs, boxes[0], boxes[1])
}

// ComputeAreaFlat is ComputeArea for a box in the storage engine's layout.
func ComputeAreaFlat(srs *geoprojbase.SpatialReferenceSystem, a []float64, nDims int) float64 {
	boxes, err := flatBoxes(nDims, a)
	if err != nil {
		absorbFault("compute area", err)
		return 0
	}
	return ComputeArea(srs, boxes[0])
}
