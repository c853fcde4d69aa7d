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

	"github.com/cockroachdb/geombr/pkg/geo/geoprojbase"
	"github.com/cockroachdb/geombr/pkg/util/encoding"
)

// degenerateExtentWeight stands in for the extent of a dimension in which a
// box has no size, so points and lines still have a comparable area.
const degenerateExtentWeight = 0.001

// AreaIncrease returns how much the area of the raw MBR a grows when
// extended to cover b, and the area of that union. Both MBRs hold length
// bytes of (min, max) pairs in encoding.RawMBRByteOrder and may have any
// number of dimensions. Dimensions without extent are weighted by 0.001.
//
// When b reaches past a but the union is no larger than a, which happens when
// rounding hides the growth of a large box, the increase is rebuilt from how
// far b reaches past a in each dimension, or from the union's extent where it
// does not. A b covered by a has no increase. Malformed input yields
// math.MaxFloat64 for both values.
func AreaIncrease(
	_ *geoprojbase.SpatialReferenceSystem, a, b []byte, length int,
) (increase float64, unionArea float64) {
	type areas struct{ increase, union float64 }
	res := compute(func() (areas, error) {
		aBounds, err := encoding.DecodeRawMBR(encoding.RawMBRByteOrder, a, length)
		if err != nil {
			return areas{}, err
		}
		bBounds, err := encoding.DecodeRawMBR(encoding.RawMBRByteOrder, b, length)
		if err != nil {
			return areas{}, err
		}
		aArea, abArea, dataRound := 1.0, 1.0, 1.0
		exceeds := false
		for i := 0; i < len(aBounds); i += 2 {
			amin, amax := aBounds[i], aBounds[i+1]
			bmin, bmax := bBounds[i], bBounds[i+1]

			aArea *= weightedExtent(amax - amin)
			ext := math.Max(amax, bmax) - math.Min(amin, bmin)
			abArea *= weightedExtent(ext)

			outside := bmin < amin || bmax > amax
			exceeds = exceeds || outside
			if abArea == aArea {
				if outside {
					dataRound *= (math.Max(amax, bmax) - amax) + (amin - math.Min(amin, bmin))
				} else {
					dataRound *= ext
				}
			}
		}
		if exceeds && abArea == aArea {
			return areas{increase: dataRound, union: abArea}, nil
		}
		return areas{increase: abArea - aArea, union: abArea}, nil
	}).or("area increase", areas{increase: math.MaxFloat64, union: math.MaxFloat64})
	return res.increase, res.union
}

func weightedExtent(ext float64) float64 {
	if ext == 0 {
		return degenerateExtentWeight
	}
	return ext
}

// AreaOverlapping returns the area shared by the raw MBRs a and b, laid out
// as for AreaIncrease. It is 0 if the boxes are apart in any dimension, and
// math.MaxFloat64 for malformed input.
func AreaOverlapping(_ *geoprojbase.SpatialReferenceSystem, a, b []byte, length int) float64 {
	return compute(func() (float64, error) {
		aBounds, err := encoding.DecodeRawMBR(encoding.RawMBRByteOrder, a, length)
		if err != nil {
			return 0, err
		}
		bBounds, err := encoding.DecodeRawMBR(encoding.RawMBRByteOrder, b, length)
		if err != nil {
			return 0, err
		}
		area := 1.0
		for i := 0; i < len(aBounds); i += 2 {
			lo := math.Max(aBounds[i], bBounds[i])
			hi := math.Min(aBounds[i+1], bBounds[i+1])
			if lo > hi {
				return 0, nil
			}
			area *= hi - lo
		}
		return area, nil
	}).or("area overlapping", math.MaxFloat64)
}
