// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geographiclib

import (
	"math"
	"testing"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/require"
)

func TestNewSpheroid(t *testing.T) {
	s, err := NewSpheroidFromAxes(6378137, 6356752.314245179)
	require.NoError(t, err)
	require.InDelta(t, 1/298.257223563, s.Flattening, 1e-12)
	require.InDelta(t, 0.00669437999014, s.EccentricitySquared(), 1e-12)

	for _, tc := range []struct {
		a, b float64
	}{
		{0, 1},
		{1, 0},
		{-1, -1},
		{math.NaN(), 1},
	} {
		_, err := NewSpheroidFromAxes(tc.a, tc.b)
		require.Error(t, err)
	}
}

func TestBoxAreaWholeEllipsoid(t *testing.T) {
	area, err := WGS84Spheroid.BoxArea(
		r1.Interval{Lo: -math.Pi / 2, Hi: math.Pi / 2},
		s1.FullInterval(),
	)
	require.NoError(t, err)
	// Surface area of the WGS 84 ellipsoid.
	require.InDelta(t, 5.10065621724e14, area, 1e6)
}

func TestBoxAreaSphereMatchesS2(t *testing.T) {
	sphere := MustNewSpheroid(1, 0)
	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(-10, 20)).
		AddPoint(s2.LatLngFromDegrees(35, 60))
	area, err := sphere.BoxArea(rect.Lat, rect.Lng)
	require.NoError(t, err)
	// On a sphere the geodesic edges are great circles.
	loop := s2.LoopFromPoints([]s2.Point{
		s2.PointFromLatLng(s2.LatLngFromDegrees(-10, 20)),
		s2.PointFromLatLng(s2.LatLngFromDegrees(-10, 60)),
		s2.PointFromLatLng(s2.LatLngFromDegrees(35, 60)),
		s2.PointFromLatLng(s2.LatLngFromDegrees(35, 20)),
	})
	require.InDelta(t, loop.Area(), area, 1e-9)
	// The parallels bound a different region than the great circles do.
	require.NotEqual(t, rect.Area(), area)
}

func TestBoxAreaUsesGeodesicEdges(t *testing.T) {
	lat := r1.Interval{Lo: 0, Hi: math.Pi / 3}
	lng := s1.IntervalFromEndpoints(0, math.Pi/2)
	area, err := WGS84Spheroid.BoxArea(lat, lng)
	require.NoError(t, err)
	require.InEpsilon(t, 5.7897802670516e13, area, 1e-9)
	// The northern edge bulges poleward of the parallel.
	require.Greater(t, area, WGS84Spheroid.zoneArea(lat, math.Pi/2))

	// Longitude intervals crossing the antimeridian.
	wrapped, err := WGS84Spheroid.BoxArea(lat, s1.IntervalFromEndpoints(3*math.Pi/4, -3*math.Pi/4))
	require.NoError(t, err)
	require.InEpsilon(t, area, wrapped, 1e-9)
}

func TestAreaAndPerimeter(t *testing.T) {
	ring := func(coords ...[2]float64) []s2.LatLng {
		var ret []s2.LatLng
		for _, c := range coords {
			ret = append(ret, s2.LatLngFromDegrees(c[0], c[1]))
		}
		return ret
	}
	total := 4 * math.Pi * WGS84Spheroid.z(math.Pi/2)

	t.Run("octant", func(t *testing.T) {
		area, perimeter, err := WGS84Spheroid.AreaAndPerimeter(ring(
			[2]float64{0, 0}, [2]float64{0, 90}, [2]float64{90, 90}, [2]float64{90, 0},
		))
		require.NoError(t, err)
		require.InEpsilon(t, total/8, area, 1e-11)
		require.InDelta(t, 30022685.630, perimeter, 1e-2)
	})

	t.Run("antarctica", func(t *testing.T) {
		// Published by GeographicLib for its polygon area example.
		area, perimeter, err := WGS84Spheroid.AreaAndPerimeter(ring(
			[2]float64{-63.1, -58}, [2]float64{-72.9, -74}, [2]float64{-71.9, -102},
			[2]float64{-74.9, -102}, [2]float64{-74.3, -131}, [2]float64{-77.5, -163},
			[2]float64{-77.4, 163}, [2]float64{-71.7, 172}, [2]float64{-65.9, 140},
			[2]float64{-65.7, 113}, [2]float64{-66.6, 88}, [2]float64{-66.9, 59},
			[2]float64{-69.8, 25}, [2]float64{-70.0, -4}, [2]float64{-71.0, -14},
			[2]float64{-77.3, -33}, [2]float64{-77.9, -46}, [2]float64{-74.7, -61},
		))
		require.NoError(t, err)
		require.InEpsilon(t, 13662703680020.1, area, 1e-9)
		require.InDelta(t, 16831067.893, perimeter, 1e-2)
	})

	t.Run("orientation", func(t *testing.T) {
		ccw := ring([2]float64{10, 10}, [2]float64{10, 20}, [2]float64{20, 20}, [2]float64{20, 10})
		cw := ring([2]float64{20, 10}, [2]float64{20, 20}, [2]float64{10, 20}, [2]float64{10, 10})
		a1, p1, err := WGS84Spheroid.AreaAndPerimeter(ccw)
		require.NoError(t, err)
		a2, p2, err := WGS84Spheroid.AreaAndPerimeter(cw)
		require.NoError(t, err)
		require.InEpsilon(t, a1, a2, 1e-12)
		require.InEpsilon(t, p1, p2, 1e-12)
	})

	t.Run("degenerate", func(t *testing.T) {
		area, perimeter, err := WGS84Spheroid.AreaAndPerimeter(ring([2]float64{10, 10}, [2]float64{10, 10}))
		require.NoError(t, err)
		require.Equal(t, 0.0, area)
		require.Equal(t, 0.0, perimeter)
	})
}

func TestBoxAreaProlate(t *testing.T) {
	// Prolate and oblate spheroids with close axes have close areas.
	prolate, err := NewSpheroidFromAxes(1, 1.001)
	require.NoError(t, err)
	require.Less(t, prolate.EccentricitySquared(), 0.0)
	lat := r1.Interval{Lo: 0, Hi: 0.5}
	lng := s1.IntervalFromEndpoints(0, 1)
	area, err := prolate.BoxArea(lat, lng)
	require.NoError(t, err)
	sphereArea, err := MustNewSpheroid(1, 0).BoxArea(lat, lng)
	require.NoError(t, err)
	require.InEpsilon(t, sphereArea, area, 1e-2)
}

func TestBoxAreaDegenerate(t *testing.T) {
	area, err := WGS84Spheroid.BoxArea(r1.Interval{Lo: 0.1, Hi: 0.1}, s1.IntervalFromEndpoints(0, 1))
	require.NoError(t, err)
	require.Equal(t, 0.0, area)

	_, err = WGS84Spheroid.BoxArea(r1.Interval{Lo: 0, Hi: 2}, s1.IntervalFromEndpoints(0, 1))
	require.Error(t, err)
}
