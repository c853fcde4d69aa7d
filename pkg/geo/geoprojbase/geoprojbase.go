// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geoprojbase describes spatial reference systems: whether they are
// planar or geographic, which spheroid a geographic system lives on, and how
// its angular unit converts to radians.
package geoprojbase

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/geo/geographiclib"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
)

// CoordinateSystem is the kind of coordinate system of a spatial reference
// system.
type CoordinateSystem int

const (
	// Cartesian systems use plane coordinates.
	Cartesian CoordinateSystem = iota
	// Geographic systems use longitude and latitude on a spheroid.
	Geographic
)

func (c CoordinateSystem) String() string {
	switch c {
	case Cartesian:
		return "cartesian"
	case Geographic:
		return "geographic"
	default:
		return fmt.Sprintf("CoordinateSystem(%d)", int(c))
	}
}

// Degree is the angular unit of degrees, in radians.
const Degree = math.Pi / 180

// SpatialReferenceSystem is an immutable snapshot of a spatial reference
// system definition. Values handed out by the catalog are never modified
// afterwards and may be shared read-only between goroutines.
type SpatialReferenceSystem struct {
	srid        geopb.SRID
	name        string
	system      CoordinateSystem
	spheroid    *geographiclib.Spheroid
	angularUnit float64
}

// MakeCartesian returns a planar spatial reference system.
func MakeCartesian(srid geopb.SRID, name string) *SpatialReferenceSystem {
	return &SpatialReferenceSystem{srid: srid, name: name, system: Cartesian}
}

// MakeGeographic returns a geographic spatial reference system on the given
// spheroid. angularUnit is the size of the unit coordinates are stored in,
// expressed in radians.
func MakeGeographic(
	srid geopb.SRID, name string, spheroid *geographiclib.Spheroid, angularUnit float64,
) (*SpatialReferenceSystem, error) {
	if spheroid == nil {
		return nil, errors.AssertionFailedf("geographic SRS %d requires a spheroid", srid)
	}
	if !(angularUnit > 0) || math.IsInf(angularUnit, 1) {
		return nil, errors.Newf("SRS %d: invalid angular unit %v", srid, angularUnit)
	}
	return &SpatialReferenceSystem{
		srid:        srid,
		name:        name,
		system:      Geographic,
		spheroid:    spheroid,
		angularUnit: angularUnit,
	}, nil
}

// SRID returns the identifier of the reference system.
func (s *SpatialReferenceSystem) SRID() geopb.SRID { return s.srid }

// Name returns the human readable name of the reference system.
func (s *SpatialReferenceSystem) Name() string { return s.name }

// CoordinateSystem returns the kind of coordinate system.
func (s *SpatialReferenceSystem) CoordinateSystem() CoordinateSystem { return s.system }

// IsCartesian returns whether coordinates are plane coordinates.
func (s *SpatialReferenceSystem) IsCartesian() bool { return s.system == Cartesian }

// IsGeographic returns whether coordinates are longitude/latitude angles.
func (s *SpatialReferenceSystem) IsGeographic() bool { return s.system == Geographic }

// Spheroid returns the spheroid of a geographic system, or nil.
func (s *SpatialReferenceSystem) Spheroid() *geographiclib.Spheroid { return s.spheroid }

// SemiMajorAxis returns the semi-major axis of the spheroid, or 0 for
// cartesian systems.
func (s *SpatialReferenceSystem) SemiMajorAxis() float64 {
	if s.spheroid == nil {
		return 0
	}
	return s.spheroid.Radius
}

// SemiMinorAxis returns the semi-minor axis of the spheroid, or 0 for
// cartesian systems.
func (s *SpatialReferenceSystem) SemiMinorAxis() float64 {
	if s.spheroid == nil {
		return 0
	}
	return s.spheroid.SemiMinorAxis
}

// AngularUnit returns the size of the angular unit in radians, or 0 for
// cartesian systems.
func (s *SpatialReferenceSystem) AngularUnit() float64 { return s.angularUnit }

// ToRadians converts an angle in the angular unit of the system to radians.
func (s *SpatialReferenceSystem) ToRadians(d float64) float64 {
	if s.system != Geographic {
		return d
	}
	return d * s.angularUnit
}

// FromRadians converts an angle in radians to the angular unit of the system.
func (s *SpatialReferenceSystem) FromRadians(r float64) float64 {
	if s.system != Geographic {
		return r
	}
	return r / s.angularUnit
}

// Clone returns a copy of the reference system.
func (s *SpatialReferenceSystem) Clone() *SpatialReferenceSystem {
	if s == nil {
		return nil
	}
	c := *s
	if s.spheroid != nil {
		sp := *s.spheroid
		c.spheroid = &sp
	}
	return &c
}

func (s *SpatialReferenceSystem) String() string {
	if s.system == Geographic {
		return fmt.Sprintf("%d (%s, geographic, a=%g b=%g)",
			s.srid, s.name, s.SemiMajorAxis(), s.SemiMinorAxis())
	}
	return fmt.Sprintf("%d (%s, cartesian)", s.srid, s.name)
}
