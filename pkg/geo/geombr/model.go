// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geombr implements the minimum bounding rectangle (MBR) operations an
// R-tree index needs from the spatial layer: extracting the MBR of a stored
// geometry, comparing and combining MBRs, and the area based costs used to
// choose where entries are inserted and how nodes are split.
//
// Every function accepts an optional spatial reference system. A nil or
// cartesian system means plane coordinates. A geographic system means
// longitude (X) and latitude (Y) in the system's angular unit, evaluated on
// the system's spheroid.
//
// Apart from Envelope, none of the functions return errors. Faults inside
// the geometry computations are absorbed and replaced by the documented
// default of each function.
package geombr

import (
	"fmt"

	"github.com/cockroachdb/geombr/pkg/geo/geoprojbase"
)

// ModelKind distinguishes the two coordinate models.
type ModelKind int

const (
	// Planar boxes are literal plane coordinates.
	Planar ModelKind = iota
	// Ellipsoidal boxes are longitude/latitude ranges on a spheroid.
	Ellipsoidal
)

func (k ModelKind) String() string {
	switch k {
	case Planar:
		return "planar"
	case Ellipsoidal:
		return "ellipsoidal"
	default:
		return fmt.Sprintf("ModelKind(%d)", int(k))
	}
}

// CoordinateModel is the coordinate model implied by a spatial reference
// system: Planar, or Ellipsoidal with the semi-axes of a spheroid.
type CoordinateModel struct {
	kind ModelKind
	srs  *geoprojbase.SpatialReferenceSystem
}

// ModelFor returns the coordinate model of srs. A nil srs, which stands for an
// unresolved SRID, is Planar with zero semi-axes.
func ModelFor(srs *geoprojbase.SpatialReferenceSystem) CoordinateModel {
	if srs == nil || !srs.IsGeographic() {
		return CoordinateModel{kind: Planar, srs: srs}
	}
	return CoordinateModel{kind: Ellipsoidal, srs: srs}
}

// Kind returns whether the model is Planar or Ellipsoidal.
func (m CoordinateModel) Kind() ModelKind { return m.kind }

// SemiAxes returns the semi-major and semi-minor axes of the spheroid. Both
// are zero when no reference system was resolved.
func (m CoordinateModel) SemiAxes() (semiMajor, semiMinor float64) {
	if m.srs == nil {
		return 0, 0
	}
	return m.srs.SemiMajorAxis(), m.srs.SemiMinorAxis()
}

func (m CoordinateModel) String() string {
	if m.kind == Ellipsoidal {
		a, b := m.SemiAxes()
		return fmt.Sprintf("ellipsoidal(%g, %g)", a, b)
	}
	return "planar"
}
