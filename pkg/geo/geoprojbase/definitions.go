// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geoprojbase

import (
	"github.com/cockroachdb/geombr/pkg/geo/geographiclib"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
)

// Definition is the catalog form of a spatial reference system.
type Definition struct {
	SRID       geopb.SRID
	Name       string
	Geographic bool
	// SemiMajorAxis and InverseFlattening describe the spheroid of
	// geographic systems. An InverseFlattening of 0 denotes a sphere.
	SemiMajorAxis     float64
	InverseFlattening float64
	// AngularUnit is the size of the coordinate unit in radians. Zero means
	// degrees.
	AngularUnit float64
}

// Build validates the definition and turns it into a reference system.
func (d Definition) Build() (*SpatialReferenceSystem, error) {
	if !d.Geographic {
		return MakeCartesian(d.SRID, d.Name), nil
	}
	flattening := 0.0
	if d.InverseFlattening != 0 {
		flattening = 1 / d.InverseFlattening
	}
	spheroid, err := geographiclib.NewSpheroid(d.SemiMajorAxis, flattening)
	if err != nil {
		return nil, err
	}
	unit := d.AngularUnit
	if unit == 0 {
		unit = Degree
	}
	return MakeGeographic(d.SRID, d.Name, spheroid, unit)
}

// BuiltinDefinitions are the reference systems every catalog starts with.
var BuiltinDefinitions = []Definition{
	{
		SRID:              4326,
		Name:              "WGS 84",
		Geographic:        true,
		SemiMajorAxis:     6378137,
		InverseFlattening: 298.257223563,
	},
	{
		SRID:              4269,
		Name:              "NAD83",
		Geographic:        true,
		SemiMajorAxis:     6378137,
		InverseFlattening: 298.257222101,
	},
	{
		SRID:              4258,
		Name:              "ETRS89",
		Geographic:        true,
		SemiMajorAxis:     6378137,
		InverseFlattening: 298.257222101,
	},
	{
		SRID:              4674,
		Name:              "SIRGAS 2000",
		Geographic:        true,
		SemiMajorAxis:     6378137,
		InverseFlattening: 298.257222101,
	},
	{SRID: 3857, Name: "WGS 84 / Pseudo-Mercator"},
	{SRID: 2154, Name: "RGF93 v1 / Lambert-93"},
	{SRID: 32633, Name: "WGS 84 / UTM zone 33N"},
}
