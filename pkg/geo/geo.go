// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geo handles serialized geometry values as an R-tree index stores
// them: a 4-byte little-endian SRID followed by the WKB of the geometry.
//
// Subpackages work on these values:
//   - geo/geombr computes and combines their bounding rectangles.
//   - geo/srscatalog resolves their SRIDs to reference systems.
package geo

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkbcommon"
)

// Value is a serialized geometry value.
type Value []byte

// MakeValue serializes g with the given SRID, writing the WKB body in
// byteOrder. Empty points are written with NaN coordinates.
func MakeValue(g geom.T, srid geopb.SRID, byteOrder binary.ByteOrder) (Value, error) {
	body, err := wkb.Marshal(g, byteOrder, wkbcommon.WKBOptionEmptyPointHandling(wkbcommon.EmptyPointHandlingNaN))
	if err != nil {
		return nil, errors.Wrap(err, "encoding geometry")
	}
	v := make(Value, geopb.SRIDSize, geopb.SRIDSize+len(body))
	binary.LittleEndian.PutUint32(v, uint32(srid))
	return append(v, body...), nil
}

// SRID returns the SRID of the value, or 0 if the value is too short to hold
// one.
func (v Value) SRID() geopb.SRID {
	if len(v) < geopb.SRIDSize {
		return geopb.UnknownSRID
	}
	return geopb.SRID(binary.LittleEndian.Uint32(v))
}

// Body returns the WKB of the geometry.
func (v Value) Body() geopb.WKB {
	if len(v) < geopb.SRIDSize {
		return nil
	}
	return geopb.WKB(v[geopb.SRIDSize:])
}

// Geom decodes the geometry of the value. The SRID of the returned geometry
// is not set.
func (v Value) Geom() (geom.T, error) {
	if len(v) < geopb.SRIDSize {
		return nil, errors.Newf("geo: value of %d bytes has no SRID", len(v))
	}
	return wkb.Unmarshal(v.Body(), wkbcommon.WKBOptionEmptyPointHandling(wkbcommon.EmptyPointHandlingNaN))
}
