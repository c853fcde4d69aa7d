// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geo

import (
	"encoding/binary"
	"testing"

	"github.com/cockroachdb/geombr/pkg/geo/geopb"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestMakeValue(t *testing.T) {
	g := geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{1, 2}, {3, 4}})
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		v, err := MakeValue(g, 4326, order)
		require.NoError(t, err)
		require.Equal(t, geopb.SRID(4326), v.SRID())
		require.Equal(t, []byte{0xe6, 0x10, 0, 0}, []byte(v[:geopb.SRIDSize]))

		decoded, err := v.Geom()
		require.NoError(t, err)
		require.Equal(t, g.FlatCoords(), decoded.FlatCoords())
	}

	v, err := MakeValue(geom.NewPointEmpty(geom.XY), 0, binary.LittleEndian)
	require.NoError(t, err)
	decoded, err := v.Geom()
	require.NoError(t, err)
	require.True(t, decoded.Empty())

	short := Value{1, 2}
	require.Equal(t, geopb.UnknownSRID, short.SRID())
	require.Nil(t, short.Body())
	_, err = short.Geom()
	require.Error(t, err)
}

func TestParseValue(t *testing.T) {
	testCases := []struct {
		desc         string
		str          string
		defaultSRID  geopb.SRID
		expectedSRID geopb.SRID
		expectedEWKT string
	}{
		{"WKT", "POINT(1 2)", 0, 0, "POINT (1 2)"},
		{"WKT with default SRID", "POINT(1 2)", 4326, 4326, "SRID=4326;POINT (1 2)"},
		{"EWKT", "SRID=3857;LINESTRING(0 0, 1 1)", 4326, 3857, "SRID=3857;LINESTRING (0 0, 1 1)"},
		{"EWKT with zero SRID", "SRID=0;POINT(1 2)", 4326, 4326, "SRID=4326;POINT (1 2)"},
		{"WKB hex", "0101000000000000000000F03F0000000000000040", 0, 0, "POINT (1 2)"},
		{"EWKB hex", "0101000020E6100000000000000000F03F0000000000000040", 0, 4326, "SRID=4326;POINT (1 2)"},
		{"GeoJSON", `{"type":"Point","coordinates":[1,2]}`, 4269, 4269, "SRID=4269;POINT (1 2)"},
		{"empty", "POLYGON EMPTY", 0, 0, "POLYGON EMPTY"},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			v, err := ParseValue(tc.str, tc.defaultSRID, binary.LittleEndian)
			require.NoError(t, err)
			require.Equal(t, tc.expectedSRID, v.SRID())
			ewkt, err := ValueToEWKT(v, 15)
			require.NoError(t, err)
			require.Equal(t, tc.expectedEWKT, ewkt)
		})
	}

	for _, str := range []string{"", "SRID=4326POINT(1 2)", "SRID=x;POINT(1 2)", "POINT(1", "0102", "{"} {
		t.Run(str, func(t *testing.T) {
			_, err := ParseValue(str, 0, binary.LittleEndian)
			require.Error(t, err)
		})
	}
}

func TestValueEncodings(t *testing.T) {
	v, err := ParseValue("SRID=4326;POINT(1 2)", 0, binary.BigEndian)
	require.NoError(t, err)

	wkt, err := ValueToWKT(v, 15)
	require.NoError(t, err)
	require.Equal(t, "POINT (1 2)", wkt)

	hex, err := ValueToWKBHex(v, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, "0101000000000000000000F03F0000000000000040", hex)

	geoJSON, err := ValueToGeoJSON(v, DefaultGeoJSONDecimalDigits, GeoJSONFlagZero)
	require.NoError(t, err)
	require.Equal(t, `{"type":"Point","coordinates":[1,2]}`, string(geoJSON))

	geoJSON, err = ValueToGeoJSON(v, DefaultGeoJSONDecimalDigits, GeoJSONFlagShortCRS)
	require.NoError(t, err)
	require.Equal(t, `{"type":"Point","crs":{"type":"name","properties":{"name":"EPSG:4326"}},"coordinates":[1,2]}`, string(geoJSON))

	geoJSON, err = ValueToGeoJSON(v, DefaultGeoJSONDecimalDigits, GeoJSONFlagLongCRS|GeoJSONFlagShortCRS)
	require.NoError(t, err)
	require.Contains(t, string(geoJSON), "urn:ogc:def:crs:EPSG::4326")
}

func TestBoundingBoxToGeoHash(t *testing.T) {
	point := geopb.BoundingBox{LoX: 10.40744, HiX: 10.40744, LoY: 57.64911, HiY: 57.64911}
	hash, err := BoundingBoxToGeoHash(point, 11)
	require.NoError(t, err)
	require.Equal(t, "u4pruydqqvj", hash)

	hash, err = BoundingBoxToGeoHash(point, GeoHashAutoPrecision)
	require.NoError(t, err)
	require.Len(t, hash, GeoHashMaxPrecision)

	// Europe fits in the "u" cell but not in any of its sub-cells.
	hash, err = BoundingBoxToGeoHash(
		geopb.BoundingBox{LoX: 1, HiX: 40, LoY: 46, HiY: 80}, GeoHashAutoPrecision)
	require.NoError(t, err)
	require.Equal(t, "u", hash)

	// Boxes crossing the antimeridian have no covering cell.
	hash, err = BoundingBoxToGeoHash(
		geopb.BoundingBox{LoX: 170, HiX: 190, LoY: 0, HiY: 1}, GeoHashAutoPrecision)
	require.NoError(t, err)
	require.Equal(t, "", hash)
	hash, err = BoundingBoxToGeoHash(geopb.BoundingBox{LoX: 170, HiX: 200, LoY: 0, HiY: 1}, 1)
	require.NoError(t, err)
	require.Equal(t, "8", hash)

	for _, b := range []geopb.BoundingBox{
		geopb.FullDomainBoundingBox(),
		geopb.NaNBoundingBox(),
		{LoX: -200, HiX: 0, LoY: 0, HiY: 1},
		{LoX: 0, HiX: 1, LoY: 0, HiY: 91},
		{LoX: 1, HiX: 0, LoY: 0, HiY: 1},
	} {
		_, err = BoundingBoxToGeoHash(b, GeoHashAutoPrecision)
		require.Error(t, err, "%s", b)
	}
}
