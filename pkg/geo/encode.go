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
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
	"github.com/pierrre/geohash"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkbcommon"
	"github.com/twpayne/go-geom/encoding/wkbhex"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// DefaultGeoJSONDecimalDigits is the default number of digits coordinates in GeoJSON.
const DefaultGeoJSONDecimalDigits = 9

// ValueToWKT transforms a given Value to WKT.
func ValueToWKT(v Value, maxDecimalDigits int) (string, error) {
	t, err := v.Geom()
	if err != nil {
		return "", err
	}
	return wkt.Marshal(t, wkt.EncodeOptionWithMaxDecimalDigits(maxDecimalDigits))
}

// ValueToEWKT transforms a given Value to EWKT.
func ValueToEWKT(v Value, maxDecimalDigits int) (string, error) {
	ret, err := ValueToWKT(v, maxDecimalDigits)
	if err != nil {
		return "", err
	}
	if srid := v.SRID(); srid != geopb.UnknownSRID {
		ret = fmt.Sprintf("SRID=%d;%s", srid, ret)
	}
	return ret, nil
}

// ValueToWKBHex transforms a given Value to upper case WKB hex in the given
// byte order.
func ValueToWKBHex(v Value, byteOrder binary.ByteOrder) (string, error) {
	t, err := v.Geom()
	if err != nil {
		return "", err
	}
	ret, err := wkbhex.Encode(t, byteOrder, wkbcommon.WKBOptionEmptyPointHandling(wkbcommon.EmptyPointHandlingNaN))
	return strings.ToUpper(ret), err
}

// GeoJSONFlag selects optional members of the GeoJSON output.
type GeoJSONFlag int

const (
	// GeoJSONFlagIncludeBBox adds the bounding box of non-empty geometries.
	GeoJSONFlagIncludeBBox GeoJSONFlag = 1 << (iota)
	// GeoJSONFlagShortCRS adds the CRS as EPSG:<srid>.
	GeoJSONFlagShortCRS
	// GeoJSONFlagLongCRS adds the CRS as urn:ogc:def:crs:EPSG::<srid>.
	GeoJSONFlagLongCRS

	GeoJSONFlagZero = 0
)

// ValueToGeoJSON transforms a given Value to GeoJSON.
func ValueToGeoJSON(v Value, maxDecimalDigits int, flag GeoJSONFlag) ([]byte, error) {
	t, err := v.Geom()
	if err != nil {
		return nil, err
	}
	options := []geojson.EncodeGeometryOption{
		geojson.EncodeGeometryWithMaxDecimalDigits(maxDecimalDigits),
	}
	if flag&GeoJSONFlagIncludeBBox != 0 && !t.Empty() {
		options = append(options, geojson.EncodeGeometryWithBBox())
	}
	// Take CRS flag in order of precedence.
	if srid := v.SRID(); srid != geopb.UnknownSRID {
		var name string
		if flag&GeoJSONFlagLongCRS != 0 {
			name = fmt.Sprintf("urn:ogc:def:crs:EPSG::%d", srid)
		} else if flag&GeoJSONFlagShortCRS != 0 {
			name = fmt.Sprintf("EPSG:%d", srid)
		}
		if name != "" {
			options = append(options, geojson.EncodeGeometryWithCRS(&geojson.CRS{
				Type:       "name",
				Properties: map[string]interface{}{"name": name},
			}))
		}
	}
	return geojson.Marshal(t, options...)
}

// GeoHashAutoPrecision makes BoundingBoxToGeoHash pick the longest GeoHash
// whose cell covers the whole box.
const GeoHashAutoPrecision = 0

// GeoHashMaxPrecision is the longest GeoHash produced. A float64 carries 51
// bits for each of the two coordinates and a character holds 5 bits, so
// longer hashes add no information.
const GeoHashMaxPrecision = 20

// BoundingBoxToGeoHash returns the GeoHash of the center of a longitude /
// latitude box in degrees, p characters long. Boxes crossing the antimeridian
// may end past 180 degrees, as geographic MBRs do. Such a box is covered by
// no GeoHash cell, so its automatic precision is 0 and its GeoHash is empty.
func BoundingBoxToGeoHash(bbox geopb.BoundingBox, p int) (string, error) {
	if bbox.IsNaN() || !bbox.IsValid() ||
		bbox.LoX < -180 || bbox.HiX > 360 || bbox.HiX-bbox.LoX > 360 ||
		bbox.LoY < -90 || bbox.HiY > 90 {
		return "", errors.Newf("geo: %s is not a longitude/latitude box", bbox)
	}
	if p <= GeoHashAutoPrecision {
		p = geoHashPrecisionFor(bbox)
	}
	if p > GeoHashMaxPrecision {
		p = GeoHashMaxPrecision
	}
	lng, lat := bbox.LoX+(bbox.HiX-bbox.LoX)/2, bbox.LoY+(bbox.HiY-bbox.LoY)/2
	if lng > 180 {
		lng -= 360
	}
	return geohash.Encode(lat, lng, p), nil
}

// geoHashPrecisionFor returns the number of characters of the longest
// GeoHash whose cell, taken around the center of bbox, covers bbox.
func geoHashPrecisionFor(bbox geopb.BoundingBox) int {
	switch {
	case bbox.LoX == bbox.HiX && bbox.LoY == bbox.HiY:
		return GeoHashMaxPrecision
	case bbox.HiX > 180:
		return 0
	}
	lng, lat := bbox.LoX+(bbox.HiX-bbox.LoX)/2, bbox.LoY+(bbox.HiY-bbox.LoY)/2
	p := 0
	for p < GeoHashMaxPrecision {
		// Bits alternate between longitude and latitude, longitude first.
		bits := 5 * (p + 1)
		lngBits, latBits := (bits+1)/2, bits/2
		if !cellCovers(-180, 360, lngBits, lng, bbox.LoX, bbox.HiX) ||
			!cellCovers(-90, 180, latBits, lat, bbox.LoY, bbox.HiY) {
			break
		}
		p++
	}
	return p
}

// cellCovers returns whether the cell holding v, after splitting the axis
// [origin, origin+extent] in 2^bits cells, contains [lo, hi].
func cellCovers(origin, extent float64, bits int, v, lo, hi float64) bool {
	size := math.Ldexp(extent, -bits)
	cellLo := origin + math.Floor((v-origin)/size)*size
	return cellLo <= lo && hi <= cellLo+size
}
