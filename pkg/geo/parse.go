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
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/ewkbhex"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// ParseValue parses a text as a number of different options that is
// available in the geospatial world using the first character as a
// heuristic: EWKB hex, raw EWKB, GeoJSON or EWKT. The WKB body of the result
// is written in byteOrder. Geometries without an SRID get defaultSRID.
func ParseValue(str string, defaultSRID geopb.SRID, byteOrder binary.ByteOrder) (Value, error) {
	if len(str) == 0 {
		return nil, errors.New("geo: parsing empty string to geo type")
	}

	var t geom.T
	var err error
	srid := defaultSRID
	switch {
	case str[0] == '0':
		t, err = ewkbhex.Decode(str)
	case str[0] == 0x00 || str[0] == 0x01:
		t, err = ewkb.Unmarshal([]byte(str))
	case str[0] == '{':
		err = geojson.Unmarshal([]byte(str), &t)
	default:
		t, srid, err = decodeEWKT(str, defaultSRID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "geo: parsing geometry")
	}
	// Only override the SRID if the SRID is not zero.
	if t.SRID() != 0 {
		srid = geopb.SRID(t.SRID())
	}
	return MakeValue(t, srid, byteOrder)
}

const sridPrefix = "SRID="
const sridPrefixLen = len(sridPrefix)

// decodeEWKT decodes a WKT string, optionally prefixed with SRID=<srid>;.
func decodeEWKT(str string, defaultSRID geopb.SRID) (geom.T, geopb.SRID, error) {
	srid := defaultSRID
	if strings.HasPrefix(str, sridPrefix) {
		end := strings.Index(str[sridPrefixLen:], ";")
		if end == -1 {
			return nil, 0, errors.Newf(
				"geo: failed to find ; character with SRID declaration during EWKT decode: %q",
				str,
			)
		}
		sridInt64, err := strconv.ParseInt(str[sridPrefixLen:sridPrefixLen+end], 10, 32)
		if err != nil {
			return nil, 0, err
		}
		if sridInt64 != 0 {
			srid = geopb.SRID(sridInt64)
		}
		str = str[sridPrefixLen+end+1:]
	}
	t, err := wkt.Unmarshal(str)
	if err != nil {
		return nil, 0, err
	}
	return t, srid, nil
}
