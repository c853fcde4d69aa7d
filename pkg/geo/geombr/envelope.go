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
	"context"
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
	"github.com/cockroachdb/geombr/pkg/geo/geoprojbase"
	"github.com/cockroachdb/geombr/pkg/util/buildutil"
	"github.com/cockroachdb/geombr/pkg/util/log"
	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkbcommon"
)

// ErrInvalidGeometry marks errors caused by a malformed serialized geometry.
var ErrInvalidGeometry = errors.New("invalid geometry")

// angleTolerance absorbs rounding when converting coordinates at the edges
// of the valid longitude and latitude ranges to radians.
const angleTolerance = 1e-12

// Envelope returns the bounding box of the serialized geometry in the first
// size bytes of store, together with the SRID in its 4-byte prefix. Empty
// geometries get geopb.FullDomainBoundingBox, so they match every search.
//
// srs may be nil even when the stored SRID is not, as for indexes over
// columns mixing SRIDs. Errors marked with ErrInvalidGeometry report a
// malformed value; any other error is an internal failure. No box is
// returned in either case.
func Envelope(
	ctx context.Context,
	srs *geoprojbase.SpatialReferenceSystem,
	store []byte,
	size int,
	nDims int,
) (geopb.BoundingBox, geopb.SRID, error) {
	if nDims != 2 {
		return geopb.BoundingBox{}, 0, errors.AssertionFailedf("unsupported number of dimensions: %d", nDims)
	}
	if size < geopb.SRIDSize || size > len(store) {
		return geopb.BoundingBox{}, 0, errors.Mark(
			errors.Newf("declared size %d does not fit a %d byte value", size, len(store)),
			ErrInvalidGeometry,
		)
	}
	srid := geopb.SRID(binary.LittleEndian.Uint32(store))
	if srs != nil && srs.SRID() != srid {
		if buildutil.Invariants {
			return geopb.BoundingBox{}, srid, errors.AssertionFailedf(
				"stored SRID %d does not match SRS %d", srid, srs.SRID())
		}
		log.VEventf(ctx, 2, "stored SRID %d does not match SRS %d", srid, srs.SRID())
	}

	o := compute(func() (geopb.BoundingBox, error) {
		g, err := wkb.Unmarshal(
			store[geopb.SRIDSize:size],
			wkbcommon.WKBOptionEmptyPointHandling(wkbcommon.EmptyPointHandlingNaN),
		)
		if err != nil {
			return geopb.BoundingBox{}, errors.Mark(errors.Wrap(err, "decoding geometry"), ErrInvalidGeometry)
		}
		return ModelFor(srs).envelope(g)
	})
	if o.err != nil {
		log.VEventf(ctx, 2, "envelope of SRID %d value failed: %v", srid, o.err)
		return geopb.BoundingBox{}, srid, o.err
	}

	mbr := o.val
	if math.IsNaN(mbr.LoX) {
		if !math.IsNaN(mbr.HiX) || !math.IsNaN(mbr.LoY) || !math.IsNaN(mbr.HiY) {
			return geopb.BoundingBox{}, srid, errors.AssertionFailedf("partially empty envelope %s", mbr)
		}
		return geopb.FullDomainBoundingBox(), srid, nil
	}
	if !mbr.IsValid() {
		return geopb.BoundingBox{}, srid, errors.AssertionFailedf("invalid envelope %s", mbr)
	}
	return mbr, srid, nil
}

// envelope computes the bounding box of g. Empty geometries yield a box with
// NaN coordinates.
func (m CoordinateModel) envelope(g geom.T) (geopb.BoundingBox, error) {
	if g.Empty() {
		return geopb.NaNBoundingBox(), nil
	}
	if m.kind == Ellipsoidal {
		return m.geographicEnvelope(g)
	}
	b := g.Bounds()
	mbr := geopb.BoundingBox{LoX: b.Min(0), HiX: b.Max(0), LoY: b.Min(1), HiY: b.Max(1)}
	if mbr.IsNaN() {
		return geopb.BoundingBox{}, errors.Mark(
			errors.Newf("geometry has NaN coordinates"), ErrInvalidGeometry)
	}
	return mbr, nil
}

// geographicEnvelope bounds g on the sphere, following great circle arcs
// between vertices. Polygons containing a pole are not widened to it.
func (m CoordinateModel) geographicEnvelope(g geom.T) (geopb.BoundingBox, error) {
	rect := s2.EmptyRect()
	err := walkSequences(g, func(flat []float64, stride int) error {
		if len(flat) < stride {
			return nil
		}
		if len(flat) == stride {
			ll, err := m.latLng(flat[0], flat[1])
			if err != nil {
				return err
			}
			rect = rect.Union(pointRect(ll))
			return nil
		}
		bounder := s2.NewRectBounder()
		for i := 0; i+stride <= len(flat); i += stride {
			ll, err := m.latLng(flat[i], flat[i+1])
			if err != nil {
				return err
			}
			bounder.AddPoint(s2.PointFromLatLng(ll))
		}
		rect = rect.Union(bounder.RectBound())
		return nil
	})
	if err != nil {
		return geopb.BoundingBox{}, err
	}
	if rect.IsEmpty() {
		return geopb.NaNBoundingBox(), nil
	}
	return geographicBox{r: rect, srs: m.srs}.bounds(), nil
}

// latLng converts a longitude/latitude pair in the unit of the model's SRS.
func (m CoordinateModel) latLng(x, y float64) (s2.LatLng, error) {
	lng, lat := m.srs.ToRadians(x), m.srs.ToRadians(y)
	if math.IsNaN(lng) || math.Abs(lng) > math.Pi+angleTolerance {
		return s2.LatLng{}, errors.Mark(
			errors.Newf("longitude %v is out of range", x), ErrInvalidGeometry)
	}
	if math.IsNaN(lat) || math.Abs(lat) > math.Pi/2+angleTolerance {
		return s2.LatLng{}, errors.Mark(
			errors.Newf("latitude %v is out of range", y), ErrInvalidGeometry)
	}
	return s2.LatLng{Lat: s1.Angle(lat), Lng: s1.Angle(lng)}.Normalized(), nil
}

// pointRect returns the rectangle holding only ll, storing longitude -pi as
// pi like s1.Interval does.
func pointRect(ll s2.LatLng) s2.Rect {
	lat, lng := ll.Lat.Radians(), ll.Lng.Radians()
	return s2.Rect{
		Lat: r1.Interval{Lo: lat, Hi: lat},
		Lng: s1.IntervalFromEndpoints(lng, lng),
	}
}

// walkSequences calls fn with the coordinates of every point, line and ring
// of g.
func walkSequences(g geom.T, fn func(flat []float64, stride int) error) error {
	switch g := g.(type) {
	case *geom.Point, *geom.LineString, *geom.LinearRing:
		return fn(g.FlatCoords(), g.Stride())
	case *geom.MultiPoint:
		for i := 0; i < g.NumPoints(); i++ {
			p := g.Point(i)
			if err := fn(p.FlatCoords(), p.Stride()); err != nil {
				return err
			}
		}
	case *geom.MultiLineString:
		for i := 0; i < g.NumLineStrings(); i++ {
			ls := g.LineString(i)
			if err := fn(ls.FlatCoords(), ls.Stride()); err != nil {
				return err
			}
		}
	case *geom.Polygon:
		for i := 0; i < g.NumLinearRings(); i++ {
			ring := g.LinearRing(i)
			if err := fn(ring.FlatCoords(), ring.Stride()); err != nil {
				return err
			}
		}
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			if err := walkSequences(g.Polygon(i), fn); err != nil {
				return err
			}
		}
	case *geom.GeometryCollection:
		for _, sub := range g.Geoms() {
			if err := walkSequences(sub, fn); err != nil {
				return err
			}
		}
	default:
		return errors.AssertionFailedf("unknown geometry type %T", g)
	}
	return nil
}
