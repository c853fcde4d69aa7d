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

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/geombr/pkg/geo/geographiclib"
	"github.com/cockroachdb/geombr/pkg/geo/geopb"
	"github.com/cockroachdb/geombr/pkg/geo/geoprojbase"
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// box is a bounding box in the working representation of a coordinate
// model. The two operands of any box method always come from the same model.
type box interface {
	// coveredBy returns whether every point of the box lies in other.
	coveredBy(other box) bool
	// equals returns whether the box and other cover the same region.
	equals(other box) bool
	// expand returns the smallest box covering the box and other.
	expand(other box) box
	// area returns the area of the box.
	area() (float64, error)
	// bounds converts the box back to the coordinates it was built from.
	bounds() geopb.BoundingBox
}

// makeBox converts b to the working representation of the model. Geographic
// coordinates are converted to radians.
func (m CoordinateModel) makeBox(b geopb.BoundingBox) (box, error) {
	if m.kind == Planar {
		return planarBox{r: r2.Rect{
			X: r1.Interval{Lo: b.LoX, Hi: b.HiX},
			Y: r1.Interval{Lo: b.LoY, Hi: b.HiY},
		}}, nil
	}
	lng, err := lngInterval(m.srs.ToRadians(b.LoX), m.srs.ToRadians(b.HiX))
	if err != nil {
		return nil, err
	}
	lat := r1.Interval{Lo: m.srs.ToRadians(b.LoY), Hi: m.srs.ToRadians(b.HiY)}
	if math.IsNaN(lat.Lo) || math.IsNaN(lat.Hi) {
		return nil, errors.Newf("latitude range [%v, %v] is not a number", b.LoY, b.HiY)
	}
	return geographicBox{r: s2.Rect{Lat: lat, Lng: lng}, srs: m.srs}, nil
}

// makeBoxes converts a and b to working boxes.
func (m CoordinateModel) makeBoxes(a, b geopb.BoundingBox) (box, box, error) {
	aBox, err := m.makeBox(a)
	if err != nil {
		return nil, nil, err
	}
	bBox, err := m.makeBox(b)
	if err != nil {
		return nil, nil, err
	}
	return aBox, bBox, nil
}

type planarBox struct {
	r r2.Rect
}

func (p planarBox) coveredBy(other box) bool {
	return other.(planarBox).r.Contains(p.r)
}

func (p planarBox) equals(other box) bool {
	return p.r == other.(planarBox).r
}

func (p planarBox) expand(other box) box {
	return planarBox{r: p.r.Union(other.(planarBox).r)}
}

func (p planarBox) area() (float64, error) {
	size := p.r.Size()
	return size.X * size.Y, nil
}

func (p planarBox) bounds() geopb.BoundingBox {
	return geopb.BoundingBox{LoX: p.r.X.Lo, HiX: p.r.X.Hi, LoY: p.r.Y.Lo, HiY: p.r.Y.Hi}
}

// geographicBox is a longitude/latitude box in radians. Its longitude
// interval may wrap around the antimeridian.
type geographicBox struct {
	r   s2.Rect
	srs *geoprojbase.SpatialReferenceSystem
}

var validLatRange = r1.Interval{Lo: -math.Pi / 2, Hi: math.Pi / 2}

func (g geographicBox) coveredBy(other box) bool {
	return other.(geographicBox).r.Contains(g.r)
}

func (g geographicBox) equals(other box) bool {
	o := other.(geographicBox).r
	return g.r.Lat == o.Lat && g.r.Lng == o.Lng
}

func (g geographicBox) expand(other box) box {
	return geographicBox{r: g.r.Union(other.(geographicBox).r), srs: g.srs}
}

func (g geographicBox) area() (float64, error) {
	spheroid := g.srs.Spheroid()
	if spheroid == nil {
		return 0, errors.AssertionFailedf("geographic SRS %d has no spheroid", g.srs.SRID())
	}
	return boxArea(spheroid, g.r)
}

func boxArea(spheroid *geographiclib.Spheroid, r s2.Rect) (float64, error) {
	// Latitudes past the poles do not add any surface.
	lat := r.Lat.Intersection(validLatRange)
	return spheroid.BoxArea(lat, r.Lng)
}

func (g geographicBox) bounds() geopb.BoundingBox {
	loX, hiX := lngBounds(g.r.Lng)
	return geopb.BoundingBox{
		LoX: g.srs.FromRadians(loX),
		HiX: g.srs.FromRadians(hiX),
		LoY: g.srs.FromRadians(g.r.Lat.Lo),
		HiY: g.srs.FromRadians(g.r.Lat.Hi),
	}
}

// lngInterval builds the longitude interval from lo eastwards to hi, both in
// radians. Ranges of a full turn or more are the full interval.
func lngInterval(lo, hi float64) (s1.Interval, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return s1.Interval{}, errors.Newf("longitude range [%v, %v] is not a number", lo, hi)
	}
	if hi-lo >= 2*math.Pi {
		return s1.FullInterval(), nil
	}
	nlo, nhi := math.Remainder(lo, 2*math.Pi), math.Remainder(hi, 2*math.Pi)
	if math.IsNaN(nlo) || math.IsNaN(nhi) {
		return s1.Interval{}, errors.Newf("longitude range [%v, %v] is not finite", lo, hi)
	}
	lng := s1.IntervalFromEndpoints(nlo, nhi)
	if lng.IsEmpty() {
		return s1.Interval{}, errors.Newf("longitude range [%v, %v] is empty", lo, hi)
	}
	return lng, nil
}

// lngBounds returns the endpoints of a longitude interval such that lo <= hi.
// An interval crossing the antimeridian ends past pi.
func lngBounds(lng s1.Interval) (lo, hi float64) {
	switch {
	case lng.IsFull():
		return -math.Pi, math.Pi
	case !lng.IsInverted():
		return lng.Lo, lng.Hi
	case lng.Lo == math.Pi:
		// -pi is stored as pi.
		return -math.Pi, lng.Hi
	default:
		return lng.Lo, lng.Hi + 2*math.Pi
	}
}
