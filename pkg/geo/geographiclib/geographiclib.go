// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geographiclib models the ellipsoid of revolution used by geographic
// spatial reference systems and computes areas over it.
package geographiclib

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Spheroid is an ellipsoid of revolution described by its semi-axes.
type Spheroid struct {
	// Radius is the semi-major (equatorial) axis.
	Radius float64
	// Flattening is (Radius - SemiMinorAxis) / Radius.
	Flattening float64
	// SemiMinorAxis is the polar axis.
	SemiMinorAxis float64
	// SphereRadius is the radius of the sphere with the same mean radius.
	SphereRadius float64

	e2 float64
}

// WGS84Spheroid is the spheroid of the WGS 84 datum.
var WGS84Spheroid = MustNewSpheroid(6378137, 1/298.257223563)

// NewSpheroid creates a spheroid from its semi-major axis and flattening.
func NewSpheroid(radius float64, flattening float64) (*Spheroid, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, errors.Newf("invalid semi-major axis %v", radius)
	}
	if math.IsNaN(flattening) || flattening >= 1 {
		return nil, errors.Newf("invalid flattening %v", flattening)
	}
	minor := radius * (1 - flattening)
	return &Spheroid{
		Radius:        radius,
		Flattening:    flattening,
		SemiMinorAxis: minor,
		SphereRadius:  (2*radius + minor) / 3,
		e2:            flattening * (2 - flattening),
	}, nil
}

// NewSpheroidFromAxes creates a spheroid from its semi-major and semi-minor
// axes.
func NewSpheroidFromAxes(semiMajor, semiMinor float64) (*Spheroid, error) {
	if !(semiMajor > 0) {
		return nil, errors.Newf("invalid semi-major axis %v", semiMajor)
	}
	if !(semiMinor > 0) {
		return nil, errors.Newf("invalid semi-minor axis %v", semiMinor)
	}
	return NewSpheroid(semiMajor, (semiMajor-semiMinor)/semiMajor)
}

// MustNewSpheroid is NewSpheroid, panicking on error.
func MustNewSpheroid(radius float64, flattening float64) *Spheroid {
	s, err := NewSpheroid(radius, flattening)
	if err != nil {
		panic(err)
	}
	return s
}

// EccentricitySquared returns the square of the first eccentricity. It is
// negative for prolate spheroids.
func (s *Spheroid) EccentricitySquared() float64 {
	return s.e2
}

// BoxArea returns the area of the box with corners at lat.Lo and lat.Hi and
// the longitudes bounding lng, with all angles in radians. The longitude
// interval may wrap around the antimeridian. Boxes narrower than a hemisphere
// are closed by geodesic edges between the four corners; wider boxes are
// bounded by the parallels themselves.
func (s *Spheroid) BoxArea(lat r1.Interval, lng s1.Interval) (float64, error) {
	if lat.IsEmpty() || lng.IsEmpty() {
		return 0, nil
	}
	if lat.Lo < -math.Pi/2 || lat.Hi > math.Pi/2 {
		return 0, errors.Newf("latitude interval [%v, %v] out of range", lat.Lo, lat.Hi)
	}
	width := lng.Length()
	if lat.Lo == lat.Hi || width == 0 {
		return 0, nil
	}
	if width >= math.Pi {
		return s.zoneArea(lat, width), nil
	}
	corner := func(phi, lambda float64) s2.LatLng {
		return s2.LatLng{Lat: s1.Angle(phi), Lng: s1.Angle(lambda)}
	}
	area, _, err := s.AreaAndPerimeter([]s2.LatLng{
		corner(lat.Lo, lng.Lo),
		corner(lat.Lo, lng.Hi),
		corner(lat.Hi, lng.Hi),
		corner(lat.Hi, lng.Lo),
	})
	if err != nil {
		return 0, errors.Wrapf(err, "box [%v, %v] x [%v, %v]", lng.Lo, lng.Hi, lat.Lo, lat.Hi)
	}
	return area, nil
}

// zoneArea is the area between the parallels of lat over width radians of
// longitude.
func (s *Spheroid) zoneArea(lat r1.Interval, width float64) float64 {
	return width * (s.z(lat.Hi) - s.z(lat.Lo))
}

// AreaAndPerimeter returns the area and perimeter of the polygon whose ring
// joins points by geodesics. The ring is implicitly closed and may be given
// in either orientation; the smaller of the two regions it bounds is
// measured.
func (s *Spheroid) AreaAndPerimeter(points []s2.LatLng) (area float64, perimeter float64, err error) {
	var sum, winding float64
	for i := range points {
		p1, p2 := points[i], points[(i+1)%len(points)]
		phi1, phi2 := p1.Lat.Radians(), p2.Lat.Radians()
		lambda := math.Remainder(p2.Lng.Radians()-p1.Lng.Radians(), 2*math.Pi)
		switch {
		case isPole(phi1) && phi1 == phi2:
			// The edge runs around the pole itself.
			sum += s.z(phi1) * lambda
			winding += lambda
			continue
		case phi1 == 0 && phi2 == 0:
			winding += lambda
			perimeter += s.Radius * math.Abs(lambda)
			continue
		}
		g, ok, err := s.inverse(phi1, phi2, lambda)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "edge %d from %s to %s", i, p1, p2)
		}
		if !ok {
			continue
		}
		perimeter += g.distance
		if isPole(phi1) || isPole(phi2) {
			continue
		}
		winding += lambda
		sum += s.edgeArea(g)
	}
	total := 4 * math.Pi * s.z(math.Pi/2)
	left := -sum
	if math.Abs(winding) > math.Pi {
		// The ring encircles a pole.
		left += total / 2
	}
	left = math.Remainder(left, total)
	return math.Abs(left), perimeter, nil
}

func isPole(phi float64) bool {
	return math.Abs(phi) == math.Pi/2
}

// geodesic is the solution of the inverse problem for one edge.
type geodesic struct {
	distance float64
	// sigma is the arc length on the auxiliary sphere.
	sigma float64
	// alpha1 is the azimuth at the first point.
	alpha1 float64
	// u1 is the reduced latitude of the first point.
	u1 float64
}

const (
	inverseTolerance     = 1e-12
	inverseMaxIterations = 200
)

// inverse solves the geodesic between latitudes phi1 and phi2 separated by
// lambda radians of longitude with Vincenty's iteration. It returns false
// for coincident points.
func (s *Spheroid) inverse(phi1, phi2, lambda float64) (geodesic, bool, error) {
	f := s.Flattening
	a := s.Radius
	b := s.SemiMinorAxis
	u1 := math.Atan((1 - f) * math.Tan(phi1))
	u2 := math.Atan((1 - f) * math.Tan(phi2))
	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	lam := lambda
	var sinSigma, cosSigma, sigma, cos2Alpha, cos2SigmaM float64
	converged := false
	for i := 0; i < inverseMaxIterations; i++ {
		sinLam, cosLam := math.Sincos(lam)
		sinSigma = math.Hypot(cosU2*sinLam, cosU1*sinU2-sinU1*cosU2*cosLam)
		if sinSigma == 0 {
			return geodesic{}, false, nil
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLam
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLam / sinSigma
		cos2Alpha = 1 - sinAlpha*sinAlpha
		cos2SigmaM = 0
		if cos2Alpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cos2Alpha
		}
		c := f / 16 * cos2Alpha * (4 + f*(4-3*cos2Alpha))
		prev := lam
		lam = lambda + (1-c)*f*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.Abs(lam) > math.Pi || math.IsNaN(lam) {
			break
		}
		if math.Abs(lam-prev) < inverseTolerance {
			converged = true
			break
		}
	}
	if !converged {
		return geodesic{}, false, errors.Newf("geodesic did not converge for nearly antipodal points")
	}

	sinLam, cosLam := math.Sincos(lam)
	uu := cos2Alpha * (a*a - b*b) / (b * b)
	bigA := 1 + uu/16384*(4096+uu*(-768+uu*(320-175*uu)))
	bigB := uu / 1024 * (256 + uu*(-128+uu*(74-47*uu)))
	deltaSigma := bigB * sinSigma * (cos2SigmaM + bigB/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
	return geodesic{
		distance: b * bigA * (sigma - deltaSigma),
		sigma:    sigma,
		alpha1:   math.Atan2(cosU2*sinLam, cosU1*sinU2-sinU1*cosU2*cosLam),
		u1:       u1,
	}, true, nil
}

// gaussLegendre holds the positive nodes and weights of the eight point
// Gauss-Legendre rule on [-1, 1].
var gaussLegendre = [4][2]float64{
	{0.1834346424956498, 0.3626837833783620},
	{0.5255324099163290, 0.3137066458778873},
	{0.7966664774136267, 0.2223810344533745},
	{0.9602898564975363, 0.1012285362903763},
}

// edgePanel is the largest arc, in radians on the auxiliary sphere, that one
// quadrature panel spans.
const edgePanel = 0.1

// edgeArea integrates z(phi) dlambda along the geodesic g, giving the signed
// area between the edge and the equator.
func (s *Spheroid) edgeArea(g geodesic) float64 {
	f := s.Flattening
	sinAlpha0 := math.Cos(g.u1) * math.Sin(g.alpha1)
	if sinAlpha0 == 0 {
		// Meridian.
		return 0
	}
	cos2Alpha0 := 1 - sinAlpha0*sinAlpha0
	cosAlpha0 := math.Sqrt(cos2Alpha0)
	k2 := s.e2 / (1 - s.e2) * cos2Alpha0
	sigma1 := math.Atan2(math.Tan(g.u1), math.Cos(g.alpha1))

	panels := math.Max(1, math.Ceil(g.sigma/edgePanel))
	h := g.sigma / panels
	var sum float64
	for p := 0.0; p < panels; p++ {
		mid := sigma1 + (p+0.5)*h
		for _, nw := range gaussLegendre {
			for _, sign := range [2]float64{-1, 1} {
				sig := mid + sign*nw[0]*h/2
				sinSig := math.Sin(sig)
				sinU := cosAlpha0 * sinSig
				cos2U := 1 - sinU*sinU
				phi := math.Atan2(sinU, (1-f)*math.Sqrt(cos2U))
				dLambda := sinAlpha0/cos2U -
					f*sinAlpha0*(2-f)/(1+(1-f)*math.Sqrt(1+k2*sinSig*sinSig))
				sum += nw[1] * h / 2 * s.z(phi) * dLambda
			}
		}
	}
	return sum
}

// z is the area between the equator and latitude phi per radian of
// longitude.
func (s *Spheroid) z(phi float64) float64 {
	return 0.5 * s.Radius * s.Radius * s.q(phi)
}

// q is the authalic latitude function. Twice the area of the zone between
// the equator and latitude phi, per radian of longitude, is Radius^2 * q(phi).
func (s *Spheroid) q(phi float64) float64 {
	sinPhi := math.Sin(phi)
	var t float64
	switch {
	case s.e2 > 0:
		e := math.Sqrt(s.e2)
		t = math.Atanh(e*sinPhi) / e
	case s.e2 < 0:
		e := math.Sqrt(-s.e2)
		t = math.Atan(e*sinPhi) / e
	default:
		return 2 * sinPhi
	}
	return (1 - s.e2) * (sinPhi/(1-s.e2*sinPhi*sinPhi) + t)
}
