package dateline

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// VertexClass locates a point relative to the dateline plane y = 0 and the
// two poles.
type VertexClass int

const (
	// Front is y > 0, longitudes in (0, 180).
	Front VertexClass = iota
	// Back is y < 0, longitudes in (-180, 0).
	Back
	// OffDatelineArcOnPlane is on the plane, on the 0 degree meridian.
	OffDatelineArcOnPlane
	OnDatelineArc
	OnNorthPole
	OnSouthPole
)

var vertexClassNames = [...]string{
	Front:                 "Front",
	Back:                  "Back",
	OffDatelineArcOnPlane: "OffDatelineArcOnPlane",
	OnDatelineArc:         "OnDatelineArc",
	OnNorthPole:           "OnNorthPole",
	OnSouthPole:           "OnSouthPole",
}

func (c VertexClass) String() string {
	if c < 0 || int(c) >= len(vertexClassNames) {
		return "VertexClass(?)"
	}
	return vertexClassNames[c]
}

// side is +1 for Front, -1 for Back and 0 for points on the plane.
func (c VertexClass) side() int {
	switch c {
	case Front:
		return 1
	case Back:
		return -1
	}
	return 0
}

func (c VertexClass) onPole() bool {
	return c == OnNorthPole || c == OnSouthPole
}

// onBoundary reports whether c has no longitude of its own: it sits on the
// dateline or a pole and takes its longitude from its neighbours.
func (c VertexClass) onBoundary() bool {
	return c == OnDatelineArc || c.onPole()
}

var (
	northPole = s2.Point{Vector: r3.Vector{X: 0, Y: 0, Z: 1}}
	southPole = s2.Point{Vector: r3.Vector{X: 0, Y: 0, Z: -1}}
)

func poleLat(c VertexClass) float64 {
	if c == OnNorthPole {
		return 90
	}
	return -90
}

// Classifier classifies points against the thick dateline plane. The zero
// value treats only exact zeros as on the plane; use NewClassifier or
// DefaultOptions for the usual tolerances.
type Classifier struct {
	PlaneEpsilon float64
	PoleEpsilon  float64
}

func NewClassifier(o Options) Classifier {
	return Classifier{PlaneEpsilon: o.PlaneEpsilon, PoleEpsilon: o.PoleEpsilon}
}

// Classify tests the poles first, since longitude is undefined there, then
// the signed distance to the plane.
func (c Classifier) Classify(p s2.Point) VertexClass {
	if math.Hypot(p.X, p.Y) <= c.PoleEpsilon {
		if p.Z > 0 {
			return OnNorthPole
		}
		return OnSouthPole
	}
	switch {
	case p.Y > c.PlaneEpsilon:
		return Front
	case p.Y < -c.PlaneEpsilon:
		return Back
	case p.X < 0:
		return OnDatelineArc
	}
	return OffDatelineArcOnPlane
}
