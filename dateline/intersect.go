package dateline

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/GPlates/GPlates-sub027/x"
)

// IntersectionType is the kind of point where an edge meets the dateline.
type IntersectionType int

const (
	IntersectedDateline IntersectionType = iota
	IntersectedNorthPole
	IntersectedSouthPole
)

func (t IntersectionType) String() string {
	switch t {
	case IntersectedDateline:
		return "IntersectedDateline"
	case IntersectedNorthPole:
		return "IntersectedNorthPole"
	case IntersectedSouthPole:
		return "IntersectedSouthPole"
	}
	return "IntersectionType(?)"
}

func (t IntersectionType) class() VertexClass {
	switch t {
	case IntersectedNorthPole:
		return OnNorthPole
	case IntersectedSouthPole:
		return OnSouthPole
	}
	return OnDatelineArc
}

// Intersect returns the point where edge AB crosses the dateline plane. A and
// B must classify Front and Back (in either order); anything else panics.
//
// Of the two antipodal intersections of the edge's great circle with the
// plane, the one on the edge is the positive combination |ya|*b + |yb|*a.
// Its y is set to exactly zero. ok is false when the crossing lies on the 0
// degree meridian, i.e. the edge does not cross the dateline.
func (c Classifier) Intersect(a, b s2.Point) (t IntersectionType, p s2.Point, ok bool) {
	ca, cb := c.Classify(a), c.Classify(b)
	x.AssertTruef(ca.side()*cb.side() == -1,
		"edge %v -> %v does not straddle the dateline plane (%v, %v)", a, b, ca, cb)

	v := b.Mul(math.Abs(a.Y)).Add(a.Mul(math.Abs(b.Y)))
	v.Y = 0
	x.AssertTruef(v.Norm2() > 0, "edge %v -> %v is antipodal", a, b)
	p = s2.Point{Vector: v.Normalize()}

	switch c.Classify(p) {
	case OnNorthPole:
		return IntersectedNorthPole, northPole, true
	case OnSouthPole:
		return IntersectedSouthPole, southPole, true
	case OnDatelineArc:
		return IntersectedDateline, p, true
	}
	return IntersectedDateline, p, false
}

// poleBetween returns the pole passed over by an edge lying in the dateline
// plane from a point on the dateline arc to a point on the 0 degree arc.
// Antipodal endpoints have no defined edge and are taken over the north pole.
func poleBetween(a, b s2.Point) VertexClass {
	if a.Add(b.Vector).Z < 0 {
		return OnSouthPole
	}
	return OnNorthPole
}
