// Package dateline cuts polylines and polygons on the sphere along the
// dateline so that they can be drawn in a longitude/latitude projection.
//
// Polylines are split wherever they cross the dateline. Polygons are clipped
// Greiner-Hormann style against the rectangle bounded by the ±180 meridians
// and the poles: each ring is cut into pieces which are closed along the
// rectangle's edges.
package dateline

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/golang/glog"

	"github.com/GPlates/GPlates-sub027/mat3"
)

// Wrapper is immutable and safe for concurrent use. Each call works on its
// own graph.
type Wrapper struct {
	opts       Options
	classifier Classifier
	rotate     mat3.Matrix
	tess       *s2.EdgeTessellator
}

// New returns a Wrapper for DefaultOptions changed by opts.
func New(opts ...Option) *Wrapper {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return NewWithOptions(o)
}

func NewWithOptions(o Options) *Wrapper {
	w := &Wrapper{
		opts:       o,
		classifier: NewClassifier(o),
		rotate:     mat3.RotationZ(-s1.Angle(o.CentralMeridian) * s1.Degree),
	}
	if o.TessellationTolerance > 0 {
		w.tess = newTessellator(o.TessellationTolerance)
	}
	return w
}

func (w *Wrapper) Options() Options { return w.opts }

// rotated moves the points so that the dateline is the ±180 meridian.
func (w *Wrapper) rotated(pts []s2.Point) []s2.Point {
	out := make([]s2.Point, len(pts))
	for i, p := range pts {
		if w.opts.CentralMeridian == 0 {
			out[i] = p
			continue
		}
		out[i] = s2.Point{Vector: w.rotate.MulVector(p.Vector)}
	}
	return out
}

func (w *Wrapper) finish(p *Path, closed bool) {
	tessellate(w.tess, p, closed)
	p.shiftLon(w.opts.CentralMeridian)
}

// WrapPolyline appends the pieces of line to dst. A line that does not cross
// the dateline comes back as a single piece, and one lying entirely on the
// dateline plane yields nothing.
func (w *Wrapper) WrapPolyline(line *s2.Polyline, dst []LatLonPolyline) []LatLonPolyline {
	if line == nil || len(*line) == 0 {
		return dst
	}
	g := newBuilder(w.classifier, w.rotated(*line), false).build()
	if g == nil {
		return dst
	}
	n := len(dst)
	dst = g.emitPolylines(dst)
	for i := n; i < len(dst); i++ {
		w.finish(&dst[i].Path, false)
	}
	return dst
}

// WrapPolygon appends the rings of loop, cut along the dateline, to dst.
// Rings are counter-clockwise in longitude/latitude when the loop crosses
// the dateline. A loop that does not cross it is returned unchanged, and one
// lying entirely on the dateline plane yields nothing. Where a ring passes
// through a pole it is closed along the pole line, so an enclosed pole
// appears as the two consecutive points (90, 180), (90, -180).
func (w *Wrapper) WrapPolygon(loop *s2.Loop, dst []LatLonPolygon) []LatLonPolygon {
	switch {
	case loop == nil || loop.IsEmpty():
		return dst
	case loop.IsFull():
		ring := Path{}
		for _, ll := range [...]LatLon{{-90, -180}, {-90, 180}, {90, 180}, {90, -180}} {
			ring.add(ll, -1)
		}
		ring.shiftLon(w.opts.CentralMeridian)
		return append(dst, LatLonPolygon{Path: ring})
	}
	g := newBuilder(w.classifier, w.rotated(loop.Vertices()), true).build()
	if g == nil {
		return dst
	}
	n := len(dst)
	dst = g.emitPolygons(dst)
	for i := n; i < len(dst); i++ {
		w.finish(&dst[i].Path, true)
	}
	if glog.V(2) {
		glog.Infof("dateline: polygon of %d vertices wrapped into %d rings", loop.NumVertices(), len(dst)-n)
	}
	return dst
}

// WrapPoint returns p in longitude/latitude relative to the central
// meridian. A point on the dateline gets the eastern longitude.
func (w *Wrapper) WrapPoint(p s2.Point) LatLon {
	if w.opts.CentralMeridian != 0 {
		p = s2.Point{Vector: w.rotate.MulVector(p.Vector)}
	}
	ll := s2.LatLngFromPoint(p)
	out := LatLon{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}
	switch w.classifier.Classify(p) {
	case OnDatelineArc:
		out.Lon = 180
	case OnNorthPole, OnSouthPole:
		out.Lat = math.Copysign(90, out.Lat)
	}
	out.Lon += w.opts.CentralMeridian
	return out
}

func (w *Wrapper) WrapMultiPoint(pts []s2.Point, dst []LatLon) []LatLon {
	for _, p := range pts {
		dst = append(dst, w.WrapPoint(p))
	}
	return dst
}
