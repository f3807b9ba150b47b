// Package geomio connects the dateline wrapper to github.com/twpayne/go-geom
// geometries and their text and binary encodings.
package geomio

import (
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"

	"github.com/GPlates/GPlates-sub027/dateline"
)

func pointFromCoord(c geom.Coord) s2.Point {
	// GeoJSON, WKT and WKB coordinates are [long, lat].
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Y(), c.X()))
}

func coordFromLatLon(ll dateline.LatLon) geom.Coord {
	return geom.Coord{ll.Lon, ll.Lat}
}

// PolylineFromLineString converts ls, which needs at least two points.
func PolylineFromLineString(ls *geom.LineString) (*s2.Polyline, error) {
	n := ls.NumCoords()
	if n < 2 {
		return nil, errors.Errorf("Can't convert line string with %d pts", n)
	}
	line := make(s2.Polyline, n)
	for i := 0; i < n; i++ {
		line[i] = pointFromCoord(ls.Coord(i))
	}
	return &line, nil
}

// LoopFromPolygon converts the outer ring of p. Holes are skipped. The
// closing coordinate is dropped and the loop is oriented to enclose at most
// half the sphere, since rings in GeoJSON and WKB have no reliable
// orientation.
func LoopFromPolygon(p *geom.Polygon) (*s2.Loop, error) {
	if p.NumLinearRings() == 0 {
		return nil, errors.Errorf("Can't convert polygon without rings")
	}
	r := p.LinearRing(0)
	n := r.NumCoords()
	if n < 4 {
		return nil, errors.Errorf("Can't convert ring with less than 4 pts")
	}
	if r.Coord(0).Equal(geom.XY, r.Coord(n-1)) {
		n--
	}
	pts := make([]s2.Point, n)
	for i := 0; i < n; i++ {
		pts[i] = pointFromCoord(r.Coord(i))
	}
	l := s2.LoopFromPoints(pts)
	l.Normalize()
	return l, nil
}
