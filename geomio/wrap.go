package geomio

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"

	"github.com/GPlates/GPlates-sub027/dateline"
)

// Wrap cuts g along the dateline of w. Points keep their type; lines come
// back as a MultiLineString and polygons as a MultiPolygon, so one geometry
// stays one geometry whatever the number of pieces. Collections are wrapped
// member by member.
func Wrap(w *dateline.Wrapper, g geom.T) (geom.T, error) {
	switch v := g.(type) {
	case *geom.Point:
		ll := w.WrapPoint(pointFromCoord(v.Coords()))
		return geom.NewPoint(geom.XY).MustSetCoords(coordFromLatLon(ll)), nil
	case *geom.MultiPoint:
		mp := geom.NewMultiPoint(geom.XY)
		for i := 0; i < v.NumPoints(); i++ {
			ll := w.WrapPoint(pointFromCoord(v.Point(i).Coords()))
			if err := mp.Push(geom.NewPoint(geom.XY).MustSetCoords(coordFromLatLon(ll))); err != nil {
				return nil, errors.Wrapf(err, "while adding point %d", i)
			}
		}
		return mp, nil
	case *geom.LineString:
		return wrapLineStrings(w, v)
	case *geom.MultiLineString:
		lss := make([]*geom.LineString, v.NumLineStrings())
		for i := range lss {
			lss[i] = v.LineString(i)
		}
		return wrapLineStrings(w, lss...)
	case *geom.Polygon:
		return wrapPolygons(w, v)
	case *geom.MultiPolygon:
		ps := make([]*geom.Polygon, v.NumPolygons())
		for i := range ps {
			ps[i] = v.Polygon(i)
		}
		return wrapPolygons(w, ps...)
	case *geom.GeometryCollection:
		gc := geom.NewGeometryCollection()
		for i, member := range v.Geoms() {
			wrapped, err := Wrap(w, member)
			if err != nil {
				return nil, errors.Wrapf(err, "while wrapping collection member %d", i)
			}
			if err := gc.Push(wrapped); err != nil {
				return nil, errors.Wrapf(err, "while adding collection member %d", i)
			}
		}
		return gc, nil
	default:
		return nil, errors.Errorf("Cannot wrap geometry of type %T", v)
	}
}

func wrapLineStrings(w *dateline.Wrapper, lss ...*geom.LineString) (*geom.MultiLineString, error) {
	var pieces []dateline.LatLonPolyline
	for i, ls := range lss {
		line, err := PolylineFromLineString(ls)
		if err != nil {
			return nil, errors.Wrapf(err, "line string %d", i)
		}
		pieces = w.WrapPolyline(line, pieces)
	}
	mls := geom.NewMultiLineString(geom.XY)
	for _, piece := range pieces {
		if piece.NumPoints() < 2 {
			glog.V(2).Infof("Dropping wrapped line piece of %d points", piece.NumPoints())
			continue
		}
		coords := make([]geom.Coord, len(piece.Points))
		for i, ll := range piece.Points {
			coords[i] = coordFromLatLon(ll)
		}
		if err := mls.Push(geom.NewLineString(geom.XY).MustSetCoords(coords)); err != nil {
			return nil, errors.Wrapf(err, "while adding line piece")
		}
	}
	return mls, nil
}

func wrapPolygons(w *dateline.Wrapper, ps ...*geom.Polygon) (*geom.MultiPolygon, error) {
	var rings []dateline.LatLonPolygon
	for i, p := range ps {
		if p.NumLinearRings() > 1 {
			glog.V(2).Infof("Skipping %d holes of polygon %d", p.NumLinearRings()-1, i)
		}
		loop, err := LoopFromPolygon(p)
		if err != nil {
			return nil, errors.Wrapf(err, "polygon %d", i)
		}
		rings = w.WrapPolygon(loop, rings)
	}
	mp := geom.NewMultiPolygon(geom.XY)
	for _, ring := range rings {
		if ring.NumPoints() < 3 {
			glog.V(2).Infof("Dropping wrapped ring of %d points", ring.NumPoints())
			continue
		}
		coords := make([]geom.Coord, 0, len(ring.Points)+1)
		for _, ll := range ring.Points {
			coords = append(coords, coordFromLatLon(ll))
		}
		coords = append(coords, coords[0])
		if err := mp.Push(geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{coords})); err != nil {
			return nil, errors.Wrapf(err, "while adding ring")
		}
	}
	return mp, nil
}

// NumParts is the number of points, lines or rings in g.
func NumParts(g geom.T) int {
	switch v := g.(type) {
	case *geom.Point:
		return 1
	case *geom.MultiPoint:
		return v.NumPoints()
	case *geom.LineString:
		return 1
	case *geom.MultiLineString:
		return v.NumLineStrings()
	case *geom.Polygon:
		return 1
	case *geom.MultiPolygon:
		return v.NumPolygons()
	case *geom.GeometryCollection:
		n := 0
		for _, member := range v.Geoms() {
			n += NumParts(member)
		}
		return n
	}
	return 0
}
