package geomio

import (
	"encoding/binary"
	"testing"

	"github.com/golang/geo/s2"
	pgeojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/GPlates/GPlates-sub027/dateline"
)

func requireCoordsNear(t *testing.T, want, got []geom.Coord) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDelta(t, want[i].X(), got[i].X(), 1e-9, "coord %d: %v", i, got)
		require.InDelta(t, want[i].Y(), got[i].Y(), 1e-9, "coord %d: %v", i, got)
	}
}

func TestPolylineFromLineString(t *testing.T) {
	ls := geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{170, 0}, {-175, 10}})
	line, err := PolylineFromLineString(ls)
	require.NoError(t, err)
	require.Len(t, *line, 2)
	ll := s2.LatLngFromPoint((*line)[1])
	require.InDelta(t, 10, ll.Lat.Degrees(), 1e-12)
	require.InDelta(t, -175, ll.Lng.Degrees(), 1e-12)

	_, err = PolylineFromLineString(geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{1, 2}}))
	require.Error(t, err)
}

func TestLoopFromPolygon(t *testing.T) {
	ccw := [][]geom.Coord{{{170, -10}, {-170, -10}, {-170, 10}, {170, 10}, {170, -10}}}
	cw := [][]geom.Coord{{{170, -10}, {170, 10}, {-170, 10}, {-170, -10}, {170, -10}}}
	for _, coords := range [][][]geom.Coord{ccw, cw} {
		l, err := LoopFromPolygon(geom.NewPolygon(geom.XY).MustSetCoords(coords))
		require.NoError(t, err)
		require.Equal(t, 4, l.NumVertices())
		require.True(t, l.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(0, 180))))
		require.False(t, l.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(0, 0))))
	}

	_, err := LoopFromPolygon(geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{{1, 2}, {3, 4}, {1, 2}}}))
	require.Error(t, err)
	_, err = LoopFromPolygon(geom.NewPolygon(geom.XY))
	require.Error(t, err)
}

func TestWrapLineString(t *testing.T) {
	ls := geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{170, 0}, {-175, 0}})
	g, err := Wrap(dateline.New(), ls)
	require.NoError(t, err)
	mls, ok := g.(*geom.MultiLineString)
	require.True(t, ok, "got %T", g)
	require.Equal(t, 2, mls.NumLineStrings())
	requireCoordsNear(t, []geom.Coord{{170, 0}, {180, 0}}, mls.LineString(0).Coords())
	requireCoordsNear(t, []geom.Coord{{-180, 0}, {-175, 0}}, mls.LineString(1).Coords())
	require.Equal(t, 2, NumParts(g))
}

func TestWrapPolygon(t *testing.T) {
	p := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{
		{{170, -10}, {-170, -10}, {-170, 10}, {170, 10}, {170, -10}},
		{{175, -1}, {175, 1}, {-175, 1}, {175, -1}},
	})
	g, err := Wrap(dateline.New(), p)
	require.NoError(t, err)
	mp, ok := g.(*geom.MultiPolygon)
	require.True(t, ok, "got %T", g)
	require.Equal(t, 2, mp.NumPolygons())
	for i := 0; i < mp.NumPolygons(); i++ {
		ring := mp.Polygon(i).LinearRing(0)
		require.Equal(t, 5, ring.NumCoords())
		require.Equal(t, ring.Coord(0), ring.Coord(4), "ring %d is not closed", i)
		for _, c := range ring.Coords() {
			if i == 0 {
				require.LessOrEqual(t, c.X(), -170+1e-9)
			} else {
				require.GreaterOrEqual(t, c.X(), 170-1e-9)
			}
		}
	}
}

func TestWrapPoints(t *testing.T) {
	w := dateline.New(dateline.WithCentralMeridian(150))
	g, err := Wrap(w, geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{-40, 5}))
	require.NoError(t, err)
	requireCoordsNear(t, []geom.Coord{{320, 5}}, []geom.Coord{g.(*geom.Point).Coords()})

	mp := geom.NewMultiPoint(geom.XY).MustSetCoords([]geom.Coord{{10, 1}, {-40, 2}})
	g, err = Wrap(w, mp)
	require.NoError(t, err)
	requireCoordsNear(t, []geom.Coord{{10, 1}, {320, 2}}, g.(*geom.MultiPoint).Coords())
}

func TestWrapCollection(t *testing.T) {
	gc := geom.NewGeometryCollection()
	require.NoError(t, gc.Push(
		geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{1, 2}),
		geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{170, 0}, {-175, 0}}),
	))
	g, err := Wrap(dateline.New(), gc)
	require.NoError(t, err)
	require.Equal(t, 3, NumParts(g))
}

func TestWrapErrors(t *testing.T) {
	_, err := Wrap(dateline.New(), geom.NewLinearRing(geom.XY))
	require.Error(t, err)
	_, err = Wrap(dateline.New(), geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{1, 2}}))
	require.Error(t, err)
}

func TestCodecs(t *testing.T) {
	ls := geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{170, 0}, {-175, 0}})
	for _, f := range []Format{WKT, WKB, GeoJSON} {
		data, err := Encode(f, ls)
		require.NoError(t, err, f)
		g, err := Decode(f, data)
		require.NoError(t, err, f)
		require.Equal(t, ls.Coords(), g.(*geom.LineString).Coords(), f)
	}

	g, err := Decode(WKT, []byte("POINT (1 2)"))
	require.NoError(t, err)
	require.Equal(t, geom.Coord{1, 2}, g.(*geom.Point).Coords())

	data, err := wkb.Marshal(ls, binary.BigEndian)
	require.NoError(t, err)
	g, err = Decode(WKB, data)
	require.NoError(t, err)
	require.Equal(t, ls.Coords(), g.(*geom.LineString).Coords())

	_, err = Decode(WKT, []byte("LINESTRING (1"))
	require.Error(t, err)
	_, err = Decode(Format("kml"), nil)
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" GeoJSON ")
	require.NoError(t, err)
	require.Equal(t, GeoJSON, f)
	_, err = ParseFormat("shp")
	require.Error(t, err)
}

func TestFeatureGeometry(t *testing.T) {
	fg := pgeojson.NewLineStringGeometry([][]float64{{170, 0}, {-175, 0}})
	g, err := FromFeatureGeometry(fg)
	require.NoError(t, err)
	wrapped, err := Wrap(dateline.New(), g)
	require.NoError(t, err)
	out, err := ToFeatureGeometry(wrapped)
	require.NoError(t, err)
	require.True(t, out.IsMultiLineString())
	require.Len(t, out.MultiLineString, 2)
	require.InDelta(t, 180, out.MultiLineString[0][1][0], 1e-9)
	require.InDelta(t, -180, out.MultiLineString[1][0][0], 1e-9)

	_, err = FromFeatureGeometry(nil)
	require.Error(t, err)
}
