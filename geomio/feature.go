package geomio

import (
	pgeojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
)

// FromFeatureGeometry converts the geometry of a GeoJSON feature as read by
// github.com/paulmach/go.geojson.
func FromFeatureGeometry(g *pgeojson.Geometry) (geom.T, error) {
	if g == nil {
		return nil, errors.Errorf("Feature has no geometry")
	}
	data, err := g.MarshalJSON()
	if err != nil {
		return nil, errors.Wrapf(err, "while encoding %s geometry", g.Type)
	}
	return Decode(GeoJSON, data)
}

func ToFeatureGeometry(g geom.T) (*pgeojson.Geometry, error) {
	data, err := Encode(GeoJSON, g)
	if err != nil {
		return nil, err
	}
	fg, err := pgeojson.UnmarshalGeometry(data)
	return fg, errors.Wrapf(err, "while decoding %T as a feature geometry", g)
}
