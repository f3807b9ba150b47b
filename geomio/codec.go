package geomio

import (
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// Format names a geometry encoding.
type Format string

const (
	WKT     Format = "wkt"
	WKB     Format = "wkb"
	GeoJSON Format = "geojson"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case WKT, WKB, GeoJSON:
		return f, nil
	}
	return "", errors.Errorf("Unknown geometry format %q, want one of [wkt, wkb, geojson]", s)
}

// Decode parses one geometry. WKB is read in either byte order.
func Decode(f Format, data []byte) (geom.T, error) {
	switch f {
	case WKT:
		g, err := wkt.Unmarshal(string(data))
		return g, errors.Wrapf(err, "while decoding WKT")
	case WKB:
		g, err := wkb.Unmarshal(data)
		return g, errors.Wrapf(err, "while decoding WKB")
	case GeoJSON:
		var g geom.T
		if err := geojson.Unmarshal(data, &g); err != nil {
			return nil, errors.Wrapf(err, "while decoding GeoJSON")
		}
		return g, nil
	}
	return nil, errors.Errorf("Unknown geometry format %q", f)
}

// Encode writes g. WKB is little endian.
func Encode(f Format, g geom.T) ([]byte, error) {
	switch f {
	case WKT:
		s, err := wkt.Marshal(g)
		if err != nil {
			return nil, errors.Wrapf(err, "while encoding WKT")
		}
		return []byte(s), nil
	case WKB:
		data, err := wkb.Marshal(g, binary.LittleEndian)
		return data, errors.Wrapf(err, "while encoding WKB")
	case GeoJSON:
		data, err := geojson.Marshal(g)
		return data, errors.Wrapf(err, "while encoding GeoJSON")
	}
	return nil, errors.Errorf("Unknown geometry format %q", f)
}
