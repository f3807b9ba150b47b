package dateline

import (
	"fmt"
	"strings"
)

// LatLon is a latitude/longitude pair in degrees.
type LatLon struct {
	Lat, Lon float64
}

func (ll LatLon) String() string {
	return fmt.Sprintf("%v:%v", ll.Lat, ll.Lon)
}

// Path is a sequence of output points. SourceIndices[i] is the index of the
// input vertex Points[i] was copied from, or -1 for a point the wrapper
// inserted.
type Path struct {
	Points        []LatLon
	SourceIndices []int
}

// LatLonPolyline is one piece of a wrapped polyline.
type LatLonPolyline struct {
	Path
}

// LatLonPolygon is one ring of a wrapped polygon. The first point is not
// repeated at the end.
type LatLonPolygon struct {
	Path
}

func (p *Path) NumPoints() int { return len(p.Points) }

func (p *Path) String() string {
	s := make([]string, len(p.Points))
	for i, ll := range p.Points {
		s[i] = ll.String()
	}
	return strings.Join(s, ", ")
}

// add appends ll unless it repeats the last point, in which case the copy
// carrying a source index is kept.
func (p *Path) add(ll LatLon, source int) {
	if n := len(p.Points); n > 0 && p.Points[n-1] == ll {
		if p.SourceIndices[n-1] < 0 {
			p.SourceIndices[n-1] = source
		}
		return
	}
	p.Points = append(p.Points, ll)
	p.SourceIndices = append(p.SourceIndices, source)
}

// closeRing drops a last point that repeats the first.
func (p *Path) closeRing() {
	n := len(p.Points)
	if n < 2 || p.Points[0] != p.Points[n-1] {
		return
	}
	if p.SourceIndices[0] < 0 {
		p.SourceIndices[0] = p.SourceIndices[n-1]
	}
	p.Points = p.Points[:n-1]
	p.SourceIndices = p.SourceIndices[:n-1]
}

func (p *Path) shiftLon(degrees float64) {
	if degrees == 0 {
		return
	}
	for i := range p.Points {
		p.Points[i].Lon += degrees
	}
}
