package dateline

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// newTessellator projects onto plate carrée with x = longitude and
// y = latitude in degrees.
func newTessellator(tolerance s1.Angle) *s2.EdgeTessellator {
	return s2.NewEdgeTessellator(s2.NewPlateCarreeProjection(180), tolerance)
}

func pointFromLatLon(ll LatLon) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(ll.Lat, ll.Lon))
}

// skipTessellation reports edges that are straight in longitude/latitude
// already: along the dateline, or two copies of the same pole.
func skipTessellation(a, b LatLon) bool {
	if math.Abs(a.Lon) == 180 && math.Abs(b.Lon) == 180 {
		return true
	}
	return math.Abs(a.Lat) == 90 && a.Lat == b.Lat
}

// tessellate inserts points along each edge of p so that it follows the
// great circle. Inserted points have source -1.
func tessellate(t *s2.EdgeTessellator, p *Path, closed bool) {
	n := len(p.Points)
	if t == nil || n < 2 {
		return
	}
	out := Path{
		Points:        make([]LatLon, 0, 2*n),
		SourceIndices: make([]int, 0, 2*n),
	}
	for i := 0; i < n; i++ {
		a := p.Points[i]
		out.Points = append(out.Points, a)
		out.SourceIndices = append(out.SourceIndices, p.SourceIndices[i])
		j := i + 1
		if j == n {
			if !closed {
				break
			}
			j = 0
		}
		b := p.Points[j]
		if skipTessellation(a, b) {
			continue
		}
		proj := t.AppendProjected(pointFromLatLon(a), pointFromLatLon(b), nil)
		if len(proj) <= 2 {
			continue
		}
		// The tessellator keeps longitudes continuous from its own
		// projection of a, which may be a whole turn away from a.Lon.
		shift := 360 * math.Round((a.Lon-proj[0].X)/360)
		for _, q := range proj[1 : len(proj)-1] {
			out.Points = append(out.Points, LatLon{Lat: q.Y, Lon: q.X + shift})
			out.SourceIndices = append(out.SourceIndices, -1)
		}
	}
	*p = out
}
