package dateline

import (
	"github.com/golang/glog"
)

// emitPolylines walks the geometry chain once, cutting it at split vertices.
// A piece made only of inserted split points is dropped.
func (g *graph) emitPolylines(dst []LatLonPolyline) []LatLonPolyline {
	var cur Path
	keep := false
	flush := func() {
		if keep && len(cur.Points) > 0 {
			dst = append(dst, LatLonPolyline{Path: cur})
		}
		cur, keep = Path{}, false
	}
	for i := g.geometry.head; i != nilIndex; i = g.vertices[i].next {
		v := &g.vertices[i]
		sr, split := v.role.(splitRole)
		if split && !sr.exit {
			flush()
		}
		cur.add(v.ll, v.source)
		if !split || v.source >= 0 {
			keep = true
		}
		if split && sr.exit {
			flush()
		}
	}
	flush()
	return dst
}

// emitPolygons produces the rings of the polygon cut along the dateline. Each
// ring starts at a geometry entry vertex, follows the geometry to the next
// exit, then the dateline ring to the next entry, and so on until it is back
// at the start.
func (g *graph) emitPolygons(dst []LatLonPolygon) []LatLonPolygon {
	if g.numCrossings == 0 {
		var ring Path
		i := g.geometry.head
		for {
			ring.add(g.vertices[i].ll, g.vertices[i].source)
			if i = g.vertices[i].next; i == g.geometry.head {
				break
			}
		}
		ring.closeRing()
		return append(dst, LatLonPolygon{Path: ring})
	}

	// Every vertex is added to at most one ring.
	budget := 2 * len(g.vertices)
	i := g.geometry.head
	for {
		if cr, ok := g.crossing(i); ok && !cr.exitsOther && !g.vertices[i].visited {
			var ring Path
			switch g.traverse(i, &ring, &budget) {
			case outOfBudget:
				glog.Warningf("dateline: traversal of %d vertices did not close, %d rings emitted", len(g.vertices), len(dst))
				return dst
			case ringClosed:
				ring.closeRing()
				dst = append(dst, LatLonPolygon{Path: ring})
			}
		}
		if i = g.vertices[i].next; i == g.geometry.head {
			break
		}
	}
	return dst
}

type traversal int8

const (
	ringClosed traversal = iota
	// ringAbandoned is a ring that ran into a crossing already used by
	// another ring. It happens only when the polygon touches itself on the
	// dateline, and the ring is dropped.
	ringAbandoned
	// outOfBudget means the entry/exit flags are inconsistent.
	outOfBudget
)

// traverse builds the ring starting at geometry entry vertex start.
func (g *graph) traverse(start int32, ring *Path, budget *int) traversal {
	cur := start
	g.vertices[cur].visited = true
	ring.add(g.vertices[cur].ll, g.vertices[cur].source)
	for {
		cr, _ := g.crossing(cur)
		forward := !cr.exitsOther
		for {
			if *budget--; *budget < 0 {
				return outOfBudget
			}
			cur = g.step(cur, forward)
			v := &g.vertices[cur]
			ring.add(v.ll, v.source)
			if _, ok := v.role.(crossingRole); ok {
				break
			}
			v.visited = true
		}
		g.vertices[cur].visited = true
		cr, _ = g.crossing(cur)
		next := cr.partner
		if next == start {
			return ringClosed
		}
		if g.vertices[next].visited {
			glog.Warningf("dateline: ring from %v reached visited vertex %v, dropped", g.vertices[start].ll, g.vertices[next].ll)
			return ringAbandoned
		}
		g.vertices[next].visited = true
		cur = next
	}
}
