package dateline

import (
	"github.com/golang/geo/s2"
	"github.com/golang/glog"

	"github.com/GPlates/GPlates-sub027/x"
)

// node is a vertex of the input, or an intersection found on one of its
// edges, in ring or chain order.
type node struct {
	p      s2.Point
	class  VertexClass
	source int
}

type resolvedKind int8

const (
	// plain is one output vertex at (lat, lon).
	plain resolvedKind = iota
	// doubled is (lat, lon) then an inserted (lat, lon2). Used for a pole.
	doubled
	// event is a crossing: the geometry leaves at (lat, lon) and comes back
	// at (lat, lon2).
	event
)

type resolved struct {
	kind     resolvedKind
	lat, lon float64
	lon2     float64
}

// builder turns a ring or chain of points, already rotated so that the
// dateline is the ±180 meridian, into a graph.
type builder struct {
	c      Classifier
	closed bool
	points []s2.Point

	nodes []node
	res   []resolved

	// straddles counts edges whose ends lie on opposite sides of the plane.
	straddles int
}

func newBuilder(c Classifier, points []s2.Point, closed bool) *builder {
	return &builder{
		c:      c,
		closed: closed,
		points: points,
		nodes:  make([]node, 0, len(points)+len(points)/2+1),
	}
}

// build returns nil when no point lies off the dateline plane, in which case
// there is nothing to draw.
func (b *builder) build() *graph {
	b.addNodes()
	start := -1
	for i, n := range b.nodes {
		if n.class.side() != 0 {
			start = i
			break
		}
	}
	if start < 0 {
		glog.V(2).Infof("dateline: all %d vertices lie on the dateline plane", len(b.points))
		return nil
	}
	if b.closed {
		b.checkEvenCrossings(start)
	}
	b.resolve(start)
	g := b.fill()
	if b.closed && g.numCrossings > 0 {
		b.propagate(g)
	}
	glog.V(2).Infof("dateline: %d input vertices, %d graph vertices, %d crossings, north pole %v, south pole %v",
		len(b.points), len(g.vertices), g.numCrossings, g.intersectedNorthPole, g.intersectedSouthPole)
	return g
}

func (b *builder) addNodes() {
	n := len(b.points)
	classes := make([]VertexClass, n)
	for i, p := range b.points {
		classes[i] = b.c.Classify(p)
	}
	for i, p := range b.points {
		b.nodes = append(b.nodes, node{p: p, class: classes[i], source: i})
		j := i + 1
		if j == n {
			if !b.closed || n < 2 {
				break
			}
			j = 0
		}
		b.addEdge(p, b.points[j], classes[i], classes[j])
	}
}

func (b *builder) addEdge(p, q s2.Point, cp, cq VertexClass) {
	switch {
	case cp.side()*cq.side() == -1:
		b.straddles++
		t, v, ok := b.c.Intersect(p, q)
		if !ok {
			// Crosses the 0 degree meridian.
			return
		}
		b.nodes = append(b.nodes, node{p: v, class: t.class(), source: -1})
	case cp == OnDatelineArc && cq == OffDatelineArcOnPlane,
		cp == OffDatelineArcOnPlane && cq == OnDatelineArc:
		c := poleBetween(p, q)
		v := northPole
		if c == OnSouthPole {
			v = southPole
		}
		b.nodes = append(b.nodes, node{p: v, class: c, source: -1})
	}
}

// checkEvenCrossings asserts that a ring crosses the dateline plane an even
// number of times. A crossing is either an edge straddling the plane, whether
// it meets the dateline, a pole or the 0 degree meridian, or a run of input
// vertices on the plane with the ring on different sides before and after.
func (b *builder) checkEvenCrossings(start int) {
	n := len(b.nodes)
	crossings := b.straddles
	last, touched := b.nodes[start].class.side(), false
	for k := 1; k <= n; k++ {
		nd := b.nodes[(start+k)%n]
		s := nd.class.side()
		if s == 0 {
			touched = touched || nd.source >= 0
			continue
		}
		if touched && s != last {
			crossings++
		}
		last, touched = s, false
	}
	x.AssertTruef(crossings%2 == 0, "ring of %d vertices crosses the dateline plane %d times", len(b.points), crossings)
}

// resolve gives every node its output position. A run is a maximal sequence
// of dateline and pole nodes; it takes its longitude from the side-definite
// nodes around it.
func (b *builder) resolve(start int) {
	n := len(b.nodes)
	b.res = make([]resolved, n)
	for i, nd := range b.nodes {
		if nd.class.onBoundary() {
			continue
		}
		ll := s2.LatLngFromPoint(nd.p)
		b.res[i] = resolved{lat: ll.Lat.Degrees(), lon: ll.Lng.Degrees()}
	}

	var run []int
	if b.closed {
		prev := start
		for k := 1; k <= n; k++ {
			i := (start + k) % n
			if b.nodes[i].class.onBoundary() {
				run = append(run, i)
				continue
			}
			if len(run) > 0 {
				b.resolveRun(run, prev, i)
				run = run[:0]
			}
			prev = i
		}
		return
	}

	prev := -1
	for i := 0; i < n; i++ {
		if b.nodes[i].class.onBoundary() {
			run = append(run, i)
			continue
		}
		if len(run) > 0 {
			b.resolveRun(run, prev, i)
			run = run[:0]
		}
		prev = i
	}
	if len(run) > 0 {
		b.resolveRun(run, prev, -1)
	}
}

func (b *builder) sideOf(i int) int {
	if i < 0 {
		return 0
	}
	return b.nodes[i].class.side()
}

// resolveRun places the nodes of run, entered from node p and left to node
// q (-1 at the ends of a chain).
//
// Without a pole, the run stays on the side it was entered from; if it is
// left on the other side its last node becomes a crossing. Dateline nodes
// after a pole are on the leaving side. A pole takes the longitude of its
// neighbours; for polygons the last pole of a run becomes a crossing when the
// longitudes before and after it differ.
func (b *builder) resolveRun(run []int, p, q int) {
	sIn, sOut := b.sideOf(p), b.sideOf(q)
	if sIn == 0 {
		sIn = sOut
	}
	if sOut == 0 {
		sOut = sIn
	}
	if sIn == 0 {
		sIn, sOut = 1, 1
	}

	firstPole, lastPole := -1, -1
	for k, i := range run {
		if b.nodes[i].class.onPole() {
			if firstPole < 0 {
				firstPole = k
			}
			lastPole = k
		}
	}

	for k, i := range run {
		nd := b.nodes[i]
		if nd.class.onPole() {
			continue
		}
		s := sIn
		if firstPole >= 0 && k > firstPole {
			s = sOut
		}
		b.res[i] = resolved{lat: s2.LatLngFromPoint(nd.p).Lat.Degrees(), lon: float64(180 * s)}
	}

	if firstPole < 0 {
		if sIn != sOut {
			last := run[len(run)-1]
			b.res[last].kind = event
			b.res[last].lon2 = float64(180 * sOut)
		}
		return
	}

	for k, i := range run {
		c := b.nodes[i].class
		if !c.onPole() {
			continue
		}
		lonIn := b.lonBefore(run, k, p, q)
		lonOut := b.lonAfter(run, k, p, q)
		r := resolved{lat: poleLat(c), lon: lonIn}
		switch {
		case k+1 < len(run) && b.nodes[run[k+1]].class == c:
			// More copies of the same pole follow; the last one leaves.
		case k > 0 && b.nodes[run[k-1]].class == c:
			r.lon = lonOut
			if b.closed && k == lastPole && lonIn != lonOut {
				r = resolved{kind: event, lat: r.lat, lon: lonIn, lon2: lonOut}
			}
		case lonIn == lonOut:
		case b.closed && k == lastPole:
			r.kind, r.lon2 = event, lonOut
		default:
			r.kind, r.lon2 = doubled, lonOut
		}
		b.res[i] = r
	}
}

func (b *builder) lonBefore(run []int, k, p, q int) float64 {
	if lon, ok := b.scanLon(run, k, -1, p); ok {
		return lon
	}
	lon, _ := b.scanLon(run, k, 1, q)
	return lon
}

func (b *builder) lonAfter(run []int, k, p, q int) float64 {
	if lon, ok := b.scanLon(run, k, 1, q); ok {
		return lon
	}
	lon, _ := b.scanLon(run, k, -1, p)
	return lon
}

// scanLon returns the longitude of the nearest non-pole node from run[k] in
// direction dir, falling back to end when the run has none.
func (b *builder) scanLon(run []int, k, dir, end int) (float64, bool) {
	for j := k + dir; j >= 0 && j < len(run); j += dir {
		if !b.nodes[run[j]].class.onPole() {
			return b.res[run[j]].lon, true
		}
	}
	if end < 0 {
		return 0, false
	}
	return b.res[end].lon, true
}

// fill creates the graph from the resolved nodes.
func (b *builder) fill() *graph {
	events, extra := 0, 0
	for _, r := range b.res {
		switch r.kind {
		case event:
			events++
		case doubled:
			extra++
		}
	}
	capacity := len(b.nodes) + extra + 2*events
	if b.closed && events > 0 {
		capacity += len(datelineCorners) + 2*events
	}
	g := newGraph(capacity)
	g.numCrossings = events
	if b.closed && events > 0 {
		g.initDatelineRing()
	}

	for i, nd := range b.nodes {
		switch nd.class {
		case OnNorthPole:
			g.intersectedNorthPole = true
		case OnSouthPole:
			g.intersectedSouthPole = true
		}
		r := b.res[i]
		at := LatLon{Lat: r.lat, Lon: r.lon}
		switch r.kind {
		case plain:
			g.appendTo(&g.geometry, g.add(at, nd.source, ordinaryRole{}))
		case doubled:
			g.appendTo(&g.geometry, g.add(at, nd.source, ordinaryRole{}))
			g.appendTo(&g.geometry, g.add(LatLon{Lat: r.lat, Lon: r.lon2}, -1, ordinaryRole{}))
		case event:
			back := LatLon{Lat: r.lat, Lon: r.lon2}
			if !b.closed {
				g.appendTo(&g.geometry, g.add(at, nd.source, splitRole{exit: true}))
				g.appendTo(&g.geometry, g.add(back, -1, splitRole{exit: false}))
				continue
			}
			exit := g.add(at, nd.source, crossingRole{partner: nilIndex, exitsOther: true})
			g.appendTo(&g.geometry, exit)
			g.link(exit, g.insertDateline(at))
			entry := g.add(back, -1, crossingRole{partner: nilIndex, exitsOther: false})
			g.appendTo(&g.geometry, entry)
			g.link(entry, g.insertDateline(back))
		}
	}
	if b.closed {
		g.closeRing(&g.geometry)
		g.closeRing(&g.dateline)
	}
	return g
}

// propagate stamps entry/exit flags on the dateline ring. Whether the ring
// starts inside the polygon comes from a point-in-loop test on the first
// stretch of the +180 edge; each crossing toggles it. A flag that disagrees
// with its geometry partner is a numerical near-miss and is overridden by the
// partner. It returns the number of flags overridden.
func (b *builder) propagate(g *graph) int {
	head := g.dateline.head
	lat := 0.0
	if first := g.vertices[head].next; g.vertices[first].perimeter < 180 {
		lat = (-90 + g.vertices[first].ll.Lat) / 2
	}
	loop := s2.LoopFromPoints(b.points)
	inside := loop.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(lat, 180)))

	mismatches := 0
	for i := g.vertices[head].next; i != head; i = g.vertices[i].next {
		cr, ok := g.crossing(i)
		if !ok {
			continue
		}
		inside = !inside
		cr.exitsOther = !inside
		partner, _ := g.crossing(cr.partner)
		if cr.exitsOther == partner.exitsOther {
			mismatches++
			cr.exitsOther = !partner.exitsOther
			inside = !cr.exitsOther
		}
		g.vertices[i].role = cr
	}
	if mismatches > 0 {
		glog.Warningf("dateline: %d of %d dateline crossings disagreed with the polygon and were repaired",
			mismatches, 2*g.numCrossings)
	}
	return mismatches
}
