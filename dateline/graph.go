package dateline

// role is what a vertex is to the traversal. The set is closed:
// ordinaryRole, splitRole and crossingRole.
type role interface {
	isRole()
}

type ordinaryRole struct{}

// splitRole ends (exit) or starts (entry) a piece of a polyline. It never has
// a partner.
type splitRole struct {
	exit bool
}

// crossingRole is a polygon intersection vertex. partner is the vertex at the
// same position on the other list. exitsOther is true when moving forward
// along this vertex's list leaves the region bounded by the other list.
type crossingRole struct {
	partner    int32
	exitsOther bool
}

func (ordinaryRole) isRole() {}
func (splitRole) isRole()    {}
func (crossingRole) isRole() {}

const nilIndex int32 = -1

type vertex struct {
	ll      LatLon
	source  int
	role    role
	visited bool

	prev, next int32

	// perimeter orders dateline ring vertices, see perimeterPosition.
	perimeter float64
}

type vertexList struct {
	head, tail int32
}

func newVertexList() vertexList {
	return vertexList{head: nilIndex, tail: nilIndex}
}

// graph is the per-call arena. Vertices refer to each other by index into
// vertices, which is allocated once with the capacity the builder expects.
type graph struct {
	vertices []vertex
	geometry vertexList
	dateline vertexList

	// Diagnostics only; the emitters do not read them.
	intersectedNorthPole bool
	intersectedSouthPole bool

	numCrossings int
}

func newGraph(capacity int) *graph {
	return &graph{
		vertices: make([]vertex, 0, capacity),
		geometry: newVertexList(),
		dateline: newVertexList(),
	}
}

func (g *graph) add(ll LatLon, source int, r role) int32 {
	g.vertices = append(g.vertices, vertex{
		ll:     ll,
		source: source,
		role:   r,
		prev:   nilIndex,
		next:   nilIndex,
	})
	return int32(len(g.vertices) - 1)
}

func (g *graph) appendTo(l *vertexList, i int32) {
	if l.head == nilIndex {
		l.head, l.tail = i, i
		return
	}
	g.vertices[l.tail].next = i
	g.vertices[i].prev = l.tail
	l.tail = i
}

func (g *graph) insertAfter(l *vertexList, after, i int32) {
	next := g.vertices[after].next
	g.vertices[i].prev = after
	g.vertices[i].next = next
	g.vertices[after].next = i
	if next == nilIndex {
		l.tail = i
	} else {
		g.vertices[next].prev = i
	}
}

// closeRing links the tail of l back to its head.
func (g *graph) closeRing(l *vertexList) {
	if l.head == nilIndex {
		return
	}
	g.vertices[l.tail].next = l.head
	g.vertices[l.head].prev = l.tail
}

func (g *graph) step(i int32, forward bool) int32 {
	if forward {
		return g.vertices[i].next
	}
	return g.vertices[i].prev
}

func (g *graph) crossing(i int32) (crossingRole, bool) {
	cr, ok := g.vertices[i].role.(crossingRole)
	return cr, ok
}

// link makes geometry vertex gi and dateline vertex di partners.
func (g *graph) link(gi, di int32) {
	cr, _ := g.crossing(gi)
	cr.partner = di
	g.vertices[gi].role = cr
	g.vertices[di].role = crossingRole{partner: gi, exitsOther: !cr.exitsOther}
}

// The dateline ring runs counter-clockwise in the lon/lat plane from the
// bottom right corner: up the +180 edge, along the north pole, down the -180
// edge and back along the south pole.
var datelineCorners = [...]LatLon{
	{Lat: -90, Lon: 180},
	{Lat: 90, Lon: 180},
	{Lat: 90, Lon: -180},
	{Lat: -90, Lon: -180},
}

// perimeterPosition is the distance in degrees along the dateline ring from
// its head (-90, 180) to ll, which must lie on the ring. The south pole line
// ends back at the head corner, so (-90, 180) itself is at 1080 and a vertex
// inserted there sorts to the end of the ring. The head is never compared.
func perimeterPosition(ll LatLon) float64 {
	switch {
	case ll.Lat >= 90:
		return 180 + (180 - ll.Lon)
	case ll.Lat <= -90:
		return 720 + (ll.Lon + 180)
	case ll.Lon > 0:
		return ll.Lat + 90
	}
	return 540 + (90 - ll.Lat)
}

func (g *graph) initDatelineRing() {
	for _, ll := range datelineCorners {
		i := g.add(ll, -1, ordinaryRole{})
		g.vertices[i].perimeter = perimeterPosition(ll)
		g.appendTo(&g.dateline, i)
	}
}

// insertDateline adds a vertex at ll to the (still open) dateline ring after
// every vertex at the same or an earlier perimeter position.
func (g *graph) insertDateline(ll LatLon) int32 {
	i := g.add(ll, -1, ordinaryRole{})
	pos := perimeterPosition(ll)
	g.vertices[i].perimeter = pos

	after := g.dateline.head
	for j := g.vertices[after].next; j != nilIndex && g.vertices[j].perimeter <= pos; j = g.vertices[j].next {
		after = j
	}
	g.insertAfter(&g.dateline, after, i)
	return i
}
