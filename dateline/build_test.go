package dateline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckEvenCrossings(t *testing.T) {
	// Front, then a vertex on the dateline, then Back: the ring crosses at
	// the vertex and again on the closing Back-Front edge.
	nodes := []node{
		{class: Front, source: 0},
		{class: OnDatelineArc, source: 1},
		{class: Back, source: 2},
	}
	b := &builder{closed: true, nodes: nodes, straddles: 1}
	require.NotPanics(t, func() { b.checkEvenCrossings(0) })

	// The closing edge was not counted.
	b = &builder{closed: true, nodes: nodes}
	require.Panics(t, func() { b.checkEvenCrossings(0) })

	// A touch without a side change is not a crossing.
	b = &builder{closed: true, nodes: []node{
		{class: Front, source: 0},
		{class: OnDatelineArc, source: 1},
		{class: Front, source: 2},
		{class: Back, source: 3},
	}, straddles: 2}
	require.NotPanics(t, func() { b.checkEvenCrossings(0) })
}

func TestCheckEvenCrossingsPoleAndMeridian(t *testing.T) {
	c := NewClassifier(DefaultOptions())

	// 80:10 to 80:-170 goes over the north pole, -100 to 10 crosses the 0
	// degree meridian.
	b := newBuilder(c, parsePoints("80:10, 80:-170, 80:-100"), true)
	b.addNodes()
	require.Equal(t, 2, b.straddles)
	require.Equal(t, OnNorthPole, b.nodes[1].class)
	require.Len(t, b.nodes, 4)
	require.NotPanics(t, func() { b.checkEvenCrossings(0) })

	// Vertices on the plane at 0 and 180 degrees.
	b = newBuilder(c, parsePoints(arctic_85), true)
	b.addNodes()
	require.Zero(t, b.straddles)
	require.NotPanics(t, func() { b.checkEvenCrossings(1) })
}

func geometryCrossings(g *graph) []int32 {
	var out []int32
	i := g.geometry.head
	for {
		if _, ok := g.crossing(i); ok {
			out = append(out, i)
		}
		if i = g.vertices[i].next; i == g.geometry.head {
			return out
		}
	}
}

func TestPropagateRepairsFlippedCrossing(t *testing.T) {
	b := newBuilder(NewClassifier(DefaultOptions()), parsePoints(dateline_square), true)
	g := b.build()
	require.NotNil(t, g)
	require.Equal(t, 2, g.numCrossings)
	require.Zero(t, b.propagate(g))

	crossings := geometryCrossings(g)
	require.Len(t, crossings, 4)
	flipped := crossings[0]
	cr, _ := g.crossing(flipped)
	cr.exitsOther = !cr.exitsOther
	g.vertices[flipped].role = cr

	require.Positive(t, b.propagate(g))
	for _, i := range crossings {
		gc, _ := g.crossing(i)
		dc, ok := g.crossing(gc.partner)
		require.True(t, ok)
		require.NotEqual(t, gc.exitsOther, dc.exitsOther, "crossing at %v", g.vertices[i].ll)
	}
	got, _ := g.crossing(flipped)
	require.Equal(t, cr.exitsOther, got.exitsOther)
}

func TestTraverseOutOfBudget(t *testing.T) {
	b := newBuilder(NewClassifier(DefaultOptions()), parsePoints(dateline_square), true)
	g := b.build()
	require.NotNil(t, g)

	entry := nilIndex
	for _, i := range geometryCrossings(g) {
		if cr, _ := g.crossing(i); !cr.exitsOther {
			entry = i
			break
		}
	}
	require.NotEqual(t, nilIndex, entry)

	var ring Path
	budget := 1
	require.Equal(t, outOfBudget, g.traverse(entry, &ring, &budget))

	budget = 2 * len(g.vertices)
	ring = Path{}
	g.vertices[entry].visited = false
	require.Equal(t, ringClosed, g.traverse(entry, &ring, &budget))
	ring.closeRing()
	require.Equal(t, []int{-1, 1, 2, -1}, ring.SourceIndices)
}
