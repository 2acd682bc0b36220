package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ring(pts ...int) []Vertex {
	out := make([]Vertex, 0, len(pts)/2)
	for i := 0; i+1 < len(pts); i += 2 {
		out = append(out, Vertex{pts[i], pts[i+1]})
	}
	return out
}

func inside(t *testing.T, verts []Vertex, x, y int) bool {
	t.Helper()
	return PointInContour(Vertex{x, y}, verts, BoundsOf(verts))
}

func TestBoundsOf(t *testing.T) {
	r := BoundsOf(ring(3, 7, -2, 4, 9, 1))
	assert.Equal(t, Rect{-2, 1, 9, 7}, r)
	assert.Equal(t, 12, r.Dx())
	assert.Equal(t, 7, r.Dy())
	assert.Equal(t, Vertex{3, 4}, r.Center())
	assert.Equal(t, Rect{}, BoundsOf(nil))
}

func TestRectClampAndUnion(t *testing.T) {
	r := Rect{-3, -1, 12, 40}.Clamp(10, 20)
	assert.Equal(t, Rect{0, 0, 9, 19}, r)
	u := Rect{0, 0, 2, 2}.Union(Rect{5, -1, 6, 1})
	assert.Equal(t, Rect{0, -1, 6, 2}, u)
}

func TestSquare(t *testing.T) {
	sq := ring(0, 0, 10, 0, 10, 10, 0, 10)
	assert.True(t, inside(t, sq, 5, 5))
	assert.True(t, inside(t, sq, 1, 9))
	assert.False(t, inside(t, sq, 15, 5))
	assert.False(t, inside(t, sq, -1, 5))
	assert.Equal(t, 4, Winding(Vertex{5, 5}, sq))
}

func TestReversedSquareStillInside(t *testing.T) {
	sq := ring(0, 10, 10, 10, 10, 0, 0, 0)
	assert.True(t, inside(t, sq, 5, 5))
	assert.Equal(t, -4, Winding(Vertex{5, 5}, sq))
}

func TestConcave(t *testing.T) {
	l := ring(0, 0, 10, 0, 10, 4, 4, 4, 4, 10, 0, 10)
	assert.True(t, inside(t, l, 2, 7))
	assert.True(t, inside(t, l, 8, 2))
	// inside the bounding rect but in the notch
	assert.False(t, inside(t, l, 7, 7))
}

func TestDiagonalCrossing(t *testing.T) {
	tri := ring(0, 0, 10, 10, 0, 10)
	assert.True(t, inside(t, tri, 3, 7))
	assert.False(t, inside(t, tri, 7, 3))
	assert.Equal(t, 0, Winding(Vertex{7, 3}, tri))
}

func TestSelfTouching(t *testing.T) {
	bow := ring(0, 0, 4, 0, 4, 4, 8, 4, 8, 8, 4, 8, 4, 4, 0, 4)
	assert.True(t, inside(t, bow, 2, 2))
	assert.True(t, inside(t, bow, 6, 6))
	assert.False(t, inside(t, bow, 6, 2))
	assert.False(t, inside(t, bow, 2, 6))
}

func TestDegenerate(t *testing.T) {
	line := ring(0, 0, 10, 10)
	assert.False(t, inside(t, line, 5, 5))
	assert.False(t, PointInContour(Vertex{0, 0}, nil, Rect{}))
}

func TestViewMapping(t *testing.T) {
	v := View{Zoom: 3}
	assert.Equal(t, 1, v.Ctr())
	assert.Equal(t, 7, v.ToClient(2))
	assert.Equal(t, 2, v.ToMap(8))
	assert.Equal(t, 2, ClampZoom(2))
	assert.Equal(t, MaxZoom, ClampZoom(99))
	assert.Equal(t, MinZoom, ClampZoom(0))
}

func TestOverVertex(t *testing.T) {
	v := View{Zoom: 2}
	p := Vertex{10, 10}
	assert.True(t, v.OverVertex(Vertex{20 + SnapRadius, 20 - SnapRadius}, p))
	assert.False(t, v.OverVertex(Vertex{20 + SnapRadius + 1, 20}, p))
	assert.Equal(t, 8, v.ClientDistSq(Vertex{22, 22}, p))
}

func TestOverEdge(t *testing.T) {
	v := View{Zoom: 2}
	on, ok := v.OverEdge(Vertex{10, 1}, Vertex{0, 0}, Vertex{10, 0})
	require.True(t, ok)
	assert.Equal(t, Vertex{5, 0}, on)

	_, ok = v.OverEdge(Vertex{10, 9}, Vertex{0, 0}, Vertex{10, 0})
	assert.False(t, ok, "too far from the edge")

	_, ok = v.OverEdge(Vertex{-2, 0}, Vertex{0, 0}, Vertex{10, 0})
	assert.False(t, ok, "projection before the start vertex")

	_, ok = v.OverEdge(Vertex{0, 0}, Vertex{3, 3}, Vertex{3, 3})
	assert.False(t, ok, "zero length edge")
}

func TestOverLabel(t *testing.T) {
	v := View{Zoom: 1}
	d, ok := v.OverLabel(Vertex{60, 55}, Vertex{50, 50})
	assert.True(t, ok)
	assert.Equal(t, 125, d)
	_, ok = v.OverLabel(Vertex{70, 50}, Vertex{50, 50})
	assert.False(t, ok)
}
