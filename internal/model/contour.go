package model

import "github.com/example/darkmapgen/internal/geom"

// Contour is one closed polygon ring of a location, either solid or a hole.
type Contour struct {
	Verts  []geom.Vertex
	Hole   bool
	Bounds geom.Rect
	Label  geom.Vertex
	// Owner is nil while the contour is still being drawn.
	Owner *Location
}

// NewContour returns an empty solid contour with room for MaxVerts vertices.
func NewContour() *Contour {
	return &Contour{Verts: make([]geom.Vertex, 0, MaxVerts)}
}

// Len returns the number of vertices.
func (c *Contour) Len() int { return len(c.Verts) }

// Clone returns a detached deep copy of c.
func (c *Contour) Clone() *Contour {
	n := *c
	n.Verts = append(make([]geom.Vertex, 0, MaxVerts), c.Verts...)
	n.Owner = nil
	return &n
}

// UpdateBounds recomputes the bounding rectangle from the vertices.
func (c *Contour) UpdateBounds() {
	c.Bounds = geom.BoundsOf(c.Verts)
}

// Contains reports whether pt is inside the ring.
func (c *Contour) Contains(pt geom.Vertex) bool {
	return geom.PointInContour(pt, c.Verts, c.Bounds)
}

// Append adds v at the end of the ring. It refuses once the ring is full.
func (c *Contour) Append(v geom.Vertex) bool {
	if len(c.Verts) >= MaxVerts {
		return false
	}
	c.Verts = append(c.Verts, v)
	c.changed()
	return true
}

// InsertAfter splices v in after vertex i, on the edge i -> i+1.
func (c *Contour) InsertAfter(i int, v geom.Vertex) bool {
	if len(c.Verts) >= MaxVerts || i < 0 || i >= len(c.Verts) {
		return false
	}
	c.Verts = append(c.Verts, geom.Vertex{})
	copy(c.Verts[i+2:], c.Verts[i+1:])
	c.Verts[i+1] = v
	c.changed()
	return true
}

// RemoveAt deletes vertex i.
func (c *Contour) RemoveAt(i int) bool {
	if i < 0 || i >= len(c.Verts) {
		return false
	}
	c.Verts = append(c.Verts[:i], c.Verts[i+1:]...)
	c.changed()
	return true
}

// Set replaces vertex i.
func (c *Contour) Set(i int, v geom.Vertex) bool {
	if i < 0 || i >= len(c.Verts) {
		return false
	}
	if c.Verts[i] == v {
		return true
	}
	c.Verts[i] = v
	c.changed()
	return true
}

// Last returns the final vertex. The ring must not be empty.
func (c *Contour) Last() geom.Vertex { return c.Verts[len(c.Verts)-1] }

// Move translates every vertex. Labels only matter for solid rings and are
// left alone on holes.
func (c *Contour) Move(dx, dy int) {
	if len(c.Verts) == 0 {
		return
	}
	for i := range c.Verts {
		c.Verts[i] = c.Verts[i].Add(dx, dy)
	}
	c.Bounds = c.Bounds.Translate(dx, dy)
	if !c.Hole {
		c.Label = c.Label.Add(dx, dy)
	}
}

func (c *Contour) changed() {
	c.UpdateBounds()
	if c.Owner != nil {
		c.Owner.UpdateBounds()
		c.Owner.Invalidate()
	}
}
