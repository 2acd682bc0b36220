package model

import (
	"image"

	"github.com/example/darkmapgen/internal/geom"
)

// Group is a solid contour followed by the holes cut out of it.
type Group struct {
	Solid *Contour
	Holes []*Contour
}

// Location is one clickable automap region. Index is the game facing id and
// is unique within a map.
type Location struct {
	Index  int
	Groups []*Group
	Bounds geom.Rect

	// Cache holds a rendered view image of the location, placed at CachePos in
	// zoomed client space. Any geometry change drops it.
	Cache    image.Image
	CachePos image.Point
}

// Invalidate drops the cached view image.
func (l *Location) Invalidate() {
	l.Cache = nil
}

// Contours returns every contour in chain order: each solid followed by its
// holes.
func (l *Location) Contours() []*Contour {
	var out []*Contour
	for _, g := range l.Groups {
		out = append(out, g.Solid)
		out = append(out, g.Holes...)
	}
	return out
}

// Solids returns the solid contour of every group.
func (l *Location) Solids() []*Contour {
	out := make([]*Contour, 0, len(l.Groups))
	for _, g := range l.Groups {
		out = append(out, g.Solid)
	}
	return out
}

// First returns the first contour in chain order, or nil.
func (l *Location) First() *Contour {
	if len(l.Groups) == 0 {
		return nil
	}
	return l.Groups[0].Solid
}

// Empty reports whether the location has no contours left.
func (l *Location) Empty() bool { return len(l.Groups) == 0 }

// UpdateBounds recomputes the aggregate bounding rectangle.
func (l *Location) UpdateBounds() {
	first := true
	for _, c := range l.Contours() {
		c.UpdateBounds()
		if first {
			l.Bounds = c.Bounds
			first = false
			continue
		}
		l.Bounds = l.Bounds.Union(c.Bounds)
	}
	if first {
		l.Bounds = geom.Rect{}
	}
}

// Contains reports whether pt lies in some solid contour and in none of
// that solid's holes.
func (l *Location) Contains(pt geom.Vertex) bool {
next:
	for _, g := range l.Groups {
		if !g.Solid.Contains(pt) {
			continue
		}
		for _, h := range g.Holes {
			if h.Contains(pt) {
				continue next
			}
		}
		return true
	}
	return false
}

// ContourAt returns the last contour in chain order containing pt, holes
// included. That is the contour drawn on top.
func (l *Location) ContourAt(pt geom.Vertex) *Contour {
	var found *Contour
	for _, c := range l.Contours() {
		if c.Contains(pt) {
			found = c
		}
	}
	return found
}

// Owns reports whether c belongs to l.
func (l *Location) Owns(c *Contour) bool {
	return c != nil && c.Owner == l
}

// AddContour attaches c. A hole goes after the holes of the last group; a
// solid, or any contour added to an empty location, starts a new group.
func (l *Location) AddContour(c *Contour) {
	c.Owner = l
	if c.Hole && len(l.Groups) > 0 {
		g := l.Groups[len(l.Groups)-1]
		g.Holes = append(g.Holes, c)
	} else {
		c.Hole = false
		l.Groups = append(l.Groups, &Group{Solid: c})
	}
	l.UpdateBounds()
	l.Invalidate()
}

// AddContourMaybeHole attaches c as a hole when its first vertex lies in an
// existing contour, else as a new solid group. A new hole is placed after
// the holes of the group owning that contour and gets a zero label.
func (l *Location) AddContourMaybeHole(c *Contour) {
	var host *Group
	if len(c.Verts) > 0 {
		if p := l.ContourAt(c.Verts[0]); p != nil {
			host = l.groupOf(p)
		}
	}
	if host == nil {
		c.Hole = false
		l.AddContour(c)
		return
	}
	c.Owner = l
	c.Hole = true
	c.Label = geom.Vertex{}
	host.Holes = append(host.Holes, c)
	l.UpdateBounds()
	l.Invalidate()
}

// DeleteContour removes c. Removing a solid removes its whole group.
func (l *Location) DeleteContour(c *Contour) bool {
	for gi, g := range l.Groups {
		if g.Solid == c {
			l.Groups = append(l.Groups[:gi], l.Groups[gi+1:]...)
			c.Owner = nil
			for _, h := range g.Holes {
				h.Owner = nil
			}
			l.UpdateBounds()
			l.Invalidate()
			return true
		}
		for hi, h := range g.Holes {
			if h == c {
				g.Holes = append(g.Holes[:hi], g.Holes[hi+1:]...)
				c.Owner = nil
				l.UpdateBounds()
				l.Invalidate()
				return true
			}
		}
	}
	return false
}

func (l *Location) groupOf(c *Contour) *Group {
	for _, g := range l.Groups {
		if g.Solid == c {
			return g
		}
		for _, h := range g.Holes {
			if h == c {
				return g
			}
		}
	}
	return nil
}

// IsOnlySolid reports whether c is the single solid contour of l.
func (l *Location) IsOnlySolid(c *Contour) bool {
	return c != nil && !c.Hole && len(l.Groups) == 1 && l.Groups[0].Solid == c
}

// IsMulti reports whether l has more than one contour, holes counted.
func (l *Location) IsMulti() bool {
	return len(l.Groups) > 1 || (len(l.Groups) == 1 && len(l.Groups[0].Holes) > 0)
}

// IsMultiSolid reports whether l has more than one solid contour.
func (l *Location) IsMultiSolid() bool { return len(l.Groups) > 1 }

// SolidCount returns the number of solid contours.
func (l *Location) SolidCount() int { return len(l.Groups) }

// Move translates every contour of the location.
func (l *Location) Move(dx, dy int) {
	if len(l.Groups) == 0 {
		return
	}
	for _, c := range l.Contours() {
		c.Move(dx, dy)
	}
	l.Bounds = l.Bounds.Translate(dx, dy)
	l.Invalidate()
}
