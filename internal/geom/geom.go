// Package geom holds the integer geometry used by map locations: vertices,
// inclusive bounding rectangles and the contour hit test.
package geom

import "image"

// Vertex is a point in map image pixel space.
type Vertex struct {
	X, Y int
}

// Add returns v translated by dx, dy.
func (v Vertex) Add(dx, dy int) Vertex { return Vertex{v.X + dx, v.Y + dy} }

// Point converts v to an image.Point.
func (v Vertex) Point() image.Point { return image.Point{v.X, v.Y} }

// DistSq returns the squared distance between v and o.
func (v Vertex) DistSq(o Vertex) int {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Rect is an axis aligned rectangle with inclusive bounds.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// BoundsOf returns the smallest Rect enclosing verts. An empty slice yields
// the zero Rect.
func BoundsOf(verts []Vertex) Rect {
	if len(verts) == 0 {
		return Rect{}
	}
	r := Rect{verts[0].X, verts[0].Y, verts[0].X, verts[0].Y}
	for _, v := range verts[1:] {
		r = r.Extend(v)
	}
	return r
}

// Extend grows r to include v.
func (r Rect) Extend(v Vertex) Rect {
	if v.X < r.X0 {
		r.X0 = v.X
	}
	if v.X > r.X1 {
		r.X1 = v.X
	}
	if v.Y < r.Y0 {
		r.Y0 = v.Y
	}
	if v.Y > r.Y1 {
		r.Y1 = v.Y
	}
	return r
}

// Union returns the smallest Rect containing r and o.
func (r Rect) Union(o Rect) Rect {
	r = r.Extend(Vertex{o.X0, o.Y0})
	return r.Extend(Vertex{o.X1, o.Y1})
}

// Contains reports whether v lies inside r, edges included.
func (r Rect) Contains(v Vertex) bool {
	return v.X >= r.X0 && v.X <= r.X1 && v.Y >= r.Y0 && v.Y <= r.Y1
}

// Inset returns r grown by n on every side (shrunk for negative n).
func (r Rect) Inset(n int) Rect {
	return Rect{r.X0 - n, r.Y0 - n, r.X1 + n, r.Y1 + n}
}

// Center returns the label anchor used for freshly created contours.
func (r Rect) Center() Vertex {
	return Vertex{r.X0 + (r.X1-r.X0)/2, r.Y0 + (r.Y1-r.Y0)/2}
}

// Dx returns the inclusive width.
func (r Rect) Dx() int { return r.X1 - r.X0 + 1 }

// Dy returns the inclusive height.
func (r Rect) Dy() int { return r.Y1 - r.Y0 + 1 }

// Translate moves r by dx, dy.
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{r.X0 + dx, r.Y0 + dy, r.X1 + dx, r.Y1 + dy}
}

// Clamp limits r to the inclusive area [0,w-1]x[0,h-1].
func (r Rect) Clamp(w, h int) Rect {
	if r.X0 < 0 {
		r.X0 = 0
	}
	if r.Y0 < 0 {
		r.Y0 = 0
	}
	if r.X1 >= w {
		r.X1 = w - 1
	}
	if r.Y1 >= h {
		r.Y1 = h - 1
	}
	return r
}

// Image converts r to a half-open image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1+1, r.Y1+1)
}
