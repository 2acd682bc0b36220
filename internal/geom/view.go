package geom

const (
	// MinZoom and MaxZoom bound the integer view magnification.
	MinZoom = 1
	MaxZoom = 6

	// VertHandleRadius is the half size of a drawn vertex handle in client pixels.
	VertHandleRadius = 3
	// SnapRadius is the hit and snap distance in client pixels.
	SnapRadius = VertHandleRadius + 3
)

// View converts between map pixels and zoomed client pixels.
type View struct {
	Zoom int
}

// ClampZoom limits z to [MinZoom, MaxZoom].
func ClampZoom(z int) int {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// Ctr is the offset of a map pixel's center within its zoomed block.
func (v View) Ctr() int { return (v.Zoom - 1) / 2 }

// ToClient maps a single map coordinate to the center of its client block.
func (v View) ToClient(c int) int { return c*v.Zoom + v.Ctr() }

// ToMap maps a client coordinate back to map space.
func (v View) ToMap(c int) int { return c / v.Zoom }

// VertexToClient maps a map vertex to client space.
func (v View) VertexToClient(p Vertex) Vertex { return Vertex{v.ToClient(p.X), v.ToClient(p.Y)} }

// ClientToMap maps a client position to map space.
func (v View) ClientToMap(p Vertex) Vertex { return Vertex{v.ToMap(p.X), v.ToMap(p.Y)} }

// OverVertex reports whether the client position c lies within the square
// snap area around map vertex p.
func (v View) OverVertex(c, p Vertex) bool {
	x := v.ToClient(p.X)
	y := v.ToClient(p.Y)
	return c.X >= x-SnapRadius && c.Y >= y-SnapRadius && c.X <= x+SnapRadius && c.Y <= y+SnapRadius
}

// ClientDistSq returns the squared client distance between c and map vertex p.
func (v View) ClientDistSq(c, p Vertex) int {
	return c.DistSq(v.VertexToClient(p))
}

// OverEdge projects client position c onto the edge v0-v1. It reports the
// projected map position when the projection falls strictly between the
// endpoints and lies within the snap distance of c.
func (v View) OverEdge(c, v0, v1 Vertex) (Vertex, bool) {
	dx := (v1.X - v0.X) * v.Zoom
	dy := (v1.Y - v0.Y) * v.Zoom
	lensq := dx*dx + dy*dy
	if lensq <= 1 {
		return Vertex{}, false
	}
	x0 := v.ToClient(v0.X)
	y0 := v.ToClient(v0.Y)
	mdx := c.X - x0
	mdy := c.Y - y0
	f := float32(mdx*dx+mdy*dy) / float32(lensq)
	if f <= 0 || f >= 1 {
		return Vertex{}, false
	}
	on := Vertex{
		X: (x0 + int(float32(dx)*f)) / v.Zoom,
		Y: (y0 + int(float32(dy)*f)) / v.Zoom,
	}
	ex := c.X/v.Zoom - on.X
	ey := c.Y/v.Zoom - on.Y
	// map space squared distance against the unsquared radius
	return on, ex*ex+ey*ey <= SnapRadius
}

// LabelHalfW and LabelHalfH describe the label hit box in map pixels.
const (
	LabelHalfW = 16
	LabelHalfH = 10
)

// OverLabel reports whether client position c is within the hit box of a
// label anchored at map position label. The squared map distance is returned
// for picking the nearest of several labels.
func (v View) OverLabel(c, label Vertex) (int, bool) {
	p := v.ClientToMap(c)
	d := p.DistSq(label)
	return d, p.X >= label.X-LabelHalfW && p.Y >= label.Y-LabelHalfH &&
		p.X <= label.X+LabelHalfW && p.Y <= label.Y+LabelHalfH
}
