package editor

import (
	"math"

	"github.com/example/darkmapgen/internal/geom"
	"github.com/example/darkmapgen/internal/model"
)

// VertexAt returns the vertex nearest to the client position c within the
// snap square. With loc nil every location of the current map and the
// scratch contour are searched; otherwise only loc. The vertex being
// dragged never matches.
func (e *Editor) VertexAt(c geom.Vertex, loc *model.Location) (Hit, bool) {
	v := e.View()
	best := Hit{}
	bestDist := math.MaxInt
	try := func(cs []*model.Contour) {
		for _, ct := range cs {
			for i, p := range ct.Verts {
				if ct == e.Edit.Contour && i == e.Edit.Vertex {
					continue
				}
				if !v.OverVertex(c, p) {
					continue
				}
				if d := v.ClientDistSq(c, p); d < bestDist {
					best, bestDist = Hit{ct, i}, d
				}
			}
		}
	}
	if loc != nil {
		if e.nearBounds(c, loc.Bounds) {
			try(loc.Contours())
		}
		return best, best.Contour != nil
	}
	if m := e.Map(); m != nil {
		for _, l := range m.Locations() {
			if e.nearBounds(c, l.Bounds) {
				try(l.Contours())
			}
		}
	}
	if e.Scratch != nil {
		try([]*model.Contour{e.Scratch})
	}
	return best, best.Contour != nil
}

// nearBounds is the quick reject for VertexAt: c must be within the snap
// radius of the zoomed bounding rectangle.
func (e *Editor) nearBounds(c geom.Vertex, r geom.Rect) bool {
	z := e.Zoom
	return c.X >= r.X0*z-geom.SnapRadius && c.X <= r.X1*z+z-1+geom.SnapRadius &&
		c.Y >= r.Y0*z-geom.SnapRadius && c.Y <= r.Y1*z+z-1+geom.SnapRadius
}

// EdgeAt returns the first edge of cs the client position c lies on, with
// the map position where a vertex would be inserted.
func (e *Editor) EdgeAt(c geom.Vertex, cs []*model.Contour) (*model.Contour, int, geom.Vertex, bool) {
	v := e.View()
	for _, ct := range cs {
		n := ct.Len()
		for i := 0; i < n; i++ {
			if p, ok := v.OverEdge(c, ct.Verts[i], ct.Verts[(i+1)%n]); ok {
				return ct, i, p, true
			}
		}
	}
	return nil, -1, geom.Vertex{}, false
}

// LabelAt returns the solid contour of the selected location whose label
// box contains the client position c, nearest first.
func (e *Editor) LabelAt(c geom.Vertex) *model.Contour {
	if e.Selected == nil {
		return nil
	}
	v := e.View()
	var found *model.Contour
	bestDist := math.MaxInt
	for _, s := range e.Selected.Solids() {
		if d, ok := v.OverLabel(c, s.Label); ok && d < bestDist {
			found, bestDist = s, d
		}
	}
	return found
}

// updatePointer records the pointer at viewport position pos and computes
// the snapped position. Snapping needs the snap modifier and is off while
// placing labels.
func (e *Editor) updatePointer(pos geom.Vertex) {
	e.viewPos = pos
	c := geom.Vertex{X: pos.X + e.Scroll.X, Y: pos.Y + e.Scroll.Y}
	e.Pointer, e.Snapped = c, c
	if e.Mods&modSnap == 0 || e.Mode == ModeLabelPos || e.Map() == nil {
		return
	}
	if h, ok := e.VertexAt(c, nil); ok {
		e.Snapped = e.View().VertexToClient(h.Pos())
		return
	}
	if e.dragging != 0 && !e.Edit.Valid() {
		return
	}
	e.Snapped = e.snapAxes(c)
}

// snapAxes aligns each axis of c with the nearest vertex of the contour
// being edited.
func (e *Editor) snapAxes(c geom.Vertex) geom.Vertex {
	var cs []*model.Contour
	switch {
	case e.Scratch != nil:
		cs = []*model.Contour{e.Scratch}
	case e.EditShape != nil && e.EditShape.Owner != nil:
		cs = e.EditShape.Owner.Contours()
	case e.Selected != nil:
		cs = e.Selected.Contours()
	default:
		return c
	}
	v := e.View()
	out := c
	bestX, bestY := geom.SnapRadius, geom.SnapRadius
	for _, ct := range cs {
		for i, p := range ct.Verts {
			if ct == e.Edit.Contour && i == e.Edit.Vertex {
				continue
			}
			cp := v.VertexToClient(p)
			if dx := abs(cp.X - c.X); dx < bestX {
				bestX, out.X = dx, cp.X
			}
			if dy := abs(cp.Y - c.Y); dy < bestY {
				bestY, out.Y = dy, cp.Y
			}
		}
	}
	return out
}

// updateHover refreshes the highlighted vertex, the insert edge and the
// label target for the current pointer position.
func (e *Editor) updateHover() {
	e.Hover = Hit{}
	e.InsertEdge = -1
	c := e.Pointer
	v := e.View()

	switch {
	case e.Mode == ModeCreate && e.Scratch != nil:
		if e.Scratch.Len() > 2 && v.OverVertex(c, e.Scratch.Verts[0]) {
			e.Hover = Hit{e.Scratch, 0}
			e.HoverShape = e.Scratch
		}
	case e.Mode == ModeLabelPos:
		if e.Selected != nil && e.Selected.IsMultiSolid() {
			e.LabelTarget = e.LabelAt(c)
		}
	case e.Mode == ModeMove || (e.Mode == ModeAddDelete && e.Scratch == nil):
		loc := e.Selected
		if e.EditShape != nil && e.EditShape.Owner != nil {
			loc = e.EditShape.Owner
		}
		if loc == nil {
			break
		}
		if h, ok := e.VertexAt(c, loc); ok {
			e.Hover = h
			e.HoverShape = h.Contour
			break
		}
		if e.Mode == ModeAddDelete {
			if ct, i, p, ok := e.EdgeAt(c, loc.Contours()); ok {
				e.HoverShape, e.InsertEdge, e.InsertAt = ct, i, p
			}
		}
	}
	if !e.Hover.Valid() && e.InsertEdge < 0 {
		e.HoverShape = nil
	}
	e.updateCursor()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
