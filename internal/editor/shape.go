package editor

import (
	"errors"

	"github.com/example/darkmapgen/internal/geom"
	"github.com/example/darkmapgen/internal/model"
)

var (
	// ErrNoSelection is returned by commands that need a selected location.
	ErrNoSelection = errors.New("no location selected")
	// ErrNoFreeIndex means every location index of the page is in use.
	ErrNoFreeIndex = errors.New("no free location index on this page")
	// ErrIncomplete means the contour being drawn has fewer than 3 vertices.
	ErrIncomplete = errors.New("shape needs at least 3 vertices")
)

// AddPoint appends map position p to the scratch contour, starting one if
// needed. The new vertex becomes the dragged vertex.
func (e *Editor) AddPoint(p geom.Vertex) bool {
	if e.Scratch == nil {
		e.Scratch = model.NewContour()
		e.EditShape = e.Scratch
	}
	if !e.Scratch.Append(p) {
		return false
	}
	e.Edit = Hit{e.Scratch, e.Scratch.Len() - 1}
	return true
}

// UpdatePoint moves the dragged vertex to map position p.
func (e *Editor) UpdatePoint(p geom.Vertex) bool {
	if !e.Edit.Valid() || !e.Edit.Contour.Set(e.Edit.Vertex, p) {
		return false
	}
	if e.Edit.Contour != e.Scratch {
		e.setModified()
	}
	return true
}

// InsertPoint splices the hovered insert position into the hovered edge
// and starts dragging the new vertex.
func (e *Editor) InsertPoint() bool {
	c := e.HoverShape
	if e.InsertEdge < 0 || c == nil || !c.InsertAfter(e.InsertEdge, e.InsertAt) {
		return false
	}
	e.Hover = Hit{c, e.InsertEdge + 1}
	e.Edit = e.Hover
	e.EditShape = c
	e.InsertEdge = -1
	if c != e.Scratch {
		e.setModified()
	}
	return true
}

// DeletePoint removes vertex i of c. A contour left with fewer than 3
// vertices, or any contour while MaybeDeleteShape is set, is removed as a
// whole instead; removing the only solid of a location asks to delete the
// location. It reports whether anything was deleted.
func (e *Editor) DeletePoint(c *model.Contour, i int) bool {
	if c.Len() <= 3 || e.MaybeDeleteShape {
		loc := c.Owner
		if c == e.Scratch || loc == nil {
			return false
		}
		if loc.IsOnlySolid(c) {
			e.dragging = 0
			e.Selected = loc
			return e.DeleteSelected()
		}
		if !loc.IsMulti() {
			return false
		}
		loc.DeleteContour(c)
		if e.Edit.Contour == c {
			e.Edit = Hit{}
		}
		e.setModified()
		return true
	}
	if !c.RemoveAt(i) {
		return false
	}
	if e.Edit == (Hit{c, i}) {
		e.Edit = Hit{}
	}
	if c != e.Scratch {
		e.setModified()
	}
	return true
}

// DeleteLastPoint drops the newest vertex of the scratch contour. The last
// remaining vertex aborts the contour.
func (e *Editor) DeleteLastPoint() {
	if e.Scratch == nil {
		return
	}
	n := e.Scratch.Len()
	if n <= 1 {
		e.AbortShape()
		return
	}
	e.Scratch.RemoveAt(n - 1)
	if e.Edit.Contour == e.Scratch && e.Edit.Vertex >= n-1 {
		e.Edit = Hit{}
	}
	if e.Hover.Contour == e.Scratch && e.Hover.Vertex >= n-1 {
		e.Hover = Hit{}
	}
}

// CommitNewLocation turns the scratch contour into a new location with the
// lowest free index and selects it.
func (e *Editor) CommitNewLocation() (*model.Location, error) {
	c := e.Scratch
	if c == nil || c.Len() < 3 {
		return nil, ErrIncomplete
	}
	m := e.Map()
	idx := m.FreeIndex()
	if idx < 0 {
		return nil, ErrNoFreeIndex
	}
	loc := m.NewLocation(idx)
	if loc == nil {
		return nil, ErrNoFreeIndex
	}
	c.UpdateBounds()
	c.Label = c.Bounds.Center()
	loc.AddContour(c)
	e.Selected = loc
	e.finishShape()
	return loc, nil
}

// CommitSubShape adds the scratch contour to the selected location. It
// becomes a hole when its first vertex lies inside the location.
func (e *Editor) CommitSubShape() error {
	c := e.Scratch
	if c == nil || c.Len() < 3 {
		return ErrIncomplete
	}
	if e.Selected == nil {
		return ErrNoSelection
	}
	c.UpdateBounds()
	c.Label = c.Bounds.Center()
	e.Selected.AddContourMaybeHole(c)
	e.finishShape()
	return nil
}

func (e *Editor) finishShape() {
	e.Scratch = nil
	e.resetEdit()
	e.setModified()
}

// AbortShape discards the scratch contour.
func (e *Editor) AbortShape() {
	if e.Scratch == nil {
		return
	}
	if e.HoverShape == e.Scratch {
		e.Hover = Hit{}
		e.HoverShape = nil
	}
	e.Scratch = nil
	e.Edit = Hit{}
	e.EditShape = nil
}

// SetLabel moves the label of the label target to map position p.
func (e *Editor) SetLabel(p geom.Vertex) bool {
	if e.LabelTarget == nil {
		return false
	}
	e.LabelTarget.Label = p
	e.setModified()
	return true
}
