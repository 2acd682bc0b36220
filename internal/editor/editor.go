// Package editor holds the interactive editing state of a project: the
// pointer mode, the contour being drawn, the selection and the commands
// that act on it. It knows nothing about windows; the view feeds it input
// events in viewport pixels and draws from its exported state.
package editor

import (
	"image"
	"log"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/darkmapgen/internal/geom"
	"github.com/example/darkmapgen/internal/model"
	"github.com/example/darkmapgen/internal/render"
)

// DefaultZoom is the view magnification of a fresh editor.
const DefaultZoom = 2

// Hit names one vertex of a contour.
type Hit struct {
	Contour *model.Contour
	Vertex  int
}

// Valid reports whether h refers to an existing vertex.
func (h Hit) Valid() bool {
	return h.Contour != nil && h.Vertex >= 0 && h.Vertex < h.Contour.Len()
}

// Pos returns the map position of the vertex.
func (h Hit) Pos() geom.Vertex { return h.Contour.Verts[h.Vertex] }

// Editor is the editing context for one project.
type Editor struct {
	Project *model.Project
	Prompt  Prompter

	Zoom    int
	Display render.DisplayMode

	Mode   Mode
	Cursor Cursor
	Mods   key.Modifiers
	// MaybeDeleteShape makes a vertex delete remove its whole contour.
	MaybeDeleteShape bool

	// Scroll is the client position shown at the viewport origin.
	Scroll   image.Point
	Viewport image.Point

	// Pointer is the last pointer position in client pixels, Snapped the
	// same position after snapping.
	Pointer geom.Vertex
	Snapped geom.Vertex

	// Scratch is the contour being drawn, nil when not creating.
	Scratch *model.Contour
	// Selected is the selected location; nil selects the current page.
	Selected *model.Location

	// Edit is the vertex following the pointer during a drag.
	Edit      Hit
	EditShape *model.Contour

	Hover      Hit
	HoverShape *model.Contour
	// InsertEdge is the hovered edge in add/delete mode, -1 for none.
	InsertEdge int
	InsertAt   geom.Vertex

	// LabelTarget is the contour whose label follows the pointer.
	LabelTarget *model.Contour

	dragging  mouse.Button
	panning   bool
	panFrom   geom.Vertex
	panScroll image.Point
	panCursor Cursor
	viewPos   geom.Vertex
	moveDelta string
}

// Option configures an Editor.
type Option func(*Editor)

// WithZoom sets the initial zoom.
func WithZoom(z int) Option {
	return func(e *Editor) { e.Zoom = geom.ClampZoom(z) }
}

// WithDisplayMode sets the initial display mode.
func WithDisplayMode(d render.DisplayMode) Option {
	return func(e *Editor) {
		if d >= render.Outlines && d <= render.FadeNonSel {
			e.Display = d
		}
	}
}

// WithViewport sets the visible client size.
func WithViewport(w, h int) Option {
	return func(e *Editor) { e.Viewport = image.Pt(w, h) }
}

// New returns an editor for p. A nil prompter declines every question.
func New(p *model.Project, prompt Prompter, opts ...Option) *Editor {
	if prompt == nil {
		prompt = Decline{}
	}
	e := &Editor{
		Project:    p,
		Prompt:     prompt,
		Zoom:       DefaultZoom,
		Display:    render.Outlines,
		InsertEdge: -1,
		moveDelta:  "0 0",
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// View returns the current client mapping.
func (e *Editor) View() geom.View { return geom.View{Zoom: e.Zoom} }

// Map returns the page being edited.
func (e *Editor) Map() *model.Map { return e.Project.CurrentMap() }

// Creating reports whether a new contour is being drawn.
func (e *Editor) Creating() bool { return e.Scratch != nil }

// Dragging returns the button held since the last press, or ButtonNone.
func (e *Editor) Dragging() mouse.Button { return e.dragging }

// Panning reports whether space-drag panning is active.
func (e *Editor) Panning() bool { return e.panning }

// Busy reports whether a drag or pan is in progress. Commands refuse to run
// while busy.
func (e *Editor) Busy() bool { return e.dragging != mouse.ButtonNone || e.panning }

// HighlightAll reports whether deleting the hovered vertex would remove its
// whole contour, so every vertex of it should be highlighted.
func (e *Editor) HighlightAll() bool {
	return e.Hover.Valid() && e.Mode == ModeAddDelete && e.HoverShape != nil &&
		(e.HoverShape.Len() == 3 || e.MaybeDeleteShape)
}

func (e *Editor) setModified() { e.Project.Modified = true }

// Select selects loc on the given page, or the page itself when loc is nil.
// Switching pages aborts a contour in progress.
func (e *Editor) Select(page int, loc *model.Location) bool {
	if !e.Project.HasImage(page) {
		return false
	}
	if page != e.Project.Current {
		e.AbortShape()
		e.Project.Current = page
		e.ScrollTo(e.Scroll.X, e.Scroll.Y)
	}
	if loc != nil && e.Map().PositionOf(loc) < 0 {
		loc = nil
	}
	e.Selected = loc
	e.UpdateMode()
	return true
}

// SelectAt selects the next location containing the map point pt, cycling
// through overlapping locations on repeated calls. Without a hit the page
// is selected.
func (e *Editor) SelectAt(pt geom.Vertex) *model.Location {
	m := e.Map()
	locs := m.Locations()
	start := 0
	if e.Selected != nil {
		start = m.PositionOf(e.Selected) + 1
	}
	e.Selected = nil
	for i := range locs {
		l := locs[(start+i)%len(locs)]
		if l.Contains(pt) {
			e.Selected = l
			break
		}
	}
	return e.Selected
}

// UpdateMode re-derives the edit mode from the held modifiers. It does
// nothing during a drag or pan.
func (e *Editor) UpdateMode() {
	if e.Busy() {
		return
	}
	mode, maybe := DeriveMode(ModeInput{
		Mods:     e.Mods,
		Creating: e.Creating(),
		Selected: e.Selected != nil,
		Current:  e.Mode,
	})
	e.MaybeDeleteShape = maybe
	if mode == ModeLabelPos && !e.Selected.IsMultiSolid() {
		e.LabelTarget = e.Selected.First()
	}
	if mode != e.Mode && e.Mode == ModeLabelPos {
		e.LabelTarget = nil
	}
	e.Mode = mode
	e.updateHover()
}

func (e *Editor) updateCursor() {
	if e.panning {
		e.Cursor = CursorPan
		return
	}
	e.Cursor = cursorFor(e.Mode, e.Hover.Valid(), e.InsertEdge >= 0)
}

func (e *Editor) resetEdit() {
	e.Edit = Hit{}
	e.EditShape = nil
	e.Hover = Hit{}
	e.HoverShape = nil
	e.InsertEdge = -1
	e.LabelTarget = nil
}

// forget drops every reference into loc.
func (e *Editor) forget(loc *model.Location) {
	if e.EditShape != nil && e.EditShape.Owner == loc {
		e.Edit = Hit{}
		e.EditShape = nil
	}
	if e.HoverShape != nil && (e.HoverShape.Owner == loc || e.HoverShape.Owner == nil) && e.HoverShape != e.Scratch {
		e.Hover = Hit{}
		e.HoverShape = nil
		e.InsertEdge = -1
	}
	if e.LabelTarget != nil && (e.LabelTarget.Owner == loc || e.LabelTarget.Owner == nil) {
		e.LabelTarget = nil
	}
}

func logf(format string, args ...any) {
	log.Printf("editor: "+format, args...)
}
