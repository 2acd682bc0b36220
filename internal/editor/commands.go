package editor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/darkmapgen/internal/export"
	"github.com/example/darkmapgen/internal/geom"
	"github.com/example/darkmapgen/internal/model"
	"github.com/example/darkmapgen/internal/projectfile"
	"github.com/example/darkmapgen/internal/render"
)

// MaxMoveDelta bounds a single move command on either axis.
const MaxMoveDelta = 4096

var (
	// ErrInvalidIndex is returned for location indices outside 0..255.
	ErrInvalidIndex = fmt.Errorf("invalid index, must be a value in the range 0 to %d", model.MaxLocations-1)
	// ErrIndexInUse is returned when reindexing onto a used index without
	// swapping.
	ErrIndexInUse = errors.New("index already in use")
)

// DeleteSelected deletes the selected location, or every location of the
// current page when the page is selected. It asks first.
func (e *Editor) DeleteSelected() bool {
	m := e.Map()
	if m == nil || e.Busy() {
		return false
	}
	if e.Selected == nil {
		if m.Len() == 0 {
			return false
		}
		if !e.Prompt.Confirm(fmt.Sprintf("Delete all locations on PAGE%03d?", m.Page)) ||
			!e.Prompt.Confirm(fmt.Sprintf("Are you really sure that you want to delete all locations on PAGE%03d?", m.Page)) {
			return false
		}
		m.Clear()
		e.resetEdit()
		e.setModified()
		return true
	}
	loc := e.Selected
	if !e.Prompt.Confirm(fmt.Sprintf("Delete location %03d on PAGE%03d?", loc.Index, m.Page)) {
		return false
	}
	e.Selected = neighbour(m, loc)
	m.Delete(loc)
	e.forget(loc)
	e.setModified()
	return true
}

// neighbour returns the location after loc in index order, else the one
// before it, else nil.
func neighbour(m *model.Map, loc *model.Location) *model.Location {
	sorted := m.Sorted()
	for i, l := range sorted {
		if l != loc {
			continue
		}
		if i+1 < len(sorted) {
			return sorted[i+1]
		}
		if i > 0 {
			return sorted[i-1]
		}
	}
	return nil
}

// ParseIndex parses a location index.
func ParseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n >= model.MaxLocations {
		return 0, ErrInvalidIndex
	}
	return n, nil
}

// SetIndex gives loc a new index. An index held by another location is
// swapped when swap is set and refused otherwise.
func (e *Editor) SetIndex(loc *model.Location, idx int, swap bool) error {
	if loc == nil {
		return ErrNoSelection
	}
	if idx < 0 || idx >= model.MaxLocations {
		return ErrInvalidIndex
	}
	if idx == loc.Index {
		return nil
	}
	m := e.Map()
	if m.ByIndex(idx) != nil && !swap {
		return fmt.Errorf("location %03d: %w", idx, ErrIndexInUse)
	}
	m.SetIndex(loc, idx)
	e.setModified()
	return nil
}

// EditIndex asks for a new index for the selected location.
func (e *Editor) EditIndex() bool {
	loc := e.Selected
	if loc == nil || e.Busy() {
		return false
	}
	value := strconv.Itoa(loc.Index)
	for {
		s, ok := e.Prompt.Input("New Index", value)
		if !ok {
			return false
		}
		idx, err := ParseIndex(s)
		if err != nil {
			e.Prompt.Alert("Invalid index, must be a value in the range 0 to 255")
			value = s
			continue
		}
		if idx == loc.Index {
			return false
		}
		if e.Map().ByIndex(idx) != nil &&
			!e.Prompt.Confirm(fmt.Sprintf("Another location with index %03d already exists. Swap indices?", idx)) {
			return false
		}
		return e.SetIndex(loc, idx, true) == nil
	}
}

// ParseDelta parses "dx dy".
func ParseDelta(s string) (int, int, error) {
	f := strings.Fields(s)
	if len(f) != 2 {
		return 0, 0, fmt.Errorf("move delta %q: want two integers", s)
	}
	dx, err := strconv.Atoi(f[0])
	if err != nil {
		return 0, 0, fmt.Errorf("move delta %q: %w", s, err)
	}
	dy, err := strconv.Atoi(f[1])
	if err != nil {
		return 0, 0, fmt.Errorf("move delta %q: %w", s, err)
	}
	return dx, dy, nil
}

// MoveBy translates loc, or every location of the current page when loc
// is nil. Zero or out of range deltas do nothing.
func (e *Editor) MoveBy(loc *model.Location, dx, dy int) bool {
	if (dx == 0 && dy == 0) || abs(dx) > MaxMoveDelta || abs(dy) > MaxMoveDelta {
		return false
	}
	m := e.Map()
	if loc != nil {
		loc.Move(dx, dy)
	} else {
		if m.Len() == 0 {
			return false
		}
		for _, l := range m.Locations() {
			l.Move(dx, dy)
		}
	}
	e.setModified()
	return true
}

// MoveSelected asks for a delta and moves the selection by it.
func (e *Editor) MoveSelected() bool {
	m := e.Map()
	if m == nil || e.Busy() {
		return false
	}
	if e.Selected == nil {
		if m.Len() == 0 {
			e.Prompt.Alert("No locations on this page")
			return false
		}
		if !e.Prompt.Confirm(fmt.Sprintf("Move all locations on PAGE%03d?", m.Page)) ||
			!e.Prompt.Confirm(fmt.Sprintf("Are you really sure that you want to move all locations on PAGE%03d?", m.Page)) {
			return false
		}
	}
	s, ok := e.Prompt.Input("Move Delta (dX dY)", e.moveDelta)
	if !ok {
		return false
	}
	dx, dy, err := ParseDelta(s)
	if err != nil {
		e.Prompt.Alert(err.Error())
		return false
	}
	e.moveDelta = s
	return e.MoveBy(e.Selected, dx, dy)
}

// Info describes the exported area of loc with the given border margin.
func Info(m *model.Map, loc *model.Location, margin int) string {
	r := render.Area(m, loc, margin)
	return fmt.Sprintf("Location %03d on PAGE%03d\n\nOrigin: %d, %d\nSize: %d x %d",
		loc.Index, m.Page, r.X0, r.Y0, r.Dx(), r.Dy())
}

// Info describes the selected location.
func (e *Editor) Info(margin int) (string, error) {
	if e.Selected == nil {
		return "", ErrNoSelection
	}
	return Info(e.Map(), e.Selected, margin), nil
}

// ChangeZoom sets the zoom, clamped to the supported range. Cached view
// images are dropped when it changes.
func (e *Editor) ChangeZoom(z int) bool {
	z = geom.ClampZoom(z)
	if z == e.Zoom {
		return false
	}
	e.Zoom = z
	e.Project.Flush()
	return true
}

// ZoomAt zooms by delta keeping the map point under viewport position pos
// in place. Positions outside the viewport zoom around its center.
func (e *Editor) ZoomAt(pos geom.Vertex, delta int) bool {
	if pos.X < 0 || pos.Y < 0 || pos.X >= e.Viewport.X || pos.Y >= e.Viewport.Y {
		pos = geom.Vertex{X: e.Viewport.X / 2, Y: e.Viewport.Y / 2}
	}
	mx := (e.Scroll.X + pos.X) / e.Zoom
	my := (e.Scroll.Y + pos.Y) / e.Zoom
	if !e.ChangeZoom(e.Zoom + delta) {
		return false
	}
	e.ScrollTo(mx*e.Zoom-pos.X, my*e.Zoom-pos.Y)
	return true
}

// ZoomStep zooms by delta around the viewport center.
func (e *Editor) ZoomStep(delta int) bool {
	if e.Busy() {
		return false
	}
	return e.ZoomAt(geom.Vertex{X: e.Viewport.X / 2, Y: e.Viewport.Y / 2}, delta)
}

// ScrollTo scrolls to client position x, y, clamped to the zoomed page.
func (e *Editor) ScrollTo(x, y int) {
	w, h := 0, 0
	if m := e.Map(); m != nil {
		w, h = m.Size()
	}
	e.Scroll.X = clamp(x, w*e.Zoom-e.Viewport.X)
	e.Scroll.Y = clamp(y, h*e.Zoom-e.Viewport.Y)
}

func clamp(v, hi int) int {
	if v > hi {
		v = hi
	}
	if v < 0 {
		v = 0
	}
	return v
}

// ChangePage selects the next page with an image in direction delta.
func (e *Editor) ChangePage(delta int) bool {
	if e.Creating() || e.Busy() || delta == 0 {
		return false
	}
	for n := e.Project.Current + delta; n >= 0 && n < e.Project.MapCount; n += delta {
		if e.Project.HasImage(n) {
			return e.Select(n, nil)
		}
	}
	return false
}

// SetDisplayMode switches the display mode. Entering or leaving the faded
// mode drops every cached image since the background changes.
func (e *Editor) SetDisplayMode(d render.DisplayMode) {
	if d == e.Display || d < render.Outlines || d > render.FadeNonSel {
		return
	}
	if d == render.FadeNonSel || e.Display == render.FadeNonSel {
		e.Project.Flush()
	}
	e.Display = d
}

// GenerateAll asks and then exports every page.
func (e *Editor) GenerateAll(opts export.Options) *export.Result {
	if e.Project.LocationCount() == 0 {
		e.Prompt.Alert("No locations have been defined, nothing to generate.")
		return nil
	}
	if !e.Prompt.Confirm("Generate files for all map locations.\nExisting files will be overwritten. Proceed?") {
		return nil
	}
	opts.Page, opts.Loc = -1, -1
	return export.Generate(e.Project, opts)
}

// GenerateSelected asks and then exports the selected location, or the
// current page when the page is selected.
func (e *Editor) GenerateSelected(opts export.Options) *export.Result {
	m := e.Map()
	if m == nil {
		return nil
	}
	opts.Page, opts.Loc = m.Page, -1
	if e.Selected == nil {
		if m.Len() == 0 {
			e.Prompt.Alert(fmt.Sprintf("No locations have been defined on PAGE%03d, nothing to generate.", m.Page))
			return nil
		}
		if !e.Prompt.Confirm(fmt.Sprintf("Generate files for PAGE%03d.\nExisting files will be overwritten. Proceed?", m.Page)) {
			return nil
		}
		return export.Generate(e.Project, opts)
	}
	opts.Loc = e.Selected.Index
	if !e.Prompt.Confirm(fmt.Sprintf("Generate files for location %03d on PAGE%03d.\nExisting files will be overwritten. Proceed?", opts.Loc, m.Page)) {
		return nil
	}
	return export.Generate(e.Project, opts)
}

// Save writes the project file.
func (e *Editor) Save() error {
	return projectfile.Save(e.Project)
}

// ConfirmClose reports whether the editor may close, asking when there
// are unsaved changes.
func (e *Editor) ConfirmClose() bool {
	if !e.Project.Modified {
		return true
	}
	return e.Prompt.Confirm("Any unsaved changes will be lost. Exit?")
}

// Title returns the window title for the given program version.
func (e *Editor) Title(version string) string {
	game := "[Thief]"
	if e.Project.Dual {
		game = "[SS2]"
	}
	dir, err := filepath.Abs(e.Project.Dir)
	if err != nil {
		dir = e.Project.Dir
	}
	t := fmt.Sprintf("DarkMapGen %s %s - %s", version, game, dir)
	if e.Project.Modified {
		t += " *"
	}
	return t
}
