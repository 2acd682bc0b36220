package editor

import (
	"errors"
	"image"
	"strings"
	"testing"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/darkmapgen/internal/geom"
	"github.com/example/darkmapgen/internal/model"
	"github.com/example/darkmapgen/internal/render"
)

type script struct {
	confirms []bool
	inputs   []string
	asked    []string
	alerts   []string
}

func (s *script) Confirm(msg string) bool {
	s.asked = append(s.asked, msg)
	if len(s.confirms) == 0 {
		return false
	}
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v
}

func (s *script) Input(label, value string) (string, bool) {
	s.asked = append(s.asked, label+": "+value)
	if len(s.inputs) == 0 {
		return "", false
	}
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	return v, true
}

func (s *script) Alert(msg string) { s.alerts = append(s.alerts, msg) }

func newTestEditor(t *testing.T, w, h int, prompt Prompter, opts ...Option) *Editor {
	t.Helper()
	p := model.NewProject(t.TempDir())
	p.Maps[0].Image = image.NewNRGBA(image.Rect(0, 0, w, h))
	p.MapCount = 1
	opts = append([]Option{WithZoom(1), WithViewport(w, h)}, opts...)
	return New(p, prompt, opts...)
}

func pt(x, y int) geom.Vertex { return geom.Vertex{X: x, Y: y} }

func poly(m *model.Map, idx int, verts ...geom.Vertex) *model.Location {
	loc := m.NewLocation(idx)
	c := model.NewContour()
	for _, v := range verts {
		c.Append(v)
	}
	c.Label = c.Bounds.Center()
	loc.AddContour(c)
	return loc
}

func square(m *model.Map, idx, x0, y0, x1, y1 int) *model.Location {
	return poly(m, idx, pt(x0, y0), pt(x1, y0), pt(x1, y1), pt(x0, y1))
}

func click(e *Editor, x, y int) {
	e.Motion(pt(x, y))
	e.Press(mouse.ButtonLeft, pt(x, y))
	e.Release(mouse.ButtonLeft, pt(x, y))
}

func hold(e *Editor, c key.Code) { e.Key(key.Event{Code: c, Direction: key.DirPress}) }
func lift(e *Editor, c key.Code) { e.Key(key.Event{Code: c, Direction: key.DirRelease}) }

func TestDeriveMode(t *testing.T) {
	ctrl, alt, shift := key.ModControl, key.ModAlt, key.ModShift
	tests := []struct {
		name  string
		in    ModeInput
		want  Mode
		maybe bool
	}{
		{"none", ModeInput{}, ModeCreate, false},
		{"shift", ModeInput{Mods: shift}, ModeCreate, false},
		{"ctrl", ModeInput{Mods: ctrl}, ModeMove, false},
		{"ctrl alt selected", ModeInput{Mods: ctrl | alt, Selected: true}, ModeLabelPos, false},
		{"ctrl alt no selection", ModeInput{Mods: ctrl | alt}, ModeMove, false},
		{"ctrl alt creating", ModeInput{Mods: ctrl | alt, Selected: true, Creating: true}, ModeMove, false},
		{"alt", ModeInput{Mods: alt}, ModeAddDelete, false},
		{"alt shift", ModeInput{Mods: alt | shift}, ModeAddDelete, true},
		{"alt creating", ModeInput{Mods: alt, Creating: true}, ModeCreate, false},
		{"dragging keeps", ModeInput{Mods: ctrl, Dragging: true, Current: ModeAddDelete}, ModeAddDelete, false},
		{"panning keeps", ModeInput{Panning: true, Current: ModeMove}, ModeMove, false},
	}
	for _, tc := range tests {
		got, maybe := DeriveMode(tc.in)
		if got != tc.want || maybe != tc.maybe {
			t.Errorf("%s: got %v,%v want %v,%v", tc.name, got, maybe, tc.want, tc.maybe)
		}
	}
}

func TestCursorFor(t *testing.T) {
	if c := cursorFor(ModeAddDelete, true, true); c != CursorDel {
		t.Errorf("vertex hover cursor %v", c)
	}
	if c := cursorFor(ModeAddDelete, false, true); c != CursorAdd {
		t.Errorf("edge hover cursor %v", c)
	}
	if c := cursorFor(ModeAddDelete, false, false); c != CursorAddDel {
		t.Errorf("idle cursor %v", c)
	}
	if c := cursorFor(ModeLabelPos, false, false); c != CursorLabelPos {
		t.Errorf("label cursor %v", c)
	}
}

func TestDrawAndCloseOnFirstVertex(t *testing.T) {
	e := newTestEditor(t, 200, 200, nil)
	click(e, 10, 10)
	click(e, 50, 10)
	click(e, 50, 50)
	if e.Scratch == nil || e.Scratch.Len() != 3 {
		t.Fatalf("scratch = %+v", e.Scratch)
	}
	e.Motion(pt(11, 9))
	if e.Hover != (Hit{e.Scratch, 0}) {
		t.Fatalf("first vertex not highlighted: %+v", e.Hover)
	}
	click(e, 11, 9)

	m := e.Map()
	if m.Len() != 1 || e.Scratch != nil {
		t.Fatalf("expected committed location, len=%d scratch=%v", m.Len(), e.Scratch)
	}
	loc := m.Locations()[0]
	if loc.Index != 0 || e.Selected != loc {
		t.Errorf("new location not selected: %+v", loc)
	}
	if got := loc.First().Label; got != pt(30, 30) {
		t.Errorf("label %v", got)
	}
	if !e.Project.Modified {
		t.Errorf("modified flag not set")
	}
}

func TestRightClickRemovesLastVertex(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil)
	click(e, 10, 10)
	click(e, 20, 10)
	e.Press(mouse.ButtonRight, pt(0, 0))
	e.Release(mouse.ButtonRight, pt(0, 0))
	if e.Scratch == nil || e.Scratch.Len() != 1 {
		t.Fatalf("scratch = %+v", e.Scratch)
	}
	e.Press(mouse.ButtonRight, pt(0, 0))
	e.Release(mouse.ButtonRight, pt(0, 0))
	if e.Creating() {
		t.Fatalf("expected aborted contour")
	}
	if e.Project.Modified {
		t.Errorf("scratch edits must not mark the project modified")
	}
}

func TestKeysCommitAndAbort(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil)
	for _, p := range []geom.Vertex{pt(1, 1), pt(30, 1), pt(30, 30)} {
		e.AddPoint(p)
	}
	hold(e, key.CodeEscape)
	if e.Creating() {
		t.Fatalf("escape did not abort")
	}
	for _, p := range []geom.Vertex{pt(1, 1), pt(30, 1), pt(30, 30)} {
		e.AddPoint(p)
	}
	hold(e, key.CodeDeleteBackspace)
	if e.Scratch.Len() != 2 {
		t.Fatalf("backspace left %d vertices", e.Scratch.Len())
	}
	hold(e, key.CodeReturnEnter)
	if e.Map().Len() != 0 || !e.Creating() {
		t.Fatalf("two vertices must not commit")
	}
	e.AddPoint(pt(1, 30))
	hold(e, key.CodeReturnEnter)
	if e.Map().Len() != 1 {
		t.Fatalf("enter did not commit")
	}
}

func TestCommitWithoutFreeIndex(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil)
	m := e.Map()
	for i := 0; i < model.MaxLocations; i++ {
		square(m, i, 0, 0, 4, 4)
	}
	for _, p := range []geom.Vertex{pt(1, 1), pt(30, 1), pt(30, 30)} {
		e.AddPoint(p)
	}
	if _, err := e.CommitNewLocation(); !errors.Is(err, ErrNoFreeIndex) {
		t.Fatalf("got %v, want ErrNoFreeIndex", err)
	}
	if !e.Creating() {
		t.Errorf("scratch contour must survive a failed commit")
	}
}

func TestCommitSubShapeMakesHole(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil)
	loc := square(e.Map(), 4, 0, 0, 60, 60)
	e.Select(0, loc)
	for _, p := range []geom.Vertex{pt(20, 20), pt(40, 20), pt(40, 40)} {
		e.AddPoint(p)
	}
	hold(e, key.CodeInsert)
	if e.Creating() {
		t.Fatalf("insert did not commit")
	}
	cs := loc.Contours()
	if len(cs) != 2 || !cs[1].Hole {
		t.Fatalf("expected solid plus hole, got %d contours", len(cs))
	}
	if loc.Contains(pt(35, 25)) {
		t.Errorf("point in hole reported inside")
	}
}

func TestSelectAtCycles(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil)
	m := e.Map()
	a := square(m, 0, 0, 0, 40, 40)
	b := square(m, 1, 20, 20, 60, 60)
	p := pt(30, 30)
	for i, want := range []*model.Location{a, b, a} {
		if got := e.SelectAt(p); got != want {
			t.Fatalf("step %d: got %v want %v", i, got, want)
		}
	}
	if e.SelectAt(pt(90, 90)) != nil || e.Selected != nil {
		t.Fatalf("miss must select the page")
	}
}

func TestSnapToVertex(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil, WithZoom(2), WithViewport(200, 200))
	square(e.Map(), 0, 20, 20, 60, 60)
	hold(e, key.CodeLeftShift)
	e.Motion(pt(43, 37))
	if e.Snapped != pt(40, 40) {
		t.Fatalf("snapped to %v, want 40,40", e.Snapped)
	}
	lift(e, key.CodeLeftShift)
	e.Motion(pt(43, 37))
	if e.Snapped != pt(43, 37) {
		t.Fatalf("snapping without shift: %v", e.Snapped)
	}
}

func TestSnapAxes(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil)
	e.AddPoint(pt(10, 10))
	e.AddPoint(pt(40, 10))
	hold(e, key.CodeLeftShift)
	e.Motion(pt(13, 30))
	if e.Snapped != pt(10, 30) {
		t.Fatalf("axis snap %v, want 10,30", e.Snapped)
	}
	e.Motion(pt(38, 14))
	if e.Snapped != pt(38, 10) {
		t.Fatalf("axis snap %v, want 38,10", e.Snapped)
	}
}

func TestMoveModeDragsVertex(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil)
	loc := square(e.Map(), 0, 10, 10, 50, 50)
	e.Select(0, loc)
	hold(e, key.CodeLeftControl)
	if e.Mode != ModeMove || e.Cursor != CursorMove {
		t.Fatalf("mode %v cursor %v", e.Mode, e.Cursor)
	}
	e.Motion(pt(51, 49))
	if !e.Hover.Valid() || e.Hover.Vertex != 2 {
		t.Fatalf("hover %+v", e.Hover)
	}
	e.Press(mouse.ButtonLeft, pt(51, 49))
	e.Motion(pt(60, 70))
	e.Release(mouse.ButtonLeft, pt(60, 70))
	if got := loc.First().Verts[2]; got != pt(60, 70) {
		t.Fatalf("vertex at %v", got)
	}
	if loc.Bounds.X1 != 60 || loc.Bounds.Y1 != 70 {
		t.Errorf("bounds not updated: %+v", loc.Bounds)
	}
	if e.Edit.Valid() || !e.Project.Modified {
		t.Errorf("edit %+v modified %v", e.Edit, e.Project.Modified)
	}
}

func TestAddDeleteInsertsOnEdge(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil)
	loc := square(e.Map(), 0, 10, 10, 50, 50)
	e.Select(0, loc)
	hold(e, key.CodeLeftAlt)
	e.Motion(pt(30, 11))
	if e.InsertEdge != 0 || e.InsertAt != pt(30, 10) || e.Cursor != CursorAdd {
		t.Fatalf("edge %d at %v cursor %v", e.InsertEdge, e.InsertAt, e.Cursor)
	}
	e.Press(mouse.ButtonLeft, pt(30, 11))
	c := loc.First()
	if c.Len() != 5 || c.Verts[1] != pt(30, 10) {
		t.Fatalf("verts %v", c.Verts)
	}
	if e.Edit != (Hit{c, 1}) {
		t.Errorf("inserted vertex not dragged: %+v", e.Edit)
	}
	e.Release(mouse.ButtonLeft, pt(30, 11))
}

func TestAddDeleteRemovesVertex(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil)
	loc := square(e.Map(), 0, 10, 10, 50, 50)
	e.Select(0, loc)
	hold(e, key.CodeLeftAlt)
	e.Motion(pt(50, 50))
	if e.Cursor != CursorDel {
		t.Fatalf("cursor %v", e.Cursor)
	}
	e.Press(mouse.ButtonLeft, pt(50, 50))
	e.Release(mouse.ButtonLeft, pt(50, 50))
	if got := loc.First().Len(); got != 3 {
		t.Fatalf("%d vertices left", got)
	}
}

func TestDeletingLastSolidAsks(t *testing.T) {
	for _, confirm := range []bool{false, true} {
		s := &script{confirms: []bool{confirm}}
		e := newTestEditor(t, 100, 100, s)
		loc := poly(e.Map(), 0, pt(10, 10), pt(50, 10), pt(50, 50))
		e.Select(0, loc)
		hold(e, key.CodeLeftAlt)
		e.Motion(pt(50, 50))
		if !e.HighlightAll() {
			t.Errorf("triangle delete must highlight the whole shape")
		}
		e.Press(mouse.ButtonLeft, pt(50, 50))
		e.Release(mouse.ButtonLeft, pt(50, 50))
		if len(s.asked) != 1 || s.asked[0] != "Delete location 000 on PAGE000?" {
			t.Fatalf("asked %q", s.asked)
		}
		if deleted := e.Map().Len() == 0; deleted != confirm {
			t.Errorf("confirm=%v deleted=%v", confirm, deleted)
		}
		if confirm && e.Selected != nil {
			t.Errorf("selection must fall back to the page")
		}
	}
}

func TestMaybeDeleteShapeRemovesHole(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil)
	loc := square(e.Map(), 0, 0, 0, 60, 60)
	hole := model.NewContour()
	for _, p := range []geom.Vertex{pt(20, 20), pt(40, 20), pt(40, 40), pt(20, 40)} {
		hole.Append(p)
	}
	loc.AddContourMaybeHole(hole)
	e.Select(0, loc)
	hold(e, key.CodeLeftAlt)
	hold(e, key.CodeLeftShift)
	if !e.MaybeDeleteShape {
		t.Fatalf("shift in add/delete mode must arm whole shape delete")
	}
	e.Motion(pt(20, 20))
	if e.HoverShape != hole {
		t.Fatalf("hovering %+v", e.Hover)
	}
	e.Press(mouse.ButtonLeft, pt(20, 20))
	e.Release(mouse.ButtonLeft, pt(20, 20))
	if len(loc.Contours()) != 1 || hole.Owner != nil {
		t.Fatalf("hole not removed")
	}
}

func TestPanning(t *testing.T) {
	e := newTestEditor(t, 400, 400, nil, WithViewport(100, 100))
	hold(e, key.CodeSpacebar)
	if !e.Panning() || e.Cursor != CursorPan {
		t.Fatalf("space did not start panning")
	}
	e.Press(mouse.ButtonLeft, pt(50, 50))
	e.Motion(pt(30, 20))
	if e.Scroll != image.Pt(20, 30) {
		t.Fatalf("scroll %v", e.Scroll)
	}
	if e.Creating() {
		t.Errorf("panning must not add vertices")
	}
	e.Release(mouse.ButtonLeft, pt(30, 20))
	lift(e, key.CodeSpacebar)
	if e.Panning() || e.Cursor != CursorStd {
		t.Fatalf("panning=%v cursor=%v", e.Panning(), e.Cursor)
	}
}

func TestWheel(t *testing.T) {
	e := newTestEditor(t, 400, 400, nil, WithZoom(2), WithViewport(100, 100))
	e.Scroll = image.Pt(100, 100)
	e.Mods = key.ModAlt
	e.Wheel(pt(20, 30), mouse.ButtonWheelUp)
	if e.Zoom != 3 {
		t.Fatalf("zoom %d", e.Zoom)
	}
	if e.Scroll != image.Pt(160, 165) {
		t.Fatalf("scroll %v, want 160,165", e.Scroll)
	}
	e.Mods = key.ModControl
	e.Wheel(pt(20, 30), mouse.ButtonWheelDown)
	if e.Scroll != image.Pt(160+WheelStep, 165) {
		t.Fatalf("horizontal scroll %v", e.Scroll)
	}
	e.Mods = 0
	e.Wheel(pt(20, 30), mouse.ButtonWheelUp)
	if e.Scroll != image.Pt(160+WheelStep, 165-WheelStep) {
		t.Fatalf("vertical scroll %v", e.Scroll)
	}
}

func TestLabelPos(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil)
	loc := square(e.Map(), 0, 10, 10, 50, 50)
	e.Select(0, loc)
	hold(e, key.CodeLeftControl)
	hold(e, key.CodeLeftAlt)
	if e.Mode != ModeLabelPos || e.LabelTarget != loc.First() {
		t.Fatalf("mode %v target %v", e.Mode, e.LabelTarget)
	}
	e.Press(mouse.ButtonLeft, pt(30, 40))
	e.Motion(pt(33, 44))
	e.Release(mouse.ButtonLeft, pt(33, 44))
	if got := loc.First().Label; got != pt(33, 44) {
		t.Fatalf("label %v", got)
	}
	lift(e, key.CodeLeftAlt)
	if e.Mode != ModeMove || e.LabelTarget != nil {
		t.Fatalf("leaving label mode: %v %v", e.Mode, e.LabelTarget)
	}
}

func TestDeletePageNeedsTwoConfirms(t *testing.T) {
	s := &script{confirms: []bool{true, false}}
	e := newTestEditor(t, 100, 100, s)
	square(e.Map(), 0, 0, 0, 10, 10)
	square(e.Map(), 1, 20, 20, 30, 30)
	if e.DeleteSelected() || e.Map().Len() != 2 {
		t.Fatalf("second refusal must keep locations")
	}
	s.confirms = []bool{true, true}
	if !e.DeleteSelected() || e.Map().Len() != 0 {
		t.Fatalf("page not cleared")
	}
	if !strings.HasPrefix(s.asked[1], "Are you really sure") {
		t.Errorf("asked %q", s.asked)
	}
}

func TestDeleteSelectsNeighbour(t *testing.T) {
	e := newTestEditor(t, 100, 100, Accept{})
	m := e.Map()
	l1 := square(m, 1, 0, 0, 10, 10)
	l3 := square(m, 3, 0, 0, 10, 10)
	l2 := square(m, 2, 0, 0, 10, 10)
	e.Select(0, l2)
	for _, want := range []*model.Location{l3, l1, nil} {
		e.DeleteSelected()
		if e.Selected != want {
			t.Fatalf("selected %v, want %v", e.Selected, want)
		}
	}
}

func TestEditIndexSwaps(t *testing.T) {
	s := &script{inputs: []string{"300", "5"}, confirms: []bool{true}}
	e := newTestEditor(t, 100, 100, s)
	a := square(e.Map(), 0, 0, 0, 10, 10)
	b := square(e.Map(), 5, 20, 20, 30, 30)
	e.Select(0, a)
	if !e.EditIndex() {
		t.Fatalf("EditIndex declined")
	}
	if a.Index != 5 || b.Index != 0 {
		t.Fatalf("indices %d %d", a.Index, b.Index)
	}
	if len(s.alerts) != 1 || !strings.HasPrefix(s.alerts[0], "Invalid index") {
		t.Errorf("alerts %q", s.alerts)
	}
	if s.asked[1] != "New Index: 300" {
		t.Errorf("retry must keep the rejected value: %q", s.asked)
	}
}

func TestSetIndex(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil)
	a := square(e.Map(), 0, 0, 0, 10, 10)
	square(e.Map(), 1, 20, 20, 30, 30)
	if err := e.SetIndex(a, 1, false); !errors.Is(err, ErrIndexInUse) {
		t.Fatalf("got %v", err)
	}
	if err := e.SetIndex(a, model.MaxLocations, true); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("got %v", err)
	}
	if err := e.SetIndex(a, 7, false); err != nil || a.Index != 7 {
		t.Fatalf("got %v index %d", err, a.Index)
	}
}

func TestMoveSelected(t *testing.T) {
	s := &script{inputs: []string{"5 -3"}}
	e := newTestEditor(t, 100, 100, s)
	loc := square(e.Map(), 0, 10, 10, 20, 20)
	e.Select(0, loc)
	if !e.MoveSelected() {
		t.Fatalf("move declined")
	}
	if loc.Bounds != (geom.Rect{X0: 15, Y0: 7, X1: 25, Y1: 17}) {
		t.Fatalf("bounds %+v", loc.Bounds)
	}
	if s.asked[0] != "Move Delta (dX dY): 0 0" {
		t.Errorf("asked %q", s.asked)
	}
	if e.MoveBy(loc, MaxMoveDelta+1, 0) || e.MoveBy(loc, 0, 0) {
		t.Errorf("out of range delta accepted")
	}

	empty := newTestEditor(t, 100, 100, s)
	if empty.MoveSelected() || len(s.alerts) != 1 || s.alerts[0] != "No locations on this page" {
		t.Errorf("alerts %q", s.alerts)
	}
}

func TestInfo(t *testing.T) {
	e := newTestEditor(t, 64, 64, nil)
	loc := square(e.Map(), 0, 2, 2, 10, 10)
	if _, err := e.Info(0); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("got %v", err)
	}
	e.Select(0, loc)
	got, err := e.Info(3)
	if err != nil {
		t.Fatal(err)
	}
	want := "Location 000 on PAGE000\n\nOrigin: 0, 0\nSize: 14 x 14"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestChangePageSkipsGaps(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil)
	e.Project.Maps[3].Image = image.NewNRGBA(image.Rect(0, 0, 10, 10))
	e.Project.MapCount = 4
	if !e.ChangePage(1) || e.Project.Current != 3 {
		t.Fatalf("current %d", e.Project.Current)
	}
	if e.ChangePage(1) {
		t.Fatalf("moved past the last page")
	}
	e.AddPoint(pt(1, 1))
	if e.ChangePage(-1) {
		t.Fatalf("page change while drawing")
	}
}

func TestSetDisplayModeFlushes(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil)
	loc := square(e.Map(), 0, 10, 10, 20, 20)
	loc.Cache = image.NewNRGBA(image.Rect(0, 0, 1, 1))
	e.SetDisplayMode(render.FillAll)
	if loc.Cache == nil {
		t.Fatalf("cache dropped without fade change")
	}
	e.SetDisplayMode(render.FadeNonSel)
	if loc.Cache != nil {
		t.Fatalf("cache kept when entering fade mode")
	}
}

func TestChangeZoomClamps(t *testing.T) {
	e := newTestEditor(t, 100, 100, nil)
	if e.ChangeZoom(0) {
		t.Fatalf("zoom below minimum changed")
	}
	if !e.ChangeZoom(99) || e.Zoom != geom.MaxZoom {
		t.Fatalf("zoom %d", e.Zoom)
	}
}

func TestTitle(t *testing.T) {
	e := newTestEditor(t, 10, 10, nil)
	if got := e.Title("1.0"); !strings.HasPrefix(got, "DarkMapGen 1.0 [Thief] - ") || strings.HasSuffix(got, "*") {
		t.Errorf("title %q", got)
	}
	e.Project.Dual = true
	e.Project.Modified = true
	if got := e.Title("1.0"); !strings.Contains(got, "[SS2]") || !strings.HasSuffix(got, " *") {
		t.Errorf("title %q", got)
	}
	if e.ConfirmClose() {
		t.Errorf("default prompter must refuse to drop changes")
	}
}
