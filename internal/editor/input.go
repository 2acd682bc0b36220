package editor

import (
	"errors"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/darkmapgen/internal/geom"
)

// WheelStep is the scroll distance of one wheel notch in client pixels.
const WheelStep = 48

// Mouse dispatches a pointer event. X and Y are viewport pixels.
func (e *Editor) Mouse(ev mouse.Event) {
	pos := geom.Vertex{X: int(ev.X), Y: int(ev.Y)}
	if ev.Modifiers != e.Mods {
		e.Mods = ev.Modifiers
		e.UpdateMode()
	}
	switch {
	case ev.Button.IsWheel():
		if ev.Direction != mouse.DirRelease {
			e.Wheel(pos, ev.Button)
		}
	case ev.Direction == mouse.DirPress:
		e.Press(ev.Button, pos)
	case ev.Direction == mouse.DirRelease:
		e.Release(ev.Button, pos)
	default:
		e.Motion(pos)
	}
}

// Press handles a button press at viewport position pos.
func (e *Editor) Press(b mouse.Button, pos geom.Vertex) {
	e.updatePointer(pos)
	if e.dragging != mouse.ButtonNone {
		return
	}
	if e.panning {
		if b == mouse.ButtonLeft {
			e.panFrom = pos
			e.panScroll = e.Scroll
			e.dragging = b
		}
		return
	}
	v := e.View()
	switch b {
	case mouse.ButtonLeft:
		e.dragging = b
		e.pressLeft(v)
	case mouse.ButtonRight:
		e.dragging = b
		if e.Mode != ModeCreate {
			return
		}
		if e.Creating() {
			e.DeleteLastPoint()
			return
		}
		e.SelectAt(v.ClientToMap(e.Pointer))
	case mouse.ButtonMiddle:
		if !e.Creating() {
			return
		}
		if e.Mods&modInsDel != 0 {
			e.commit(e.CommitSubShape())
			return
		}
		_, err := e.CommitNewLocation()
		e.commit(err)
	}
}

func (e *Editor) pressLeft(v geom.View) {
	switch e.Mode {
	case ModeCreate:
		if e.Creating() && e.Hover == (Hit{e.Scratch, 0}) && e.Scratch.Len() > 2 {
			_, err := e.CommitNewLocation()
			e.commit(err)
			return
		}
		e.AddPoint(v.ClientToMap(e.Snapped))
		e.Hover = e.Edit
		e.HoverShape = e.EditShape
	case ModeMove:
		if e.Hover.Valid() {
			e.Edit = e.Hover
			e.EditShape = e.HoverShape
		}
	case ModeAddDelete:
		switch {
		case e.Hover.Valid():
			if e.DeletePoint(e.HoverShape, e.Hover.Vertex) {
				e.Hover = Hit{}
				e.HoverShape = nil
			}
			e.UpdateMode()
		case e.InsertEdge >= 0 && e.HoverShape != nil:
			e.InsertPoint()
		}
	case ModeLabelPos:
		if e.Selected != nil && e.Selected.IsMultiSolid() && e.LabelTarget == nil {
			if c := e.Selected.ContourAt(v.ClientToMap(e.Pointer)); c != nil && !c.Hole {
				e.LabelTarget = c
			}
		}
		e.SetLabel(v.ClientToMap(e.Pointer))
	}
}

// commit reports commit failures other than an incomplete contour, which
// is silently ignored.
func (e *Editor) commit(err error) {
	if err != nil && !errors.Is(err, ErrIncomplete) {
		logf("%v", err)
	}
}

// Release ends the drag started by button b.
func (e *Editor) Release(b mouse.Button, pos geom.Vertex) {
	if b != e.dragging {
		return
	}
	e.updatePointer(pos)
	e.dragging = mouse.ButtonNone
	e.Edit = Hit{}
	if !e.Creating() {
		e.EditShape = nil
	}
	e.UpdateMode()
	e.updateHover()
}

// Motion handles pointer movement with or without a held button.
func (e *Editor) Motion(pos geom.Vertex) {
	e.updatePointer(pos)
	if e.dragging == mouse.ButtonNone {
		if !e.panning {
			e.updateHover()
		}
		return
	}
	if e.panning {
		e.ScrollTo(e.panScroll.X+e.panFrom.X-pos.X, e.panScroll.Y+e.panFrom.Y-pos.Y)
		return
	}
	v := e.View()
	switch {
	case e.Edit.Valid():
		e.UpdatePoint(v.ClientToMap(e.Snapped))
	case e.Mode == ModeLabelPos && e.dragging == mouse.ButtonLeft:
		e.SetLabel(v.ClientToMap(e.Pointer))
	}
}

// Wheel scrolls the view, or zooms around the pointer with the
// insert/delete modifier held. Control turns vertical notches into
// horizontal scrolling.
func (e *Editor) Wheel(pos geom.Vertex, b mouse.Button) {
	if e.dragging != mouse.ButtonNone {
		return
	}
	dx, dy := 0, 0
	switch b {
	case mouse.ButtonWheelUp:
		dy = -1
	case mouse.ButtonWheelDown:
		dy = 1
	case mouse.ButtonWheelLeft:
		dx = -1
	case mouse.ButtonWheelRight:
		dx = 1
	}
	switch {
	case e.Mods&modInsDel != 0:
		if dy != 0 {
			e.ZoomAt(pos, -dy)
		}
	case e.Mods&modMove != 0:
		e.ScrollTo(e.Scroll.X+(dx+dy)*WheelStep, e.Scroll.Y)
	default:
		e.ScrollTo(e.Scroll.X+dx*WheelStep, e.Scroll.Y+dy*WheelStep)
	}
	e.updatePointer(pos)
}

// Key handles editing keys. Modifier keys update the mode. It reports
// whether the key was consumed.
func (e *Editor) Key(ev key.Event) bool {
	if mod := modifierOf(ev.Code); mod != 0 {
		if ev.Direction == key.DirRelease {
			e.Mods &^= mod
		} else {
			e.Mods |= mod
		}
		if !e.panning {
			e.updatePointer(e.viewPos)
		}
		e.UpdateMode()
		return true
	}
	if ev.Direction == key.DirRelease {
		if ev.Code != key.CodeSpacebar {
			return false
		}
		if e.panning {
			e.panning = false
			e.Cursor = e.panCursor
		}
		e.UpdateMode()
		return true
	}
	if e.panning {
		return true
	}
	switch ev.Code {
	case key.CodeEscape:
		e.AbortShape()
		return true
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		if e.Creating() {
			_, err := e.CommitNewLocation()
			e.commit(err)
		}
		return true
	case key.CodeDeleteForward, key.CodeDeleteBackspace:
		if e.Creating() {
			e.DeleteLastPoint()
			return true
		}
		e.DeleteSelected()
		return true
	case key.CodeInsert:
		if e.Creating() {
			e.commit(e.CommitSubShape())
			return true
		}
	case key.CodeSpacebar:
		if e.dragging == mouse.ButtonNone && e.Mode == ModeCreate {
			e.panning = true
			e.panCursor = e.Cursor
			e.Cursor = CursorPan
		}
		return true
	}
	return false
}
