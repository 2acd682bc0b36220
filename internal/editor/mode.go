package editor

import "golang.org/x/mobile/event/key"

// Mode is the pointer edit mode, chosen from the held modifiers.
type Mode int

const (
	ModeCreate Mode = iota
	ModeMove
	ModeAddDelete
	ModeLabelPos
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeMove:
		return "move"
	case ModeAddDelete:
		return "add/delete"
	case ModeLabelPos:
		return "label"
	}
	return "unknown"
}

// Cursor names the pointer shape the view should show.
type Cursor int

const (
	CursorStd Cursor = iota
	CursorMove
	CursorAdd
	CursorDel
	CursorAddDel
	CursorLabelPos
	CursorPan
)

const (
	modMove   = key.ModControl
	modInsDel = key.ModAlt
	modSnap   = key.ModShift
)

// ModeInput is everything DeriveMode looks at.
type ModeInput struct {
	Mods     key.Modifiers
	Dragging bool
	Panning  bool
	Creating bool
	Selected bool
	Current  Mode
}

// DeriveMode picks the edit mode for the given modifier state. The second
// result reports whether deleting a vertex should remove its whole contour.
func DeriveMode(in ModeInput) (Mode, bool) {
	if in.Dragging || in.Panning {
		return in.Current, in.Current == ModeAddDelete && in.Mods&modSnap != 0
	}
	move := in.Mods&modMove != 0
	insDel := in.Mods&modInsDel != 0
	switch {
	case move:
		if insDel && !in.Creating && in.Selected {
			return ModeLabelPos, false
		}
		return ModeMove, false
	case insDel:
		if !in.Creating {
			return ModeAddDelete, in.Mods&modSnap != 0
		}
	}
	return ModeCreate, false
}

func cursorFor(m Mode, overVertex, overEdge bool) Cursor {
	switch m {
	case ModeMove:
		return CursorMove
	case ModeLabelPos:
		return CursorLabelPos
	case ModeAddDelete:
		switch {
		case overVertex:
			return CursorDel
		case overEdge:
			return CursorAdd
		}
		return CursorAddDel
	}
	return CursorStd
}

func modifierOf(c key.Code) key.Modifiers {
	switch c {
	case key.CodeLeftShift, key.CodeRightShift:
		return key.ModShift
	case key.CodeLeftControl, key.CodeRightControl:
		return key.ModControl
	case key.CodeLeftAlt, key.CodeRightAlt:
		return key.ModAlt
	}
	return 0
}
