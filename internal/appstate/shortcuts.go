package appstate

import (
	"fmt"
	"strings"

	"golang.org/x/mobile/event/key"

	"github.com/example/darkmapgen/internal/editor"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// shortcutModifiers are the modifiers that take part in shortcut lookup.
const shortcutModifiers = key.ModShift | key.ModControl | key.ModAlt | key.ModMeta

// cursorHints stand in for pointer shapes, which shiny cannot change.
var cursorHints = map[editor.Cursor]string{
	editor.CursorMove:     "[move]",
	editor.CursorAdd:      "[+]",
	editor.CursorDel:      "[-]",
	editor.CursorAddDel:   "[+/-]",
	editor.CursorLabelPos: "[label]",
	editor.CursorPan:      "[pan]",
}

// statusLine summarizes the editor state for the bottom bar.
func statusLine(ed *editor.Editor, version string) string {
	var sb strings.Builder
	m := ed.Map()
	if m == nil {
		return "no page"
	}
	fmt.Fprintf(&sb, "PAGE%03d", m.Page)
	if ed.Selected != nil {
		fmt.Fprintf(&sb, " loc %03d", ed.Selected.Index)
	}
	fmt.Fprintf(&sb, " | %d locations | %s | zoom %dx | %s",
		m.Len(), ed.Display, ed.Zoom, ed.Mode)
	if hint, ok := cursorHints[ed.Cursor]; ok {
		sb.WriteString(" " + hint)
	}
	p := ed.View().ClientToMap(ed.Pointer)
	fmt.Fprintf(&sb, " | %d, %d", p.X, p.Y)
	if ed.Scratch != nil {
		fmt.Fprintf(&sb, " | new shape: %d vertices", ed.Scratch.Len())
	}
	if ed.Project.Modified {
		sb.WriteString(" | modified")
	}
	if version != "" {
		sb.WriteString(" | DarkMapGen " + version)
	}
	return sb.String()
}
