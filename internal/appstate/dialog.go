package appstate

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

type dialogKind int

const (
	dialogConfirm dialogKind = iota
	dialogInput
	dialogAlert
)

// hintPrefix marks the key hint line of a dialog.
const hintPrefix = "\x00"

type dialog struct {
	kind  dialogKind
	text  string
	value string
}

func (d *dialog) lines() []string {
	out := strings.Split(d.text, "\n")
	switch d.kind {
	case dialogConfirm:
		out = append(out, hintPrefix+"Y/Enter: yes   N/Esc: no")
	case dialogInput:
		out = append(out, d.value+"|", hintPrefix+"Enter: OK   Esc: cancel")
	case dialogAlert:
		out = append(out, hintPrefix+"Enter: close")
	}
	return out
}

// key applies a key press. done reports that the dialog closed and ok
// whether it was accepted.
func (d *dialog) key(e key.Event) (done, ok bool) {
	switch e.Code {
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		return true, true
	case key.CodeEscape:
		return true, d.kind == dialogAlert
	}
	switch d.kind {
	case dialogConfirm:
		switch e.Rune {
		case 'y', 'Y':
			return true, true
		case 'n', 'N':
			return true, false
		}
	case dialogAlert:
		if e.Code == key.CodeSpacebar {
			return true, true
		}
	case dialogInput:
		if e.Code == key.CodeDeleteBackspace {
			if _, n := utf8.DecodeLastRuneInString(d.value); n > 0 {
				d.value = d.value[:len(d.value)-n]
			}
			return false, false
		}
		if e.Rune >= ' ' && e.Modifiers&(key.ModControl|key.ModMeta) == 0 {
			d.value += string(e.Rune)
		}
	}
	return false, false
}

// eventQueue is the part of a shiny window a modal dialog needs.
type eventQueue interface {
	NextEvent() interface{}
	Send(event interface{})
}

// modal implements editor.Prompter by running a nested event loop on the
// window until the dialog is answered. Paint and size events keep being
// served so the window stays responsive.
type modal struct {
	events eventQueue
	// show repaints with d on top; nil removes the dialog.
	show   func(d *dialog)
	resize func(size.Event)
	// done is called after each dialog, e.g. to forget modifier keys whose
	// release the dialog swallowed.
	done func()
}

func (m *modal) run(d *dialog) bool {
	m.show(d)
	defer func() {
		m.show(nil)
		if m.done != nil {
			m.done()
		}
	}()
	for {
		switch e := m.events.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				// Let the main loop see it too.
				m.events.Send(e)
				return false
			}
		case size.Event:
			if m.resize != nil {
				m.resize(e)
			}
			m.show(d)
		case paint.Event:
			m.show(d)
		case key.Event:
			if e.Direction == key.DirRelease {
				continue
			}
			if done, ok := d.key(e); done {
				return ok
			} else if d.kind == dialogInput {
				m.show(d)
			}
		}
	}
}

// Confirm asks a yes/no question.
func (m *modal) Confirm(msg string) bool {
	return m.run(&dialog{kind: dialogConfirm, text: msg})
}

// Input asks for a line of text, starting from value.
func (m *modal) Input(label, value string) (string, bool) {
	d := &dialog{kind: dialogInput, text: label, value: value}
	if !m.run(d) {
		return "", false
	}
	return d.value, true
}

// Alert shows msg until dismissed.
func (m *modal) Alert(msg string) {
	m.run(&dialog{kind: dialogAlert, text: msg})
}
