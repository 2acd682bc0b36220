package notify

import (
	"errors"
	"image"
	"os"
	"testing"

	"github.com/example/darkmapgen/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func capture(n *Notifier) *[]sent {
	var out []sent
	n.send = func(title, body string, opts platform.Options) error {
		if opts.IconPath != "" {
			if _, err := os.Stat(opts.IconPath); err != nil {
				return err
			}
		}
		out = append(out, sent{title, body, opts})
		return nil
	}
	return &out
}

func TestDisabledEventsAreSilent(t *testing.T) {
	n := New(DefaultPreferences())
	got := capture(n)
	n.Save("x.txt")
	n.Copy("loc 1")
	n.Export("3 written", nil)
	if len(*got) != 0 {
		t.Fatalf("expected no notifications, got %v", *got)
	}
}

func TestTemplates(t *testing.T) {
	prefs := DefaultPreferences()
	prefs.Events[EventCopy] = EventPreference{Template: "clip: %s"}
	n := New(prefs)
	got := capture(n)
	n.Enable(EventCopy, true)
	n.Enable(EventExport, true)

	n.Copy("")
	n.Export("12 sprites", image.NewNRGBA(image.Rect(0, 0, 2, 2)))

	if len(*got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(*got))
	}
	if (*got)[0].body != "clip: location" || (*got)[0].title != "DarkMapGen" {
		t.Errorf("unexpected copy notification %+v", (*got)[0])
	}
	if (*got)[1].body != "Generated 12 sprites" || (*got)[1].opts.IconPath == "" {
		t.Errorf("unexpected export notification %+v", (*got)[1])
	}
	if _, err := os.Stat((*got)[1].opts.IconPath); !os.IsNotExist(err) {
		t.Errorf("preview file not cleaned up: %v", err)
	}
}

func TestLoadPreferences(t *testing.T) {
	t.Setenv("DARKMAPGEN_NOTIFY_TITLE", "Maps")
	t.Setenv("DARKMAPGEN_NOTIFY_SAVE_TEXT", "wrote %s")
	prefs := LoadPreferences()
	if prefs.Title != "Maps" {
		t.Errorf("title = %q", prefs.Title)
	}
	if prefs.Events[EventSave].Template != "wrote %s" {
		t.Errorf("save template = %q", prefs.Events[EventSave].Template)
	}
	if prefs.Events[EventExport].Template != "Generated %s" {
		t.Errorf("export template = %q", prefs.Events[EventExport].Template)
	}
}

func TestSendErrorIsLogged(t *testing.T) {
	n := New(DefaultPreferences())
	calls := 0
	n.send = func(string, string, platform.Options) error {
		calls++
		return errors.New("no bus")
	}
	n.Enable(EventSave, true)
	n.Save("mapgen.txt")
	if calls != 1 {
		t.Fatalf("send called %d times", calls)
	}
}
