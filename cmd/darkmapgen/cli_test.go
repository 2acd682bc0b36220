package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/darkmapgen/internal/config"
	"github.com/example/darkmapgen/internal/geom"
	"github.com/example/darkmapgen/internal/model"
	"github.com/example/darkmapgen/internal/projectfile"
)

type testRoot struct {
	*root
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestRoot(t *testing.T, input string) *testRoot {
	t.Helper()
	var stdout, stderr bytes.Buffer
	r := newRootWith(config.New(), strings.NewReader(input), &stdout, &stderr)
	return &testRoot{root: r, stdout: &stdout, stderr: &stderr}
}

// newProjectDir writes a 64x64 page000.png and a project file with
// locations 0 and 3 on page 0.
func newProjectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	f, err := os.Create(filepath.Join(dir, "page000.png"))
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode page: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close page: %v", err)
	}

	p := model.NewProject(dir)
	addSquare(p.Maps[0], 0, 10, 10, 20, 20)
	addSquare(p.Maps[0], 3, 30, 30, 50, 40)
	if err := projectfile.Save(p); err != nil {
		t.Fatalf("save project: %v", err)
	}
	return dir
}

func addSquare(m *model.Map, idx, x0, y0, x1, y1 int) {
	loc := m.NewLocation(idx)
	c := model.NewContour()
	for _, v := range []geom.Vertex{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}} {
		c.Append(v)
	}
	c.Label = c.Bounds.Center()
	loc.AddContour(c)
}

func reload(t *testing.T, dir string) *model.Project {
	t.Helper()
	p := model.NewProject(dir)
	if err := projectfile.Load(p); err != nil {
		t.Fatalf("load project: %v", err)
	}
	return p
}

func TestRootUsage(t *testing.T) {
	r := newTestRoot(t, "")
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if want := "Usage: darkmapgen [flags] <command>"; !strings.Contains(uerr.Error(), want) {
		t.Fatalf("help missing %q:\n%s", want, uerr.Error())
	}
	if !strings.Contains(uerr.Error(), "-notify-export") {
		t.Errorf("help does not list the flags:\n%s", uerr.Error())
	}

	if err := r.Run([]string{"bogus"}); !errors.As(err, &uerr) {
		t.Errorf("unknown command: expected usage error, got %v", err)
	}
}

func TestThiefAndShockConflict(t *testing.T) {
	r := newTestRoot(t, "")
	err := r.Run([]string{"-thief", "-shock", "info"})
	if err == nil || !strings.Contains(err.Error(), "cannot be used together") {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		cmd  string
		args []string
		want string
	}{
		{"move", []string{"1", "2"}, "-page is required"},
		{"move", []string{"-page", "0", "1"}, "expected dx and dy"},
		{"move", []string{"-page", "0", "x", "2"}, `dx: "x" is not a number`},
		{"move", []string{"-page", "0", "5000", "0"}, "delta must be within"},
		{"reindex", []string{"-page", "0", "5"}, "-page and -loc are required"},
		{"reindex", []string{"-page", "0", "-loc", "1", "300"}, "invalid index"},
		{"export", []string{"-loc", "1"}, "-loc requires -page"},
		{"export", []string{"-aa", "99"}, "-aa must be between"},
		{"export", []string{"-margin", "-1"}, "-margin must not be negative"},
		{"watch", []string{"extra"}, `unexpected argument "extra"`},
		{"info", []string{"-loc", "2"}, "-loc requires -page"},
		{"delete", []string{"-loc", "2"}, "-page is required"},
		{"copy", []string{"-page", "0"}, "-page and -loc are required"},
		{"edit", []string{"-viewmode", "sparkly"}, "-viewmode"},
		{"edit", []string{"-zoom", "9"}, "-zoom must be between"},
		{"edit", []string{"-winsize", "800by600"}, "-winsize"},
		{"shell", []string{"info"}, `unexpected argument "info"`},
		{"config", []string{"frobnicate"}, "unknown config command"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd+" "+strings.Join(tt.args, " "), func(t *testing.T) {
			r := newTestRoot(t, "")
			err := r.dispatch(tt.cmd, tt.args)
			var uerr *UsageError
			if !errors.As(err, &uerr) {
				t.Fatalf("expected usage error, got %v", err)
			}
			if !strings.Contains(uerr.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", uerr.msg, tt.want)
			}
			if !strings.Contains(uerr.Error(), "Usage: darkmapgen "+tt.cmd) {
				t.Errorf("help not rendered for %s:\n%s", tt.cmd, uerr.Error())
			}
		})
	}
}

func TestHelpFlag(t *testing.T) {
	r := newTestRoot(t, "")
	err := r.dispatch("export", []string{"-h"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	for _, want := range []string{"-tga", "-margin", "-out"} {
		if !strings.Contains(uerr.Error(), want) {
			t.Errorf("export help missing %s", want)
		}
	}
}

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("800x600")
	if err != nil || w != 800 || h != 600 {
		t.Fatalf("parseSize = %d, %d, %v", w, h, err)
	}
	for _, s := range []string{"800", "0x600", "800x", "axb"} {
		if _, _, err := parseSize(s); err == nil {
			t.Errorf("parseSize(%q) accepted", s)
		}
	}
}

func TestMissingDirectory(t *testing.T) {
	r := newTestRoot(t, "")
	err := r.Run([]string{"-dir", filepath.Join(t.TempDir(), "nope"), "info"})
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing directory error, got %v", err)
	}
}

func TestInfo(t *testing.T) {
	dir := newProjectDir(t)
	r := newTestRoot(t, "")
	if err := r.Run([]string{"-dir", dir, "info"}); err != nil {
		t.Fatalf("info: %v", err)
	}
	out := r.stdout.String()
	for _, want := range []string{"1 page(s), 2 location(s)", "PAGE000 (64x64)", "  000\n", "  003\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}

	r = newTestRoot(t, "")
	if err := r.Run([]string{"-dir", dir, "info", "-page", "0", "-loc", "3", "-margin", "0"}); err != nil {
		t.Fatalf("info -loc: %v", err)
	}
	if want := "Location 003 on PAGE000\nOrigin: 30, 30\nSize: 21 x 11\n"; r.stdout.String() != want {
		t.Errorf("info = %q, want %q", r.stdout.String(), want)
	}

	r = newTestRoot(t, "")
	err := r.Run([]string{"-dir", dir, "info", "-page", "0", "-loc", "7"})
	if err == nil || !strings.Contains(err.Error(), "no location 007 on PAGE000") {
		t.Errorf("expected missing location error, got %v", err)
	}
	r = newTestRoot(t, "")
	err = r.Run([]string{"-dir", dir, "info", "-page", "5"})
	if err == nil || !strings.Contains(err.Error(), "PAGE005 has no page image") {
		t.Errorf("expected missing page error, got %v", err)
	}
}

func TestMove(t *testing.T) {
	dir := newProjectDir(t)
	r := newTestRoot(t, "")
	if err := r.Run([]string{"-dir", dir, "move", "-page", "0", "-loc", "0", "--", "-2", "5"}); err != nil {
		t.Fatalf("move: %v", err)
	}
	p := reload(t, dir)
	c := p.Maps[0].ByIndex(0).First()
	if got := c.Verts[0]; got != (geom.Vertex{X: 8, Y: 15}) {
		t.Errorf("moved vertex = %v, want (8,15)", got)
	}
	if got := p.Maps[0].ByIndex(3).First().Verts[0]; got != (geom.Vertex{X: 30, Y: 30}) {
		t.Errorf("other location moved to %v", got)
	}

	r = newTestRoot(t, "")
	if err := r.Run([]string{"-dir", dir, "move", "-page", "0", "1", "1"}); err != nil {
		t.Fatalf("move page: %v", err)
	}
	p = reload(t, dir)
	if got := p.Maps[0].ByIndex(3).First().Verts[0]; got != (geom.Vertex{X: 31, Y: 31}) {
		t.Errorf("page move left location 3 at %v", got)
	}
}

func TestReindex(t *testing.T) {
	dir := newProjectDir(t)
	r := newTestRoot(t, "")
	err := r.Run([]string{"-dir", dir, "reindex", "-page", "0", "-loc", "0", "3"})
	if err == nil || !strings.Contains(err.Error(), "-swap") {
		t.Fatalf("expected collision error, got %v", err)
	}

	r = newTestRoot(t, "")
	if err := r.Run([]string{"-dir", dir, "reindex", "-page", "0", "-loc", "0", "-swap", "3"}); err != nil {
		t.Fatalf("reindex -swap: %v", err)
	}
	p := reload(t, dir)
	if got := p.Maps[0].ByIndex(3).First().Verts[0]; got != (geom.Vertex{X: 10, Y: 10}) {
		t.Errorf("index 3 holds %v, want the old location 0", got)
	}
	if p.Maps[0].ByIndex(0) == nil {
		t.Errorf("swapped location lost its index")
	}
}

func TestDeleteAsks(t *testing.T) {
	dir := newProjectDir(t)
	r := newTestRoot(t, "n\n")
	if err := r.Run([]string{"-dir", dir, "delete", "-page", "0", "-loc", "3"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(r.stdout.String(), "Delete location 003 on PAGE000? [y/N]") {
		t.Errorf("no confirmation asked:\n%s", r.stdout.String())
	}
	if reload(t, dir).Maps[0].Len() != 2 {
		t.Fatalf("declined delete removed a location")
	}

	r = newTestRoot(t, "y\n")
	if err := r.Run([]string{"-dir", dir, "delete", "-page", "0", "-loc", "3"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	m := reload(t, dir).Maps[0]
	if m.Len() != 1 || m.ByIndex(3) != nil {
		t.Fatalf("location 3 not deleted, %d left", m.Len())
	}

	r = newTestRoot(t, "")
	if err := r.Run([]string{"-dir", dir, "delete", "-page", "0", "-yes"}); err != nil {
		t.Fatalf("delete page: %v", err)
	}
	if reload(t, dir).Maps[0].Len() != 0 {
		t.Fatalf("page not cleared")
	}
}

func TestExport(t *testing.T) {
	dir := newProjectDir(t)
	out := t.TempDir()
	r := newTestRoot(t, "")
	if err := r.Run([]string{"-dir", dir, "export", "-out", out, "-tga", "-aa", "1"}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if want := "Generated files for 2 locations on 1 page(s)"; !strings.Contains(r.stdout.String(), want) {
		t.Errorf("summary %q missing %q", r.stdout.String(), want)
	}
	for _, name := range []string{"p000ra.bin", "p000r000.tga", "p000r003.tga"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	st, err := os.Stat(filepath.Join(out, "p000ra.bin"))
	if err == nil && st.Size() != 4*8 {
		t.Errorf("rect table is %d bytes, want %d", st.Size(), 4*8)
	}
}

func TestCopy(t *testing.T) {
	original := copyLocation
	var gotIdx, gotAA int
	copyLocation = func(m *model.Map, loc *model.Location, border, aa int) (string, error) {
		gotIdx, gotAA = loc.Index, aa
		return "location 003 on PAGE000", nil
	}
	t.Cleanup(func() { copyLocation = original })

	dir := newProjectDir(t)
	r := newTestRoot(t, "")
	if err := r.Run([]string{"-dir", dir, "copy", "-page", "0", "-loc", "3", "-aa", "2"}); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if gotIdx != 3 || gotAA != 2 {
		t.Errorf("copied location %d with aa %d", gotIdx, gotAA)
	}
	if !strings.Contains(r.stdout.String(), "Copied location 003 on PAGE000 to the clipboard") {
		t.Errorf("stdout = %q", r.stdout.String())
	}
}

func TestCopyError(t *testing.T) {
	original := copyLocation
	sentinel := errors.New("no display")
	copyLocation = func(*model.Map, *model.Location, int, int) (string, error) { return "", sentinel }
	t.Cleanup(func() { copyLocation = original })

	dir := newProjectDir(t)
	r := newTestRoot(t, "")
	err := r.Run([]string{"-dir", dir, "copy", "-page", "0", "-loc", "0"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestCopyInfo(t *testing.T) {
	original := copyText
	var got string
	copyText = func(text string) error {
		got = text
		return nil
	}
	t.Cleanup(func() { copyText = original })

	dir := newProjectDir(t)
	r := newTestRoot(t, "")
	if err := r.Run([]string{"-dir", dir, "copy", "-page", "0", "-loc", "3", "-info"}); err != nil {
		t.Fatalf("copy -info: %v", err)
	}
	if !strings.HasPrefix(got, "Location 003 on PAGE000\n") || !strings.Contains(got, "Size: ") {
		t.Errorf("clipboard text = %q", got)
	}
	if !strings.Contains(r.stdout.String(), "Copied details of location 003 on PAGE000") {
		t.Errorf("stdout = %q", r.stdout.String())
	}
}

func TestShellExec(t *testing.T) {
	dir := newProjectDir(t)
	r := newTestRoot(t, "")
	err := r.Run([]string{"-dir", dir, "shell",
		"-e", "move -page 0 -loc 3 4 0",
		"-e", `info  -page "0"  -loc 3 -margin 0`,
		"-e", "exit",
		"-e", "delete -page 0 -yes",
	})
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	if !strings.Contains(r.stdout.String(), "Origin: 34, 30") {
		t.Errorf("info did not see the moved location:\n%s", r.stdout.String())
	}
	if reload(t, dir).Maps[0].Len() != 2 {
		t.Errorf("commands after exit were run")
	}
}

func TestShellInteractive(t *testing.T) {
	dir := newProjectDir(t)
	r := newTestRoot(t, "edit\nreindex -page 0 -loc 3 'oops\ninfo\n")
	if err := r.Run([]string{"-dir", dir, "shell"}); err != nil {
		t.Fatalf("shell: %v", err)
	}
	if !strings.Contains(r.stderr.String(), "edit is not available in the shell") {
		t.Errorf("stderr = %q", r.stderr.String())
	}
	if !strings.Contains(r.stderr.String(), "parse") {
		t.Errorf("unbalanced quote not reported: %q", r.stderr.String())
	}
	if !strings.Contains(r.stdout.String(), "PAGE000 (64x64)") {
		t.Errorf("info not run:\n%s", r.stdout.String())
	}
}

func TestConfigPrint(t *testing.T) {
	r := newTestRoot(t, "")
	if err := r.dispatch("config", []string{"print"}); err != nil {
		t.Fatalf("config print: %v", err)
	}
	if !strings.Contains(r.stdout.String(), "[export]") {
		t.Errorf("config print = %q", r.stdout.String())
	}
}

func TestReloadLocations(t *testing.T) {
	dir := newProjectDir(t)
	p := reload(t, dir)
	p.Maps[0].Clear()
	addSquare(p.Maps[5], 9, 1, 1, 4, 4)
	if err := reloadLocations(p); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if p.Maps[0].Len() != 2 || p.Maps[5].Len() != 0 {
		t.Errorf("reload gave %d and %d locations", p.Maps[0].Len(), p.Maps[5].Len())
	}
}
