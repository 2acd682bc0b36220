package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/darkmapgen/internal/appstate"
	"github.com/example/darkmapgen/internal/editor"
	"github.com/example/darkmapgen/internal/geom"
	"github.com/example/darkmapgen/internal/render"
)

// editCmd opens the editor window.
type editCmd struct {
	command
	zoom     int
	viewMode string
	winSize  string

	thickLines    bool
	labels        bool
	cursorGuides  bool
	fillNew       bool
	hideSelection bool

	display render.DisplayMode
	width   int
	height  int
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	c := &editCmd{command: newCommand("edit", r)}
	ed := r.config.Editor
	c.fs.IntVar(&c.zoom, "zoom", ed.Zoom, fmt.Sprintf("initial zoom (%d-%d)", geom.MinZoom, geom.MaxZoom))
	c.fs.StringVar(&c.viewMode, "viewmode", ed.DisplayMode.String(), "display mode: 1-5 or outlines, fillsel, fillall, dimmed, fadenonsel")
	c.fs.BoolVar(&c.thickLines, "thicklines", ed.ThickLines, "draw outlines two pixels wide")
	c.fs.BoolVar(&c.labels, "labels", ed.Labels, "show location labels")
	c.fs.BoolVar(&c.cursorGuides, "cguides", ed.CursorGuides, "show cursor guide lines")
	c.fs.BoolVar(&c.fillNew, "fillnew", ed.FillNew, "fill the contour being created")
	c.fs.BoolVar(&c.hideSelection, "hidelines", ed.HideSelection, "hide the selected outline in filled and sprite modes")
	c.fs.StringVar(&c.winSize, "winsize", "", "initial window size as WxH")
	if err := c.parse(c, args); err != nil {
		return nil, err
	}
	if c.fs.NArg() > 0 {
		return nil, usageErrorf(c, "unexpected argument %q", c.fs.Arg(0))
	}
	if c.zoom < geom.MinZoom || c.zoom > geom.MaxZoom {
		return nil, usageErrorf(c, "-zoom must be between %d and %d", geom.MinZoom, geom.MaxZoom)
	}
	d, err := render.ParseDisplayMode(c.viewMode)
	if err != nil {
		return nil, usageErrorf(c, "-viewmode: %v", err)
	}
	c.display = d
	if c.winSize != "" {
		w, h, err := parseSize(c.winSize)
		if err != nil {
			return nil, usageErrorf(c, "-winsize: %v", err)
		}
		c.width, c.height = w, h
	}
	return c, nil
}

// parseSize parses "WxH".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%q is not WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("bad width in %q", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("bad height in %q", s)
	}
	return w, h, nil
}

func (c *editCmd) Run() error {
	p, err := c.r.openProject()
	if err != nil {
		return err
	}
	cfg := *c.r.config
	cfg.Editor.Zoom = c.zoom
	cfg.Editor.DisplayMode = c.display
	cfg.Editor.ThickLines = c.thickLines
	cfg.Editor.Labels = c.labels
	cfg.Editor.CursorGuides = c.cursorGuides
	cfg.Editor.FillNew = c.fillNew
	cfg.Editor.HideSelection = c.hideSelection

	ed := editor.New(p, nil, editor.WithZoom(c.zoom), editor.WithDisplayMode(c.display))
	state := appstate.New(
		appstate.WithEditor(ed),
		appstate.WithConfig(&cfg),
		appstate.WithTheme(c.r.activeTheme),
		appstate.WithNotifier(c.r.notifier),
		appstate.WithVersion(version),
		appstate.WithWindowSize(c.width, c.height),
	)
	state.Run()
	return nil
}
