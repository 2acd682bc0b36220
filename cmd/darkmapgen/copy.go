package main

import (
	"fmt"

	"github.com/example/darkmapgen/internal/clipboard"
	"github.com/example/darkmapgen/internal/editor"
	"github.com/example/darkmapgen/internal/render"
)

// copyCmd puts a location image, or its details, on the clipboard.
type copyCmd struct {
	command
	page   int
	loc    int
	aa     int
	margin int
	info   bool
}

func parseCopyCmd(args []string, r *root) (*copyCmd, error) {
	c := &copyCmd{command: newCommand("copy", r)}
	c.pageLocFlags(&c.page, &c.loc)
	c.fs.IntVar(&c.aa, "aa", r.config.Export.AA, fmt.Sprintf("anti-aliasing supersampling (1-%d)", render.MaxAA))
	c.fs.IntVar(&c.margin, "margin", r.config.Export.Margin, "border margin in pixels")
	c.fs.BoolVar(&c.info, "info", false, "copy the location details as text instead of the image")
	if err := c.parse(c, args); err != nil {
		return nil, err
	}
	if c.page < 0 || c.loc < 0 {
		return nil, usageErrorf(c, "-page and -loc are required")
	}
	if c.aa < 1 || c.aa > render.MaxAA {
		return nil, usageErrorf(c, "-aa must be between 1 and %d", render.MaxAA)
	}
	return c, nil
}

// Swapped out in tests.
var (
	copyLocation = clipboard.CopyLocation
	copyText     = clipboard.WriteText
)

func (c *copyCmd) Run() error {
	p, loc, err := c.r.locate(c.page, c.loc)
	if err != nil {
		return err
	}
	var detail string
	if c.info {
		detail = fmt.Sprintf("details of location %03d on PAGE%03d", loc.Index, c.page)
		err = copyText(editor.Info(p.Map(c.page), loc, c.margin))
	} else {
		detail, err = copyLocation(p.Map(c.page), loc, c.margin, c.aa)
	}
	if err != nil {
		return fmt.Errorf("copy %03d on PAGE%03d: %w", loc.Index, c.page, err)
	}
	c.r.success("Copied " + detail + " to the clipboard")
	c.r.notifyCopy(detail)
	return nil
}
