package main

import (
	"fmt"

	"github.com/example/darkmapgen/internal/editor"
)

// moveCmd translates one location, or every location of a page.
type moveCmd struct {
	command
	page int
	loc  int
	dx   int
	dy   int
}

func parseMoveCmd(args []string, r *root) (*moveCmd, error) {
	c := &moveCmd{command: newCommand("move", r)}
	c.pageLocFlags(&c.page, &c.loc)
	if err := c.parse(c, args); err != nil {
		return nil, err
	}
	if c.page < 0 {
		return nil, usageErrorf(c, "-page is required")
	}
	if c.fs.NArg() != 2 {
		return nil, usageErrorf(c, "expected dx and dy")
	}
	var err error
	if c.dx, err = parseInt(c, "dx", c.fs.Arg(0)); err != nil {
		return nil, err
	}
	if c.dy, err = parseInt(c, "dy", c.fs.Arg(1)); err != nil {
		return nil, err
	}
	if abs(c.dx) > editor.MaxMoveDelta || abs(c.dy) > editor.MaxMoveDelta {
		return nil, usageErrorf(c, "delta must be within ±%d", editor.MaxMoveDelta)
	}
	return c, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (c *moveCmd) Run() error {
	p, loc, err := c.r.locate(c.page, c.loc)
	if err != nil {
		return err
	}
	ed := c.r.newEditor(p, c.page, loc, true)
	if !ed.MoveBy(loc, c.dx, c.dy) {
		fmt.Fprintln(c.r.stdout, "Nothing to move")
		return nil
	}
	what := fmt.Sprintf("all locations on PAGE%03d", c.page)
	if loc != nil {
		what = fmt.Sprintf("location %03d on PAGE%03d", loc.Index, c.page)
	}
	fmt.Fprintf(c.r.stdout, "Moved %s by %d, %d\n", what, c.dx, c.dy)
	return c.r.save(p)
}
