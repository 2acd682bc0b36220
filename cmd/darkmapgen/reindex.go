package main

import (
	"fmt"

	"github.com/example/darkmapgen/internal/editor"
)

// reindexCmd gives a location a new index.
type reindexCmd struct {
	command
	page  int
	loc   int
	swap  bool
	index int
}

func parseReindexCmd(args []string, r *root) (*reindexCmd, error) {
	c := &reindexCmd{command: newCommand("reindex", r)}
	c.pageLocFlags(&c.page, &c.loc)
	c.fs.BoolVar(&c.swap, "swap", false, "swap indices when the new index is already in use")
	if err := c.parse(c, args); err != nil {
		return nil, err
	}
	if c.page < 0 || c.loc < 0 {
		return nil, usageErrorf(c, "-page and -loc are required")
	}
	if c.fs.NArg() != 1 {
		return nil, usageErrorf(c, "expected the new index")
	}
	idx, err := editor.ParseIndex(c.fs.Arg(0))
	if err != nil {
		return nil, usageErrorf(c, "%v", err)
	}
	c.index = idx
	return c, nil
}

func (c *reindexCmd) Run() error {
	p, loc, err := c.r.locate(c.page, c.loc)
	if err != nil {
		return err
	}
	old := loc.Index
	ed := c.r.newEditor(p, c.page, loc, true)
	if err := ed.SetIndex(loc, c.index, c.swap); err != nil {
		return fmt.Errorf("reindex: %w (use -swap to exchange indices)", err)
	}
	if old == c.index {
		fmt.Fprintln(c.r.stdout, "Index unchanged")
		return nil
	}
	fmt.Fprintf(c.r.stdout, "Location %03d on PAGE%03d is now %03d\n", old, c.page, c.index)
	return c.r.save(p)
}
