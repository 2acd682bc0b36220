package main

import (
	"fmt"
)

// deleteCmd removes one location, or every location of a page.
type deleteCmd struct {
	command
	page int
	loc  int
	yes  bool
}

func parseDeleteCmd(args []string, r *root) (*deleteCmd, error) {
	c := &deleteCmd{command: newCommand("delete", r)}
	c.pageLocFlags(&c.page, &c.loc)
	c.fs.BoolVar(&c.yes, "yes", false, "do not ask for confirmation")
	if err := c.parse(c, args); err != nil {
		return nil, err
	}
	if c.page < 0 {
		return nil, usageErrorf(c, "-page is required")
	}
	if c.fs.NArg() > 0 {
		return nil, usageErrorf(c, "unexpected argument %q", c.fs.Arg(0))
	}
	return c, nil
}

func (c *deleteCmd) Run() error {
	p, loc, err := c.r.locate(c.page, c.loc)
	if err != nil {
		return err
	}
	if loc == nil && p.Map(c.page).Len() == 0 {
		fmt.Fprintf(c.r.stdout, "No locations on PAGE%03d\n", c.page)
		return nil
	}
	ed := c.r.newEditor(p, c.page, loc, c.yes)
	if !ed.DeleteSelected() {
		fmt.Fprintln(c.r.stdout, "Cancelled")
		return nil
	}
	if loc != nil {
		fmt.Fprintf(c.r.stdout, "Deleted location %03d on PAGE%03d\n", loc.Index, c.page)
	} else {
		fmt.Fprintf(c.r.stdout, "Deleted all locations on PAGE%03d\n", c.page)
	}
	return c.r.save(p)
}
