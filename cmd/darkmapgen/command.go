package main

import (
	"errors"
	"flag"
	"strconv"
)

// command carries what every subcommand shares: the root options and its
// own flag set.
type command struct {
	r    *root
	fs   *flag.FlagSet
	name string
}

func newCommand(name string, r *root) command {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if r != nil && r.stderr != nil {
		fs.SetOutput(r.stderr)
	}
	return command{r: r, fs: fs, name: name}
}

func (c *command) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *command) Program() string {
	if c.r == nil {
		return c.name
	}
	return c.r.program + " " + c.name
}

// parse parses args for h, turning -h into a UsageError.
func (c *command) parse(h HelpData, args []string) error {
	c.fs.Usage = usageFunc(h)
	if err := c.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &UsageError{of: h}
		}
		return err
	}
	return nil
}

// pageLocFlags registers the usual -page and -loc selectors. -1 means
// unset.
func (c *command) pageLocFlags(page, loc *int) {
	c.fs.IntVar(page, "page", -1, "page number (0-39)")
	c.fs.IntVar(loc, "loc", -1, "location index (0-255)")
}

func parseInt(h HelpData, name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usageErrorf(h, "%s: %q is not a number", name, s)
	}
	return n, nil
}
