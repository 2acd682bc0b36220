package main

import (
	"fmt"
	"strings"

	"github.com/example/darkmapgen/internal/editor"
	"github.com/example/darkmapgen/internal/model"
)

// infoCmd prints the location tree or the exported area of one location.
type infoCmd struct {
	command
	page   int
	loc    int
	margin int
}

func parseInfoCmd(args []string, r *root) (*infoCmd, error) {
	c := &infoCmd{command: newCommand("info", r)}
	c.pageLocFlags(&c.page, &c.loc)
	c.fs.IntVar(&c.margin, "margin", r.config.Export.Margin, "border margin in pixels")
	if err := c.parse(c, args); err != nil {
		return nil, err
	}
	if c.fs.NArg() > 0 {
		return nil, usageErrorf(c, "unexpected argument %q", c.fs.Arg(0))
	}
	if c.loc >= 0 && c.page < 0 {
		return nil, usageErrorf(c, "-loc requires -page")
	}
	if c.margin < 0 {
		return nil, usageErrorf(c, "-margin must not be negative")
	}
	return c, nil
}

func (c *infoCmd) Run() error {
	if c.loc >= 0 {
		p, loc, err := c.r.locate(c.page, c.loc)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.r.stdout, strings.ReplaceAll(editor.Info(p.Map(c.page), loc, c.margin), "\n\n", "\n"))
		return nil
	}
	p, err := c.r.openProject()
	if err != nil {
		return err
	}
	if c.page >= 0 {
		if _, _, err := c.r.locate(c.page, -1); err != nil {
			return err
		}
	}
	writeTree(c.r, p, c.page)
	return nil
}

// writeTree lists the pages and their location indices, like the editor
// sidebar. A negative page lists every page.
func writeTree(r *root, p *model.Project, page int) {
	game := "Thief"
	if p.Dual {
		game = "System Shock 2"
	}
	if page < 0 {
		fmt.Fprintf(r.stdout, "%s project %s: %d page(s), %d location(s)\n", game, p.Dir, len(p.Pages()), p.LocationCount())
	}
	for _, n := range p.Pages() {
		if page >= 0 && n != page {
			continue
		}
		m := p.Map(n)
		w, h := m.Size()
		fmt.Fprintf(r.stdout, "PAGE%03d (%dx%d)\n", n, w, h)
		for _, loc := range m.Sorted() {
			fmt.Fprintf(r.stdout, "  %03d", loc.Index)
			if loc.IsMulti() {
				fmt.Fprintf(r.stdout, " (%d contours)", len(loc.Contours()))
			}
			fmt.Fprintln(r.stdout)
		}
	}
}
