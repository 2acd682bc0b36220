package main

import (
	"fmt"
	"image"

	"github.com/example/darkmapgen/internal/export"
	"github.com/example/darkmapgen/internal/model"
	"github.com/example/darkmapgen/internal/render"
)

// exportCmd generates the rect tables and location images.
type exportCmd struct {
	command
	page   int
	loc    int
	tga    bool
	aa     int
	margin int
	out    string
}

func newExportCmd(name string, r *root) *exportCmd {
	c := &exportCmd{command: newCommand(name, r)}
	c.pageLocFlags(&c.page, &c.loc)
	c.fs.BoolVar(&c.tga, "tga", r.config.Export.Format == export.TGA, "write TGA images instead of PNG")
	c.fs.IntVar(&c.aa, "aa", r.config.Export.AA, fmt.Sprintf("anti-aliasing supersampling (1-%d)", render.MaxAA))
	c.fs.IntVar(&c.margin, "margin", r.config.Export.Margin, "border margin in pixels around each location")
	c.fs.StringVar(&c.out, "out", r.config.OutputDir, "output directory (default the project directory)")
	return c
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	c := newExportCmd("export", r)
	if err := c.parseArgs(c, args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *exportCmd) parseArgs(h HelpData, args []string) error {
	if err := c.parse(h, args); err != nil {
		return err
	}
	if c.fs.NArg() > 0 {
		return usageErrorf(h, "unexpected argument %q", c.fs.Arg(0))
	}
	if c.loc >= 0 && c.page < 0 {
		return usageErrorf(h, "-loc requires -page")
	}
	if c.loc >= model.MaxLocations {
		return usageErrorf(h, "-loc must be between 0 and %d", model.MaxLocations-1)
	}
	if c.aa < 1 || c.aa > render.MaxAA {
		return usageErrorf(h, "-aa must be between 1 and %d", render.MaxAA)
	}
	if c.margin < 0 {
		return usageErrorf(h, "-margin must not be negative")
	}
	return nil
}

func (c *exportCmd) options(p *model.Project) export.Options {
	opts := c.r.config.ExportOptions(p.Dir)
	if c.out != "" {
		opts.Dir = c.out
	}
	opts.Format = export.PNG
	if c.tga {
		opts.Format = export.TGA
	}
	opts.AA = c.aa
	opts.Margin = c.margin
	opts.Page = c.page
	opts.Loc = c.loc
	return opts
}

func (c *exportCmd) Run() error {
	p, loc, err := c.target()
	if err != nil {
		return err
	}
	return c.generate(p, loc)
}

// target opens the project and checks the page and location filters.
func (c *exportCmd) target() (*model.Project, *model.Location, error) {
	if c.page < 0 {
		p, err := c.r.openProject()
		return p, nil, err
	}
	return c.r.locate(c.page, c.loc)
}

func (c *exportCmd) generate(p *model.Project, loc *model.Location) error {
	if p.LocationCount() == 0 {
		c.r.failure("No locations have been defined, nothing to generate.")
		return nil
	}
	res := export.Generate(p, c.options(p))
	var preview image.Image
	if loc != nil {
		if s, ok := render.Generate(p.Map(c.page), loc, c.margin, c.aa); ok {
			preview = s.Image
		}
	}
	c.r.notifyExport(res.Summary(), preview)
	if err := res.Err(); err != nil {
		c.r.failure(res.Summary())
		return err
	}
	c.r.success(res.Summary())
	if res.Skipped > 0 {
		fmt.Fprintf(c.r.stdout, "%d location(s) without area skipped\n", res.Skipped)
	}
	return nil
}
