package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/darkmapgen/internal/editor"
	"github.com/example/darkmapgen/internal/export"
	"github.com/example/darkmapgen/internal/pages"
	"github.com/example/darkmapgen/internal/render"
	"github.com/example/darkmapgen/internal/theme"
)

// Editor holds the view settings of the edit window.
type Editor struct {
	Zoom          int
	DisplayMode   render.DisplayMode
	Labels        bool
	ThickLines    bool
	CursorGuides  bool
	FillNew       bool
	HideSelection bool
}

// Export holds sprite generation settings.
type Export struct {
	AA     int
	Margin int
	Format export.Format
	Mode   pages.Mode
}

// Notify holds notification settings.
type Notify struct {
	Export bool
	Save   bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme string
	// OutputDir receives exported files; empty means the project directory.
	OutputDir string
	Editor    Editor
	Export    Export
	Notify    Notify
	Themes    map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Editor: Editor{
			Zoom:        editor.DefaultZoom,
			DisplayMode: render.Outlines,
			Labels:      true,
		},
		Export: Export{
			AA: render.DefaultAA,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// ExportOptions returns the export options for a project rooted at dir.
func (c *Config) ExportOptions(dir string) export.Options {
	out := c.OutputDir
	if out == "" {
		out = dir
	}
	return export.Options{
		Dir:    out,
		Format: c.Export.Format,
		AA:     c.Export.AA,
		Margin: c.Export.Margin,
		Page:   -1,
		Loc:    -1,
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.OutputDir != "" {
		fmt.Fprintf(&sb, "output_dir = %s\n", c.OutputDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[editor]\n")
	fmt.Fprintf(&sb, "zoom = %d\n", c.Editor.Zoom)
	fmt.Fprintf(&sb, "display_mode = %s\n", c.Editor.DisplayMode)
	fmt.Fprintf(&sb, "labels = %v\n", c.Editor.Labels)
	fmt.Fprintf(&sb, "thick_lines = %v\n", c.Editor.ThickLines)
	fmt.Fprintf(&sb, "cursor_guides = %v\n", c.Editor.CursorGuides)
	fmt.Fprintf(&sb, "fill_new = %v\n", c.Editor.FillNew)
	fmt.Fprintf(&sb, "hide_selection = %v\n", c.Editor.HideSelection)
	sb.WriteString("\n")

	sb.WriteString("[export]\n")
	fmt.Fprintf(&sb, "aa = %d\n", c.Export.AA)
	fmt.Fprintf(&sb, "margin = %d\n", c.Export.Margin)
	fmt.Fprintf(&sb, "format = %s\n", c.Export.Format)
	fmt.Fprintf(&sb, "mode = %s\n", c.Export.Mode)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields() {
			col, _ := t.Get(f)
			fmt.Fprintf(&sb, "%s: %s\n", f, theme.Hex(col))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
