package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/darkmapgen/internal/export"
	"github.com/example/darkmapgen/internal/geom"
	"github.com/example/darkmapgen/internal/pages"
	"github.com/example/darkmapgen/internal/render"
	"github.com/example/darkmapgen/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if name, ok := strings.CutPrefix(currentSection, "theme."); ok {
				currentTheme = theme.Default()
				currentTheme.Name = name
				cfg.Themes[name] = currentTheme
			}
			continue
		}

		// Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.SetField(currentTheme, key, value)
		case currentSection == "editor":
			err = setEditorField(&cfg.Editor, key, value)
		case currentSection == "export":
			err = setExportField(&cfg.Export, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "output_dir":
		cfg.OutputDir = value
	}
	return nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	return b, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	return n, nil
}

func setEditorField(e *Editor, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "zoom":
		var z int
		if z, err = parseInt(key, value); err == nil {
			e.Zoom = geom.ClampZoom(z)
		}
	case "display_mode":
		e.DisplayMode, err = render.ParseDisplayMode(value)
	case "labels":
		e.Labels, err = parseBool(key, value)
	case "thick_lines":
		e.ThickLines, err = parseBool(key, value)
	case "cursor_guides":
		e.CursorGuides, err = parseBool(key, value)
	case "fill_new":
		e.FillNew, err = parseBool(key, value)
	case "hide_selection":
		e.HideSelection, err = parseBool(key, value)
	}
	return err
}

func setExportField(x *Export, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "aa":
		var n int
		if n, err = parseInt(key, value); err == nil {
			x.AA = render.ClampAA(n)
		}
	case "margin":
		var n int
		if n, err = parseInt(key, value); err == nil {
			x.Margin = max(n, 0)
		}
	case "format":
		x.Format, err = export.ParseFormat(value)
	case "mode":
		x.Mode, err = pages.ParseMode(strings.ToLower(value))
	}
	return err
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := parseBool(key, value)
	if err != nil {
		return err
	}
	switch strings.ToLower(key) {
	case "export":
		n.Export = b
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}
