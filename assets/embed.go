// Package assets embeds the built in editor themes.
package assets

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

// Themes holds themes/*.theme.
//
//go:embed themes/*.theme
var Themes embed.FS

// ThemeNames lists the embedded theme names without extension.
func ThemeNames() []string {
	entries, err := fs.ReadDir(Themes, "themes")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".theme"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
