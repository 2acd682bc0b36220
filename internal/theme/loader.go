package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/darkmapgen/assets"
)

// Loader finds themes by name or path.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader returns a Loader using the standard theme directories.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "darkmapgen", "themes"),
		SystemDir: "/usr/share/darkmapgen/themes",
	}
}

// Load resolves name as a file path, then an embedded theme, then a file
// in ConfigDir and SystemDir. An empty name yields the default theme.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return parseFile(name)
	}
	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}
	if f, err := assets.Themes.Open("themes/" + filename); err == nil {
		defer f.Close()
		return Parse(f)
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, filename)
		if _, err := os.Stat(p); err == nil {
			return parseFile(p)
		}
	}
	return nil, fmt.Errorf("theme '%s' not found", name)
}

func parseFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}
