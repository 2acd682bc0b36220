// Package projectfile reads and writes DarkMapGen.proj, the line based
// text file listing every location contour of a project.
package projectfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/example/darkmapgen/internal/model"
)

// FileName is the project file name inside the project directory.
const FileName = "DarkMapGen.proj"

// Path returns the project file path for dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load replaces the locations of p with the project file of p.Dir. A
// missing file is a new project and not an error. The modified flag is
// cleared either way, and p keeps its locations when the file fails to parse.
func Load(p *model.Project) error {
	f, err := os.Open(Path(p.Dir))
	if errors.Is(err, fs.ErrNotExist) {
		p.ReplaceLocations(model.NewProject(p.Dir))
		p.Modified = false
		return nil
	}
	if err != nil {
		return fmt.Errorf("open project: %w", err)
	}
	defer f.Close()

	parsed := model.NewProject(p.Dir)
	if err := Parse(f, parsed); err != nil {
		p.Modified = false
		return fmt.Errorf("load %s: %w", Path(p.Dir), err)
	}
	p.ReplaceLocations(parsed)
	p.Modified = false
	return nil
}

// Save writes p to its project file and clears the modified flag.
func Save(p *model.Project) error {
	path := Path(p.Dir)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	if err := Write(f, p); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	p.Modified = false
	return nil
}

// Write renders every page that has locations, images or not. Holes are
// written with a negative index and solids carry their label.
func Write(w io.Writer, p *model.Project) error {
	bw := bufio.NewWriter(w)
	for j, m := range p.Maps {
		if m.Len() == 0 {
			continue
		}
		fmt.Fprintf(bw, "PAG %d\n", j)
		for _, loc := range m.Locations() {
			for _, c := range loc.Contours() {
				if c.Hole {
					fmt.Fprintf(bw, "LOC -%d %d", loc.Index, c.Len())
				} else {
					fmt.Fprintf(bw, "LOC %d %d", loc.Index, c.Len())
				}
				for _, v := range c.Verts {
					fmt.Fprintf(bw, " (%d %d)", v.X, v.Y)
				}
				if !c.Hole {
					fmt.Fprintf(bw, " <%d %d>", c.Label.X, c.Label.Y)
				}
				bw.WriteString("\n")
			}
		}
	}
	return bw.Flush()
}
