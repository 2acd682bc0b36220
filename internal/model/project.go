// Package model holds the editable automap data: projects, page maps,
// locations and their contours.
package model

const (
	// MaxVerts is the vertex capacity of a single contour.
	MaxVerts = 128
	// MaxLocations is the number of location slots per page.
	MaxLocations = 256
	// MaxMaps is the number of automap pages.
	MaxMaps = 40
)

// Project is a directory of page images plus the locations defined on them.
type Project struct {
	Dir string
	// Maps always holds MaxMaps entries. Pages without an image keep their
	// locations so they survive a save.
	Maps [MaxMaps]*Map
	// MapCount is one past the highest page with an image.
	MapCount int
	Current  int
	Modified bool
	// Dual selects the two image variant used by System Shock 2 style maps.
	Dual bool
}

// NewProject returns an empty project rooted at dir.
func NewProject(dir string) *Project {
	p := &Project{Dir: dir}
	for i := range p.Maps {
		p.Maps[i] = &Map{Page: i}
	}
	return p
}

// CurrentMap returns the page being edited.
func (p *Project) CurrentMap() *Map {
	if p.Current < 0 || p.Current >= MaxMaps {
		return nil
	}
	return p.Maps[p.Current]
}

// Map returns page n, or nil when out of range.
func (p *Project) Map(n int) *Map {
	if n < 0 || n >= MaxMaps {
		return nil
	}
	return p.Maps[n]
}

// HasImage reports whether page n has a background image.
func (p *Project) HasImage(n int) bool {
	m := p.Map(n)
	return m != nil && m.Image != nil
}

// Pages returns the page numbers that have a background image.
func (p *Project) Pages() []int {
	var out []int
	for i, m := range p.Maps {
		if m.Image != nil {
			out = append(out, i)
		}
	}
	return out
}

// LocationCount returns the number of locations over all pages.
func (p *Project) LocationCount() int {
	n := 0
	for _, m := range p.Maps {
		n += m.Len()
	}
	return n
}

// Flush drops every cached view image.
func (p *Project) Flush() {
	for _, m := range p.Maps {
		m.Flush()
	}
}

// ReplaceLocations moves every location of src into p, dropping the ones p
// held. Images and settings of p are kept; src is left empty.
func (p *Project) ReplaceLocations(src *Project) {
	for i, m := range p.Maps {
		m.Clear()
		m.locs, src.Maps[i].locs = src.Maps[i].locs, nil
	}
}
