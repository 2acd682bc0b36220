package model

import (
	"image"
	"sort"
)

// Map is one page of the automap: its background images and the locations
// drawn over it.
type Map struct {
	Page  int
	Image image.Image
	// Highlight is the second page raster used in dual mode.
	Highlight image.Image

	// Zoomed caches the scaled background for the view at zoom ZoomedAt.
	Zoomed   image.Image
	ZoomedAt int

	locs []*Location
}

// Size returns the background size, or zero without an image.
func (m *Map) Size() (int, int) {
	if m.Image == nil {
		return 0, 0
	}
	b := m.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Len returns the number of locations.
func (m *Map) Len() int { return len(m.locs) }

// Locations returns the locations in storage order. The slice must not be
// modified.
func (m *Map) Locations() []*Location { return m.locs }

// Sorted returns the locations ordered by index.
func (m *Map) Sorted() []*Location {
	out := append([]*Location(nil), m.locs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Full reports whether no more locations fit.
func (m *Map) Full() bool { return len(m.locs) >= MaxLocations }

// FreeIndex returns the lowest unused location index, or -1.
func (m *Map) FreeIndex() int {
	var used [MaxLocations]bool
	for _, l := range m.locs {
		used[l.Index] = true
	}
	for i, u := range used {
		if !u {
			return i
		}
	}
	return -1
}

// ByIndex returns the location with the given index, or nil.
func (m *Map) ByIndex(idx int) *Location {
	if i := m.Position(idx); i >= 0 {
		return m.locs[i]
	}
	return nil
}

// Position returns the storage position of the location with the given
// index, or -1.
func (m *Map) Position(idx int) int {
	if idx < 0 {
		return -1
	}
	for i, l := range m.locs {
		if l.Index == idx {
			return i
		}
	}
	return -1
}

// PositionOf returns the storage position of loc, or -1.
func (m *Map) PositionOf(loc *Location) int {
	for i, l := range m.locs {
		if l == loc {
			return i
		}
	}
	return -1
}

// NewLocation appends an empty location with the given index. It returns
// nil when the map is full or the index is out of range.
func (m *Map) NewLocation(idx int) *Location {
	if m.Full() || idx < 0 || idx >= MaxLocations {
		return nil
	}
	l := &Location{Index: idx}
	m.locs = append(m.locs, l)
	return l
}

// Delete removes loc and compacts the storage. Remaining locations keep
// their identity so contour owners stay valid.
func (m *Map) Delete(loc *Location) bool {
	i := m.PositionOf(loc)
	if i < 0 {
		return false
	}
	loc.Invalidate()
	m.locs = append(m.locs[:i], m.locs[i+1:]...)
	return true
}

// Clear removes every location.
func (m *Map) Clear() {
	m.Flush()
	m.locs = nil
}

// SetIndex assigns idx to loc. When another location already uses idx the
// two indices are swapped and that location is returned.
func (m *Map) SetIndex(loc *Location, idx int) *Location {
	if loc.Index == idx {
		return nil
	}
	other := m.ByIndex(idx)
	if other != nil {
		other.Index = loc.Index
	}
	loc.Index = idx
	return other
}

// MaxIndex returns the highest location index in use, or -1.
func (m *Map) MaxIndex() int {
	hi := -1
	for _, l := range m.locs {
		if l.Index > hi {
			hi = l.Index
		}
	}
	return hi
}

// Flush drops the zoomed background and every cached location image.
func (m *Map) Flush() {
	m.Zoomed = nil
	m.ZoomedAt = 0
	for _, l := range m.locs {
		l.Invalidate()
	}
}
