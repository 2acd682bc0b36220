package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/example/darkmapgen/internal/model"
)

// DisplayMode controls how locations are shown over the page.
type DisplayMode int

const (
	// Outlines draws contour outlines only.
	Outlines DisplayMode = iota + 1
	// FillSel fills the selected location.
	FillSel
	// FillAll fills every location.
	FillAll
	// Dimmed shows every location as a dimmed sprite.
	Dimmed
	// FadeNonSel fades the page and shows the selected location sprite.
	FadeNonSel
)

var displayModeNames = map[DisplayMode]string{
	Outlines:   "outlines",
	FillSel:    "fillsel",
	FillAll:    "fillall",
	Dimmed:     "dimmed",
	FadeNonSel: "fadenonsel",
}

func (d DisplayMode) String() string {
	if s, ok := displayModeNames[d]; ok {
		return s
	}
	return fmt.Sprintf("DisplayMode(%d)", int(d))
}

// ParseDisplayMode accepts a mode name or its number 1..5.
func ParseDisplayMode(s string) (DisplayMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range displayModeNames {
		if s == name || s == fmt.Sprint(int(m)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown display mode %q", s)
}

// ForView renders loc for display at zoom and caches it on the location.
func ForView(m *model.Map, loc *model.Location, dim bool, aa, zoom int) image.Image {
	if loc.Cache != nil {
		return loc.Cache
	}
	if aa > ViewAA {
		aa = ViewAA
	}
	s, ok := Generate(m, loc, 0, aa)
	if !ok {
		return nil
	}
	if dim {
		Dim(s.Image)
	}
	loc.Cache = Scale(s.Image, zoom)
	loc.CachePos = s.Origin.Mul(zoom)
	return loc.Cache
}

// Scale enlarges img by an integer factor with nearest neighbour sampling.
func Scale(img *image.NRGBA, zoom int) *image.NRGBA {
	if zoom <= 1 {
		return img
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()*zoom, b.Dy()*zoom))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out
}

// ZoomedBackground returns the page image of m scaled by zoom, faded
// towards bg when fade is set. The result is cached on the map.
func ZoomedBackground(m *model.Map, zoom int, fade bool, bg color.RGBA) image.Image {
	if m.Image == nil {
		return nil
	}
	if m.Zoomed != nil && m.ZoomedAt == zoom {
		return m.Zoomed
	}
	b := m.Image.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()*zoom, b.Dy()*zoom))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), m.Image, b, xdraw.Src, nil)
	if fade {
		Fade(out, bg, DefaultFadeAlpha)
	}
	m.Zoomed = out
	m.ZoomedAt = zoom
	return out
}
