// Package render turns location contours into alpha masked sprites cut out
// of the page images, plus the dimmed and faded variants shown in the editor.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/example/darkmapgen/internal/geom"
	"github.com/example/darkmapgen/internal/model"
)

const (
	// DefaultAA is the default supersampling factor.
	DefaultAA = 4
	// MaxAA bounds the supersampling factor.
	MaxAA = 8
	// ViewAA caps the supersampling used for on screen previews.
	ViewAA = 4
)

// ClampAA limits aa to [1, MaxAA].
func ClampAA(aa int) int {
	if aa < 1 {
		return 1
	}
	if aa > MaxAA {
		return MaxAA
	}
	return aa
}

// Sprite is a location image cropped to its bounding box. Origin is the
// position of the top left pixel in page coordinates.
type Sprite struct {
	Image  *image.NRGBA
	Origin image.Point
}

// Bounds returns the page rectangle covered by s as inclusive bounds.
func (s *Sprite) Bounds() geom.Rect {
	b := s.Image.Bounds()
	return geom.Rect{X0: s.Origin.X, Y0: s.Origin.Y, X1: s.Origin.X + b.Dx() - 1, Y1: s.Origin.Y + b.Dy() - 1}
}

// Area returns the location bounds grown by border and clamped to the page.
func Area(m *model.Map, loc *model.Location, border int) geom.Rect {
	r := loc.Bounds
	if border > 0 {
		w, h := m.Size()
		r = r.Inset(border).Clamp(w, h)
	}
	return r
}

// Generate renders loc over the page image of m. The mask is rasterized aa
// times larger and box filtered down; the colour comes straight from the
// page. It reports false when the area is empty or the page has no image.
func Generate(m *model.Map, loc *model.Location, border, aa int) (*Sprite, bool) {
	if m.Image == nil || loc.Empty() {
		return nil, false
	}
	aa = ClampAA(aa)
	area := Area(m, loc, border)
	w, h := area.Dx(), area.Dy()
	if w <= 0 || h <= 0 {
		return nil, false
	}
	origin := image.Pt(area.X0, area.Y0)

	samples := mask(loc, origin, w*aa, h*aa, aa)
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	downsample(out, samples, aa)
	copyRGB(out, m.Image, origin)
	return &Sprite{Image: out, Origin: origin}, true
}

// mask returns one byte per sample, 0 or 255. A sample is set when it lies
// in some solid contour and outside every hole of that solid.
func mask(loc *model.Location, origin image.Point, sw, sh, aa int) []uint8 {
	out := make([]uint8, sw*sh)
	for _, g := range loc.Groups {
		solid := coverage(g.Solid, origin, sw, sh, aa)
		holes := make([]*image.Alpha, 0, len(g.Holes))
		for _, hc := range g.Holes {
			holes = append(holes, coverage(hc, origin, sw, sh, aa))
		}
		for i := range out {
			if out[i] != 0 || solid.Pix[i] < 0x80 {
				continue
			}
			inHole := false
			for _, hm := range holes {
				if hm.Pix[i] >= 0x80 {
					inHole = true
					break
				}
			}
			if !inHole {
				out[i] = 0xff
			}
		}
	}
	return out
}

// coverage rasterizes a single ring into a sw x sh alpha image.
func coverage(c *model.Contour, origin image.Point, sw, sh, aa int) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, sw, sh))
	if c.Len() < 3 {
		return dst
	}
	ctr := float32(aa) / 2
	pt := func(v geom.Vertex) (float32, float32) {
		return float32((v.X-origin.X)*aa) + ctr, float32((v.Y-origin.Y)*aa) + ctr
	}
	r := vector.NewRasterizer(sw, sh)
	r.DrawOp = draw.Src
	x, y := pt(c.Verts[0])
	r.MoveTo(x, y)
	for _, v := range c.Verts[1:] {
		x, y = pt(v)
		r.LineTo(x, y)
	}
	r.ClosePath()
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// downsample writes the average of every aa x aa block of samples into the
// alpha channel of dst.
func downsample(dst *image.NRGBA, samples []uint8, aa int) {
	w := dst.Rect.Dx()
	h := dst.Rect.Dy()
	sw := w * aa
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for yy := 0; yy < aa; yy++ {
				row := (y*aa + yy) * sw
				for xx := 0; xx < aa; xx++ {
					sum += int(samples[row+x*aa+xx])
				}
			}
			dst.Pix[y*dst.Stride+x*4+3] = uint8(sum / (aa * aa))
		}
	}
}

// copyRGB fills the colour channels of dst from src at offset, leaving the
// alpha channel untouched. Source alpha is ignored.
func copyRGB(dst *image.NRGBA, src image.Image, offset image.Point) {
	w := dst.Rect.Dx()
	h := dst.Rect.Dy()
	sb := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				sx := sb.Min.X + offset.X + x
				sy := sb.Min.Y + offset.Y + y
				if !(image.Point{sx, sy}).In(sb) {
					continue
				}
				si := n.PixOffset(sx, sy)
				di := y*dst.Stride + x*4
				copy(dst.Pix[di:di+3], n.Pix[si:si+3])
			}
		}
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := image.Pt(sb.Min.X+offset.X+x, sb.Min.Y+offset.Y+y)
			if !p.In(sb) {
				continue
			}
			c := color.NRGBAModel.Convert(src.At(p.X, p.Y)).(color.NRGBA)
			di := y*dst.Stride + x*4
			dst.Pix[di] = c.R
			dst.Pix[di+1] = c.G
			dst.Pix[di+2] = c.B
		}
	}
}
