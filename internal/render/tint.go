package render

import (
	"image"
	"image/color"

	"github.com/example/darkmapgen/internal/model"
)

// DefaultFadeAlpha is the weight of the original colour when fading.
const DefaultFadeAlpha = 48

// Highlight returns a copy of s with its colour taken from the highlight
// page of m. The alpha mask is kept. It returns nil without a highlight page.
func Highlight(s *Sprite, m *model.Map) *Sprite {
	if s == nil || m.Highlight == nil {
		return nil
	}
	img := image.NewNRGBA(s.Image.Rect)
	copy(img.Pix, s.Image.Pix)
	copyRGB(img, m.Highlight, s.Origin)
	return &Sprite{Image: img, Origin: s.Origin}
}

// Dim desaturates and darkens img in place.
func Dim(img *image.NRGBA) {
	b := img.Rect
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			g := (uint32(row[i])*31 + uint32(row[i+1])*61 + uint32(row[i+2])*8) / 100
			g >>= 1
			row[i], row[i+1], row[i+2] = uint8(g), uint8(g), uint8(g)
		}
	}
}

// Fade blends the colour of img towards bg in place. alpha is the weight of
// the original colour out of 255.
func Fade(img *image.NRGBA, bg color.RGBA, alpha uint32) {
	if alpha > 255 {
		alpha = 255
	}
	inv := 255 - alpha
	r := uint32(bg.R) * inv
	g := uint32(bg.G) * inv
	bl := uint32(bg.B) * inv
	b := img.Rect
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			row[i] = uint8((uint32(row[i])*alpha + r) / 255)
			row[i+1] = uint8((uint32(row[i+1])*alpha + g) / 255)
			row[i+2] = uint8((uint32(row[i+2])*alpha + bl) / 255)
		}
	}
}
