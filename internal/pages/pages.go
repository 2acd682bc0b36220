// Package pages finds and decodes the automap page images of a project
// directory.
package pages

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"

	"github.com/example/darkmapgen/internal/model"
)

// Mode selects the page naming scheme.
type Mode int

const (
	// ModeAuto picks dual mode when page001a and page001a-hi exist.
	ModeAuto Mode = iota
	// ModeThief expects pageNNN images.
	ModeThief
	// ModeShock expects pageNNNa images plus pageNNNa-hi highlight images.
	ModeShock
)

// ErrNoPages is returned when a directory holds no usable page image.
var ErrNoPages = errors.New("no page images found")

// Extensions lists the page image suffixes tried in order.
var Extensions = []string{".png", ".bmp"}

// ParseMode converts a config or flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "auto":
		return ModeAuto, nil
	case "thief":
		return ModeThief, nil
	case "shock", "ss2":
		return ModeShock, nil
	}
	return ModeAuto, fmt.Errorf("unknown page mode %q", s)
}

func (m Mode) String() string {
	switch m {
	case ModeThief:
		return "thief"
	case ModeShock:
		return "shock"
	}
	return "auto"
}

// Find returns the first existing file named base plus one of Extensions.
func Find(dir, base string) (string, bool) {
	for _, ext := range Extensions {
		p := filepath.Join(dir, base+ext)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, true
		}
	}
	return "", false
}

// DetectDual reports whether dir uses the two image naming scheme.
func DetectDual(dir string) bool {
	if _, ok := Find(dir, "page001a"); !ok {
		return false
	}
	_, ok := Find(dir, "page001a-hi")
	return ok
}

// Resolve turns ModeAuto into a concrete mode for dir.
func Resolve(dir string, mode Mode) Mode {
	if mode != ModeAuto {
		return mode
	}
	if DetectDual(dir) {
		return ModeShock
	}
	return ModeThief
}

// BaseName returns the file name stem of page n.
func BaseName(n int, dual bool) string {
	if dual {
		return fmt.Sprintf("page%03da", n)
	}
	return fmt.Sprintf("page%03d", n)
}

// Decode reads a PNG or BMP file, sniffing the content rather than trusting
// the extension, and returns it as NRGBA.
func Decode(path string) (*image.NRGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("sniff %s: %w", path, err)
	}
	var img image.Image
	switch kind.Extension {
	case "png":
		img, err = png.Decode(bytes.NewReader(data))
	case "bmp":
		img, err = bmp.Decode(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%s: unsupported image type %q", path, kind.MIME.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Load fills the page images of p from p.Dir. Pages may have gaps; a page
// that fails to decode is logged and skipped. p.Dual and p.MapCount are set.
func Load(p *model.Project, mode Mode) error {
	mode = Resolve(p.Dir, mode)
	p.Dual = mode == ModeShock
	p.MapCount = 0

	for i := 0; i < model.MaxMaps; i++ {
		m := p.Maps[i]
		m.Image, m.Highlight = nil, nil
		m.Flush()

		path, ok := Find(p.Dir, BaseName(i, p.Dual))
		if !ok {
			continue
		}
		img, err := Decode(path)
		if err != nil {
			log.Printf("pages: %v", err)
			continue
		}
		if p.Dual {
			hiPath, ok := Find(p.Dir, BaseName(i, true)+"-hi")
			if !ok {
				continue
			}
			hi, err := Decode(hiPath)
			if err != nil {
				log.Printf("pages: %v", err)
				continue
			}
			if hi.Bounds().Size() != img.Bounds().Size() {
				log.Printf("pages: %s and %s are not the same size", path, hiPath)
				continue
			}
			m.Highlight = hi
		}
		m.Image = img
		p.MapCount = i + 1
	}
	if p.MapCount == 0 {
		return fmt.Errorf("%s: %w", p.Dir, ErrNoPages)
	}
	if !p.HasImage(p.Current) {
		p.Current = p.Pages()[0]
	}
	return nil
}

// Exists reports whether dir is an existing directory.
func Exists(dir string) error {
	st, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("project directory %s does not exist", dir)
		}
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
