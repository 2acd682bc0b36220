// Package export writes the files the game reads for its automap: one rect
// table per page plus one alpha masked sprite per location.
package export

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/darkmapgen/internal/model"
	"github.com/example/darkmapgen/internal/render"
)

// Format selects the sprite file format.
type Format int

const (
	PNG Format = iota
	TGA
)

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	if f == TGA {
		return ".tga"
	}
	return ".png"
}

func (f Format) String() string { return strings.TrimPrefix(f.Ext(), ".") }

// ParseFormat accepts "png" or "tga".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "png":
		return PNG, nil
	case "tga":
		return TGA, nil
	}
	return PNG, fmt.Errorf("unknown image format %q", s)
}

// Options controls a generation run. Page and Loc select a single page or
// location when non-negative.
type Options struct {
	Dir    string
	Format Format
	AA     int
	Margin int
	Page   int
	Loc    int
}

// DefaultOptions exports every page of p into its project directory.
func DefaultOptions(p *model.Project) Options {
	return Options{Dir: p.Dir, AA: render.DefaultAA, Page: -1, Loc: -1}
}

// Result summarizes a generation run.
type Result struct {
	Pages   int
	Images  int
	Skipped int
	Errors  []error

	page, loc int
}

// Err joins every recorded error.
func (r *Result) Err() error { return errors.Join(r.Errors...) }

// Summary returns the message shown to the user after a run.
func (r *Result) Summary() string {
	switch {
	case len(r.Errors) > 0:
		return "Errors occurred, generated files are incomplete"
	case r.loc >= 0:
		return fmt.Sprintf("Generated files for location %03d on PAGE%03d", r.loc, r.page)
	case r.page >= 0:
		return fmt.Sprintf("Generated files for %d location(s) on PAGE%03d", r.Images, r.page)
	}
	return fmt.Sprintf("Generated files for %d locations on %d page(s)", r.Images, r.Pages)
}

func (r *Result) fail(err error) { r.Errors = append(r.Errors, err) }

// Rect is one entry of a rect table: the sprite position and its exclusive
// far corner in page pixels.
type Rect [4]int16

// RectFileNames returns the rect table names for page n.
func RectFileNames(n int, dual bool) []string {
	names := []string{fmt.Sprintf("p%03dra.bin", n)}
	if dual {
		names = append(names, fmt.Sprintf("p%03dxa.bin", n))
	}
	return names
}

// SpriteNames returns the sprite file stems for a location. In dual mode
// the normal sprite uses the x name and the highlight sprite the r name.
func SpriteNames(page, idx int, dual bool) (normal, highlight string) {
	if dual {
		return fmt.Sprintf("p%03dx%03d", page, idx), fmt.Sprintf("p%03dr%03d", page, idx)
	}
	return fmt.Sprintf("p%03dr%03d", page, idx), ""
}

// WriteRects writes the rect table in little endian int16 records.
func WriteRects(w io.Writer, rects []Rect) error {
	return binary.Write(w, binary.LittleEndian, rects)
}

// Encode writes img in format f.
func Encode(w io.Writer, img *image.NRGBA, f Format) error {
	if f == TGA {
		return EncodeTGA(w, img)
	}
	return png.Encode(w, img)
}

// SaveImage writes img to path in format f.
func SaveImage(path string, img *image.NRGBA, f Format) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(file, img, f); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}

// Generate writes the rect tables and sprites for every selected page.
// Failures are collected in the result; the run carries on with the next
// location.
func Generate(p *model.Project, opts Options) *Result {
	res := &Result{page: opts.Page, loc: opts.Loc}
	if opts.Page < 0 {
		res.loc = -1
	}
	if opts.Dir == "" {
		opts.Dir = p.Dir
	}
	for i := 0; i < p.MapCount; i++ {
		m := p.Maps[i]
		if m.Image == nil || m.Len() == 0 || (opts.Page >= 0 && opts.Page != i) {
			continue
		}
		res.Pages++
		rects := generatePage(p, m, opts, res)
		for _, name := range RectFileNames(i, p.Dual) {
			if err := saveRects(filepath.Join(opts.Dir, name), rects); err != nil {
				res.fail(fmt.Errorf("rects file %s: %w", name, err))
			}
		}
	}
	return res
}

func generatePage(p *model.Project, m *model.Map, opts Options, res *Result) []Rect {
	rects := make([]Rect, m.MaxIndex()+1)
	for idx := range rects {
		loc := m.ByIndex(idx)
		if loc == nil {
			continue
		}
		s, ok := render.Generate(m, loc, opts.Margin, opts.AA)
		if !ok {
			res.Skipped++
			continue
		}
		b := s.Image.Bounds()
		rects[idx] = Rect{
			int16(s.Origin.X), int16(s.Origin.Y),
			int16(s.Origin.X + b.Dx()), int16(s.Origin.Y + b.Dy()),
		}
		res.Images++
		if opts.Loc >= 0 && opts.Loc != idx {
			continue
		}
		if err := saveSprites(p, m, loc, s, opts); err != nil {
			res.fail(err)
		}
	}
	return rects
}

func saveSprites(p *model.Project, m *model.Map, loc *model.Location, s *render.Sprite, opts Options) error {
	normal, hiName := SpriteNames(m.Page, loc.Index, p.Dual)
	path := filepath.Join(opts.Dir, normal+opts.Format.Ext())
	if err := SaveImage(path, s.Image, opts.Format); err != nil {
		return fmt.Errorf("location image %s: %w", path, err)
	}
	if !p.Dual {
		return nil
	}
	hi := render.Highlight(s, m)
	if hi == nil {
		return fmt.Errorf("highlight image %03d on PAGE%03d: no highlight page", loc.Index, m.Page)
	}
	path = filepath.Join(opts.Dir, hiName+opts.Format.Ext())
	if err := SaveImage(path, hi.Image, opts.Format); err != nil {
		return fmt.Errorf("location image %s: %w", path, err)
	}
	return nil
}

func saveRects(path string, rects []Rect) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteRects(f, rects); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
