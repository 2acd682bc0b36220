package projectfile

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/example/darkmapgen/internal/geom"
	"github.com/example/darkmapgen/internal/model"
)

const sample = `PAG 0
LOC 0 4 (0 0) (100 0) (100 100) (0 100) <50 50>
LOC -0 4 (40 40) (60 40) (60 60) (40 60)
LOC -0 3 (10 10) (20 10) (10 20)
LOC 0 3 (200 0) (220 0) (210 20) <210 10>
LOC -0 3 (205 5) (215 5) (210 15)
PAG 3
LOC 17 3 (5 5) (25 5) (15 25) <15 15>
`

func TestParseSample(t *testing.T) {
	p := model.NewProject(t.TempDir())
	if err := Parse(strings.NewReader(sample), p); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m := p.Maps[0]
	if m.Len() != 1 {
		t.Fatalf("page 0 has %d locations", m.Len())
	}
	loc := m.ByIndex(0)
	cs := loc.Contours()
	if len(cs) != 5 {
		t.Fatalf("expected 5 contours, got %d", len(cs))
	}
	for i, want := range []bool{false, true, true, false, true} {
		if cs[i].Hole != want {
			t.Errorf("contour %d hole = %v, want %v", i, cs[i].Hole, want)
		}
	}
	if loc.SolidCount() != 2 {
		t.Errorf("expected 2 solids, got %d", loc.SolidCount())
	}
	if len(loc.Groups[0].Holes) != 2 || len(loc.Groups[1].Holes) != 1 {
		t.Errorf("holes per solid = %d, %d, want 2, 1", len(loc.Groups[0].Holes), len(loc.Groups[1].Holes))
	}
	if cs[1].Owner != loc || cs[4].Owner != loc {
		t.Errorf("hole owner not set")
	}
	if p.Maps[3].ByIndex(17) == nil {
		t.Errorf("location 17 on page 3 missing")
	}
}

func TestRoundTrip(t *testing.T) {
	p := model.NewProject(t.TempDir())
	if err := Parse(strings.NewReader(sample), p); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, p); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != sample {
		t.Fatalf("round trip mismatch:\n%s", buf.String())
	}
}

func TestMissingLabelDefaults(t *testing.T) {
	p := model.NewProject("")
	src := "PAG 1\nLOC 2 3 (0 0) (10 0) (0 7)\nLOC -2 3 (1 1) (3 1) (1 3)\n"
	if err := Parse(strings.NewReader(src), p); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cs := p.Maps[1].ByIndex(2).Contours()
	if got, want := cs[0].Label, (geom.Vertex{X: 5, Y: 3}); got != want {
		t.Errorf("solid label = %v, want %v", got, want)
	}
	if cs[1].Label != (geom.Vertex{}) {
		t.Errorf("hole label = %v, want 0,0", cs[1].Label)
	}
}

func TestFirstContourForcedSolid(t *testing.T) {
	p := model.NewProject("")
	if err := Parse(strings.NewReader("PAG 0\nLOC -5 3 (0 0) (4 0) (0 4)\n"), p); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Maps[0].ByIndex(5).First().Hole {
		t.Fatalf("first contour must be solid")
	}
}

func TestTolerantSpacing(t *testing.T) {
	p := model.NewProject("")
	src := "  pag   2 \n\nLOC  4 3  ( 0 0)(10  0 )   (0 10) < 3 3 >\n"
	if err := Parse(strings.NewReader(src), p); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	loc := p.Maps[2].ByIndex(4)
	if loc == nil || loc.First().Label != (geom.Vertex{X: 3, Y: 3}) {
		t.Fatalf("unexpected result %+v", loc)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"page out of range": "PAG 40\n",
		"negative page":     "PAG -1\n",
		"index too big":     "PAG 0\nLOC 256 3 (0 0) (1 0) (0 1)\n",
		"index overflows":   "PAG 0\nLOC 1e20 3 (0 0) (10 0) (0 10)\n",
		"hole overflows":    "PAG 0\nLOC -1e300 3 (0 0) (10 0) (0 10)\n",
		"too few vertices":  "PAG 0\nLOC 1 2 (0 0) (1 0)\n",
		"truncated":         "PAG 0\nLOC 1 3 (0 0) (1 0)\n",
		"bad number":        "PAG 0\nLOC 1 3 (0 x) (1 0) (0 1)\n",
		"loc before pag":    "LOC 1 3 (0 0) (1 0) (0 1)\n",
		"unknown directive": "PAG 0\nFOO 1\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			err := Parse(strings.NewReader(src), model.NewProject(""))
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) || pe.Line == 0 {
				t.Fatalf("expected ParseError with line, got %#v", err)
			}
		})
	}
}

func TestFullPage(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("PAG 0\n")
	for i := 0; i <= model.MaxLocations; i++ {
		idx := i % model.MaxLocations
		sb.WriteString("LOC ")
		sb.WriteString(strconv.Itoa(idx))
		sb.WriteString(" 3 (0 0) (1 0) (0 1)\n")
	}
	err := Parse(strings.NewReader(sb.String()), model.NewProject(""))
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Line != model.MaxLocations+2 {
		t.Fatalf("expected failure on the extra location, got %v", err)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	p := model.NewProject(dir)
	if err := Load(p); err != nil {
		t.Fatalf("Load of new project: %v", err)
	}

	loc := p.Maps[5].NewLocation(9)
	c := model.NewContour()
	c.Append(geom.Vertex{X: 1, Y: 1})
	c.Append(geom.Vertex{X: 9, Y: 1})
	c.Append(geom.Vertex{X: 5, Y: 8})
	c.Label = c.Bounds.Center()
	loc.AddContour(c)
	p.Modified = true

	if err := Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p.Modified {
		t.Errorf("Save must clear the modified flag")
	}
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "PAG 5\nLOC 9 3 (1 1) (9 1) (5 8) <5 4>\n"
	if string(data) != want {
		t.Fatalf("saved %q, want %q", data, want)
	}

	q := model.NewProject(dir)
	q.Modified = true
	if err := Load(q); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if q.Modified || q.Maps[5].ByIndex(9) == nil {
		t.Fatalf("reload failed")
	}
}

func TestLoadFailureKeepsLocations(t *testing.T) {
	dir := t.TempDir()
	p := model.NewProject(dir)
	p.Maps[2].Image = image.NewNRGBA(image.Rect(0, 0, 8, 8))
	loc := p.Maps[2].NewLocation(4)
	c := model.NewContour()
	c.Append(geom.Vertex{X: 1, Y: 1})
	c.Append(geom.Vertex{X: 6, Y: 1})
	c.Append(geom.Vertex{X: 1, Y: 6})
	loc.AddContour(c)

	src := "PAG 0\nLOC 1 3 (0 0) (1 0) (0 1)\nLOC 1e20 3 (0 0) (10 0) (0 10)\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Load(p); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
	if p.Maps[0].Len() != 0 {
		t.Errorf("partial page 0 kept %d locations", p.Maps[0].Len())
	}
	if p.Maps[2].ByIndex(4) != loc {
		t.Errorf("existing location lost after a failed load")
	}

	good := "PAG 0\nLOC 1 3 (0 0) (1 0) (0 1)\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(good), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Load(p); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Maps[0].ByIndex(1) == nil || p.Maps[2].Len() != 0 {
		t.Errorf("load did not replace the locations")
	}
	if p.Maps[2].Image == nil {
		t.Errorf("load dropped the page image")
	}
}
