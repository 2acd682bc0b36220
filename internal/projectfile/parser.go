package projectfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/example/darkmapgen/internal/geom"
	"github.com/example/darkmapgen/internal/model"
)

// ErrFormat is wrapped by every ParseError.
var ErrFormat = errors.New("malformed project file")

// ParseError reports a fatal problem on a line of the project file.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Unwrap exposes ErrFormat and the underlying cause.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormat, e.Err}
	}
	return []error{ErrFormat}
}

// Parse reads locations from r into p. Locations already in p are kept and
// new contours for an existing index are added to it.
func Parse(r io.Reader, p *model.Project) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var cur *model.Map
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fail := func(msg string, err error) error {
			return &ParseError{Line: lineNo, Msg: msg, Err: err}
		}

		s := &scan{src: line}
		cmd := s.word()
		switch strings.ToUpper(cmd) {
		case "PAG":
			n, err := s.int()
			if err != nil {
				return fail("bad page number", err)
			}
			if n < 0 || n >= model.MaxMaps {
				return fail(fmt.Sprintf("page %d out of range", n), nil)
			}
			cur = p.Maps[n]
		case "LOC":
			if cur == nil {
				return fail("LOC before PAG", nil)
			}
			if err := parseLoc(s, cur); err != nil {
				var pe *ParseError
				if errors.As(err, &pe) {
					pe.Line = lineNo
					return pe
				}
				return fail("bad location", err)
			}
		default:
			return fail(fmt.Sprintf("unknown directive %q", cmd), nil)
		}
	}
	return scanner.Err()
}

func parseLoc(s *scan, m *model.Map) error {
	if m.Full() {
		return &ParseError{Msg: fmt.Sprintf("too many locations on page %d", m.Page)}
	}
	d, err := s.float()
	if err != nil {
		return &ParseError{Msg: "bad location index", Err: err}
	}
	// -0 marks a hole of location 0
	hole := math.Signbit(d)
	if math.IsNaN(d) || math.Abs(d)+0.1 >= model.MaxLocations {
		return &ParseError{Msg: fmt.Sprintf("location index %s out of range", strconv.FormatFloat(d, 'g', -1, 64))}
	}
	idx := int(math.Abs(d) + 0.1)
	n, err := s.int()
	if err != nil {
		return &ParseError{Msg: "bad vertex count", Err: err}
	}
	if n < 3 || n > model.MaxVerts {
		return &ParseError{Msg: fmt.Sprintf("invalid vertex count %d", n)}
	}

	c := model.NewContour()
	for i := 0; i < n; i++ {
		v, err := s.pair('(', ')')
		if err != nil {
			return &ParseError{Msg: fmt.Sprintf("vertex %d", i), Err: err}
		}
		c.Verts = append(c.Verts, v)
	}
	c.UpdateBounds()

	loc := m.ByIndex(idx)
	if loc == nil {
		// the first contour of a location is always solid
		hole = false
	}
	c.Hole = hole

	if s.peek() == '<' {
		lbl, err := s.pair('<', '>')
		if err != nil {
			return &ParseError{Msg: "label", Err: err}
		}
		c.Label = lbl
	} else if !hole {
		c.Label = c.Bounds.Center()
	}
	if loc == nil {
		if loc = m.NewLocation(idx); loc == nil {
			return &ParseError{Msg: fmt.Sprintf("cannot add location %d to page %d", idx, m.Page)}
		}
	}
	loc.AddContour(c)
	return nil
}

// scan is a small cursor over one line of the project file.
type scan struct {
	src string
	pos int
}

func (s *scan) skipSpace() {
	for s.pos < len(s.src) && unicode.IsSpace(rune(s.src[s.pos])) {
		s.pos++
	}
}

func (s *scan) peek() byte {
	s.skipSpace()
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func (s *scan) word() string {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.src) && !unicode.IsSpace(rune(s.src[s.pos])) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *scan) number() string {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.src) {
		ch := s.src[s.pos]
		if (ch >= '0' && ch <= '9') || ch == '-' || ch == '+' || ch == '.' || ch == 'e' || ch == 'E' {
			s.pos++
			continue
		}
		break
	}
	return s.src[start:s.pos]
}

func (s *scan) int() (int, error) {
	tok := s.number()
	if tok == "" {
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.Atoi(tok)
}

func (s *scan) float() (float64, error) {
	tok := s.number()
	if tok == "" {
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(tok, 64)
}

func (s *scan) expect(ch byte) error {
	got := s.peek()
	if got == 0 {
		return io.ErrUnexpectedEOF
	}
	if got != ch {
		return fmt.Errorf("expected %q, found %q", ch, got)
	}
	s.pos++
	return nil
}

func (s *scan) pair(lhs, rhs byte) (geom.Vertex, error) {
	if err := s.expect(lhs); err != nil {
		return geom.Vertex{}, err
	}
	x, err := s.int()
	if err != nil {
		return geom.Vertex{}, err
	}
	y, err := s.int()
	if err != nil {
		return geom.Vertex{}, err
	}
	if err := s.expect(rhs); err != nil {
		return geom.Vertex{}, err
	}
	return geom.Vertex{X: x, Y: y}, nil
}
