package appstate

import (
	"fmt"
	"image"
	"image/color"

	"github.com/example/darkmapgen/internal/editor"
	"github.com/example/darkmapgen/internal/geom"
	"github.com/example/darkmapgen/internal/model"
	"github.com/example/darkmapgen/internal/render"
	"github.com/example/darkmapgen/internal/theme"
)

// Toggles are the view switches that do not affect editing.
type Toggles struct {
	Labels        bool
	ThickLines    bool
	CursorGuides  bool
	FillNew       bool
	HideSelection bool
}

// scene is a snapshot of everything drawn on the canvas, in viewport
// pixels. It is built on the event loop and rasterized by the paint
// goroutine, so the model is never read concurrently.
type scene struct {
	background image.Image
	bgAt       image.Point
	sprites    []sprite
	fills      []fill
	strokes    []stroke
	labels     []label
	handles    []handle
	// guide is the cross-hair position; guides are off when nil.
	guide *image.Point
}

type sprite struct {
	img image.Image
	at  image.Point
}

type fill struct {
	solid []image.Point
	holes [][]image.Point
	col   color.RGBA
}

type stroke struct {
	pts    []image.Point
	closed bool
	dashed bool
	thick  int
	col    color.RGBA
}

type label struct {
	text string
	at   image.Point
	col  color.RGBA
	bold bool
	// box fills the background behind the text when set.
	box *color.RGBA
}

type handle struct {
	at    image.Point
	fill  color.RGBA
	frame color.RGBA
}

// shade mixes c halfway towards black.
func shade(c color.RGBA) color.RGBA {
	return color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A}
}

type sceneBuilder struct {
	sc    scene
	ed    *editor.Editor
	th    *theme.Theme
	tg    Toggles
	view  geom.View
	off   image.Point
	thick int
}

func (b *sceneBuilder) pt(p geom.Vertex) image.Point {
	c := b.view.VertexToClient(p)
	return image.Pt(c.X, c.Y).Add(b.off)
}

func (b *sceneBuilder) ring(c *model.Contour) []image.Point {
	out := make([]image.Point, len(c.Verts))
	for i, v := range c.Verts {
		out[i] = b.pt(v)
	}
	return out
}

// buildScene snapshots the editor state for drawing. aa is the
// supersampling used for sprite previews.
func buildScene(ed *editor.Editor, th *theme.Theme, tg Toggles, aa int) scene {
	b := &sceneBuilder{
		ed:    ed,
		th:    th,
		tg:    tg,
		view:  ed.View(),
		off:   image.Pt(-ed.Scroll.X, -ed.Scroll.Y),
		thick: 1,
	}
	if tg.ThickLines {
		b.thick = 2
	}
	m := ed.Map()
	if m == nil {
		return b.sc
	}
	fade := ed.Display == render.FadeNonSel
	b.sc.background = render.ZoomedBackground(m, ed.Zoom, fade, th.Background)
	b.sc.bgAt = b.off

	// Fills go first so outlines, handles and labels stay visible.
	for _, loc := range m.Locations() {
		if loc == ed.Selected {
			continue
		}
		if ed.Display == render.Dimmed {
			b.sprite(m, loc, true, aa)
		}
		if ed.Display == render.FillAll {
			b.fill(loc, shade(th.Outline))
		}
	}
	for _, loc := range m.Locations() {
		if loc == ed.Selected {
			continue
		}
		b.outline(loc, th.Outline)
		if tg.Labels {
			b.labels(loc, th.Label, false)
		}
	}
	if sel := ed.Selected; sel != nil {
		b.selected(m, sel, fade, aa)
	}

	if tg.CursorGuides && !ed.Panning() && ed.Mode != editor.ModeAddDelete {
		// center of the map pixel under the pointer
		g := b.pt(b.view.ClientToMap(ed.Snapped))
		b.sc.guide = &g
	}
	if ed.Scratch != nil && ed.Scratch.Len() > 0 {
		b.scratch(ed.Scratch)
	}
	if ed.InsertEdge >= 0 && ed.HoverShape != nil {
		b.sc.handles = append(b.sc.handles, handle{at: b.pt(ed.InsertAt), fill: th.NewShape, frame: th.Vertex})
	}
	return b.sc
}

func (b *sceneBuilder) sprite(m *model.Map, loc *model.Location, dim bool, aa int) {
	if m.Image == nil {
		return
	}
	if img := render.ForView(m, loc, dim, aa, b.ed.Zoom); img != nil {
		b.sc.sprites = append(b.sc.sprites, sprite{img: img, at: loc.CachePos.Add(b.off)})
	}
}

func (b *sceneBuilder) fill(loc *model.Location, col color.RGBA) {
	for _, g := range loc.Groups {
		f := fill{solid: b.ring(g.Solid), col: col}
		for _, h := range g.Holes {
			f.holes = append(f.holes, b.ring(h))
		}
		b.sc.fills = append(b.sc.fills, f)
	}
}

func (b *sceneBuilder) outline(loc *model.Location, col color.RGBA) {
	for _, c := range loc.Contours() {
		sc := col
		if c.Hole {
			sc = b.th.Hole
		}
		b.sc.strokes = append(b.sc.strokes, stroke{pts: b.ring(c), closed: true, thick: b.thick, col: sc})
	}
}

func (b *sceneBuilder) labels(loc *model.Location, col color.RGBA, editing bool) {
	text := fmt.Sprintf("%03d", loc.Index)
	for _, s := range loc.Solids() {
		l := label{text: text, at: b.pt(s.Label), col: col, bold: editing}
		if editing {
			l.col = b.th.VertexHover
			if s == b.ed.LabelTarget {
				box := b.th.VertexHover
				l.box, l.col = &box, b.th.Background
			}
		}
		b.sc.labels = append(b.sc.labels, l)
	}
}

func (b *sceneBuilder) selected(m *model.Map, sel *model.Location, fade bool, aa int) {
	ed := b.ed
	if ed.Display >= render.Dimmed {
		b.sprite(m, sel, !fade, aa)
	}
	if ed.Display == render.FillAll || ed.Display == render.FillSel {
		b.fill(sel, shade(b.th.OutlineSelected))
	}
	showHandles := !ed.Creating()
	if !(showHandles && ed.Display > render.Outlines && b.tg.HideSelection) {
		b.outline(sel, b.th.OutlineSelected)
	}
	switch {
	case ed.Mode == editor.ModeLabelPos:
		b.labels(sel, b.th.Label, true)
	case b.tg.Labels:
		b.labels(sel, b.th.OutlineSelected, false)
	}
	if showHandles {
		for _, c := range sel.Contours() {
			b.vertexHandles(c)
		}
	}
}

func (b *sceneBuilder) vertexHandles(c *model.Contour) {
	ed := b.ed
	all := ed.HighlightAll() && ed.HoverShape == c
	for i, v := range c.Verts {
		h := handle{at: b.pt(v), fill: b.th.Vertex, frame: b.th.Background}
		if all || ed.Hover == (editor.Hit{Contour: c, Vertex: i}) || ed.Edit == (editor.Hit{Contour: c, Vertex: i}) {
			h.fill = b.th.VertexHover
		}
		b.sc.handles = append(b.sc.handles, h)
	}
}

func (b *sceneBuilder) scratch(c *model.Contour) {
	ed := b.ed
	pts := b.ring(c)
	ptr := image.Pt(ed.Snapped.X, ed.Snapped.Y).Add(b.off)
	if b.tg.FillNew && len(pts) > 1 {
		b.sc.fills = append(b.sc.fills, fill{solid: append(append([]image.Point(nil), pts...), ptr), col: b.th.NewShapeFill})
	}
	b.sc.strokes = append(b.sc.strokes, stroke{pts: pts, thick: b.thick, col: b.th.NewShape})
	if ed.Mode == editor.ModeCreate {
		band := []image.Point{pts[len(pts)-1], ptr}
		if len(pts) >= 2 {
			band = append(band, pts[0])
		}
		b.sc.strokes = append(b.sc.strokes, stroke{pts: band, dashed: true, thick: b.thick, col: b.th.NewShape})
	}
	b.vertexHandles(c)
}
