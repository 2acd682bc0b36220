package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"strings"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/darkmapgen/internal/geom"
	"github.com/example/darkmapgen/internal/theme"
)

// dashLen is the on and off length of dashed lines in pixels.
const dashLen = 4

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r-(1-thick%2); dx++ {
		for dy := -r; dy <= r-(1-thick%2); dy++ {
			if image.Pt(x+dx, y+dy).In(img.Bounds()) {
				img.Set(x+dx, y+dy, col)
			}
		}
	}
}

// drawLine draws a Bresenham line. A positive dash leaves every other run
// of dash pixels out.
func drawLine(img *image.RGBA, p0, p1 image.Point, col color.Color, thick, dash int) {
	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	// Lines far outside the canvas are skipped quickly.
	if !image.Rect(min(x0, x1), min(y0, y1), max(x0, x1)+1, max(y0, y1)+1).Inset(-thick).Overlaps(img.Bounds()) {
		return
	}
	err := dx - dy
	for step := 0; ; step++ {
		if dash <= 0 || (step/dash)%2 == 0 {
			setThickPixel(img, x0, y0, thick, col)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func drawRect(img *image.RGBA, r image.Rectangle, col color.Color) {
	drawLine(img, r.Min, image.Pt(r.Max.X-1, r.Min.Y), col, 1, 0)
	drawLine(img, image.Pt(r.Max.X-1, r.Min.Y), image.Pt(r.Max.X-1, r.Max.Y-1), col, 1, 0)
	drawLine(img, image.Pt(r.Max.X-1, r.Max.Y-1), image.Pt(r.Min.X, r.Max.Y-1), col, 1, 0)
	drawLine(img, image.Pt(r.Min.X, r.Max.Y-1), r.Min, col, 1, 0)
}

func fillRect(img *image.RGBA, r image.Rectangle, col color.RGBA) {
	op := draw.Src
	if col.A != 255 {
		op = draw.Over
	}
	draw.Draw(img, r, &image.Uniform{col}, image.Point{}, op)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func ringBounds(pts []image.Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X, r.Min.Y = min(r.Min.X, p.X), min(r.Min.Y, p.Y)
		r.Max.X, r.Max.Y = max(r.Max.X, p.X), max(r.Max.Y, p.Y)
	}
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}

// coverage rasterizes rings into an alpha mask covering area.
func coverage(area image.Rectangle, rings ...[]image.Point) *image.Alpha {
	var z vector.Rasterizer
	z.Reset(area.Dx(), area.Dy())
	for _, ring := range rings {
		if len(ring) < 3 {
			continue
		}
		at := func(p image.Point) (float32, float32) {
			return float32(p.X-area.Min.X) + 0.5, float32(p.Y-area.Min.Y) + 0.5
		}
		z.MoveTo(at(ring[0]))
		for _, p := range ring[1:] {
			z.LineTo(at(p))
		}
		z.ClosePath()
	}
	a := image.NewAlpha(image.Rect(0, 0, area.Dx(), area.Dy()))
	z.Draw(a, a.Bounds(), image.Opaque, image.Point{})
	return a
}

// fillShape fills the solid ring of f minus its holes.
func fillShape(img *image.RGBA, f fill) {
	area := ringBounds(f.solid).Intersect(img.Bounds())
	if area.Empty() || len(f.solid) < 3 {
		return
	}
	mask := coverage(area, f.solid)
	if len(f.holes) > 0 {
		holes := coverage(area, f.holes...)
		for i, h := range holes.Pix {
			mask.Pix[i] = uint8(uint32(mask.Pix[i]) * uint32(255-h) / 255)
		}
	}
	draw.DrawMask(img, area, &image.Uniform{f.col}, image.Point{}, mask, image.Point{}, draw.Over)
}

func drawStroke(img *image.RGBA, s stroke) {
	dash := 0
	if s.dashed {
		dash = dashLen
	}
	n := len(s.pts)
	if n == 1 {
		setThickPixel(img, s.pts[0].X, s.pts[0].Y, s.thick, s.col)
		return
	}
	for i := 0; i+1 < n; i++ {
		drawLine(img, s.pts[i], s.pts[i+1], s.col, s.thick, dash)
	}
	if s.closed && n > 2 {
		drawLine(img, s.pts[n-1], s.pts[0], s.col, s.thick, dash)
	}
}

func drawHandle(img *image.RGBA, h handle) {
	r := geom.VertHandleRadius
	box := image.Rect(h.at.X-r, h.at.Y-r, h.at.X+r+1, h.at.Y+r+1)
	fillRect(img, box.Inset(1).Intersect(img.Bounds()), h.fill)
	drawRect(img, box, h.frame)
}

func drawLabel(img *image.RGBA, l label) {
	face := labelFace
	if l.bold {
		face = labelBoldFace
	}
	d := &font.Drawer{Dst: img, Src: image.NewUniform(l.col), Face: face}
	w := d.MeasureString(l.text).Ceil()
	m := face.Metrics()
	h := (m.Ascent + m.Descent).Ceil()
	top := image.Pt(l.at.X-w/2, l.at.Y-h/2)
	if l.box != nil {
		fillRect(img, image.Rect(top.X-2, top.Y-2, top.X+w+2, top.Y+h+2).Intersect(img.Bounds()), *l.box)
	}
	d.Dot = fixed.P(top.X, top.Y+m.Ascent.Ceil())
	d.DrawString(l.text)
}

// drawScene rasterizes sc into canvas. Scene coordinates are viewport
// relative, so canvas is rebased to start at the origin.
func drawScene(ctx context.Context, canvas *image.RGBA, sc scene, th *theme.Theme) {
	view := &image.RGBA{Pix: canvas.Pix, Stride: canvas.Stride, Rect: canvas.Rect.Sub(canvas.Rect.Min)}
	fillRect(view, view.Bounds(), th.Background)
	if sc.background != nil {
		bb := sc.background.Bounds()
		draw.Draw(view, bb.Sub(bb.Min).Add(sc.bgAt), sc.background, bb.Min, draw.Src)
	}
	for _, s := range sc.sprites {
		sb := s.img.Bounds()
		draw.Draw(view, sb.Sub(sb.Min).Add(s.at), s.img, sb.Min, draw.Over)
	}
	if ctx.Err() != nil {
		return
	}
	for _, f := range sc.fills {
		fillShape(view, f)
	}
	if sc.guide != nil {
		b := view.Bounds()
		g := *sc.guide
		drawLine(view, image.Pt(b.Min.X, g.Y), image.Pt(b.Max.X-1, g.Y), th.Guide, 1, dashLen)
		drawLine(view, image.Pt(g.X, b.Min.Y), image.Pt(g.X, b.Max.Y-1), th.Guide, 1, dashLen)
	}
	if ctx.Err() != nil {
		return
	}
	for _, s := range sc.strokes {
		drawStroke(view, s)
	}
	for _, l := range sc.labels {
		drawLabel(view, l)
	}
	for _, h := range sc.handles {
		drawHandle(view, h)
	}
}

type paintState struct {
	width, height int
	theme         theme.Theme
	scene         scene
	rows          []row
	selRow        int
	sideScroll    int
	status        string
	message       string
	messageUntil  time.Time
	dialog        *dialog
}

func drawText(img *image.RGBA, x, y int, s string, col color.Color) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: uiFace, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

func drawSidebar(dst *image.RGBA, st paintState) {
	th := &st.theme
	r := image.Rect(0, 0, sidebarWidth, st.height-statusHeight)
	fillRect(dst, r, th.Sidebar)
	side := dst.SubImage(r).(*image.RGBA)
	for i, rw := range st.rows {
		y := i*rowHeight - st.sideScroll
		if y+rowHeight < 0 || y > r.Max.Y {
			continue
		}
		if i == st.selRow {
			fillRect(side, image.Rect(0, y, sidebarWidth, y+rowHeight).Intersect(r), th.SidebarSelected)
		}
		drawText(side, 4+rw.depth*12, y+rowHeight-4, rw.text, th.Foreground)
	}
	drawLine(dst, image.Pt(sidebarWidth-1, 0), image.Pt(sidebarWidth-1, r.Max.Y-1), th.Foreground, 1, 0)
}

func drawStatus(dst *image.RGBA, st paintState) {
	th := &st.theme
	r := image.Rect(0, st.height-statusHeight, st.width, st.height)
	fillRect(dst, r, th.Sidebar)
	drawText(dst, 4, st.height-6, st.status, th.Foreground)
}

func drawMessage(dst *image.RGBA, st paintState) {
	if st.message == "" || !time.Now().Before(st.messageUntil) {
		return
	}
	th := &st.theme
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: messageFace}
	w := d.MeasureString(st.message).Ceil()
	m := messageFace.Metrics()
	px := (st.width - w) / 2
	py := (st.height-m.Ascent.Ceil()-m.Descent.Ceil())/2 + m.Ascent.Ceil()
	rect := image.Rect(px-8, py-m.Ascent.Ceil()-8, px+w+8, py+m.Descent.Ceil()+8)
	bg := th.Background
	bg.A = 230
	fillRect(dst, rect, bg)
	drawRect(dst, rect, th.Foreground)
	d.Dot = fixed.P(px, py)
	d.DrawString(st.message)
}

func drawDialog(dst *image.RGBA, st paintState) {
	dl := st.dialog
	th := &st.theme
	lines := dl.lines()
	meas := &font.Drawer{Face: uiFace}
	w := 240
	for _, l := range lines {
		w = max(w, meas.MeasureString(l).Ceil()+24)
	}
	h := len(lines)*rowHeight + 24
	x0 := (st.width - w) / 2
	y0 := (st.height - h) / 2
	rect := image.Rect(x0, y0, x0+w, y0+h)
	fillRect(dst, rect, th.Sidebar)
	drawRect(dst, rect, th.Foreground)
	for i, l := range lines {
		col := th.Foreground
		if dl.kind == dialogInput && i == len(lines)-2 {
			field := image.Rect(x0+8, y0+12+i*rowHeight-2, x0+w-8, y0+12+(i+1)*rowHeight)
			fillRect(dst, field, th.Background)
			drawRect(dst, field, th.Foreground)
		}
		if strings.HasPrefix(l, hintPrefix) {
			col = th.Guide
			l = strings.TrimPrefix(l, hintPrefix)
		}
		drawText(dst, x0+12, y0+12+(i+1)*rowHeight-4, l, col)
	}
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()

	canvasRect := image.Rect(sidebarWidth, 0, st.width, st.height-statusHeight)
	if !canvasRect.Empty() {
		drawScene(ctx, dst.SubImage(canvasRect).(*image.RGBA), st.scene, &st.theme)
	}
	if ctx.Err() != nil {
		return
	}
	drawSidebar(dst, st)
	drawStatus(dst, st)
	drawMessage(dst, st)
	if st.dialog != nil {
		drawDialog(dst, st)
	}
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
