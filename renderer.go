package gridcanvas

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// gridLines returns the positions of grid lines along one axis of length
// extent. The first line sits at position mod step, so panning by any
// amount looks continuous; lines are spaced step apart until extent.
func gridLines(position, step, extent float64, buf []float64) []float64 {
	buf = buf[:0]
	if step <= 0 || extent <= 0 {
		return buf
	}
	for x := math.Mod(position, step); x < extent; x += step {
		buf = append(buf, x)
	}
	return buf
}

// surfaceRenderer caches the grid layer and repaints it only when the camera
// revision, the measured surface size, or the palette changed.
type surfaceRenderer struct {
	layer *ebiten.Image
	w, h  int
	rev   uint64
	grid  color.RGBA64
	bg    color.RGBA64

	xs, ys  []float64
	redraws int
}

// invalidate records the new inputs and reports whether the surface size
// changed and whether the layer must be repainted.
func (r *surfaceRenderer) invalidate(w, h int, rev uint64, grid, bg color.Color) (resized, stale bool) {
	g := color.RGBA64Model.Convert(grid).(color.RGBA64)
	b := color.RGBA64Model.Convert(bg).(color.RGBA64)
	resized = w != r.w || h != r.h
	stale = resized || rev != r.rev || g != r.grid || b != r.bg
	r.w, r.h, r.rev, r.grid, r.bg = w, h, rev, g, b
	return resized, stale
}

// draw composites the grid layer onto dst, repainting it first if needed.
// A nil or empty destination is skipped.
func (r *surfaceRenderer) draw(dst *ebiten.Image, cam *Camera, cellSize float64, p Palette) {
	if dst == nil {
		return
	}
	bounds := dst.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	gridColor := p.Color(ColorGrid)
	bgColor := p.Color(ColorBackground)
	resized, stale := r.invalidate(w, h, cam.rev, gridColor, bgColor)
	if r.layer == nil {
		resized, stale = true, true
	}
	if resized {
		if r.layer != nil {
			r.layer.Deallocate()
		}
		r.layer = ebiten.NewImage(w, h)
	}
	if stale {
		r.repaint(cam, cellSize, gridColor, bgColor)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(bounds.Min.X), float64(bounds.Min.Y))
	dst.DrawImage(r.layer, op)
}

// repaint clears the layer and strokes every visible line.
func (r *surfaceRenderer) repaint(cam *Camera, cellSize float64, gridColor, bgColor color.Color) {
	r.redraws++
	r.layer.Fill(bgColor)

	step := cellSize * cam.scale
	fw, fh := float64(r.w), float64(r.h)
	r.xs = gridLines(cam.position.X, step, fw, r.xs)
	r.ys = gridLines(cam.position.Y, step, fh, r.ys)
	for _, x := range r.xs {
		vector.StrokeLine(r.layer, float32(x), 0, float32(x), float32(fh), 1, gridColor, false)
	}
	for _, y := range r.ys {
		vector.StrokeLine(r.layer, 0, float32(y), float32(fw), float32(y), 1, gridColor, false)
	}
}

// Redraws returns how many times the grid layer has been repainted.
func (g *Grid) Redraws() int { return g.renderer.redraws }

// Draw renders the background, grid lines, and widgets into the viewport of
// screen, then the debug overlay and any queued screenshots.
func (g *Grid) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	start := time.Now()
	vp := g.viewport
	if g.autoViewport && vp.Empty() {
		b := screen.Bounds()
		g.setViewport(Rect{Width: float64(b.Dx()), Height: float64(b.Dy())})
		vp = g.viewport
	}
	if vp.Empty() {
		return
	}
	surface := screen.SubImage(image.Rect(
		int(vp.X), int(vp.Y),
		int(vp.X+vp.Width), int(vp.Y+vp.Height),
	)).(*ebiten.Image)

	g.renderer.draw(surface, g.cam, g.opts.CellSize, g.opts.Palette)

	for _, p := range g.Placements() {
		if g.opts.Drawer != nil {
			g.opts.Drawer.DrawWidget(surface, p)
			continue
		}
		drawWidgetFrame(surface, p, g.opts.Palette.Color(ColorGrid))
	}

	if g.opts.Debug {
		g.drawOverlay(surface)
		g.recordFrame(g.lastUpdate, time.Since(start))
	}
	g.flushScreenshots(screen)
}

// drawWidgetFrame outlines a widget when the host supplies no drawer.
func drawWidgetFrame(dst *ebiten.Image, p Placement, clr color.Color) {
	width := float32(1)
	if p.Cursor == CursorGrabbing {
		width = 2
	}
	vector.StrokeRect(dst, float32(p.Screen.X), float32(p.Screen.Y), float32(p.Width), float32(p.Height), width, clr, false)
}
