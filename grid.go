package gridcanvas

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Named colors read from the Palette.
const (
	ColorGrid       = "gridColor"
	ColorBackground = "backgroundColor"
)

// Palette supplies named colors. The grid only reads ColorGrid and
// ColorBackground.
type Palette interface {
	Color(name string) color.Color
}

// Widget is the logical placement of one hosted widget. Width and Height are
// logical units and are used for hit testing only.
type Widget struct {
	X, Y          float64
	Width, Height float64
}

// WidgetSource is the owner of widget positions. The grid reads it every
// frame and never writes to it; position changes arrive through
// Options.OnWidgetDrag and the owner is expected to store them.
type WidgetSource interface {
	Len() int
	Widget(i int) Widget
}

// WidgetDrawer renders widget content at its physical placement.
type WidgetDrawer interface {
	DrawWidget(dst *ebiten.Image, p Placement)
}

// Placement is the physical placement of one widget for the current camera.
type Placement struct {
	Index int
	// X and Y are surface-local pixels.
	X, Y float64
	// Screen is the same point in window coordinates. The surface image
	// handed to a WidgetDrawer is a sub-image of the window and shares its
	// coordinates, so drawers position content at Screen.
	Screen Vec2
	// Width and Height are physical pixels (logical size times Scale).
	Width, Height float64
	Scale         float64
	Cursor        Cursor
}

// Options configures a Grid. Zero values select the defaults.
type Options struct {
	CellSize         float64
	MinScale         float64
	MaxScale         float64
	ZoomStep         float64
	ZoomAnchor       ZoomAnchor
	WheelNotchPixels float64
	CenterDuration   time.Duration
	Overlap          Overlap

	Palette      Palette
	Widgets      WidgetSource
	Drawer       WidgetDrawer
	OnWidgetDrag func(index int, x, y float64)

	// Input defaults to EbitenInput.
	Input InputSource
	// Clock defaults to time.Now.
	Clock  func() time.Time
	Logger *slog.Logger

	// Debug draws the camera overlay.
	Debug         bool
	ScreenshotDir string
}

// withDefaults fills zero fields and clamps the scale limits.
func (o Options) withDefaults() Options {
	if o.CellSize <= 0 {
		o.CellSize = DefaultCellSize
	}
	if o.MinScale <= 0 {
		o.MinScale = MinScale
	}
	if o.MaxScale <= 0 {
		o.MaxScale = MaxScale
	}
	o.MinScale = clampScale(o.MinScale, MinScale, MaxScale)
	o.MaxScale = clampScale(o.MaxScale, o.MinScale, MaxScale)
	if o.ZoomStep <= 0 {
		o.ZoomStep = DefaultZoomStep
	}
	if o.WheelNotchPixels <= 0 {
		o.WheelNotchPixels = DefaultWheelNotchPixels
	}
	if o.CenterDuration <= 0 {
		o.CenterDuration = DefaultCenterDuration
	}
	if o.Palette == nil {
		o.Palette = defaultPalette{}
	}
	if o.Input == nil {
		o.Input = EbitenInput{}
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.ScreenshotDir == "" {
		o.ScreenshotDir = "screenshots"
	}
	return o
}

// defaultPalette is used when no theme is supplied.
type defaultPalette struct{}

func (defaultPalette) Color(name string) color.Color {
	switch name {
	case ColorGrid:
		return color.NRGBA{R: 255, G: 255, B: 255, A: 26}
	case ColorBackground:
		return color.NRGBA{R: 40, G: 44, B: 52, A: 255}
	}
	return color.Transparent
}

// pointerCapture stands in for a window-level move/up listener. It exists
// only while a camera or widget drag is active so that a drag keeps
// following the pointer outside the surface.
type pointerCapture struct {
	since uint64 // frame it was installed
}

// deferredCall is a host command scheduled with After.
type deferredCall struct {
	due time.Time
	fn  func()
}

// Grid is an infinite pannable, zoomable surface hosting freely positioned
// widgets. It owns the camera and routes every pointer and wheel event to
// the camera drag, widget drag, or wheel controller.
//
// All methods must be called from the Ebitengine update/draw goroutine.
type Grid struct {
	opts Options
	log  *slog.Logger

	cam      *Camera
	camDrag  cameraDrag
	wdrag    widgetDrag
	wheel    wheelControl
	anim     animator
	renderer surfaceRenderer

	viewport     Rect
	autoViewport bool

	input       InputSource
	pointer     pointerState
	capture     *pointerCapture
	injectQueue []syntheticEvent
	deferred    []deferredCall

	placeBuf []Placement

	frame      uint64
	testRunner *TestRunner
	stats      debugStats
	lastUpdate time.Duration

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
}

// New creates a Grid. The viewport follows the layout size passed to Resize
// until SetViewport is called.
func New(opts Options) *Grid {
	opts = opts.withDefaults()
	g := &Grid{
		opts:          opts,
		log:           opts.Logger.With("component", "gridcanvas"),
		cam:           newCamera(opts.MinScale, opts.MaxScale),
		wheel:         wheelControl{step: opts.ZoomStep, anchor: opts.ZoomAnchor},
		anim:          animator{overlap: opts.Overlap},
		input:         opts.Input,
		autoViewport:  true,
		ScreenshotDir: opts.ScreenshotDir,
	}
	g.camDrag = cameraDrag{
		cam:     g.cam,
		onEnter: func() { g.dragChanged("camera", -1, true) },
		onExit:  func() { g.dragChanged("camera", -1, false) },
	}
	g.wdrag = newWidgetDrag(opts.OnWidgetDrag)
	g.wdrag.onEnter = func() { g.dragChanged("widget", g.wdrag.state.Index, true) }
	g.wdrag.onExit = func() { g.dragChanged("widget", -1, false) }
	return g
}

// --- External handle ---

// Scale returns the camera scale.
func (g *Grid) Scale() float64 { return g.cam.scale }

// Position returns the camera position.
func (g *Grid) Position() Vec2 { return g.cam.position }

// SetPosition moves the camera immediately, without animation.
func (g *Grid) SetPosition(x, y float64) {
	g.cam.update(func(c *Camera) {
		c.position = Vec2{x, y}
	})
}

// SetScale sets the camera scale, clamped to the configured limits.
func (g *Grid) SetScale(s float64) {
	g.cam.update(func(c *Camera) {
		c.scale = s
	})
}

// Camera returns the grid's camera for read access.
func (g *Grid) Camera() *Camera { return g.cam }

// CenterOnPoint animates the camera so the logical point (x, y) ends up in
// the middle of the surface, over the default duration.
func (g *Grid) CenterOnPoint(x, y float64) {
	g.CenterOnPointIn(x, y, g.opts.CenterDuration)
}

// CenterOnPointIn is CenterOnPoint with an explicit duration. The target is
// computed from the scale at call time. A non-positive duration jumps
// immediately. Before the surface has a size the call does nothing.
func (g *Grid) CenterOnPointIn(x, y float64, d time.Duration) {
	if g.viewport.Empty() {
		g.log.Debug("center skipped, no surface", "logical", Vec2{x, y})
		return
	}
	target := g.viewport.Center().Sub(Vec2{x, y}.Mul(g.cam.scale))
	start := g.cam.position
	if d <= 0 {
		if g.opts.Overlap == OverlapCancel {
			g.anim.cancelAll()
		}
		g.cam.update(func(c *Camera) { c.position = target })
		return
	}
	id := g.anim.start(g.opts.Clock(), d, func(eased float64) {
		g.cam.update(func(c *Camera) {
			if eased >= 1 {
				c.position = target
				return
			}
			c.position = start.Add(target.Sub(start).Mul(eased))
		})
	}, func(cancelled bool) {
		g.log.Debug("center finished", "target", target, "cancelled", cancelled)
	})
	g.log.Debug("center started", "id", id, "logical", Vec2{x, y}, "from", start, "to", target, "duration", d)
}

// CenterOnPointAfter schedules CenterOnPoint after delay so newly added
// widgets can settle before the camera moves.
func (g *Grid) CenterOnPointAfter(delay time.Duration, x, y float64) {
	g.After(delay, func() { g.CenterOnPoint(x, y) })
}

// Animating reports whether a centering animation is running.
func (g *Grid) Animating() bool { return g.anim.active() > 0 }

// CancelAnimations stops all centering animations where they are.
func (g *Grid) CancelAnimations() { g.anim.cancelAll() }

// After runs fn on the first frame at or after now+delay.
func (g *Grid) After(delay time.Duration, fn func()) {
	g.deferred = append(g.deferred, deferredCall{due: g.opts.Clock().Add(delay), fn: fn})
}

// runDeferred runs due host commands in scheduling order.
func (g *Grid) runDeferred(now time.Time) {
	if len(g.deferred) == 0 {
		return
	}
	pending := g.deferred
	g.deferred = nil
	var later []deferredCall
	for _, c := range pending {
		if now.Before(c.due) {
			later = append(later, c)
			continue
		}
		c.fn()
	}
	g.deferred = append(later, g.deferred...)
}

// --- Viewport ---

// SetViewport places the surface inside the window. It disables automatic
// sizing from Resize.
func (g *Grid) SetViewport(r Rect) {
	g.autoViewport = false
	g.setViewport(r)
}

// Viewport returns the surface rectangle in window coordinates.
func (g *Grid) Viewport() Rect { return g.viewport }

// Resize is called with the window layout size. Unless SetViewport was
// used, the surface fills the window.
func (g *Grid) Resize(width, height int) {
	if g.autoViewport {
		g.setViewport(Rect{Width: float64(width), Height: float64(height)})
	}
}

func (g *Grid) setViewport(r Rect) {
	if r != g.viewport {
		g.log.Debug("surface resized", "viewport", r)
	}
	g.viewport = r
}

// --- Frame loop ---

// Update advances one frame using the grid's clock. Call from
// ebiten.Game.Update.
func (g *Grid) Update() {
	start := time.Now()
	g.Step(g.opts.Clock())
	g.lastUpdate = time.Since(start)
}

// Step advances one frame at the given time: deferred commands, scripted
// steps, input, then animations.
func (g *Grid) Step(now time.Time) {
	g.frame++
	g.runDeferred(now)
	if g.testRunner != nil {
		g.testRunner.step(g)
	}
	g.processInput()
	g.anim.step(now)
	if cs, ok := g.input.(cursorSetter); ok {
		cs.SetCursor(g.SurfaceCursor())
	}
}

// SetInput replaces the input source. nil disables sampled input; injected
// events still work.
func (g *Grid) SetInput(in InputSource) {
	g.input = in
}

// --- Dispatch ---

// PointerDown routes a press. A press on a widget starts a widget drag and
// never reaches the camera; a press on empty surface starts a camera drag.
// Presses outside the viewport, or while the camera is already being
// dragged, are ignored.
func (g *Grid) PointerDown(ev PointerEvent) {
	if g.cam.dragging || !g.viewport.Contains(ev.X, ev.Y) {
		return
	}
	local := ev.Pos().Sub(g.viewport.Origin())
	if i := g.hitTest(local); i >= 0 {
		w := g.opts.Widgets.Widget(i)
		g.wdrag.pointerDown(ev, i, w.X, w.Y)
		return
	}
	g.camDrag.pointerDown(ev, g.wdrag.active())
}

// PointerMove routes a move while a drag holds the pointer capture. Widget
// drags pre-empt camera drags.
func (g *Grid) PointerMove(ev PointerEvent) {
	if g.capture == nil {
		return
	}
	if g.wdrag.active() {
		g.wdrag.pointerMove(ev, g.cam.scale)
		return
	}
	g.camDrag.pointerMove(ev, false)
}

// PointerUp routes a release while a drag holds the pointer capture.
func (g *Grid) PointerUp(ev PointerEvent) {
	if g.capture == nil {
		return
	}
	if g.wdrag.active() {
		g.wdrag.pointerUp()
		return
	}
	g.camDrag.pointerUp(false)
}

// ApplyWheel routes a wheel event whose Pointer is in window coordinates.
// It reports whether default handling must be suppressed (zoom only).
// Events outside the viewport are ignored.
func (g *Grid) ApplyWheel(ev WheelEvent) bool {
	if !g.viewport.Contains(ev.Pointer.X, ev.Pointer.Y) {
		return false
	}
	ev.Pointer = ev.Pointer.Sub(g.viewport.Origin())
	return g.wheel.apply(g.cam, ev)
}

// Capturing reports whether the window-level pointer capture is installed.
func (g *Grid) Capturing() bool { return g.capture != nil }

// WidgetDrag returns a copy of the widget drag state.
func (g *Grid) WidgetDrag() WidgetDragState { return g.wdrag.state }

// dragChanged is the transition hook of both drag state machines. It
// installs the capture when a drag begins and removes it once neither drag
// is active.
func (g *Grid) dragChanged(kind string, index int, entered bool) {
	if entered {
		g.log.Debug("drag started", "target", kind, "index", index)
	} else {
		g.log.Debug("drag ended", "target", kind)
	}
	active := g.cam.dragging || g.wdrag.active()
	switch {
	case active && g.capture == nil:
		g.capture = &pointerCapture{since: g.frame}
		g.log.Debug("pointer capture installed", "frame", g.frame)
	case !active && g.capture != nil:
		g.log.Debug("pointer capture removed", "frame", g.frame, "held", g.frame-g.capture.since)
		g.capture = nil
	}
}

// hitTest returns the topmost widget under the surface-local point, or -1.
func (g *Grid) hitTest(local Vec2) int {
	if g.opts.Widgets == nil {
		return -1
	}
	for i := g.opts.Widgets.Len() - 1; i >= 0; i-- {
		w := g.opts.Widgets.Widget(i)
		p := ToPhysical(Vec2{w.X, w.Y}, g.cam.position, g.cam.scale)
		r := Rect{X: p.X, Y: p.Y, Width: w.Width * g.cam.scale, Height: w.Height * g.cam.scale}
		if r.Contains(local.X, local.Y) {
			return i
		}
	}
	return -1
}

// --- Placement ---

// Placements applies the coordinate transform to every widget. The slice is
// reused between calls.
func (g *Grid) Placements() []Placement {
	g.placeBuf = g.placeBuf[:0]
	if g.opts.Widgets == nil {
		return g.placeBuf
	}
	origin := g.viewport.Origin()
	scale := g.cam.scale
	for i, n := 0, g.opts.Widgets.Len(); i < n; i++ {
		w := g.opts.Widgets.Widget(i)
		p := ToPhysical(Vec2{w.X, w.Y}, g.cam.position, scale)
		cursor := CursorGrab
		if g.wdrag.state.Dragging && g.wdrag.state.Index == i {
			cursor = CursorGrabbing
		}
		g.placeBuf = append(g.placeBuf, Placement{
			Index:  i,
			X:      p.X,
			Y:      p.Y,
			Screen: p.Add(origin),
			Width:  w.Width * scale,
			Height: w.Height * scale,
			Scale:  scale,
			Cursor: cursor,
		})
	}
	return g.placeBuf
}

// SurfaceCursor is CursorGrabbing while any drag is active.
func (g *Grid) SurfaceCursor() Cursor {
	if g.cam.dragging || g.wdrag.active() {
		return CursorGrabbing
	}
	return CursorGrab
}
