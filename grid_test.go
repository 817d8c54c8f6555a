package gridcanvas

import (
	"image/color"
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestNewGridDefaults(t *testing.T) {
	g, _ := newTestGrid(Options{})
	if g.Scale() != 1 || g.Position() != (Vec2{}) {
		t.Errorf("camera = %v @ %v, want origin @ 1", g.Position(), g.Scale())
	}
	if g.Viewport() != (Rect{Width: 800, Height: 600}) {
		t.Errorf("Viewport = %v, want 800x600", g.Viewport())
	}
	if g.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q", g.ScreenshotDir)
	}
}

func TestResizeFollowsLayoutUntilSetViewport(t *testing.T) {
	g, _ := newTestGrid(Options{})
	g.Resize(1024, 768)
	if g.Viewport() != (Rect{Width: 1024, Height: 768}) {
		t.Errorf("Viewport = %v after Resize", g.Viewport())
	}
	fixed := Rect{X: 180, Width: 500, Height: 400}
	g.SetViewport(fixed)
	g.Resize(1920, 1080)
	if g.Viewport() != fixed {
		t.Errorf("Resize overrode SetViewport: %v", g.Viewport())
	}
}

func TestCenterOnPointUsesViewportSize(t *testing.T) {
	g, _ := newTestGrid(Options{})
	g.SetViewport(Rect{X: 200, Width: 600, Height: 600})
	g.CenterOnPointIn(0, 0, 0)
	assertVec(t, "Position", g.Position(), Vec2{300, 300})
}

func TestCenterOnPointBeforeLayoutIsIgnored(t *testing.T) {
	clock := newFakeClock()
	g := New(Options{Clock: clock.now, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	g.SetInput(nil)

	g.CenterOnPoint(100, 100)
	if g.Animating() {
		t.Fatal("animation started without a surface")
	}
	g.Step(clock.advance(time.Second))
	if g.Position() != (Vec2{}) {
		t.Errorf("Position = %v, want origin", g.Position())
	}
}

func TestSetScaleClamps(t *testing.T) {
	g, _ := newTestGrid(Options{MinScale: 0.5, MaxScale: 2})
	g.SetScale(10)
	if g.Scale() != 2 {
		t.Errorf("Scale = %v, want 2", g.Scale())
	}
	g.SetScale(0.1)
	if g.Scale() != 0.5 {
		t.Errorf("Scale = %v, want 0.5", g.Scale())
	}
}

func TestPlacements(t *testing.T) {
	g, _, _ := newWidgetGrid(
		Widget{X: 0, Y: 0, Width: 260, Height: 140},
		Widget{X: 290, Y: 0, Width: 260, Height: 140},
	)
	g.SetViewport(Rect{X: 180, Y: 0, Width: 620, Height: 600})
	g.SetPosition(10, 20)
	g.SetScale(0.5)

	ps := g.Placements()
	if len(ps) != 2 {
		t.Fatalf("len = %d, want 2", len(ps))
	}
	p := ps[1]
	assertNear(t, "X", p.X, 10+290*0.5)
	assertNear(t, "Y", p.Y, 20)
	assertVec(t, "Screen", p.Screen, Vec2{180 + 10 + 145, 20})
	assertNear(t, "Width", p.Width, 130)
	assertNear(t, "Height", p.Height, 70)
	if p.Index != 1 || p.Scale != 0.5 {
		t.Errorf("Index, Scale = %d, %v", p.Index, p.Scale)
	}
}

func TestPlacementsWithoutWidgets(t *testing.T) {
	g, _ := newTestGrid(Options{})
	if ps := g.Placements(); len(ps) != 0 {
		t.Errorf("len = %d, want 0", len(ps))
	}
	if i := g.hitTest(Vec2{1, 1}); i != -1 {
		t.Errorf("hitTest = %d, want -1", i)
	}
}

func TestAfterRunsWhenDue(t *testing.T) {
	g, clock := newTestGrid(Options{})
	var order []string
	g.After(10*time.Millisecond, func() { order = append(order, "b") })
	g.After(0, func() { order = append(order, "a") })

	g.Step(clock.advance(time.Millisecond))
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("after 1ms order = %v, want [a]", order)
	}
	g.Step(clock.advance(9 * time.Millisecond))
	if len(order) != 2 || order[1] != "b" {
		t.Fatalf("after 10ms order = %v, want [a b]", order)
	}
	g.Step(clock.advance(time.Second))
	if len(order) != 2 {
		t.Errorf("deferred call ran twice: %v", order)
	}
}

func TestAfterScheduledFromDeferredCall(t *testing.T) {
	g, clock := newTestGrid(Options{})
	ran := 0
	g.After(0, func() {
		g.After(0, func() { ran++ })
	})
	g.Step(clock.advance(time.Millisecond))
	if ran != 0 {
		t.Error("call scheduled during runDeferred ran in the same frame")
	}
	g.Step(clock.advance(time.Millisecond))
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
}

func TestCenterOnPointAfter(t *testing.T) {
	g, clock := newTestGrid(Options{})
	g.CenterOnPointAfter(DefaultSettleDelay, 290, 0)
	if g.Animating() {
		t.Fatal("centering started before the settle delay")
	}
	g.Step(clock.advance(DefaultSettleDelay))
	if !g.Animating() {
		t.Fatal("centering did not start after the settle delay")
	}
	g.Step(clock.advance(time.Second))
	assertVec(t, "Position", g.Position(), Vec2{400 - 290, 300})
}

type mapPalette map[string]color.Color

func (p mapPalette) Color(name string) color.Color { return p[name] }

func TestDefaultPalette(t *testing.T) {
	var p defaultPalette
	if p.Color(ColorBackground) == color.Transparent {
		t.Error("default background is transparent")
	}
	if p.Color("tableHeaderColor") != color.Transparent {
		t.Error("unknown names should be transparent")
	}
}
