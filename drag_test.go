package gridcanvas

import "testing"

func TestWidgetDragScenario(t *testing.T) {
	// Widget at logical (10,10), scale 2: a physical move of (50,0) is a
	// logical move of (25,0).
	g, list, _ := newWidgetGrid(Widget{X: 10, Y: 10, Width: 100, Height: 50})
	g.SetScale(2)

	g.PointerDown(PointerEvent{X: 30, Y: 30})
	if !g.WidgetDrag().Dragging || g.WidgetDrag().Index != 0 {
		t.Fatalf("WidgetDrag = %+v, want dragging index 0", g.WidgetDrag())
	}
	g.PointerMove(PointerEvent{X: 80, Y: 30})

	if list.reports != 1 {
		t.Fatalf("reports = %d, want 1", list.reports)
	}
	assertNear(t, "X", list.widgets[0].X, 35)
	assertNear(t, "Y", list.widgets[0].Y, 10)

	g.PointerUp(PointerEvent{X: 80, Y: 30})
	if st := g.WidgetDrag(); st.Dragging || st.Index != -1 {
		t.Errorf("after up WidgetDrag = %+v, want idle with index -1", st)
	}
}

func TestWidgetDragDeltaIsFromPress(t *testing.T) {
	g, list, _ := newWidgetGrid(Widget{X: 0, Y: 0, Width: 100, Height: 100})

	g.PointerDown(PointerEvent{X: 10, Y: 10})
	g.PointerMove(PointerEvent{X: 20, Y: 10})
	g.PointerMove(PointerEvent{X: 30, Y: 15})

	// Each report is relative to the press, not cumulative.
	assertVec(t, "widget", Vec2{list.widgets[0].X, list.widgets[0].Y}, Vec2{20, 5})
}

func TestWidgetDragAtMinScale(t *testing.T) {
	g, list, _ := newWidgetGrid(Widget{X: 0, Y: 0, Width: 1000, Height: 1000})
	g.SetScale(MinScale)

	g.PointerDown(PointerEvent{X: 10, Y: 10})
	g.PointerMove(PointerEvent{X: 11, Y: 10})
	if !approxEqual(list.widgets[0].X, 10, 1e-9) {
		t.Errorf("X = %v, want 10 (one pixel at scale 0.1)", list.widgets[0].X)
	}
}

func TestWidgetDragNeverMovesCamera(t *testing.T) {
	g, _, _ := newWidgetGrid(Widget{X: 0, Y: 0, Width: 100, Height: 100})
	g.SetPosition(5, 5)
	rev := g.Camera().Revision()

	g.PointerDown(PointerEvent{X: 20, Y: 20})
	for i := 0; i < 10; i++ {
		g.PointerMove(PointerEvent{X: 20 + float64(i)*13, Y: 20 - float64(i)*7})
		if g.Camera().Dragging() && g.WidgetDrag().Dragging {
			t.Fatal("camera and widget drag both active")
		}
	}
	g.PointerUp(PointerEvent{})

	assertVec(t, "Position", g.Position(), Vec2{5, 5})
	if g.Camera().Revision() != rev {
		t.Error("camera revision changed during a widget drag")
	}
}

func TestEmptySurfaceStartsCameraDrag(t *testing.T) {
	g, list, _ := newWidgetGrid(Widget{X: 0, Y: 0, Width: 100, Height: 100})

	g.PointerDown(PointerEvent{X: 400, Y: 400})
	if !g.Camera().Dragging() || g.WidgetDrag().Dragging {
		t.Fatal("press on empty surface should start a camera drag only")
	}
	g.PointerMove(PointerEvent{X: 410, Y: 380})
	g.PointerUp(PointerEvent{X: 410, Y: 380})

	assertVec(t, "Position", g.Position(), Vec2{10, -20})
	if list.reports != 0 {
		t.Errorf("widget reports = %d during camera drag", list.reports)
	}
}

func TestPressOnWidgetDuringCameraDragIgnored(t *testing.T) {
	g, list, _ := newWidgetGrid(Widget{X: 0, Y: 0, Width: 100, Height: 100})

	g.PointerDown(PointerEvent{X: 400, Y: 400})
	g.PointerDown(PointerEvent{X: 50, Y: 50})
	if g.WidgetDrag().Dragging {
		t.Error("widget drag started while the camera was dragging")
	}
	g.PointerMove(PointerEvent{X: 60, Y: 50})
	if list.reports != 0 {
		t.Errorf("reports = %d, want 0", list.reports)
	}
}

func TestTopmostWidgetWins(t *testing.T) {
	g, list, _ := newWidgetGrid(
		Widget{X: 0, Y: 0, Width: 100, Height: 100},
		Widget{X: 50, Y: 50, Width: 100, Height: 100},
	)
	g.PointerDown(PointerEvent{X: 75, Y: 75})
	if got := g.WidgetDrag().Index; got != 1 {
		t.Errorf("Index = %d, want 1 (highest index on top)", got)
	}
	g.PointerMove(PointerEvent{X: 85, Y: 75})
	if list.widgets[0].X != 0 {
		t.Error("lower widget moved")
	}
}

func TestHitTestFollowsCamera(t *testing.T) {
	g, _, _ := newWidgetGrid(Widget{X: 100, Y: 100, Width: 50, Height: 50})
	g.SetPosition(-100, -100)
	g.SetScale(2)

	// Physical rect is (100,100)-(200,200).
	if i := g.hitTest(Vec2{150, 150}); i != 0 {
		t.Errorf("hitTest inside = %d, want 0", i)
	}
	if i := g.hitTest(Vec2{90, 150}); i != -1 {
		t.Errorf("hitTest outside = %d, want -1", i)
	}
}

func TestPointerCaptureLifecycle(t *testing.T) {
	g, _, _ := newWidgetGrid(Widget{X: 0, Y: 0, Width: 100, Height: 100})
	if g.Capturing() {
		t.Fatal("capture installed before any drag")
	}

	g.PointerDown(PointerEvent{X: 10, Y: 10})
	if !g.Capturing() {
		t.Fatal("widget drag did not install the capture")
	}
	// Moves outside the viewport still arrive while captured.
	g.PointerMove(PointerEvent{X: 2000, Y: -50})
	if !g.WidgetDrag().Dragging {
		t.Error("drag lost outside the surface")
	}
	g.PointerUp(PointerEvent{X: 2000, Y: -50})
	if g.Capturing() {
		t.Error("capture left installed after widget drag")
	}

	g.PointerDown(PointerEvent{X: 500, Y: 500})
	if !g.Capturing() {
		t.Fatal("camera drag did not install the capture")
	}
	g.PointerUp(PointerEvent{X: 500, Y: 500})
	if g.Capturing() {
		t.Error("capture left installed after camera drag")
	}
}

func TestMovesWithoutCaptureIgnored(t *testing.T) {
	g, _, _ := newWidgetGrid()
	g.PointerMove(PointerEvent{X: 100, Y: 100})
	g.PointerUp(PointerEvent{X: 100, Y: 100})
	if g.Position() != (Vec2{}) {
		t.Errorf("Position = %v, want origin", g.Position())
	}
}

func TestPressOutsideViewportIgnored(t *testing.T) {
	g, _, _ := newWidgetGrid()
	g.SetViewport(Rect{X: 180, Y: 0, Width: 620, Height: 600})

	g.PointerDown(PointerEvent{X: 100, Y: 100})
	if g.Camera().Dragging() || g.Capturing() {
		t.Error("press in the side panel started a drag")
	}
}

func TestViewportOffsetHitTest(t *testing.T) {
	g, list, _ := newWidgetGrid(Widget{X: 0, Y: 0, Width: 100, Height: 100})
	g.SetViewport(Rect{X: 180, Y: 0, Width: 620, Height: 600})

	// Window x 200 is surface x 20, inside the widget.
	g.PointerDown(PointerEvent{X: 200, Y: 20})
	if !g.WidgetDrag().Dragging {
		t.Fatal("press on offset widget missed")
	}
	g.PointerMove(PointerEvent{X: 230, Y: 20})
	assertNear(t, "X", list.widgets[0].X, 30)
}

func TestSurfaceCursor(t *testing.T) {
	g, _, _ := newWidgetGrid(Widget{X: 0, Y: 0, Width: 100, Height: 100})
	if g.SurfaceCursor() != CursorGrab {
		t.Error("idle cursor should be grab")
	}
	g.PointerDown(PointerEvent{X: 10, Y: 10})
	if g.SurfaceCursor() != CursorGrabbing {
		t.Error("cursor should be grabbing during a widget drag")
	}
	ps := g.Placements()
	if ps[0].Cursor != CursorGrabbing {
		t.Error("dragged widget placement should be grabbing")
	}
	g.PointerUp(PointerEvent{})
	if g.Placements()[0].Cursor != CursorGrab {
		t.Error("placement cursor not reset after drag")
	}
}
