package gridcanvas

// WidgetDragState describes an in-progress widget drag. Index is only
// meaningful while Dragging is true; it is -1 otherwise.
type WidgetDragState struct {
	Dragging     bool
	Index        int
	StartLogical Vec2
	StartPointer Vec2
}

// idleWidgetDrag is the reset value of WidgetDragState.
var idleWidgetDrag = WidgetDragState{Index: -1}

// widgetDrag moves one widget by reporting new logical positions to the
// position owner. It never stores widget positions itself.
type widgetDrag struct {
	state  WidgetDragState
	report func(index int, x, y float64)

	onEnter func()
	onExit  func()
}

func newWidgetDrag(report func(index int, x, y float64)) widgetDrag {
	return widgetDrag{state: idleWidgetDrag, report: report}
}

// active reports whether a widget is being dragged.
func (d *widgetDrag) active() bool {
	return d.state.Dragging
}

// pointerDown starts dragging widget index from its current logical
// position. A press on a widget always takes priority over a camera drag;
// the caller must not forward the event to the camera.
func (d *widgetDrag) pointerDown(ev PointerEvent, index int, logicalX, logicalY float64) {
	wasActive := d.state.Dragging
	d.state = WidgetDragState{
		Dragging:     true,
		Index:        index,
		StartLogical: Vec2{logicalX, logicalY},
		StartPointer: ev.Pos(),
	}
	if !wasActive && d.onEnter != nil {
		d.onEnter()
	}
}

// pointerMove converts the physical pointer delta since the press into a
// logical delta at the given scale and reports the new widget position.
// At scale 0.1 a one-pixel move is a ten-unit jump, matching what the user
// sees.
func (d *widgetDrag) pointerMove(ev PointerEvent, scale float64) {
	if !d.state.Dragging || d.state.Index < 0 {
		return
	}
	delta := ev.Pos().Sub(d.state.StartPointer)
	next := d.state.StartLogical.Add(Vec2{delta.X / scale, delta.Y / scale})
	if d.report != nil {
		d.report(d.state.Index, next.X, next.Y)
	}
}

// pointerUp ends the drag and clears the active index.
func (d *widgetDrag) pointerUp() {
	if !d.state.Dragging {
		return
	}
	d.state = idleWidgetDrag
	if d.onExit != nil {
		d.onExit()
	}
}
