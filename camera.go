package gridcanvas

// Camera is the pan/zoom state of a Grid: the physical offset of the logical
// origin, the scale, and the camera-drag bookkeeping.
//
// A Grid owns exactly one Camera. Controllers never assign position or scale
// directly; they go through update, which bumps the revision at most once per
// call so the renderer repaints once per mutation.
type Camera struct {
	position Vec2
	scale    float64

	dragging    bool
	lastPointer Vec2

	minScale float64
	maxScale float64

	rev uint64
}

// newCamera creates a Camera at the origin with scale 1.
func newCamera(minScale, maxScale float64) *Camera {
	return &Camera{
		scale:    clampScale(1, minScale, maxScale),
		minScale: minScale,
		maxScale: maxScale,
		rev:      1,
	}
}

// Position returns the physical offset of the logical origin.
func (c *Camera) Position() Vec2 { return c.position }

// Scale returns the current scale, always within the configured limits.
func (c *Camera) Scale() float64 { return c.scale }

// Dragging reports whether a camera drag gesture is in progress.
func (c *Camera) Dragging() bool { return c.dragging }

// Revision increases every time position or scale changes.
func (c *Camera) Revision() uint64 { return c.rev }

// update applies fn and bumps the revision if position or scale changed.
// The scale is re-clamped afterwards.
func (c *Camera) update(fn func(c *Camera)) {
	prevPos, prevScale := c.position, c.scale
	fn(c)
	c.scale = clampScale(c.scale, c.minScale, c.maxScale)
	if c.position != prevPos || c.scale != prevScale {
		c.rev++
	}
}

// cameraDrag pans the camera while the primary button is held on empty
// surface. Pan deltas are physical pixels and are not divided by scale.
type cameraDrag struct {
	cam *Camera

	// onEnter and onExit fire on the Idle->Dragging and Dragging->Idle
	// transitions.
	onEnter func()
	onExit  func()
}

// pointerDown enters Dragging when no widget drag is active and the primary
// button was used. Reports whether the transition happened.
func (d *cameraDrag) pointerDown(ev PointerEvent, widgetDragActive bool) bool {
	if widgetDragActive || ev.Button != MouseButtonLeft || d.cam.dragging {
		return false
	}
	d.cam.dragging = true
	d.cam.lastPointer = ev.Pos()
	if d.onEnter != nil {
		d.onEnter()
	}
	return true
}

// pointerMove adds the pointer delta since the last event to the camera
// position.
func (d *cameraDrag) pointerMove(ev PointerEvent, widgetDragActive bool) {
	if widgetDragActive || !d.cam.dragging {
		return
	}
	p := ev.Pos()
	delta := p.Sub(d.cam.lastPointer)
	d.cam.update(func(c *Camera) {
		c.position = c.position.Add(delta)
	})
	d.cam.lastPointer = p
}

// pointerUp returns to Idle unless a widget drag owns the gesture.
func (d *cameraDrag) pointerUp(widgetDragActive bool) {
	if widgetDragActive || !d.cam.dragging {
		return
	}
	d.cam.dragging = false
	if d.onExit != nil {
		d.onExit()
	}
}
