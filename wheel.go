package gridcanvas

// WheelEvent is one wheel notch or trackpad scroll. Deltas follow the DOM
// convention: positive DeltaY scrolls down (the wheel rolled toward the
// user), measured in pixels. Pointer is surface-local.
type WheelEvent struct {
	DeltaX, DeltaY float64
	Mods           KeyModifiers
	Pointer        Vec2
}

// wheelControl maps wheel input onto the camera. It holds configuration
// only; all state lives in the Camera.
type wheelControl struct {
	step   float64
	anchor ZoomAnchor
}

// apply updates cam for ev and reports whether the host's default handling
// (page zoom) must be suppressed, which is only the case for zoom.
//
//   - Ctrl: zoom by one step; DeltaY > 0 zooms out, anything else zooms in.
//   - Shift: DeltaY pans X, DeltaX pans Y.
//   - None: DeltaX pans X, DeltaY pans Y.
func (w wheelControl) apply(cam *Camera, ev WheelEvent) bool {
	switch {
	case ev.Mods&ModCtrl != 0:
		cam.update(func(c *Camera) {
			old := c.scale
			next := old + w.step
			if ev.DeltaY > 0 {
				next = old - w.step
			}
			next = clampScale(next, c.minScale, c.maxScale)
			c.scale = next
			if w.anchor == ZoomAnchorPointer && next != old {
				// Logical point under the cursor stays put.
				c.position = ev.Pointer.Sub(ev.Pointer.Sub(c.position).Mul(next / old))
			}
		})
		return true
	case ev.Mods&ModShift != 0:
		cam.update(func(c *Camera) {
			c.position.X -= ev.DeltaY
			c.position.Y -= ev.DeltaX
		})
	default:
		cam.update(func(c *Camera) {
			c.position.X -= ev.DeltaX
			c.position.Y -= ev.DeltaY
		})
	}
	return false
}
