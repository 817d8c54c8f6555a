package gridcanvas

// syntheticEvent is a single injected pointer or wheel event in window
// coordinates, consumed exactly like sampled input.
type syntheticEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
	mods    KeyModifiers

	wheel          bool
	wheelX, wheelY float64 // DOM-style pixel deltas
}

// InjectPress queues a left-button press at the given window coordinates.
// The event is consumed on the next frame.
func (g *Grid) InjectPress(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (g *Grid) InjectMove(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release at the given window coordinates.
func (g *Grid) InjectRelease(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{
		x: x, y: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (g *Grid) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), moves
// linearly interpolated toward (toX, toY) ending exactly there, and a
// release. The sequence consumes frames frames; minimum is 3 (press, move,
// release).
func (g *Grid) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	g.InjectPress(fromX, fromY)
	steps := frames - 3
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	g.InjectMove(toX, toY)
	g.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event with DOM-style pixel deltas at the given
// window coordinates.
func (g *Grid) InjectWheel(x, y, deltaX, deltaY float64, mods KeyModifiers) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{
		x: x, y: y,
		mods:   mods,
		wheel:  true,
		wheelX: deltaX,
		wheelY: deltaY,
	})
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same path as sampled input. Returns true if an event was
// consumed (real input is skipped for the frame).
func (g *Grid) processInjectedInput() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	if evt.wheel {
		g.ApplyWheel(WheelEvent{
			DeltaX:  evt.wheelX,
			DeltaY:  evt.wheelY,
			Mods:    evt.mods,
			Pointer: Vec2{evt.x, evt.y},
		})
		return true
	}
	g.feedPointer(Vec2{evt.x, evt.y}, evt.pressed, evt.button, evt.mods)
	return true
}
