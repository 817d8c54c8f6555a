package gridcanvas

import "github.com/hajimehoshi/ebiten/v2"

// PointerEvent is a pointer press, move, or release in window coordinates.
type PointerEvent struct {
	X, Y   float64
	Button MouseButton
	Mods   KeyModifiers
}

// Pos returns the event position as a Vec2.
func (e PointerEvent) Pos() Vec2 { return Vec2{e.X, e.Y} }

// InputSource samples the host's pointer, wheel, and modifier state once per
// frame. The default reads Ebitengine's global input state.
type InputSource interface {
	// Cursor returns the pointer position in window coordinates.
	Cursor() (x, y float64)
	// Pressed reports whether any mouse button is held and which one.
	Pressed() (bool, MouseButton)
	// Wheel returns the wheel movement since the previous frame in notches,
	// positive when the wheel rolls away from the user.
	Wheel() (x, y float64)
	Modifiers() KeyModifiers
}

// cursorSetter is implemented by input sources that can change the OS
// cursor.
type cursorSetter interface {
	SetCursor(Cursor)
}

// EbitenInput reads mouse and keyboard state from Ebitengine.
type EbitenInput struct{}

// Cursor implements InputSource.
func (EbitenInput) Cursor() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

// Pressed implements InputSource. Left wins over right, right over middle.
func (EbitenInput) Pressed() (bool, MouseButton) {
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		return true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		return true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		return true, MouseButtonMiddle
	}
	return false, MouseButtonLeft
}

// Wheel implements InputSource.
func (EbitenInput) Wheel() (float64, float64) {
	return ebiten.Wheel()
}

// Modifiers implements InputSource.
func (EbitenInput) Modifiers() KeyModifiers {
	return readModifiers()
}

// SetCursor maps the grab indicator onto the closest Ebitengine cursor shape.
func (EbitenInput) SetCursor(c Cursor) {
	if c == CursorGrabbing {
		ebiten.SetCursorShape(ebiten.CursorShapeMove)
		return
	}
	ebiten.SetCursorShape(ebiten.CursorShapePointer)
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// pointerState tracks the single mouse pointer between frames so sampled
// button levels become press/move/release edges.
type pointerState struct {
	down   bool
	last   Vec2
	button MouseButton // button captured at press time
}

// processInput is called from Grid.Step. Injected events take precedence
// over real input for the frame.
func (g *Grid) processInput() {
	if g.processInjectedInput() {
		return
	}
	if g.input == nil {
		return
	}
	mods := g.input.Modifiers()
	x, y := g.input.Cursor()
	pressed, button := g.input.Pressed()
	g.feedPointer(Vec2{x, y}, pressed, button, mods)

	if wx, wy := g.input.Wheel(); wx != 0 || wy != 0 {
		// Notches rolled away are negative DOM deltas.
		g.ApplyWheel(WheelEvent{
			DeltaX:  -wx * g.opts.WheelNotchPixels,
			DeltaY:  -wy * g.opts.WheelNotchPixels,
			Mods:    mods,
			Pointer: Vec2{x, y},
		})
	}
}

// feedPointer turns one sampled pointer level into dispatcher calls.
func (g *Grid) feedPointer(pos Vec2, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &g.pointer
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.last = pos
		g.PointerDown(PointerEvent{X: pos.X, Y: pos.Y, Button: button, Mods: mods})
	case !pressed && ps.down:
		ps.down = false
		ps.last = pos
		g.PointerUp(PointerEvent{X: pos.X, Y: pos.Y, Button: ps.button, Mods: mods})
	default:
		if pos != ps.last {
			ps.last = pos
			g.PointerMove(PointerEvent{X: pos.X, Y: pos.Y, Button: ps.button, Mods: mods})
		}
	}
}
