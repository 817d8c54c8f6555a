package gridcanvas

import (
	"fmt"
	"time"
)

// Scale limits and defaults shared by every Grid.
const (
	MinScale                = 0.1
	MaxScale                = 5.0
	DefaultCellSize         = 40.0
	DefaultZoomStep         = 0.1
	DefaultWheelNotchPixels = 100.0
	DefaultCenterDuration   = 500 * time.Millisecond
	DefaultSettleDelay      = 10 * time.Millisecond
)

// Vec2 is a 2D vector used for positions, offsets, and deltas throughout the
// API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns v scaled by s on both axes.
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Origin returns the top-left corner.
func (r Rect) Origin() Vec2 { return Vec2{r.X, r.Y} }

// Center returns the center point relative to the rectangle's own origin.
func (r Rect) Center() Vec2 { return Vec2{r.Width / 2, r.Height / 2} }

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Cursor is the visual grab indicator for the surface or a single widget.
type Cursor uint8

const (
	CursorGrab     Cursor = iota // hovering, nothing held
	CursorGrabbing               // the target is being dragged
)

func (c Cursor) String() string {
	if c == CursorGrabbing {
		return "grabbing"
	}
	return "grab"
}

// ZoomAnchor selects the fixed point of wheel zoom.
type ZoomAnchor uint8

const (
	// ZoomAnchorOrigin changes scale only; the camera position is untouched,
	// so content zooms around the surface origin.
	ZoomAnchorOrigin ZoomAnchor = iota
	// ZoomAnchorPointer keeps the logical point under the cursor stationary.
	ZoomAnchorPointer
)

// ParseZoomAnchor maps "origin" or "pointer" to a ZoomAnchor.
func ParseZoomAnchor(s string) (ZoomAnchor, error) {
	switch s {
	case "", "origin":
		return ZoomAnchorOrigin, nil
	case "pointer":
		return ZoomAnchorPointer, nil
	}
	return 0, fmt.Errorf("unknown zoom anchor %q", s)
}

// Overlap controls what happens when a centering animation starts while
// another one is still running.
type Overlap uint8

const (
	// OverlapCancel stops the running animation before starting the new one.
	OverlapCancel Overlap = iota
	// OverlapConcurrent lets every run continue; runs are stepped in start
	// order so the newest run's write lands last in a frame.
	OverlapConcurrent
)

// ParseOverlap maps "cancel" or "concurrent" to an Overlap.
func ParseOverlap(s string) (Overlap, error) {
	switch s {
	case "", "cancel":
		return OverlapCancel, nil
	case "concurrent":
		return OverlapConcurrent, nil
	}
	return 0, fmt.Errorf("unknown animation overlap %q", s)
}
