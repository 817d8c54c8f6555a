package gridcanvas

// ToPhysical maps a logical (world) point to a physical (surface pixel) point
// for a camera at position with the given scale.
func ToPhysical(logical, position Vec2, scale float64) Vec2 {
	return Vec2{
		X: position.X + logical.X*scale,
		Y: position.Y + logical.Y*scale,
	}
}

// ToLogical is the inverse of ToPhysical. scale must be positive; callers
// pass an already clamped camera scale.
func ToLogical(physical, position Vec2, scale float64) Vec2 {
	return Vec2{
		X: (physical.X - position.X) / scale,
		Y: (physical.Y - position.Y) / scale,
	}
}

// clampScale restricts s to [lo, hi].
func clampScale(s, lo, hi float64) float64 {
	if s < lo {
		return lo
	}
	if s > hi {
		return hi
	}
	return s
}
