package retained

// ============================================================================
// Vectors
// ============================================================================

// Vector2f is a point or extent in pixels.
type Vector2f struct {
	X, Y float32
}

// Add returns v + o.
func (v Vector2f) Add(o Vector2f) Vector2f { return Vector2f{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vector2f) Sub(o Vector2f) Vector2f { return Vector2f{v.X - o.X, v.Y - o.Y} }

// ============================================================================
// Bounds
// ============================================================================

// Bounds is an axis-aligned rectangle. Whether it is in screen space or in
// a parent's local space depends on where it came from.
type Bounds struct {
	X, Y          float32 // Top-left corner
	Width, Height float32
}

// BoundsAt builds bounds from a position and a size.
func BoundsAt(pos, size Vector2f) Bounds {
	return Bounds{X: pos.X, Y: pos.Y, Width: size.X, Height: size.Y}
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(x, y float32) bool {
	return x >= b.X && x < b.X+b.Width &&
		y >= b.Y && y < b.Y+b.Height
}

// LocalPoint converts coordinates to coordinates relative to the bounds.
func (b Bounds) LocalPoint(screenX, screenY float32) (localX, localY float32) {
	return screenX - b.X, screenY - b.Y
}

// Position returns the top-left corner.
func (b Bounds) Position() Vector2f { return Vector2f{b.X, b.Y} }

// Size returns the extent.
func (b Bounds) Size() Vector2f { return Vector2f{b.Width, b.Height} }

// IsEmpty reports whether the bounds enclose no area.
func (b Bounds) IsEmpty() bool { return b.Width <= 0 || b.Height <= 0 }

// Translate moves the bounds by an offset.
func (b Bounds) Translate(offset Vector2f) Bounds {
	b.X += offset.X
	b.Y += offset.Y
	return b
}

// Intersect returns the overlapping area. The result has zero size when the
// bounds do not overlap.
func (b Bounds) Intersect(o Bounds) Bounds {
	left := max(b.X, o.X)
	top := max(b.Y, o.Y)
	right := min(b.X+b.Width, o.X+o.Width)
	bottom := min(b.Y+b.Height, o.Y+o.Height)
	if right <= left || bottom <= top {
		return Bounds{X: left, Y: top}
	}
	return Bounds{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Intersects reports whether two bounds overlap.
func (b Bounds) Intersects(o Bounds) bool {
	return !b.Intersect(o).IsEmpty()
}

// ============================================================================
// Outline (borders, padding)
// ============================================================================

// Outline holds one value per side, used for borders and padding.
type Outline struct {
	Left, Top, Right, Bottom float32
}

// UniformOutline returns an outline with the same value on every side.
func UniformOutline(v float32) Outline {
	return Outline{v, v, v, v}
}

// Horizontal returns Left + Right.
func (o Outline) Horizontal() float32 { return o.Left + o.Right }

// Vertical returns Top + Bottom.
func (o Outline) Vertical() float32 { return o.Top + o.Bottom }

// Offset returns the top-left inset.
func (o Outline) Offset() Vector2f { return Vector2f{o.Left, o.Top} }

// Add sums two outlines side by side.
func (o Outline) Add(p Outline) Outline {
	return Outline{o.Left + p.Left, o.Top + p.Top, o.Right + p.Right, o.Bottom + p.Bottom}
}
