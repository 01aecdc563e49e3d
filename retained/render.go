package retained

import "image/color"

// ============================================================================
// Render Target
// ============================================================================

// Transform is the translation from a widget's local space to backend
// pixels.
type Transform struct {
	X, Y float32
}

// Translate returns the transform moved by v.
func (t Transform) Translate(v Vector2f) Transform {
	return Transform{t.X + v.X, t.Y + v.Y}
}

// Apply maps a local point to backend pixels.
func (t Transform) Apply(p Vector2f) Vector2f {
	return Vector2f{p.X + t.X, p.Y + t.Y}
}

// RenderStates is passed down the tree while drawing. Widgets draw at the
// local origin (0, 0); the transform places them.
type RenderStates struct {
	Transform Transform
	Opacity   float32

	stack *ClipStack
}

// Clip returns the clip rectangle in backend pixels.
func (s RenderStates) Clip() Bounds {
	if s.stack == nil {
		return unbounded
	}
	return s.stack.Clip()
}

// Texture is a backend image handle.
type Texture interface {
	Size() Vector2f
}

// Sprite draws a texture stretched to Size.
type Sprite struct {
	Texture Texture
	Size    Vector2f
}

// RenderTarget is implemented by drawing backends. Every call receives the
// states of the widget being drawn; coordinates and sizes are in the
// widget's local space.
type RenderTarget interface {
	DrawFilledRect(states RenderStates, size Vector2f, c color.RGBA)
	DrawBorders(states RenderStates, borders Outline, size Vector2f, c color.RGBA)
	DrawSprite(states RenderStates, sprite Sprite)
	DrawText(states RenderStates, text string, textSize float32, c color.RGBA)
	MeasureText(text string, textSize float32) Vector2f

	// AddClippingLayer restricts subsequent drawing to rect (local to
	// states) intersected with the previous layer. Calls nest and are
	// balanced by RemoveClippingLayer.
	AddClippingLayer(states RenderStates, rect Bounds)
	RemoveClippingLayer()
}

// ApplyOpacity scales a premultiplied color by opacity.
func ApplyOpacity(c color.RGBA, opacity float32) color.RGBA {
	if opacity >= 1 {
		return c
	}
	if opacity <= 0 {
		return color.RGBA{}
	}
	scale := func(v uint8) uint8 { return uint8(float32(v)*opacity + 0.5) }
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), scale(c.A)}
}

// drawBackground fills size with the "background_color" property and draws
// the "borders" in "border_color", if set.
func drawBackground(target RenderTarget, states RenderStates, r *RendererData, size Vector2f) {
	if c, ok := r.lookupColor(PropBackgroundColor); ok && c.A > 0 {
		target.DrawFilledRect(states, size, ApplyOpacity(c, states.Opacity))
	}
	borders := r.Outline(PropBorders)
	if borders != (Outline{}) {
		target.DrawBorders(states, borders, size, ApplyOpacity(r.Color(PropBorderColor), states.Opacity))
	}
}
