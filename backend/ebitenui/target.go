// Package ebitenui runs a retained.Gui inside an ebiten game: it draws the
// tree onto an *ebiten.Image and turns ebiten's polled input into
// retained.InputEvent values.
package ebitenui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/agiangrant/tessera/retained"
)

// faceSize is the pixel height of the bitmap face text is drawn with.
const faceSize = 13

// Texture wraps an ebiten image so widgets can draw it with
// retained.Picture.
type Texture struct {
	img *ebiten.Image
}

// NewTexture wraps img.
func NewTexture(img *ebiten.Image) *Texture {
	return &Texture{img: img}
}

// Image returns the wrapped image.
func (t *Texture) Image() *ebiten.Image { return t.img }

// Size returns the image size in pixels.
func (t *Texture) Size() retained.Vector2f {
	b := t.img.Bounds()
	return retained.Vector2f{X: float32(b.Dx()), Y: float32(b.Dy())}
}

// ============================================================================
// Target
// ============================================================================

// Target is a retained.RenderTarget drawing onto an ebiten image. Clipping
// layers are sub-images of the screen, so drawing outside them is dropped
// by ebiten itself.
type Target struct {
	layers []*ebiten.Image
	face   text.Face
	cache  *measureCache
}

// NewTarget creates a target using the basic 7x13 bitmap face scaled to the
// requested text size.
func NewTarget() *Target {
	return &Target{
		face:  text.NewGoXFace(basicfont.Face7x13),
		cache: newMeasureCache(4096),
	}
}

// Begin starts a frame on screen. Clipping layers left over from a previous
// frame are discarded.
func (t *Target) Begin(screen *ebiten.Image) {
	t.layers = append(t.layers[:0], screen)
}

func (t *Target) dst() *ebiten.Image {
	return t.layers[len(t.layers)-1]
}

// DrawFilledRect fills a rectangle at the local origin.
func (t *Target) DrawFilledRect(states retained.RenderStates, size retained.Vector2f, c color.RGBA) {
	if c.A == 0 || size.X <= 0 || size.Y <= 0 {
		return
	}
	vector.DrawFilledRect(t.dst(), states.Transform.X, states.Transform.Y, size.X, size.Y, c, false)
}

// DrawBorders draws one filled strip per side, snapped to whole pixels.
func (t *Target) DrawBorders(states retained.RenderStates, borders retained.Outline, size retained.Vector2f, c color.RGBA) {
	if c.A == 0 {
		return
	}
	for _, r := range borderRects(states.Transform, borders, size) {
		vector.DrawFilledRect(t.dst(), float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
	}
}

// borderRects splits an outline at tr into the four side strips in screen
// pixels. The left and right strips span the full height; top and bottom
// fit between them. Every edge is rounded on its own, so neighbouring
// strips share edges exactly.
func borderRects(tr retained.Transform, b retained.Outline, size retained.Vector2f) []image.Rectangle {
	px := func(v float32) int { return int(math.Round(float64(v))) }
	var rects []image.Rectangle
	add := func(x, y, w, h float32) {
		if w <= 0 || h <= 0 {
			return
		}
		r := image.Rect(px(tr.X+x), px(tr.Y+y), px(tr.X+x+w), px(tr.Y+y+h))
		if !r.Empty() {
			rects = append(rects, r)
		}
	}
	add(0, 0, b.Left, size.Y)
	add(size.X-b.Right, 0, b.Right, size.Y)
	add(b.Left, 0, size.X-b.Left-b.Right, b.Top)
	add(b.Left, size.Y-b.Bottom, size.X-b.Left-b.Right, b.Bottom)
	return rects
}

// DrawSprite draws a *Texture stretched to the sprite size. Other texture
// types are ignored.
func (t *Target) DrawSprite(states retained.RenderStates, sprite retained.Sprite) {
	tex, ok := sprite.Texture.(*Texture)
	if !ok || tex == nil || tex.img == nil {
		return
	}
	src := tex.Size()
	if src.X == 0 || src.Y == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sprite.Size.X/src.X), float64(sprite.Size.Y/src.Y))
	op.GeoM.Translate(float64(states.Transform.X), float64(states.Transform.Y))
	op.ColorScale.ScaleAlpha(states.Opacity)
	op.Filter = ebiten.FilterLinear
	t.dst().DrawImage(tex.img, op)
}

// DrawText draws a single line with its top-left corner at the local
// origin.
func (t *Target) DrawText(states retained.RenderStates, s string, textSize float32, c color.RGBA) {
	if s == "" || c.A == 0 {
		return
	}
	scale := float64(textSize) / faceSize
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(states.Transform.X), float64(states.Transform.Y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(t.dst(), s, t.face, op)
}

// MeasureText returns the size of a line of text at textSize.
func (t *Target) MeasureText(s string, textSize float32) retained.Vector2f {
	width, ok := t.cache.get(s)
	if !ok {
		w, _ := text.Measure(s, t.face, faceSize)
		width = float32(w)
		t.cache.put(s, width)
	}
	return retained.Vector2f{X: width * textSize / faceSize, Y: textSize}
}

// AddClippingLayer pushes a sub-image covering rect intersected with the
// current layer.
func (t *Target) AddClippingLayer(states retained.RenderStates, rect retained.Bounds) {
	cur := t.dst()
	r := clipRect(states.Transform, rect, cur.Bounds())
	t.layers = append(t.layers, cur.SubImage(r).(*ebiten.Image))
}

// RemoveClippingLayer pops the innermost layer. The screen itself is never
// popped.
func (t *Target) RemoveClippingLayer() {
	if len(t.layers) > 1 {
		t.layers = t.layers[:len(t.layers)-1]
	}
}

// clipRect converts a local rectangle to whole backend pixels, rounding
// outwards, and intersects it with the current layer.
func clipRect(tr retained.Transform, rect retained.Bounds, cur image.Rectangle) image.Rectangle {
	x0 := int(math.Floor(float64(tr.X + rect.X)))
	y0 := int(math.Floor(float64(tr.Y + rect.Y)))
	x1 := int(math.Ceil(float64(tr.X + rect.X + rect.Width)))
	y1 := int(math.Ceil(float64(tr.Y + rect.Y + rect.Height)))
	return image.Rect(x0, y0, x1, y1).Intersect(cur)
}
