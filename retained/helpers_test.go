package retained

import (
	"fmt"
	"image/color"
	"testing"
)

// recordingTarget is a RenderTarget that records every call.
type recordingTarget struct {
	ops       []string
	clipDepth int
	maxDepth  int
}

func (r *recordingTarget) DrawFilledRect(states RenderStates, size Vector2f, c color.RGBA) {
	r.ops = append(r.ops, fmt.Sprintf("rect %v,%v %vx%v", states.Transform.X, states.Transform.Y, size.X, size.Y))
}

func (r *recordingTarget) DrawBorders(states RenderStates, borders Outline, size Vector2f, c color.RGBA) {
	r.ops = append(r.ops, fmt.Sprintf("borders %v,%v %vx%v", states.Transform.X, states.Transform.Y, size.X, size.Y))
}

func (r *recordingTarget) DrawSprite(states RenderStates, sprite Sprite) {
	r.ops = append(r.ops, fmt.Sprintf("sprite %v,%v %vx%v", states.Transform.X, states.Transform.Y, sprite.Size.X, sprite.Size.Y))
}

func (r *recordingTarget) DrawText(states RenderStates, text string, textSize float32, c color.RGBA) {
	r.ops = append(r.ops, fmt.Sprintf("text %q", text))
}

// MeasureText uses a fixed advance of half the text size per rune.
func (r *recordingTarget) MeasureText(text string, textSize float32) Vector2f {
	return Vector2f{float32(len([]rune(text))) * textSize / 2, textSize}
}

func (r *recordingTarget) AddClippingLayer(states RenderStates, rect Bounds) {
	r.clipDepth++
	r.maxDepth = max(r.maxDepth, r.clipDepth)
}

func (r *recordingTarget) RemoveClippingLayer() { r.clipDepth-- }

// probe is a leaf widget that records what happens to it.
type probe struct {
	WidgetBase
	log   *[]string
	draws int
}

func newProbe(name string, log *[]string) *probe {
	p := &probe{log: log}
	p.Init(p, KindWidget)
	p.name = name
	p.focusable = true
	return p
}

func (p *probe) record(s string) {
	if p.log != nil {
		*p.log = append(*p.log, p.name+":"+s)
	}
}

func (p *probe) Draw(RenderTarget, RenderStates) { p.draws++ }

func (p *probe) HandleMouse(e *MouseEvent) {
	if e.Target() == p.self {
		p.record(e.Type().String())
	}
}

func (p *probe) FocusChanged(focused bool) {
	if focused {
		p.record("gained")
	} else {
		p.record("lost")
	}
}

func newTestGui(t *testing.T) *Gui {
	t.Helper()
	g := NewGui(DefaultConfig())
	g.SetViewport(Bounds{Width: 800, Height: 600})
	return g
}

func mustAdd(t *testing.T, c interface {
	Add(Widget, string) error
}, w Widget, name string) {
	t.Helper()
	if err := c.Add(w, name); err != nil {
		t.Fatalf("Add(%s) error = %v", name, err)
	}
}

func click(g *Gui, x, y float32) {
	g.DispatchEvent(MousePressedEvent(MouseButtonLeft, x, y))
	g.DispatchEvent(MouseReleasedEvent(MouseButtonLeft, x, y))
}
