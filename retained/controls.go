package retained

import (
	"image/color"
	"time"
)

// Leaf widgets: Button, Label, Picture, EditBox.
// They draw with rectangles, borders, text and sprites only.

// textSizeOf returns the text size of w: its renderer's text_size, else the
// Gui configuration, else the default.
func textSizeOf(w *WidgetBase) float32 {
	if v, ok := w.renderer.lookupNumber(PropTextSize); ok && v > 0 {
		return v
	}
	if g := w.gui(); g != nil && g.cfg.TextSize > 0 {
		return g.cfg.TextSize
	}
	return DefaultConfig().TextSize
}

// stateColor picks the first property set among the candidates.
func stateColor(r *RendererData, props ...string) color.RGBA {
	for _, p := range props {
		if c, ok := r.lookupColor(p); ok {
			return c
		}
	}
	return color.RGBA{}
}

// ============================================================================
// Button
// ============================================================================

// Button is a focusable push button with a text.
type Button struct {
	WidgetBase
	text string

	// OnPress fires on a left click, or on Space or Enter while focused.
	OnPress VoidSignal
}

// NewButton creates a button.
func NewButton(text string) *Button {
	b := &Button{text: text}
	b.Init(b, KindButton)
	b.focusable = true
	return b
}

// Text returns the caption.
func (b *Button) Text() string { return b.text }

// SetText changes the caption.
func (b *Button) SetText(text string) { b.text = text }

// HandleMouse turns a click on the button into OnPress.
func (b *Button) HandleMouse(e *MouseEvent) {
	if e.Type() == EventClick && e.Button == MouseButtonLeft && e.Target() == b.self {
		b.OnPress.emit(&b.WidgetBase)
		e.StopPropagation()
	}
}

// HandleKey presses the button on Space or Enter.
func (b *Button) HandleKey(e *KeyEvent) {
	if e.Type() != EventKeyDown {
		return
	}
	if e.Key == KeySpace || e.Key == KeyEnter {
		b.OnPress.emit(&b.WidgetBase)
	}
}

// Draw draws the frame in the color of the current state and the centered
// caption.
func (b *Button) Draw(target RenderTarget, states RenderStates) {
	r := b.renderer
	size := b.Size()

	var bg color.RGBA
	switch {
	case !b.enabled:
		bg = stateColor(r, PropBackgroundColorDisabled, PropBackgroundColor)
	case b.pressed && b.hovered:
		bg = stateColor(r, PropBackgroundColorDown, PropBackgroundColorHover, PropBackgroundColor)
	case b.hovered:
		bg = stateColor(r, PropBackgroundColorHover, PropBackgroundColor)
	default:
		bg = r.Color(PropBackgroundColor)
	}
	if bg.A > 0 {
		target.DrawFilledRect(states, size, ApplyOpacity(bg, states.Opacity))
	}
	if borders := r.Outline(PropBorders); borders != (Outline{}) {
		bc := r.Color(PropBorderColor)
		if b.focused {
			bc = stateColor(r, PropBorderColorFocused, PropBorderColor)
		}
		target.DrawBorders(states, borders, size, ApplyOpacity(bc, states.Opacity))
	}

	if b.text == "" {
		return
	}
	textSize := textSizeOf(&b.WidgetBase)
	tc := r.Color(PropTextColor)
	if !b.enabled {
		tc = stateColor(r, PropTextColorDisabled, PropTextColor)
	}
	m := target.MeasureText(b.text, textSize)
	ts := states
	ts.Transform = states.Transform.Translate(Vector2f{(size.X - m.X) / 2, (size.Y - m.Y) / 2})
	target.DrawText(ts, b.text, textSize, ApplyOpacity(tc, states.Opacity))
}

// ============================================================================
// Label
// ============================================================================

// Label shows a line of text. It ignores the mouse unless told otherwise.
type Label struct {
	WidgetBase
	text string
}

// NewLabel creates a label.
func NewLabel(text string) *Label {
	l := &Label{text: text}
	l.Init(l, KindLabel)
	l.ignoreMouse = true
	return l
}

// Text returns the label text.
func (l *Label) Text() string { return l.text }

// SetText changes the label text.
func (l *Label) SetText(text string) { l.text = text }

// Draw draws the background, if any, and the text inside the padding.
func (l *Label) Draw(target RenderTarget, states RenderStates) {
	r := l.renderer
	drawBackground(target, states, r, l.Size())
	if l.text == "" {
		return
	}
	pad := r.Outline(PropBorders).Add(r.Outline(PropPadding))
	ts := states
	ts.Transform = states.Transform.Translate(pad.Offset())
	target.DrawText(ts, l.text, textSizeOf(&l.WidgetBase), ApplyOpacity(r.Color(PropTextColor), states.Opacity))
}

// ============================================================================
// Picture
// ============================================================================

// Picture draws a texture stretched over its size.
type Picture struct {
	WidgetBase
	texture Texture
}

// NewPicture creates a picture sized to its texture.
func NewPicture(tex Texture) *Picture {
	p := &Picture{texture: tex}
	p.Init(p, KindPicture)
	if tex != nil {
		size := tex.Size()
		p.SetSize(size.X, size.Y)
	}
	return p
}

// Texture returns the texture, or the renderer's "texture" property when
// none was given.
func (p *Picture) Texture() Texture {
	if p.texture != nil {
		return p.texture
	}
	return p.renderer.Texture(PropTexture)
}

// SetTexture replaces the texture. The size is kept.
func (p *Picture) SetTexture(tex Texture) { p.texture = tex }

// Draw draws the texture.
func (p *Picture) Draw(target RenderTarget, states RenderStates) {
	if tex := p.Texture(); tex != nil {
		target.DrawSprite(states, Sprite{Texture: tex, Size: p.Size()})
	}
}

// ============================================================================
// EditBox
// ============================================================================

// EditBox is a single-line text field.
type EditBox struct {
	WidgetBase
	buf         *TextBuffer
	placeholder string

	// Caret x positions measured by the last Draw, one per rune boundary.
	caretX []float32

	// OnTextChange carries the new text after every edit.
	OnTextChange Signal[string]

	// OnReturn carries the text when Enter is pressed.
	OnReturn Signal[string]
}

// NewEditBox creates an empty edit box.
func NewEditBox() *EditBox {
	b := &EditBox{buf: NewTextBuffer(DefaultConfig().CaretBlinkInterval())}
	b.Init(b, KindEditBox)
	b.focusable = true
	return b
}

// Text returns the content.
func (b *EditBox) Text() string { return b.buf.Text() }

// SetText replaces the content and emits OnTextChange if it differs.
func (b *EditBox) SetText(text string) {
	old := b.buf.Text()
	b.buf.SetText(text)
	if t := b.buf.Text(); t != old {
		b.OnTextChange.emit(&b.WidgetBase, t)
	}
}

// Buffer gives access to caret, selection and limits.
func (b *EditBox) Buffer() *TextBuffer { return b.buf }

// SetPlaceholder sets the text shown while the box is empty.
func (b *EditBox) SetPlaceholder(text string) { b.placeholder = text }

// Placeholder returns the placeholder text.
func (b *EditBox) Placeholder() string { return b.placeholder }

// HandleKey edits the content.
func (b *EditBox) HandleKey(e *KeyEvent) {
	buf := b.buf
	changed := false
	switch e.Type() {
	case EventKeyPress:
		changed = buf.Insert(string(e.Char))
	case EventKeyDown:
		ctrl, shift := e.Modifiers.Ctrl(), e.Modifiers.Shift()
		switch e.Key {
		case KeyBackspace:
			if ctrl {
				changed = buf.DeleteWord(false)
			} else {
				changed = buf.Delete(-1)
			}
		case KeyDelete:
			if ctrl {
				changed = buf.DeleteWord(true)
			} else {
				changed = buf.Delete(1)
			}
		case KeyLeft:
			if ctrl {
				buf.MoveWord(false, shift)
			} else {
				buf.MoveCaret(-1, shift)
			}
		case KeyRight:
			if ctrl {
				buf.MoveWord(true, shift)
			} else {
				buf.MoveCaret(1, shift)
			}
		case KeyHome:
			buf.MoveToStart(shift)
		case KeyEnd:
			buf.MoveToEnd(shift)
		case KeyA:
			if ctrl {
				buf.SelectAll()
			}
		case KeyZ:
			if ctrl {
				changed = buf.Undo()
			}
		case KeyEnter:
			b.OnReturn.emit(&b.WidgetBase, buf.Text())
		}
	}
	if changed {
		b.OnTextChange.emit(&b.WidgetBase, buf.Text())
	}
}

// HandleMouse places the caret at the pressed position.
func (b *EditBox) HandleMouse(e *MouseEvent) {
	if e.Type() != EventMouseDown || e.Target() != b.self {
		return
	}
	x := e.LocalX - b.textOffset().X
	caret := len(b.caretX) - 1
	for i := 1; i < len(b.caretX); i++ {
		if x < (b.caretX[i-1]+b.caretX[i])/2 {
			caret = i - 1
			break
		}
	}
	b.buf.SetCaret(max(caret, 0))
}

// FocusChanged restarts the caret blink.
func (b *EditBox) FocusChanged(bool) { b.buf.ResetBlink() }

// UpdateTime blinks the caret while focused.
func (b *EditBox) UpdateTime(elapsed time.Duration) bool {
	if !b.focused {
		return false
	}
	if g := b.gui(); g != nil {
		b.buf.SetBlinkInterval(g.cfg.CaretBlinkInterval())
	}
	return b.buf.Advance(elapsed)
}

func (b *EditBox) textOffset() Vector2f {
	r := b.renderer
	return r.Outline(PropBorders).Add(r.Outline(PropPadding)).Offset()
}

// Draw draws the frame, the text and the caret.
func (b *EditBox) Draw(target RenderTarget, states RenderStates) {
	r := b.renderer
	size := b.Size()
	if bg := r.Color(PropBackgroundColor); bg.A > 0 {
		target.DrawFilledRect(states, size, ApplyOpacity(bg, states.Opacity))
	}
	borders := r.Outline(PropBorders)
	if borders != (Outline{}) {
		bc := r.Color(PropBorderColor)
		if b.focused {
			bc = stateColor(r, PropBorderColorFocused, PropBorderColor)
		}
		target.DrawBorders(states, borders, size, ApplyOpacity(bc, states.Opacity))
	}

	inset := borders.Add(r.Outline(PropPadding))
	area := Bounds{X: inset.Left, Y: inset.Top, Width: size.X - inset.Horizontal(), Height: size.Y - inset.Vertical()}
	if area.IsEmpty() {
		return
	}
	target.AddClippingLayer(states, area)
	defer target.RemoveClippingLayer()

	textSize := textSizeOf(&b.WidgetBase)
	ts := states
	ts.Transform = states.Transform.Translate(area.Position())

	runes := []rune(b.buf.Text())
	b.caretX = b.caretX[:0]
	for i := 0; i <= len(runes); i++ {
		b.caretX = append(b.caretX, target.MeasureText(string(runes[:i]), textSize).X)
	}

	switch {
	case len(runes) > 0:
		if s, e := b.buf.Selection(); s != e {
			sel := ts
			sel.Transform = ts.Transform.Translate(Vector2f{b.caretX[s], 0})
			hl := ApplyOpacity(r.Color(PropCaretColor), 0.25*states.Opacity)
			target.DrawFilledRect(sel, Vector2f{b.caretX[e] - b.caretX[s], area.Height}, hl)
		}
		target.DrawText(ts, string(runes), textSize, ApplyOpacity(r.Color(PropTextColor), states.Opacity))
	case b.placeholder != "":
		pc := stateColor(r, PropTextColorDisabled, PropTextColor)
		target.DrawText(ts, b.placeholder, textSize, ApplyOpacity(pc, states.Opacity*0.6))
	}

	if b.focused && b.buf.CaretVisible() {
		cs := ts
		cs.Transform = ts.Transform.Translate(Vector2f{b.caretX[b.buf.Caret()], 0})
		width := max(1, r.Number(PropCaretWidth))
		target.DrawFilledRect(cs, Vector2f{width, area.Height}, ApplyOpacity(r.Color(PropCaretColor), states.Opacity))
	}
}
