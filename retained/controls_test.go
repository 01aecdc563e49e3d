package retained

import (
	"slices"
	"strings"
	"testing"
	"time"
)

func TestButtonPress(t *testing.T) {
	tests := []struct {
		name    string
		disable bool
		act     func(g *Gui, b *Button)
		want    int
	}{
		{
			name: "click",
			act:  func(g *Gui, b *Button) { click(g, 20, 10) },
			want: 1,
		},
		{
			name: "space",
			act: func(g *Gui, b *Button) {
				b.SetFocused(true)
				g.DispatchEvent(KeyPressedEvent(KeySpace, 0))
			},
			want: 1,
		},
		{
			name: "enter",
			act: func(g *Gui, b *Button) {
				b.SetFocused(true)
				g.DispatchEvent(KeyPressedEvent(KeyEnter, 0))
			},
			want: 1,
		},
		{
			name: "other key",
			act: func(g *Gui, b *Button) {
				b.SetFocused(true)
				g.DispatchEvent(KeyPressedEvent(KeyA, 0))
			},
			want: 0,
		},
		{
			name: "press without release",
			act: func(g *Gui, b *Button) {
				g.DispatchEvent(MousePressedEvent(MouseButtonLeft, 20, 10))
			},
			want: 0,
		},
		{
			name:    "disabled",
			disable: true,
			act:     func(g *Gui, b *Button) { click(g, 20, 10) },
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGui(t)
			b := NewButton("OK")
			b.SetSize(80, 24)
			mustAdd(t, g, b, "ok")
			b.SetEnabled(!tt.disable)
			pressed := 0
			b.OnPress.Connect(func() { pressed++ })

			tt.act(g, b)
			if pressed != tt.want {
				t.Errorf("OnPress fired %d times, want %d", pressed, tt.want)
			}
		})
	}
}

func TestButtonDrawsCenteredText(t *testing.T) {
	g := newTestGui(t)
	b := NewButton("OK")
	b.SetPosition(10, 10)
	b.SetSize(80, 24)
	mustAdd(t, g, b, "ok")

	target := &recordingTarget{}
	g.Draw(target)
	if !slices.Contains(target.ops, `text "OK"`) {
		t.Errorf("ops = %v, want the caption", target.ops)
	}
	if !slices.Contains(target.ops, "borders 10,10 80x24") {
		t.Errorf("ops = %v, want borders", target.ops)
	}
}

func newTestEditBox(t *testing.T, g *Gui) *EditBox {
	t.Helper()
	box := NewEditBox()
	box.SetPosition(100, 100)
	box.SetSize(100, 24)
	mustAdd(t, g, box, "edit")
	return box
}

func typeText(g *Gui, s string) {
	for _, r := range s {
		g.DispatchEvent(TextEnteredEvent(r))
	}
}

func TestEditBoxTyping(t *testing.T) {
	g := newTestGui(t)
	box := newTestEditBox(t, g)
	var changes, returns []string
	box.OnTextChange.Connect(func(s string) { changes = append(changes, s) })
	box.OnReturn.Connect(func(s string) { returns = append(returns, s) })
	box.SetFocused(true)

	typeText(g, "hi")
	g.DispatchEvent(KeyPressedEvent(KeyBackspace, 0))
	g.DispatchEvent(KeyPressedEvent(KeyEnter, 0))

	if box.Text() != "h" {
		t.Errorf("Text = %q, want h", box.Text())
	}
	if want := []string{"h", "hi", "h"}; !slices.Equal(changes, want) {
		t.Errorf("OnTextChange = %v, want %v", changes, want)
	}
	if want := []string{"h"}; !slices.Equal(returns, want) {
		t.Errorf("OnReturn = %v, want %v", returns, want)
	}

	// Backspace at the start changes nothing.
	g.DispatchEvent(KeyPressedEvent(KeyHome, 0))
	g.DispatchEvent(KeyPressedEvent(KeyBackspace, 0))
	if len(changes) != 3 {
		t.Errorf("OnTextChange fired for a no-op: %v", changes)
	}
}

func TestEditBoxSelectAllAndUndo(t *testing.T) {
	g := newTestGui(t)
	box := newTestEditBox(t, g)
	box.SetFocused(true)
	typeText(g, "hello")

	g.DispatchEvent(KeyPressedEvent(KeyA, ModCtrl))
	typeText(g, "x")
	if box.Text() != "x" {
		t.Errorf("Text after select all = %q, want x", box.Text())
	}

	g.DispatchEvent(KeyPressedEvent(KeyZ, ModCtrl))
	if box.Text() != "hello" {
		t.Errorf("Text after undo = %q, want hello", box.Text())
	}
	if s, e := box.Buffer().Selection(); s != 0 || e != 5 {
		t.Errorf("Selection after undo = %d,%d, want 0,5", s, e)
	}
}

func TestEditBoxCtrlWordKeys(t *testing.T) {
	g := newTestGui(t)
	box := newTestEditBox(t, g)
	box.SetFocused(true)
	typeText(g, "one two")

	g.DispatchEvent(KeyPressedEvent(KeyBackspace, ModCtrl))
	if box.Text() != "one " {
		t.Errorf("Text = %q, want %q", box.Text(), "one ")
	}
	g.DispatchEvent(KeyPressedEvent(KeyLeft, ModCtrl))
	if box.Buffer().Caret() != 0 {
		t.Errorf("Caret = %d, want 0", box.Buffer().Caret())
	}
	g.DispatchEvent(KeyPressedEvent(KeyDelete, ModCtrl))
	if box.Text() != " " {
		t.Errorf("Text = %q, want a single space", box.Text())
	}
}

func TestEditBoxCaretBlink(t *testing.T) {
	g := newTestGui(t)
	box := newTestEditBox(t, g)

	if g.AdvanceTime(time.Second) {
		t.Error("unfocused edit box requested a redraw")
	}
	box.SetFocused(true)
	if !box.Buffer().CaretVisible() {
		t.Fatal("caret hidden after focus")
	}
	if !g.AdvanceTime(500 * time.Millisecond) {
		t.Error("blink did not request a redraw")
	}
	if box.Buffer().CaretVisible() {
		t.Error("caret still visible after one interval")
	}

	// Typing shows the caret again.
	typeText(g, "a")
	if !box.Buffer().CaretVisible() {
		t.Error("caret hidden after typing")
	}
}

func TestEditBoxClickPlacesCaret(t *testing.T) {
	g := newTestGui(t)
	box := newTestEditBox(t, g)
	box.SetText("hello")

	// The recording target measures 6.5px per rune at the default size.
	g.Draw(&recordingTarget{})

	tests := []struct {
		x    float32
		want int
	}{
		{x: 100, want: 0},
		{x: 119, want: 2},
		{x: 123, want: 3},
		{x: 195, want: 5},
	}
	for _, tt := range tests {
		click(g, tt.x, 110)
		if got := box.Buffer().Caret(); got != tt.want {
			t.Errorf("click at %v: caret = %d, want %d", tt.x, got, tt.want)
		}
	}
	if !box.IsFocused() {
		t.Error("click did not focus the edit box")
	}
}

func TestEditBoxPlaceholder(t *testing.T) {
	g := newTestGui(t)
	box := newTestEditBox(t, g)
	box.SetPlaceholder("search")

	target := &recordingTarget{}
	g.Draw(target)
	if !slices.Contains(target.ops, `text "search"`) {
		t.Errorf("ops = %v, want the placeholder", target.ops)
	}

	box.SetText("go")
	target = &recordingTarget{}
	g.Draw(target)
	for _, op := range target.ops {
		if strings.Contains(op, "search") {
			t.Errorf("placeholder drawn over text: %v", target.ops)
		}
	}
}

func TestLabelIgnoresMouse(t *testing.T) {
	g := newTestGui(t)
	var log []string
	p := newProbe("p", &log)
	p.SetSize(50, 50)
	mustAdd(t, g, p, "p")
	l := NewLabel("over")
	l.SetSize(50, 50)
	mustAdd(t, g, l, "l")

	if got := g.WidgetAt(10, 10); got != p {
		t.Errorf("WidgetAt = %v, want the probe under the label", got)
	}
	l.SetIgnoreMouseEvents(false)
	if got := g.WidgetAt(10, 10); got != l {
		t.Errorf("WidgetAt = %v, want the label", got)
	}
}

type testTexture struct{ w, h float32 }

func (t testTexture) Size() Vector2f { return Vector2f{t.w, t.h} }

func TestPicture(t *testing.T) {
	g := newTestGui(t)
	pic := NewPicture(testTexture{32, 16})
	pic.SetPosition(10, 10)
	mustAdd(t, g, pic, "pic")
	if got, want := pic.Size(), (Vector2f{32, 16}); got != want {
		t.Errorf("Size = %v, want %v", got, want)
	}

	target := &recordingTarget{}
	g.Draw(target)
	if !slices.Contains(target.ops, "sprite 10,10 32x16") {
		t.Errorf("ops = %v, want the sprite", target.ops)
	}

	empty := NewPicture(nil)
	if empty.Texture() != nil {
		t.Error("empty picture has a texture")
	}
	empty.Renderer().Set(PropTexture, testTexture{4, 4})
	if empty.Texture() == nil {
		t.Error("renderer texture not used")
	}
}
