package ebitenui

import (
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/agiangrant/tessera/retained"
)

func kinds(events []retained.InputEvent) []retained.EventKind {
	out := make([]retained.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestTranslatePointer(t *testing.T) {
	p := NewPoller()

	steps := []struct {
		name string
		snap snapshot
		want []retained.EventKind
	}{
		{
			name: "enter",
			snap: snapshot{cursorX: 10, cursorY: 10, inside: true, focused: true},
			want: []retained.EventKind{retained.MouseMoved},
		},
		{
			name: "still",
			snap: snapshot{cursorX: 10, cursorY: 10, inside: true, focused: true},
			want: []retained.EventKind{},
		},
		{
			name: "press",
			snap: snapshot{cursorX: 10, cursorY: 10, inside: true, focused: true, buttonsDown: []ebiten.MouseButton{ebiten.MouseButtonLeft}},
			want: []retained.EventKind{retained.MouseButtonPressed},
		},
		{
			name: "move and release",
			snap: snapshot{cursorX: 20, cursorY: 10, inside: true, focused: true, buttonsUp: []ebiten.MouseButton{ebiten.MouseButtonLeft}},
			want: []retained.EventKind{retained.MouseMoved, retained.MouseButtonReleased},
		},
		{
			name: "wheel",
			snap: snapshot{cursorX: 20, cursorY: 10, inside: true, focused: true, wheel: -1},
			want: []retained.EventKind{retained.MouseWheelScrolled},
		},
		{
			name: "leave",
			snap: snapshot{cursorX: -5, cursorY: 10, focused: true},
			want: []retained.EventKind{retained.MouseLeft},
		},
		{
			name: "blur",
			snap: snapshot{cursorX: -5, cursorY: 10},
			want: []retained.EventKind{retained.LostFocus},
		},
		{
			name: "refocus",
			snap: snapshot{cursorX: -5, cursorY: 10, focused: true},
			want: []retained.EventKind{retained.GainedFocus},
		},
	}
	for _, s := range steps {
		got := p.translate(&s.snap)
		if !slices.Equal(kinds(got), s.want) {
			t.Errorf("%s: events = %v, want %v", s.name, kinds(got), s.want)
		}
	}
}

func TestTranslateKeys(t *testing.T) {
	p := NewPoller()
	snap := snapshot{
		focused:  true,
		pressed:  []ebiten.Key{ebiten.KeyA, ebiten.KeyShift},
		released: []ebiten.Key{ebiten.KeyArrowLeft},
		mods:     retained.ModShift,
		chars:    []rune{'A'},
	}
	got := p.translate(&snap)
	want := []retained.EventKind{retained.KeyPressed, retained.TextEntered, retained.KeyReleased}
	if !slices.Equal(kinds(got), want) {
		t.Fatalf("events = %v, want %v", kinds(got), want)
	}
	if got[0].Key != retained.KeyA || !got[0].Modifiers.Shift() {
		t.Errorf("key event = %+v, want shift+A", got[0])
	}
	if got[1].Rune != 'A' {
		t.Errorf("rune = %q, want A", got[1].Rune)
	}
	if got[2].Key != retained.KeyLeft {
		t.Errorf("released key = %v, want KeyLeft", got[2].Key)
	}
}

func TestTranslateShortcutSuppressesText(t *testing.T) {
	p := NewPoller()
	snap := snapshot{
		focused: true,
		pressed: []ebiten.Key{ebiten.KeyA},
		mods:    retained.ModCtrl,
		chars:   []rune{'a'},
	}
	got := p.translate(&snap)
	if !slices.Equal(kinds(got), []retained.EventKind{retained.KeyPressed}) {
		t.Errorf("events = %v, want only KeyPressed", kinds(got))
	}
}

func TestIsRepeat(t *testing.T) {
	tests := []struct {
		ticks int
		want  bool
	}{
		{0, false},
		{1, true},
		{2, false},
		{repeatDelay - 1, false},
		{repeatDelay, true},
		{repeatDelay + 1, false},
		{repeatDelay + repeatInterval, true},
	}
	for _, tt := range tests {
		if got := isRepeat(tt.ticks); got != tt.want {
			t.Errorf("isRepeat(%d) = %v, want %v", tt.ticks, got, tt.want)
		}
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   ebiten.Key
		want retained.Key
	}{
		{ebiten.KeyZ, retained.KeyZ},
		{ebiten.KeyDigit7, retained.Key7},
		{ebiten.KeyNumpadEnter, retained.KeyEnter},
		{ebiten.KeyArrowDown, retained.KeyDown},
		{ebiten.KeyF12, retained.KeyF12},
		{ebiten.KeyShift, retained.KeyUnknown},
	}
	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.want {
			t.Errorf("convertKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
