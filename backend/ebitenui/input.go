package ebitenui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/agiangrant/tessera/retained"
)

// Key repeat timing in ticks, matching a typical desktop feel at 60 TPS.
const (
	repeatDelay    = 30
	repeatInterval = 3
)

// snapshot is the input state read from ebiten during one tick.
type snapshot struct {
	cursorX, cursorY float32
	inside           bool // cursor is inside the window
	focused          bool

	pressed  []ebiten.Key // just pressed, or repeating
	released []ebiten.Key
	mods     retained.Modifiers
	chars    []rune

	buttonsDown []ebiten.MouseButton
	buttonsUp   []ebiten.MouseButton
	wheel       float32
}

// Poller turns ebiten's polled input state into discrete events by
// comparing consecutive ticks.
type Poller struct {
	prev    snapshot
	started bool
	width   int
	height  int
	snap    snapshot
}

// NewPoller creates a poller. The window size is needed to detect the
// cursor leaving the window.
func NewPoller() *Poller {
	return &Poller{}
}

// SetWindowSize updates the area the cursor is considered inside.
func (p *Poller) SetWindowSize(width, height int) {
	p.width, p.height = width, height
}

// Poll reads ebiten's input state. It must be called from Game.Update.
func (p *Poller) Poll() []retained.InputEvent {
	p.read(&p.snap)
	return p.translate(&p.snap)
}

func (p *Poller) read(s *snapshot) {
	x, y := ebiten.CursorPosition()
	s.cursorX, s.cursorY = float32(x), float32(y)
	s.inside = x >= 0 && y >= 0 && x < p.width && y < p.height
	s.focused = ebiten.IsFocused()

	s.pressed = s.pressed[:0]
	for _, k := range inpututil.AppendPressedKeys(nil) {
		if isRepeat(inpututil.KeyPressDuration(k)) {
			s.pressed = append(s.pressed, k)
		}
	}
	s.released = inpututil.AppendJustReleasedKeys(s.released[:0])
	s.mods = currentModifiers()
	s.chars = ebiten.AppendInputChars(s.chars[:0])

	s.buttonsDown, s.buttonsUp = s.buttonsDown[:0], s.buttonsUp[:0]
	for _, b := range []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight, ebiten.MouseButtonMiddle} {
		if inpututil.IsMouseButtonJustPressed(b) {
			s.buttonsDown = append(s.buttonsDown, b)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			s.buttonsUp = append(s.buttonsUp, b)
		}
	}
	_, wy := ebiten.Wheel()
	s.wheel = float32(wy)
}

// isRepeat reports whether a key held for d ticks produces a press this
// tick.
func isRepeat(d int) bool {
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

func currentModifiers() retained.Modifiers {
	var m retained.Modifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		m |= retained.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		m |= retained.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		m |= retained.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		m |= retained.ModSuper
	}
	return m
}

// translate compares s with the previous snapshot and emits events in the
// order a windowing system would: focus, pointer, buttons, wheel, keys,
// text.
func (p *Poller) translate(s *snapshot) []retained.InputEvent {
	var events []retained.InputEvent
	prev := p.prev
	if !p.started {
		prev = snapshot{focused: true}
		p.started = true
	}

	if s.focused != prev.focused {
		if s.focused {
			events = append(events, retained.InputEvent{Kind: retained.GainedFocus})
		} else {
			events = append(events, retained.InputEvent{Kind: retained.LostFocus})
		}
	}

	switch {
	case s.inside && (!prev.inside || s.cursorX != prev.cursorX || s.cursorY != prev.cursorY):
		events = append(events, retained.MouseMovedEvent(s.cursorX, s.cursorY))
	case !s.inside && prev.inside:
		events = append(events, retained.InputEvent{Kind: retained.MouseLeft})
	}

	for _, b := range s.buttonsDown {
		if btn := convertMouseButton(b); btn != retained.MouseButtonNone {
			e := retained.MousePressedEvent(btn, s.cursorX, s.cursorY)
			e.Modifiers = s.mods
			events = append(events, e)
		}
	}
	if s.wheel != 0 {
		e := retained.MouseWheelEvent(s.wheel, s.cursorX, s.cursorY)
		e.Modifiers = s.mods
		events = append(events, e)
	}
	for _, b := range s.buttonsUp {
		if btn := convertMouseButton(b); btn != retained.MouseButtonNone {
			e := retained.MouseReleasedEvent(btn, s.cursorX, s.cursorY)
			e.Modifiers = s.mods
			events = append(events, e)
		}
	}

	for _, k := range s.pressed {
		if key := convertKey(k); key != retained.KeyUnknown {
			events = append(events, retained.KeyPressedEvent(key, s.mods))
		}
	}
	// Shortcuts do not also type their letter.
	if !s.mods.Ctrl() && !s.mods.Super() {
		for _, r := range s.chars {
			events = append(events, retained.TextEnteredEvent(r))
		}
	}
	for _, k := range s.released {
		if key := convertKey(k); key != retained.KeyUnknown {
			events = append(events, retained.KeyReleasedEvent(key, s.mods))
		}
	}

	p.prev = snapshot{cursorX: s.cursorX, cursorY: s.cursorY, inside: s.inside, focused: s.focused}
	return events
}

func convertMouseButton(b ebiten.MouseButton) retained.MouseButton {
	switch b {
	case ebiten.MouseButtonLeft:
		return retained.MouseButtonLeft
	case ebiten.MouseButtonRight:
		return retained.MouseButtonRight
	case ebiten.MouseButtonMiddle:
		return retained.MouseButtonMiddle
	default:
		return retained.MouseButtonNone
	}
}

var keyMap = map[ebiten.Key]retained.Key{
	ebiten.KeyA: retained.KeyA, ebiten.KeyB: retained.KeyB, ebiten.KeyC: retained.KeyC,
	ebiten.KeyD: retained.KeyD, ebiten.KeyE: retained.KeyE, ebiten.KeyF: retained.KeyF,
	ebiten.KeyG: retained.KeyG, ebiten.KeyH: retained.KeyH, ebiten.KeyI: retained.KeyI,
	ebiten.KeyJ: retained.KeyJ, ebiten.KeyK: retained.KeyK, ebiten.KeyL: retained.KeyL,
	ebiten.KeyM: retained.KeyM, ebiten.KeyN: retained.KeyN, ebiten.KeyO: retained.KeyO,
	ebiten.KeyP: retained.KeyP, ebiten.KeyQ: retained.KeyQ, ebiten.KeyR: retained.KeyR,
	ebiten.KeyS: retained.KeyS, ebiten.KeyT: retained.KeyT, ebiten.KeyU: retained.KeyU,
	ebiten.KeyV: retained.KeyV, ebiten.KeyW: retained.KeyW, ebiten.KeyX: retained.KeyX,
	ebiten.KeyY: retained.KeyY, ebiten.KeyZ: retained.KeyZ,

	ebiten.KeyDigit0: retained.Key0, ebiten.KeyDigit1: retained.Key1, ebiten.KeyDigit2: retained.Key2,
	ebiten.KeyDigit3: retained.Key3, ebiten.KeyDigit4: retained.Key4, ebiten.KeyDigit5: retained.Key5,
	ebiten.KeyDigit6: retained.Key6, ebiten.KeyDigit7: retained.Key7, ebiten.KeyDigit8: retained.Key8,
	ebiten.KeyDigit9: retained.Key9,

	ebiten.KeyEscape:      retained.KeyEscape,
	ebiten.KeyTab:         retained.KeyTab,
	ebiten.KeySpace:       retained.KeySpace,
	ebiten.KeyEnter:       retained.KeyEnter,
	ebiten.KeyNumpadEnter: retained.KeyEnter,
	ebiten.KeyBackspace:   retained.KeyBackspace,
	ebiten.KeyDelete:      retained.KeyDelete,
	ebiten.KeyArrowLeft:   retained.KeyLeft,
	ebiten.KeyArrowRight:  retained.KeyRight,
	ebiten.KeyArrowUp:     retained.KeyUp,
	ebiten.KeyArrowDown:   retained.KeyDown,
	ebiten.KeyHome:        retained.KeyHome,
	ebiten.KeyEnd:         retained.KeyEnd,
	ebiten.KeyPageUp:      retained.KeyPageUp,
	ebiten.KeyPageDown:    retained.KeyPageDown,
	ebiten.KeyInsert:      retained.KeyInsert,

	ebiten.KeyF1: retained.KeyF1, ebiten.KeyF2: retained.KeyF2, ebiten.KeyF3: retained.KeyF3,
	ebiten.KeyF4: retained.KeyF4, ebiten.KeyF5: retained.KeyF5, ebiten.KeyF6: retained.KeyF6,
	ebiten.KeyF7: retained.KeyF7, ebiten.KeyF8: retained.KeyF8, ebiten.KeyF9: retained.KeyF9,
	ebiten.KeyF10: retained.KeyF10, ebiten.KeyF11: retained.KeyF11, ebiten.KeyF12: retained.KeyF12,
}

// convertKey maps an ebiten key to a logical key. Modifier keys and keys
// the widget core has no use for map to KeyUnknown.
func convertKey(k ebiten.Key) retained.Key {
	return keyMap[k]
}
