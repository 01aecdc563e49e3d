package retained

// ============================================================================
// Host Input
// ============================================================================

// EventKind identifies the kind of host input event.
type EventKind uint8

const (
	KeyPressed EventKind = iota + 1
	KeyReleased
	TextEntered
	MouseMoved
	MouseButtonPressed
	MouseButtonReleased
	MouseWheelScrolled
	MouseEntered
	MouseLeft
	Resized
	LostFocus
	GainedFocus
	Closed
)

func (k EventKind) String() string {
	switch k {
	case KeyPressed:
		return "KeyPressed"
	case KeyReleased:
		return "KeyReleased"
	case TextEntered:
		return "TextEntered"
	case MouseMoved:
		return "MouseMoved"
	case MouseButtonPressed:
		return "MouseButtonPressed"
	case MouseButtonReleased:
		return "MouseButtonReleased"
	case MouseWheelScrolled:
		return "MouseWheelScrolled"
	case MouseEntered:
		return "MouseEntered"
	case MouseLeft:
		return "MouseLeft"
	case Resized:
		return "Resized"
	case LostFocus:
		return "LostFocus"
	case GainedFocus:
		return "GainedFocus"
	case Closed:
		return "Closed"
	}
	return "Unknown"
}

// InputEvent is one discrete input occurrence produced by the host. Only the
// fields relevant to Kind are meaningful. Mouse coordinates are in backend
// pixels; the Gui subtracts the viewport position.
type InputEvent struct {
	Kind EventKind

	// KeyPressed, KeyReleased
	Key       Key
	Modifiers Modifiers

	// TextEntered
	Rune rune

	// Mouse events
	X, Y   float32
	Button MouseButton
	Delta  float32

	// Resized
	Width, Height float32
}

// KeyPressedEvent builds a KeyPressed input event.
func KeyPressedEvent(key Key, mods Modifiers) InputEvent {
	return InputEvent{Kind: KeyPressed, Key: key, Modifiers: mods}
}

// KeyReleasedEvent builds a KeyReleased input event.
func KeyReleasedEvent(key Key, mods Modifiers) InputEvent {
	return InputEvent{Kind: KeyReleased, Key: key, Modifiers: mods}
}

// TextEnteredEvent builds a TextEntered input event.
func TextEnteredEvent(r rune) InputEvent {
	return InputEvent{Kind: TextEntered, Rune: r}
}

// MouseMovedEvent builds a MouseMoved input event.
func MouseMovedEvent(x, y float32) InputEvent {
	return InputEvent{Kind: MouseMoved, X: x, Y: y}
}

// MousePressedEvent builds a MouseButtonPressed input event.
func MousePressedEvent(button MouseButton, x, y float32) InputEvent {
	return InputEvent{Kind: MouseButtonPressed, Button: button, X: x, Y: y}
}

// MouseReleasedEvent builds a MouseButtonReleased input event.
func MouseReleasedEvent(button MouseButton, x, y float32) InputEvent {
	return InputEvent{Kind: MouseButtonReleased, Button: button, X: x, Y: y}
}

// MouseWheelEvent builds a MouseWheelScrolled input event.
func MouseWheelEvent(delta, x, y float32) InputEvent {
	return InputEvent{Kind: MouseWheelScrolled, Delta: delta, X: x, Y: y}
}

// ResizedEvent builds a Resized input event.
func ResizedEvent(width, height float32) InputEvent {
	return InputEvent{Kind: Resized, Width: width, Height: height}
}

// ============================================================================
// Keys
// ============================================================================

// Key is a logical keyboard key.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyEscape
	KeyTab
	KeySpace
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)
