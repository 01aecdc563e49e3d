package retained

import (
	"sync"
	"time"
)

// ============================================================================
// Event Types
// ============================================================================

// EventType identifies the kind of widget-level event. Host input arrives
// as an InputEvent and is turned into these by the Gui dispatcher.
type EventType uint8

const (
	// Mouse events
	EventMouseEnter EventType = iota + 1
	EventMouseLeave
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventClick
	EventDoubleClick
	EventRightClick
	EventMouseWheel

	// Keyboard events
	EventKeyDown
	EventKeyUp
	EventKeyPress // Character input
)

func (t EventType) String() string {
	switch t {
	case EventMouseEnter:
		return "mouse-enter"
	case EventMouseLeave:
		return "mouse-leave"
	case EventMouseMove:
		return "mouse-move"
	case EventMouseDown:
		return "mouse-down"
	case EventMouseUp:
		return "mouse-up"
	case EventClick:
		return "click"
	case EventDoubleClick:
		return "double-click"
	case EventRightClick:
		return "right-click"
	case EventMouseWheel:
		return "mouse-wheel"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	case EventKeyPress:
		return "key-press"
	}
	return "unknown"
}

// MouseButton identifies which mouse button was pressed.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// Modifier keys
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper // Cmd on Mac, Win on Windows
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }
func (m Modifiers) Super() bool { return m&ModSuper != 0 }

// ============================================================================
// Event Interface and Base
// ============================================================================

// Event is the interface for all widget-level events.
type Event interface {
	// Type returns the event type.
	Type() EventType

	// Target returns the widget that was hit (for mouse) or focused (for keyboard).
	Target() Widget

	// CurrentTarget returns the widget currently handling the event while it bubbles.
	CurrentTarget() Widget

	// StopPropagation prevents the event from reaching further ancestors.
	StopPropagation()

	// IsPropagationStopped returns true if propagation was stopped.
	IsPropagationStopped() bool
}

// eventBase provides common event functionality.
type eventBase struct {
	eventType          EventType
	target             Widget
	currentTarget      Widget
	propagationStopped bool
}

func (e *eventBase) Type() EventType            { return e.eventType }
func (e *eventBase) Target() Widget             { return e.target }
func (e *eventBase) CurrentTarget() Widget      { return e.currentTarget }
func (e *eventBase) StopPropagation()           { e.propagationStopped = true }
func (e *eventBase) IsPropagationStopped() bool { return e.propagationStopped }

// ============================================================================
// Mouse Event
// ============================================================================

// MouseEvent represents mouse interaction events.
type MouseEvent struct {
	eventBase

	// Root coordinates (relative to the viewport)
	X, Y float32

	// Local coordinates (relative to the current target's top-left)
	LocalX, LocalY float32

	// Which button triggered the event (for down/up/click)
	Button MouseButton

	// Scroll delta (for wheel events)
	Delta float32

	// Modifier keys held during the event
	Modifiers Modifiers

	// Click count for detecting double clicks
	ClickCount int
}

// NewMouseEvent creates a mouse event. Uses object pool for high-frequency events.
func NewMouseEvent(eventType EventType, x, y float32, button MouseButton, mods Modifiers) *MouseEvent {
	e := mouseEventPool.Get().(*MouseEvent)
	e.eventType = eventType
	e.target = nil
	e.currentTarget = nil
	e.propagationStopped = false
	e.X = x
	e.Y = y
	e.LocalX = x
	e.LocalY = y
	e.Button = button
	e.Delta = 0
	e.Modifiers = mods
	e.ClickCount = 1
	return e
}

// Release returns the event to the pool. Call when done processing.
func (e *MouseEvent) Release() {
	e.target = nil
	e.currentTarget = nil
	mouseEventPool.Put(e)
}

// Object pool for mouse events to avoid allocations on every mouse move
var mouseEventPool = sync.Pool{
	New: func() any {
		return &MouseEvent{}
	},
}

// ============================================================================
// Keyboard Event
// ============================================================================

// KeyEvent represents keyboard events.
type KeyEvent struct {
	eventBase

	// Logical key
	Key Key

	// For KeyPress events, the character that was typed
	Char rune

	// Modifier keys held during the event
	Modifiers Modifiers
}

// NewKeyEvent creates a keyboard event.
func NewKeyEvent(eventType EventType, key Key, char rune, mods Modifiers) *KeyEvent {
	e := keyEventPool.Get().(*KeyEvent)
	e.eventType = eventType
	e.target = nil
	e.currentTarget = nil
	e.propagationStopped = false
	e.Key = key
	e.Char = char
	e.Modifiers = mods
	return e
}

// Release returns the event to the pool.
func (e *KeyEvent) Release() {
	e.target = nil
	e.currentTarget = nil
	keyEventPool.Put(e)
}

var keyEventPool = sync.Pool{
	New: func() any {
		return &KeyEvent{}
	},
}

// ============================================================================
// Responder Interfaces
// ============================================================================

// MouseResponder is implemented by widgets that react to mouse events
// beyond the generic signals. Mouse down, up, click and wheel events bubble
// from the target to its ancestors until StopPropagation is called.
type MouseResponder interface {
	HandleMouse(event *MouseEvent)
}

// KeyResponder is implemented by widgets that accept keyboard input. Key
// events are only delivered to the focused widget.
type KeyResponder interface {
	HandleKey(event *KeyEvent)
}

// HitTester lets a widget refine hit testing beyond its rectangle.
// Coordinates are local to the widget.
type HitTester interface {
	HitTest(localX, localY float32) bool
}

// FocusResponder is notified after the widget gained or lost focus.
type FocusResponder interface {
	FocusChanged(focused bool)
}

// TimeUpdater is implemented by widgets with timed state (caret blink).
// Returning true requests a redraw.
type TimeUpdater interface {
	UpdateTime(elapsed time.Duration) bool
}
