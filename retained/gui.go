package retained

import (
	"log/slog"
	"time"
)

// ============================================================================
// Gui
// ============================================================================

// Gui is the root of a widget tree bound to a viewport. The host feeds it
// input with DispatchEvent, advances its clock with AdvanceTime and renders
// it with Draw, all from one goroutine.
type Gui struct {
	cfg        Config
	theme      *Theme
	root       *Container
	viewport   Bounds
	dispatcher eventDispatcher
	timers     Timers
	now        time.Duration

	windowFocused bool
	onError       func(error)

	logLevel slog.LevelVar
	logger   *slog.Logger

	// OnClosed is emitted when the host reports that the window is closing.
	OnClosed VoidSignal
}

// NewGui creates an empty Gui.
func NewGui(cfg Config) *Gui {
	g := &Gui{
		cfg:           cfg,
		theme:         cfg.Theme(),
		windowFocused: true,
	}
	g.SetVerbose(cfg.Verbose)
	g.logger = newGuiLogger(&g.logLevel)
	root := &Container{}
	root.initContainer(root, KindRootContainer)
	root.gui = g
	root.scope = &focusScope{}
	g.root = root
	g.dispatcher = newEventDispatcher(g)
	g.timers.owner = &root.WidgetBase
	return g
}

// Config returns the configuration the Gui was created with.
func (g *Gui) Config() Config { return g.cfg }

// Theme returns the theme built from the configuration.
func (g *Gui) Theme() *Theme { return g.theme }

// Container returns the root container.
func (g *Gui) Container() *Container { return g.root }

// Add adds a widget to the root container.
func (g *Gui) Add(w Widget, name string) error { return g.root.Add(w, name) }

// Remove removes a widget from the root container.
func (g *Gui) Remove(w Widget) bool { return g.root.Remove(w) }

// RemoveAll removes every widget.
func (g *Gui) RemoveAll() { g.root.RemoveAll() }

// Get finds a widget by name anywhere in the tree.
func (g *Gui) Get(name string) Widget { return g.root.Get(name) }

// OnError installs a handler for errors recovered inside the core.
func (g *Gui) OnError(fn func(error)) { g.onError = fn }

// Timers returns the Gui's timer list.
func (g *Gui) Timers() *Timers { return &g.timers }

// Now returns the Gui clock: the sum of all AdvanceTime calls.
func (g *Gui) Now() time.Duration { return g.now }

// IsWindowFocused reports whether the host window has input focus.
func (g *Gui) IsWindowFocused() bool { return g.windowFocused }

// SetViewport places the Gui inside the backend surface. The root container
// takes the viewport's size.
func (g *Gui) SetViewport(viewport Bounds) {
	g.viewport = viewport
	g.root.SetSize(viewport.Width, viewport.Height)
}

// Viewport returns the area of the backend surface the Gui draws into.
func (g *Gui) Viewport() Bounds { return g.viewport }

// WidgetAt returns the topmost widget at a backend point, the root
// container if the point is inside the viewport over no widget, or nil.
func (g *Gui) WidgetAt(x, y float32) Widget {
	return g.root.WidgetAt(Vector2f{x - g.viewport.X, y - g.viewport.Y})
}

// ============================================================================
// Focus
// ============================================================================

// FocusedWidget returns the deepest widget of the active focus chain, or
// nil.
func (g *Gui) FocusedWidget() Widget {
	if b := g.focusedBase(); b != nil {
		return b.self
	}
	return nil
}

func (g *Gui) focusedBase() *WidgetBase {
	chain := activeChain(g.root, acquireChain())
	defer releaseChain(chain)
	return last(chain)
}

// activeScope returns the innermost active focus scope.
func (g *Gui) activeScope() *Container {
	chain := activeChain(g.root, acquireChain())
	defer releaseChain(chain)
	scope := g.root
	for _, e := range chain {
		if c := e.container; c != nil && c.scope != nil {
			scope = c
		}
	}
	return scope
}

// FocusNext moves focus to the next widget of the innermost active scope.
func (g *Gui) FocusNext() bool { return g.activeScope().focusStep(true) }

// FocusPrevious moves focus to the previous widget of the innermost active
// scope.
func (g *Gui) FocusPrevious() bool { return g.activeScope().focusStep(false) }

// ============================================================================
// Input
// ============================================================================

// DispatchEvent routes one input event into the tree. It reports whether the
// event was consumed. Mouse coordinates are in backend pixels.
func (g *Gui) DispatchEvent(e InputEvent) bool {
	x, y := e.X-g.viewport.X, e.Y-g.viewport.Y
	d := &g.dispatcher

	switch e.Kind {
	case MouseMoved, MouseButtonPressed, MouseButtonReleased, MouseWheelScrolled:
		d.restartToolTip()
	}

	switch e.Kind {
	case MouseMoved:
		return d.dispatchMouseMove(x, y, e.Modifiers)
	case MouseButtonPressed:
		return d.dispatchMouseDown(x, y, e.Button, e.Modifiers)
	case MouseButtonReleased:
		return d.dispatchMouseUp(x, y, e.Button, e.Modifiers)
	case MouseWheelScrolled:
		return d.dispatchMouseWheel(x, y, e.Delta, e.Modifiers)
	case MouseEntered:
		return false
	case MouseLeft:
		return d.dispatchMouseLeft()

	case KeyPressed:
		if e.Key == KeyUnknown {
			return false
		}
		if e.Key == KeyTab && g.cfg.TabKeyUsage && !e.Modifiers.Ctrl() && !e.Modifiers.Alt() {
			if e.Modifiers.Shift() {
				g.FocusPrevious()
			} else {
				g.FocusNext()
			}
			return true
		}
		return d.dispatchKey(EventKeyDown, e.Key, 0, e.Modifiers)
	case KeyReleased:
		if e.Key == KeyUnknown {
			return false
		}
		return d.dispatchKey(EventKeyUp, e.Key, 0, e.Modifiers)
	case TextEntered:
		if e.Rune < 32 || e.Rune == 127 {
			return false
		}
		return d.dispatchKey(EventKeyPress, KeyUnknown, e.Rune, e.Modifiers)

	case Resized:
		g.SetViewport(Bounds{X: g.viewport.X, Y: g.viewport.Y, Width: e.Width, Height: e.Height})
		return true
	case LostFocus:
		g.windowFocused = false
		d.resetPointer()
		return true
	case GainedFocus:
		g.windowFocused = true
		return true
	case Closed:
		g.OnClosed.emit(&g.root.WidgetBase)
		return false
	}
	return false
}

// ============================================================================
// Time
// ============================================================================

// AdvanceTime moves the Gui clock forward and fires due timers. Widgets with
// timed state update, and a tool tip may appear if the mouse has rested long
// enough. It reports whether a redraw is needed.
func (g *Gui) AdvanceTime(elapsed time.Duration) bool {
	if elapsed < 0 {
		elapsed = 0
	}
	g.now += elapsed
	redraw := g.timers.advance(elapsed)
	if g.updateTime(&g.root.WidgetBase, elapsed) {
		redraw = true
	}
	if g.windowFocused && g.dispatcher.updateToolTip(elapsed) {
		redraw = true
	}
	return redraw
}

func (g *Gui) updateTime(w *WidgetBase, elapsed time.Duration) bool {
	if !w.visible {
		return false
	}
	redraw := false
	if u, ok := w.self.(TimeUpdater); ok {
		guard(w, func() { redraw = u.UpdateTime(elapsed) })
	}
	if c := w.container; c != nil {
		children := snapshotChildren(c)
		defer releaseWidgetSlice(children)
		for _, child := range children {
			if g.updateTime(child.Base(), elapsed) {
				redraw = true
			}
		}
	}
	return redraw
}

// ============================================================================
// Drawing
// ============================================================================

// Draw renders the tree into target, clipped to the viewport.
func (g *Gui) Draw(target RenderTarget) {
	stack := NewClipStack()
	popT := stack.PushTransform(g.viewport.Position())
	defer popT()

	states := RenderStates{
		Transform: Transform{g.viewport.X, g.viewport.Y},
		Opacity:   g.root.EffectiveOpacity(),
		stack:     stack,
	}
	if !g.root.visible {
		return
	}
	g.root.DrawChildren(target, states)
}
