package retained

import (
	"time"
)

// ============================================================================
// Event Dispatcher
// ============================================================================

// eventDispatcher routes input to widgets and tracks hover and pressed
// state. Focus lives in the scopes of the tree (see focus.go).
type eventDispatcher struct {
	g *Gui

	// Current state
	hoveredChain  []*WidgetBase // widgets under the mouse, outermost first
	pressedWidget *WidgetBase   // widget where mouse down occurred
	pressedButton MouseButton
	mouseX        float32
	mouseY        float32

	// For click detection
	lastClickWidget *WidgetBase
	lastClickTime   time.Duration
	lastClickX      float32
	lastClickY      float32
	clickCount      int

	// Max distance between clicks for double-click
	doubleClickDist float32

	// Tool tips
	restTime        time.Duration // since the last mouse event
	toolTipPossible bool
	visibleToolTip  *WidgetBase
	toolTipLayout   Layout2d // position of the visible tool tip before it was shown
}

func newEventDispatcher(g *Gui) eventDispatcher {
	return eventDispatcher{g: g, doubleClickDist: 5}
}

// ============================================================================
// Hit Testing
// ============================================================================

// hitTest returns the widgets under a viewport point, outermost first. The
// root container is not part of the chain.
func (d *eventDispatcher) hitTest(x, y float32) []*WidgetBase {
	root := d.g.root
	size := root.Size()
	area := Bounds{Width: size.X, Height: size.Y}
	if !area.Contains(x, y) {
		return nil
	}
	stack := NewClipStack()
	stack.PushClip(area)
	var chain []*WidgetBase
	root.hitTestChildren(Vector2f{x, y}, stack, &chain)
	return chain
}

func last(chain []*WidgetBase) *WidgetBase {
	if len(chain) == 0 {
		return nil
	}
	return chain[len(chain)-1]
}

// ============================================================================
// Hover
// ============================================================================

// updateHover replaces the hover chain, firing leave events deepest first
// and then enter events outermost first. Widgets shared by both chains stay
// hovered without events.
func (d *eventDispatcher) updateHover(chain []*WidgetBase) {
	old := d.hoveredChain
	common := 0
	for common < len(old) && common < len(chain) && old[common] == chain[common] {
		common++
	}
	d.hoveredChain = chain

	for i := len(old) - 1; i >= common; i-- {
		if w := old[i]; w.hovered {
			w.mouseLeft(d.mouseX, d.mouseY)
		}
	}
	for i := common; i < len(chain); i++ {
		w := chain[i]
		// An earlier callback may have removed or hidden the widget.
		if w.hovered || !containsBase(d.hoveredChain, w) || !w.attachedTo(d.g) {
			continue
		}
		w.mouseEntered(d.mouseX, d.mouseY)
	}
}

// forget drops all interaction state held for w and its descendants. Leave
// events fire for widgets that were hovered.
func (d *eventDispatcher) forget(w *WidgetBase) {
	inSubtree := func(e *WidgetBase) bool { return e == w || w.isAncestorOf(e) }

	for i, e := range d.hoveredChain {
		if !inSubtree(e) {
			continue
		}
		leaving := make([]*WidgetBase, len(d.hoveredChain)-i)
		copy(leaving, d.hoveredChain[i:])
		d.hoveredChain = d.hoveredChain[:i:i]
		for j := len(leaving) - 1; j >= 0; j-- {
			if leaving[j].hovered {
				leaving[j].mouseLeft(d.mouseX, d.mouseY)
			}
		}
		break
	}
	if p := d.pressedWidget; p != nil && inSubtree(p) {
		p.pressed = false
		d.pressedWidget = nil
		d.pressedButton = MouseButtonNone
	}
	if c := d.lastClickWidget; c != nil && inSubtree(c) {
		d.lastClickWidget = nil
		d.clickCount = 0
	}
	if tip := d.visibleToolTip; tip != nil && inSubtree(tip) {
		tip.SetPositionLayout(d.toolTipLayout)
		d.visibleToolTip = nil
	}
}

// ============================================================================
// Mouse Event Dispatch
// ============================================================================

// deliver sends a mouse event to target and, when bubble is set, to its
// ancestors until one stops propagation. It reports whether propagation was
// stopped.
func (d *eventDispatcher) deliver(t EventType, target *WidgetBase, button MouseButton, delta float32, mods Modifiers, clicks int, bubble bool) bool {
	e := NewMouseEvent(t, d.mouseX, d.mouseY, button, mods)
	e.Delta = delta
	e.ClickCount = clicks
	e.target = target.self
	defer e.Release()

	for w := target; w != nil && w != &d.g.root.WidgetBase; {
		if !w.attachedTo(d.g) {
			break
		}
		if r, ok := w.self.(MouseResponder); ok {
			abs := w.AbsolutePosition()
			e.LocalX, e.LocalY = d.mouseX-abs.X, d.mouseY-abs.Y
			e.currentTarget = w.self
			guard(w, func() { r.HandleMouse(e) })
		}
		if !bubble || e.propagationStopped || w.parent == nil {
			break
		}
		w = &w.parent.WidgetBase
	}
	return e.propagationStopped
}

func (d *eventDispatcher) localPoint(w *WidgetBase) Vector2f {
	return Vector2f{d.mouseX, d.mouseY}.Sub(w.AbsolutePosition())
}

// dispatchMouseMove handles mouse movement and hover state. It reports
// whether the mouse is over a widget or the hover state changed.
func (d *eventDispatcher) dispatchMouseMove(x, y float32, mods Modifiers) bool {
	d.mouseX, d.mouseY = x, y
	chain := d.hitTest(x, y)
	changed := false
	if !chainsEqual(d.hoveredChain, chain) {
		d.updateHover(chain)
		changed = true
	}

	target := last(chain)
	if target != nil && target.attachedTo(d.g) {
		d.deliver(EventMouseMove, target, MouseButtonNone, 0, mods, 0, false)
	}

	// While dragging, the pressed widget keeps receiving moves.
	if p := d.pressedWidget; p != nil && p != target && p.attachedTo(d.g) {
		d.deliver(EventMouseMove, p, d.pressedButton, 0, mods, 0, false)
		changed = true
	}
	return changed || target != nil
}

// dispatchMouseDown handles a button press: focus, pressed state, then the
// bubbling mouse-down event.
func (d *eventDispatcher) dispatchMouseDown(x, y float32, button MouseButton, mods Modifiers) bool {
	d.mouseX, d.mouseY = x, y
	chain := d.hitTest(x, y)
	if !chainsEqual(d.hoveredChain, chain) {
		d.updateHover(chain)
	}
	d.focusOnPress(chain)

	target := last(chain)
	if target == nil || !target.attachedTo(d.g) {
		return false
	}
	if p := d.pressedWidget; p != nil && p != target {
		p.pressed = false
	}
	d.pressedWidget = target
	d.pressedButton = button
	target.pressed = true

	d.deliver(EventMouseDown, target, button, 0, mods, 1, true)
	if target.attachedTo(d.g) {
		target.OnMousePress.emit(target, d.localPoint(target))
	}
	return true
}

// focusOnPress focuses the deepest focusable widget of the chain. If a
// focus scope is reached first, the scope is activated with nothing focused
// inside it.
func (d *eventDispatcher) focusOnPress(chain []*WidgetBase) {
	for i := len(chain) - 1; i >= 0; i-- {
		w := chain[i]
		if c := w.container; c != nil && c.scope != nil {
			c.focusBackground()
			return
		}
		if w.CanGainFocus() {
			w.focus()
			return
		}
	}
	d.g.root.focusBackground()
}

// dispatchMouseUp handles a button release and click detection.
func (d *eventDispatcher) dispatchMouseUp(x, y float32, button MouseButton, mods Modifiers) bool {
	d.mouseX, d.mouseY = x, y
	target := last(d.hitTest(x, y))

	if target != nil {
		d.deliver(EventMouseUp, target, button, 0, mods, 1, true)
		if target.attachedTo(d.g) {
			target.OnMouseRelease.emit(target, d.localPoint(target))
		}
	}

	p := d.pressedWidget
	if p == nil {
		return target != nil
	}
	pressedButton := d.pressedButton
	p.pressed = false
	d.pressedWidget = nil
	d.pressedButton = MouseButtonNone

	// A release outside the pressed widget still ends its drag.
	if p != target && p.attachedTo(d.g) {
		d.deliver(EventMouseUp, p, button, 0, mods, 1, false)
	}
	if p == target && button == pressedButton && p.attachedTo(d.g) {
		d.handleClick(target, button, mods)
	}
	return true
}

// handleClick fires click, double-click and right-click events.
func (d *eventDispatcher) handleClick(target *WidgetBase, button MouseButton, mods Modifiers) {
	local := d.localPoint(target)
	switch button {
	case MouseButtonRight:
		d.deliver(EventRightClick, target, button, 0, mods, 1, true)
		if target.attachedTo(d.g) {
			target.OnRightClick.emit(target, local)
		}
		return
	case MouseButtonLeft:
	default:
		return
	}

	now := d.g.now
	dx, dy := d.mouseX-d.lastClickX, d.mouseY-d.lastClickY
	if d.lastClickWidget == target &&
		now-d.lastClickTime <= d.g.cfg.DoubleClickTime() &&
		dx*dx+dy*dy <= d.doubleClickDist*d.doubleClickDist {
		d.clickCount++
	} else {
		d.clickCount = 1
	}
	d.lastClickWidget = target
	d.lastClickTime = now
	d.lastClickX, d.lastClickY = d.mouseX, d.mouseY
	clicks := d.clickCount

	d.deliver(EventClick, target, button, 0, mods, clicks, true)
	if !target.attachedTo(d.g) {
		return
	}
	target.OnClick.emit(target, local)

	if clicks == 2 && target.attachedTo(d.g) {
		// The next click starts a new sequence.
		d.clickCount = 0
		d.deliver(EventDoubleClick, target, button, 0, mods, clicks, true)
		if target.attachedTo(d.g) {
			target.OnDoubleClick.emit(target, local)
		}
	}
}

// dispatchMouseWheel sends the wheel event to the widget under the mouse,
// bubbling until a widget stops propagation. If nobody stops it, the
// nearest scrolling container under the mouse scrolls instead. It reports
// whether the event was consumed.
func (d *eventDispatcher) dispatchMouseWheel(x, y, delta float32, mods Modifiers) bool {
	d.mouseX, d.mouseY = x, y
	chain := d.hitTest(x, y)
	target := last(chain)
	if target == nil {
		return false
	}
	if d.deliver(EventMouseWheel, target, MouseButtonNone, delta, mods, 0, true) {
		return true
	}
	for i := len(chain) - 1; i >= 0; i-- {
		c := chain[i].container
		if c == nil || c.wheel == nil || !chain[i].attachedTo(d.g) {
			continue
		}
		if c.wheel(delta, mods) {
			// Content moved under a resting mouse.
			if moved := d.hitTest(x, y); !chainsEqual(d.hoveredChain, moved) {
				d.updateHover(moved)
			}
			return true
		}
	}
	return false
}

// dispatchMouseLeft clears hover when the mouse leaves the window.
func (d *eventDispatcher) dispatchMouseLeft() bool {
	if len(d.hoveredChain) == 0 {
		return false
	}
	d.updateHover(nil)
	return true
}

// ============================================================================
// Keyboard Event Dispatch
// ============================================================================

// dispatchKey delivers a key or character event to the focused widget of
// the active scope. It reports whether a widget was focused.
func (d *eventDispatcher) dispatchKey(t EventType, key Key, char rune, mods Modifiers) bool {
	target := d.g.focusedBase()
	if target == nil {
		return false
	}
	if r, ok := target.self.(KeyResponder); ok {
		e := NewKeyEvent(t, key, char, mods)
		e.target, e.currentTarget = target.self, target.self
		guard(target, func() { r.HandleKey(e) })
		e.Release()
	}
	return true
}

// resetPointer drops pressed state when the window loses focus.
func (d *eventDispatcher) resetPointer() {
	if p := d.pressedWidget; p != nil {
		p.pressed = false
		d.pressedWidget = nil
		d.pressedButton = MouseButtonNone
	}
}

// ============================================================================
// Tool Tips
// ============================================================================

// restartToolTip hides the visible tool tip and starts measuring rest time
// again. Every mouse move, press, release and wheel event calls it.
func (d *eventDispatcher) restartToolTip() {
	if tip := d.visibleToolTip; tip != nil {
		d.visibleToolTip = nil
		tip.SetPositionLayout(d.toolTipLayout)
		d.g.root.Remove(tip.self)
	}
	d.restTime = 0
	d.toolTipPossible = true
}

// updateToolTip adds rest time and, once the delay is reached, shows the
// tool tip under the mouse. Only one attempt is made per rest. It reports
// whether a tool tip appeared.
func (d *eventDispatcher) updateToolTip(elapsed time.Duration) bool {
	if !d.toolTipPossible {
		return false
	}
	d.restTime += elapsed
	if d.restTime < d.g.cfg.ToolTipDelay() {
		return false
	}
	d.toolTipPossible = false

	tip := d.toolTipAt(d.mouseX, d.mouseY)
	if tip == nil {
		return false
	}
	b := tip.Base()
	layout := b.PositionLayout()
	if err := d.g.root.Add(tip, ""); err != nil {
		reportError(b, err)
		return false
	}
	d.visibleToolTip = b
	d.toolTipLayout = layout

	dist := d.g.cfg.ToolTipDistance
	pos := Vector2f{d.mouseX + dist[0], d.mouseY + dist[1]}.Add(b.Position())
	size, view := b.Size(), d.g.root.Size()
	// Stay inside the view unless the tool tip is larger than it.
	if pos.X+size.X > view.X {
		pos.X = max(0, view.X-size.X)
	}
	if pos.Y+size.Y > view.Y {
		pos.Y = max(0, view.Y-size.Y)
	}
	b.SetPosition(pos.X, pos.Y)
	d.g.Logger().Debug("tool tip shown", "widget", b.name)
	return true
}

// toolTipAt returns the tool tip of the deepest widget under a point that
// has one. Disabled widgets end the hit chain, so their container answers
// for them. Nothing is shown while a button is held or when the tool tip is
// already part of a tree.
func (d *eventDispatcher) toolTipAt(x, y float32) Widget {
	if d.pressedWidget != nil {
		return nil
	}
	chain := d.hitTest(x, y)
	for i := len(chain) - 1; i >= 0; i-- {
		if tip := chain[i].toolTip; tip != nil {
			if tip.Base().parent != nil {
				return nil
			}
			return tip
		}
	}
	return nil
}
