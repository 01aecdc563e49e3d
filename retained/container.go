package retained

import (
	"fmt"
	"slices"
)

// Container is a widget that owns an ordered list of children. The list
// order is the z-order: later children are drawn on top and hit first.
//
// Children are positioned relative to the container's child area, which is
// the container's rectangle shrunk by its insets (borders, padding, title
// bar). Drawing and hit testing of children are clipped to that area.
//
// A container may be a focus scope (see SetIsolatedFocus). Each scope
// remembers at most one focused descendant; the active focus chain runs
// from the root through the remembered element of each nested scope.
type Container struct {
	WidgetBase

	children []Widget
	insets   Outline
	scope    *focusScope
	gui      *Gui // set on the root container only

	// Layout containers install arrange, which places the children. It
	// runs lazily before any child geometry is read.
	arrange         func()
	arrangeDirty    bool
	arranging       bool
	arrangesOwnSize bool
	watchesChildren bool

	onChildAdded   func(w *WidgetBase)
	onChildRemoved func(w *WidgetBase)

	// scroll shifts the children against the child area. Scrolling
	// containers install wheel, which the dispatcher calls for wheel events
	// no widget consumed.
	scroll Vector2f
	wheel  func(delta float32, mods Modifiers) bool
}

// initContainer prepares an embedded container.
func (c *Container) initContainer(self Widget, kind WidgetKind) {
	c.WidgetBase.Init(self, kind)
	c.container = c
}

// Draw draws the children.
func (c *Container) Draw(target RenderTarget, states RenderStates) {
	c.DrawChildren(target, states)
}

// ============================================================================
// Children
// ============================================================================

// Add appends w on top of the z-order. A non-empty name replaces the
// widget's name. Adding a widget that already has a parent moves it.
func (c *Container) Add(w Widget, name string) error {
	return c.Insert(len(c.children), w, name)
}

// Insert places w at index in the z-order.
func (c *Container) Insert(index int, w Widget, name string) error {
	if w == nil {
		return fmt.Errorf("%w: nil widget", ErrInvalidHierarchy)
	}
	b := w.Base()
	if b == &c.WidgetBase || b.isAncestorOf(&c.WidgetBase) {
		return fmt.Errorf("%w: cannot add %s to its own descendant %s", ErrInvalidHierarchy, b.label(), c.label())
	}
	if b.container != nil && b.container.gui != nil {
		return fmt.Errorf("%w: cannot add a root container", ErrInvalidHierarchy)
	}

	if b.parent == c {
		if name != "" {
			b.SetName(name)
		}
		c.SetWidgetIndex(w, min(max(index, 0), len(c.children)-1))
		return nil
	}
	if index < 0 || index > len(c.children) {
		return fmt.Errorf("%w: insert %s at %d of %d", ErrIndexOutOfRange, b.label(), index, len(c.children))
	}
	if old := b.parent; old != nil {
		old.Remove(w)
	}

	// A subtree added to a tree no longer needs the scope it was given
	// while detached.
	if bc := b.container; bc != nil && bc.scope != nil && bc.scope.implicit {
		if f := bc.scope.focused; f != nil {
			f.unfocus()
		}
		bc.scope = nil
	}

	if name != "" {
		b.name = name
	}
	c.children = slices.Insert(c.children, index, w)
	b.parent = c
	b.orphaned = false
	if c.onChildAdded != nil {
		c.onChildAdded(b)
	}

	b.invalidateAll()
	c.invalidateChildren()
	c.markArrangeDirty()

	c.log().Debug("widget added", "parent", c.label(), "widget", b.label(), "index", index)
	return nil
}

// Remove detaches w. It returns false if w is not a child.
func (c *Container) Remove(w Widget) bool {
	if w == nil {
		return false
	}
	return c.RemoveAt(c.IndexOf(w))
}

// RemoveAt detaches the child at index.
func (c *Container) RemoveAt(index int) bool {
	if index < 0 || index >= len(c.children) {
		return false
	}
	w := c.children[index]
	b := w.Base()

	// Hover, press and focus are released while the widget can still
	// reach the Gui.
	b.releaseInteraction()

	// The release callbacks may have reordered or removed children.
	index = c.IndexOf(w)
	if index < 0 {
		return true
	}
	c.children = slices.Delete(c.children, index, index+1)
	b.parent = nil
	b.orphaned = true
	if c.onChildRemoved != nil {
		c.onChildRemoved(b)
	}

	b.invalidateAll()
	c.invalidateChildren()
	c.markArrangeDirty()

	c.log().Debug("widget removed", "parent", c.label(), "widget", b.label())
	return true
}

// RemoveAll detaches every child, topmost first.
func (c *Container) RemoveAll() {
	for len(c.children) > 0 {
		c.RemoveAt(len(c.children) - 1)
	}
}

// Widgets returns a copy of the children in z-order.
func (c *Container) Widgets() []Widget {
	return slices.Clone(c.children)
}

// Len returns the number of children.
func (c *Container) Len() int { return len(c.children) }

// At returns the child at index, or nil.
func (c *Container) At(index int) Widget {
	if index < 0 || index >= len(c.children) {
		return nil
	}
	return c.children[index]
}

// IndexOf returns the z-order index of w, or -1.
func (c *Container) IndexOf(w Widget) int {
	if w == nil {
		return -1
	}
	b := w.Base()
	for i, child := range c.children {
		if child.Base() == b {
			return i
		}
	}
	return -1
}

// Get finds a widget by name. Direct children are searched first, then the
// descendants of each child container in z-order.
func (c *Container) Get(name string) Widget {
	if b := c.directChild(name); b != nil {
		return b.self
	}
	for _, child := range c.children {
		if cc := child.Base().container; cc != nil {
			if w := cc.Get(name); w != nil {
				return w
			}
		}
	}
	return nil
}

func (c *Container) directChild(name string) *WidgetBase {
	for _, child := range c.children {
		if b := child.Base(); b.name == name {
			return b
		}
	}
	return nil
}

// ============================================================================
// Z-Order
// ============================================================================

// SetWidgetIndex moves w to index in the z-order.
func (c *Container) SetWidgetIndex(w Widget, index int) bool {
	from := c.IndexOf(w)
	if from < 0 || index < 0 || index >= len(c.children) {
		return false
	}
	if from == index {
		return true
	}
	c.children = slices.Delete(c.children, from, from+1)
	c.children = slices.Insert(c.children, index, w)
	c.markArrangeDirty()
	return true
}

// MoveToFront puts w on top of its siblings.
func (c *Container) MoveToFront(w Widget) bool {
	return c.SetWidgetIndex(w, len(c.children)-1)
}

// MoveToBack puts w below its siblings.
func (c *Container) MoveToBack(w Widget) bool {
	return c.SetWidgetIndex(w, 0)
}

// MoveForward swaps w with the sibling above it.
func (c *Container) MoveForward(w Widget) bool {
	i := c.IndexOf(w)
	if i < 0 || i == len(c.children)-1 {
		return false
	}
	return c.SetWidgetIndex(w, i+1)
}

// MoveBackward swaps w with the sibling below it.
func (c *Container) MoveBackward(w Widget) bool {
	i := c.IndexOf(w)
	if i <= 0 {
		return false
	}
	return c.SetWidgetIndex(w, i-1)
}

// ============================================================================
// Child Area
// ============================================================================

// ChildOffset returns the position of the children's origin inside the
// container: the corner of the child area, shifted back by the scroll
// offset.
func (c *Container) ChildOffset() Vector2f {
	return c.insets.Offset().Sub(c.scroll)
}

// childArea returns the visible child area in the container's local
// coordinates.
func (c *Container) childArea() Bounds {
	return BoundsAt(c.insets.Offset(), c.InnerSize())
}

// Insets returns the space between the container's edge and its child area.
func (c *Container) Insets() Outline { return c.insets }

func (c *Container) setInsets(o Outline) {
	if c.insets == o {
		return
	}
	c.insets = o
	c.geometryChanged()
}

// invalidateAll drops the cached geometry of w and everything below it.
// Used when a subtree changes parent, since both percentages and named
// lookups depend on where the widget sits.
func (w *WidgetBase) invalidateAll() {
	w.posX.invalidate(w)
	w.posY.invalidate(w)
	w.sizeX.invalidate(w)
	w.sizeY.invalidate(w)
	if c := w.container; c != nil {
		c.markArrangeDirty()
		for _, child := range c.children {
			child.Base().invalidateAll()
		}
	}
	w.notifyDependents()
}

// invalidateChildren drops the cached geometry of the direct children.
func (c *Container) invalidateChildren() {
	for _, child := range c.children {
		child.Base().invalidateGeometry()
	}
}

func (c *Container) markArrangeDirty() {
	if c.arrange == nil || c.arranging {
		return
	}
	if !c.arrangeDirty {
		c.arrangeDirty = true
		if c.arrangesOwnSize {
			c.notifyDependents()
		}
	}
}

// ensureArranged runs the arrange hook if anything changed since the last
// run.
func (c *Container) ensureArranged() {
	if !c.arrangeDirty || c.arranging || c.arrange == nil {
		return
	}
	c.arranging = true
	defer func() {
		c.arranging = false
	}()
	c.arrangeDirty = false
	c.arrange()
}

// place sets the geometry of a child from an arrange hook. Signals are
// only emitted for values that actually changed.
func (w *WidgetBase) place(pos, size Vector2f) {
	posChanged := setArranged(&w.posX, w, pos.X)
	posChanged = setArranged(&w.posY, w, pos.Y) || posChanged
	sizeChanged := setArranged(&w.sizeX, w, size.X)
	sizeChanged = setArranged(&w.sizeY, w, size.Y) || sizeChanged
	if !posChanged && !sizeChanged {
		return
	}
	w.geometryChanged()
	if posChanged {
		w.OnPositionChange.emit(w)
	}
	if sizeChanged {
		w.OnSizeChange.emit(w)
	}
}

// placeAt moves a child from an arrange hook, leaving its size alone.
func (w *WidgetBase) placeAt(pos Vector2f) {
	changed := setArranged(&w.posX, w, pos.X)
	changed = setArranged(&w.posY, w, pos.Y) || changed
	if !changed {
		return
	}
	w.geometryChanged()
	w.OnPositionChange.emit(w)
}

func setArranged(s *layoutSlot, owner *WidgetBase, v float32) bool {
	if c, ok := s.expr.Constant(); ok && c == v {
		return false
	}
	s.set(owner, Const(v))
	return true
}

// ============================================================================
// Hit Testing
// ============================================================================

// WidgetAt returns the topmost widget under pos, given in the container's
// child space. It returns the container itself when pos is inside the
// visible child area but over no child, and nil when pos is outside.
func (c *Container) WidgetAt(pos Vector2f) Widget {
	area := BoundsAt(c.scroll, c.InnerSize())
	if !area.Contains(pos.X, pos.Y) {
		return nil
	}
	stack := NewClipStack()
	stack.PushClip(area)
	var chain []*WidgetBase
	c.hitTestChildren(pos, stack, &chain)
	if len(chain) > 0 {
		return chain[len(chain)-1].self
	}
	return c.self
}

// hitTestChildren appends the widgets under p (absolute coordinates) to
// chain, outermost first. The stack's offset is the container's child
// origin.
func (c *Container) hitTestChildren(p Vector2f, stack *ClipStack, chain *[]*WidgetBase) {
	if !stack.Clip().Contains(p.X, p.Y) {
		return
	}
	origin := stack.Offset()
	children := snapshotChildren(c)
	defer releaseWidgetSlice(children)

	for i := len(children) - 1; i >= 0; i-- {
		b := children[i].Base()
		if !b.visible || b.ignoreMouse {
			continue
		}
		pos, size := b.Position(), b.Size()
		bounds := Bounds{X: origin.X + pos.X, Y: origin.Y + pos.Y, Width: size.X, Height: size.Y}
		if !bounds.Contains(p.X, p.Y) {
			continue
		}
		if ht, ok := b.self.(HitTester); ok && !ht.HitTest(p.X-bounds.X, p.Y-bounds.Y) {
			continue
		}
		if !b.enabled {
			// Disabled widgets absorb the point; the container is the target.
			return
		}
		*chain = append(*chain, b)
		if bc := b.container; bc != nil {
			popT := stack.PushTransform(pos)
			popC, visible := stack.PushClip(bc.childArea())
			if visible {
				popO := stack.PushTransform(bc.ChildOffset())
				bc.hitTestChildren(p, stack, chain)
				popO()
			}
			popC()
			popT()
		}
		return
	}
}

// ============================================================================
// Drawing
// ============================================================================

// DrawChildren draws the visible children in z-order, clipped to the child
// area. states must be the container's own render states.
func (c *Container) DrawChildren(target RenderTarget, states RenderStates) {
	stack := states.stack
	if stack == nil {
		stack = NewClipStack()
		pop := stack.PushTransform(Vector2f{states.Transform.X, states.Transform.Y})
		defer pop()
		states.stack = stack
	}

	area := c.childArea()
	popC, visible := stack.PushClip(area)
	defer popC()
	if !visible {
		return
	}
	target.AddClippingLayer(states, area)
	defer target.RemoveClippingLayer()

	offset := c.ChildOffset()
	popO := stack.PushTransform(offset)
	defer popO()
	childBase := states
	childBase.Transform = states.Transform.Translate(offset)

	clip := stack.Clip()
	children := snapshotChildren(c)
	defer releaseWidgetSlice(children)
	for _, child := range children {
		b := child.Base()
		if !b.visible {
			continue
		}
		pos, size := b.Position(), b.Size()
		abs := BoundsAt(stack.Offset().Add(pos), size)
		if !abs.Intersects(clip) {
			continue
		}
		cs := childBase
		cs.Transform = childBase.Transform.Translate(pos)
		cs.Opacity = childBase.Opacity * b.EffectiveOpacity()
		pop := stack.PushTransform(pos)
		guard(b, func() { child.Draw(target, cs) })
		pop()
	}
}

// ============================================================================
// Focus Scope
// ============================================================================

// SetIsolatedFocus makes the container a focus scope of its own. Focus
// inside an isolated container is remembered independently of focus
// elsewhere, and tab navigation does not cross its boundary.
func (c *Container) SetIsolatedFocus(isolated bool) {
	switch {
	case isolated && (c.scope == nil || c.scope.implicit):
		c.scope = &focusScope{}
	case !isolated && c.scope != nil && c.gui == nil:
		if f := c.scope.focused; f != nil {
			f.unfocus()
		}
		c.scope = nil
	}
}

// IsolatedFocus reports whether the container is a focus scope.
func (c *Container) IsolatedFocus() bool {
	return c.scope != nil && !c.scope.implicit
}

// FocusedChild returns the widget remembered by this container's scope, or
// nil.
func (c *Container) FocusedChild() Widget {
	if c.scope == nil || c.scope.focused == nil {
		return nil
	}
	return c.scope.focused.self
}

// FocusNextWidget moves focus to the next focusable widget of the scope
// the container belongs to.
func (c *Container) FocusNextWidget() bool {
	return c.focusScopeContainer().focusStep(true)
}

// FocusPreviousWidget moves focus to the previous focusable widget.
func (c *Container) FocusPreviousWidget() bool {
	return c.focusScopeContainer().focusStep(false)
}

func (c *Container) focusScopeContainer() *Container {
	if c.scope != nil {
		return c
	}
	if s := c.scopeOwner(); s != nil {
		return s
	}
	c.scope = &focusScope{implicit: true}
	return c
}
