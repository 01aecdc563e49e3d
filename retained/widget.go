// Package retained provides a retained-mode widget tree: widgets and
// containers with lazily resolved layout expressions, hit testing with
// z-order and clipping, a focus state machine with isolated scopes, and
// box/grid/tab layout containers, drawn through an abstract RenderTarget.
//
// The package is single-threaded. The host pumps input through
// Gui.DispatchEvent, advances time with Gui.AdvanceTime and draws with
// Gui.Draw; nothing happens in between.
package retained

import (
	"fmt"
	"sync/atomic"

	"github.com/agiangrant/tessera/layoutexpr"
)

// WidgetID uniquely identifies a widget for the lifetime of the process.
type WidgetID uint64

var nextWidgetID atomic.Uint64

func newWidgetID() WidgetID {
	return WidgetID(nextWidgetID.Add(1))
}

// WidgetKind identifies the type of widget. Themes key their renderer
// bundles by kind.
type WidgetKind string

const (
	KindWidget          WidgetKind = "Widget"
	KindRootContainer   WidgetKind = "RootContainer"
	KindGroup           WidgetKind = "Group"
	KindPanel           WidgetKind = "Panel"
	KindScrollablePanel WidgetKind = "ScrollablePanel"
	KindChildWindow     WidgetKind = "ChildWindow"
	KindBoxLayout       WidgetKind = "BoxLayout"
	KindGrid            WidgetKind = "Grid"
	KindTabContainer    WidgetKind = "TabContainer"
	KindButton          WidgetKind = "Button"
	KindLabel           WidgetKind = "Label"
	KindPicture         WidgetKind = "Picture"
	KindEditBox         WidgetKind = "EditBox"
	KindSpace           WidgetKind = "Space"
)

// Widget is any node of the tree. Concrete widgets embed WidgetBase (or a
// container type) and provide Draw.
//
// Optional capabilities are discovered with type assertions:
// MouseResponder, KeyResponder, HitTester, FocusResponder, TimeUpdater and
// RendererListener.
type Widget interface {
	Base() *WidgetBase
	Draw(target RenderTarget, states RenderStates)
}

// WidgetBase holds the state shared by every widget.
type WidgetBase struct {
	self      Widget
	id        WidgetID
	kind      WidgetKind
	name      string
	parent    *Container // non-owning, nil while detached
	container *Container // set when the widget is a container

	// Geometry, resolved lazily
	posX, posY   layoutSlot
	sizeX, sizeY layoutSlot

	// Widgets whose layouts read this widget's geometry, with a
	// subscription count.
	dependents map[*WidgetBase]int

	// Set once the widget is removed from a container, cleared when added
	// again. Layouts referencing an orphaned widget are dangling.
	orphaned bool

	visible     bool
	enabled     bool
	focusable   bool
	focused     bool
	hovered     bool
	pressed     bool
	ignoreMouse bool

	opacity  float32
	renderer *RendererData
	toolTip  Widget

	// UserData is free for application use.
	UserData any

	OnPositionChange   VoidSignal
	OnSizeChange       VoidSignal
	OnFocus            VoidSignal
	OnUnfocus          VoidSignal
	OnMouseEnter       VoidSignal
	OnMouseLeave       VoidSignal
	OnMousePress       Signal[Vector2f] // local position
	OnMouseRelease     Signal[Vector2f]
	OnClick            Signal[Vector2f]
	OnDoubleClick      Signal[Vector2f]
	OnRightClick       Signal[Vector2f]
	OnVisibilityChange Signal[bool]
	OnEnableChange     Signal[bool]
}

// Init prepares a WidgetBase embedded in self. Widget types defined outside
// this package call it from their constructor.
func (w *WidgetBase) Init(self Widget, kind WidgetKind) {
	w.self = self
	w.id = newWidgetID()
	w.kind = kind
	w.posX.axis, w.posY.axis = axisX, axisY
	w.sizeX.axis, w.sizeY.axis = axisX, axisY
	w.visible = true
	w.enabled = true
	w.opacity = 1
	w.renderer = defaultRenderer(kind)
	w.renderer.attach(w)
}

// Base returns the widget itself.
func (w *WidgetBase) Base() *WidgetBase { return w }

// Draw does nothing; widgets with a visual override it.
func (w *WidgetBase) Draw(RenderTarget, RenderStates) {}

// Self returns the concrete widget embedding this base.
func (w *WidgetBase) Self() Widget { return w.self }

// ID returns the widget's unique identifier.
func (w *WidgetBase) ID() WidgetID { return w.id }

// Kind returns the widget kind.
func (w *WidgetBase) Kind() WidgetKind { return w.kind }

// Name returns the name given when the widget was added to a container.
func (w *WidgetBase) Name() string { return w.name }

// SetName changes the name used by Container.Get and layout expressions.
func (w *WidgetBase) SetName(name string) {
	if w.name == name {
		return
	}
	w.name = name
	if p := w.parent; p != nil {
		p.invalidateChildren()
	}
}

func (w *WidgetBase) label() string {
	if w.name != "" {
		return w.name
	}
	return string(w.kind)
}

// Parent returns the container holding the widget, or nil.
func (w *WidgetBase) Parent() *Container { return w.parent }

// AsContainer returns the widget's container part, or nil for leaf widgets.
func (w *WidgetBase) AsContainer() *Container { return w.container }

// ============================================================================
// Geometry
// ============================================================================

// SetPosition places the widget at a fixed position relative to its parent's
// child area.
func (w *WidgetBase) SetPosition(x, y float32) {
	w.SetPositionLayout(Fixed(x, y))
}

// SetPositionLayout sets the position expressions. They are resolved the
// next time the position is read.
func (w *WidgetBase) SetPositionLayout(l Layout2d) {
	w.posX.set(w, l.X)
	w.posY.set(w, l.Y)
	w.geometryChanged()
	w.OnPositionChange.emit(w)
}

// SetPositionExpr parses and sets a position such as "10, &.h - 40".
func (w *WidgetBase) SetPositionExpr(text string) error {
	l, err := ParseLayout2d(text)
	if err != nil {
		return err
	}
	w.SetPositionLayout(l)
	return nil
}

// PositionLayout returns the position expressions.
func (w *WidgetBase) PositionLayout() Layout2d {
	return Layout2d{w.posX.expr, w.posY.expr}
}

// Position resolves and returns the position relative to the parent's
// child area.
func (w *WidgetBase) Position() Vector2f {
	w.prepare()
	return Vector2f{w.posX.resolve(w), w.posY.resolve(w)}
}

// SetSize gives the widget a fixed size.
func (w *WidgetBase) SetSize(width, height float32) {
	w.SetSizeLayout(Fixed(width, height))
}

// SetSizeLayout sets the size expressions.
func (w *WidgetBase) SetSizeLayout(l Layout2d) {
	w.sizeX.set(w, l.X)
	w.sizeY.set(w, l.Y)
	w.geometryChanged()
	w.OnSizeChange.emit(w)
}

// SetSizeExpr parses and sets a size such as "50%, 30" or "other.size".
func (w *WidgetBase) SetSizeExpr(text string) error {
	l, err := ParseLayout2d(text)
	if err != nil {
		return err
	}
	w.SetSizeLayout(l)
	return nil
}

// SizeLayout returns the size expressions.
func (w *WidgetBase) SizeLayout() Layout2d {
	return Layout2d{w.sizeX.expr, w.sizeY.expr}
}

// Size resolves and returns the size.
func (w *WidgetBase) Size() Vector2f {
	w.prepare()
	return Vector2f{w.sizeX.resolve(w), w.sizeY.resolve(w)}
}

// InnerSize is the area available to children. For leaf widgets it equals
// Size.
func (w *WidgetBase) InnerSize() Vector2f {
	size := w.Size()
	if c := w.container; c != nil {
		size.X = max(0, size.X-c.insets.Horizontal())
		size.Y = max(0, size.Y-c.insets.Vertical())
	}
	return size
}

// Bounds returns position and size relative to the parent's child area.
func (w *WidgetBase) Bounds() Bounds {
	return BoundsAt(w.Position(), w.Size())
}

// AbsolutePosition composes the positions and child offsets of all
// ancestors. The result is relative to the viewport of the Gui.
func (w *WidgetBase) AbsolutePosition() Vector2f {
	pos := w.Position()
	for p := w.parent; p != nil; p = p.parent {
		pos = pos.Add(p.ChildOffset()).Add(p.Position())
	}
	return pos
}

// prepare lets an arranging parent (box layout, grid) place its children
// before their geometry is read.
func (w *WidgetBase) prepare() {
	if p := w.parent; p != nil {
		p.ensureArranged()
	}
	if c := w.container; c != nil && c.arrangesOwnSize {
		c.ensureArranged()
	}
}

func (w *WidgetBase) fieldValue(f Field) float32 {
	switch f {
	case FieldLeft:
		return w.Position().X
	case FieldTop:
		return w.Position().Y
	case FieldWidth:
		return w.Size().X
	case FieldHeight:
		return w.Size().Y
	case FieldRight:
		return w.Position().X + w.Size().X
	case FieldBottom:
		return w.Position().Y + w.Size().Y
	case FieldInnerWidth:
		return w.InnerSize().X
	case FieldInnerHeight:
		return w.InnerSize().Y
	}
	return 0
}

// lookupPath resolves a layout path relative to w. The first name is
// searched among w's own children, then among its siblings.
func (w *WidgetBase) lookupPath(path []string) *WidgetBase {
	cur := w
	for i, seg := range path {
		if seg == layoutexpr.ParentSegment {
			if cur.parent == nil {
				return nil
			}
			cur = &cur.parent.WidgetBase
			continue
		}
		var next *WidgetBase
		if c := cur.container; c != nil {
			next = c.directChild(seg)
		}
		if next == nil && i == 0 && cur.parent != nil {
			next = cur.parent.directChild(seg)
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

func (w *WidgetBase) addDependent(d *WidgetBase) {
	if w.dependents == nil {
		w.dependents = make(map[*WidgetBase]int)
	}
	w.dependents[d]++
}

func (w *WidgetBase) removeDependent(d *WidgetBase) {
	if n := w.dependents[d]; n > 1 {
		w.dependents[d] = n - 1
	} else {
		delete(w.dependents, d)
	}
}

// geometryChanged invalidates everything derived from this widget's
// geometry: its own cached values, its dependents and the arrangement of
// layout containers involved.
func (w *WidgetBase) geometryChanged() {
	if c := w.container; c != nil {
		c.markArrangeDirty()
		// Children may refer to the inner size through percentages.
		c.invalidateChildren()
	}
	if p := w.parent; p != nil && p.watchesChildren {
		p.markArrangeDirty()
	}
	w.notifyDependents()
}

// invalidateGeometry is the dependency driven form of geometryChanged. It
// stops early when nothing was cached, since dependents were already told.
func (w *WidgetBase) invalidateGeometry() {
	dropped := w.posX.invalidate(w)
	dropped = w.posY.invalidate(w) || dropped
	dropped = w.sizeX.invalidate(w) || dropped
	dropped = w.sizeY.invalidate(w) || dropped
	if !dropped {
		return
	}
	w.geometryChanged()
}

func (w *WidgetBase) notifyDependents() {
	if len(w.dependents) == 0 {
		return
	}
	deps := make([]*WidgetBase, 0, len(w.dependents))
	for d := range w.dependents {
		deps = append(deps, d)
	}
	for _, d := range deps {
		d.invalidateGeometry()
	}
}

// ============================================================================
// State
// ============================================================================

// SetVisible shows or hides the widget. A hidden widget is skipped by hit
// testing and drawing but keeps its geometry. Hiding drops hover, pressed
// and focus state of the widget and its descendants.
func (w *WidgetBase) SetVisible(visible bool) {
	if w.visible == visible {
		return
	}
	w.visible = visible
	if !visible {
		w.releaseInteraction()
	}
	w.OnVisibilityChange.emit(w, visible)
}

// IsVisible reports whether the widget is visible.
func (w *WidgetBase) IsVisible() bool { return w.visible }

// SetEnabled enables or disables the widget. Disabling drops hover,
// pressed and focus state of the widget and its descendants.
func (w *WidgetBase) SetEnabled(enabled bool) {
	if w.enabled == enabled {
		return
	}
	w.enabled = enabled
	if !enabled {
		w.releaseInteraction()
	}
	w.OnEnableChange.emit(w, enabled)
}

// IsEnabled reports whether the widget is enabled.
func (w *WidgetBase) IsEnabled() bool { return w.enabled }

// SetToolTip sets the widget shown near the mouse once it rests on w for
// Config.ToolTipDelayMs. The tool tip's own position is an offset from the
// mouse. A container's tool tip covers children without one. Nil removes it.
func (w *WidgetBase) SetToolTip(tip Widget) { w.toolTip = tip }

// ToolTip returns the widget set with SetToolTip.
func (w *WidgetBase) ToolTip() Widget { return w.toolTip }

// SetFocusable controls whether the widget can receive focus.
func (w *WidgetBase) SetFocusable(focusable bool) {
	w.focusable = focusable
	if !focusable && w.focused {
		w.unfocus()
	}
}

// IsFocusable reports whether the widget accepts focus at all.
func (w *WidgetBase) IsFocusable() bool { return w.focusable }

// CanGainFocus reports whether the widget could be focused right now: it
// must be focusable, and it and all its ancestors visible and enabled.
func (w *WidgetBase) CanGainFocus() bool {
	if !w.focusable {
		return false
	}
	for b := w; b != nil; {
		if !b.visible || !b.enabled {
			return false
		}
		if b.parent == nil {
			break
		}
		b = &b.parent.WidgetBase
	}
	return true
}

// SetFocused focuses or unfocuses the widget. See the Container docs for
// the focus rules.
func (w *WidgetBase) SetFocused(focused bool) {
	if focused {
		w.focus()
	} else {
		w.unfocus()
	}
}

// IsFocused reports whether the widget is on the active focus chain.
func (w *WidgetBase) IsFocused() bool { return w.focused }

// IsMouseHover reports whether the mouse is over the widget.
func (w *WidgetBase) IsMouseHover() bool { return w.hovered }

// IsMouseDown reports whether a mouse button was pressed on the widget and
// not released yet.
func (w *WidgetBase) IsMouseDown() bool { return w.pressed }

// SetIgnoreMouseEvents makes hit testing pass through the widget.
func (w *WidgetBase) SetIgnoreMouseEvents(ignore bool) {
	w.ignoreMouse = ignore
	if ignore {
		if g := w.gui(); g != nil {
			g.dispatcher.forget(w)
		}
	}
}

// IgnoresMouseEvents reports whether hit testing passes through the widget.
func (w *WidgetBase) IgnoresMouseEvents() bool { return w.ignoreMouse }

// SetOpacity sets the opacity, clamped to 0..1.
func (w *WidgetBase) SetOpacity(opacity float32) {
	w.opacity = min(1, max(0, opacity))
}

// Opacity returns the opacity set on the widget.
func (w *WidgetBase) Opacity() float32 { return w.opacity }

// EffectiveOpacity is the opacity used for drawing. Disabled widgets use the
// renderer's "opacity_disabled" property when it is set.
func (w *WidgetBase) EffectiveOpacity() float32 {
	if !w.enabled {
		if v, ok := w.renderer.lookupNumber(PropOpacityDisabled); ok && v >= 0 {
			return min(1, v)
		}
	}
	return w.opacity
}

// BringToFront moves the widget to the top of its parent's z-order.
func (w *WidgetBase) BringToFront() bool {
	if w.parent == nil {
		return false
	}
	return w.parent.MoveToFront(w.self)
}

// SendToBack moves the widget to the bottom of its parent's z-order.
func (w *WidgetBase) SendToBack() bool {
	if w.parent == nil {
		return false
	}
	return w.parent.MoveToBack(w.self)
}

// isAncestorOf reports whether w is a strict ancestor of o.
func (w *WidgetBase) isAncestorOf(o *WidgetBase) bool {
	for p := o.parent; p != nil; p = p.parent {
		if &p.WidgetBase == w {
			return true
		}
	}
	return false
}

// top returns the outermost container above w, or w's own container when w
// has no parent.
func (w *WidgetBase) top() *Container {
	var top *Container
	if w.container != nil {
		top = w.container
	}
	for p := w.parent; p != nil; p = p.parent {
		top = p
	}
	return top
}

// gui returns the Gui the widget is attached to, or nil.
func (w *WidgetBase) gui() *Gui {
	if t := w.top(); t != nil {
		return t.gui
	}
	return nil
}

// attachedTo reports whether w is still part of g's tree.
func (w *WidgetBase) attachedTo(g *Gui) bool {
	return g != nil && w.gui() == g
}

// releaseInteraction drops hover, pressed and focus state of w and its
// descendants. Called when w is hidden, disabled or removed.
func (w *WidgetBase) releaseInteraction() {
	if g := w.gui(); g != nil {
		g.dispatcher.forget(w)
	} else {
		w.walk(func(b *WidgetBase) {
			b.hovered = false
			b.pressed = false
		})
	}
	w.releaseFocus()
}

// walk visits w and all its descendants, parents before children.
func (w *WidgetBase) walk(fn func(*WidgetBase)) {
	fn(w)
	if c := w.container; c != nil {
		for _, child := range c.children {
			child.Base().walk(fn)
		}
	}
}

// ============================================================================
// Mouse state hooks called by the dispatcher
// ============================================================================

func (w *WidgetBase) mouseEntered(x, y float32) {
	w.hovered = true
	w.deliverMouse(EventMouseEnter, x, y)
	w.OnMouseEnter.emit(w)
}

func (w *WidgetBase) mouseLeft(x, y float32) {
	w.hovered = false
	w.deliverMouse(EventMouseLeave, x, y)
	w.OnMouseLeave.emit(w)
}

// deliverMouse sends a non-bubbling event to w only.
func (w *WidgetBase) deliverMouse(t EventType, x, y float32) {
	r, ok := w.self.(MouseResponder)
	if !ok {
		return
	}
	e := NewMouseEvent(t, x, y, MouseButtonNone, 0)
	abs := w.AbsolutePosition()
	e.LocalX, e.LocalY = x-abs.X, y-abs.Y
	e.target, e.currentTarget = w.self, w.self
	guard(w, func() { r.HandleMouse(e) })
	e.Release()
}

func (w *WidgetBase) String() string {
	return fmt.Sprintf("%s(%s#%d)", w.kind, w.name, w.id)
}
