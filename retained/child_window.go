package retained

// CloseRequest is passed to OnClosing handlers. Setting Vetoed keeps the
// window open.
type CloseRequest struct {
	Vetoed bool
}

// Veto keeps the window open.
func (r *CloseRequest) Veto() { r.Vetoed = true }

// ChildWindow is a movable panel with a title bar and a close button. It is
// a focus scope of its own: focus inside the window is remembered while
// another window is active. Pressing anywhere in the window brings it to
// the front; dragging the title bar moves it.
type ChildWindow struct {
	Panel

	title        string
	keepInParent bool

	dragging     bool
	dragOffset   Vector2f
	closePressed bool

	// OnClosing runs before the window closes. Any handler may veto.
	OnClosing Signal[*CloseRequest]

	// OnClose runs when the window is about to be removed from its parent.
	OnClose VoidSignal
}

// NewChildWindow creates a window with the given title.
func NewChildWindow(title string) *ChildWindow {
	w := &ChildWindow{title: title}
	w.initPanel(w, KindChildWindow)
	w.updateInsets()
	w.SetIsolatedFocus(true)
	w.focusable = true
	return w
}

// Title returns the title bar text.
func (w *ChildWindow) Title() string { return w.title }

// SetTitle changes the title bar text.
func (w *ChildWindow) SetTitle(title string) { w.title = title }

// SetKeepInParent stops dragging from moving the window outside its
// parent's child area.
func (w *ChildWindow) SetKeepInParent(keep bool) { w.keepInParent = keep }

// KeepInParent reports whether dragging is limited to the parent.
func (w *ChildWindow) KeepInParent() bool { return w.keepInParent }

// TitleBarHeight returns the height of the title bar.
func (w *ChildWindow) TitleBarHeight() float32 {
	return max(0, w.renderer.Number(PropTitleBarHeight))
}

func (w *ChildWindow) updateInsets() {
	r := w.renderer
	insets := r.Outline(PropBorders).Add(Outline{Top: w.TitleBarHeight()}).Add(r.Outline(PropPadding))
	w.setInsets(insets)
}

// RendererChanged keeps the child area in sync with the decoration.
func (w *ChildWindow) RendererChanged(property string) {
	switch property {
	case "", PropBorders, PropPadding, PropTitleBarHeight:
		w.updateInsets()
	}
}

// titleBar returns the title bar rectangle in local coordinates.
func (w *ChildWindow) titleBar() Bounds {
	b := w.renderer.Outline(PropBorders)
	size := w.Size()
	return Bounds{X: b.Left, Y: b.Top, Width: max(0, size.X-b.Horizontal()), Height: w.TitleBarHeight()}
}

// closeButton returns the close button rectangle in local coordinates.
func (w *ChildWindow) closeButton() Bounds {
	bar := w.titleBar()
	side := max(0, bar.Height-4)
	return Bounds{X: bar.X + bar.Width - side - 2, Y: bar.Y + 2, Width: side, Height: side}
}

// Close asks OnClosing handlers and, unless one vetoes, emits OnClose and
// removes the window from its parent. It reports whether the window closed.
func (w *ChildWindow) Close() bool {
	req := &CloseRequest{}
	w.OnClosing.emit(&w.WidgetBase, req)
	if req.Vetoed {
		w.log().Debug("close vetoed", "widget", w.label(), "err", ErrVetoed)
		return false
	}
	w.OnClose.emit(&w.WidgetBase)
	if p := w.parent; p != nil {
		p.Remove(w)
	}
	return true
}

// HandleMouse brings the window to the front on any press inside it and
// handles the title bar.
func (w *ChildWindow) HandleMouse(e *MouseEvent) {
	switch e.Type() {
	case EventMouseDown:
		w.BringToFront()
		if e.Target() != w.self || e.Button != MouseButtonLeft {
			return
		}
		if w.closeButton().Contains(e.LocalX, e.LocalY) {
			w.closePressed = true
		} else if w.titleBar().Contains(e.LocalX, e.LocalY) {
			w.dragging = true
			w.dragOffset = Vector2f{e.LocalX, e.LocalY}
		}
		e.StopPropagation()

	case EventMouseMove:
		if !w.dragging {
			return
		}
		pos := w.Position()
		pos = pos.Add(Vector2f{e.LocalX - w.dragOffset.X, e.LocalY - w.dragOffset.Y})
		if w.keepInParent && w.parent != nil {
			area := w.parent.InnerSize()
			size := w.Size()
			pos.X = max(0, min(pos.X, area.X-size.X))
			pos.Y = max(0, min(pos.Y, area.Y-size.Y))
		}
		w.SetPosition(pos.X, pos.Y)

	case EventMouseUp:
		if e.Target() != w.self && e.CurrentTarget() != w.self {
			return
		}
		w.dragging = false
		if w.closePressed {
			w.closePressed = false
			if w.closeButton().Contains(e.LocalX, e.LocalY) {
				w.Close()
			}
		}
	}
}

// IsDragging reports whether the title bar is being dragged.
func (w *ChildWindow) IsDragging() bool { return w.dragging }

// Draw draws the frame, the title bar and the children.
func (w *ChildWindow) Draw(target RenderTarget, states RenderStates) {
	r := w.renderer
	drawBackground(target, states, r, w.Size())

	bar := w.titleBar()
	if bar.Height > 0 {
		bs := states
		bs.Transform = states.Transform.Translate(bar.Position())
		target.DrawFilledRect(bs, bar.Size(), ApplyOpacity(r.Color(PropTitleBarColor), states.Opacity))

		textSize := textSizeOf(&w.WidgetBase)
		m := target.MeasureText(w.title, textSize)
		ts := bs
		ts.Transform = bs.Transform.Translate(Vector2f{4, (bar.Height - m.Y) / 2})
		target.DrawText(ts, w.title, textSize, ApplyOpacity(r.Color(PropTitleColor), states.Opacity))

		cb := w.closeButton()
		if !cb.IsEmpty() {
			cs := states
			cs.Transform = states.Transform.Translate(cb.Position())
			target.DrawFilledRect(cs, cb.Size(), ApplyOpacity(r.Color(PropCloseButtonColor), states.Opacity))
		}
	}
	w.DrawChildren(target, states)
}
