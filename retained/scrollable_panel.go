package retained

// ============================================================================
// Scrollable Panel
// ============================================================================

// ScrollablePanel is a panel whose children may extend past its child
// area. The visible part is chosen by a scroll offset, changed by the mouse
// wheel or by the program. Scrollbars are drawn over the child area while
// the content does not fit.
type ScrollablePanel struct {
	Panel

	contentSize  Vector2f
	scrollAmount float32

	// OnScroll carries the new scroll offset.
	OnScroll Signal[Vector2f]
}

// NewScrollablePanel creates an empty scrollable panel.
func NewScrollablePanel() *ScrollablePanel {
	s := &ScrollablePanel{scrollAmount: 20}
	s.initPanel(s, KindScrollablePanel)
	s.wheel = s.scrollByWheel
	return s
}

// SetContentSize fixes the scrollable area. A zero size means the area is
// the bottom-right corner of the furthest child.
func (s *ScrollablePanel) SetContentSize(width, height float32) {
	s.contentSize = Vector2f{max(width, 0), max(height, 0)}
	s.clampScroll()
}

// ContentSize returns the scrollable area. Without children and without a
// fixed size it is the inner size.
func (s *ScrollablePanel) ContentSize() Vector2f {
	if s.contentSize != (Vector2f{}) {
		return s.contentSize
	}
	if len(s.children) == 0 {
		return s.InnerSize()
	}
	var extent Vector2f
	for _, child := range s.children {
		b := child.Base()
		if !b.visible {
			continue
		}
		br := b.Position().Add(b.Size())
		extent.X, extent.Y = max(extent.X, br.X), max(extent.Y, br.Y)
	}
	return extent
}

// MaxScroll returns the largest scroll offset on each axis.
func (s *ScrollablePanel) MaxScroll() Vector2f {
	content, inner := s.ContentSize(), s.InnerSize()
	return Vector2f{max(content.X-inner.X, 0), max(content.Y-inner.Y, 0)}
}

// ScrollOffset returns how far the content is scrolled.
func (s *ScrollablePanel) ScrollOffset() Vector2f { return s.scroll }

// SetScrollOffset scrolls to x, y, clamped to the content. It reports
// whether the offset changed.
func (s *ScrollablePanel) SetScrollOffset(x, y float32) bool {
	limit := s.MaxScroll()
	next := Vector2f{min(max(x, 0), limit.X), min(max(y, 0), limit.Y)}
	if next == s.scroll {
		return false
	}
	s.scroll = next
	s.OnScroll.emit(&s.WidgetBase, next)
	return true
}

// SetScrollAmount sets the pixels scrolled per wheel step.
func (s *ScrollablePanel) SetScrollAmount(px float32) { s.scrollAmount = max(px, 0) }

// ScrollAmount returns the pixels scrolled per wheel step.
func (s *ScrollablePanel) ScrollAmount() float32 { return s.scrollAmount }

// ScrollToWidget scrolls as little as possible to bring w, a descendant,
// fully into view. It reports whether the offset changed.
func (s *ScrollablePanel) ScrollToWidget(w Widget) bool {
	b := w.Base()
	pos := b.Position()
	for p := b.parent; p != &s.Container; p = p.parent {
		if p == nil {
			return false
		}
		pos = pos.Add(p.ChildOffset()).Add(p.Position())
	}
	size, inner := b.Size(), s.InnerSize()
	next := s.scroll
	fit := func(at, length, view, cur float32) float32 {
		switch {
		case at < cur:
			return at
		case at+length > cur+view:
			return min(at, at+length-view)
		}
		return cur
	}
	next.X = fit(pos.X, size.X, inner.X, next.X)
	next.Y = fit(pos.Y, size.Y, inner.Y, next.Y)
	return s.SetScrollOffset(next.X, next.Y)
}

// scrollByWheel moves the content by one wheel step per delta unit.
// Positive deltas scroll towards the start. Shift, or content that only
// overflows sideways, scrolls horizontally.
func (s *ScrollablePanel) scrollByWheel(delta float32, mods Modifiers) bool {
	limit := s.MaxScroll()
	step := delta * s.scrollAmount
	if mods.Shift() || (limit.Y == 0 && limit.X > 0) {
		return s.SetScrollOffset(s.scroll.X-step, s.scroll.Y)
	}
	return s.SetScrollOffset(s.scroll.X, s.scroll.Y-step)
}

// clampScroll keeps the offset inside the content after it shrank.
func (s *ScrollablePanel) clampScroll() {
	s.SetScrollOffset(s.scroll.X, s.scroll.Y)
}

// Draw draws the panel, the visible children and the scrollbar thumbs.
func (s *ScrollablePanel) Draw(target RenderTarget, states RenderStates) {
	s.clampScroll()
	drawBackground(target, states, s.renderer, s.Size())
	s.DrawChildren(target, states)

	width := s.renderer.Number(PropScrollbarWidth)
	thumb := ApplyOpacity(s.renderer.Color(PropScrollbarColor), states.Opacity)
	if width <= 0 || thumb.A == 0 {
		return
	}
	area := s.childArea()
	for _, r := range scrollThumbs(area, s.ContentSize(), s.scroll, width) {
		ts := states
		ts.Transform = states.Transform.Translate(r.Position())
		target.DrawFilledRect(ts, r.Size(), thumb)
	}
}

// scrollThumbs returns the thumb rectangles for the axes whose content
// overflows area. Thumbs run along the right and bottom edges and are
// sized by the visible share of the content.
func scrollThumbs(area Bounds, content, scroll Vector2f, width float32) []Bounds {
	var thumbs []Bounds
	if content.Y > area.Height && area.Height > 0 {
		length := area.Height * area.Height / content.Y
		at := area.Height * scroll.Y / content.Y
		thumbs = append(thumbs, Bounds{X: area.X + area.Width - width, Y: area.Y + at, Width: width, Height: length})
	}
	if content.X > area.Width && area.Width > 0 {
		length := area.Width * area.Width / content.X
		at := area.Width * scroll.X / content.X
		thumbs = append(thumbs, Bounds{X: area.X + at, Y: area.Y + area.Height - width, Width: length, Height: width})
	}
	return thumbs
}
