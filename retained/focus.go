package retained

// ============================================================================
// Focus Scopes
// ============================================================================
//
// Every focus scope (the root, child windows, any container with isolated
// focus) remembers one element: a focusable widget somewhere below it, or
// a nested scope container. Starting at the root and following those
// memories gives the active chain. A widget's focused flag is set exactly
// when it is on the active chain.
//
// Focus changes are computed as a whole: the chain before and after the
// change is compared, widgets that left it lose focus deepest first, then
// widgets that joined it gain focus outermost first.

type focusScope struct {
	focused *WidgetBase

	// implicit scopes are created for detached trees whose top container
	// is not isolated; they are dropped when the tree is attached.
	implicit bool
}

// scopeOwner returns the nearest ancestor that is a focus scope. A tree
// without one gets an implicit scope on its top container.
func (w *WidgetBase) scopeOwner() *Container {
	var top *Container
	for p := w.parent; p != nil; p = p.parent {
		if p.scope != nil {
			return p
		}
		top = p
	}
	if top == nil {
		return nil
	}
	top.scope = &focusScope{implicit: true}
	return top
}

// activeChain appends the active focus chain below top to buf.
func activeChain(top *Container, buf []*WidgetBase) []*WidgetBase {
	s := top
	for s != nil && s.scope != nil {
		e := s.scope.focused
		if e == nil {
			break
		}
		buf = append(buf, e)
		if e.container == nil || e.container.scope == nil {
			break
		}
		s = e.container
	}
	return buf
}

func onActiveChain(top *Container, e *WidgetBase) bool {
	chain := activeChain(top, acquireChain())
	defer releaseChain(chain)
	return containsBase(chain, e)
}

// applyFocusChange runs mutate, which edits scope memories, and fires the
// resulting focus transitions.
func applyFocusChange(top *Container, mutate func()) {
	before := activeChain(top, acquireChain())
	defer releaseChain(before)
	mutate()
	after := activeChain(top, acquireChain())
	defer releaseChain(after)

	for i := len(before) - 1; i >= 0; i-- {
		e := before[i]
		if e.focused && !containsBase(after, e) {
			e.focused = false
			e.focusChanged(false)
		}
	}
	for _, e := range after {
		if e.focused {
			continue
		}
		// A callback may already have moved focus elsewhere.
		if !onActiveChain(top, e) {
			return
		}
		e.focused = true
		e.focusChanged(true)
	}
}

func (w *WidgetBase) focusChanged(focused bool) {
	if r, ok := w.self.(FocusResponder); ok {
		guard(w, func() { r.FocusChanged(focused) })
	}
	if focused {
		w.OnFocus.emit(w)
	} else {
		w.OnUnfocus.emit(w)
	}
}

// focus makes w the focused element of its scope and activates every
// enclosing scope up to the root.
func (w *WidgetBase) focus() bool {
	if !w.CanGainFocus() {
		return false
	}
	if w.parent == nil {
		if !w.focused {
			w.focused = true
			w.focusChanged(true)
		}
		return true
	}

	top := w.top()
	inactive := false
	applyFocusChange(top, func() {
		for elem := w; ; {
			s := elem.scopeOwner()
			if s == nil {
				break
			}
			if elem != w && s.scope.focused != elem {
				inactive = true
			}
			s.scope.focused = elem
			if s == top {
				break
			}
			elem = &s.WidgetBase
		}
	})
	if inactive {
		w.log().Debug("focus scope activated", "widget", w.label(), "err", ErrFocusScopeViolation)
	}
	return w.focused
}

// unfocus removes w from its scope's memory.
func (w *WidgetBase) unfocus() {
	s := w.scopeOwner()
	if s == nil {
		if w.focused {
			w.focused = false
			w.focusChanged(false)
		}
		return
	}
	applyFocusChange(s.top(), func() {
		if s.scope.focused == w {
			s.scope.focused = nil
		}
	})
}

// releaseFocus clears focus from w and its descendants. Scopes inside the
// subtree keep their memory so the state returns when the subtree is shown
// or attached again.
func (w *WidgetBase) releaseFocus() {
	if w.parent == nil {
		c := w.container
		if c == nil || c.scope == nil {
			if w.focused {
				w.focused = false
				w.focusChanged(false)
			}
			return
		}
		applyFocusChange(c, func() { c.scope.focused = nil })
		return
	}

	owner := w.parent
	for owner != nil && owner.scope == nil {
		owner = owner.parent
	}
	if owner == nil {
		return
	}
	f := owner.scope.focused
	if f == nil || (f != w && !w.isAncestorOf(f)) {
		return
	}
	applyFocusChange(owner.top(), func() { owner.scope.focused = nil })
}

// focusBackground activates the scope of c and clears its memory, as when
// the user clicks an empty part of a window.
func (c *Container) focusBackground() {
	top := c.top()
	applyFocusChange(top, func() {
		if c.scope != nil {
			c.scope.focused = nil
		}
		for elem := &c.WidgetBase; elem != &top.WidgetBase; {
			s := elem.scopeOwner()
			if s == nil {
				break
			}
			s.scope.focused = elem
			elem = &s.WidgetBase
		}
	})
}

// ============================================================================
// Tab Navigation
// ============================================================================

// focusStep moves the focus of scope c to the next or previous candidate,
// wrapping around. It returns false when there is no other candidate.
func (c *Container) focusStep(forward bool) bool {
	candidates := c.focusCandidates(acquireChain())
	defer releaseChain(candidates)
	n := len(candidates)
	if n == 0 {
		return false
	}

	cur := -1
	if c.scope != nil {
		for i, e := range candidates {
			if e == c.scope.focused {
				cur = i
				break
			}
		}
	}
	var next int
	switch {
	case cur < 0 && forward:
		next = 0
	case cur < 0:
		next = n - 1
	case forward:
		next = (cur + 1) % n
	default:
		next = (cur - 1 + n) % n
	}
	if next == cur {
		return false
	}
	return candidates[next].focus()
}

// focusCandidates lists the focusable widgets of scope c in tree order,
// skipping hidden or disabled subtrees and nested scopes.
func (c *Container) focusCandidates(out []*WidgetBase) []*WidgetBase {
	for _, child := range c.children {
		b := child.Base()
		if !b.visible || !b.enabled {
			continue
		}
		bc := b.container
		if bc != nil && bc.IsolatedFocus() {
			continue
		}
		if b.focusable {
			out = append(out, b)
		}
		if bc != nil {
			out = bc.focusCandidates(out)
		}
	}
	return out
}
