package retained

import "slices"

// SelectionChange is passed to OnSelectionChanging handlers. Setting
// Vetoed keeps the current tab.
type SelectionChange struct {
	From, To int
	Vetoed   bool
}

// Veto cancels the selection change.
func (s *SelectionChange) Veto() { s.Vetoed = true }

type tab struct {
	title string
	panel *Panel
}

// TabContainer shows one panel at a time under a row of tab headers. Every
// panel fills the area below the tab bar; only the selected one is visible.
type TabContainer struct {
	Container

	tabs     []tab
	selected int

	// OnSelectionChanging runs before the selected tab changes through
	// Select or a header click. Any handler may veto the change.
	OnSelectionChanging Signal[*SelectionChange]

	// OnSelectionChanged carries the newly selected index.
	OnSelectionChanged Signal[int]
}

// NewTabContainer creates a tab container without tabs.
func NewTabContainer() *TabContainer {
	t := &TabContainer{selected: -1}
	t.initContainer(t, KindTabContainer)
	t.updateInsets()
	t.onChildRemoved = func(w *WidgetBase) {
		for i, tb := range t.tabs {
			if &tb.panel.WidgetBase == w {
				t.dropTab(i)
				return
			}
		}
	}
	return t
}

// TabBarHeight returns the height of the header row.
func (t *TabContainer) TabBarHeight() float32 {
	return max(0, t.renderer.Number(PropTabHeight))
}

func (t *TabContainer) updateInsets() {
	t.setInsets(Outline{Top: t.TabBarHeight()})
}

// RendererChanged resizes the child area when the tab height changes.
func (t *TabContainer) RendererChanged(property string) {
	if property == "" || property == PropTabHeight {
		t.updateInsets()
	}
}

// AddTab appends a tab and returns its panel.
func (t *TabContainer) AddTab(title string, selectTab bool) *Panel {
	return t.InsertTab(len(t.tabs), title, selectTab)
}

// InsertTab inserts a tab at index and returns its panel, or nil if index
// is out of range. The first tab is always selected, even if an
// OnSelectionChanging handler objects.
func (t *TabContainer) InsertTab(index int, title string, selectTab bool) *Panel {
	if index < 0 || index > len(t.tabs) {
		return nil
	}
	p := NewPanel()
	p.SetSizeLayout(Layout2d{Percent(100), Percent(100)})
	p.SetVisible(false)
	if err := t.Add(p, ""); err != nil {
		return nil
	}
	t.tabs = slices.Insert(t.tabs, index, tab{title: title, panel: p})
	if t.selected >= index {
		t.selected++
	}
	switch {
	case t.selected < 0:
		// Nothing to hand over from, so handlers cannot veto.
		t.show(index)
	case selectTab:
		t.Select(index)
	}
	return p
}

// RemoveTab removes the tab at index together with its panel. If it was
// selected, the tab now at its place (or the one before) is selected
// without asking OnSelectionChanging.
func (t *TabContainer) RemoveTab(index int) bool {
	if index < 0 || index >= len(t.tabs) {
		return false
	}
	return t.Remove(t.tabs[index].panel)
}

// dropTab forgets the tab at index once its panel left the container.
func (t *TabContainer) dropTab(index int) {
	t.tabs = slices.Delete(t.tabs, index, index+1)
	switch {
	case index < t.selected:
		t.selected--
	case index == t.selected:
		t.selected = -1
		if len(t.tabs) > 0 {
			t.show(min(index, len(t.tabs)-1))
		}
	}
}

// Select makes the tab at index visible. It returns false if index is out
// of range or a handler vetoed the change.
func (t *TabContainer) Select(index int) bool {
	if index < 0 || index >= len(t.tabs) {
		return false
	}
	if index == t.selected {
		return true
	}
	change := &SelectionChange{From: t.selected, To: index}
	t.OnSelectionChanging.emit(&t.WidgetBase, change)
	if change.Vetoed {
		t.log().Debug("tab selection vetoed", "widget", t.label(), "from", change.From, "to", index, "err", ErrVetoed)
		return false
	}
	// A handler may have removed tabs.
	if index >= len(t.tabs) {
		return false
	}
	t.show(index)
	return true
}

func (t *TabContainer) show(index int) {
	if t.selected >= 0 && t.selected < len(t.tabs) {
		t.tabs[t.selected].panel.SetVisible(false)
	}
	t.selected = index
	t.tabs[index].panel.SetVisible(true)
	t.OnSelectionChanged.emit(&t.WidgetBase, index)
}

// Selected returns the selected index, or -1 without tabs.
func (t *TabContainer) Selected() int { return t.selected }

// TabCount returns the number of tabs.
func (t *TabContainer) TabCount() int { return len(t.tabs) }

// Panel returns the panel of the tab at index, or nil.
func (t *TabContainer) Panel(index int) *Panel {
	if index < 0 || index >= len(t.tabs) {
		return nil
	}
	return t.tabs[index].panel
}

// TabTitle returns the title of the tab at index.
func (t *TabContainer) TabTitle(index int) string {
	if index < 0 || index >= len(t.tabs) {
		return ""
	}
	return t.tabs[index].title
}

// SetTabTitle renames the tab at index.
func (t *TabContainer) SetTabTitle(index int, title string) bool {
	if index < 0 || index >= len(t.tabs) {
		return false
	}
	t.tabs[index].title = title
	return true
}

// TabAt returns the index of the header under a local point, or -1.
// Headers share the width equally.
func (t *TabContainer) TabAt(localX, localY float32) int {
	size := t.Size()
	if len(t.tabs) == 0 || localY < 0 || localY >= t.TabBarHeight() || localX < 0 || localX >= size.X {
		return -1
	}
	w := size.X / float32(len(t.tabs))
	return min(int(localX/w), len(t.tabs)-1)
}

// HandleMouse selects the tab whose header was pressed.
func (t *TabContainer) HandleMouse(e *MouseEvent) {
	if e.Type() != EventMouseDown || e.Button != MouseButtonLeft || e.Target() != t.self {
		return
	}
	if i := t.TabAt(e.LocalX, e.LocalY); i >= 0 {
		t.Select(i)
		e.StopPropagation()
	}
}

// Draw draws the tab headers, then the selected panel.
func (t *TabContainer) Draw(target RenderTarget, states RenderStates) {
	r := t.renderer
	size := t.Size()
	if n := len(t.tabs); n > 0 {
		w := size.X / float32(n)
		h := t.TabBarHeight()
		textSize := textSizeOf(&t.WidgetBase)
		textColor := ApplyOpacity(r.Color(PropTextColor), states.Opacity)
		border := ApplyOpacity(r.Color(PropBorderColor), states.Opacity)
		for i, tb := range t.tabs {
			hs := states
			hs.Transform = states.Transform.Translate(Vector2f{float32(i) * w, 0})
			bg := r.Color(PropTabColor)
			if i == t.selected {
				bg = r.ColorOr(PropSelectedTabColor, bg)
			}
			target.DrawFilledRect(hs, Vector2f{w, h}, ApplyOpacity(bg, states.Opacity))
			target.DrawBorders(hs, UniformOutline(1), Vector2f{w, h}, border)
			m := target.MeasureText(tb.title, textSize)
			ts := hs
			ts.Transform = hs.Transform.Translate(Vector2f{(w - m.X) / 2, (h - m.Y) / 2})
			target.DrawText(ts, tb.title, textSize, textColor)
		}
	}
	t.DrawChildren(target, states)
}
