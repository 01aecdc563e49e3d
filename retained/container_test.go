package retained

import (
	"errors"
	"testing"
)

func TestWidgetAtFrontToBack(t *testing.T) {
	g := newTestGui(t)
	a := newProbe("a", nil)
	b := newProbe("b", nil)
	for _, p := range []*probe{a, b} {
		p.SetPosition(10, 10)
		p.SetSize(50, 50)
		mustAdd(t, g, p, p.name)
	}

	if got := g.WidgetAt(20, 20); got != b {
		t.Errorf("WidgetAt = %v, want b (added last)", got)
	}

	a.BringToFront()
	if got := g.WidgetAt(20, 20); got != a {
		t.Errorf("after BringToFront WidgetAt = %v, want a", got)
	}

	a.SendToBack()
	if got := g.WidgetAt(20, 20); got != b {
		t.Errorf("after SendToBack WidgetAt = %v, want b", got)
	}
}

func TestWidgetAtSkipsHiddenAndIgnored(t *testing.T) {
	tests := []struct {
		name  string
		setup func(top *probe)
		want  string
	}{
		{name: "visible top", setup: func(*probe) {}, want: "top"},
		{name: "hidden top", setup: func(p *probe) { p.SetVisible(false) }, want: "bottom"},
		{name: "top ignores mouse", setup: func(p *probe) { p.SetIgnoreMouseEvents(true) }, want: "bottom"},
		{name: "disabled top absorbs", setup: func(p *probe) { p.SetEnabled(false) }, want: "root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGui(t)
			bottom := newProbe("bottom", nil)
			top := newProbe("top", nil)
			for _, p := range []*probe{bottom, top} {
				p.SetSize(40, 40)
				mustAdd(t, g, p, p.name)
			}
			tt.setup(top)

			got := "root"
			if w := g.WidgetAt(5, 5); w != nil && w != Widget(g.Container()) {
				got = w.Base().Name()
			}
			if got != tt.want {
				t.Errorf("WidgetAt = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClipExclusion(t *testing.T) {
	g := newTestGui(t)
	panel := NewPanel()
	panel.SetPosition(0, 0)
	panel.SetSize(100, 100)
	mustAdd(t, g, panel, "panel")

	inside := newProbe("inside", nil)
	inside.SetPosition(10, 10)
	inside.SetSize(20, 20)
	outside := newProbe("outside", nil)
	outside.SetPosition(150, 150)
	outside.SetSize(20, 20)
	partial := newProbe("partial", nil)
	partial.SetPosition(90, 10)
	partial.SetSize(20, 20)
	mustAdd(t, panel, inside, "inside")
	mustAdd(t, panel, outside, "outside")
	mustAdd(t, panel, partial, "partial")

	if got := g.WidgetAt(160, 160); got == outside {
		t.Error("WidgetAt returned a widget outside its container's clip")
	}
	if got := panel.WidgetAt(Vector2f{160, 160}); got != nil {
		t.Errorf("panel.WidgetAt outside child area = %v, want nil", got)
	}
	if got := g.WidgetAt(95, 15); got != partial {
		t.Errorf("WidgetAt on visible part = %v, want partial", got)
	}
	if got := g.WidgetAt(105, 15); got == partial {
		t.Error("WidgetAt returned the clipped part of a widget")
	}

	target := &recordingTarget{}
	g.Draw(target)
	if outside.draws != 0 {
		t.Errorf("outside.draws = %d, want 0", outside.draws)
	}
	if inside.draws != 1 || partial.draws != 1 {
		t.Errorf("draws inside=%d partial=%d, want 1 and 1", inside.draws, partial.draws)
	}
	if target.clipDepth != 0 {
		t.Errorf("clipping layers left open: %d", target.clipDepth)
	}
}

func TestEmptyClipSkipsSubtree(t *testing.T) {
	g := newTestGui(t)
	panel := NewPanel()
	panel.SetSize(0, 0)
	mustAdd(t, g, panel, "")
	child := newProbe("child", nil)
	child.SetSize(10, 10)
	mustAdd(t, panel, child, "child")

	g.Draw(&recordingTarget{})
	if child.draws != 0 {
		t.Errorf("child.draws = %d, want 0", child.draws)
	}
	if got := g.WidgetAt(5, 5); got == child {
		t.Error("child of an empty container was hit")
	}
}

func TestChildOffsetAndAbsolutePosition(t *testing.T) {
	g := newTestGui(t)
	panel := NewPanel()
	panel.Renderer().Set(PropBorders, UniformOutline(2))
	panel.Renderer().Set(PropPadding, UniformOutline(3))
	panel.SetPosition(100, 50)
	panel.SetSize(200, 100)
	mustAdd(t, g, panel, "")

	child := newProbe("child", nil)
	child.SetPosition(10, 10)
	child.SetSize(20, 20)
	mustAdd(t, panel, child, "child")

	if got, want := child.AbsolutePosition(), (Vector2f{115, 65}); got != want {
		t.Errorf("AbsolutePosition = %v, want %v", got, want)
	}
	if got, want := panel.InnerSize(), (Vector2f{190, 90}); got != want {
		t.Errorf("InnerSize = %v, want %v", got, want)
	}
	if got := g.WidgetAt(120, 70); got != child {
		t.Errorf("WidgetAt = %v, want child", got)
	}

	panel.SetPosition(0, 0)
	if got, want := child.AbsolutePosition(), (Vector2f{15, 15}); got != want {
		t.Errorf("after move AbsolutePosition = %v, want %v", got, want)
	}
}

func TestInnerSizeClampedAtZero(t *testing.T) {
	panel := NewPanel()
	panel.Renderer().Set(PropBorders, UniformOutline(10))
	panel.SetSize(5, 5)
	if got := panel.InnerSize(); got != (Vector2f{}) {
		t.Errorf("InnerSize = %v, want 0,0", got)
	}
}

func TestAddRejectsCycles(t *testing.T) {
	outer := NewPanel()
	inner := NewPanel()
	if err := outer.Add(inner, "inner"); err != nil {
		t.Fatalf("Add error = %v", err)
	}

	tests := []struct {
		name   string
		parent *Panel
		child  Widget
	}{
		{name: "self", parent: outer, child: outer},
		{name: "ancestor into descendant", parent: inner, child: outer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parent.Add(tt.child, "")
			if !errors.Is(err, ErrInvalidHierarchy) {
				t.Errorf("Add error = %v, want ErrInvalidHierarchy", err)
			}
		})
	}

	if outer.Parent() != nil {
		t.Error("outer gained a parent")
	}
	if inner.Parent() != &outer.Container {
		t.Error("inner lost its parent")
	}
	if outer.Len() != 1 || inner.Len() != 0 {
		t.Errorf("Len outer=%d inner=%d, want 1 and 0", outer.Len(), inner.Len())
	}
}

func TestAddRootContainerRejected(t *testing.T) {
	g := newTestGui(t)
	other := newTestGui(t)
	if err := g.Add(other.Container(), ""); !errors.Is(err, ErrInvalidHierarchy) {
		t.Errorf("Add(root) error = %v, want ErrInvalidHierarchy", err)
	}
}

func TestInsertIndexOutOfRange(t *testing.T) {
	p := NewPanel()
	if err := p.Insert(3, newProbe("x", nil), ""); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Insert error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestReparent(t *testing.T) {
	g := newTestGui(t)
	first := NewPanel()
	second := NewPanel()
	second.SetPosition(100, 0)
	first.SetSize(100, 100)
	second.SetSize(100, 100)
	mustAdd(t, g, first, "first")
	mustAdd(t, g, second, "second")

	w := newProbe("w", nil)
	w.SetSizeLayout(Layout2d{Percent(50), Percent(50)})
	mustAdd(t, first, w, "w")
	second.SetSize(200, 40)

	mustAdd(t, second, w, "")
	if first.Len() != 0 {
		t.Errorf("first.Len = %d, want 0", first.Len())
	}
	if w.Parent() != &second.Container {
		t.Error("w is not a child of second")
	}
	if got, want := w.Size(), (Vector2f{100, 20}); got != want {
		t.Errorf("Size after reparent = %v, want %v", got, want)
	}
	if got := g.Get("w"); got != w {
		t.Errorf("Get(w) = %v, want w", got)
	}
}

func TestZOrder(t *testing.T) {
	p := NewPanel()
	a, b, c := newProbe("a", nil), newProbe("b", nil), newProbe("c", nil)
	for _, w := range []*probe{a, b, c} {
		mustAdd(t, p, w, w.name)
	}
	names := func() string {
		s := ""
		for _, w := range p.Widgets() {
			s += w.Base().Name()
		}
		return s
	}

	tests := []struct {
		name string
		op   func() bool
		want string
	}{
		{name: "move to front", op: func() bool { return p.MoveToFront(a) }, want: "bca"},
		{name: "move backward", op: func() bool { return p.MoveBackward(a) }, want: "bac"},
		{name: "move to back", op: func() bool { return p.MoveToBack(c) }, want: "cba"},
		{name: "move forward", op: func() bool { return p.MoveForward(c) }, want: "bca"},
		{name: "set index", op: func() bool { return p.SetWidgetIndex(a, 0) }, want: "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.op() {
				t.Fatal("operation returned false")
			}
			if got := names(); got != tt.want {
				t.Errorf("order = %s, want %s", got, tt.want)
			}
		})
	}

	if p.MoveForward(c) {
		t.Error("MoveForward on the top widget returned true")
	}
}

func TestGetSearchesDirectChildrenFirst(t *testing.T) {
	root := NewPanel()
	nested := NewPanel()
	deep := newProbe("deep", nil)
	mustAdd(t, root, nested, "nested")
	mustAdd(t, nested, deep, "target")
	direct := newProbe("direct", nil)
	mustAdd(t, root, direct, "target")

	if got := root.Get("target"); got != direct {
		t.Errorf("Get = %v, want the direct child", got)
	}
	if got := root.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}
}

func TestRemoveFromOwnCallback(t *testing.T) {
	g := newTestGui(t)
	w := newProbe("w", nil)
	w.SetSize(50, 50)
	mustAdd(t, g, w, "w")

	clicks := 0
	w.OnClick.Connect(func(Vector2f) {
		clicks++
		g.Remove(w)
	})
	click(g, 10, 10)

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if g.Container().Len() != 0 {
		t.Error("widget was not removed")
	}
	if w.IsMouseHover() || w.IsMouseDown() || w.IsFocused() {
		t.Error("removed widget kept interaction state")
	}
}

func TestRemoveAll(t *testing.T) {
	g := newTestGui(t)
	for _, n := range []string{"a", "b", "c"} {
		mustAdd(t, g, newProbe(n, nil), n)
	}
	g.RemoveAll()
	if n := g.Container().Len(); n != 0 {
		t.Errorf("Len = %d, want 0", n)
	}
}
