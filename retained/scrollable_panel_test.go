package retained

import (
	"slices"
	"testing"
)

// newTestScroller adds a 100x100 scrollable panel at the origin holding a
// panel at 10,150 (50x50) and one at 0,0 (100x40).
func newTestScroller(t *testing.T) (*Gui, *ScrollablePanel, *Panel, *Panel) {
	t.Helper()
	g := newTestGui(t)
	s := NewScrollablePanel()
	s.SetSize(100, 100)
	mustAdd(t, g, s, "scroller")

	top := NewPanel()
	top.SetSize(100, 40)
	mustAdd(t, s, top, "top")
	bottom := NewPanel()
	bottom.SetPosition(10, 150)
	bottom.SetSize(50, 50)
	mustAdd(t, s, bottom, "bottom")
	return g, s, top, bottom
}

func TestScrollablePanelContentSize(t *testing.T) {
	_, s, _, _ := newTestScroller(t)
	if got, want := s.ContentSize(), (Vector2f{100, 200}); got != want {
		t.Errorf("ContentSize = %v, want %v", got, want)
	}
	if got, want := s.MaxScroll(), (Vector2f{0, 100}); got != want {
		t.Errorf("MaxScroll = %v, want %v", got, want)
	}

	s.SetContentSize(300, 120)
	if got, want := s.MaxScroll(), (Vector2f{200, 20}); got != want {
		t.Errorf("MaxScroll with fixed content = %v, want %v", got, want)
	}

	empty := NewScrollablePanel()
	empty.SetSize(80, 60)
	if got, want := empty.ContentSize(), (Vector2f{80, 60}); got != want {
		t.Errorf("empty ContentSize = %v, want %v", got, want)
	}
}

func TestScrollablePanelSetScrollOffsetClamps(t *testing.T) {
	_, s, _, _ := newTestScroller(t)
	var seen []Vector2f
	s.OnScroll.Connect(func(v Vector2f) { seen = append(seen, v) })

	tests := []struct {
		x, y    float32
		want    Vector2f
		changed bool
	}{
		{0, 30, Vector2f{0, 30}, true},
		{50, 500, Vector2f{0, 100}, true},
		{0, 100, Vector2f{0, 100}, false},
		{-5, -5, Vector2f{0, 0}, true},
	}
	for _, tt := range tests {
		if got := s.SetScrollOffset(tt.x, tt.y); got != tt.changed {
			t.Errorf("SetScrollOffset(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.changed)
		}
		if got := s.ScrollOffset(); got != tt.want {
			t.Errorf("after SetScrollOffset(%v, %v) offset = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if want := []Vector2f{{0, 30}, {0, 100}, {0, 0}}; !slices.Equal(seen, want) {
		t.Errorf("OnScroll = %v, want %v", seen, want)
	}
}

func TestScrollablePanelHitTestFollowsOffset(t *testing.T) {
	g, s, top, bottom := newTestScroller(t)
	if got := g.WidgetAt(20, 60); got != s {
		t.Errorf("WidgetAt(20,60) before scrolling = %v, want the scroller", got)
	}
	if got := g.WidgetAt(20, 20); got != top {
		t.Errorf("WidgetAt(20,20) before scrolling = %v, want top", got)
	}

	s.SetScrollOffset(0, 100)
	if got := g.WidgetAt(20, 60); got != bottom {
		t.Errorf("WidgetAt(20,60) = %v, want bottom", got)
	}
	if got := g.WidgetAt(20, 20); got == top {
		t.Error("scrolled out widget is still hit")
	}
	if got, want := bottom.AbsolutePosition(), (Vector2f{10, 50}); got != want {
		t.Errorf("AbsolutePosition = %v, want %v", got, want)
	}
	if got, want := bottom.Position(), (Vector2f{10, 150}); got != want {
		t.Errorf("Position = %v, want %v", got, want)
	}
	if got := s.WidgetAt(Vector2f{20, 160}); got != bottom {
		t.Errorf("Container.WidgetAt in child space = %v, want bottom", got)
	}
}

func TestScrollablePanelDrawFollowsOffset(t *testing.T) {
	g, s, _, _ := newTestScroller(t)
	s.SetScrollOffset(0, 100)

	var rt recordingTarget
	g.Draw(&rt)
	want := []string{
		"rect 0,0 100x100",
		"rect 10,50 50x50",
		"rect 92,50 8x50",
	}
	if !slices.Equal(rt.ops, want) {
		t.Errorf("ops = %v, want %v", rt.ops, want)
	}
	if rt.clipDepth != 0 {
		t.Errorf("clip depth after draw = %d, want 0", rt.clipDepth)
	}
}

func TestScrollablePanelWheel(t *testing.T) {
	g, s, _, _ := newTestScroller(t)

	if g.DispatchEvent(MouseWheelEvent(1, 50, 50)) {
		t.Error("wheel towards the start at offset 0 reported consumed")
	}
	if !g.DispatchEvent(MouseWheelEvent(-2, 50, 50)) {
		t.Fatal("wheel was not consumed")
	}
	if got, want := s.ScrollOffset(), (Vector2f{0, 40}); got != want {
		t.Errorf("offset = %v, want %v", got, want)
	}
	if g.DispatchEvent(MouseWheelEvent(-2, 300, 300)) {
		t.Error("wheel outside the scroller was consumed")
	}
}

func TestScrollablePanelWheelBubblesFromChild(t *testing.T) {
	g, s, _, _ := newTestScroller(t)
	var log []string
	p := newProbe("p", &log)
	p.SetPosition(0, 100)
	p.SetSize(100, 50)
	mustAdd(t, s, p, "p")

	// The mouse rests over the scroller at 10,80; scrolling brings p under it.
	g.DispatchEvent(MouseMovedEvent(10, 80))
	if p.IsMouseHover() {
		t.Fatal("p hovered before scrolling")
	}
	g.DispatchEvent(MouseWheelEvent(-2, 10, 80))
	if got, want := s.ScrollOffset(), (Vector2f{0, 40}); got != want {
		t.Errorf("offset = %v, want %v", got, want)
	}
	if !p.IsMouseHover() {
		t.Error("hover not refreshed after scrolling")
	}
	if !slices.Contains(log, "p:mouse-enter") {
		t.Errorf("events = %v, want a mouse-enter for p", log)
	}
}

func TestScrollablePanelChildConsumesWheel(t *testing.T) {
	g, s, _, _ := newTestScroller(t)
	stopper := newWheelStopper()
	stopper.SetSize(100, 100)
	mustAdd(t, s, stopper, "stopper")

	if !g.DispatchEvent(MouseWheelEvent(-1, 50, 50)) {
		t.Error("consumed wheel reported unconsumed")
	}
	if got := s.ScrollOffset(); got != (Vector2f{}) {
		t.Errorf("offset = %v, want 0,0", got)
	}
}

func TestScrollablePanelHorizontalWheel(t *testing.T) {
	g, s, _, _ := newTestScroller(t)
	s.SetContentSize(300, 200)

	g.DispatchEvent(InputEvent{Kind: MouseWheelScrolled, Delta: -1, X: 50, Y: 50, Modifiers: ModShift})
	if got, want := s.ScrollOffset(), (Vector2f{20, 0}); got != want {
		t.Errorf("shift wheel offset = %v, want %v", got, want)
	}

	s.SetContentSize(300, 100)
	g.DispatchEvent(MouseWheelEvent(-1, 50, 50))
	if got, want := s.ScrollOffset(), (Vector2f{40, 0}); got != want {
		t.Errorf("sideways-only wheel offset = %v, want %v", got, want)
	}
}

func TestScrollablePanelScrollToWidget(t *testing.T) {
	_, s, top, bottom := newTestScroller(t)
	if !s.ScrollToWidget(bottom) {
		t.Fatal("ScrollToWidget(bottom) = false")
	}
	if got, want := s.ScrollOffset(), (Vector2f{0, 100}); got != want {
		t.Errorf("offset = %v, want %v", got, want)
	}
	if s.ScrollToWidget(bottom) {
		t.Error("visible widget scrolled again")
	}
	s.ScrollToWidget(top)
	if got := s.ScrollOffset(); got != (Vector2f{}) {
		t.Errorf("offset after top = %v, want 0,0", got)
	}
	if s.ScrollToWidget(NewPanel()) {
		t.Error("ScrollToWidget of a stranger = true")
	}
}

func TestScrollThumbs(t *testing.T) {
	area := Bounds{X: 2, Y: 2, Width: 100, Height: 50}
	tests := []struct {
		name    string
		content Vector2f
		scroll  Vector2f
		want    []Bounds
	}{
		{"fits", Vector2f{100, 50}, Vector2f{}, nil},
		{"vertical", Vector2f{100, 200}, Vector2f{0, 100}, []Bounds{{X: 96, Y: 27, Width: 6, Height: 12.5}}},
		{"horizontal", Vector2f{400, 50}, Vector2f{100, 0}, []Bounds{{X: 27, Y: 46, Width: 25, Height: 6}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scrollThumbs(area, tt.content, tt.scroll, 6)
			if !slices.Equal(got, tt.want) {
				t.Errorf("scrollThumbs = %v, want %v", got, tt.want)
			}
		})
	}
}
