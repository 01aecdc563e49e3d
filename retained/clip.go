package retained

// ============================================================================
// Clip Stack
// ============================================================================

// unbounded is the clip of an empty stack.
var unbounded = Bounds{X: -1 << 24, Y: -1 << 24, Width: 1 << 25, Height: 1 << 25}

type clipFrame struct {
	offset Vector2f // absolute origin of the current local space
	clip   Bounds   // absolute clip rectangle
}

// ClipStack tracks the translation and clip rectangle in effect while
// walking the tree. Each push returns a pop function that restores the
// previous state; pop functions may be deferred and calling one twice is
// harmless. Hit testing and drawing share the same stack type so they agree
// on what is visible.
type ClipStack struct {
	frames []clipFrame
}

// NewClipStack returns a stack with no translation and no clipping.
func NewClipStack() *ClipStack {
	return &ClipStack{frames: []clipFrame{{clip: unbounded}}}
}

func (s *ClipStack) current() clipFrame {
	return s.frames[len(s.frames)-1]
}

// Offset returns the absolute origin of the current local space.
func (s *ClipStack) Offset() Vector2f { return s.current().offset }

// Clip returns the current clip rectangle in absolute coordinates.
func (s *ClipStack) Clip() Bounds { return s.current().clip }

// Depth returns the number of active pushes.
func (s *ClipStack) Depth() int { return len(s.frames) - 1 }

// PushTransform moves the local origin by offset.
func (s *ClipStack) PushTransform(offset Vector2f) (pop func()) {
	cur := s.current()
	cur.offset = cur.offset.Add(offset)
	return s.push(cur)
}

// PushClip intersects the clip with rect, given in local coordinates.
// visible is false when nothing of rect remains visible.
func (s *ClipStack) PushClip(rect Bounds) (pop func(), visible bool) {
	cur := s.current()
	cur.clip = cur.clip.Intersect(rect.Translate(cur.offset))
	return s.push(cur), !cur.clip.IsEmpty()
}

// ContainsLocal reports whether a point in local coordinates is inside the
// current clip.
func (s *ClipStack) ContainsLocal(p Vector2f) bool {
	cur := s.current()
	abs := p.Add(cur.offset)
	return cur.clip.Contains(abs.X, abs.Y)
}

// LocalClip returns the current clip in local coordinates.
func (s *ClipStack) LocalClip() Bounds {
	cur := s.current()
	return cur.clip.Translate(Vector2f{-cur.offset.X, -cur.offset.Y})
}

func (s *ClipStack) push(f clipFrame) func() {
	depth := len(s.frames)
	s.frames = append(s.frames, f)
	return func() {
		if len(s.frames) > depth {
			s.frames = s.frames[:depth]
		}
	}
}
