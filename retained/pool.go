package retained

import "sync"

// ============================================================================
// Widget Slice Pooling
// ============================================================================
//
// Hit testing, drawing and focus traversal iterate over a snapshot of a
// container's children so that callbacks may add or remove widgets while
// the walk is in progress. Snapshots come from a pool to keep mouse moves and
// frames allocation free.
//
// Usage:
//   children := acquireWidgetSlice(len(c.children))
//   copy(children, c.children)
//   ... use children ...
//   releaseWidgetSlice(children)

var widgetSlicePool = sync.Pool{
	New: func() any {
		return make([]Widget, 0, 16)
	},
}

// acquireWidgetSlice gets a widget slice from the pool with len == n.
// Caller must call releaseWidgetSlice when done.
func acquireWidgetSlice(n int) []Widget {
	slice := widgetSlicePool.Get().([]Widget)
	if cap(slice) < n {
		widgetSlicePool.Put(slice[:0])
		return make([]Widget, n, n*2)
	}
	return slice[:n]
}

// releaseWidgetSlice returns a widget slice to the pool.
func releaseWidgetSlice(slice []Widget) {
	if slice == nil {
		return
	}
	clear(slice)
	if cap(slice) <= 256 {
		widgetSlicePool.Put(slice[:0])
	}
}

// snapshotChildren copies the children of c into a pooled slice.
func snapshotChildren(c *Container) []Widget {
	children := acquireWidgetSlice(len(c.children))
	copy(children, c.children)
	return children
}

// ============================================================================
// Chain Pooling
// ============================================================================

// chainPool pools the base slices used for focus chain comparisons.
var chainPool = sync.Pool{
	New: func() any {
		return make([]*WidgetBase, 0, 8)
	},
}

func acquireChain() []*WidgetBase {
	return chainPool.Get().([]*WidgetBase)[:0]
}

func releaseChain(slice []*WidgetBase) {
	if slice == nil {
		return
	}
	clear(slice)
	if cap(slice) <= 64 {
		chainPool.Put(slice[:0])
	}
}

// containsBase reports whether chain contains b.
func containsBase(chain []*WidgetBase, b *WidgetBase) bool {
	for _, e := range chain {
		if e == b {
			return true
		}
	}
	return false
}

// chainsEqual reports whether two chains hold the same widgets in the same
// order.
func chainsEqual(a, b []*WidgetBase) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
