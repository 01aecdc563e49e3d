package retained

import "math"

// Orientation is the main axis of a box layout.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

type boxItem struct {
	ratio    float32
	fixed    float32
	hasFixed bool
}

// BoxLayout places its children next to each other along one axis. Each
// child gets a share of the main axis proportional to its ratio, after
// fixed-size children and spacing are subtracted; on the cross axis every
// child fills the child area.
//
// Shares are rounded down to whole pixels and the remainder goes to the
// last child with a non-zero ratio, so 1:1:1 over 100 pixels gives 33, 33
// and 34.
type BoxLayout struct {
	Group

	orientation Orientation
	spacing     float32
	items       map[*WidgetBase]*boxItem
}

// NewHorizontalLayout creates a layout that places children left to right.
func NewHorizontalLayout() *BoxLayout {
	return newBoxLayout(Horizontal)
}

// NewVerticalLayout creates a layout that places children top to bottom.
func NewVerticalLayout() *BoxLayout {
	return newBoxLayout(Vertical)
}

func newBoxLayout(o Orientation) *BoxLayout {
	b := &BoxLayout{
		orientation: o,
		items:       make(map[*WidgetBase]*boxItem),
	}
	b.initGroup(b, KindBoxLayout)
	b.arrange = b.layOut
	b.arrangeDirty = true
	b.onChildAdded = func(w *WidgetBase) {
		b.items[w] = &boxItem{ratio: 1}
	}
	b.onChildRemoved = func(w *WidgetBase) {
		delete(b.items, w)
	}
	return b
}

// Orientation returns the main axis.
func (b *BoxLayout) Orientation() Orientation { return b.orientation }

// SetSpacing sets the gap between neighbouring children.
func (b *BoxLayout) SetSpacing(spacing float32) {
	spacing = max(0, spacing)
	if b.spacing == spacing {
		return
	}
	b.spacing = spacing
	b.markArrangeDirty()
}

// Spacing returns the gap between neighbouring children.
func (b *BoxLayout) Spacing() float32 { return b.spacing }

// AddSpace appends an empty stretch with the given ratio.
func (b *BoxLayout) AddSpace(ratio float32) {
	b.InsertSpace(len(b.children), ratio)
}

// InsertSpace inserts an empty stretch at index.
func (b *BoxLayout) InsertSpace(index int, ratio float32) bool {
	s := newSpace()
	if err := b.Insert(index, s, ""); err != nil {
		return false
	}
	return b.SetRatioOf(s, ratio)
}

// SetRatio changes the ratio of the child at index.
func (b *BoxLayout) SetRatio(index int, ratio float32) bool {
	return b.SetRatioOf(b.At(index), ratio)
}

// SetRatioOf changes the ratio of w.
func (b *BoxLayout) SetRatioOf(w Widget, ratio float32) bool {
	it := b.item(w)
	if it == nil || ratio < 0 {
		return false
	}
	it.ratio = ratio
	b.markArrangeDirty()
	return true
}

// Ratio returns the ratio of the child at index, or 0.
func (b *BoxLayout) Ratio(index int) float32 {
	if it := b.item(b.At(index)); it != nil {
		return it.ratio
	}
	return 0
}

// SetFixedSize gives the child at index a fixed extent on the main axis.
// Its ratio is ignored until ClearFixedSize is called.
func (b *BoxLayout) SetFixedSize(index int, size float32) bool {
	it := b.item(b.At(index))
	if it == nil {
		return false
	}
	it.fixed, it.hasFixed = max(0, size), true
	b.markArrangeDirty()
	return true
}

// ClearFixedSize returns the child at index to ratio sizing.
func (b *BoxLayout) ClearFixedSize(index int) bool {
	it := b.item(b.At(index))
	if it == nil {
		return false
	}
	it.hasFixed = false
	b.markArrangeDirty()
	return true
}

// Arrange places the children now instead of on the next geometry read.
func (b *BoxLayout) Arrange() {
	b.arrangeDirty = true
	b.ensureArranged()
}

func (b *BoxLayout) item(w Widget) *boxItem {
	if w == nil {
		return nil
	}
	return b.items[w.Base()]
}

func (b *BoxLayout) layOut() {
	n := len(b.children)
	if n == 0 {
		return
	}
	inner := b.InnerSize()
	main, cross := inner.X, inner.Y
	if b.orientation == Vertical {
		main, cross = inner.Y, inner.X
	}

	avail := main - b.spacing*float32(n-1)
	var totalRatio float32
	for _, child := range b.children {
		it := b.items[child.Base()]
		if it.hasFixed {
			avail -= it.fixed
		} else {
			totalRatio += it.ratio
		}
	}
	avail = max(0, avail)

	sizes := make([]float32, n)
	lastRatio := -1
	var used float32
	for i, child := range b.children {
		it := b.items[child.Base()]
		if it.hasFixed {
			sizes[i] = it.fixed
			continue
		}
		if totalRatio > 0 && it.ratio > 0 {
			sizes[i] = float32(math.Floor(float64(avail * it.ratio / totalRatio)))
			used += sizes[i]
			lastRatio = i
		}
	}
	if lastRatio >= 0 {
		sizes[lastRatio] += avail - used
	}

	var offset float32
	for i, child := range b.children {
		pos := Vector2f{offset, 0}
		size := Vector2f{sizes[i], cross}
		if b.orientation == Vertical {
			pos = Vector2f{0, offset}
			size = Vector2f{cross, sizes[i]}
		}
		child.Base().place(pos, size)
		offset += sizes[i] + b.spacing
	}
}

// space is the invisible filler inserted by AddSpace.
type space struct {
	WidgetBase
}

func newSpace() *space {
	s := &space{}
	s.Init(s, KindSpace)
	s.ignoreMouse = true
	return s
}
