package retained

import (
	"fmt"
	"math"
	"strings"
	"weak"

	"github.com/agiangrant/tessera/layoutexpr"
)

// Field selects which geometry value of a referenced widget a layout uses.
type Field = layoutexpr.Field

const (
	FieldLeft        = layoutexpr.FieldLeft
	FieldTop         = layoutexpr.FieldTop
	FieldWidth       = layoutexpr.FieldWidth
	FieldHeight      = layoutexpr.FieldHeight
	FieldRight       = layoutexpr.FieldRight
	FieldBottom      = layoutexpr.FieldBottom
	FieldInnerWidth  = layoutexpr.FieldInnerWidth
	FieldInnerHeight = layoutexpr.FieldInnerHeight
)

// axis tells percentage terms which dimension of the parent they scale.
type axis uint8

const (
	axisX axis = iota
	axisY
)

// ============================================================================
// Layout
// ============================================================================

// Layout is an immutable scalar expression over constants, other widgets'
// geometry and arithmetic. The zero value is the constant 0.
//
// A layout is resolved lazily by the widget that owns it and cached until a
// widget it read from changes.
type Layout struct {
	t term
}

// Const returns a constant layout.
func Const(v float32) Layout { return Layout{constTerm(v)} }

// Percent returns p percent of the parent's inner size, along the axis the
// layout is used for.
func Percent(p float32) Layout { return Layout{percentTerm(p)} }

// Ref returns a field of another widget. The reference does not keep w alive;
// once w is removed from its container (or collected) the term resolves to 0
// and ErrDanglingLayoutReference is reported.
func Ref(w Widget, f Field) Layout {
	if w == nil {
		return Layout{&refTerm{field: f}}
	}
	b := w.Base()
	return Layout{&refTerm{target: weak.Make(b), name: b.name, field: f}}
}

// ParentRef returns a field of the owning widget's current parent.
func ParentRef(f Field) Layout {
	return Layout{&pathTerm{path: []string{layoutexpr.ParentSegment}, field: f}}
}

func BindLeft(w Widget) Layout        { return Ref(w, FieldLeft) }
func BindTop(w Widget) Layout         { return Ref(w, FieldTop) }
func BindRight(w Widget) Layout       { return Ref(w, FieldRight) }
func BindBottom(w Widget) Layout      { return Ref(w, FieldBottom) }
func BindWidth(w Widget) Layout       { return Ref(w, FieldWidth) }
func BindHeight(w Widget) Layout      { return Ref(w, FieldHeight) }
func BindInnerWidth(w Widget) Layout  { return Ref(w, FieldInnerWidth) }
func BindInnerHeight(w Widget) Layout { return Ref(w, FieldInnerHeight) }

// Plus returns l + o.
func (l Layout) Plus(o Layout) Layout { return Layout{&binaryTerm{'+', l.term(), o.term()}} }

// Minus returns l - o.
func (l Layout) Minus(o Layout) Layout { return Layout{&binaryTerm{'-', l.term(), o.term()}} }

// Times returns l * o.
func (l Layout) Times(o Layout) Layout { return Layout{&binaryTerm{'*', l.term(), o.term()}} }

// Over returns l / o. Division by zero yields 0.
func (l Layout) Over(o Layout) Layout { return Layout{&binaryTerm{'/', l.term(), o.term()}} }

// Negate returns -l.
func (l Layout) Negate() Layout { return Layout{&negateTerm{l.term()}} }

// Min returns the smaller of a and b.
func Min(a, b Layout) Layout { return Layout{&callTerm{"min", a.term(), b.term()}} }

// Max returns the larger of a and b.
func Max(a, b Layout) Layout { return Layout{&callTerm{"max", a.term(), b.term()}} }

// Constant reports the value of a layout that references nothing.
func (l Layout) Constant() (float32, bool) {
	c, ok := l.term().(constTerm)
	return float32(c), ok
}

// String renders the layout in the syntax accepted by ParseLayout.
func (l Layout) String() string {
	return l.term().node().String()
}

func (l Layout) term() term {
	if l.t == nil {
		return constTerm(0)
	}
	return l.t
}

// ParseLayout parses a textual layout such as "parent.width - 10" or
// "min(50%, button.right)". Names are resolved when the layout is used:
// a name is looked up among the owner's children first, then among its
// siblings. "&" and "parent" refer to the owner's parent.
func ParseLayout(text string) (Layout, error) {
	n, err := layoutexpr.Parse(text)
	if err != nil {
		return Layout{}, err
	}
	t, err := fromNode(n)
	if err != nil {
		return Layout{}, fmt.Errorf("parse layout %q: %w", text, err)
	}
	return Layout{t}, nil
}

func fromNode(n *layoutexpr.Node) (term, error) {
	switch n.Kind {
	case layoutexpr.NodeNumber:
		return constTerm(n.Value), nil
	case layoutexpr.NodePercent:
		return percentTerm(n.Value), nil
	case layoutexpr.NodeRef:
		if n.Field.Is2D() {
			return nil, fmt.Errorf("field %s needs a two-dimensional layout", n.Field)
		}
		return &pathTerm{path: n.Path, field: n.Field}, nil
	case layoutexpr.NodeNegate:
		inner, err := fromNode(n.Left)
		if err != nil {
			return nil, err
		}
		return &negateTerm{inner}, nil
	case layoutexpr.NodeBinary, layoutexpr.NodeCall:
		l, err := fromNode(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := fromNode(n.Right)
		if err != nil {
			return nil, err
		}
		if n.Kind == layoutexpr.NodeCall {
			return &callTerm{n.Func, l, r}, nil
		}
		return &binaryTerm{n.Op, l, r}, nil
	}
	return nil, fmt.Errorf("unsupported node kind %d", n.Kind)
}

// ============================================================================
// Layout2d
// ============================================================================

// Layout2d pairs an X and a Y layout for positions and sizes.
type Layout2d struct {
	X, Y Layout
}

// Fixed returns a constant 2D layout.
func Fixed(x, y float32) Layout2d { return Layout2d{Const(x), Const(y)} }

// BindPosition follows the position of w.
func BindPosition(w Widget) Layout2d { return Layout2d{BindLeft(w), BindTop(w)} }

// BindSize follows the size of w.
func BindSize(w Widget) Layout2d { return Layout2d{BindWidth(w), BindHeight(w)} }

// BindInnerSize follows the inner size of w.
func BindInnerSize(w Widget) Layout2d { return Layout2d{BindInnerWidth(w), BindInnerHeight(w)} }

// ParseLayout2d parses either two comma separated expressions ("10, &.h - 5")
// or a single two-dimensional reference ("button.size", "&.innersize").
func ParseLayout2d(text string) (Layout2d, error) {
	if x, y, ok := splitTopLevelComma(text); ok {
		lx, err := ParseLayout(x)
		if err != nil {
			return Layout2d{}, err
		}
		ly, err := ParseLayout(y)
		if err != nil {
			return Layout2d{}, err
		}
		return Layout2d{lx, ly}, nil
	}

	n, err := layoutexpr.Parse(text)
	if err != nil {
		return Layout2d{}, err
	}
	if n.Kind != layoutexpr.NodeRef || !n.Field.Is2D() {
		return Layout2d{}, fmt.Errorf("parse layout %q: expected \"x, y\" or a position/size reference", text)
	}
	fx, fy := FieldLeft, FieldTop
	switch n.Field {
	case layoutexpr.FieldSize:
		fx, fy = FieldWidth, FieldHeight
	case layoutexpr.FieldInnerSize:
		fx, fy = FieldInnerWidth, FieldInnerHeight
	}
	return Layout2d{
		X: Layout{&pathTerm{path: n.Path, field: fx}},
		Y: Layout{&pathTerm{path: n.Path, field: fy}},
	}, nil
}

// String renders the layout as "x, y".
func (l Layout2d) String() string {
	return l.X.String() + ", " + l.Y.String()
}

func splitTopLevelComma(s string) (string, string, bool) {
	depth := 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
			}
		}
	}
	return "", "", false
}

// ============================================================================
// Terms
// ============================================================================

type term interface {
	eval(ctx *evalContext) float32
	node() *layoutexpr.Node
}

type constTerm float32

func (c constTerm) eval(*evalContext) float32 { return float32(c) }
func (c constTerm) node() *layoutexpr.Node {
	return &layoutexpr.Node{Kind: layoutexpr.NodeNumber, Value: float32(c)}
}

type percentTerm float32

func (p percentTerm) eval(ctx *evalContext) float32 {
	parent := ctx.owner.parent
	if parent == nil {
		return 0
	}
	f := FieldInnerWidth
	if ctx.axis == axisY {
		f = FieldInnerHeight
	}
	return float32(p) / 100 * ctx.read(&parent.WidgetBase, f)
}

func (p percentTerm) node() *layoutexpr.Node {
	return &layoutexpr.Node{Kind: layoutexpr.NodePercent, Value: float32(p)}
}

type refTerm struct {
	target weak.Pointer[WidgetBase]
	name   string
	field  Field
}

func (r *refTerm) eval(ctx *evalContext) float32 {
	target := r.target.Value()
	if target == nil {
		reportError(ctx.owner, fmt.Errorf("%w: %s.%s (widget no longer exists)", ErrDanglingLayoutReference, r.label(), r.field))
		return 0
	}
	return ctx.read(target, r.field)
}

func (r *refTerm) label() string {
	if r.name == "" {
		return "widget"
	}
	return r.name
}

func (r *refTerm) node() *layoutexpr.Node {
	return &layoutexpr.Node{Kind: layoutexpr.NodeRef, Path: []string{r.label()}, Field: r.field}
}

// pathTerm references a widget by its position in the tree relative to the
// owner. It is resolved on every evaluation, so it follows re-parenting and
// late additions.
type pathTerm struct {
	path  []string
	field Field
}

func (p *pathTerm) eval(ctx *evalContext) float32 {
	target := ctx.owner.lookupPath(p.path)
	if target == nil {
		if len(p.path) == 1 && p.path[0] == layoutexpr.ParentSegment {
			// Not attached yet; nothing to report.
			return 0
		}
		reportError(ctx.owner, fmt.Errorf("%w: %s.%s (no such widget)", ErrDanglingLayoutReference, strings.Join(p.path, "."), p.field))
		return 0
	}
	return ctx.read(target, p.field)
}

func (p *pathTerm) node() *layoutexpr.Node {
	return &layoutexpr.Node{Kind: layoutexpr.NodeRef, Path: p.path, Field: p.field}
}

type binaryTerm struct {
	op   byte
	l, r term
}

func (b *binaryTerm) eval(ctx *evalContext) float32 {
	l, r := b.l.eval(ctx), b.r.eval(ctx)
	switch b.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		if r == 0 {
			return 0
		}
		return l / r
	}
	return 0
}

func (b *binaryTerm) node() *layoutexpr.Node {
	return &layoutexpr.Node{Kind: layoutexpr.NodeBinary, Op: b.op, Left: b.l.node(), Right: b.r.node()}
}

type negateTerm struct {
	t term
}

func (n *negateTerm) eval(ctx *evalContext) float32 { return -n.t.eval(ctx) }
func (n *negateTerm) node() *layoutexpr.Node {
	return &layoutexpr.Node{Kind: layoutexpr.NodeNegate, Left: n.t.node()}
}

type callTerm struct {
	fn   string
	l, r term
}

func (c *callTerm) eval(ctx *evalContext) float32 {
	l, r := c.l.eval(ctx), c.r.eval(ctx)
	if c.fn == "max" {
		return max(l, r)
	}
	return min(l, r)
}

func (c *callTerm) node() *layoutexpr.Node {
	return &layoutexpr.Node{Kind: layoutexpr.NodeCall, Func: c.fn, Left: c.l.node(), Right: c.r.node()}
}

// ============================================================================
// Resolution
// ============================================================================

type evalContext struct {
	owner *WidgetBase
	slot  *layoutSlot
	axis  axis
}

// read returns a field of target and records target as a dependency of the
// slot being resolved.
func (ctx *evalContext) read(target *WidgetBase, f Field) float32 {
	ctx.slot.subscribe(ctx.owner, target)
	if target.orphaned {
		reportError(ctx.owner, fmt.Errorf("%w: %s.%s (removed from its container)", ErrDanglingLayoutReference, target.label(), f))
		return 0
	}
	return target.fieldValue(f)
}

// layoutSlot holds one of a widget's four layouts together with its cached
// value and the widgets the value was computed from.
type layoutSlot struct {
	expr       Layout
	axis       axis
	value      float32
	valid      bool
	resolving  bool
	generation uint32
	deps       []*WidgetBase
}

func (s *layoutSlot) set(owner *WidgetBase, l Layout) {
	s.invalidate(owner)
	s.expr = l
}

func (s *layoutSlot) resolve(owner *WidgetBase) float32 {
	if s.valid {
		return s.value
	}
	if c, ok := s.expr.Constant(); ok {
		s.value, s.valid = c, true
		return c
	}
	if s.resolving {
		reportError(owner, fmt.Errorf("%w: %s", ErrLayoutCycle, s.expr))
		return 0
	}

	s.resolving = true
	gen := s.generation
	ctx := evalContext{owner: owner, slot: s, axis: s.axis}
	v := s.expr.term().eval(&ctx)
	s.resolving = false

	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		v = 0
	}
	// A dependency may have invalidated this slot while it was being
	// evaluated; keep the result uncached in that case.
	if gen == s.generation {
		s.value, s.valid = v, true
	}
	return v
}

func (s *layoutSlot) subscribe(owner, target *WidgetBase) {
	if target == owner {
		return
	}
	for _, d := range s.deps {
		if d == target {
			return
		}
	}
	s.deps = append(s.deps, target)
	target.addDependent(owner)
}

// invalidate drops the cached value and the dependency subscriptions.
// It returns true if a cached value was dropped.
func (s *layoutSlot) invalidate(owner *WidgetBase) bool {
	was := s.valid
	s.valid = false
	s.generation++
	for _, d := range s.deps {
		d.removeDependent(owner)
	}
	s.deps = s.deps[:0]
	return was
}
