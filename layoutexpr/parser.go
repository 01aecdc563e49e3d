// Package layoutexpr parses textual layout expressions such as
// "parent.width - 10", "min(50%, 200)" or "button.right + 5" into a small
// syntax tree. Binding the tree to live widgets happens in package retained.
package layoutexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeKind identifies the type of a syntax tree node.
type NodeKind uint8

const (
	NodeNumber NodeKind = iota
	NodePercent
	NodeRef
	NodeBinary
	NodeNegate
	NodeCall
)

// Field selects which geometry value of a referenced widget is used.
type Field uint8

const (
	FieldNone Field = iota
	FieldLeft
	FieldTop
	FieldWidth
	FieldHeight
	FieldRight
	FieldBottom
	FieldInnerWidth
	FieldInnerHeight

	// Two-dimensional fields, only valid as a whole expression of a 2D layout.
	FieldPosition
	FieldSize
	FieldInnerSize
)

var fieldNames = map[string]Field{
	"x":           FieldLeft,
	"left":        FieldLeft,
	"y":           FieldTop,
	"top":         FieldTop,
	"w":           FieldWidth,
	"width":       FieldWidth,
	"h":           FieldHeight,
	"height":      FieldHeight,
	"right":       FieldRight,
	"bottom":      FieldBottom,
	"iw":          FieldInnerWidth,
	"innerwidth":  FieldInnerWidth,
	"ih":          FieldInnerHeight,
	"innerheight": FieldInnerHeight,
	"pos":         FieldPosition,
	"position":    FieldPosition,
	"size":        FieldSize,
	"innersize":   FieldInnerSize,
}

// String returns the canonical name of the field.
func (f Field) String() string {
	switch f {
	case FieldLeft:
		return "left"
	case FieldTop:
		return "top"
	case FieldWidth:
		return "width"
	case FieldHeight:
		return "height"
	case FieldRight:
		return "right"
	case FieldBottom:
		return "bottom"
	case FieldInnerWidth:
		return "innerwidth"
	case FieldInnerHeight:
		return "innerheight"
	case FieldPosition:
		return "position"
	case FieldSize:
		return "size"
	case FieldInnerSize:
		return "innersize"
	}
	return "none"
}

// Is2D reports whether the field names a pair of values.
func (f Field) Is2D() bool {
	return f == FieldPosition || f == FieldSize || f == FieldInnerSize
}

// ParentSegment is the path segment that refers to the parent of the
// widget owning the expression. "parent" is accepted as an alias.
const ParentSegment = "&"

// Node is one element of a parsed layout expression.
type Node struct {
	Kind NodeKind

	// NodeNumber, NodePercent
	Value float32

	// NodeBinary: one of + - * /
	Op byte

	// NodeCall: "min" or "max"
	Func string

	// NodeBinary and NodeCall operands; NodeNegate uses Left only.
	Left, Right *Node

	// NodeRef: widget path (ParentSegment or names) and the referenced field.
	Path  []string
	Field Field
}

// ParseError describes where and why parsing failed.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("layoutexpr: %s at offset %d in %q", e.Msg, e.Pos, e.Input)
}

// Parse parses a layout expression.
func Parse(input string) (*Node, error) {
	toks, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{input: input, toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, p.errorf("unexpected %q", p.peek().text)
	}
	return n, nil
}

// ============================================================================
// Tokenizer
// ============================================================================

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokPercent
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func tokenize(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || (c == '.' && i+1 < len(input) && isDigit(input[i+1])):
			start := i
			for i < len(input) && (isDigit(input[i]) || input[i] == '.') {
				i++
			}
			toks = append(toks, token{tokNumber, input[start:i], start})
		case isIdentStart(c):
			start := i
			for i < len(input) && isIdentPart(input[i]) {
				i++
			}
			toks = append(toks, token{tokIdent, input[start:i], start})
		case c == '+' || c == '-' || c == '*' || c == '/':
			toks = append(toks, token{tokOp, input[i : i+1], i})
			i++
		case c == '%':
			toks = append(toks, token{tokPercent, "%", i})
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		default:
			return nil, &ParseError{Input: input, Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '&' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '.'
}

// ============================================================================
// Parser
// ============================================================================

type parser struct {
	input string
	toks  []token
	pos   int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Input: p.input, Pos: p.peek().pos, Msg: fmt.Sprintf(format, args...)}
}

// expr := term (('+' | '-') term)*
func (p *parser) expr() (*Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOp && (p.peek().text == "+" || p.peek().text == "-") {
		op := p.next().text[0]
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeBinary, Op: op, Left: left, Right: right}
	}
	return left, nil
}

// term := unary (('*' | '/') unary)*
func (p *parser) term() (*Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOp && (p.peek().text == "*" || p.peek().text == "/") {
		op := p.next().text[0]
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeBinary, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) unary() (*Node, error) {
	if p.peek().kind == tokOp && p.peek().text == "-" {
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		if operand.Kind == NodeNumber {
			operand.Value = -operand.Value
			return operand, nil
		}
		return &Node{Kind: NodeNegate, Left: operand}, nil
	}
	if p.peek().kind == tokOp && p.peek().text == "+" {
		p.next()
		return p.unary()
	}
	return p.primary()
}

func (p *parser) primary() (*Node, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.next()
		v, err := strconv.ParseFloat(t.text, 32)
		if err != nil {
			return nil, &ParseError{Input: p.input, Pos: t.pos, Msg: "invalid number " + t.text}
		}
		if p.peek().kind == tokPercent {
			p.next()
			return &Node{Kind: NodePercent, Value: float32(v)}, nil
		}
		return &Node{Kind: NodeNumber, Value: float32(v)}, nil

	case tokLParen:
		p.next()
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, p.errorf("missing closing bracket")
		}
		p.next()
		return n, nil

	case tokIdent:
		p.next()
		lower := strings.ToLower(t.text)
		if (lower == "min" || lower == "max") && p.peek().kind == tokLParen {
			return p.call(lower)
		}
		return p.ref(t)
	}
	if t.kind == tokEOF {
		return nil, p.errorf("unexpected end of expression")
	}
	return nil, p.errorf("unexpected %q", t.text)
}

func (p *parser) call(fn string) (*Node, error) {
	p.next() // (
	a, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokComma {
		return nil, p.errorf("%s expects two arguments", fn)
	}
	p.next()
	b, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokRParen {
		return nil, p.errorf("missing closing bracket after %s arguments", fn)
	}
	p.next()
	return &Node{Kind: NodeCall, Func: fn, Left: a, Right: b}, nil
}

func (p *parser) ref(t token) (*Node, error) {
	segments := strings.Split(t.text, ".")
	if len(segments) < 2 {
		return nil, &ParseError{Input: p.input, Pos: t.pos, Msg: fmt.Sprintf("reference %q has no field", t.text)}
	}
	field, ok := fieldNames[strings.ToLower(segments[len(segments)-1])]
	if !ok {
		return nil, &ParseError{Input: p.input, Pos: t.pos, Msg: fmt.Sprintf("unknown field in %q", t.text)}
	}
	path := make([]string, 0, len(segments)-1)
	for _, s := range segments[:len(segments)-1] {
		if s == "" {
			return nil, &ParseError{Input: p.input, Pos: t.pos, Msg: fmt.Sprintf("empty name in %q", t.text)}
		}
		if strings.EqualFold(s, "parent") {
			s = ParentSegment
		}
		path = append(path, s)
	}
	return &Node{Kind: NodeRef, Path: path, Field: field}, nil
}

// ============================================================================
// Printing
// ============================================================================

// String renders the node back into expression syntax.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func precedence(n *Node) int {
	if n.Kind != NodeBinary {
		return 3
	}
	if n.Op == '+' || n.Op == '-' {
		return 1
	}
	return 2
}

func (n *Node) write(b *strings.Builder) {
	switch n.Kind {
	case NodeNumber:
		b.WriteString(formatNumber(n.Value))
	case NodePercent:
		b.WriteString(formatNumber(n.Value))
		b.WriteByte('%')
	case NodeRef:
		b.WriteString(strings.Join(n.Path, "."))
		b.WriteByte('.')
		b.WriteString(n.Field.String())
	case NodeNegate:
		b.WriteByte('-')
		writeOperand(b, n.Left, precedence(n.Left) < 3)
	case NodeCall:
		b.WriteString(n.Func)
		b.WriteByte('(')
		n.Left.write(b)
		b.WriteString(", ")
		n.Right.write(b)
		b.WriteByte(')')
	case NodeBinary:
		prec := precedence(n)
		writeOperand(b, n.Left, precedence(n.Left) < prec)
		b.WriteByte(' ')
		b.WriteByte(n.Op)
		b.WriteByte(' ')
		rp := precedence(n.Right)
		writeOperand(b, n.Right, rp < prec || (rp == prec && (n.Op == '-' || n.Op == '/')))
	}
}

func writeOperand(b *strings.Builder, n *Node, paren bool) {
	if paren {
		b.WriteByte('(')
	}
	n.write(b)
	if paren {
		b.WriteByte(')')
	}
}

func formatNumber(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
