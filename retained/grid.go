package retained

import "fmt"

// Alignment positions a widget inside its grid cell.
type Alignment uint8

const (
	AlignCenter Alignment = iota
	AlignUpperLeft
	AlignUp
	AlignUpperRight
	AlignRight
	AlignBottomRight
	AlignBottom
	AlignBottomLeft
	AlignLeft
)

type gridCell struct {
	row, col  int
	alignment Alignment
	padding   Outline
}

// Grid places its children in rows and columns. Widgets keep their own
// size; each column is as wide as its widest cell and each row as tall as
// its tallest, padding included.
//
// With auto-size on, the grid takes the size of its cells. Otherwise spare
// width and height are spread evenly between the columns and rows, or used
// to center a single column or row.
type Grid struct {
	Group

	cells    map[*WidgetBase]*gridCell
	autoSize bool
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	g := &Grid{cells: make(map[*WidgetBase]*gridCell)}
	g.initGroup(g, KindGrid)
	g.arrange = g.layOut
	g.arrangeDirty = true
	g.watchesChildren = true
	g.onChildAdded = func(w *WidgetBase) {
		if _, ok := g.cells[w]; !ok {
			rows, _ := g.dimensions()
			g.cells[w] = &gridCell{row: rows}
		}
	}
	g.onChildRemoved = func(w *WidgetBase) {
		delete(g.cells, w)
	}
	return g
}

// AddAt adds w to the cell at row and col. A widget already in that cell
// is removed from the grid.
func (g *Grid) AddAt(w Widget, row, col int, name string) error {
	if w == nil {
		return fmt.Errorf("%w: nil widget", ErrInvalidHierarchy)
	}
	if row < 0 || col < 0 {
		return fmt.Errorf("%w: cell %d,%d", ErrIndexOutOfRange, row, col)
	}
	if occupant := g.WidgetAtCell(row, col); occupant != nil && occupant.Base() != w.Base() {
		g.Remove(occupant)
	}
	if err := g.Add(w, name); err != nil {
		return err
	}
	g.cells[w.Base()] = &gridCell{row: row, col: col}
	g.markArrangeDirty()
	return nil
}

// SetWidgetCell moves a child to another cell.
func (g *Grid) SetWidgetCell(w Widget, row, col int) bool {
	cell := g.cell(w)
	if cell == nil || row < 0 || col < 0 {
		return false
	}
	if occupant := g.WidgetAtCell(row, col); occupant != nil && occupant.Base() != w.Base() {
		g.Remove(occupant)
	}
	cell.row, cell.col = row, col
	g.markArrangeDirty()
	return true
}

// WidgetAtCell returns the widget in a cell, or nil.
func (g *Grid) WidgetAtCell(row, col int) Widget {
	for _, child := range g.children {
		if c := g.cells[child.Base()]; c != nil && c.row == row && c.col == col {
			return child
		}
	}
	return nil
}

// Cell returns the row and column of a child.
func (g *Grid) Cell(w Widget) (row, col int, ok bool) {
	c := g.cell(w)
	if c == nil {
		return 0, 0, false
	}
	return c.row, c.col, true
}

// SetAlignment changes where w sits inside its cell.
func (g *Grid) SetAlignment(w Widget, a Alignment) bool {
	c := g.cell(w)
	if c == nil {
		return false
	}
	c.alignment = a
	g.markArrangeDirty()
	return true
}

// SetPadding changes the space kept around w inside its cell.
func (g *Grid) SetPadding(w Widget, padding Outline) bool {
	c := g.cell(w)
	if c == nil {
		return false
	}
	c.padding = padding
	g.markArrangeDirty()
	return true
}

// SetAutoSize makes the grid take the size of its cells.
func (g *Grid) SetAutoSize(autoSize bool) {
	if g.autoSize == autoSize {
		return
	}
	g.autoSize = autoSize
	g.arrangesOwnSize = autoSize
	g.markArrangeDirty()
	if autoSize {
		g.notifyDependents()
	}
}

// AutoSize reports whether the grid sizes itself.
func (g *Grid) AutoSize() bool { return g.autoSize }

// ColumnWidths returns the width of every column.
func (g *Grid) ColumnWidths() []float32 {
	cols, _ := g.measure()
	return cols
}

// RowHeights returns the height of every row.
func (g *Grid) RowHeights() []float32 {
	_, rows := g.measure()
	return rows
}

func (g *Grid) cell(w Widget) *gridCell {
	if w == nil {
		return nil
	}
	return g.cells[w.Base()]
}

func (g *Grid) dimensions() (rows, cols int) {
	for _, c := range g.cells {
		rows = max(rows, c.row+1)
		cols = max(cols, c.col+1)
	}
	return rows, cols
}

// measure computes column widths and row heights from the children.
func (g *Grid) measure() (colWidths, rowHeights []float32) {
	rows, cols := g.dimensions()
	colWidths = make([]float32, cols)
	rowHeights = make([]float32, rows)
	for _, child := range g.children {
		b := child.Base()
		c := g.cells[b]
		size := b.Size()
		colWidths[c.col] = max(colWidths[c.col], size.X+c.padding.Horizontal())
		rowHeights[c.row] = max(rowHeights[c.row], size.Y+c.padding.Vertical())
	}
	return colWidths, rowHeights
}

func (g *Grid) layOut() {
	colWidths, rowHeights := g.measure()
	var minSize Vector2f
	for _, w := range colWidths {
		minSize.X += w
	}
	for _, h := range rowHeights {
		minSize.Y += h
	}

	if g.autoSize {
		size := Vector2f{minSize.X + g.insets.Horizontal(), minSize.Y + g.insets.Vertical()}
		changed := setArranged(&g.sizeX, &g.WidgetBase, size.X)
		changed = setArranged(&g.sizeY, &g.WidgetBase, size.Y) || changed
		if changed {
			g.geometryChanged()
			g.OnSizeChange.emit(&g.WidgetBase)
		}
	}

	// Spare space is spread between the cells, or centers a single
	// column or row.
	var start, extra Vector2f
	if !g.autoSize {
		inner := g.InnerSize()
		if inner.X > minSize.X {
			if len(colWidths) > 1 {
				extra.X = (inner.X - minSize.X) / float32(len(colWidths)-1)
			} else {
				start.X = (inner.X - minSize.X) / 2
			}
		}
		if inner.Y > minSize.Y {
			if len(rowHeights) > 1 {
				extra.Y = (inner.Y - minSize.Y) / float32(len(rowHeights)-1)
			} else {
				start.Y = (inner.Y - minSize.Y) / 2
			}
		}
	}

	colX := make([]float32, len(colWidths))
	x := start.X
	for i, w := range colWidths {
		colX[i] = x
		x += w + extra.X
	}
	rowY := make([]float32, len(rowHeights))
	y := start.Y
	for i, h := range rowHeights {
		rowY[i] = y
		y += h + extra.Y
	}

	for _, child := range g.children {
		b := child.Base()
		c := g.cells[b]
		size := b.Size()
		pos := alignInCell(c, size, colWidths[c.col], rowHeights[c.row])
		b.placeAt(Vector2f{colX[c.col] + pos.X, rowY[c.row] + pos.Y})
	}
}

// alignInCell returns the offset of a widget inside its cell.
func alignInCell(c *gridCell, size Vector2f, cellW, cellH float32) Vector2f {
	p := c.padding
	left := p.Left
	hcenter := p.Left + (cellW-p.Horizontal()-size.X)/2
	right := cellW - p.Right - size.X
	top := p.Top
	vcenter := p.Top + (cellH-p.Vertical()-size.Y)/2
	bottom := cellH - p.Bottom - size.Y

	switch c.alignment {
	case AlignUpperLeft:
		return Vector2f{left, top}
	case AlignUp:
		return Vector2f{hcenter, top}
	case AlignUpperRight:
		return Vector2f{right, top}
	case AlignRight:
		return Vector2f{right, vcenter}
	case AlignBottomRight:
		return Vector2f{right, bottom}
	case AlignBottom:
		return Vector2f{hcenter, bottom}
	case AlignBottomLeft:
		return Vector2f{left, bottom}
	case AlignLeft:
		return Vector2f{left, vcenter}
	}
	return Vector2f{hcenter, vcenter}
}
