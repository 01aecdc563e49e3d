package retained

import (
	"errors"
	"slices"
	"testing"
)

// newTestGrid builds a grid with three widgets:
//
//	a 30x20 at 0,0   b 50x10 at 0,1
//	c 20x40 at 1,0
func newTestGrid(t *testing.T) (*Grid, *probe, *probe, *probe) {
	t.Helper()
	g := newTestGui(t)
	grid := NewGrid()
	mustAdd(t, g, grid, "grid")

	a, b, c := newProbe("a", nil), newProbe("b", nil), newProbe("c", nil)
	a.SetSize(30, 20)
	b.SetSize(50, 10)
	c.SetSize(20, 40)
	for _, cell := range []struct {
		w        *probe
		row, col int
	}{{a, 0, 0}, {b, 0, 1}, {c, 1, 0}} {
		if err := grid.AddAt(cell.w, cell.row, cell.col, cell.w.name); err != nil {
			t.Fatalf("AddAt(%s) error = %v", cell.w.name, err)
		}
	}
	return grid, a, b, c
}

func TestGridAutoSize(t *testing.T) {
	grid, a, b, c := newTestGrid(t)
	grid.SetAutoSize(true)

	if got, want := grid.Size(), (Vector2f{80, 60}); got != want {
		t.Errorf("Size = %v, want %v", got, want)
	}
	if got := grid.ColumnWidths(); !slices.Equal(got, []float32{30, 50}) {
		t.Errorf("ColumnWidths = %v, want [30 50]", got)
	}
	if got := grid.RowHeights(); !slices.Equal(got, []float32{20, 40}) {
		t.Errorf("RowHeights = %v, want [20 40]", got)
	}

	tests := []struct {
		w    *probe
		want Vector2f
	}{
		{a, Vector2f{0, 0}},
		{b, Vector2f{30, 5}},
		{c, Vector2f{5, 20}},
	}
	for _, tt := range tests {
		if got := tt.w.Position(); got != tt.want {
			t.Errorf("%s Position = %v, want %v", tt.w.name, got, tt.want)
		}
	}

	// A child growing grows the grid.
	b.SetSize(70, 10)
	if got, want := grid.Size(), (Vector2f{100, 60}); got != want {
		t.Errorf("Size after child resize = %v, want %v", got, want)
	}
}

func TestGridSpreadsSpareSpace(t *testing.T) {
	grid, a, b, c := newTestGrid(t)
	grid.SetSize(200, 100)

	tests := []struct {
		w    *probe
		want Vector2f
	}{
		{a, Vector2f{0, 0}},
		{b, Vector2f{150, 5}},
		{c, Vector2f{5, 60}},
	}
	for _, tt := range tests {
		if got := tt.w.Position(); got != tt.want {
			t.Errorf("%s Position = %v, want %v", tt.w.name, got, tt.want)
		}
	}
	if got, want := grid.Size(), (Vector2f{200, 100}); got != want {
		t.Errorf("Size = %v, want %v", got, want)
	}
}

func TestGridSingleCellCentered(t *testing.T) {
	g := newTestGui(t)
	grid := NewGrid()
	grid.SetSize(100, 100)
	mustAdd(t, g, grid, "grid")
	w := newProbe("w", nil)
	w.SetSize(20, 20)
	mustAdd(t, grid, w, "w")

	if got, want := w.Position(), (Vector2f{40, 40}); got != want {
		t.Errorf("Position = %v, want %v", got, want)
	}
	if row, col, ok := grid.Cell(w); !ok || row != 0 || col != 0 {
		t.Errorf("Cell = %d,%d,%v, want 0,0,true", row, col, ok)
	}
}

func TestGridAlignment(t *testing.T) {
	tests := []struct {
		align Alignment
		want  Vector2f
	}{
		{AlignCenter, Vector2f{5, 20}},
		{AlignUpperLeft, Vector2f{0, 20}},
		{AlignUp, Vector2f{5, 20}},
		{AlignUpperRight, Vector2f{10, 20}},
		{AlignRight, Vector2f{10, 20}},
		{AlignBottomRight, Vector2f{10, 20}},
		{AlignBottom, Vector2f{5, 20}},
		{AlignBottomLeft, Vector2f{0, 20}},
		{AlignLeft, Vector2f{0, 20}},
	}
	for _, tt := range tests {
		grid, _, b, c := newTestGrid(t)
		grid.SetAutoSize(true)
		if !grid.SetAlignment(c, tt.align) {
			t.Fatal("SetAlignment failed")
		}
		if got := c.Position(); got != tt.want {
			t.Errorf("alignment %d: Position = %v, want %v", tt.align, got, tt.want)
		}

		// b is shorter than its row, so the vertical part shows.
		grid.SetAlignment(b, tt.align)
		var wantY float32
		switch tt.align {
		case AlignCenter, AlignRight, AlignLeft:
			wantY = 5
		case AlignBottomRight, AlignBottom, AlignBottomLeft:
			wantY = 10
		}
		if got := b.Position().Y; got != wantY {
			t.Errorf("alignment %d: b.Y = %v, want %v", tt.align, got, wantY)
		}
	}
}

func TestGridPadding(t *testing.T) {
	grid, a, _, _ := newTestGrid(t)
	grid.SetAutoSize(true)
	grid.SetPadding(a, UniformOutline(5))

	if got, want := grid.Size(), (Vector2f{90, 70}); got != want {
		t.Errorf("Size = %v, want %v", got, want)
	}
	if got, want := a.Position(), (Vector2f{5, 5}); got != want {
		t.Errorf("Position = %v, want %v", got, want)
	}
}

func TestGridReplaceOccupiedCell(t *testing.T) {
	grid, a, b, _ := newTestGrid(t)
	d := newProbe("d", nil)
	if err := grid.AddAt(d, 0, 0, "d"); err != nil {
		t.Fatal(err)
	}
	if a.Parent() != nil {
		t.Error("previous occupant is still in the grid")
	}
	if got := grid.WidgetAtCell(0, 0); got != d {
		t.Errorf("WidgetAtCell(0,0) = %v, want d", got)
	}

	if !grid.SetWidgetCell(d, 0, 1) {
		t.Fatal("SetWidgetCell failed")
	}
	if b.Parent() != nil {
		t.Error("moving into an occupied cell kept the occupant")
	}
	if got := grid.WidgetAtCell(0, 0); got != nil {
		t.Errorf("WidgetAtCell(0,0) = %v, want nil", got)
	}
	if err := grid.AddAt(newProbe("e", nil), -1, 0, ""); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("AddAt(-1,0) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestGridAddAppendsRow(t *testing.T) {
	grid, _, _, _ := newTestGrid(t)
	d := newProbe("d", nil)
	mustAdd(t, grid, d, "d")
	if row, col, _ := grid.Cell(d); row != 2 || col != 0 {
		t.Errorf("Cell = %d,%d, want 2,0", row, col)
	}
	grid.Remove(d)
	if _, _, ok := grid.Cell(d); ok {
		t.Error("removed widget still has a cell")
	}
}
