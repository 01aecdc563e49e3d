// Package termui renders a retained.Gui into a grid of terminal cells. Each
// cell stands for a fixed block of Gui pixels; text is laid out by display
// width so wide runes take two cells.
package termui

import (
	"bytes"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/agiangrant/tessera/retained"
)

// Cell is one character cell. A Rune of 0 marks the second half of a
// double-width character.
type Cell struct {
	Rune rune
	FG   color.RGBA
	BG   color.RGBA
}

var blank = Cell{Rune: ' '}

type cellRect struct {
	x0, y0, x1, y1 int // half-open
}

func (r cellRect) intersect(o cellRect) cellRect {
	r.x0, r.y0 = max(r.x0, o.x0), max(r.y0, o.y0)
	r.x1, r.y1 = min(r.x1, o.x1), min(r.y1, o.y1)
	if r.x1 < r.x0 {
		r.x1 = r.x0
	}
	if r.y1 < r.y0 {
		r.y1 = r.y0
	}
	return r
}

func (r cellRect) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

// Screen is a retained.RenderTarget over a cell buffer.
type Screen struct {
	cols, rows int
	cellW      float32
	cellH      float32
	cells      []Cell
	clips      []cellRect
}

// NewScreen creates a cols x rows buffer where each cell covers
// cellW x cellH Gui pixels.
func NewScreen(cols, rows int, cellW, cellH float32) *Screen {
	s := &Screen{
		cols:  max(cols, 0),
		rows:  max(rows, 0),
		cellW: max(cellW, 1),
		cellH: max(cellH, 1),
	}
	s.cells = make([]Cell, s.cols*s.rows)
	s.Clear()
	return s
}

// Size returns the buffer size in cells.
func (s *Screen) Size() (cols, rows int) { return s.cols, s.rows }

// PixelSize returns the area the buffer covers in Gui pixels.
func (s *Screen) PixelSize() retained.Vector2f {
	return retained.Vector2f{X: float32(s.cols) * s.cellW, Y: float32(s.rows) * s.cellH}
}

// Clear blanks every cell and drops clipping layers.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
	s.clips = append(s.clips[:0], cellRect{0, 0, s.cols, s.rows})
}

// Cell returns the cell at x, y, or a blank cell outside the buffer.
func (s *Screen) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return blank
	}
	return s.cells[y*s.cols+x]
}

func (s *Screen) clip() cellRect { return s.clips[len(s.clips)-1] }

// toCells maps a rectangle in Gui pixels to the cells whose centers it
// covers.
func (s *Screen) toCells(x, y, w, h float32) cellRect {
	return cellRect{
		x0: int(math.Round(float64(x / s.cellW))),
		y0: int(math.Round(float64(y / s.cellH))),
		x1: int(math.Round(float64((x + w) / s.cellW))),
		y1: int(math.Round(float64((y + h) / s.cellH))),
	}
}

// blend composites premultiplied src over dst.
func blend(dst, src color.RGBA) color.RGBA {
	if src.A == 0xff {
		return src
	}
	inv := 255 - uint32(src.A)
	mix := func(s, d uint8) uint8 { return uint8(uint32(s) + uint32(d)*inv/255) }
	return color.RGBA{mix(src.R, dst.R), mix(src.G, dst.G), mix(src.B, dst.B), mix(src.A, dst.A)}
}

// ============================================================================
// retained.RenderTarget
// ============================================================================

// DrawFilledRect paints the background of the covered cells. Text already
// in them is kept.
func (s *Screen) DrawFilledRect(states retained.RenderStates, size retained.Vector2f, c color.RGBA) {
	if c.A == 0 {
		return
	}
	r := s.toCells(states.Transform.X, states.Transform.Y, size.X, size.Y).intersect(s.clip())
	for y := r.y0; y < r.y1; y++ {
		for x := r.x0; x < r.x1; x++ {
			cell := &s.cells[y*s.cols+x]
			cell.BG = blend(cell.BG, c)
		}
	}
}

// DrawBorders draws a box with line drawing characters around the covered
// cells. Cell resolution is too coarse for widths, so any non-zero side is
// drawn one cell thick.
func (s *Screen) DrawBorders(states retained.RenderStates, borders retained.Outline, size retained.Vector2f, c color.RGBA) {
	if c.A == 0 || borders == (retained.Outline{}) {
		return
	}
	r := s.toCells(states.Transform.X, states.Transform.Y, size.X, size.Y)
	if r.x1-r.x0 < 1 || r.y1-r.y0 < 1 {
		return
	}
	left, top, right, bottom := borders.Left > 0, borders.Top > 0, borders.Right > 0, borders.Bottom > 0
	x0, y0, x1, y1 := r.x0, r.y0, r.x1-1, r.y1-1
	for x := x0; x <= x1; x++ {
		if top {
			s.setRune(x, y0, '─', c)
		}
		if bottom {
			s.setRune(x, y1, '─', c)
		}
	}
	for y := y0; y <= y1; y++ {
		if left {
			s.setRune(x0, y, '│', c)
		}
		if right {
			s.setRune(x1, y, '│', c)
		}
	}
	corner := func(x, y int, a, b bool, ch rune) {
		if a && b {
			s.setRune(x, y, ch, c)
		}
	}
	corner(x0, y0, left, top, '┌')
	corner(x1, y0, right, top, '┐')
	corner(x0, y1, left, bottom, '└')
	corner(x1, y1, right, bottom, '┘')
}

// DrawSprite shades the covered cells.
func (s *Screen) DrawSprite(states retained.RenderStates, sprite retained.Sprite) {
	if sprite.Texture == nil {
		return
	}
	r := s.toCells(states.Transform.X, states.Transform.Y, sprite.Size.X, sprite.Size.Y).intersect(s.clip())
	fg := retained.ApplyOpacity(color.RGBA{0xa0, 0xa0, 0xa0, 0xff}, states.Opacity)
	for y := r.y0; y < r.y1; y++ {
		for x := r.x0; x < r.x1; x++ {
			s.setRune(x, y, '▒', fg)
		}
	}
}

// DrawText writes text starting in the cell under the local origin. The
// text size is ignored; every rune takes its display width in cells.
func (s *Screen) DrawText(states retained.RenderStates, text string, textSize float32, c color.RGBA) {
	if text == "" || c.A == 0 {
		return
	}
	r := s.toCells(states.Transform.X, states.Transform.Y, 0, 0)
	x, y := r.x0, r.y0
	clip := s.clip()
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if w == 2 && clip.contains(x, y) && !clip.contains(x+1, y) {
			// Half a wide rune would not show; blank its visible half.
			s.setRune(x, y, ' ', c)
		} else if clip.contains(x, y) {
			s.setRune(x, y, ch, c)
			if w == 2 && clip.contains(x+1, y) {
				s.setRune(x+1, y, 0, c)
			}
		}
		x += w
	}
}

// MeasureText returns the display width of text in Gui pixels and one row
// of height.
func (s *Screen) MeasureText(text string, textSize float32) retained.Vector2f {
	return retained.Vector2f{X: float32(runewidth.StringWidth(text)) * s.cellW, Y: s.cellH}
}

// AddClippingLayer restricts drawing to the cells covered by rect.
func (s *Screen) AddClippingLayer(states retained.RenderStates, rect retained.Bounds) {
	r := s.toCells(states.Transform.X+rect.X, states.Transform.Y+rect.Y, rect.Width, rect.Height)
	s.clips = append(s.clips, r.intersect(s.clip()))
}

// RemoveClippingLayer pops the innermost clipping layer.
func (s *Screen) RemoveClippingLayer() {
	if len(s.clips) > 1 {
		s.clips = s.clips[:len(s.clips)-1]
	}
}

func (s *Screen) setRune(x, y int, ch rune, fg color.RGBA) {
	if !s.clip().contains(x, y) {
		return
	}
	i := y*s.cols + x
	cell := &s.cells[i]
	// Overwriting either half of a wide rune clears the other half.
	if ch != 0 && cell.Rune == 0 && x > 0 {
		s.cells[i-1].Rune = ' '
	}
	if runewidth.RuneWidth(cell.Rune) == 2 && x+1 < s.cols {
		s.cells[i+1].Rune = ' '
	}
	cell.Rune = ch
	cell.FG = fg
}

// ============================================================================
// Output
// ============================================================================

// String returns the buffer as plain text, one line per row with trailing
// spaces removed.
func (s *Screen) String() string {
	var b strings.Builder
	for y := 0; y < s.rows; y++ {
		var line strings.Builder
		for x := 0; x < s.cols; x++ {
			if ch := s.cells[y*s.cols+x].Rune; ch != 0 {
				line.WriteRune(ch)
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// Flush writes the buffer to w using 24-bit ANSI colors. The cursor is
// homed first so repeated flushes redraw in place.
func (s *Screen) Flush(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("\x1b[H")
	for y := 0; y < s.rows; y++ {
		var fg, bg color.RGBA
		styled := false
		for x := 0; x < s.cols; x++ {
			cell := s.cells[y*s.cols+x]
			if cell.Rune == 0 {
				continue
			}
			if !styled || cell.FG != fg || cell.BG != bg {
				writeStyle(&buf, cell.FG, cell.BG)
				fg, bg, styled = cell.FG, cell.BG, true
			}
			buf.WriteRune(cell.Rune)
		}
		buf.WriteString("\x1b[0m")
		if y < s.rows-1 {
			buf.WriteString("\r\n")
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func writeStyle(buf *bytes.Buffer, fg, bg color.RGBA) {
	buf.WriteString("\x1b[0")
	if fg.A > 0 {
		buf.WriteString(";38;2;")
		writeRGB(buf, fg)
	}
	if bg.A > 0 {
		buf.WriteString(";48;2;")
		writeRGB(buf, bg)
	}
	buf.WriteByte('m')
}

func writeRGB(buf *bytes.Buffer, c color.RGBA) {
	buf.WriteString(strconv.Itoa(int(c.R)))
	buf.WriteByte(';')
	buf.WriteString(strconv.Itoa(int(c.G)))
	buf.WriteByte(';')
	buf.WriteString(strconv.Itoa(int(c.B)))
}
