package termui

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/agiangrant/tessera/retained"
)

// Default Gui pixels per cell, close to a common terminal font.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// TerminalSize returns the size of the terminal attached to f in cells.
func TerminalSize(f *os.File) (cols, rows int, err error) {
	cols, rows, err = term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("terminal size: %w", err)
	}
	return cols, rows, nil
}

// IsTerminal reports whether f is a terminal, which decides between
// colored and plain output.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Render draws gui into a fresh screen of cols x rows cells. The Gui
// viewport is set to the pixel area the screen covers.
func Render(gui *retained.Gui, cols, rows int) *Screen {
	s := NewScreen(cols, rows, DefaultCellWidth, DefaultCellHeight)
	size := s.PixelSize()
	gui.SetViewport(retained.Bounds{Width: size.X, Height: size.Y})
	gui.Draw(s)
	return s
}

// Dump renders gui once to f. Terminals get ANSI colors; anything else
// gets plain text.
func Dump(gui *retained.Gui, f *os.File, cols, rows int) error {
	s := Render(gui, cols, rows)
	if IsTerminal(f) {
		if err := s.Flush(f); err != nil {
			return err
		}
		_, err := fmt.Fprintln(f)
		return err
	}
	_, err := f.WriteString(s.String())
	return err
}
