package commands

import (
	"flag"
	"io"
	"os"

	"github.com/agiangrant/tessera/backend/termui"
)

// Fallback size when the output is not a terminal.
const (
	defaultCols = 100
	defaultRows = 37
)

// Dump implements the 'tessera dump' command. It renders one frame of the
// demo tree as text.
func Dump(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigFile, "Path to the TOML configuration")
	cols := fs.Int("cols", 0, "Columns (default: terminal width)")
	rows := fs.Int("rows", 0, "Rows (default: terminal height)")
	plain := fs.Bool("plain", false, "Write plain text without colors")
	if err := fs.Parse(args); err != nil {
		return err
	}

	gui, _, err := newDemoGui(*configPath, false)
	if err != nil {
		return err
	}

	f, isFile := out.(*os.File)
	color := isFile && !*plain && termui.IsTerminal(f)
	c, r := *cols, *rows
	if c <= 0 || r <= 0 {
		tc, tr := defaultCols, defaultRows
		if isFile {
			if w, h, err := termui.TerminalSize(f); err == nil {
				tc, tr = w, h-1
			}
		}
		if c <= 0 {
			c = tc
		}
		if r <= 0 {
			r = tr
		}
	}

	screen := termui.Render(gui, c, r)
	if color {
		if err := screen.Flush(out); err != nil {
			return err
		}
		_, err := io.WriteString(out, "\n")
		return err
	}
	_, err = io.WriteString(out, screen.String())
	return err
}
