package retained

import (
	"log/slog"
	"os"
)

// detachedLogger serves widgets that do not belong to a Gui. It logs at
// Info and above.
var detachedLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// newGuiLogger returns a stderr logger filtered by level.
func newGuiLogger(level *slog.LevelVar) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// SetVerbose enables or disables debug logging for tree mutations, focus
// changes and vetoed state changes of this Gui only.
func (g *Gui) SetVerbose(v bool) {
	if v {
		g.logLevel.Set(slog.LevelDebug)
	} else {
		g.logLevel.Set(slog.LevelInfo)
	}
}

// SetLogger replaces the logger of this Gui. Passing nil restores the
// default stderr logger, still filtered by SetVerbose.
func (g *Gui) SetLogger(l *slog.Logger) {
	if l == nil {
		l = newGuiLogger(&g.logLevel)
	}
	g.logger = l
}

// Logger returns the logger of this Gui.
func (g *Gui) Logger() *slog.Logger { return g.logger }

// log returns the logger of the Gui w belongs to.
func (w *WidgetBase) log() *slog.Logger {
	if g := w.gui(); g != nil {
		return g.logger
	}
	return detachedLogger
}
