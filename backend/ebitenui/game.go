package ebitenui

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/agiangrant/tessera/retained"
)

// Options configures the window opened by Run.
type Options struct {
	Title      string
	Width      int
	Height     int
	Background color.RGBA
}

// DefaultOptions returns an 800x600 window.
func DefaultOptions() Options {
	return Options{
		Title:      "tessera",
		Width:      800,
		Height:     600,
		Background: color.RGBA{0xf0, 0xf0, 0xf0, 0xff},
	}
}

// Game adapts a retained.Gui to ebiten.Game. Each Update polls input,
// dispatches it and advances the Gui clock by one tick.
type Game struct {
	gui        *retained.Gui
	target     *Target
	poller     *Poller
	background color.RGBA

	width, height int
	logger        *slog.Logger
}

// NewGame wraps gui.
func NewGame(gui *retained.Gui, opts Options) *Game {
	return &Game{
		gui:        gui,
		target:     NewTarget(),
		poller:     NewPoller(),
		background: opts.Background,
		logger:     gui.Logger().With("backend", "ebiten"),
	}
}

// Target returns the render target, for measuring text outside Draw.
func (g *Game) Target() *Target { return g.target }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.gui.DispatchEvent(retained.InputEvent{Kind: retained.Closed})
		return ebiten.Termination
	}
	for _, e := range g.poller.Poll() {
		g.gui.DispatchEvent(e)
	}
	g.gui.AdvanceTime(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.target.Begin(screen)
	g.gui.Draw(g.target)
}

// Layout implements ebiten.Game. A change of the outside size is forwarded
// to the Gui as a Resized event.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.poller.SetWindowSize(outsideWidth, outsideHeight)
		g.gui.DispatchEvent(retained.ResizedEvent(float32(outsideWidth), float32(outsideHeight)))
		g.logger.Debug("resized", "width", outsideWidth, "height", outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and runs gui until the window is closed.
func Run(gui *retained.Gui, opts Options) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	gui.SetViewport(retained.Bounds{Width: float32(opts.Width), Height: float32(opts.Height)})
	game := NewGame(gui, opts)
	game.logger.Info("starting", "title", opts.Title, "width", opts.Width, "height", opts.Height)
	return ebiten.RunGame(game)
}
