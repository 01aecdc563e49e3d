package commands

import (
	"flag"

	"github.com/agiangrant/tessera/backend/ebitenui"
)

// Demo implements the 'tessera demo' command
func Demo(args []string) error {
	opts := ebitenui.DefaultOptions()
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigFile, "Path to the TOML configuration")
	fs.IntVar(&opts.Width, "width", opts.Width, "Window width")
	fs.IntVar(&opts.Height, "height", opts.Height, "Window height")
	fs.StringVar(&opts.Title, "title", opts.Title, "Window title")
	verbose := fs.Bool("verbose", false, "Log tree mutations and focus changes")
	fs.Parse(args)

	gui, _, err := newDemoGui(*configPath, *verbose)
	if err != nil {
		return err
	}
	return ebitenui.Run(gui, opts)
}
