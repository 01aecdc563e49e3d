package commands

import (
	"fmt"

	"github.com/agiangrant/tessera/internal/demo"
	"github.com/agiangrant/tessera/retained"
)

// defaultConfigFile is read when --config is not given. It may be missing.
const defaultConfigFile = "tessera.toml"

// newDemoGui loads the configuration and builds the sample tree.
func newDemoGui(configPath string, verbose bool) (*retained.Gui, *demo.Demo, error) {
	cfg, err := retained.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	gui := retained.NewGui(cfg)
	d, err := demo.Build(gui)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build demo: %w", err)
	}
	return gui, d, nil
}
