package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agiangrant/tessera/retained"
)

// Config implements the 'tessera config' command. Without --write it prints
// the effective configuration.
func Config(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigFile, "Configuration to print")
	write := fs.String("write", "", "Write the default configuration to this path")
	force := fs.Bool("force", false, "Overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *write != "" {
		if _, err := os.Stat(*write); err == nil && !*force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", *write)
		}
		if err := retained.SaveConfig(*write, retained.DefaultConfig()); err != nil {
			return err
		}
		fmt.Fprintf(out, "  ✓ Created %s\n", *write)
		return nil
	}

	cfg, err := retained.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	data, err := cfg.Encode()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
