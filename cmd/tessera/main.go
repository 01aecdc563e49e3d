package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/tessera/cmd/tessera/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "demo":
		err = commands.Demo(args)
	case "dump":
		err = commands.Dump(args, os.Stdout)
	case "config":
		err = commands.Config(args, os.Stdout)
	case "version", "-v", "--version":
		fmt.Printf("tessera version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tessera - retained-mode widget toolkit

Usage: tessera <command> [options]

Commands:
  demo       Open the sample widget tree in a window
  dump       Render the sample tree once to the terminal
  config     Print or write the default configuration
  version    Print version information
  help       Show this help message

Examples:
  tessera demo                     Open the demo window
  tessera demo --config gui.toml   Use a custom configuration and theme
  tessera dump --cols 120          Render 120 columns wide
  tessera config --write gui.toml  Write the default configuration

Configuration:
  Timing, text size and the theme are read from a TOML file (default
  tessera.toml). A missing file means built-in defaults.`)
}
