package main

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/chatter/nudge/internal/app"
	"github.com/chatter/nudge/internal/config"
	"github.com/chatter/nudge/internal/logger"
)

// version is set from build info or falls back to "dev"
var version = "dev"

func init() {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
}

func main() {
	cfg, err := config.Load("nudge.toml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	// Get current working directory for the activity watcher
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not get current directory: %v\n", err)
		os.Exit(1)
	}

	// Hint text is styled only on capable terminals
	profile := colorprofile.Detect(os.Stdout, os.Environ())
	styled := profile != colorprofile.NoTTY && profile != colorprofile.Ascii

	model := app.New(cwd, version, cfg, log, styled)

	p := tea.NewProgram(model, tea.WithEnvironment(os.Environ()))

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
