package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/folioapp/folio/internal/config"
	"github.com/folioapp/folio/internal/log"
	"github.com/folioapp/folio/internal/service"
	"github.com/folioapp/folio/internal/store"
	"github.com/folioapp/folio/internal/tui"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	showVersion := flag.Bool("v", false, "print version and exit")
	memoryOnly := flag.Bool("ephemeral", false, "run without persisting anything to disk")
	flag.Parse()

	if *showVersion {
		fmt.Printf("folio %s\n", Version)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "folio is a terminal app and needs a TTY")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Logging must never take the app down
		logger = log.NullLogger()
	}
	logger.Info("starting folio", "version", Version)

	dataDir := cfg.Data.Dir
	if *memoryOnly {
		dataDir = ""
	}
	st, err := store.NewShelfStore(dataDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open diary database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	shelf := service.NewShelfService(st, logger)
	settings := service.NewSettingsService(st, logger)
	settings.Load()
	search := service.NewSearchService(shelf, logger)

	model := tui.NewModel(cfg, logger, shelf, settings, search)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error("tui exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
