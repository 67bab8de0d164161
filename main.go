package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kanriapp/kanri/internal/api"
	"github.com/kanriapp/kanri/internal/config"
	"github.com/kanriapp/kanri/internal/logging"
	"github.com/kanriapp/kanri/internal/suggest"
	"github.com/kanriapp/kanri/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logging must go to a file: the TUI owns the terminal.
	if err := logging.Init(cfg.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.Client.APIBaseURL, cfg.Client.RequestTimeout())

	// The suggestion engine delivers results from its own goroutines;
	// Program.Send carries them into the update loop.
	var p *tea.Program
	engine := suggest.NewEngine(client, cfg.Client.Debounce(), func(s suggest.Suggestion) {
		p.Send(tui.SuggestionMsg(s))
	})
	defer engine.Close()

	model := tui.NewModel(client, engine, cfg.Client.ProjectID)
	p = tea.NewProgram(model, tea.WithAltScreen())

	slog.Info("kanri starting", "api", cfg.Client.APIBaseURL, "project", cfg.Client.ProjectID)
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
