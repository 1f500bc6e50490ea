package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"securities-admin/internal/api"
	"securities-admin/internal/config"
	"securities-admin/internal/database"
	"securities-admin/internal/settings"
	"securities-admin/internal/ui"
	"securities-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	apiURL := flag.String("api-url", cfg.APIURL, "Securities backend URL")
	dataDir := flag.String("data-dir", cfg.DataDir, "Directory for local state")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.Parse()

	if err := os.MkdirAll(*dataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so runtime logs go to a file.
	logFile, err := os.OpenFile(filepath.Join(*dataDir, "admin.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	log := logger.New(logger.Config{
		Level:  *logLevel,
		Output: logFile,
	})
	logger.SetGlobalLogger(log)
	log.Info().Msg("Starting securities admin")

	db, err := database.Open(filepath.Join(*dataDir, "settings.db"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to open settings database")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	store, err := settings.NewRepository(db, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize settings store")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// A backend URL saved from the login screen wins over env and flag.
	baseURL := *apiURL
	if saved, err := store.APIURL(); err == nil && saved != "" {
		baseURL = saved
	}

	client := api.NewClient(baseURL, log)
	m := ui.NewModel(client, store, baseURL, log)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("Program exited with an error")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
