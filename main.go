// tripgenie TUI - A terminal interface for the TripGenie trip planner.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/tripgenie-tui/internal/api"
	"github.com/morganforge/tripgenie-tui/internal/auth"
	"github.com/morganforge/tripgenie-tui/internal/config"
	"github.com/morganforge/tripgenie-tui/internal/storage"
	"github.com/morganforge/tripgenie-tui/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--version", "-v", "version":
			fmt.Printf("tripgenie %s (%s, built %s)\n", Version, GitCommit, BuildDate)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		return fmt.Errorf("failed to resolve data directory: %w", err)
	}

	// The TUI owns the terminal; logs go to a file instead of stdout.
	cleanup := setupLogging(dataDir)
	defer cleanup()

	fileBackend, err := storage.NewFileBackend(dataDir)
	if err != nil {
		return fmt.Errorf("failed to open data directory: %w", err)
	}
	durable := storage.NewStore(fileBackend)
	guest := storage.NewStore(storage.NewMemoryBackend())

	client := api.NewClient(cfg.API.BaseURL).WithTimeout(cfg.Timeout())

	authMgr, err := auth.NewManager(client, durable, guest)
	if err != nil {
		return err
	}

	m, err := app.New(cfg, client, authMgr, durable, guest)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running tripgenie: %w", err)
	}
	return nil
}

// setupLogging redirects the standard logger to ~/.tripgenie/tripgenie.log.
// Failures fall back to discarding logs; a chat client should never refuse
// to start over a log file.
func setupLogging(dataDir string) func() {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}

	f, err := os.OpenFile(filepath.Join(dataDir, "tripgenie.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	return func() { f.Close() }
}

func printUsage() {
	fmt.Println(`tripgenie - AI trip planner in your terminal

Usage:
  tripgenie            Start the TUI
  tripgenie version    Print version information
  tripgenie help       Show this help

Environment:
  TRIPGENIE_API_URL       Trip-planner API base URL (default http://localhost:8000)
  TRIPGENIE_TIMEOUT_SECS  Per-request timeout in seconds (default 60)
  TRIPGENIE_DATA_DIR      State directory (default ~/.tripgenie)`)
}
