package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fragmede/sesame/internal/api"
	"github.com/fragmede/sesame/internal/auth"
	"github.com/fragmede/sesame/internal/config"
	"github.com/fragmede/sesame/internal/logger"
	"github.com/fragmede/sesame/internal/router"
	"github.com/fragmede/sesame/internal/storage"
	"github.com/fragmede/sesame/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		log.Fatalf("creating data dir: %v", err)
	}

	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.Fatalf("opening log file: %v", err)
	}
	defer logFile.Close()
	lg := logger.New(cfg.Environment, logFile)

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("opening session store: %v", err)
	}
	defer db.Close()

	client := api.NewClient(cfg.APIBaseURL, api.WithTimeout(cfg.RequestTimeout))
	session := auth.New(client, db, lg)
	session.Restore(context.Background())

	r, err := router.New(session, router.DefaultRoutes())
	if err != nil {
		log.Fatalf("building routes: %v", err)
	}

	lg.Info("starting", slog.String("api", client.BaseURL()), slog.Bool("authenticated", session.IsAuthenticated()))

	app := ui.NewApp(session, r, lg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
