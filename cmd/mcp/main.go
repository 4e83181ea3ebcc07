package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/colsense/colsense/internal/config"
	"github.com/colsense/colsense/internal/core"
	"github.com/colsense/colsense/internal/logging"
	"github.com/colsense/colsense/internal/mcp"
	"github.com/colsense/colsense/internal/refdata"
	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	// .env is optional for the stdio server
	_ = godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Logs go to stderr: the stdio protocol owns stdout.
	logging.SetupWithWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	ref, err := refdata.Load(cfg.Data.CountriesFile, cfg.Data.LegalFile, cfg.Data.CallingCodesFile)
	if err != nil {
		slog.Error("failed to load reference data", "error", err)
		os.Exit(1)
	}

	service := core.NewService(ref, core.Config{
		Threshold:  cfg.Classify.Threshold,
		SampleSize: cfg.Classify.SampleSize,
		DataDir:    cfg.Data.Dir,
	}, nil)

	server := mcp.NewServer(service, version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		slog.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
