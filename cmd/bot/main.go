package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"voice-session-bot/internal/config"
)

const shutdownTimeout = 15 * time.Second

func main() {
	InitLogger()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		slog.Error("Failed to start application", "error", err)
		app.closeStores()
		os.Exit(1)
	}

	WaitForShutdown(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		slog.Error("Application shutdown error", "error", err)
	}
}
