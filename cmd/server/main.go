// Package main implements the entry point for the taskdeck server, which
// manages task lifecycles and delivers due-soon reminders.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/jmoreland/taskdeck/internal/config"
	"github.com/jmoreland/taskdeck/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging and wires the
// application components together.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)

	slog.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to wire application: %w", err)
	}

	return app, nil
}
