package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jmoreland/taskdeck/internal/config"
	"github.com/jmoreland/taskdeck/internal/notify"
	"github.com/jmoreland/taskdeck/internal/platform/postgres"
	"github.com/jmoreland/taskdeck/internal/platform/redisq"
	"github.com/jmoreland/taskdeck/internal/service"
)

// application holds the wired components for the server. Everything is
// constructed once at startup by newApplication and torn down by cleanup.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	db          *sql.DB
	redisClient *redis.Client
	taskService service.TaskService
	worker      *notify.Worker
}

// newApplication connects to the backing stores, runs pending migrations
// and wires the service graph. On success the reminder worker is already
// running.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logger); err != nil {
		closeQuietly(db, logger)
		return nil, err
	}

	redisClient, err := setupAppRedis(cfg, logger)
	if err != nil {
		closeQuietly(db, logger)
		return nil, err
	}

	queue := redisq.New(redisClient, redisq.DefaultWorkKey, logger)
	scheduler := notify.NewScheduler(queue, cfg.Notification.RecordTTL, logger)

	taskStore := postgres.NewPostgresTaskStore(db, logger)

	taskService, err := service.NewTaskService(
		taskStore,
		scheduler,
		cfg.Notification.HorizonHours,
		logger,
	)
	if err != nil {
		closeQuietly(db, logger)
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	worker := notify.NewWorker(
		queue,
		notify.NewFileDeliverer(cfg.Notification.LogFile),
		notify.WorkerConfig{
			PollInterval: cfg.Notification.PollInterval,
			HorizonHours: cfg.Notification.HorizonHours,
		},
		logger,
	)
	worker.Start()

	return &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
		taskService: taskService,
		worker:      worker,
	}, nil
}

// cleanup stops the background worker and releases connections. Called
// after the HTTP server has drained.
func (app *application) cleanup() {
	app.worker.Stop()

	if err := app.redisClient.Close(); err != nil {
		app.logger.Error("failed to close redis client", "error", err)
	}
	closeQuietly(app.db, app.logger)

	app.logger.Info("application cleanup completed")
}

func closeQuietly(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("failed to close database connection", "error", err)
	}
}
