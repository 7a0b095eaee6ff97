package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jmoreland/taskdeck/internal/domain"
	"github.com/jmoreland/taskdeck/internal/platform/logger"
	"github.com/jmoreland/taskdeck/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface using a
// PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction
// managed by the caller. If logger is nil, a default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore.
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Save implements store.TaskStore.Save as an upsert keyed on the task ID,
// so fresh creation and updates go through the same path. Returns domain
// validation errors if the task data is invalid.
func (s *PostgresTaskStore) Save(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during save",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (id, title, description, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title       = EXCLUDED.title,
			description = EXCLUDED.description,
			status      = EXCLUDED.status,
			due_date    = EXCLUDED.due_date,
			updated_at  = EXCLUDED.updated_at
	`

	var dueDate *time.Time
	if task.DueDate != nil {
		t := task.DueDate.Time()
		dueDate = &t
	}

	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Status.String(),
		dueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to save task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError("task", "save", "exec failed", err)
	}

	log.Debug("task saved",
		slog.String("task_id", task.ID.String()),
		slog.String("status", task.Status.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, status, due_date, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, store.NewStoreError("task", "get", "query failed", err)
	}

	return task, nil
}

// FindAll implements store.TaskStore.FindAll, newest first.
func (s *PostgresTaskStore) FindAll(ctx context.Context, status *domain.TaskStatus) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, status, due_date, created_at, updated_at
		FROM tasks
	`
	var args []any
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, status.String())
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "find_all", "query failed", err)
	}
	defer closeRows(rows, log)

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "find_all", "scan failed", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "find_all", "row iteration failed", err)
	}

	return tasks, nil
}

// FindPaginated implements store.TaskStore.FindPaginated: a count of all
// matching tasks plus one page ordered by creation time descending.
func (s *PostgresTaskStore) FindPaginated(
	ctx context.Context,
	page, limit int,
	status *domain.TaskStatus,
) (*store.Page, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	offset := (page - 1) * limit

	countQuery := `SELECT COUNT(*) FROM tasks`
	dataQuery := `
		SELECT id, title, description, status, due_date, created_at, updated_at
		FROM tasks
	`
	var countArgs, dataArgs []any
	if status != nil {
		countQuery += ` WHERE status = $1`
		dataQuery += ` WHERE status = $1`
		countArgs = append(countArgs, status.String())
		dataArgs = append(dataArgs, status.String())
		dataQuery += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	} else {
		dataQuery += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	}
	dataArgs = append(dataArgs, limit, offset)

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "find_paginated", "count failed", err)
	}

	rows, err := s.db.QueryContext(ctx, dataQuery, dataArgs...)
	if err != nil {
		log.Error("failed to query task page", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "find_paginated", "query failed", err)
	}
	defer closeRows(rows, log)

	items := make([]*domain.Task, 0, limit)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "find_paginated", "scan failed", err)
		}
		items = append(items, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "find_paginated", "row iteration failed", err)
	}

	return &store.Page{Items: items, Total: total}, nil
}

// Delete implements store.TaskStore.Delete.
// Returns store.ErrTaskNotFound if no row was removed.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return store.NewStoreError("task", "delete", "exec failed",
			fmt.Errorf("%w: %w", store.ErrDeleteFailed, err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("task", "delete", "rows affected unavailable",
			fmt.Errorf("%w: %w", store.ErrDeleteFailed, err))
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask rebuilds a domain Task from one row of the tasks table.
func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		id          uuid.UUID
		title       string
		description *string
		statusStr   string
		dueAt       *time.Time
		createdAt   time.Time
		updatedAt   time.Time
	)

	if err := row.Scan(&id, &title, &description, &statusStr, &dueAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	status, err := domain.ParseTaskStatus(statusStr)
	if err != nil {
		return nil, fmt.Errorf("stored status is invalid: %w", err)
	}

	var dueDate *domain.DueDate
	if dueAt != nil {
		d, err := domain.NewDueDate(*dueAt)
		if err != nil {
			return nil, fmt.Errorf("stored due date is invalid: %w", err)
		}
		dueDate = &d
	}

	return domain.RehydrateTask(id, title, description, status, dueDate, createdAt, updatedAt), nil
}

func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}
