package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoreland/taskdeck/internal/domain"
	"github.com/jmoreland/taskdeck/internal/store"
)

// stubDBTX records calls without touching a database. Queries are not
// executed; Exec returns the configured result.
type stubDBTX struct {
	execCalls  int
	execResult sql.Result
	execErr    error
}

func (s *stubDBTX) ExecContext(_ context.Context, _ string, _ ...any) (sql.Result, error) {
	s.execCalls++
	return s.execResult, s.execErr
}

func (s *stubDBTX) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errors.New("not supported")
}

func (s *stubDBTX) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errors.New("not supported")
}

func (s *stubDBTX) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}

type stubResult struct {
	affected int64
}

func (r stubResult) LastInsertId() (int64, error) { return 0, nil }
func (r stubResult) RowsAffected() (int64, error) { return r.affected, nil }

func TestNewPostgresTaskStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() {
		NewPostgresTaskStore(nil, nil)
	})
}

func TestSaveRejectsInvalidTaskBeforeTouchingDB(t *testing.T) {
	db := &stubDBTX{}
	s := NewPostgresTaskStore(db, nil)

	invalid := domain.RehydrateTask(
		uuid.New(), "", nil, domain.TaskStatusPending, nil,
		time.Now().UTC(), time.Now().UTC(),
	)

	err := s.Save(context.Background(), invalid)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrInvalidEntity))
	assert.True(t, errors.Is(err, domain.ErrTitleEmpty))
	assert.Equal(t, 0, db.execCalls, "validation failure must not reach the database")
}

func TestDeleteMapsZeroRowsToNotFound(t *testing.T) {
	db := &stubDBTX{execResult: stubResult{affected: 0}}
	s := NewPostgresTaskStore(db, nil)

	err := s.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrTaskNotFound))
}

func TestDeleteSucceedsWhenRowRemoved(t *testing.T) {
	db := &stubDBTX{execResult: stubResult{affected: 1}}
	s := NewPostgresTaskStore(db, nil)

	assert.NoError(t, s.Delete(context.Background(), uuid.New()))
}

func TestDeleteWrapsExecError(t *testing.T) {
	db := &stubDBTX{execErr: errors.New("connection reset")}
	s := NewPostgresTaskStore(db, nil)

	err := s.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.execErr))
	assert.True(t, errors.Is(err, store.ErrDeleteFailed))
	assert.False(t, store.IsNotFoundError(err))
}
