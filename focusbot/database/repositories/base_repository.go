package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// BaseRepository is embedded by every focus store.
type BaseRepository struct {
	db             *bun.DB
	defaultTimeout time.Duration
}

func NewBaseRepository(db *bun.DB) *BaseRepository {
	return &BaseRepository{
		db:             db,
		defaultTimeout: config.DefaultQueryTimeout,
	}
}

// RepositoryError wraps a driver failure with the store operation that hit it.
type RepositoryError struct {
	Operation string
	Entity    string
	Err       error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Entity, e.Operation, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

type NotFoundError struct {
	Entity string
	Key    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s for %v", e.Entity, e.Key)
}

// ConflictError reports a row that already exists under a unique key,
// e.g. a second active session for the same user.
type ConflictError struct {
	Entity string
	Field  string
	Value  any
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists for %s=%v", e.Entity, e.Field, e.Value)
}

func (br *BaseRepository) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, br.defaultTimeout)
}

func (br *BaseRepository) WithCustomTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// wrap maps sql.ErrNoRows to NotFoundError and everything else to RepositoryError.
func (br *BaseRepository) wrap(operation, entity string, key any, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Entity: entity, Key: key}
	}
	return &RepositoryError{Operation: operation, Entity: entity, Err: err}
}

// Transaction runs fn in a transaction bounded by the default query timeout.
func (br *BaseRepository) Transaction(ctx context.Context, fn func(context.Context, bun.Tx) error) error {
	ctx, cancel := br.WithTimeout(ctx)
	defer cancel()

	return br.db.RunInTx(ctx, nil, fn)
}

// lockForUpdate adds FOR UPDATE on postgres. SQLite serializes writers already.
func (br *BaseRepository) lockForUpdate(q *bun.SelectQuery) *bun.SelectQuery {
	if br.db.Dialect().Name() == dialect.PG {
		return q.For("UPDATE")
	}
	return q
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
