package repositories

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/internal/domain/logger"
	"github.com/disgoorg/focus-bot/internal/domain/sessions"
	"github.com/uptrace/bun"
)

type SessionRepository interface {
	sessions.Store
}

type sessionRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewSessionRepository(db *bun.DB) SessionRepository {
	return &sessionRepository{
		BaseRepository: NewBaseRepository(db),
		db:             db,
	}
}

func (r *sessionRepository) CreateActive(ctx context.Context, session *models.ActiveSession) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now

	op := logger.Track("CreateActive", session.UserID)
	_, err := r.db.NewInsert().Model(session).Exec(ctx)
	if isUniqueViolation(err) {
		op.Done(nil, 0)
		return &ConflictError{Entity: "active_session", Field: "user_id", Value: session.UserID}
	}
	op.Done(err, 1)
	return r.wrap("create", "active_session", session.UserID, err)
}

func (r *sessionRepository) GetActive(ctx context.Context, userID string) (*models.ActiveSession, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	session := new(models.ActiveSession)
	err := r.db.NewSelect().
		Model(session).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		slog.Error("Failed to get active session",
			slog.String("type", "db"),
			slog.String("user_id", userID),
			slog.Any("error", err))
		return nil, r.wrap("get", "active_session", userID, err)
	}
	return session, nil
}

func (r *sessionRepository) UpdateActive(ctx context.Context, session *models.ActiveSession) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	session.UpdatedAt = time.Now()

	op := logger.Track("UpdateActive", session.UserID)
	res, err := r.db.NewUpdate().
		Model(session).
		WherePK().
		Exec(ctx)
	if err != nil {
		op.Done(err, 0)
		return r.wrap("update", "active_session", session.UserID, err)
	}

	affected, _ := res.RowsAffected()
	op.Done(nil, affected)
	if affected == 0 {
		return &NotFoundError{Entity: "active_session", Key: session.UserID}
	}
	return nil
}

func (r *sessionRepository) DeleteActive(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	op := logger.Track("DeleteActive", userID)
	res, err := r.db.NewDelete().
		Model((*models.ActiveSession)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		op.Done(err, 0)
		return false, r.wrap("delete", "active_session", userID, err)
	}

	affected, _ := res.RowsAffected()
	op.Done(nil, affected)
	return affected > 0, nil
}

func (r *sessionRepository) ListActive(ctx context.Context) ([]*models.ActiveSession, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var active []*models.ActiveSession
	err := r.db.NewSelect().
		Model(&active).
		Order("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.wrap("list", "active_session", nil, err)
	}
	return active, nil
}

func (r *sessionRepository) Finalize(ctx context.Context, userID string, completed *models.CompletedSession) (bool, error) {
	op := logger.Track("Finalize", userID, slog.String("completion_id", completed.CompletionID))

	var removed bool
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*models.ActiveSession)(nil)).
			Where("user_id = ?", userID).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return nil
		}

		if completed.CreatedAt.IsZero() {
			completed.CreatedAt = time.Now()
		}
		if _, err := tx.NewInsert().Model(completed).Exec(ctx); err != nil {
			return err
		}
		removed = true
		return nil
	})
	if err != nil {
		op.Done(err, 0)
		if isUniqueViolation(err) {
			return false, &ConflictError{Entity: "completed_session", Field: "completion_id", Value: completed.CompletionID}
		}
		return false, r.wrap("finalize", "active_session", userID, err)
	}

	if removed {
		op.Done(nil, 1)
	} else {
		op.Done(nil, 0)
	}
	return removed, nil
}

func (r *sessionRepository) InsertCompleted(ctx context.Context, completed *models.CompletedSession) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if completed.CreatedAt.IsZero() {
		completed.CreatedAt = time.Now()
	}

	op := logger.Track("InsertCompleted", completed.UserID, slog.String("completion_id", completed.CompletionID))
	_, err := r.db.NewInsert().Model(completed).Exec(ctx)
	op.Done(err, 1)
	if isUniqueViolation(err) {
		return &ConflictError{Entity: "completed_session", Field: "completion_id", Value: completed.CompletionID}
	}
	return r.wrap("insert", "completed_session", nil, err)
}

// ListCompletedSince returns entries that ended at or after since, oldest first.
// An empty guildID matches every guild.
func (r *sessionRepository) ListCompletedSince(ctx context.Context, since time.Time, guildID string) ([]*models.CompletedSession, error) {
	ctx, cancel := r.WithCustomTimeout(ctx, r.defaultTimeout*2)
	defer cancel()

	var completed []*models.CompletedSession
	q := r.db.NewSelect().
		Model(&completed).
		Where("end_time >= ?", since)
	if guildID != "" {
		q = q.Where("guild_id = ?", guildID)
	}
	if err := q.Order("end_time ASC", "id ASC").Scan(ctx); err != nil {
		return nil, r.wrap("list_since", "completed_session", nil, err)
	}
	return completed, nil
}

func (r *sessionRepository) ListCompletedByUser(ctx context.Context, userID string, limit int) ([]*models.CompletedSession, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var completed []*models.CompletedSession
	q := r.db.NewSelect().
		Model(&completed).
		Where("user_id = ?", userID).
		Order("end_time DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, r.wrap("list_by_user", "completed_session", userID, err)
	}
	return completed, nil
}
