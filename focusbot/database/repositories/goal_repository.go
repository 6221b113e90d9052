package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/uptrace/bun"
)

type GoalRepository interface {
	Upsert(ctx context.Context, goal *models.DailyGoal) error
	Get(ctx context.Context, userID, day string) (*models.DailyGoal, error)
	Exists(ctx context.Context, userID, day string) (bool, error)
}

type goalRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewGoalRepository(db *bun.DB) GoalRepository {
	return &goalRepository{
		BaseRepository: NewBaseRepository(db),
		db:             db,
	}
}

func (r *goalRepository) Upsert(ctx context.Context, goal *models.DailyGoal) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = now
	}
	goal.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(goal).
		On("CONFLICT (user_id, day) DO UPDATE").
		Set("goal = EXCLUDED.goal").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return r.wrap("upsert", "daily_goal", goal.UserID, err)
}

func (r *goalRepository) Get(ctx context.Context, userID, day string) (*models.DailyGoal, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	goal := new(models.DailyGoal)
	err := r.db.NewSelect().
		Model(goal).
		Where("user_id = ?", userID).
		Where("day = ?", day).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, r.wrap("get", "daily_goal", userID, err)
	}
	return goal, nil
}

func (r *goalRepository) Exists(ctx context.Context, userID, day string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	exists, err := r.db.NewSelect().
		Model((*models.DailyGoal)(nil)).
		Where("user_id = ?", userID).
		Where("day = ?", day).
		Exists(ctx)
	return exists, r.wrap("exists", "daily_goal", userID, err)
}
