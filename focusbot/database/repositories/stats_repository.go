package repositories

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/uptrace/bun"
)

type StatsRepository interface {
	Get(ctx context.Context, userID string) (*models.UserStats, error)
	Upsert(ctx context.Context, stats *models.UserStats) error
	AddXP(ctx context.Context, userID, weekKey string, amount int64) (*models.UserStats, error)
	ListTopByXP(ctx context.Context, limit int) ([]*models.UserStats, error)
	ListAll(ctx context.Context) ([]*models.UserStats, error)
}

type statsRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewStatsRepository(db *bun.DB) StatsRepository {
	return &statsRepository{
		BaseRepository: NewBaseRepository(db),
		db:             db,
	}
}

func (r *statsRepository) Get(ctx context.Context, userID string) (*models.UserStats, error) {
	ctx, cancel := r.WithCustomTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	stats := new(models.UserStats)
	err := r.db.NewSelect().
		Model(stats).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		slog.Error("Failed to get user stats",
			slog.String("type", "db"),
			slog.String("user_id", userID),
			slog.Any("error", err))
		return nil, r.wrap("get", "user_stats", userID, err)
	}
	stats.EnsureMaps()
	return stats, nil
}

func (r *statsRepository) Upsert(ctx context.Context, stats *models.UserStats) error {
	ctx, cancel := r.WithCustomTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	now := time.Now()
	if stats.CreatedAt.IsZero() {
		stats.CreatedAt = now
	}
	stats.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(stats).
		On("CONFLICT (user_id) DO UPDATE").
		Exec(ctx)
	if err != nil {
		slog.Error("Failed to upsert user stats",
			slog.String("type", "db"),
			slog.String("user_id", stats.UserID),
			slog.Any("error", err))
	}
	return r.wrap("upsert", "user_stats", stats.UserID, err)
}

// AddXP increments total xp and the weekly tally of weekKey in one transaction.
func (r *statsRepository) AddXP(ctx context.Context, userID, weekKey string, amount int64) (*models.UserStats, error) {
	stats := new(models.UserStats)
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewSelect().Model(stats).Where("user_id = ?", userID)
		if err := r.lockForUpdate(q).Scan(ctx); err != nil {
			return err
		}
		stats.EnsureMaps()
		stats.XP += amount
		if weekKey != "" {
			stats.WeeklyXPEarned[weekKey] += amount
		}
		stats.UpdatedAt = time.Now()

		_, err := tx.NewUpdate().
			Model(stats).
			Column("xp", "weekly_xp_earned", "updated_at").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, r.wrap("add_xp", "user_stats", userID, err)
	}
	return stats, nil
}

func (r *statsRepository) ListTopByXP(ctx context.Context, limit int) ([]*models.UserStats, error) {
	ctx, cancel := r.WithCustomTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	var stats []*models.UserStats
	q := r.db.NewSelect().
		Model(&stats).
		Where("xp > 0").
		Order("xp DESC", "user_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, r.wrap("list_top", "user_stats", nil, err)
	}
	return stats, nil
}

func (r *statsRepository) ListAll(ctx context.Context) ([]*models.UserStats, error) {
	ctx, cancel := r.WithCustomTimeout(ctx, config.StatsQueryTimeout)
	defer cancel()

	var stats []*models.UserStats
	if err := r.db.NewSelect().Model(&stats).Order("user_id ASC").Scan(ctx); err != nil {
		return nil, r.wrap("list", "user_stats", nil, err)
	}
	for _, s := range stats {
		s.EnsureMaps()
	}
	return stats, nil
}
