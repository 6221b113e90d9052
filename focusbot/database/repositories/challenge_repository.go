package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/uptrace/bun"
)

type ChallengeRepository interface {
	Get(ctx context.Context, weekKey string) (*models.WeeklyChallenge, error)
	// Mutate loads the challenge of the template's week, creating it from
	// template when missing, applies fn and saves the result in one transaction.
	Mutate(ctx context.Context, template *models.WeeklyChallenge, fn func(*models.WeeklyChallenge) error) (*models.WeeklyChallenge, error)
}

type challengeRepository struct {
	*BaseRepository
	db *bun.DB
}

func NewChallengeRepository(db *bun.DB) ChallengeRepository {
	return &challengeRepository{
		BaseRepository: NewBaseRepository(db),
		db:             db,
	}
}

func (r *challengeRepository) Get(ctx context.Context, weekKey string) (*models.WeeklyChallenge, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	challenge := new(models.WeeklyChallenge)
	err := r.db.NewSelect().
		Model(challenge).
		Where("week_key = ?", weekKey).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, r.wrap("get", "weekly_challenge", weekKey, err)
	}
	challenge.EnsureMaps()
	return challenge, nil
}

func (r *challengeRepository) Mutate(ctx context.Context, template *models.WeeklyChallenge, fn func(*models.WeeklyChallenge) error) (*models.WeeklyChallenge, error) {
	challenge := new(models.WeeklyChallenge)
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()
		seed := *template
		seed.EnsureMaps()
		seed.CreatedAt = now
		seed.UpdatedAt = now
		if _, err := tx.NewInsert().Model(&seed).Ignore().Exec(ctx); err != nil {
			return err
		}

		q := tx.NewSelect().Model(challenge).Where("week_key = ?", template.WeekKey)
		if err := r.lockForUpdate(q).Scan(ctx); err != nil {
			return err
		}
		challenge.EnsureMaps()

		if err := fn(challenge); err != nil {
			return err
		}

		challenge.UpdatedAt = now
		_, err := tx.NewUpdate().
			Model(challenge).
			Column("participants", "completed", "top_earners", "updated_at").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, r.wrap("mutate", "weekly_challenge", template.WeekKey, err)
	}
	return challenge, nil
}
