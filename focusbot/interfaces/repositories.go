package interfaces

import (
	"context"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/database/models"
)

// StatsStore defines the user stats operations the engines depend on
type StatsStore interface {
	Get(ctx context.Context, userID string) (*models.UserStats, error)
	Upsert(ctx context.Context, stats *models.UserStats) error
	AddXP(ctx context.Context, userID, weekKey string, amount int64) (*models.UserStats, error)
	ListTopByXP(ctx context.Context, limit int) ([]*models.UserStats, error)
	ListAll(ctx context.Context) ([]*models.UserStats, error)
}

// ChallengeStore defines the weekly challenge persistence operations
type ChallengeStore interface {
	Get(ctx context.Context, weekKey string) (*models.WeeklyChallenge, error)
	Mutate(ctx context.Context, template *models.WeeklyChallenge, fn func(*models.WeeklyChallenge) error) (*models.WeeklyChallenge, error)
}

// GoalStore defines the daily goal persistence operations
type GoalStore interface {
	Upsert(ctx context.Context, goal *models.DailyGoal) error
	Get(ctx context.Context, userID, day string) (*models.DailyGoal, error)
	Exists(ctx context.Context, userID, day string) (bool, error)
}

// CompletedLog is the read side of the completed-session log
type CompletedLog interface {
	ListCompletedSince(ctx context.Context, since time.Time, guildID string) ([]*models.CompletedSession, error)
}

// GoalChecker is consulted by the streak walk for days without a session
type GoalChecker interface {
	HasGoal(ctx context.Context, userID, day string) (bool, error)
}

// AchievementApplier grants every achievement the stats now satisfy and
// returns the ids unlocked by this call.
type AchievementApplier interface {
	Apply(stats *models.UserStats, now time.Time) []string
}

// ChallengeRecorder adds earned xp to the current weekly challenge and returns
// the bonus granted by this call, if any.
type ChallengeRecorder interface {
	RecordXP(ctx context.Context, userID string, xp int64, now time.Time) (bonus int64, completed bool, err error)
}
