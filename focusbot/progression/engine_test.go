package progression

import (
	"context"
	"testing"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/achievements"
	"github.com/disgoorg/focus-bot/focusbot/database"
	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/focusbot/database/repositories"
	"github.com/disgoorg/focus-bot/focusbot/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type goalSet map[string]bool

func (g goalSet) HasGoal(_ context.Context, userID, day string) (bool, error) {
	return g[userID+"/"+day], nil
}

type fixedChallenge struct {
	bonus int64
	calls []int64
}

func (f *fixedChallenge) RecordXP(_ context.Context, _ string, xp int64, _ time.Time) (int64, bool, error) {
	f.calls = append(f.calls, xp)
	if f.bonus > 0 {
		return f.bonus, true, nil
	}
	return 0, false, nil
}

func newStatsRepo(t *testing.T) interfaces.StatsStore {
	t.Helper()
	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.InitializeSchema(context.Background()))
	return repositories.NewStatsRepository(db.BunDB())
}

func completion(userID string, start time.Time, d time.Duration) Completion {
	return Completion{
		UserID:       userID,
		Username:     "alice",
		CompletionID: models.CompletionID(userID, start),
		Duration:     d,
		Activity:     "Reading",
		Start:        start,
		End:          start.Add(d),
	}
}

func day(n int, hour int) time.Time {
	return time.Date(2026, 3, n, hour, 0, 0, 0, time.UTC)
}

func TestEngine_StreakBridgedByGoal(t *testing.T) {
	tests := []struct {
		name  string
		goals goalSet
		want  int
	}{
		{"goal on day two keeps the streak", goalSet{"u1/2026-03-03": true}, 3},
		{"no goal resets", goalSet{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			e := NewEngine(newStatsRepo(t), tt.goals, nil, nil)

			_, err := e.RecordCompletion(ctx, completion("u1", day(2, 10), time.Hour))
			require.NoError(t, err)

			res, err := e.RecordCompletion(ctx, completion("u1", day(4, 10), time.Hour))
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Streak)
		})
	}
}

func TestEngine_StreakSameAndNextDay(t *testing.T) {
	ctx := context.Background()
	repo := newStatsRepo(t)
	e := NewEngine(repo, goalSet{}, nil, nil)

	res, err := e.RecordCompletion(ctx, completion("u1", day(2, 8), time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Streak)

	res, err = e.RecordCompletion(ctx, completion("u1", day(2, 14), time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Streak)

	res, err = e.RecordCompletion(ctx, completion("u1", day(3, 9), time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Streak)

	stats, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.LongestStreak)
	assert.Equal(t, int64(3), stats.TotalSessions)
	assert.Equal(t, 2, stats.SessionsPerDay["2026-03-02"])
}

func TestEngine_StreakMilestoneBonus(t *testing.T) {
	ctx := context.Background()
	repo := newStatsRepo(t)

	last := day(8, 11)
	stats := models.NewUserStats("u1", "alice")
	stats.CurrentStreak = 6
	stats.LongestStreak = 6
	stats.LastSessionAt = &last
	require.NoError(t, repo.Upsert(ctx, stats))

	e := NewEngine(repo, goalSet{}, nil, nil)
	res, err := e.RecordCompletion(ctx, completion("u1", day(9, 10), time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 7, res.Streak)
	assert.Equal(t, 7, res.StreakMilestone)
	assert.Equal(t, int64(60), res.XPGained)

	// another session the same day does not re-award the milestone
	res, err = e.RecordCompletion(ctx, completion("u1", day(9, 15), time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.XPGained)
	assert.Zero(t, res.StreakMilestone)
}

func TestEngine_DuplicateCompletionIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := newStatsRepo(t)
	e := NewEngine(repo, goalSet{}, achievements.NewEngine(repo, nil), nil)

	c := completion("u1", day(2, 10), 2*time.Hour)
	first, err := e.RecordCompletion(ctx, c)
	require.NoError(t, err)
	assert.Positive(t, first.XPGained)

	second, err := e.RecordCompletion(ctx, c)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Zero(t, second.XPGained)
	assert.Equal(t, first.TotalXP, second.TotalXP)

	stats, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalSessions)
}

func TestEngine_AchievementsAndLevelUp(t *testing.T) {
	ctx := context.Background()
	repo := newStatsRepo(t)
	e := NewEngine(repo, goalSet{}, achievements.NewEngine(repo, nil), nil)

	res, err := e.RecordCompletion(ctx, completion("u1", day(2, 10), 2*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, int64(20), res.XPGained)
	assert.ElementsMatch(t, []string{"first_session", "hours_1", "marathon_2h"}, res.Unlocked)
	assert.Equal(t, int64(45), res.AchievementXP)
	assert.Equal(t, int64(65), res.TotalXP)
	assert.Equal(t, 1, res.NewLevel)
	assert.False(t, res.LeveledUp)

	prevXP := res.TotalXP
	for i := 3; i <= 12; i++ {
		res, err = e.RecordCompletion(ctx, completion("u1", day(i, 10), 3*time.Hour))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.TotalXP, prevXP, "xp never decreases")
		prevXP = res.TotalXP
	}
	assert.Greater(t, res.NewLevel, 1)

	stats, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, stats.XP, res.TotalXP)
	assert.Contains(t, stats.Achievements, "streak_7")
}

func TestEngine_DerivedCounters(t *testing.T) {
	ctx := context.Background()
	repo := newStatsRepo(t)
	e := NewEngine(repo, goalSet{}, nil, nil)

	// Saturday 2026-03-07 early morning, Sunday night
	_, err := e.RecordCompletion(ctx, completion("u1", time.Date(2026, 3, 7, 6, 0, 0, 0, time.UTC), time.Hour))
	require.NoError(t, err)
	_, err = e.RecordCompletion(ctx, completion("u1", time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC), 30*time.Minute))
	require.NoError(t, err)
	_, err = e.RecordCompletion(ctx, completion("u1", time.Date(2026, 3, 9, 2, 0, 0, 0, time.UTC), 2*time.Hour))
	require.NoError(t, err)

	stats, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.EarlyBirdSessions)
	assert.Equal(t, 1, stats.NightOwlSessions)
	assert.Equal(t, 1, stats.MidnightSessions)
	assert.Equal(t, 2, stats.MorningSessions)
	assert.Equal(t, 1, stats.WeekendWeeks)
	assert.Equal(t, int64(7200), stats.LongestSessionDuration)
	assert.True(t, stats.BeatPersonalBest)
	assert.Equal(t, []string{"Reading"}, stats.ActivityTypes)
}

func TestEngine_PersonalBestFlagOnlyUntilEarned(t *testing.T) {
	ctx := context.Background()
	repo := newStatsRepo(t)
	seed := models.NewUserStats("u1", "alice")
	seed.LongestSessionDuration = 1800
	seed.Achievements = []string{models.PersonalBestID}
	require.NoError(t, repo.Upsert(ctx, seed))

	e := NewEngine(repo, goalSet{}, nil, nil)
	_, err := e.RecordCompletion(ctx, completion("u1", day(2, 10), time.Hour))
	require.NoError(t, err)

	stats, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3600), stats.LongestSessionDuration)
	assert.False(t, stats.BeatPersonalBest)
}

func TestEngine_ChallengeBonusIsAdded(t *testing.T) {
	ctx := context.Background()
	repo := newStatsRepo(t)
	challenge := &fixedChallenge{bonus: 50}
	e := NewEngine(repo, goalSet{}, nil, challenge)

	res, err := e.RecordCompletion(ctx, completion("u1", day(2, 10), time.Hour))
	require.NoError(t, err)

	assert.Equal(t, []int64{10}, challenge.calls)
	assert.True(t, res.ChallengeCompleted)
	assert.Equal(t, int64(50), res.ChallengeBonus)
	assert.Equal(t, int64(60), res.TotalXP)

	stats, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(60), stats.XP)
	assert.Equal(t, int64(60), stats.WeeklyXPEarned["2026-W10"])
}
