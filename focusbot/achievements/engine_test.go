package achievements

import (
	"context"
	"testing"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/database"
	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/focusbot/database/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func TestCatalog_Consistent(t *testing.T) {
	e := NewEngine(nil, nil)
	seen := make(map[string]bool)

	for _, def := range Catalog() {
		assert.False(t, seen[def.ID], "duplicate id %s", def.ID)
		seen[def.ID] = true
		assert.Positive(t, def.Threshold, def.ID)
		if def.Kind == KindCustom {
			_, ok := e.metrics[def.ID]
			assert.True(t, ok, "custom definition %s has no metric", def.ID)
		}
	}
	assert.Len(t, seen, 49)
}

func TestEngine_ApplyIsIdempotent(t *testing.T) {
	e := NewEngine(nil, nil)
	stats := models.NewUserStats("u1", "alice")
	stats.TotalSessions = 1
	stats.TotalDuration = 3600

	unlocked := e.Apply(stats, testNow)
	assert.ElementsMatch(t, []string{"first_session", "hours_1"}, unlocked)
	assert.Equal(t, int64(20), stats.XP)
	assert.Equal(t, testNow, stats.AchievementsUnlockedAt["first_session"])

	assert.Empty(t, e.Apply(stats, testNow.Add(time.Hour)))
	assert.Equal(t, int64(20), stats.XP)
	assert.Equal(t, testNow, stats.AchievementsUnlockedAt["first_session"], "unlock time is stamped once")
}

func TestEngine_ApplyReachesFixpoint(t *testing.T) {
	e := NewEngine(nil, nil)
	stats := models.NewUserStats("u1", "alice")
	stats.TotalSessions = 100
	stats.TotalDuration = 100 * 3600
	stats.CurrentStreak = 14
	stats.LongestStreak = 14
	stats.ActivityTypes = []string{"a", "b", "c", "d", "e"}
	stats.LongestSessionDuration = 4 * 3600

	unlocked := e.Apply(stats, testNow)

	// 5 session + 5 hour + 3 streak + 2 explorer + 3 marathon tiers unlock from
	// the stats alone; the collector tier only from their count.
	assert.Contains(t, unlocked, "collector_10")
	assert.Contains(t, unlocked, "level_5", "rewards push the level over a tier")
	assert.NotContains(t, unlocked, "collector_40")

	assert.Empty(t, e.Apply(stats, testNow))
}

func TestEngine_PersonalBestIsOneShot(t *testing.T) {
	e := NewEngine(nil, nil)
	stats := models.NewUserStats("u1", "alice")
	stats.Achievements = []string{"first_session"}
	stats.BeatPersonalBest = true

	unlocked := e.Apply(stats, testNow)
	assert.Equal(t, []string{"personal_best"}, unlocked)
	assert.False(t, stats.BeatPersonalBest)
}

func TestEngine_EvaluatePersists(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.InitializeSchema(ctx))
	repo := repositories.NewStatsRepository(db.BunDB())

	e := NewEngine(repo, nil)
	e.now = func() time.Time { return testNow }

	none, err := e.Evaluate(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, none)

	stats := models.NewUserStats("u1", "alice")
	stats.TotalSessions = 10
	require.NoError(t, repo.Upsert(ctx, stats))

	first, err := e.Evaluate(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"first_session", "sessions_10"}, first)

	second, err := e.Evaluate(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, second)

	saved, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(35), saved.XP)
	assert.ElementsMatch(t, []string{"first_session", "sessions_10"}, saved.Achievements)
}

func TestEngine_Progress(t *testing.T) {
	e := NewEngine(nil, nil)
	stats := models.NewUserStats("u1", "alice")
	stats.TotalSessions = 5

	var sessions10 Progress
	for _, p := range e.Progress(stats) {
		if p.Definition.ID == "sessions_10" {
			sessions10 = p
		}
	}
	assert.Equal(t, int64(5), sessions10.Current)
	assert.False(t, sessions10.Unlocked)
	assert.InDelta(t, 50, sessions10.Percent(), 0.001)
}
