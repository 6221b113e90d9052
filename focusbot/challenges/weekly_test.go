package challenges

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/database"
	"github.com/disgoorg/focus-bot/focusbot/database/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)

func newTracker(t *testing.T) *Tracker {
	t.Helper()
	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.InitializeSchema(context.Background()))
	return NewTracker(repositories.NewChallengeRepository(db.BunDB()), time.UTC)
}

func TestTracker_BonusOnlyOnCrossing(t *testing.T) {
	ctx := context.Background()
	tracker := newTracker(t)

	steps := []struct {
		xp            int64
		wantBonus     int64
		wantCompleted bool
	}{
		{60, 0, false},
		{30, 0, false},
		{10, 50, true},
		{40, 0, false},
	}
	for i, step := range steps {
		bonus, completed, err := tracker.RecordXP(ctx, "u1", step.xp, monday.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, step.wantBonus, bonus, "step %d", i)
		assert.Equal(t, step.wantCompleted, completed, "step %d", i)
	}

	current, err := tracker.Current(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, "2026-W42", current.WeekKey)
	assert.Equal(t, int64(140), current.Participants["u1"])
	assert.Equal(t, []string{"u1"}, current.Completed)
}

func TestTracker_NewWeekStartsFresh(t *testing.T) {
	ctx := context.Background()
	tracker := newTracker(t)

	_, _, err := tracker.RecordXP(ctx, "u1", 120, monday)
	require.NoError(t, err)

	bonus, completed, err := tracker.RecordXP(ctx, "u1", 120, monday.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Equal(t, int64(50), bonus)
	assert.True(t, completed)

	next, err := tracker.Current(ctx, monday.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Equal(t, "2026-W43", next.WeekKey)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), next.StartsAt.UTC())
}

func TestTracker_TopEarners(t *testing.T) {
	ctx := context.Background()
	tracker := newTracker(t)

	for i := 0; i < 12; i++ {
		_, _, err := tracker.RecordXP(ctx, fmt.Sprintf("u%02d", i), int64(10*(i+1)), monday)
		require.NoError(t, err)
	}

	current, err := tracker.Current(ctx, monday)
	require.NoError(t, err)
	require.Len(t, current.TopEarners, 10)
	assert.Equal(t, "u11", current.TopEarners[0].UserID)
	assert.Equal(t, int64(120), current.TopEarners[0].XP)
	for i := 1; i < len(current.TopEarners); i++ {
		assert.GreaterOrEqual(t, current.TopEarners[i-1].XP, current.TopEarners[i].XP)
	}
}

func TestTracker_CurrentUntouchedWeek(t *testing.T) {
	tracker := newTracker(t)

	current, err := tracker.Current(context.Background(), monday)
	require.NoError(t, err)
	assert.Equal(t, int64(100), current.TargetXP)
	assert.Empty(t, current.Participants)
}
