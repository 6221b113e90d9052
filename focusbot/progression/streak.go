package progression

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/focusbot/interfaces"
	"github.com/disgoorg/focus-bot/focusbot/utils"
)

// nextStreak computes the streak after a session ending at end.
//
// A session on the same day as the last one keeps the streak. The next day
// extends it. A longer gap keeps it only when every day in between has a
// session or a daily goal; those bridge days count toward the streak.
// Sessions logged for a day before the last session leave it untouched.
func nextStreak(ctx context.Context, stats *models.UserStats, end time.Time, loc *time.Location, goals interfaces.GoalChecker) (int, error) {
	if stats.LastSessionAt == nil || stats.CurrentStreak == 0 {
		return 1, nil
	}

	lastDay := utils.StartOfDay(*stats.LastSessionAt, loc)
	today := utils.StartOfDay(end, loc)

	switch {
	case !today.After(lastDay):
		return stats.CurrentStreak, nil
	case lastDay.AddDate(0, 0, 1).Equal(today):
		return stats.CurrentStreak + 1, nil
	}

	gap := utils.DaysBetween(lastDay, today, loc)
	for _, day := range gap {
		if stats.SessionsPerDay[day] > 0 {
			continue
		}
		if goals == nil {
			return 1, nil
		}
		ok, err := goals.HasGoal(ctx, stats.UserID, day)
		if err != nil {
			return 0, fmt.Errorf("failed to check goal for %s: %w", day, err)
		}
		if !ok {
			return 1, nil
		}
	}
	return stats.CurrentStreak + len(gap) + 1, nil
}
