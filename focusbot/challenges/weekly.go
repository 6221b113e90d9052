package challenges

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/focusbot/interfaces"
	"github.com/disgoorg/focus-bot/focusbot/utils"
)

// Tracker maintains the community challenge of the current ISO week.
type Tracker struct {
	store    interfaces.ChallengeStore
	loc      *time.Location
	targetXP int64
	bonusXP  int64
	topSize  int
}

func NewTracker(store interfaces.ChallengeStore, loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.UTC
	}
	return &Tracker{
		store:    store,
		loc:      loc,
		targetXP: config.WeeklyChallengeTargetXP,
		bonusXP:  config.WeeklyChallengeBonusXP,
		topSize:  config.WeeklyChallengeTopSize,
	}
}

func (t *Tracker) template(now time.Time) *models.WeeklyChallenge {
	start := utils.StartOfISOWeek(now, t.loc)
	return &models.WeeklyChallenge{
		WeekKey:      utils.WeekKey(now, t.loc),
		StartsAt:     start,
		EndsAt:       start.AddDate(0, 0, 7),
		TargetXP:     t.targetXP,
		BonusXP:      t.bonusXP,
		Participants: make(map[string]int64),
	}
}

// RecordXP adds xp to the user's weekly total. The bonus is granted only on
// the call that moves the user from below the target to at or above it.
func (t *Tracker) RecordXP(ctx context.Context, userID string, xp int64, now time.Time) (int64, bool, error) {
	if xp <= 0 {
		return 0, false, nil
	}

	var (
		bonus     int64
		completed bool
	)
	challenge, err := t.store.Mutate(ctx, t.template(now), func(c *models.WeeklyChallenge) error {
		before := c.Participants[userID]
		after := before + xp
		c.Participants[userID] = after

		if before < c.TargetXP && after >= c.TargetXP && !c.HasCompleted(userID) {
			c.Completed = append(c.Completed, userID)
			bonus = c.BonusXP
			completed = true
		}
		c.TopEarners = topEarners(c.Participants, t.topSize)
		return nil
	})
	if err != nil {
		return 0, false, fmt.Errorf("failed to record weekly xp: %w", err)
	}

	if completed {
		slog.Info("Weekly challenge completed",
			slog.String("type", "sys"),
			slog.String("user_id", userID),
			slog.String("week", challenge.WeekKey),
			slog.Int64("bonus", bonus))
	}
	return bonus, completed, nil
}

// Current returns the challenge of the week containing now. A week nobody has
// touched yet is returned unsaved.
func (t *Tracker) Current(ctx context.Context, now time.Time) (*models.WeeklyChallenge, error) {
	tmpl := t.template(now)
	challenge, err := t.store.Get(ctx, tmpl.WeekKey)
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return tmpl, nil
	}
	return challenge, nil
}

func topEarners(participants map[string]int64, n int) []models.ChallengeEntry {
	entries := make([]models.ChallengeEntry, 0, len(participants))
	for userID, xp := range participants {
		entries = append(entries, models.ChallengeEntry{UserID: userID, XP: xp})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].XP != entries[j].XP {
			return entries[i].XP > entries[j].XP
		}
		return entries[i].UserID < entries[j].UserID
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
