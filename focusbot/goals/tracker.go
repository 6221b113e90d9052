package goals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/focusbot/interfaces"
	"github.com/disgoorg/focus-bot/focusbot/utils"
)

var (
	ErrEmptyGoal   = errors.New("goal cannot be empty")
	ErrGoalTooLong = fmt.Errorf("goal cannot be longer than %d characters", config.MaxGoalLength)
)

// Tracker records one goal per user per calendar day. A recorded goal keeps
// a streak alive on a day without a session.
type Tracker struct {
	store interfaces.GoalStore
	loc   *time.Location
}

func NewTracker(store interfaces.GoalStore, loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.UTC
	}
	return &Tracker{store: store, loc: loc}
}

// SetGoal replaces today's goal of userID.
func (t *Tracker) SetGoal(ctx context.Context, userID, text string, now time.Time) (*models.DailyGoal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyGoal
	}
	if utf8.RuneCountInString(text) > config.MaxGoalLength {
		return nil, ErrGoalTooLong
	}

	goal := &models.DailyGoal{
		UserID: userID,
		Day:    utils.DayKey(now, t.loc),
		Goal:   text,
	}
	if err := t.store.Upsert(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}
	return goal, nil
}

// Today returns the goal for the current day, or nil.
func (t *Tracker) Today(ctx context.Context, userID string, now time.Time) (*models.DailyGoal, error) {
	return t.store.Get(ctx, userID, utils.DayKey(now, t.loc))
}

func (t *Tracker) HasGoal(ctx context.Context, userID, day string) (bool, error) {
	return t.store.Exists(ctx, userID, day)
}
