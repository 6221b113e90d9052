package progression

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/focusbot/interfaces"
	"github.com/disgoorg/focus-bot/focusbot/leveling"
	"github.com/disgoorg/focus-bot/focusbot/utils"
)

// Completion is one finished session handed to the engine.
type Completion struct {
	UserID       string
	Username     string
	CompletionID string
	Duration     time.Duration
	Activity     string
	Intensity    int
	Start        time.Time
	End          time.Time
}

type Result struct {
	XPGained           int64 // session xp plus streak bonus
	AchievementXP      int64
	ChallengeBonus     int64
	TotalXP            int64
	OldLevel           int
	NewLevel           int
	LeveledUp          bool
	Streak             int
	StreakMilestone    int
	Unlocked           []string
	ChallengeCompleted bool
	Duplicate          bool
}

type Engine struct {
	stats        interfaces.StatsStore
	goals        interfaces.GoalChecker
	achievements interfaces.AchievementApplier
	challenges   interfaces.ChallengeRecorder
	calc         *leveling.Calculator
	loc          *time.Location
	now          func() time.Time
}

type Option func(*Engine)

func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

func WithCalculator(calc *leveling.Calculator) Option {
	return func(e *Engine) { e.calc = calc }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(stats interfaces.StatsStore, goals interfaces.GoalChecker, achievements interfaces.AchievementApplier, challenges interfaces.ChallengeRecorder, opts ...Option) *Engine {
	e := &Engine{
		stats:        stats,
		goals:        goals,
		achievements: achievements,
		challenges:   challenges,
		calc:         leveling.Default,
		loc:          time.UTC,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

// RecordCompletion applies one completed session to the user's stats.
// Re-applying the same CompletionID is a no-op that reports the stored state.
func (e *Engine) RecordCompletion(ctx context.Context, c Completion) (*Result, error) {
	stats, err := e.stats.Get(ctx, c.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	if stats == nil {
		stats = models.NewUserStats(c.UserID, c.Username)
	}
	stats.EnsureMaps()

	if c.CompletionID != "" && stats.LastCompletionID == c.CompletionID {
		level := e.calc.LevelForXP(stats.XP)
		return &Result{
			TotalXP:   stats.XP,
			OldLevel:  level,
			NewLevel:  level,
			Streak:    stats.CurrentStreak,
			Duplicate: true,
		}, nil
	}

	oldLevel := e.calc.LevelForXP(stats.XP)
	prevStreak := stats.CurrentStreak

	streak, err := nextStreak(ctx, stats, c.End, e.loc, e.goals)
	if err != nil {
		return nil, err
	}

	sessionXP := e.calc.SessionXP(c.Duration, c.Intensity)
	bonus, milestone := e.calc.StreakBonus(prevStreak, streak)
	earned := sessionXP + bonus

	e.applySession(stats, c, streak)
	stats.XP += earned
	weekKey := utils.WeekKey(c.End, e.loc)
	stats.WeeklyXPEarned[weekKey] += earned
	stats.LastCompletionID = c.CompletionID
	if c.Username != "" {
		stats.Username = c.Username
	}

	xpBeforeAchievements := stats.XP
	var unlocked []string
	if e.achievements != nil {
		unlocked = e.achievements.Apply(stats, e.now())
	}
	achievementXP := stats.XP - xpBeforeAchievements
	stats.WeeklyXPEarned[weekKey] += achievementXP

	if err := e.stats.Upsert(ctx, stats); err != nil {
		return nil, fmt.Errorf("failed to save stats: %w", err)
	}

	result := &Result{
		XPGained:        earned,
		AchievementXP:   achievementXP,
		OldLevel:        oldLevel,
		Streak:          streak,
		StreakMilestone: milestone,
		Unlocked:        unlocked,
	}

	if e.challenges != nil && earned > 0 {
		challengeBonus, completed, err := e.challenges.RecordXP(ctx, c.UserID, earned, c.End)
		if err != nil {
			slog.Error("Failed to record weekly challenge xp",
				slog.String("type", "sys"),
				slog.String("user_id", c.UserID),
				slog.Any("error", err))
		}
		result.ChallengeCompleted = completed
		if challengeBonus > 0 {
			updated, err := e.stats.AddXP(ctx, c.UserID, weekKey, challengeBonus)
			if err != nil {
				slog.Error("Failed to award weekly challenge bonus",
					slog.String("type", "sys"),
					slog.String("user_id", c.UserID),
					slog.Int64("bonus", challengeBonus),
					slog.Any("error", err))
			} else {
				result.ChallengeBonus = challengeBonus
				stats.XP = updated.XP
			}
		}
	}

	result.TotalXP = stats.XP
	result.NewLevel = e.calc.LevelForXP(stats.XP)
	result.LeveledUp = result.NewLevel > oldLevel

	slog.Info("Session recorded",
		slog.String("type", "sys"),
		slog.String("user_id", c.UserID),
		slog.Duration("duration", c.Duration),
		slog.Int64("xp", earned),
		slog.Int("streak", streak),
		slog.Int("unlocked", len(unlocked)))

	return result, nil
}

// applySession updates every counter derived from one session.
func (e *Engine) applySession(stats *models.UserStats, c Completion, streak int) {
	secs := int64(c.Duration / time.Second)

	stats.TotalSessions++
	stats.TotalDuration += secs

	stats.CurrentStreak = streak
	if streak > stats.LongestStreak {
		stats.LongestStreak = streak
	}

	if stats.FirstSessionAt == nil || c.Start.Before(*stats.FirstSessionAt) {
		first := c.Start
		stats.FirstSessionAt = &first
	}
	if stats.LastSessionAt == nil || c.End.After(*stats.LastSessionAt) {
		last := c.End
		stats.LastSessionAt = &last
	}

	stats.SessionsPerDay[utils.DayKey(c.End, e.loc)]++
	addActivity(stats, c.Activity)

	if secs > stats.LongestSessionDuration {
		if stats.LongestSessionDuration > 0 && !stats.HasAchievement(models.PersonalBestID) {
			stats.BeatPersonalBest = true
		}
		stats.LongestSessionDuration = secs
	}

	hour := c.Start.In(e.loc).Hour()
	switch {
	case hour < 5:
		stats.MidnightSessions++
	case hour < 7:
		stats.EarlyBirdSessions++
	case hour >= 23:
		stats.NightOwlSessions++
	}
	if hour < 10 && c.Duration >= time.Hour {
		stats.MorningSessions++
	}

	e.applyCoverage(stats, c.End)
}

func (e *Engine) applyCoverage(stats *models.UserStats, end time.Time) {
	local := end.In(e.loc)

	weekKey := utils.WeekKey(local, e.loc)
	weekday := utils.ISOWeekday(local)
	if days, added := addDay(stats.WeekDays[weekKey], weekday); added {
		stats.WeekDays[weekKey] = days
		if (weekday == 6 && containsDay(days, 7)) || (weekday == 7 && containsDay(days, 6)) {
			stats.WeekendWeeks++
		}
		if len(days) == 7 {
			stats.PerfectWeeks++
		}
	}

	monthKey := utils.MonthKey(local, e.loc)
	if days, added := addDay(stats.MonthDays[monthKey], local.Day()); added {
		stats.MonthDays[monthKey] = days
		if len(days) == utils.DaysInMonth(local) {
			stats.PerfectMonths++
		}
	}
}

func addActivity(stats *models.UserStats, activity string) {
	activity = strings.TrimSpace(activity)
	if activity == "" {
		return
	}
	for _, a := range stats.ActivityTypes {
		if strings.EqualFold(a, activity) {
			return
		}
	}
	stats.ActivityTypes = append(stats.ActivityTypes, activity)
}

func addDay(days []int, day int) ([]int, bool) {
	if containsDay(days, day) {
		return days, false
	}
	return append(days, day), true
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
