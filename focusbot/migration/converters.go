package migration

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/focusbot/utils"
)

var (
	errMissingUser  = errors.New("missing user id")
	errMissingTimes = errors.New("missing start or end time")
	errNegative     = errors.New("negative duration")
)

func convertSession(ls LegacySession, now time.Time) (*models.CompletedSession, error) {
	userID := strings.TrimSpace(ls.UserID)
	if userID == "" {
		return nil, errMissingUser
	}
	if ls.StartTime.IsZero() || ls.EndTime.IsZero() {
		return nil, errMissingTimes
	}
	if ls.Duration < 0 {
		return nil, errNegative
	}

	activity := cleanseString(ls.Activity)
	if activity == "" {
		activity = config.DefaultActivity
	}

	start := ls.StartTime.UTC()
	return &models.CompletedSession{
		CompletionID: models.CompletionID(userID, start),
		UserID:       userID,
		Username:     cleanseString(ls.Username),
		GuildID:      ls.GuildID,
		Activity:     truncate(activity, config.MaxActivityLength),
		Title:        truncate(cleanseString(ls.Title), config.MaxTitleLength),
		Description:  cleanseString(ls.Description),
		Duration:     int64(ls.Duration),
		Intensity:    clampIntensity(ls.Intensity),
		StartTime:    start,
		EndTime:      ls.EndTime.UTC(),
		CreatedAt:    now,
	}, nil
}

func convertStats(ls LegacyStats, now time.Time) (*models.UserStats, error) {
	userID := strings.TrimSpace(ls.UserID)
	if userID == "" {
		return nil, errMissingUser
	}

	s := models.NewUserStats(userID, cleanseString(ls.Username))
	s.TotalSessions = int64(ls.TotalSessions)
	s.TotalDuration = int64(ls.TotalDuration)
	s.CurrentStreak = int(ls.CurrentStreak)
	s.LongestStreak = max(int(ls.LongestStreak), s.CurrentStreak)
	s.LastSessionAt = utcPtr(ls.LastSessionAt)
	s.FirstSessionAt = utcPtr(ls.FirstSessionAt)
	s.XP = max(int64(ls.XP), 0)

	s.Achievements = dedupe(ls.Achievements, false)
	for id, at := range ls.AchievementsUnlockedAt {
		s.AchievementsUnlockedAt[id] = at.UTC()
	}
	s.ActivityTypes = dedupe(ls.ActivityTypes, true)
	s.LongestSessionDuration = int64(ls.LongestSessionDuration)
	for day, n := range ls.SessionsPerDay {
		if _, err := time.Parse(utils.DayLayout, day); err != nil {
			continue
		}
		s.SessionsPerDay[day] = int(n)
	}

	s.EarlyBirdSessions = int(ls.EarlyBirdSessions)
	s.NightOwlSessions = int(ls.NightOwlSessions)
	s.MidnightSessions = int(ls.MidnightSessions)
	s.MorningSessions = int(ls.MorningSessions)
	s.WeekendWeeks = int(ls.WeekendWeeks)
	s.PerfectWeeks = int(ls.PerfectWeeks)
	s.PerfectMonths = int(ls.PerfectMonths)

	for week, xp := range ls.WeeklyXPEarned {
		s.WeeklyXPEarned[week] = int64(xp)
	}

	s.CreatedAt = now
	s.UpdatedAt = now
	return s, nil
}

// cleanseString drops NUL and control runes and repairs invalid UTF-8.
func cleanseString(s string) string {
	if s == "" {
		return ""
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

func clampIntensity(v float64) int {
	i := int(v)
	if i < 1 || i > 5 {
		return 0
	}
	return i
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

// dedupe keeps first occurrences, optionally comparing case-insensitively.
func dedupe(values []string, fold bool) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = cleanseString(v)
		if v == "" {
			continue
		}
		key := v
		if fold {
			key = strings.ToLower(v)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
