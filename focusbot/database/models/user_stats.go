package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PersonalBestID is the one-shot achievement BeatPersonalBest feeds. The flag
// is only raised while the achievement is missing.
const PersonalBestID = "personal_best"

// UserStats is the progression document of one user. It is only ever moved
// forward by the progression engine, once per completed session.
type UserStats struct {
	bun.BaseModel `bun:"table:user_stats,alias:ust"`

	UserID   string `bun:"user_id,pk"`
	Username string `bun:"username,notnull"`

	// Core Stats
	TotalSessions  int64      `bun:"total_sessions,notnull,default:0"`
	TotalDuration  int64      `bun:"total_duration,notnull,default:0"` // seconds
	CurrentStreak  int        `bun:"current_streak,notnull,default:0"`
	LongestStreak  int        `bun:"longest_streak,notnull,default:0"`
	LastSessionAt  *time.Time `bun:"last_session_at"`
	FirstSessionAt *time.Time `bun:"first_session_at"`
	XP             int64      `bun:"xp,notnull,default:0"`

	// Achievements
	Achievements           []string             `bun:"achievements,type:jsonb"`
	AchievementsUnlockedAt map[string]time.Time `bun:"achievements_unlocked_at,type:jsonb"`
	BeatPersonalBest       bool                 `bun:"beat_personal_best,notnull,default:false"`

	// Activity breakdown
	SessionsPerDay         map[string]int `bun:"sessions_per_day,type:jsonb"`
	ActivityTypes          []string       `bun:"activity_types,type:jsonb"`
	LongestSessionDuration int64          `bun:"longest_session_duration,notnull,default:0"`

	// Time of day
	EarlyBirdSessions int `bun:"early_bird_sessions,notnull,default:0"`
	NightOwlSessions  int `bun:"night_owl_sessions,notnull,default:0"`
	MidnightSessions  int `bun:"midnight_sessions,notnull,default:0"`
	MorningSessions   int `bun:"morning_sessions,notnull,default:0"`

	// Calendar coverage
	WeekDays      map[string][]int `bun:"week_days,type:jsonb"`
	MonthDays     map[string][]int `bun:"month_days,type:jsonb"`
	WeekendWeeks  int              `bun:"weekend_weeks,notnull,default:0"`
	PerfectWeeks  int              `bun:"perfect_weeks,notnull,default:0"`
	PerfectMonths int              `bun:"perfect_months,notnull,default:0"`

	WeeklyXPEarned   map[string]int64 `bun:"weekly_xp_earned,type:jsonb"`
	LastCompletionID string           `bun:"last_completion_id"`

	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// NewUserStats returns an empty stats document with every map initialized.
func NewUserStats(userID, username string) *UserStats {
	s := &UserStats{UserID: userID, Username: username}
	s.EnsureMaps()
	return s
}

// EnsureMaps initializes nil maps after a load.
func (s *UserStats) EnsureMaps() {
	if s.AchievementsUnlockedAt == nil {
		s.AchievementsUnlockedAt = make(map[string]time.Time)
	}
	if s.SessionsPerDay == nil {
		s.SessionsPerDay = make(map[string]int)
	}
	if s.WeekDays == nil {
		s.WeekDays = make(map[string][]int)
	}
	if s.MonthDays == nil {
		s.MonthDays = make(map[string][]int)
	}
	if s.WeeklyXPEarned == nil {
		s.WeeklyXPEarned = make(map[string]int64)
	}
}

func (s *UserStats) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can evaluate changes without touching the original.
func (s *UserStats) Clone() *UserStats {
	c := *s
	c.Achievements = append([]string(nil), s.Achievements...)
	c.ActivityTypes = append([]string(nil), s.ActivityTypes...)
	c.AchievementsUnlockedAt = make(map[string]time.Time, len(s.AchievementsUnlockedAt))
	for k, v := range s.AchievementsUnlockedAt {
		c.AchievementsUnlockedAt[k] = v
	}
	c.SessionsPerDay = make(map[string]int, len(s.SessionsPerDay))
	for k, v := range s.SessionsPerDay {
		c.SessionsPerDay[k] = v
	}
	c.WeekDays = make(map[string][]int, len(s.WeekDays))
	for k, v := range s.WeekDays {
		c.WeekDays[k] = append([]int(nil), v...)
	}
	c.MonthDays = make(map[string][]int, len(s.MonthDays))
	for k, v := range s.MonthDays {
		c.MonthDays[k] = append([]int(nil), v...)
	}
	c.WeeklyXPEarned = make(map[string]int64, len(s.WeeklyXPEarned))
	for k, v := range s.WeeklyXPEarned {
		c.WeeklyXPEarned[k] = v
	}
	if s.LastSessionAt != nil {
		t := *s.LastSessionAt
		c.LastSessionAt = &t
	}
	if s.FirstSessionAt != nil {
		t := *s.FirstSessionAt
		c.FirstSessionAt = &t
	}
	return &c
}
