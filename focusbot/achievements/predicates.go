package achievements

import (
	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/focusbot/leveling"
)

// Metric reports the value a definition's threshold is compared against.
type Metric func(stats *models.UserStats) int64

func longestSession(s *models.UserStats) int64 { return s.LongestSessionDuration }

func countOf(field func(*models.UserStats) int) Metric {
	return func(s *models.UserStats) int64 { return int64(field(s)) }
}

// customMetrics builds the per-id registry for KindCustom definitions.
func customMetrics(calc *leveling.Calculator) map[string]Metric {
	level := func(s *models.UserStats) int64 { return int64(calc.LevelForXP(s.XP)) }
	unlocked := func(s *models.UserStats) int64 { return int64(len(s.Achievements)) }
	earlyBird := countOf(func(s *models.UserStats) int { return s.EarlyBirdSessions })
	nightOwl := countOf(func(s *models.UserStats) int { return s.NightOwlSessions })
	weekends := countOf(func(s *models.UserStats) int { return s.WeekendWeeks })

	return map[string]Metric{
		"marathon_2h": longestSession,
		"marathon_3h": longestSession,
		"marathon_4h": longestSession,
		"marathon_6h": longestSession,
		"personal_best": func(s *models.UserStats) int64 {
			if s.BeatPersonalBest {
				return 1
			}
			return 0
		},

		"early_bird_5":      earlyBird,
		"early_bird_25":     earlyBird,
		"night_owl_5":       nightOwl,
		"night_owl_25":      nightOwl,
		"midnight_oil_10":   countOf(func(s *models.UserStats) int { return s.MidnightSessions }),
		"morning_person_10": countOf(func(s *models.UserStats) int { return s.MorningSessions }),

		"weekend_warrior": weekends,
		"weekend_regular": weekends,
		"perfect_week":    countOf(func(s *models.UserStats) int { return s.PerfectWeeks }),
		"perfect_month":   countOf(func(s *models.UserStats) int { return s.PerfectMonths }),

		"level_5":   level,
		"level_10":  level,
		"level_25":  level,
		"level_50":  level,
		"level_100": level,

		"collector_10": unlocked,
		"collector_25": unlocked,
		"collector_40": unlocked,
	}
}

// metricFor resolves the value of def for stats. Unknown custom ids never unlock.
func (e *Engine) metricFor(def Definition, stats *models.UserStats) (int64, bool) {
	switch def.Kind {
	case KindSessions:
		return stats.TotalSessions, true
	case KindHours:
		return stats.TotalDuration / 3600, true
	case KindStreak:
		return int64(stats.CurrentStreak), true
	case KindActivities:
		return int64(len(stats.ActivityTypes)), true
	case KindCustom:
		metric, ok := e.metrics[def.ID]
		if !ok {
			return 0, false
		}
		return metric(stats), true
	}
	return 0, false
}
