package achievements

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/focusbot/interfaces"
	"github.com/disgoorg/focus-bot/focusbot/leveling"
)

const personalBestID = models.PersonalBestID

type Engine struct {
	stats   interfaces.StatsStore
	calc    *leveling.Calculator
	metrics map[string]Metric
	now     func() time.Time
}

func NewEngine(stats interfaces.StatsStore, calc *leveling.Calculator) *Engine {
	if calc == nil {
		calc = leveling.Default
	}
	return &Engine{
		stats:   stats,
		calc:    calc,
		metrics: customMetrics(calc),
		now:     time.Now,
	}
}

// Apply grants every definition stats now satisfies and returns the new ids.
// Rewards count toward level and meta tiers in the same call, so evaluation
// repeats until no further definition unlocks.
func (e *Engine) Apply(stats *models.UserStats, now time.Time) []string {
	stats.EnsureMaps()

	var unlocked []string
	for {
		progressed := false
		for _, def := range catalog {
			if stats.HasAchievement(def.ID) {
				continue
			}
			value, ok := e.metricFor(def, stats)
			if !ok || value < def.Threshold {
				continue
			}

			stats.Achievements = append(stats.Achievements, def.ID)
			stats.AchievementsUnlockedAt[def.ID] = now
			stats.XP += def.XPReward
			if def.ID == personalBestID {
				stats.BeatPersonalBest = false
			}
			unlocked = append(unlocked, def.ID)
			progressed = true
		}
		if !progressed {
			return unlocked
		}
	}
}

// Evaluate loads the user's stats, applies newly satisfied achievements and
// persists them. It returns nothing for a user without stats.
func (e *Engine) Evaluate(ctx context.Context, userID string) ([]string, error) {
	stats, err := e.stats.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	if stats == nil {
		return nil, nil
	}

	updated := stats.Clone()
	unlocked := e.Apply(updated, e.now())
	if len(unlocked) == 0 {
		return nil, nil
	}

	if err := e.stats.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save achievements: %w", err)
	}

	slog.Info("Achievements unlocked",
		slog.String("type", "sys"),
		slog.String("user_id", userID),
		slog.Any("achievements", unlocked))
	return unlocked, nil
}

type Progress struct {
	Definition Definition
	Current    int64
	Unlocked   bool
	UnlockedAt *time.Time
}

// Percent is the completion of the definition clamped to [0, 100].
func (p Progress) Percent() float64 {
	if p.Unlocked || p.Definition.Threshold <= 0 {
		return 100
	}
	pct := float64(p.Current) / float64(p.Definition.Threshold) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// Progress lists the whole catalog with the user's standing on each entry.
func (e *Engine) Progress(stats *models.UserStats) []Progress {
	if stats == nil {
		stats = models.NewUserStats("", "")
	}

	progress := make([]Progress, 0, len(catalog))
	for _, def := range catalog {
		value, _ := e.metricFor(def, stats)
		p := Progress{Definition: def, Current: value, Unlocked: stats.HasAchievement(def.ID)}
		if at, ok := stats.AchievementsUnlockedAt[def.ID]; ok {
			at := at
			p.UnlockedAt = &at
		}
		progress = append(progress, p)
	}
	return progress
}

func (e *Engine) Catalog() []Definition {
	return Catalog()
}
