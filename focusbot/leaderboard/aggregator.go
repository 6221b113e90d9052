package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/interfaces"
	"github.com/disgoorg/focus-bot/focusbot/leveling"
	"github.com/disgoorg/focus-bot/focusbot/utils"
	lru "github.com/hashicorp/golang-lru"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodAll     Period = "all"
)

// PeriodStart returns the cutoff of period for now. PeriodAll has no cutoff.
func PeriodStart(period Period, now time.Time, loc *time.Location) time.Time {
	switch period {
	case PeriodDaily:
		return utils.StartOfDay(now, loc)
	case PeriodWeekly:
		return utils.StartOfISOWeek(now, loc)
	case PeriodMonthly:
		return utils.StartOfMonth(now, loc)
	}
	return time.Time{}
}

type Query struct {
	Since   time.Time
	GuildID string
	Limit   int
}

type DurationEntry struct {
	UserID   string
	Username string
	Duration int64 // seconds
	Sessions int
}

type XPEntry struct {
	UserID   string
	Username string
	XP       int64
	Level    int
}

type cachedBoard struct {
	value     interface{}
	timestamp time.Time
}

// Aggregator builds leaderboards for display. Results are cached briefly and
// may lag behind in-flight completions.
type Aggregator struct {
	log   interfaces.CompletedLog
	stats interfaces.StatsStore
	calc  *leveling.Calculator
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewAggregator(log interfaces.CompletedLog, stats interfaces.StatsStore) *Aggregator {
	cache, _ := lru.New(config.LeaderboardCacheSize)
	return &Aggregator{
		log:   log,
		stats: stats,
		calc:  leveling.Default,
		cache: cache,
		ttl:   config.LeaderboardCacheExpiration,
		now:   time.Now,
	}
}

func (a *Aggregator) cached(key string, load func() (interface{}, error)) (interface{}, error) {
	if v, ok := a.cache.Get(key); ok {
		if c, ok := v.(cachedBoard); ok && a.now().Sub(c.timestamp) < a.ttl {
			return c.value, nil
		}
	}

	value, err := load()
	if err != nil {
		return nil, err
	}
	a.cache.Add(key, cachedBoard{value: value, timestamp: a.now()})
	return value, nil
}

// Purge drops every cached board.
func (a *Aggregator) Purge() {
	a.cache.Purge()
}

// TopByDuration sums completed sessions per user since q.Since. Users with
// equal totals keep the order in which they first appear in the log.
func (a *Aggregator) TopByDuration(ctx context.Context, q Query) ([]DurationEntry, error) {
	key := fmt.Sprintf("duration:%d:%s:%d", q.Since.Unix(), q.GuildID, q.Limit)
	v, err := a.cached(key, func() (interface{}, error) {
		sessions, err := a.log.ListCompletedSince(ctx, q.Since, q.GuildID)
		if err != nil {
			return nil, fmt.Errorf("failed to load completed sessions: %w", err)
		}

		index := make(map[string]int)
		var entries []DurationEntry
		for _, s := range sessions {
			i, ok := index[s.UserID]
			if !ok {
				i = len(entries)
				index[s.UserID] = i
				entries = append(entries, DurationEntry{UserID: s.UserID})
			}
			entries[i].Username = s.Username
			entries[i].Duration += s.Duration
			entries[i].Sessions++
		}

		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Duration > entries[j].Duration
		})
		return truncate(entries, q.Limit), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]DurationEntry), nil
}

// TopByWeeklyXP ranks users by xp earned during weekKey.
func (a *Aggregator) TopByWeeklyXP(ctx context.Context, weekKey string, limit int) ([]XPEntry, error) {
	v, err := a.cached("weekly:"+weekKey+fmt.Sprintf(":%d", limit), func() (interface{}, error) {
		all, err := a.stats.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load stats: %w", err)
		}

		var entries []XPEntry
		for _, s := range all {
			xp := s.WeeklyXPEarned[weekKey]
			if xp <= 0 {
				continue
			}
			entries = append(entries, XPEntry{UserID: s.UserID, Username: s.Username, XP: xp, Level: a.calc.LevelForXP(s.XP)})
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].XP > entries[j].XP
		})
		return truncate(entries, limit), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]XPEntry), nil
}

// TopByTotalXP ranks users by all-time xp.
func (a *Aggregator) TopByTotalXP(ctx context.Context, limit int) ([]XPEntry, error) {
	v, err := a.cached(fmt.Sprintf("total:%d", limit), func() (interface{}, error) {
		top, err := a.stats.ListTopByXP(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to load stats: %w", err)
		}
		entries := make([]XPEntry, 0, len(top))
		for _, s := range top {
			entries = append(entries, XPEntry{UserID: s.UserID, Username: s.Username, XP: s.XP, Level: a.calc.LevelForXP(s.XP)})
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]XPEntry), nil
}

func truncate[T any](entries []T, limit int) []T {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
