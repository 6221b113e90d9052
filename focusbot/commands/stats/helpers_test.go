package stats

import (
	"testing"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/achievements"
	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/focusbot/leaderboard"
	"github.com/stretchr/testify/assert"
)

func TestPageCount(t *testing.T) {
	tests := []struct{ n, size, want int }{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{49, 8, 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pageCount(tt.n, tt.size), "n=%d size=%d", tt.n, tt.size)
	}
}

func TestFilterProgress(t *testing.T) {
	progress := []achievements.Progress{
		{Definition: achievements.Definition{ID: "a"}, Unlocked: true},
		{Definition: achievements.Definition{ID: "b"}},
		{Definition: achievements.Definition{ID: "c"}, Unlocked: true},
	}
	assert.Len(t, filterProgress(progress, ""), 3)
	assert.Len(t, filterProgress(progress, "all"), 3)
	assert.Len(t, filterProgress(progress, "unlocked"), 2)
	locked := filterProgress(progress, "locked")
	assert.Len(t, locked, 1)
	assert.Equal(t, "b", locked[0].Definition.ID)
}

func TestRankPrefixAndRows(t *testing.T) {
	assert.Equal(t, "🥇", rankPrefix(1))
	assert.Equal(t, "`#4`", rankPrefix(4))

	rows := durationRows([]leaderboard.DurationEntry{{Username: "alice", Duration: 5400, Sessions: 2}})
	assert.Equal(t, "1h 30m · 2 session(s)", rows[0].value)

	rows = xpRows([]leaderboard.XPEntry{{Username: "bob", XP: 1500, Level: 6}})
	assert.Equal(t, "1,500 XP · level 6", rows[0].value)
}

func TestBoardOptionError(t *testing.T) {
	tests := []struct {
		kind, period string
		wantErr      bool
	}{
		{boardTime, "", false},
		{boardTime, string(leaderboard.PeriodDaily), false},
		{boardWeeklyXP, "", false},
		{boardTotalXP, "", false},
		{boardWeeklyXP, string(leaderboard.PeriodMonthly), true},
		{boardTotalXP, string(leaderboard.PeriodAll), true},
	}
	for _, tt := range tests {
		msg := boardOptionError(tt.kind, tt.period)
		assert.Equal(t, tt.wantErr, msg != "", "kind=%s period=%s", tt.kind, tt.period)
	}
}

func TestChallengeEmbed(t *testing.T) {
	c := &models.WeeklyChallenge{
		WeekKey:      "2026-W10",
		EndsAt:       time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		TargetXP:     100,
		BonusXP:      50,
		Participants: map[string]int64{"u1": 40, "u2": 120},
		Completed:    []string{"u2"},
		TopEarners:   []models.ChallengeEntry{{UserID: "u2", XP: 120}, {UserID: "u1", XP: 40}},
	}

	e := challengeEmbed(c, "u1")
	assert.Contains(t, e.Fields[0].Value, "40 / 100 XP")
	assert.Contains(t, e.Fields[1].Value, "1. <@u2> · 120 XP")

	e = challengeEmbed(c, "u2")
	assert.Contains(t, e.Fields[0].Value, "Completed")

	empty := &models.WeeklyChallenge{WeekKey: "2026-W11", TargetXP: 100}
	empty.EnsureMaps()
	e = challengeEmbed(empty, "u1")
	assert.Equal(t, "No XP earned yet this week.", e.Fields[1].Value)
}
