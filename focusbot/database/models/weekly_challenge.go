package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ChallengeEntry struct {
	UserID string `json:"user_id"`
	XP     int64  `json:"xp"`
}

// WeeklyChallenge is the community XP challenge for one ISO week.
type WeeklyChallenge struct {
	bun.BaseModel `bun:"table:weekly_challenges,alias:wc"`

	WeekKey      string           `bun:"week_key,pk"`
	StartsAt     time.Time        `bun:"starts_at,notnull"`
	EndsAt       time.Time        `bun:"ends_at,notnull"`
	TargetXP     int64            `bun:"target_xp,notnull"`
	BonusXP      int64            `bun:"bonus_xp,notnull"`
	Participants map[string]int64 `bun:"participants,type:jsonb"`
	Completed    []string         `bun:"completed,type:jsonb"`
	TopEarners   []ChallengeEntry `bun:"top_earners,type:jsonb"`
	CreatedAt    time.Time        `bun:"created_at,notnull"`
	UpdatedAt    time.Time        `bun:"updated_at,notnull"`
}

func (c *WeeklyChallenge) HasCompleted(userID string) bool {
	for _, id := range c.Completed {
		if id == userID {
			return true
		}
	}
	return false
}

func (c *WeeklyChallenge) EnsureMaps() {
	if c.Participants == nil {
		c.Participants = make(map[string]int64)
	}
}
