package models

import (
	"time"

	"github.com/uptrace/bun"
)

// DailyGoal is a goal a user recorded for one calendar day. A day with a goal
// keeps a streak alive even without a completed session.
type DailyGoal struct {
	bun.BaseModel `bun:"table:daily_goals,alias:dg"`

	ID        int64     `bun:"id,pk,autoincrement"`
	UserID    string    `bun:"user_id,notnull,unique:daily_goals_user_day"`
	Day       string    `bun:"day,notnull,unique:daily_goals_user_day"` // 2006-01-02
	Goal      string    `bun:"goal,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
