package models

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// CompletedSession is an immutable log entry written when a session finishes.
type CompletedSession struct {
	bun.BaseModel `bun:"table:completed_sessions,alias:cs"`

	ID           int64     `bun:"id,pk,autoincrement"`
	CompletionID string    `bun:"completion_id,notnull,unique"`
	UserID       string    `bun:"user_id,notnull"`
	Username     string    `bun:"username,notnull"`
	GuildID      string    `bun:"guild_id,notnull"`
	Activity     string    `bun:"activity,notnull"`
	Title        string    `bun:"title"`
	Description  string    `bun:"description"`
	Duration     int64     `bun:"duration,notnull"` // seconds
	Intensity    int       `bun:"intensity,notnull,default:0"`
	StartTime    time.Time `bun:"start_time,notnull"`
	EndTime      time.Time `bun:"end_time,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
}

// CompletionID derives the idempotency token of a session from its owner and start.
func CompletionID(userID string, start time.Time) string {
	return fmt.Sprintf("%s:%d", userID, start.UnixNano())
}
