package migration

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LegacySession is one document of the old "sessions" collection. Numbers
// were written by a JavaScript driver, so every counter decodes as float64.
type LegacySession struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"userId"`
	Username    string             `bson:"username"`
	GuildID     string             `bson:"guildId"`
	Activity    string             `bson:"activity"`
	Title       string             `bson:"title,omitempty"`
	Description string             `bson:"description,omitempty"`
	Duration    float64            `bson:"duration"` // seconds
	Intensity   float64            `bson:"intensity,omitempty"`
	StartTime   time.Time          `bson:"startTime"`
	EndTime     time.Time          `bson:"endTime"`
}

// LegacyStats is one document of the old "stats" collection.
type LegacyStats struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         string             `bson:"userId"`
	Username       string             `bson:"username"`
	TotalSessions  float64            `bson:"totalSessions"`
	TotalDuration  float64            `bson:"totalDuration"`
	CurrentStreak  float64            `bson:"currentStreak"`
	LongestStreak  float64            `bson:"longestStreak"`
	LastSessionAt  *time.Time         `bson:"lastSessionDate,omitempty"`
	FirstSessionAt *time.Time         `bson:"firstSessionDate,omitempty"`
	XP             float64            `bson:"xp"`

	Achievements           []string             `bson:"achievements"`
	AchievementsUnlockedAt map[string]time.Time `bson:"achievementsUnlockedAt,omitempty"`
	ActivityTypes          []string             `bson:"activityTypes"`
	SessionsPerDay         map[string]float64   `bson:"sessionsPerDay,omitempty"`
	LongestSessionDuration float64              `bson:"longestSessionDuration"`

	EarlyBirdSessions float64 `bson:"earlyBirdSessions"`
	NightOwlSessions  float64 `bson:"nightOwlSessions"`
	MidnightSessions  float64 `bson:"midnightSessions"`
	MorningSessions   float64 `bson:"morningSessions"`
	WeekendWeeks      float64 `bson:"weekendWeeks"`
	PerfectWeeks      float64 `bson:"perfectWeeks"`
	PerfectMonths     float64 `bson:"perfectMonths"`

	WeeklyXPEarned map[string]float64 `bson:"weeklyXpEarned,omitempty"`
}

// MigrationStats tracks migration progress and issues
type MigrationStats struct {
	Tables         map[string]*TableStats `json:"tables"`
	StartTime      time.Time              `json:"start_time"`
	EndTime        time.Time              `json:"end_time"`
	TotalErrors    int                    `json:"total_errors"`
	TotalSkipped   int                    `json:"total_skipped"`
	TotalProcessed int                    `json:"total_processed"`
}

// TableStats tracks stats for individual tables
type TableStats struct {
	TableName      string          `json:"table_name"`
	Processed      int             `json:"processed"`
	Successful     int             `json:"successful"`
	Skipped        int             `json:"skipped"`
	Errors         int             `json:"errors"`
	SkippedRecords []SkippedRecord `json:"skipped_records"`
	ErrorRecords   []ErrorRecord   `json:"error_records"`
}

// SkippedRecord tracks why a record was skipped
type SkippedRecord struct {
	Reason   string `json:"reason"`
	RecordID string `json:"record_id"`
}

type ErrorRecord struct {
	Error    string `json:"error"`
	RecordID string `json:"record_id"`
}
