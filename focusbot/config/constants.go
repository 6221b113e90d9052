package config

import "time"

// Application-wide constants organized by domain

// UI and Display Constants
const (
	// Pagination
	AchievementsPerPage = 8
	LeaderboardPageSize = 10

	// Colors
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	EmbedDefaultColor = 0x2B2D31

	// Rarity Colors
	RarityCommonColor    = 0x808080
	RarityUncommonColor  = 0x00FF00
	RarityRareColor      = 0x0000FF
	RarityEpicColor      = 0x800080
	RarityLegendaryColor = 0xFFD700
)

// Database and Performance Constants
const (
	// Timeouts
	DefaultQueryTimeout     = 30 * time.Second
	StatsQueryTimeout       = 10 * time.Second
	BatchQueryTimeout       = 30 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	TimerCallbackTimeout    = 30 * time.Second

	// Cache settings
	LeaderboardCacheExpiration = 1 * time.Minute
	LeaderboardCacheSize       = 256

	// Batch processing
	DefaultBatchSize = 500
)

// Focus session mechanics
const (
	// Voice automation
	DefaultAutoEndDelay  = 10 * time.Minute
	DefaultAutoPostDelay = 5 * time.Minute

	// Manual entries
	MaxManualDuration = 24 * time.Hour

	// Activity labels
	DefaultActivity   = "Focus"
	MaxActivityLength = 64
	MaxTitleLength    = 100
	MaxGoalLength     = 200
)

// Progression Constants
const (
	XPPerHour        = 10
	MaxLevel         = 100
	StreakBonusWeek  = 50
	StreakBonusMonth = 200
)

// Weekly challenge defaults
const (
	WeeklyChallengeTargetXP = 100
	WeeklyChallengeBonusXP  = 50
	WeeklyChallengeTopSize  = 10
)
