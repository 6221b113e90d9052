package leveling

import "github.com/disgoorg/focus-bot/focusbot/config"

type Config struct {
	// XP granted per hour of focused time before the intensity multiplier
	XPPerHour float64

	MaxLevel int

	// Multipliers keyed by self-reported intensity 1..5. Missing keys count as 1.0.
	IntensityMultipliers map[int]float64

	// Bonus XP granted when the streak newly reaches the key
	StreakBonuses map[int]int64
}

func NewDefaultConfig() *Config {
	return &Config{
		XPPerHour: config.XPPerHour,
		MaxLevel:  config.MaxLevel,
		IntensityMultipliers: map[int]float64{
			1: 0.8,
			2: 0.9,
			3: 1.0,
			4: 1.25,
			5: 1.5,
		},
		StreakBonuses: map[int]int64{
			7:  config.StreakBonusWeek,
			30: config.StreakBonusMonth,
		},
	}
}
