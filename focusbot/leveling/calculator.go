package leveling

import (
	"math"
	"time"
)

// levelOneCeiling is the first xp value that reaches level 2.
const levelOneCeiling = 283

type Calculator struct {
	config *Config
}

func NewCalculator(config *Config) *Calculator {
	return &Calculator{config: config}
}

// Default uses the production curve and XP table.
var Default = NewCalculator(NewDefaultConfig())

func (c *Calculator) MaxLevel() int {
	return c.config.MaxLevel
}

// LevelForXP maps total xp onto [1, MaxLevel].
func (c *Calculator) LevelForXP(xp int64) int {
	if xp < levelOneCeiling {
		return 1
	}
	level := int(math.Round(math.Pow(float64(xp)/100, 2.0/3.0)))
	if level < 1 {
		return 1
	}
	if level > c.config.MaxLevel {
		return c.config.MaxLevel
	}
	return level
}

// XPForLevel is the xp threshold of level.
func (c *Calculator) XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	return int64(math.Floor(100 * math.Pow(float64(level), 1.5)))
}

func (c *Calculator) XPToNextLevel(xp int64) int64 {
	level := c.LevelForXP(xp)
	if level >= c.config.MaxLevel {
		return 0
	}
	remaining := c.XPForLevel(level+1) - xp
	if remaining < 0 {
		return 0
	}
	return remaining
}

// LevelProgress is the percentage between the current and the next level threshold.
func (c *Calculator) LevelProgress(xp int64) float64 {
	level := c.LevelForXP(xp)
	if level >= c.config.MaxLevel {
		return 100
	}
	floor := c.XPForLevel(level)
	ceil := c.XPForLevel(level + 1)
	if ceil <= floor {
		return 100
	}
	progress := float64(xp-floor) / float64(ceil-floor) * 100
	return math.Max(0, math.Min(100, progress))
}

func (c *Calculator) IntensityMultiplier(intensity int) float64 {
	if m, ok := c.config.IntensityMultipliers[intensity]; ok {
		return m
	}
	return 1.0
}

// SessionXP is floor(hours * XPPerHour * multiplier). Bonuses are added separately.
func (c *Calculator) SessionXP(duration time.Duration, intensity int) int64 {
	if duration <= 0 {
		return 0
	}
	base := duration.Hours() * c.config.XPPerHour
	return int64(math.Floor(base * c.IntensityMultiplier(intensity)))
}

// StreakBonus returns the bonus for a streak that moved from previous to current.
// Only a streak that newly reaches a milestone earns it.
func (c *Calculator) StreakBonus(previous, current int) (int64, int) {
	if current == previous {
		return 0, 0
	}
	if bonus, ok := c.config.StreakBonuses[current]; ok {
		return bonus, current
	}
	return 0, 0
}
