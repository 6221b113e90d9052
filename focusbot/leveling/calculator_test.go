package leveling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculator_LevelForXP(t *testing.T) {
	tests := []struct {
		name string
		xp   int64
		want int
	}{
		{"zero", 0, 1},
		{"just below level two", 282, 1},
		{"level two", 283, 2},
		{"level ten", 3162, 10},
		{"max", 100000, 100},
		{"clamped", 5_000_000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Default.LevelForXP(tt.xp))
		})
	}
}

func TestCalculator_LevelMonotonic(t *testing.T) {
	prev := Default.LevelForXP(0)
	for xp := int64(0); xp <= 120000; xp += 37 {
		level := Default.LevelForXP(xp)
		if level < prev {
			t.Fatalf("level decreased at xp=%d: %d < %d", xp, level, prev)
		}
		prev = level
	}
}

func TestCalculator_XPForLevel(t *testing.T) {
	assert.Equal(t, int64(0), Default.XPForLevel(0))
	assert.Equal(t, int64(0), Default.XPForLevel(1))
	assert.Equal(t, int64(282), Default.XPForLevel(2))
	assert.Equal(t, int64(3162), Default.XPForLevel(10))
}

func TestCalculator_Progress(t *testing.T) {
	assert.Equal(t, int64(0), Default.XPToNextLevel(100000))
	assert.Equal(t, float64(100), Default.LevelProgress(100000))
	assert.Equal(t, int64(182), Default.XPToNextLevel(100))

	p := Default.LevelProgress(3162)
	assert.GreaterOrEqual(t, p, float64(0))
	assert.LessOrEqual(t, p, float64(100))
}

func TestCalculator_SessionXP(t *testing.T) {
	tests := []struct {
		name      string
		duration  time.Duration
		intensity int
		want      int64
	}{
		{"one hour no intensity", time.Hour, 0, 10},
		{"ninety minutes", 90 * time.Minute, 0, 15},
		{"low intensity", time.Hour, 1, 8},
		{"high intensity", 2 * time.Hour, 5, 30},
		{"floor", 50 * time.Minute, 4, 10},
		{"zero", 0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Default.SessionXP(tt.duration, tt.intensity))
		})
	}
}

func TestCalculator_StreakBonus(t *testing.T) {
	bonus, milestone := Default.StreakBonus(6, 7)
	assert.Equal(t, int64(50), bonus)
	assert.Equal(t, 7, milestone)

	bonus, _ = Default.StreakBonus(7, 7)
	assert.Zero(t, bonus, "same-day session does not re-award")

	bonus, milestone = Default.StreakBonus(29, 30)
	assert.Equal(t, int64(200), bonus)
	assert.Equal(t, 30, milestone)

	bonus, _ = Default.StreakBonus(8, 9)
	assert.Zero(t, bonus)
}
