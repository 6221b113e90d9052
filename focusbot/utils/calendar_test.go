package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekKey(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"mid year", time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC), "2026-W42"},
		{"new year belongs to previous iso year", time.Date(2027, 1, 1, 12, 0, 0, 0, time.UTC), "2026-W53"},
		{"single digit week", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "2026-W10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekKey(tt.t, time.UTC))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2026-03-02", "2026-03-03"}, DaysBetween(from, to, time.UTC))
	assert.Empty(t, DaysBetween(from, from.Add(time.Hour), time.UTC))
}

func TestStartOfISOWeek(t *testing.T) {
	sunday := time.Date(2026, 3, 8, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), StartOfISOWeek(sunday, time.UTC))
	assert.Equal(t, 7, ISOWeekday(sunday))
	assert.Equal(t, 31, DaysInMonth(sunday))
}
