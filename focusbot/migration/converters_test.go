package migration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertSession(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.FixedZone("CET", 3600))

	tests := []struct {
		name    string
		in      LegacySession
		wantErr error
	}{
		{name: "missing user", in: LegacySession{StartTime: start, EndTime: start}, wantErr: errMissingUser},
		{name: "missing times", in: LegacySession{UserID: "u1"}, wantErr: errMissingTimes},
		{name: "negative duration", in: LegacySession{UserID: "u1", StartTime: start, EndTime: start, Duration: -1}, wantErr: errNegative},
		{name: "valid", in: LegacySession{UserID: " u1 ", Activity: "Deep\x00 Work", Intensity: 9, Duration: 59.9, StartTime: start, EndTime: start.Add(time.Minute)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertSession(tt.in, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u1", got.UserID)
			assert.Equal(t, "Deep Work", got.Activity)
			assert.Equal(t, 0, got.Intensity, "out of range intensity is dropped")
			assert.Equal(t, int64(59), got.Duration)
			assert.Equal(t, time.UTC, got.StartTime.Location())
		})
	}
}

func TestCleanseString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  plain  ", "plain"},
		{"tab\tkept", "tab\tkept"},
		{"bell\x07gone", "bellgone"},
		{"bad\xffbyte", "badbyte"},
		{"日本語", "日本語"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanseString(tt.in), "input %q", tt.in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "日本", truncate("日本語", 2))
}

func TestConvertStats_IgnoresZeroTimes(t *testing.T) {
	zero := time.Time{}
	got, err := convertStats(LegacyStats{UserID: "u1", LastSessionAt: &zero, XP: -5}, time.Now())
	require.NoError(t, err)
	assert.Nil(t, got.LastSessionAt)
	assert.Zero(t, got.XP)
	assert.NotNil(t, got.WeekDays)
}
