package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActiveSession_ElapsedExcludesPauses(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	s := &ActiveSession{UserID: "u1", StartTime: start}

	s.Pause(start.Add(10 * time.Minute))
	assert.Equal(t, 10*time.Minute, s.Elapsed(start.Add(12*time.Minute)), "paused time is not counted while paused")

	s.Resume(start.Add(15 * time.Minute))
	assert.Equal(t, int64(300), s.PausedDuration)
	assert.Nil(t, s.PausedAt)
	assert.False(t, s.IsPaused)

	assert.Equal(t, 3300*time.Second, s.Elapsed(start.Add(time.Hour)))
}

func TestActiveSession_ElapsedClampsToLeftVC(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	left := start.Add(30 * time.Minute)
	s := &ActiveSession{
		UserID:            "u1",
		StartTime:         start,
		IsVCSession:       true,
		PendingCompletion: true,
		LeftVCAt:          &left,
	}

	assert.Equal(t, 30*time.Minute, s.Elapsed(start.Add(2*time.Hour)))
	assert.Equal(t, left, s.EndTime(start.Add(2*time.Hour)))
}

func TestActiveSession_ResumeWhilePendingStopsAtLeftVC(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	s := &ActiveSession{UserID: "u1", StartTime: start, IsVCSession: true}

	s.Pause(start.Add(30 * time.Minute))
	left := start.Add(40 * time.Minute)
	s.PendingCompletion = true
	s.LeftVCAt = &left

	assert.Equal(t, 10*time.Minute, s.Resume(start.Add(45*time.Minute)))
	assert.Equal(t, int64(600), s.PausedDuration)
	assert.Equal(t, 30*time.Minute, s.Elapsed(start.Add(45*time.Minute)))
}

func TestActiveSession_ReturnToRoom(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	left := start.Add(40 * time.Minute)
	rejoin := start.Add(50 * time.Minute)

	tests := []struct {
		name       string
		pausedAt   *time.Time
		wantPaused int64
	}{
		{"not paused", nil, 600},
		{"paused before leaving", ptrTime(start.Add(30 * time.Minute)), 0},
		{"paused while away", ptrTime(start.Add(45 * time.Minute)), 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := left
			s := &ActiveSession{
				StartTime:         start,
				IsVCSession:       true,
				PendingCompletion: true,
				LeftVCAt:          &l,
				IsPaused:          tt.pausedAt != nil,
				PausedAt:          tt.pausedAt,
			}
			s.ReturnToRoom(rejoin)
			assert.Equal(t, tt.wantPaused, s.PausedDuration)
			assert.False(t, s.PendingCompletion)
			assert.Nil(t, s.LeftVCAt)
			assert.Equal(t, tt.pausedAt, s.PausedAt)
		})
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func TestActiveSession_ElapsedNeverNegative(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	s := &ActiveSession{StartTime: start, PausedDuration: 3600}
	assert.Equal(t, time.Duration(0), s.Elapsed(start.Add(time.Minute)))
}

func TestUserStats_CloneIsDeep(t *testing.T) {
	s := NewUserStats("u1", "alice")
	s.Achievements = []string{"first_session"}
	s.WeekDays["2026-W10"] = []int{1}

	c := s.Clone()
	c.Achievements = append(c.Achievements, "sessions_10")
	c.WeekDays["2026-W10"][0] = 5

	assert.Equal(t, []string{"first_session"}, s.Achievements)
	assert.Equal(t, []int{1}, s.WeekDays["2026-W10"])
}
