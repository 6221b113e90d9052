package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ActiveSession is the single in-progress focus session of a user.
// IsPaused is true exactly when PausedAt is set.
type ActiveSession struct {
	bun.BaseModel `bun:"table:active_sessions,alias:as"`

	UserID         string     `bun:"user_id,pk"`
	Username       string     `bun:"username,notnull"`
	GuildID        string     `bun:"guild_id,notnull"`
	Activity       string     `bun:"activity,notnull"`
	Intensity      int        `bun:"intensity,notnull,default:0"`
	StartTime      time.Time  `bun:"start_time,notnull"`
	IsPaused       bool       `bun:"is_paused,notnull,default:false"`
	PausedAt       *time.Time `bun:"paused_at"`
	PausedDuration int64      `bun:"paused_duration,notnull,default:0"` // seconds
	AutoPaused     bool       `bun:"auto_paused,notnull,default:false"`

	// Voice-room metadata
	IsVCSession       bool       `bun:"is_vc_session,notnull,default:false"`
	VCChannelID       string     `bun:"vc_channel_id"`
	LeftVCAt          *time.Time `bun:"left_vc_at"`
	PendingCompletion bool       `bun:"pending_completion,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// effectiveNow clamps now to the moment the user left the focus room while a
// completion is pending, so time spent outside the room is never credited.
func (s *ActiveSession) effectiveNow(now time.Time) time.Time {
	if s.PendingCompletion && s.LeftVCAt != nil && s.LeftVCAt.Before(now) {
		return *s.LeftVCAt
	}
	return now
}

// Elapsed returns focused time at now: now - start - paused - current pause.
func (s *ActiveSession) Elapsed(now time.Time) time.Duration {
	now = s.effectiveNow(now)
	elapsed := now.Sub(s.StartTime) - time.Duration(s.PausedDuration)*time.Second
	if s.IsPaused && s.PausedAt != nil && now.After(*s.PausedAt) {
		elapsed -= now.Sub(*s.PausedAt)
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// EndTime is the instant the session is considered to end when finalized at now.
func (s *ActiveSession) EndTime(now time.Time) time.Time {
	return s.effectiveNow(now)
}

// Pause marks the session paused at now.
func (s *ActiveSession) Pause(now time.Time) {
	s.IsPaused = true
	at := now
	s.PausedAt = &at
}

// Resume credits the current pause to PausedDuration and clears the pause.
// While a completion is pending only the part of the pause before LeftVCAt is
// credited; ReturnToRoom credits the time away.
func (s *ActiveSession) Resume(now time.Time) time.Duration {
	end := s.effectiveNow(now)
	var paused time.Duration
	if s.PausedAt != nil && end.After(*s.PausedAt) {
		paused = end.Sub(*s.PausedAt)
		s.PausedDuration += int64(paused / time.Second)
	}
	s.IsPaused = false
	s.PausedAt = nil
	s.AutoPaused = false
	return paused
}

// ReturnToRoom clears a pending completion at now. The time away from the
// room is credited as paused time, except the part an open pause covers.
func (s *ActiveSession) ReturnToRoom(now time.Time) {
	if s.LeftVCAt != nil && now.After(*s.LeftVCAt) {
		uncovered := now
		if s.IsPaused && s.PausedAt != nil && s.PausedAt.Before(uncovered) {
			uncovered = *s.PausedAt
		}
		if uncovered.After(*s.LeftVCAt) {
			s.PausedDuration += int64(uncovered.Sub(*s.LeftVCAt) / time.Second)
		}
	}
	s.PendingCompletion = false
	s.LeftVCAt = nil
}
