package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func join(t *testing.T, env *testEnv, userID, from, to string) {
	t.Helper()
	require.NoError(t, env.voice.HandleVoiceState(context.Background(), VoiceTransition{
		UserID:       userID,
		Username:     "alice",
		GuildID:      "g1",
		OldChannelID: from,
		NewChannelID: to,
	}))
}

func TestCoordinator_FocusRoomLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, VoiceConfig{AutoPostDelay: time.Hour})

	join(t, env, "u1", "", focusRoom)
	s, err := env.manager.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, s.IsVCSession)
	assert.Equal(t, focusRoom, s.VCChannelID)
	assert.Equal(t, "Focus", s.Activity)

	env.clock.Advance(30 * time.Minute)
	join(t, env, "u1", focusRoom, "")
	s, err = env.manager.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, s.PendingCompletion)
	assert.False(t, s.IsPaused, "a pending session is not auto-paused")
	assert.True(t, env.timers.Armed(TimerAutoPost, "u1"))
	assert.False(t, env.timers.Armed(TimerAutoEnd, "u1"))

	env.clock.Advance(3 * time.Minute)
	elapsed, err := env.manager.Elapsed(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, elapsed, "time away is not credited")

	join(t, env, "u1", "", focusRoom2)
	s, err = env.manager.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, s.PendingCompletion)
	assert.Nil(t, s.LeftVCAt)
	assert.Equal(t, int64(180), s.PausedDuration)
	assert.False(t, env.timers.Armed(TimerAutoPost, "u1"))

	env.clock.Advance(10 * time.Minute)
	elapsed, err = env.manager.Elapsed(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 40*time.Minute, elapsed)
}

func TestCoordinator_SwitchRooms(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, VoiceConfig{})

	join(t, env, "u1", "", focusRoom)
	join(t, env, "u1", focusRoom, focusRoom2)

	s, err := env.manager.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, focusRoom2, s.VCChannelID)
	assert.False(t, s.PendingCompletion)
	assert.Zero(t, env.timers.Len())
}

func TestCoordinator_DisconnectAutoPausesAndReconnectResumes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, VoiceConfig{AutoEndDelay: time.Hour})

	start(t, env, "u1")
	join(t, env, "u1", "", otherRoom)
	env.clock.Advance(20 * time.Minute)

	join(t, env, "u1", otherRoom, "")
	s, err := env.manager.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, s.IsPaused)
	assert.True(t, s.AutoPaused)
	assert.True(t, env.timers.Armed(TimerAutoEnd, "u1"))

	env.clock.Advance(5 * time.Minute)
	join(t, env, "u1", "", otherRoom)
	s, err = env.manager.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, s.IsPaused)
	assert.Equal(t, int64(300), s.PausedDuration)
	assert.False(t, env.timers.Armed(TimerAutoEnd, "u1"))
}

func TestCoordinator_ReconnectKeepsManualPause(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, VoiceConfig{})

	start(t, env, "u1")
	_, err := env.manager.Pause(ctx, "u1")
	require.NoError(t, err)

	join(t, env, "u1", otherRoom, "")
	join(t, env, "u1", "", otherRoom)

	s, err := env.manager.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, s.IsPaused, "only auto-paused sessions are resumed")
	assert.Zero(t, env.timers.Len())
}

func TestCoordinator_NoSessionIsNoop(t *testing.T) {
	env := newTestEnv(t, VoiceConfig{})

	join(t, env, "u1", otherRoom, "")
	join(t, env, "u1", "", otherRoom)
	join(t, env, "u1", focusRoom, "")

	_, err := env.manager.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.Zero(t, env.timers.Len())
}

func TestCoordinator_AutoPostFires(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, VoiceConfig{AutoPostDelay: 20 * time.Millisecond})

	join(t, env, "u1", "", focusRoom)
	env.clock.Advance(time.Hour)
	join(t, env, "u1", focusRoom, "")
	env.clock.Advance(time.Hour)

	require.Eventually(t, func() bool { return env.notifier.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, ReasonAutoPost, env.notifier.reasons[0])
	assert.Equal(t, time.Hour, env.notifier.summaries[0].Duration)

	_, err := env.manager.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestCoordinator_AutoEndFires(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, VoiceConfig{AutoEndDelay: 20 * time.Millisecond})

	start(t, env, "u1")
	env.clock.Advance(40 * time.Minute)
	join(t, env, "u1", otherRoom, "")
	env.clock.Advance(10 * time.Minute)

	require.Eventually(t, func() bool { return env.notifier.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, ReasonAutoEnd, env.notifier.reasons[0])
	assert.Equal(t, 40*time.Minute, env.notifier.summaries[0].Duration)

	log, err := env.sessions.ListCompletedByUser(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, log, 1)
}

func TestCoordinator_StaleTimerIsNoop(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, VoiceConfig{AutoPostDelay: time.Hour})

	join(t, env, "u1", "", focusRoom)
	join(t, env, "u1", focusRoom, "")
	join(t, env, "u1", "", focusRoom)

	env.voice.fireAutoPost(ctx, "u1")
	env.voice.fireAutoEnd(ctx, "u1")

	_, err := env.manager.Get(ctx, "u1")
	assert.NoError(t, err)
	assert.Zero(t, env.notifier.count())
	assert.Zero(t, env.recorder.calls.Load())
}

func TestCoordinator_Restore(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, VoiceConfig{AutoPostDelay: time.Hour, AutoEndDelay: time.Hour})

	join(t, env, "u1", "", focusRoom)
	join(t, env, "u1", focusRoom, "")
	start(t, env, "u2")
	join(t, env, "u2", otherRoom, "")
	start(t, env, "u3")
	_, err := env.manager.Pause(ctx, "u3")
	require.NoError(t, err)

	fresh := NewTimerRegistry()
	t.Cleanup(fresh.Shutdown)
	coordinator := NewCoordinator(env.manager, fresh, env.notifier, VoiceConfig{FocusRooms: []string{focusRoom}})

	restored, err := coordinator.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, restored)
	assert.True(t, fresh.Armed(TimerAutoPost, "u1"))
	assert.True(t, fresh.Armed(TimerAutoEnd, "u2"))
	assert.False(t, fresh.Armed(TimerAutoEnd, "u3"))
}

func TestCoordinator_PauseOverlappingAbsenceCountsOnce(t *testing.T) {
	type step struct {
		at     time.Duration // since 10:00
		action string
	}
	tests := []struct {
		name  string
		steps []step
		endAt time.Duration
		want  time.Duration
	}{
		{
			name:  "paused before leaving, resumed after rejoin",
			steps: []step{{30 * time.Minute, "pause"}, {40 * time.Minute, "leave"}, {50 * time.Minute, "rejoin"}, {55 * time.Minute, "resume"}},
			endAt: 65 * time.Minute,
			want:  40 * time.Minute,
		},
		{
			name:  "paused before leaving, resumed while away",
			steps: []step{{30 * time.Minute, "pause"}, {40 * time.Minute, "leave"}, {45 * time.Minute, "resume"}, {50 * time.Minute, "rejoin"}},
			endAt: 65 * time.Minute,
			want:  45 * time.Minute,
		},
		{
			name:  "paused while away, resumed after rejoin",
			steps: []step{{40 * time.Minute, "leave"}, {45 * time.Minute, "pause"}, {50 * time.Minute, "rejoin"}, {55 * time.Minute, "resume"}},
			endAt: 65 * time.Minute,
			want:  50 * time.Minute,
		},
		{
			name:  "paused and resumed while away",
			steps: []step{{40 * time.Minute, "leave"}, {42 * time.Minute, "pause"}, {44 * time.Minute, "resume"}, {50 * time.Minute, "rejoin"}},
			endAt: 65 * time.Minute,
			want:  55 * time.Minute,
		},
		{
			name:  "no pause",
			steps: []step{{40 * time.Minute, "leave"}, {50 * time.Minute, "rejoin"}},
			endAt: 65 * time.Minute,
			want:  55 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t, VoiceConfig{AutoPostDelay: time.Hour, AutoEndDelay: time.Hour})
			join(t, env, "u1", "", focusRoom)

			var now time.Duration
			for _, s := range tt.steps {
				env.clock.Advance(s.at - now)
				now = s.at
				switch s.action {
				case "pause":
					_, err := env.manager.Pause(ctx, "u1")
					require.NoError(t, err)
				case "resume":
					_, err := env.manager.Resume(ctx, "u1")
					require.NoError(t, err)
				case "leave":
					join(t, env, "u1", focusRoom, otherRoom)
				case "rejoin":
					join(t, env, "u1", otherRoom, focusRoom)
				}
			}
			env.clock.Advance(tt.endAt - now)

			summary, err := env.manager.End(ctx, "u1", "", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, summary.Duration)
			assert.Equal(t, int64(tt.want/time.Second), summary.Session.Duration)
		})
	}
}

func TestCoordinator_RejoinWhilePausedKeepsElapsed(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, VoiceConfig{AutoPostDelay: time.Hour})
	join(t, env, "u1", "", focusRoom)

	env.clock.Advance(30 * time.Minute)
	_, err := env.manager.Pause(ctx, "u1")
	require.NoError(t, err)
	env.clock.Advance(10 * time.Minute)
	join(t, env, "u1", focusRoom, otherRoom)
	env.clock.Advance(10 * time.Minute)
	join(t, env, "u1", otherRoom, focusRoom)

	s, err := env.manager.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, s.IsPaused)
	assert.Zero(t, s.PausedDuration, "the open pause already covers the absence")

	env.clock.Advance(5 * time.Minute)
	elapsed, err := env.manager.Elapsed(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, elapsed)
}
