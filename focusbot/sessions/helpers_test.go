package sessions

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/achievements"
	"github.com/disgoorg/focus-bot/focusbot/database"
	"github.com/disgoorg/focus-bot/focusbot/database/repositories"
	"github.com/disgoorg/focus-bot/focusbot/progression"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type countingRecorder struct {
	inner CompletionRecorder
	calls atomic.Int32
}

func (r *countingRecorder) RecordCompletion(ctx context.Context, c progression.Completion) (*progression.Result, error) {
	r.calls.Add(1)
	if r.inner == nil {
		return &progression.Result{}, nil
	}
	return r.inner.RecordCompletion(ctx, c)
}

type recordingNotifier struct {
	mu        sync.Mutex
	summaries []*CompletionSummary
	reasons   []AutoReason
}

func (n *recordingNotifier) NotifyAutoCompleted(_ context.Context, summary *CompletionSummary, reason AutoReason) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.summaries = append(n.summaries, summary)
	n.reasons = append(n.reasons, reason)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.summaries)
}

type testEnv struct {
	clock    *fakeClock
	sessions repositories.SessionRepository
	stats    repositories.StatsRepository
	recorder *countingRecorder
	timers   *TimerRegistry
	manager  *Manager
	notifier *recordingNotifier
	voice    *Coordinator
}

const (
	focusRoom  = "900"
	focusRoom2 = "901"
	otherRoom  = "500"
)

func newTestEnv(t *testing.T, cfg VoiceConfig) *testEnv {
	t.Helper()

	db, err := database.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.InitializeSchema(context.Background()))

	env := &testEnv{
		clock:    newClock(),
		sessions: repositories.NewSessionRepository(db.BunDB()),
		stats:    repositories.NewStatsRepository(db.BunDB()),
		timers:   NewTimerRegistry(),
		notifier: &recordingNotifier{},
	}
	t.Cleanup(env.timers.Shutdown)

	engine := progression.NewEngine(env.stats, nil, achievements.NewEngine(env.stats, nil), nil,
		progression.WithClock(env.clock.Now))
	env.recorder = &countingRecorder{inner: engine}
	env.manager = NewManager(env.sessions, env.recorder, env.timers, WithClock(env.clock.Now))

	if len(cfg.FocusRooms) == 0 {
		cfg.FocusRooms = []string{focusRoom, focusRoom2}
	}
	env.voice = NewCoordinator(env.manager, env.timers, env.notifier, cfg)
	return env
}
