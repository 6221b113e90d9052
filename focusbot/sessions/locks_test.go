package sessions

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLocks_SerializesAndPrunes(t *testing.T) {
	l := newUserLocks()
	var (
		wg        sync.WaitGroup
		inside    atomic.Int32
		maxInside atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock("u1")
			if n := inside.Add(1); n > maxInside.Load() {
				maxInside.Store(n)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
	assert.Zero(t, l.len())
}

func TestUserLocks_UsersAreIndependent(t *testing.T) {
	l := newUserLocks()
	unlock := l.lock("u1")
	defer unlock()

	done := make(chan struct{})
	go func() {
		l.lock("u2")()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("u2 blocked on u1's lock")
	}
	assert.Equal(t, 1, l.len())
}

func TestManager_LocksAreReleasedAfterTransitions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, VoiceConfig{})

	start(t, env, "u1")
	start(t, env, "u2")
	_, err := env.manager.End(ctx, "u1", "", "")
	require.NoError(t, err)
	require.NoError(t, env.manager.Cancel(ctx, "u2"))
	_, err = env.manager.Pause(ctx, "u3")
	assert.ErrorIs(t, err, ErrNoActiveSession)

	assert.Zero(t, env.manager.locks.len())
}

func TestManager_WithUserLockWaitsForTransition(t *testing.T) {
	env := newTestEnv(t, VoiceConfig{})
	unlock := env.manager.lock("u1")

	ran := make(chan struct{})
	go func() {
		_ = env.manager.WithUserLock("u1", func() error {
			close(ran)
			return nil
		})
	}()

	select {
	case <-ran:
		t.Fatal("ran while the user's transition lock was held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("never ran after the lock was released")
	}
	require.Eventually(t, func() bool { return env.manager.locks.len() == 0 }, time.Second, 10*time.Millisecond)
}
