package sessions

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerRegistry_ArmReplaces(t *testing.T) {
	r := NewTimerRegistry()
	defer r.Shutdown()

	var first, second atomic.Int32
	r.Arm(TimerAutoEnd, "u1", 20*time.Millisecond, func(context.Context) { first.Add(1) })
	r.Arm(TimerAutoEnd, "u1", 20*time.Millisecond, func(context.Context) { second.Add(1) })

	assert.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, first.Load())
	assert.False(t, r.Armed(TimerAutoEnd, "u1"), "fired timers remove themselves")
}

func TestTimerRegistry_ClassesAreIndependent(t *testing.T) {
	r := NewTimerRegistry()
	defer r.Shutdown()

	r.Arm(TimerAutoEnd, "u1", time.Hour, func(context.Context) {})
	r.Arm(TimerAutoPost, "u1", time.Hour, func(context.Context) {})
	assert.Equal(t, 2, r.Len())

	assert.True(t, r.Cancel(TimerAutoEnd, "u1"))
	assert.False(t, r.Cancel(TimerAutoEnd, "u1"), "cancel without a timer is a no-op")
	assert.True(t, r.Armed(TimerAutoPost, "u1"))
}

func TestTimerRegistry_PanicIsRecovered(t *testing.T) {
	r := NewTimerRegistry()
	defer r.Shutdown()

	r.Arm(TimerAutoPost, "u1", time.Millisecond, func(context.Context) { panic("boom") })
	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestTimerRegistry_LateFiringKeepsSuccessor(t *testing.T) {
	r := NewTimerRegistry()
	defer r.Shutdown()

	var rearmed atomic.Bool
	r.Arm(TimerAutoPost, "u1", time.Millisecond, func(context.Context) {
		r.Arm(TimerAutoPost, "u1", time.Hour, func(context.Context) {})
		rearmed.Store(true)
	})

	assert.Eventually(t, rearmed.Load, time.Second, 5*time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	assert.True(t, r.Armed(TimerAutoPost, "u1"))
}

func TestTimerRegistry_CallbackContextHasDeadline(t *testing.T) {
	r := NewTimerRegistry()
	defer r.Shutdown()

	deadline := make(chan bool, 1)
	r.Arm(TimerAutoEnd, "u1", time.Millisecond, func(ctx context.Context) {
		_, ok := ctx.Deadline()
		deadline <- ok
	})

	select {
	case ok := <-deadline:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestTimerRegistry_Shutdown(t *testing.T) {
	r := NewTimerRegistry()

	var fired atomic.Int32
	r.Arm(TimerAutoEnd, "u1", 20*time.Millisecond, func(context.Context) { fired.Add(1) })
	r.Shutdown()

	r.Arm(TimerAutoEnd, "u2", time.Millisecond, func(context.Context) { fired.Add(1) })
	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, fired.Load())
	assert.Zero(t, r.Len())
}
