package sessions

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/logger"
)

type TimerClass string

const (
	TimerAutoEnd  TimerClass = "auto-end"
	TimerAutoPost TimerClass = "auto-post"
)

type timerKey struct {
	class  TimerClass
	userID string
}

type armedTimer struct {
	timer *time.Timer
	gen   uint64
}

// TimerRegistry holds at most one pending callback per user and timer class.
type TimerRegistry struct {
	mu      sync.Mutex
	timers  map[timerKey]*armedTimer
	gen     uint64
	timeout time.Duration
	wg      sync.WaitGroup
	closed  bool
}

func NewTimerRegistry() *TimerRegistry {
	return &TimerRegistry{
		timers:  make(map[timerKey]*armedTimer),
		timeout: config.TimerCallbackTimeout,
	}
}

// Arm schedules fn after delay, replacing any timer of the same class for userID.
func (r *TimerRegistry) Arm(class TimerClass, userID string, delay time.Duration, fn func(ctx context.Context)) {
	key := timerKey{class: class, userID: userID}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	r.stopLocked(key)

	r.gen++
	gen := r.gen
	r.wg.Add(1)
	r.timers[key] = &armedTimer{
		gen:   gen,
		timer: time.AfterFunc(delay, func() { r.fire(key, gen, fn) }),
	}

	logger.LogTimer("Timer armed", string(class), userID, slog.Duration("delay", delay))
}

// Cancel stops the timer of class for userID. It is a no-op when nothing is armed.
func (r *TimerRegistry) Cancel(class TimerClass, userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cancelled := r.stopLocked(timerKey{class: class, userID: userID})
	if cancelled {
		logger.LogTimer("Timer cancelled", string(class), userID)
	}
	return cancelled
}

func (r *TimerRegistry) Armed(class TimerClass, userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.timers[timerKey{class: class, userID: userID}]
	return ok
}

func (r *TimerRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// Shutdown stops every pending timer and waits for running callbacks.
func (r *TimerRegistry) Shutdown() {
	r.mu.Lock()
	r.closed = true
	for key := range r.timers {
		r.stopLocked(key)
	}
	r.mu.Unlock()

	r.wg.Wait()
}

// stopLocked removes key and reports whether a timer was removed.
func (r *TimerRegistry) stopLocked(key timerKey) bool {
	t, ok := r.timers[key]
	if !ok {
		return false
	}
	delete(r.timers, key)
	if t.timer.Stop() {
		r.wg.Done()
	}
	return true
}

func (r *TimerRegistry) fire(key timerKey, gen uint64, fn func(ctx context.Context)) {
	defer r.wg.Done()
	defer func() {
		r.mu.Lock()
		if t, ok := r.timers[key]; ok && t.gen == gen {
			delete(r.timers, key)
		}
		r.mu.Unlock()
	}()
	defer func() {
		if rec := recover(); rec != nil {
			logger.LogError("Timer callback panicked", fmt.Errorf("panic: %v", rec),
				slog.String("timer", string(key.class)),
				slog.String("user_id", key.userID))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	logger.LogTimer("Timer fired", string(key.class), key.userID)
	fn(ctx)
}
