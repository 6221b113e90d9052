package sessions

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/focusbot/logger"
)

// VoiceTransition is one voice state change of a user. Empty channel ids mean
// "not connected".
type VoiceTransition struct {
	UserID       string
	Username     string
	GuildID      string
	OldChannelID string
	NewChannelID string
}

type AutoReason string

const (
	ReasonAutoEnd  AutoReason = "auto-end"
	ReasonAutoPost AutoReason = "auto-post"
)

// Notifier delivers completions nobody explicitly asked for.
type Notifier interface {
	NotifyAutoCompleted(ctx context.Context, summary *CompletionSummary, reason AutoReason) error
}

type VoiceConfig struct {
	FocusRooms    []string
	AutoEndDelay  time.Duration
	AutoPostDelay time.Duration
}

// Coordinator maps voice presence onto session transitions.
type Coordinator struct {
	manager  *Manager
	timers   *TimerRegistry
	notifier Notifier
	rooms    map[string]struct{}
	autoEnd  time.Duration
	autoPost time.Duration
}

func NewCoordinator(manager *Manager, timers *TimerRegistry, notifier Notifier, cfg VoiceConfig) *Coordinator {
	rooms := make(map[string]struct{}, len(cfg.FocusRooms))
	for _, id := range cfg.FocusRooms {
		rooms[id] = struct{}{}
	}
	if cfg.AutoEndDelay <= 0 {
		cfg.AutoEndDelay = config.DefaultAutoEndDelay
	}
	if cfg.AutoPostDelay <= 0 {
		cfg.AutoPostDelay = config.DefaultAutoPostDelay
	}
	return &Coordinator{
		manager:  manager,
		timers:   timers,
		notifier: notifier,
		rooms:    rooms,
		autoEnd:  cfg.AutoEndDelay,
		autoPost: cfg.AutoPostDelay,
	}
}

func (c *Coordinator) IsFocusRoom(channelID string) bool {
	_, ok := c.rooms[channelID]
	return channelID != "" && ok
}

// HandleVoiceState runs the focus-room path first, then the generic
// connect/disconnect path.
func (c *Coordinator) HandleVoiceState(ctx context.Context, t VoiceTransition) error {
	if t.OldChannelID == t.NewChannelID {
		return nil
	}

	oldFocus := c.IsFocusRoom(t.OldChannelID)
	newFocus := c.IsFocusRoom(t.NewChannelID)

	unlock := c.manager.lock(t.UserID)
	defer unlock()

	var err error
	switch {
	case oldFocus && newFocus:
		err = c.switchRoomLocked(ctx, t)
	case newFocus:
		err = c.joinRoomLocked(ctx, t)
	case oldFocus:
		err = c.leaveRoomLocked(ctx, t)
	}
	if err != nil {
		return err
	}

	switch {
	case t.OldChannelID != "" && t.NewChannelID == "":
		return c.disconnectLocked(ctx, t.UserID)
	case t.OldChannelID == "" && t.NewChannelID != "":
		return c.reconnectLocked(ctx, t.UserID)
	}
	return nil
}

func (c *Coordinator) joinRoomLocked(ctx context.Context, t VoiceTransition) error {
	session, err := c.manager.store.GetActive(ctx, t.UserID)
	if err != nil {
		return err
	}

	if session == nil {
		session = &models.ActiveSession{
			UserID:      t.UserID,
			Username:    t.Username,
			GuildID:     t.GuildID,
			Activity:    c.manager.defaultActivity,
			StartTime:   c.manager.now(),
			IsVCSession: true,
			VCChannelID: t.NewChannelID,
		}
		if err := c.manager.createLocked(ctx, session); err != nil {
			return err
		}
		logger.LogVoice("Focus room session started", t.UserID, slog.String("channel_id", t.NewChannelID))
		return nil
	}

	if !session.PendingCompletion {
		return nil
	}

	session.ReturnToRoom(c.manager.now())
	session.VCChannelID = t.NewChannelID
	if err := c.manager.updateLocked(ctx, session); err != nil {
		return err
	}

	c.timers.Cancel(TimerAutoPost, t.UserID)
	logger.LogVoice("Focus room rejoined, completion cancelled", t.UserID)
	return nil
}

func (c *Coordinator) leaveRoomLocked(ctx context.Context, t VoiceTransition) error {
	session, err := c.manager.store.GetActive(ctx, t.UserID)
	if err != nil {
		return err
	}
	if session == nil || !session.IsVCSession || session.PendingCompletion {
		return nil
	}

	left := c.manager.now()
	session.PendingCompletion = true
	session.LeftVCAt = &left
	if err := c.manager.updateLocked(ctx, session); err != nil {
		return err
	}

	c.armAutoPost(t.UserID, c.autoPost)
	logger.LogVoice("Focus room left, completion pending", t.UserID, slog.Duration("delay", c.autoPost))
	return nil
}

func (c *Coordinator) switchRoomLocked(ctx context.Context, t VoiceTransition) error {
	session, err := c.manager.store.GetActive(ctx, t.UserID)
	if err != nil {
		return err
	}
	if session == nil || !session.IsVCSession {
		return nil
	}

	session.VCChannelID = t.NewChannelID
	return c.manager.updateLocked(ctx, session)
}

func (c *Coordinator) disconnectLocked(ctx context.Context, userID string) error {
	session, err := c.manager.store.GetActive(ctx, userID)
	if err != nil {
		return err
	}
	if session == nil || session.IsPaused || session.PendingCompletion {
		return nil
	}

	session.Pause(c.manager.now())
	session.AutoPaused = true
	if err := c.manager.updateLocked(ctx, session); err != nil {
		return err
	}

	c.armAutoEnd(userID, c.autoEnd)
	logger.LogVoice("Disconnected, session auto-paused", userID, slog.Duration("delay", c.autoEnd))
	return nil
}

func (c *Coordinator) reconnectLocked(ctx context.Context, userID string) error {
	if !c.timers.Armed(TimerAutoEnd, userID) {
		return nil
	}

	session, err := c.manager.store.GetActive(ctx, userID)
	if err != nil {
		return err
	}
	if session == nil || !session.IsPaused {
		c.timers.Cancel(TimerAutoEnd, userID)
		return nil
	}

	c.timers.Cancel(TimerAutoEnd, userID)
	session.Resume(c.manager.now())
	if err := c.manager.updateLocked(ctx, session); err != nil {
		return err
	}
	logger.LogVoice("Reconnected, session auto-resumed", userID)
	return nil
}

func (c *Coordinator) armAutoEnd(userID string, delay time.Duration) {
	c.timers.Arm(TimerAutoEnd, userID, delay, func(ctx context.Context) {
		c.fireAutoEnd(ctx, userID)
	})
}

func (c *Coordinator) armAutoPost(userID string, delay time.Duration) {
	c.timers.Arm(TimerAutoPost, userID, delay, func(ctx context.Context) {
		c.fireAutoPost(ctx, userID)
	})
}

// fireAutoEnd ends a session that stayed auto-paused for the whole delay.
func (c *Coordinator) fireAutoEnd(ctx context.Context, userID string) {
	c.fireCompletion(ctx, userID, ReasonAutoEnd, func(s *models.ActiveSession) bool {
		return s.IsPaused && s.AutoPaused && !s.PendingCompletion
	})
}

// fireAutoPost completes a focus room session whose owner never came back.
func (c *Coordinator) fireAutoPost(ctx context.Context, userID string) {
	c.fireCompletion(ctx, userID, ReasonAutoPost, func(s *models.ActiveSession) bool {
		return s.PendingCompletion
	})
}

func (c *Coordinator) fireCompletion(ctx context.Context, userID string, reason AutoReason, valid func(*models.ActiveSession) bool) {
	summary, err := func() (*CompletionSummary, error) {
		unlock := c.manager.lock(userID)
		defer unlock()

		session, err := c.manager.store.GetActive(ctx, userID)
		if err != nil {
			return nil, err
		}
		if session == nil || !valid(session) {
			return nil, nil
		}
		return c.manager.finalizeLocked(ctx, session, "", "")
	}()
	if err != nil {
		logger.LogError("Automatic completion failed", err,
			slog.String("user_id", userID),
			slog.String("reason", string(reason)))
		if summary == nil {
			return
		}
	}
	if summary == nil {
		logger.LogTimer("Timer stale, session changed", string(reason), userID)
		return
	}

	logger.LogVoice("Session completed automatically", userID,
		slog.String("reason", string(reason)),
		slog.Duration("duration", summary.Duration))

	if c.notifier != nil {
		if err := c.notifier.NotifyAutoCompleted(ctx, summary, reason); err != nil {
			logger.LogError("Failed to announce automatic completion", err, slog.String("user_id", userID))
		}
	}
}

// Restore re-arms timers for sessions persisted before a restart. Deadlines
// already in the past fire immediately.
func (c *Coordinator) Restore(ctx context.Context) (int, error) {
	active, err := c.manager.store.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	now := c.manager.now()
	restored := 0
	for _, s := range active {
		switch {
		case s.PendingCompletion && s.LeftVCAt != nil:
			c.armAutoPost(s.UserID, remaining(c.autoPost, now.Sub(*s.LeftVCAt)))
			restored++
		case s.IsPaused && s.AutoPaused && s.PausedAt != nil:
			c.armAutoEnd(s.UserID, remaining(c.autoEnd, now.Sub(*s.PausedAt)))
			restored++
		}
	}

	if restored > 0 {
		logger.LogSystem("Session timers restored", slog.Int("count", restored))
	}
	return restored, nil
}

func remaining(delay, passed time.Duration) time.Duration {
	if passed >= delay {
		return 0
	}
	return delay - passed
}
