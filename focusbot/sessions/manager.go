package sessions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/focusbot/database/repositories"
	"github.com/disgoorg/focus-bot/focusbot/progression"
	domain "github.com/disgoorg/focus-bot/internal/domain/sessions"
)

// CompletionRecorder turns a finished session into progression.
type CompletionRecorder interface {
	RecordCompletion(ctx context.Context, c progression.Completion) (*progression.Result, error)
}

type StartRequest struct {
	UserID    string
	Username  string
	GuildID   string
	Activity  string
	Intensity int
}

// ManualEntry is a past session logged after the fact. EndedAt defaults to now.
type ManualEntry struct {
	UserID      string
	Username    string
	GuildID     string
	Activity    string
	Title       string
	Description string
	Duration    time.Duration
	Intensity   int
	EndedAt     time.Time
}

type CompletionSummary struct {
	Session  *models.CompletedSession
	Duration time.Duration
	Result   *progression.Result
}

// Manager owns the session state machine. Transitions of one user are
// serialized in-process; the store's compare-and-delete decides the winner
// of a completion across triggers.
type Manager struct {
	store           domain.Store
	recorder        CompletionRecorder
	timers          *TimerRegistry
	locks           *userLocks
	defaultActivity string
	now             func() time.Time
}

type ManagerOption func(*Manager)

func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

func WithDefaultActivity(activity string) ManagerOption {
	return func(m *Manager) {
		if activity != "" {
			m.defaultActivity = activity
		}
	}
}

func NewManager(store domain.Store, recorder CompletionRecorder, timers *TimerRegistry, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:           store,
		recorder:        recorder,
		timers:          timers,
		locks:           newUserLocks(),
		defaultActivity: config.DefaultActivity,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) lock(userID string) func() {
	return m.locks.lock(userID)
}

// WithUserLock runs fn while holding userID's transition lock. Stats writes
// outside the session lifecycle go through it so they cannot interleave with
// a completion.
func (m *Manager) WithUserLock(userID string, fn func() error) error {
	unlock := m.lock(userID)
	defer unlock()
	return fn()
}

func (m *Manager) normalizeActivity(activity string) (string, error) {
	activity = strings.TrimSpace(activity)
	if activity == "" {
		return m.defaultActivity, nil
	}
	if utf8.RuneCountInString(activity) > config.MaxActivityLength {
		return "", fmt.Errorf("%w: activity longer than %d characters", ErrInvalidInput, config.MaxActivityLength)
	}
	return activity, nil
}

func validateIntensity(intensity int) error {
	if intensity < 0 || intensity > 5 {
		return fmt.Errorf("%w: intensity must be between 1 and 5", ErrInvalidInput)
	}
	return nil
}

// Start opens a session. A user can only ever have one.
func (m *Manager) Start(ctx context.Context, req StartRequest) (*models.ActiveSession, error) {
	activity, err := m.normalizeActivity(req.Activity)
	if err != nil {
		return nil, err
	}
	if err := validateIntensity(req.Intensity); err != nil {
		return nil, err
	}

	unlock := m.lock(req.UserID)
	defer unlock()

	session := &models.ActiveSession{
		UserID:    req.UserID,
		Username:  req.Username,
		GuildID:   req.GuildID,
		Activity:  activity,
		Intensity: req.Intensity,
		StartTime: m.now(),
	}
	if err := m.createLocked(ctx, session); err != nil {
		return nil, err
	}

	slog.Info("Session started",
		slog.String("type", "sys"),
		slog.String("user_id", req.UserID),
		slog.String("activity", activity))
	return session, nil
}

func (m *Manager) createLocked(ctx context.Context, session *models.ActiveSession) error {
	existing, err := m.store.GetActive(ctx, session.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrSessionExists
	}

	if err := m.store.CreateActive(ctx, session); err != nil {
		var conflict *repositories.ConflictError
		if errors.As(err, &conflict) {
			return ErrSessionExists
		}
		return err
	}
	return nil
}

func (m *Manager) getLocked(ctx context.Context, userID string) (*models.ActiveSession, error) {
	session, err := m.store.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

func (m *Manager) updateLocked(ctx context.Context, session *models.ActiveSession) error {
	err := m.store.UpdateActive(ctx, session)
	var notFound *repositories.NotFoundError
	if errors.As(err, &notFound) {
		return ErrNoActiveSession
	}
	return err
}

func (m *Manager) Pause(ctx context.Context, userID string) (*models.ActiveSession, error) {
	unlock := m.lock(userID)
	defer unlock()

	session, err := m.getLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session.IsPaused {
		return nil, ErrAlreadyPaused
	}

	session.Pause(m.now())
	if err := m.updateLocked(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (m *Manager) Resume(ctx context.Context, userID string) (*models.ActiveSession, error) {
	unlock := m.lock(userID)
	defer unlock()

	session, err := m.getLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !session.IsPaused {
		return nil, ErrNotPaused
	}

	session.Resume(m.now())
	if err := m.updateLocked(ctx, session); err != nil {
		return nil, err
	}
	if m.timers != nil {
		m.timers.Cancel(TimerAutoEnd, userID)
	}
	return session, nil
}

// End completes the user's session and records its progression.
func (m *Manager) End(ctx context.Context, userID, title, description string) (*CompletionSummary, error) {
	if utf8.RuneCountInString(title) > config.MaxTitleLength {
		return nil, fmt.Errorf("%w: title longer than %d characters", ErrInvalidInput, config.MaxTitleLength)
	}

	unlock := m.lock(userID)
	defer unlock()

	session, err := m.getLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	return m.finalizeLocked(ctx, session, strings.TrimSpace(title), strings.TrimSpace(description))
}

// finalizeLocked removes the active session, appends it to the log and runs
// progression. Only the caller that removed the row records the completion.
func (m *Manager) finalizeLocked(ctx context.Context, session *models.ActiveSession, title, description string) (*CompletionSummary, error) {
	now := m.now()
	duration := session.Elapsed(now).Truncate(time.Second)

	completed := &models.CompletedSession{
		CompletionID: models.CompletionID(session.UserID, session.StartTime),
		UserID:       session.UserID,
		Username:     session.Username,
		GuildID:      session.GuildID,
		Activity:     session.Activity,
		Title:        title,
		Description:  description,
		Duration:     int64(duration / time.Second),
		Intensity:    session.Intensity,
		StartTime:    session.StartTime,
		EndTime:      session.EndTime(now),
	}

	removed, err := m.store.Finalize(ctx, session.UserID, completed)
	if err != nil {
		return nil, fmt.Errorf("failed to finalize session: %w", err)
	}
	if !removed {
		return nil, ErrNoActiveSession
	}

	if m.timers != nil {
		m.timers.Cancel(TimerAutoEnd, session.UserID)
		m.timers.Cancel(TimerAutoPost, session.UserID)
	}

	return m.record(ctx, completed, duration)
}

func (m *Manager) record(ctx context.Context, completed *models.CompletedSession, duration time.Duration) (*CompletionSummary, error) {
	summary := &CompletionSummary{Session: completed, Duration: duration}
	if m.recorder == nil {
		return summary, nil
	}

	result, err := m.recorder.RecordCompletion(ctx, progression.Completion{
		UserID:       completed.UserID,
		Username:     completed.Username,
		CompletionID: completed.CompletionID,
		Duration:     duration,
		Activity:     completed.Activity,
		Intensity:    completed.Intensity,
		Start:        completed.StartTime,
		End:          completed.EndTime,
	})
	if err != nil {
		slog.Error("Failed to record session progression",
			slog.String("type", "sys"),
			slog.String("user_id", completed.UserID),
			slog.String("completion_id", completed.CompletionID),
			slog.Any("error", err))
		return summary, fmt.Errorf("session saved but progression failed: %w", err)
	}
	summary.Result = result
	return summary, nil
}

// Cancel discards the session without touching stats or the log.
func (m *Manager) Cancel(ctx context.Context, userID string) error {
	unlock := m.lock(userID)
	defer unlock()

	removed, err := m.store.DeleteActive(ctx, userID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNoActiveSession
	}
	if m.timers != nil {
		m.timers.Cancel(TimerAutoEnd, userID)
		m.timers.Cancel(TimerAutoPost, userID)
	}
	return nil
}

func (m *Manager) Get(ctx context.Context, userID string) (*models.ActiveSession, error) {
	return m.getLocked(ctx, userID)
}

// Elapsed reports the focused time of the running session.
func (m *Manager) Elapsed(ctx context.Context, userID string) (time.Duration, error) {
	session, err := m.getLocked(ctx, userID)
	if err != nil {
		return 0, err
	}
	return session.Elapsed(m.now()), nil
}

// LogManual records a session that happened outside the bot.
func (m *Manager) LogManual(ctx context.Context, entry ManualEntry) (*CompletionSummary, error) {
	if entry.Duration <= 0 || entry.Duration > config.MaxManualDuration {
		return nil, ErrInvalidDuration
	}
	activity, err := m.normalizeActivity(entry.Activity)
	if err != nil {
		return nil, err
	}
	if err := validateIntensity(entry.Intensity); err != nil {
		return nil, err
	}

	end := entry.EndedAt
	if end.IsZero() {
		end = m.now()
	}
	if end.After(m.now()) {
		return nil, fmt.Errorf("%w: session cannot end in the future", ErrInvalidInput)
	}
	duration := entry.Duration.Truncate(time.Second)
	start := end.Add(-duration)

	unlock := m.lock(entry.UserID)
	defer unlock()

	completed := &models.CompletedSession{
		CompletionID: models.CompletionID(entry.UserID, start),
		UserID:       entry.UserID,
		Username:     entry.Username,
		GuildID:      entry.GuildID,
		Activity:     activity,
		Title:        strings.TrimSpace(entry.Title),
		Description:  strings.TrimSpace(entry.Description),
		Duration:     int64(duration / time.Second),
		Intensity:    entry.Intensity,
		StartTime:    start,
		EndTime:      end,
	}
	if err := m.store.InsertCompleted(ctx, completed); err != nil {
		return nil, fmt.Errorf("failed to log session: %w", err)
	}
	return m.record(ctx, completed, duration)
}
