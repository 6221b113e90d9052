package sessions

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

import (
	"context"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/database/models"
)

// Store persists active sessions and the completed-session log.
// GetActive returns nil, nil when the user has no active session.
type Store interface {
	CreateActive(ctx context.Context, session *models.ActiveSession) error
	GetActive(ctx context.Context, userID string) (*models.ActiveSession, error)
	UpdateActive(ctx context.Context, session *models.ActiveSession) error
	DeleteActive(ctx context.Context, userID string) (bool, error)
	ListActive(ctx context.Context) ([]*models.ActiveSession, error)

	// Finalize removes the active row and appends the completed entry atomically.
	// It reports false when another caller already removed the row.
	Finalize(ctx context.Context, userID string, completed *models.CompletedSession) (bool, error)
	InsertCompleted(ctx context.Context, completed *models.CompletedSession) error
	ListCompletedSince(ctx context.Context, since time.Time, guildID string) ([]*models.CompletedSession, error)
	ListCompletedByUser(ctx context.Context, userID string, limit int) ([]*models.CompletedSession, error)
}
