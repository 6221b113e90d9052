package sessions

import (
	"errors"

	"github.com/disgoorg/focus-bot/focusbot/database/repositories"
)

var (
	ErrNoActiveSession = errors.New("no active session")
	ErrSessionExists   = errors.New("a session is already running")
	ErrAlreadyPaused   = errors.New("session is already paused")
	ErrNotPaused       = errors.New("session is not paused")
	ErrInvalidDuration = errors.New("duration must be positive and at most 24 hours")
	ErrInvalidInput    = errors.New("invalid session input")
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindValidation
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

// KindOf classifies err. NotFound, Conflict and Validation are expected
// user-facing outcomes; everything else is a persistence failure.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var (
		notFound *repositories.NotFoundError
		conflict *repositories.ConflictError
	)
	switch {
	case errors.Is(err, ErrNoActiveSession), errors.As(err, &notFound):
		return KindNotFound
	case errors.Is(err, ErrSessionExists), errors.Is(err, ErrAlreadyPaused), errors.Is(err, ErrNotPaused), errors.As(err, &conflict):
		return KindConflict
	case errors.Is(err, ErrInvalidDuration), errors.Is(err, ErrInvalidInput):
		return KindValidation
	}
	return KindPersistence
}
