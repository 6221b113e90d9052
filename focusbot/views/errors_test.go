package views

import (
	"errors"
	"fmt"
	"testing"

	"github.com/disgoorg/focus-bot/focusbot/database/repositories"
	"github.com/disgoorg/focus-bot/focusbot/goals"
	"github.com/disgoorg/focus-bot/focusbot/sessions"
	"github.com/disgoorg/focus-bot/focusbot/utils"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType utils.ErrorType
		contains string
	}{
		{"no session", sessions.ErrNoActiveSession, utils.NotFoundError, "/focus start"},
		{"exists", sessions.ErrSessionExists, utils.UserError, "already have a session"},
		{"paused", sessions.ErrAlreadyPaused, utils.UserError, "already paused"},
		{"not paused", sessions.ErrNotPaused, utils.UserError, "not paused"},
		{"repository conflict", &repositories.ConflictError{Entity: "active_session"}, utils.UserError, "try again"},
		{"validation detail", fmt.Errorf("%w: intensity must be between 1 and 5", sessions.ErrInvalidInput), utils.UserError, "Invalid session input: intensity"},
		{"goal", goals.ErrEmptyGoal, utils.UserError, "Goal cannot be empty"},
		{"database", errors.New("connection reset"), utils.SystemError, "Something went wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, msg := Classify(tt.err)
			assert.Equal(t, tt.wantType, gotType)
			assert.Contains(t, msg, tt.contains)
			assert.NotContains(t, msg, "connection reset")
		})
	}
}
