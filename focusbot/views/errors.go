package views

import (
	"errors"

	"github.com/disgoorg/focus-bot/focusbot/goals"
	"github.com/disgoorg/focus-bot/focusbot/sessions"
	"github.com/disgoorg/focus-bot/focusbot/utils"
)

// Classify maps a domain error to the response category and the text shown
// to the user. Persistence failures never leak their message.
func Classify(err error) (utils.ErrorType, string) {
	if errors.Is(err, goals.ErrEmptyGoal) || errors.Is(err, goals.ErrGoalTooLong) {
		return utils.UserError, capitalize(err.Error())
	}

	switch sessions.KindOf(err) {
	case sessions.KindNotFound:
		return utils.NotFoundError, "You don't have an active focus session. Start one with `/focus start`."
	case sessions.KindConflict:
		switch {
		case errors.Is(err, sessions.ErrSessionExists):
			return utils.UserError, "You already have a session running. Use `/focus end` or `/focus cancel` first."
		case errors.Is(err, sessions.ErrAlreadyPaused):
			return utils.UserError, "Your session is already paused."
		case errors.Is(err, sessions.ErrNotPaused):
			return utils.UserError, "Your session is not paused."
		}
		return utils.UserError, "That session changed in the meantime, please try again."
	case sessions.KindValidation:
		return utils.UserError, capitalize(err.Error())
	}
	return utils.SystemError, "Something went wrong. Please try again later."
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
