package utils

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/focus-bot/focusbot/config"
)

// ResponseHandler renders the one-line embeds shared by every command.
type ResponseHandler struct{}

var EH = &ResponseHandler{}

type ErrorType int

const (
	// UserError covers invalid input and transitions the session does not allow.
	UserError ErrorType = iota
	SystemError
	// NotFoundError covers a missing active session or empty stats.
	NotFoundError
)

var errorStyles = map[ErrorType]struct {
	prefix string
	color  int
}{
	UserError:     {"⚠️", config.WarningColor},
	NotFoundError: {"🔍", config.InfoColor},
	SystemError:   {"❌", config.ErrorColor},
}

func errorEmbed(errorType ErrorType, message string) discord.Embed {
	style, ok := errorStyles[errorType]
	if !ok {
		style = errorStyles[SystemError]
	}
	return discord.Embed{Description: style.prefix + " " + message, Color: style.color}
}

func reply(event *handler.CommandEvent, embed discord.Embed, ephemeral bool) error {
	msg := discord.MessageCreate{Embeds: []discord.Embed{embed}}
	if ephemeral {
		msg.Flags = discord.MessageFlagEphemeral
	}
	return event.CreateMessage(msg)
}

func (h *ResponseHandler) CreateSuccessEmbed(event *handler.CommandEvent, message string) error {
	return reply(event, discord.Embed{Description: message, Color: config.SuccessColor}, false)
}

func (h *ResponseHandler) CreateInfoEmbed(event *handler.CommandEvent, message string) error {
	return reply(event, discord.Embed{Description: message, Color: config.InfoColor}, false)
}

// CreateClassifiedError answers ephemerally so failed transitions do not clutter the channel.
func (h *ResponseHandler) CreateClassifiedError(event *handler.CommandEvent, errorType ErrorType, message string) error {
	return reply(event, errorEmbed(errorType, message), true)
}

// UpdateClassifiedError is CreateClassifiedError for deferred interactions.
func (h *ResponseHandler) UpdateClassifiedError(event *handler.CommandEvent, errorType ErrorType, message string) error {
	_, err := event.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds: &[]discord.Embed{errorEmbed(errorType, message)},
	})
	return err
}

func (h *ResponseHandler) CreateSystemError(event *handler.CommandEvent) error {
	return h.CreateClassifiedError(event, SystemError, "Something went wrong. Please try again later.")
}
