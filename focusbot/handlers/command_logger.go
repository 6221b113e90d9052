package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/logger"
)

func userAttrs(name string, user discord.User) []any {
	return []any{
		slog.String("type", "cmd"),
		slog.String("name", name),
		slog.String("user_id", user.ID.String()),
		slog.String("user_name", user.Username),
	}
}

// WrapWithLogging logs the start and outcome of a command and stops waiting on
// it after config.CommandExecutionTimeout. The handler itself keeps running.
func WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		start := time.Now()
		attrs := userAttrs(name, e.User())

		slog.Debug("Command started", append(attrs, slog.String("channel_id", e.ChannelID().String()))...)

		done := make(chan error, 1)
		go func() {
			done <- h(e)
		}()

		select {
		case err := <-done:
			logger.LogCommand(name, time.Since(start), err)
			return err
		case <-time.After(config.CommandExecutionTimeout):
			slog.Error("Command timed out", append(attrs,
				slog.String("status", "timeout"),
				slog.Duration("timeout", config.CommandExecutionTimeout))...)
			return fmt.Errorf("%s timed out after %s", name, config.CommandExecutionTimeout)
		}
	}
}

// WrapAutocompleteWithLogging only logs failures; autocomplete fires on every keystroke.
func WrapAutocompleteWithLogging(name string, h handler.AutocompleteHandler) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		err := h(e)
		if err != nil {
			slog.Error("Autocomplete failed", append(userAttrs(name, e.User()), slog.Any("error", err))...)
		}
		return err
	}
}
