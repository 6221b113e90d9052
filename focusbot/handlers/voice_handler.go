package handlers

import (
	"context"
	"log/slog"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/focus-bot/focusbot"
	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/logger"
	"github.com/disgoorg/focus-bot/focusbot/sessions"
	"github.com/disgoorg/snowflake/v2"
)

// VoiceStateHandler feeds voice state updates into the session coordinator.
func VoiceStateHandler(b *focusbot.Bot) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.GuildVoiceStateUpdate) {
		if e.Member.User.Bot {
			return
		}

		t := sessions.VoiceTransition{
			UserID:       e.VoiceState.UserID.String(),
			Username:     e.Member.User.Username,
			GuildID:      e.VoiceState.GuildID.String(),
			OldChannelID: channelString(e.OldVoiceState.ChannelID),
			NewChannelID: channelString(e.VoiceState.ChannelID),
		}
		if t.OldChannelID == t.NewChannelID {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		if err := b.Voice.HandleVoiceState(ctx, t); err != nil {
			logger.LogError("Voice state handling failed", err,
				slog.String("user_id", t.UserID),
				slog.String("old_channel", t.OldChannelID),
				slog.String("new_channel", t.NewChannelID))
		}
	})
}

func channelString(id *snowflake.ID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
