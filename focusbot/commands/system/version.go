package system

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/focus-bot/focusbot"
	"github.com/disgoorg/focus-bot/focusbot/config"
)

var Version = discord.SlashCommandCreate{
	Name:        "version",
	Description: "Show the bot build and how many sessions are running",
}

func versionEmbed(version, commit string, active int) discord.Embed {
	running := "unknown"
	if active >= 0 {
		running = fmt.Sprintf("%d", active)
	}
	return discord.NewEmbedBuilder().
		SetTitle("Focus Bot").
		SetColor(config.InfoColor).
		AddField("Version", version, true).
		AddField("Commit", commit, true).
		AddField("Active sessions", running, true).
		Build()
}

func VersionHandler(b *focusbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.StatsQueryTimeout)
		defer cancel()

		active := -1
		if list, err := b.SessionRepository.ListActive(ctx); err != nil {
			slog.Warn("Failed to count active sessions", slog.String("type", "cmd"), slog.Any("error", err))
		} else {
			active = len(list)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{versionEmbed(b.Version, b.Commit, active)},
		})
	}
}
