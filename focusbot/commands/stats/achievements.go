package stats

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/focus-bot/focusbot"
	"github.com/disgoorg/focus-bot/focusbot/achievements"
	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/utils"
	"github.com/disgoorg/focus-bot/focusbot/views"
	"github.com/disgoorg/paginator"
)

var Achievements = discord.SlashCommandCreate{
	Name:        "achievements",
	Description: "🏆 Browse achievements and your progress",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "filter",
			Description: "Which achievements to list",
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "All", Value: "all"},
				{Name: "Unlocked", Value: "unlocked"},
				{Name: "Locked", Value: "locked"},
			},
		},
	},
}

func filterProgress(progress []achievements.Progress, filter string) []achievements.Progress {
	if filter == "" || filter == "all" {
		return progress
	}
	out := make([]achievements.Progress, 0, len(progress))
	for _, p := range progress {
		if p.Unlocked == (filter == "unlocked") {
			out = append(out, p)
		}
	}
	return out
}

// pageCount returns how many pages of size hold n entries, at least one.
func pageCount(n, size int) int {
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

func AchievementsHandler(b *focusbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.StatsQueryTimeout)
		defer cancel()

		userID := e.User().ID.String()
		var newly []string
		if err := b.Sessions.WithUserLock(userID, func() error {
			var err error
			newly, err = b.Achievements.Evaluate(ctx, userID)
			return err
		}); err != nil {
			slog.Warn("Failed to re-check achievements",
				slog.String("type", "cmd"),
				slog.String("user_id", userID),
				slog.Any("error", err))
		}

		stats, err := b.StatsRepository.Get(ctx, userID)
		if err != nil {
			errType, msg := views.Classify(err)
			return utils.EH.CreateClassifiedError(e, errType, msg)
		}

		filter := e.SlashCommandInteractionData().String("filter")
		all := b.Achievements.Progress(stats)
		entries := filterProgress(all, filter)

		unlocked := 0
		for _, p := range all {
			if p.Unlocked {
				unlocked++
			}
		}

		totalPages := pageCount(len(entries), config.AchievementsPerPage)
		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				start := page * config.AchievementsPerPage
				end := min(start+config.AchievementsPerPage, len(entries))

				var description strings.Builder
				if page == 0 && len(newly) > 0 {
					description.WriteString("🎉 **Just unlocked**\n")
					description.WriteString(views.AchievementList(newly))
					description.WriteString("\n\n")
				}
				if len(entries) == 0 {
					description.WriteString("Nothing here yet.")
				}
				for _, p := range entries[start:end] {
					description.WriteString(views.ProgressLine(p))
					description.WriteString("\n\n")
				}

				embed.
					SetTitle(fmt.Sprintf("🏆 Achievements (%d/%d)", unlocked, len(all))).
					SetDescription(description.String()).
					SetColor(config.EmbedDefaultColor).
					SetFooter(fmt.Sprintf("Page %d/%d", page+1, totalPages), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}
