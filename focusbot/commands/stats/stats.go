package stats

import (
	"context"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/focus-bot/focusbot"
	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/focusbot/utils"
	"github.com/disgoorg/focus-bot/focusbot/views"
	"golang.org/x/sync/errgroup"
)

const recentSessions = 5

var Stats = discord.SlashCommandCreate{
	Name:        "stats",
	Description: "📊 Show focus statistics",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Whose stats to show, defaults to you",
		},
	},
}

func StatsHandler(b *focusbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		user := e.User()
		if u, ok := e.SlashCommandInteractionData().OptUser("user"); ok {
			user = u
		}
		userID := user.ID.String()

		var (
			stats  *models.UserStats
			goal   *models.DailyGoal
			recent []*models.CompletedSession
		)

		g, ctx := errgroup.WithContext(context.Background())
		ctx, cancel := context.WithTimeout(ctx, config.StatsQueryTimeout)
		defer cancel()

		g.Go(func() error {
			var err error
			stats, err = b.StatsRepository.Get(ctx, userID)
			return err
		})
		g.Go(func() error {
			var err error
			goal, err = b.Goals.Today(ctx, userID, time.Now())
			return err
		})
		g.Go(func() error {
			var err error
			recent, err = b.SessionRepository.ListCompletedByUser(ctx, userID, recentSessions)
			return err
		})
		if err := g.Wait(); err != nil {
			errType, msg := views.Classify(err)
			return utils.EH.UpdateClassifiedError(e, errType, msg)
		}

		if stats == nil {
			return utils.EH.UpdateClassifiedError(e, utils.NotFoundError,
				user.Username+" has not completed a focus session yet.")
		}

		_, err := e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{views.StatsEmbed(user.Username, stats, b.Calculator, goal, recent)},
		})
		return err
	}
}
