package stats

import (
	"context"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/focus-bot/focusbot"
	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/utils"
	"github.com/disgoorg/focus-bot/focusbot/views"
)

var Goal = discord.SlashCommandCreate{
	Name:        "goal",
	Description: "🎯 Set or show today's focus goal",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "set",
			Description: "Set today's goal. A goal keeps your streak alive on days without a session",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "goal",
					Description: "What you want to achieve today",
					Required:    true,
					MaxLength:   utils.Ptr(config.MaxGoalLength),
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "show",
			Description: "Show today's goal",
		},
	},
}

func GoalSetHandler(b *focusbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		goal, err := b.Goals.SetGoal(ctx, e.User().ID.String(), e.SlashCommandInteractionData().String("goal"), time.Now())
		if err != nil {
			errType, msg := views.Classify(err)
			return utils.EH.CreateClassifiedError(e, errType, msg)
		}
		return utils.EH.CreateSuccessEmbed(e, "🎯 Today's goal: **"+goal.Goal+"**")
	}
}

func GoalShowHandler(b *focusbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
		defer cancel()

		goal, err := b.Goals.Today(ctx, e.User().ID.String(), time.Now())
		if err != nil {
			errType, msg := views.Classify(err)
			return utils.EH.CreateClassifiedError(e, errType, msg)
		}
		if goal == nil {
			return utils.EH.CreateInfoEmbed(e, "No goal set for today. Use `/goal set` to add one.")
		}
		return utils.EH.CreateInfoEmbed(e, "🎯 Today's goal: **"+goal.Goal+"**")
	}
}
