package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/focus-bot/focusbot"
	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/focusbot/utils"
	"github.com/disgoorg/focus-bot/focusbot/views"
)

var Challenge = discord.SlashCommandCreate{
	Name:        "challenge",
	Description: "🎯 This week's community XP challenge",
}

func challengeEmbed(c *models.WeeklyChallenge, userID string) discord.Embed {
	earned := c.Participants[userID]
	pct := float64(earned) / float64(max(c.TargetXP, 1)) * 100

	status := fmt.Sprintf("%s %s / %s XP", utils.ProgressBar(pct, 12), utils.FormatNumber(earned), utils.FormatNumber(c.TargetXP))
	if c.HasCompleted(userID) {
		status = "✅ Completed, +" + utils.FormatNumber(c.BonusXP) + " XP bonus earned"
	}

	var top strings.Builder
	for i, en := range c.TopEarners {
		fmt.Fprintf(&top, "%d. <@%s> · %s XP\n", i+1, en.UserID, utils.FormatNumber(en.XP))
	}
	if top.Len() == 0 {
		top.WriteString("No XP earned yet this week.")
	}

	return discord.NewEmbedBuilder().
		SetTitle("🎯 Weekly challenge " + c.WeekKey).
		SetDescription(fmt.Sprintf("Earn **%s XP** before <t:%d:f> to get a **%s XP** bonus.",
			utils.FormatNumber(c.TargetXP), c.EndsAt.Unix(), utils.FormatNumber(c.BonusXP))).
		SetColor(config.InfoColor).
		AddField("Your progress", status, false).
		AddField("Top earners", top.String(), false).
		AddField("Finishers", fmt.Sprintf("%d", len(c.Completed)), true).
		Build()
}

func ChallengeHandler(b *focusbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.StatsQueryTimeout)
		defer cancel()

		c, err := b.Challenges.Current(ctx, time.Now())
		if err != nil {
			errType, msg := views.Classify(err)
			return utils.EH.CreateClassifiedError(e, errType, msg)
		}
		c.EnsureMaps()

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{challengeEmbed(c, e.User().ID.String())},
		})
	}
}
