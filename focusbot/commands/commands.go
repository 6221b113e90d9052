package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/focus-bot/focusbot"
	"github.com/disgoorg/focus-bot/focusbot/commands/focus"
	"github.com/disgoorg/focus-bot/focusbot/commands/stats"
	"github.com/disgoorg/focus-bot/focusbot/commands/system"
	"github.com/disgoorg/focus-bot/focusbot/handlers"
)

var Commands = []discord.ApplicationCommandCreate{}

func init() {
	Commands = append(Commands, focus.Commands...)
	Commands = append(Commands, stats.Commands...)
	Commands = append(Commands, system.Commands...)
}

// Register routes every slash command to its handler.
func Register(h handler.Router, b *focusbot.Bot) {
	focus.NewHandler(b).Register(h)

	h.Command("/stats", handlers.WrapWithLogging("stats", stats.StatsHandler(b)))
	h.Command("/achievements", handlers.WrapWithLogging("achievements", stats.AchievementsHandler(b)))
	h.Command("/leaderboard", handlers.WrapWithLogging("leaderboard", stats.LeaderboardHandler(b)))
	h.Command("/challenge", handlers.WrapWithLogging("challenge", stats.ChallengeHandler(b)))
	h.Route("/goal", func(r handler.Router) {
		r.Command("/set", handlers.WrapWithLogging("goal-set", stats.GoalSetHandler(b)))
		r.Command("/show", handlers.WrapWithLogging("goal-show", stats.GoalShowHandler(b)))
	})

	h.Command("/version", handlers.WrapWithLogging("version", system.VersionHandler(b)))
	h.Command("/help", handlers.WrapWithLogging("help", system.HelpHandler(b)))
}
