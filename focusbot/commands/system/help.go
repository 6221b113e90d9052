package system

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/focus-bot/focusbot"
	"github.com/disgoorg/focus-bot/focusbot/config"
)

var Help = discord.SlashCommandCreate{
	Name:        "help",
	Description: "📖 How the focus bot works",
}

type CommandInfo struct {
	Name        string
	Description string
}

var helpCommands = []CommandInfo{
	{"/focus start", "Start a session, optionally with an activity and intensity"},
	{"/focus pause · resume", "Take a break without losing your session"},
	{"/focus end", "Finish the session and collect XP"},
	{"/focus cancel", "Throw the session away"},
	{"/focus status", "See how long you have been focusing"},
	{"/focus log", "Record a session you did without the bot"},
	{"/goal set · show", "Today's goal, which also keeps your streak alive"},
	{"/stats", "Level, streak and recent sessions"},
	{"/achievements", "Every achievement and your progress"},
	{"/leaderboard", "Top focusers by time or XP"},
	{"/challenge", "The weekly community XP challenge"},
}

func helpEmbed(b *focusbot.Bot) discord.Embed {
	var commands strings.Builder
	for _, c := range helpCommands {
		fmt.Fprintf(&commands, "`%s` · %s\n", c.Name, c.Description)
	}

	voice := "Voice rooms are not configured on this bot."
	if n := len(b.Cfg.Focus.FocusRooms); n > 0 {
		voice = fmt.Sprintf("Joining one of the %d focus room(s) starts a session automatically. "+
			"Leave for more than %d minute(s) and it completes on its own. "+
			"Disconnecting from voice pauses a running session, and after %d minute(s) it ends.",
			n, b.Cfg.Focus.AutoPostMinutes, b.Cfg.Focus.AutoEndMinutes)
	}

	return discord.NewEmbedBuilder().
		SetTitle("📖 Focus Bot").
		SetDescription("Track focus sessions, earn XP, keep streaks and unlock achievements.").
		SetColor(config.InfoColor).
		AddField("Commands", commands.String(), false).
		AddField("Voice rooms", voice, false).
		AddField("XP", fmt.Sprintf("%d XP per hour, scaled by intensity. Streak bonuses at 7 and 30 days.", config.XPPerHour), false).
		Build()
}

func HelpHandler(b *focusbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{helpEmbed(b)},
			Flags:  discord.MessageFlagEphemeral,
		})
	}
}
