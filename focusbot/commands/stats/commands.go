package stats

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	Stats,
	Achievements,
	Leaderboard,
	Challenge,
	Goal,
}
