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
	"github.com/disgoorg/focus-bot/focusbot/leaderboard"
	"github.com/disgoorg/focus-bot/focusbot/utils"
	"github.com/disgoorg/focus-bot/focusbot/views"
	"github.com/disgoorg/paginator"
)

const (
	boardTime     = "time"
	boardWeeklyXP = "weekly_xp"
	boardTotalXP  = "total_xp"

	leaderboardLimit = 50
)

var Leaderboard = discord.SlashCommandCreate{
	Name:        "leaderboard",
	Description: "🥇 Top focusers",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "type",
			Description: "What to rank by",
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "Focus time", Value: boardTime},
				{Name: "XP this week", Value: boardWeeklyXP},
				{Name: "All-time XP", Value: boardTotalXP},
			},
		},
		discord.ApplicationCommandOptionString{
			Name:        "period",
			Description: "Time window (focus time board only)",
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "Today", Value: string(leaderboard.PeriodDaily)},
				{Name: "This week", Value: string(leaderboard.PeriodWeekly)},
				{Name: "This month", Value: string(leaderboard.PeriodMonthly)},
				{Name: "All time", Value: string(leaderboard.PeriodAll)},
			},
		},
		discord.ApplicationCommandOptionBool{
			Name:        "global",
			Description: "Include every server instead of this one (XP boards are always global)",
		},
	},
}

// boardRow is one rendered leaderboard line.
type boardRow struct {
	name  string
	value string
}

func rankPrefix(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return fmt.Sprintf("`#%d`", rank)
}

// boardOptionError explains option combinations the chosen board cannot honor.
func boardOptionError(kind, period string) string {
	if kind != boardTime && period != "" {
		return "The `period` option only applies to the focus time board. XP boards cover this week or all time."
	}
	return ""
}

func periodLabel(p leaderboard.Period) string {
	switch p {
	case leaderboard.PeriodDaily:
		return "today"
	case leaderboard.PeriodWeekly:
		return "this week"
	case leaderboard.PeriodMonthly:
		return "this month"
	}
	return "all time"
}

func durationRows(entries []leaderboard.DurationEntry) []boardRow {
	rows := make([]boardRow, 0, len(entries))
	for _, en := range entries {
		rows = append(rows, boardRow{
			name:  en.Username,
			value: fmt.Sprintf("%s · %d session(s)", utils.FormatSeconds(en.Duration), en.Sessions),
		})
	}
	return rows
}

func xpRows(entries []leaderboard.XPEntry) []boardRow {
	rows := make([]boardRow, 0, len(entries))
	for _, en := range entries {
		rows = append(rows, boardRow{
			name:  en.Username,
			value: fmt.Sprintf("%s XP · level %d", utils.FormatNumber(en.XP), en.Level),
		})
	}
	return rows
}

func LeaderboardHandler(b *focusbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.StatsQueryTimeout)
		defer cancel()

		data := e.SlashCommandInteractionData()
		kind := data.String("type")
		if kind == "" {
			kind = boardTime
		}
		if msg := boardOptionError(kind, data.String("period")); msg != "" {
			return utils.EH.CreateClassifiedError(e, utils.UserError, msg)
		}
		period := leaderboard.Period(data.String("period"))
		if period == "" {
			period = leaderboard.PeriodWeekly
		}

		now := time.Now()
		var (
			rows  []boardRow
			title string
			err   error
		)
		switch kind {
		case boardWeeklyXP:
			var entries []leaderboard.XPEntry
			entries, err = b.Leaderboard.TopByWeeklyXP(ctx, utils.WeekKey(now, b.Location), leaderboardLimit)
			rows, title = xpRows(entries), "XP earned this week"
		case boardTotalXP:
			var entries []leaderboard.XPEntry
			entries, err = b.Leaderboard.TopByTotalXP(ctx, leaderboardLimit)
			rows, title = xpRows(entries), "All-time XP"
		default:
			q := leaderboard.Query{
				Since: leaderboard.PeriodStart(period, now, b.Location),
				Limit: leaderboardLimit,
			}
			if global, _ := data.OptBool("global"); !global && e.GuildID() != nil {
				q.GuildID = e.GuildID().String()
			}
			var entries []leaderboard.DurationEntry
			entries, err = b.Leaderboard.TopByDuration(ctx, q)
			rows, title = durationRows(entries), "Focus time "+periodLabel(period)
		}
		if err != nil {
			errType, msg := views.Classify(err)
			return utils.EH.CreateClassifiedError(e, errType, msg)
		}
		if len(rows) == 0 {
			return utils.EH.CreateInfoEmbed(e, "Nobody is on this leaderboard yet. Be the first with `/focus start`!")
		}

		totalPages := pageCount(len(rows), config.LeaderboardPageSize)
		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				start := page * config.LeaderboardPageSize
				end := min(start+config.LeaderboardPageSize, len(rows))

				var description strings.Builder
				for i, row := range rows[start:end] {
					fmt.Fprintf(&description, "%s **%s** · %s\n", rankPrefix(start+i+1), row.name, row.value)
				}

				embed.
					SetTitle("🏅 Leaderboard · " + title).
					SetDescription(description.String()).
					SetColor(config.EmbedDefaultColor).
					SetFooter(fmt.Sprintf("Page %d/%d", page+1, totalPages), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}
