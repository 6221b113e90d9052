package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/database/repositories"
	"github.com/disgoorg/focus-bot/focusbot/leaderboard"
	"github.com/disgoorg/focus-bot/focusbot/utils"
	"github.com/spf13/cobra"
)

var leaderboardFlags struct {
	period string
	guild  string
	limit  int
}

var leaderboardCMD = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the focus time leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		period := leaderboard.Period(leaderboardFlags.period)
		switch period {
		case leaderboard.PeriodDaily, leaderboard.PeriodWeekly, leaderboard.PeriodMonthly, leaderboard.PeriodAll:
		default:
			return fmt.Errorf("unknown period %q", period)
		}

		cfg, db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		loc, err := cfg.Focus.Location()
		if err != nil {
			return err
		}

		agg := leaderboard.NewAggregator(
			repositories.NewSessionRepository(db.BunDB()),
			repositories.NewStatsRepository(db.BunDB()),
		)
		entries, err := agg.TopByDuration(ctx, leaderboard.Query{
			Since:   leaderboard.PeriodStart(period, time.Now(), loc),
			GuildID: leaderboardFlags.guild,
			Limit:   leaderboardFlags.limit,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tUSER\tFOCUS\tSESSIONS")
		for i, en := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", i+1, en.Username, utils.FormatSeconds(en.Duration), en.Sessions)
		}
		return w.Flush()
	},
}

func init() {
	f := leaderboardCMD.Flags()
	f.StringVar(&leaderboardFlags.period, "period", string(leaderboard.PeriodWeekly), "daily, weekly, monthly or all")
	f.StringVar(&leaderboardFlags.guild, "guild", "", "restrict to one guild id")
	f.IntVar(&leaderboardFlags.limit, "limit", 10, "number of entries")
	rootCmd.AddCommand(leaderboardCMD)
}
