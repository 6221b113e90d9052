// Package views renders domain results as Discord embeds shared by the
// slash commands and the automatic completion announcer.
package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/focus-bot/focusbot/achievements"
	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/disgoorg/focus-bot/focusbot/leveling"
	"github.com/disgoorg/focus-bot/focusbot/sessions"
	"github.com/disgoorg/focus-bot/focusbot/utils"
)

func RarityColor(r achievements.Rarity) int {
	switch r {
	case achievements.RarityUncommon:
		return config.RarityUncommonColor
	case achievements.RarityRare:
		return config.RarityRareColor
	case achievements.RarityEpic:
		return config.RarityEpicColor
	case achievements.RarityLegendary:
		return config.RarityLegendaryColor
	default:
		return config.RarityCommonColor
	}
}

var rarityRank = map[achievements.Rarity]int{
	achievements.RarityCommon:    0,
	achievements.RarityUncommon:  1,
	achievements.RarityRare:      2,
	achievements.RarityEpic:      3,
	achievements.RarityLegendary: 4,
}

func rarest(ids []string) achievements.Rarity {
	best := achievements.RarityCommon
	for _, id := range ids {
		if def, ok := achievements.Lookup(id); ok && rarityRank[def.Rarity] > rarityRank[best] {
			best = def.Rarity
		}
	}
	return best
}

// CompletionEmbed summarizes a finished session and what it earned.
func CompletionEmbed(summary *sessions.CompletionSummary, heading string) discord.Embed {
	s := summary.Session
	eb := discord.NewEmbedBuilder().
		SetTitle(heading).
		SetColor(config.SuccessColor).
		AddField("Duration", utils.FormatDuration(summary.Duration), true).
		AddField("Activity", s.Activity, true)

	if s.Title != "" {
		eb.SetDescription(fmt.Sprintf("**%s**\n%s", s.Title, s.Description))
	}

	res := summary.Result
	if res == nil {
		eb.SetFooter("Progress could not be recorded", "")
		return eb.Build()
	}

	xp := fmt.Sprintf("+%d XP", res.XPGained)
	if res.AchievementXP > 0 {
		xp += fmt.Sprintf(" (+%d from achievements)", res.AchievementXP)
	}
	if res.ChallengeBonus > 0 {
		xp += fmt.Sprintf(" (+%d weekly challenge bonus)", res.ChallengeBonus)
	}
	eb.AddField("XP", xp, false)

	level := fmt.Sprintf("Level %d • %s XP total", res.NewLevel, utils.FormatNumber(res.TotalXP))
	if res.LeveledUp {
		level = fmt.Sprintf("🎉 Level up! %d → %d • %s XP total", res.OldLevel, res.NewLevel, utils.FormatNumber(res.TotalXP))
		eb.SetColor(config.RarityLegendaryColor)
	}
	eb.AddField("Level", level, true)

	streak := fmt.Sprintf("🔥 %d day(s)", res.Streak)
	if res.StreakMilestone > 0 {
		streak += fmt.Sprintf(" • %d-day milestone!", res.StreakMilestone)
	}
	eb.AddField("Streak", streak, true)

	if len(res.Unlocked) > 0 {
		eb.AddField("Achievements unlocked", AchievementList(res.Unlocked), false)
		if !res.LeveledUp {
			eb.SetColor(RarityColor(rarest(res.Unlocked)))
		}
	}
	if res.ChallengeCompleted {
		eb.AddField("Weekly challenge", "✅ Completed this week's challenge", false)
	}
	return eb.Build()
}

// AchievementList renders unlocked ids with their catalog emoji and name.
func AchievementList(ids []string) string {
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		def, ok := achievements.Lookup(id)
		if !ok {
			lines = append(lines, "• "+id)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s **%s** (+%d XP)", def.Emoji, def.Name, def.XPReward))
	}
	return strings.Join(lines, "\n")
}

// SessionEmbed shows the live state of an active session.
func SessionEmbed(s *models.ActiveSession, elapsed time.Duration) discord.Embed {
	state := "▶️ Running"
	color := config.InfoColor
	switch {
	case s.PendingCompletion:
		state = "⏳ Left the focus room, completing soon"
		color = config.WarningColor
	case s.IsPaused && s.AutoPaused:
		state = "⏸️ Auto-paused after disconnecting"
		color = config.WarningColor
	case s.IsPaused:
		state = "⏸️ Paused"
		color = config.WarningColor
	}

	eb := discord.NewEmbedBuilder().
		SetTitle("Focus session").
		SetColor(color).
		AddField("Activity", s.Activity, true).
		AddField("Elapsed", utils.FormatDuration(elapsed), true).
		AddField("State", state, false).
		SetTimestamp(s.StartTime)
	if s.Intensity > 0 {
		eb.AddField("Intensity", strings.Repeat("⚡", s.Intensity), true)
	}
	if s.IsVCSession {
		eb.SetFooter("Voice session", "")
	}
	return eb.Build()
}

// StatsEmbed is the profile card of /stats.
func StatsEmbed(username string, stats *models.UserStats, calc *leveling.Calculator, goal *models.DailyGoal, recent []*models.CompletedSession) discord.Embed {
	level := calc.LevelForXP(stats.XP)
	progress := calc.LevelProgress(stats.XP)

	eb := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("📊 %s's focus stats", username)).
		SetColor(config.EmbedDefaultColor).
		AddField("Level", fmt.Sprintf("**%d** %s %.0f%%", level, utils.ProgressBar(progress, 10), progress), false).
		AddField("XP", fmt.Sprintf("%s (%s to next)", utils.FormatNumber(stats.XP), utils.FormatNumber(calc.XPToNextLevel(stats.XP))), true).
		AddField("Sessions", utils.FormatNumber(stats.TotalSessions), true).
		AddField("Focus time", utils.FormatSeconds(stats.TotalDuration), true).
		AddField("Streak", fmt.Sprintf("🔥 %d (best %d)", stats.CurrentStreak, stats.LongestStreak), true).
		AddField("Longest session", utils.FormatSeconds(stats.LongestSessionDuration), true).
		AddField("Achievements", fmt.Sprintf("%d / %d", len(stats.Achievements), len(achievements.Catalog())), true)

	if goal != nil {
		eb.AddField("Today's goal", goal.Goal, false)
	}

	if len(recent) > 0 {
		var b strings.Builder
		for _, s := range recent {
			fmt.Fprintf(&b, "• %s, %s <t:%d:R>\n", s.Activity, utils.FormatSeconds(s.Duration), s.EndTime.Unix())
		}
		eb.AddField("Recent sessions", b.String(), false)
	}
	return eb.Build()
}

// ProgressLine is one row of the achievements list.
func ProgressLine(p achievements.Progress) string {
	d := p.Definition
	if p.Unlocked {
		return fmt.Sprintf("%s **%s** · %s", d.Emoji, d.Name, d.Description)
	}
	return fmt.Sprintf("🔒 **%s** · %s\n`%s` %d/%d", d.Name, d.Description, utils.ProgressBar(p.Percent(), 10), min(p.Current, d.Threshold), d.Threshold)
}
