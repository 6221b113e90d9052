package focusbot

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/focus-bot/focusbot/sessions"
	"github.com/disgoorg/focus-bot/focusbot/views"
	"github.com/disgoorg/snowflake/v2"
)

// NotifyAutoCompleted announces a completion triggered by voice presence in
// the configured announce channel.
func (b *Bot) NotifyAutoCompleted(ctx context.Context, summary *sessions.CompletionSummary, reason sessions.AutoReason) error {
	channelID := b.Cfg.Focus.AnnounceChannel
	if channelID == 0 || b.Client == nil {
		return nil
	}

	heading := "⏹️ Session ended after disconnecting"
	if reason == sessions.ReasonAutoPost {
		heading = "⏹️ Session completed after leaving the focus room"
	}

	userID, err := snowflake.Parse(summary.Session.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", summary.Session.UserID, err)
	}

	_, err = b.Client.Rest().CreateMessage(channelID, discord.MessageCreate{
		Content:         discord.UserMention(userID),
		Embeds:          []discord.Embed{views.CompletionEmbed(summary, heading)},
		AllowedMentions: &discord.AllowedMentions{Users: []snowflake.ID{userID}},
	}, rest.WithCtx(ctx))
	return err
}
