package focus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/focus-bot/focusbot"
	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/handlers"
	"github.com/disgoorg/focus-bot/focusbot/sessions"
	"github.com/disgoorg/focus-bot/focusbot/utils"
	"github.com/disgoorg/focus-bot/focusbot/views"
)

var intensityOption = discord.ApplicationCommandOptionInt{
	Name:        "intensity",
	Description: "How hard you are focusing, 1 (light) to 5 (deep work)",
	MinValue:    utils.Ptr(1),
	MaxValue:    utils.Ptr(5),
}

var activityOption = discord.ApplicationCommandOptionString{
	Name:         "activity",
	Description:  "What you are working on",
	Autocomplete: true,
	MaxLength:    utils.Ptr(config.MaxActivityLength),
}

var Focus = discord.SlashCommandCreate{
	Name:        "focus",
	Description: "⏱️ Track a focus session",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "start",
			Description: "Start a focus session",
			Options:     []discord.ApplicationCommandOption{activityOption, intensityOption},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "pause",
			Description: "Pause your running session",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "resume",
			Description: "Resume your paused session",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "end",
			Description: "Finish your session and collect XP",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "title",
					Description: "What you got done",
					MaxLength:   utils.Ptr(config.MaxTitleLength),
				},
				discord.ApplicationCommandOptionString{
					Name:        "description",
					Description: "Notes about the session",
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "cancel",
			Description: "Discard your session without recording it",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "status",
			Description: "Show your current session",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "log",
			Description: "Log a session you did without the bot",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionInt{
					Name:        "minutes",
					Description: "How long you focused",
					Required:    true,
					MinValue:    utils.Ptr(1),
					MaxValue:    utils.Ptr(int(config.MaxManualDuration / time.Minute)),
				},
				activityOption,
				intensityOption,
				discord.ApplicationCommandOptionString{
					Name:        "title",
					Description: "What you got done",
					MaxLength:   utils.Ptr(config.MaxTitleLength),
				},
				discord.ApplicationCommandOptionInt{
					Name:        "ended_minutes_ago",
					Description: "When the session ended, defaults to now",
					MinValue:    utils.Ptr(0),
				},
			},
		},
	},
}

var Commands = []discord.ApplicationCommandCreate{
	Focus,
}

type Handler struct {
	bot *focusbot.Bot
}

func NewHandler(b *focusbot.Bot) *Handler {
	return &Handler{bot: b}
}

func (h *Handler) Register(r handler.Router) {
	r.Route("/focus", func(r handler.Router) {
		r.Command("/start", handlers.WrapWithLogging("focus-start", h.HandleStart))
		r.Command("/pause", handlers.WrapWithLogging("focus-pause", h.HandlePause))
		r.Command("/resume", handlers.WrapWithLogging("focus-resume", h.HandleResume))
		r.Command("/end", handlers.WrapWithLogging("focus-end", h.HandleEnd))
		r.Command("/cancel", handlers.WrapWithLogging("focus-cancel", h.HandleCancel))
		r.Command("/status", handlers.WrapWithLogging("focus-status", h.HandleStatus))
		r.Command("/log", handlers.WrapWithLogging("focus-log", h.HandleLog))
		r.Autocomplete("/start", handlers.WrapAutocompleteWithLogging("focus-start", h.HandleActivityAutocomplete))
		r.Autocomplete("/log", handlers.WrapAutocompleteWithLogging("focus-log", h.HandleActivityAutocomplete))
	})
}

func guildID(e *handler.CommandEvent) string {
	if id := e.GuildID(); id != nil {
		return id.String()
	}
	return ""
}

func respondError(e *handler.CommandEvent, op string, err error) error {
	errType, msg := views.Classify(err)
	if errType == utils.SystemError {
		slog.Error("Focus command failed",
			slog.String("type", "cmd"),
			slog.String("operation", op),
			slog.String("user_id", e.User().ID.String()),
			slog.Any("error", err))
		return utils.EH.CreateSystemError(e)
	}
	return utils.EH.CreateClassifiedError(e, errType, msg)
}

func (h *Handler) HandleStart(e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
	defer cancel()

	data := e.SlashCommandInteractionData()
	session, err := h.bot.Sessions.Start(ctx, sessions.StartRequest{
		UserID:    e.User().ID.String(),
		Username:  e.User().Username,
		GuildID:   guildID(e),
		Activity:  data.String("activity"),
		Intensity: data.Int("intensity"),
	})
	if err != nil {
		return respondError(e, "start", err)
	}

	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{discord.NewEmbedBuilder().
			SetTitle("▶️ Focus session started").
			SetDescription(fmt.Sprintf("Working on **%s**. Use `/focus end` when you are done.", session.Activity)).
			SetColor(config.SuccessColor).
			SetTimestamp(session.StartTime).
			Build()},
	})
}

func (h *Handler) HandlePause(e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
	defer cancel()

	session, err := h.bot.Sessions.Pause(ctx, e.User().ID.String())
	if err != nil {
		return respondError(e, "pause", err)
	}
	return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("⏸️ Paused **%s** at %s focused.",
		session.Activity, utils.FormatDuration(session.Elapsed(time.Now()))))
}

func (h *Handler) HandleResume(e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
	defer cancel()

	session, err := h.bot.Sessions.Resume(ctx, e.User().ID.String())
	if err != nil {
		return respondError(e, "resume", err)
	}
	return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("▶️ Resumed **%s**.", session.Activity))
}

func (h *Handler) HandleEnd(e *handler.CommandEvent) error {
	if err := e.DeferCreateMessage(false); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
	defer cancel()

	data := e.SlashCommandInteractionData()
	summary, err := h.bot.Sessions.End(ctx, e.User().ID.String(), data.String("title"), data.String("description"))
	if summary == nil {
		errType, msg := views.Classify(err)
		return utils.EH.UpdateClassifiedError(e, errType, msg)
	}
	if err != nil {
		// the session is recorded; only the progression update failed
		slog.Error("Progression update failed after session end",
			slog.String("type", "cmd"),
			slog.String("user_id", e.User().ID.String()),
			slog.Any("error", err))
	}

	_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds: &[]discord.Embed{views.CompletionEmbed(summary, "✅ Focus session complete")},
	})
	return err
}

func (h *Handler) HandleCancel(e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
	defer cancel()

	if err := h.bot.Sessions.Cancel(ctx, e.User().ID.String()); err != nil {
		return respondError(e, "cancel", err)
	}
	return utils.EH.CreateInfoEmbed(e, "🗑️ Session cancelled. Nothing was recorded.")
}

func (h *Handler) HandleStatus(e *handler.CommandEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
	defer cancel()

	userID := e.User().ID.String()
	session, err := h.bot.Sessions.Get(ctx, userID)
	if err != nil {
		return respondError(e, "status", err)
	}
	elapsed, err := h.bot.Sessions.Elapsed(ctx, userID)
	if err != nil {
		return respondError(e, "status", err)
	}

	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{views.SessionEmbed(session, elapsed)},
		Flags:  discord.MessageFlagEphemeral,
	})
}

func (h *Handler) HandleLog(e *handler.CommandEvent) error {
	if err := e.DeferCreateMessage(false); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.CommandExecutionTimeout)
	defer cancel()

	data := e.SlashCommandInteractionData()
	entry := sessions.ManualEntry{
		UserID:    e.User().ID.String(),
		Username:  e.User().Username,
		GuildID:   guildID(e),
		Activity:  data.String("activity"),
		Title:     data.String("title"),
		Duration:  time.Duration(data.Int("minutes")) * time.Minute,
		Intensity: data.Int("intensity"),
	}
	if ago, ok := data.OptInt("ended_minutes_ago"); ok && ago > 0 {
		entry.EndedAt = time.Now().Add(-time.Duration(ago) * time.Minute)
	}

	summary, err := h.bot.Sessions.LogManual(ctx, entry)
	if summary == nil {
		errType, msg := views.Classify(err)
		return utils.EH.UpdateClassifiedError(e, errType, msg)
	}
	if err != nil {
		slog.Error("Progression update failed after manual log",
			slog.String("type", "cmd"),
			slog.String("user_id", entry.UserID),
			slog.Any("error", err))
	}

	_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds: &[]discord.Embed{views.CompletionEmbed(summary, "📝 Session logged")},
	})
	return err
}
