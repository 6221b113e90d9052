package focusbot

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/focus-bot/focusbot/achievements"
	"github.com/disgoorg/focus-bot/focusbot/challenges"
	"github.com/disgoorg/focus-bot/focusbot/database"
	"github.com/disgoorg/focus-bot/focusbot/database/repositories"
	"github.com/disgoorg/focus-bot/focusbot/goals"
	"github.com/disgoorg/focus-bot/focusbot/leaderboard"
	"github.com/disgoorg/focus-bot/focusbot/leveling"
	"github.com/disgoorg/focus-bot/focusbot/progression"
	"github.com/disgoorg/focus-bot/focusbot/sessions"
	"github.com/disgoorg/paginator"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string
	Location  *time.Location
	DB        *database.DB

	SessionRepository repositories.SessionRepository
	StatsRepository   repositories.StatsRepository

	Calculator   *leveling.Calculator
	Achievements *achievements.Engine
	Challenges   *challenges.Tracker
	Goals        *goals.Tracker
	Progression  *progression.Engine
	Leaderboard  *leaderboard.Aggregator
	Timers       *sessions.TimerRegistry
	Sessions     *sessions.Manager
	Voice        *sessions.Coordinator
}

// InitServices builds the domain services on top of an open database.
func (b *Bot) InitServices(db *database.DB) error {
	loc, err := b.Cfg.Focus.Location()
	if err != nil {
		return err
	}
	b.Location = loc
	b.DB = db

	bunDB := db.BunDB()
	b.SessionRepository = repositories.NewSessionRepository(bunDB)
	b.StatsRepository = repositories.NewStatsRepository(bunDB)

	b.Calculator = leveling.Default
	b.Achievements = achievements.NewEngine(b.StatsRepository, b.Calculator)
	b.Challenges = challenges.NewTracker(repositories.NewChallengeRepository(bunDB), loc)
	b.Goals = goals.NewTracker(repositories.NewGoalRepository(bunDB), loc)
	b.Progression = progression.NewEngine(b.StatsRepository, b.Goals, b.Achievements, b.Challenges,
		progression.WithLocation(loc),
		progression.WithCalculator(b.Calculator))
	b.Leaderboard = leaderboard.NewAggregator(b.SessionRepository, b.StatsRepository)

	b.Timers = sessions.NewTimerRegistry()
	b.Sessions = sessions.NewManager(b.SessionRepository, &leaderboardPurger{b.Progression, b.Leaderboard}, b.Timers,
		sessions.WithDefaultActivity(b.Cfg.Focus.DefaultActivity))
	b.Voice = sessions.NewCoordinator(b.Sessions, b.Timers, b, sessions.VoiceConfig{
		FocusRooms:    b.Cfg.Focus.RoomIDs(),
		AutoEndDelay:  b.Cfg.Focus.AutoEndDelay(),
		AutoPostDelay: b.Cfg.Focus.AutoPostDelay(),
	})
	return nil
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds, gateway.IntentGuildVoiceStates)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds, cache.FlagVoiceStates)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Focus Bot is now ready",
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("focus rooms"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}

// Close stops pending timers and waits for running callbacks.
func (b *Bot) Close() {
	if b.Timers != nil {
		b.Timers.Shutdown()
	}
}

// leaderboardPurger drops cached boards whenever a completion lands.
type leaderboardPurger struct {
	recorder sessions.CompletionRecorder
	boards   *leaderboard.Aggregator
}

func (p *leaderboardPurger) RecordCompletion(ctx context.Context, c progression.Completion) (*progression.Result, error) {
	res, err := p.recorder.RecordCompletion(ctx, c)
	p.boards.Purge()
	return res, err
}
