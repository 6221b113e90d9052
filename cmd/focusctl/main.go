package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/disgoorg/focus-bot/focusbot"
	"github.com/disgoorg/focus-bot/focusbot/database"
	"github.com/disgoorg/focus-bot/focusbot/logger"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "focusctl",
	Short:         "Maintenance tasks for the focus bot database",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler()))

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB loads the bot config and connects to its database with the schema in place.
func openDB(ctx context.Context) (*focusbot.Config, *database.DB, error) {
	cfg, err := focusbot.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.InitializeSchema(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("Database ready",
		slog.String("driver", db.Driver()),
		slog.Duration("took", time.Since(start)))
	return cfg, db, nil
}
