package focusbot

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/database"
	"github.com/disgoorg/snowflake/v2"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	EnvBotToken   = "FOCUS_BOT_TOKEN"
	EnvDBPassword = "FOCUS_DB_PASSWORD"
	EnvDBDriver   = "FOCUS_DB_DRIVER"
)

// LoadConfig reads the TOML file at path, then lets the environment (and a
// .env file next to the process, when present) override secrets.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", slog.Any("error", err))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err = toml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyEnv()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: slog.LevelInfo},
		DB: database.DBConfig{
			Driver:   database.DriverPostgres,
			Host:     "localhost",
			Port:     5432,
			PoolSize: 10,
		},
		Focus: FocusConfig{
			Timezone:        "UTC",
			AutoEndMinutes:  int(config.DefaultAutoEndDelay / time.Minute),
			AutoPostMinutes: int(config.DefaultAutoPostDelay / time.Minute),
			DefaultActivity: config.DefaultActivity,
		},
	}
}

type Config struct {
	Log   LogConfig         `toml:"log"`
	Bot   BotConfig         `toml:"bot"`
	DB    database.DBConfig `toml:"db"`
	Focus FocusConfig       `toml:"focus"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type FocusConfig struct {
	FocusRooms      []snowflake.ID `toml:"focus_rooms"`
	AnnounceChannel snowflake.ID   `toml:"announce_channel"`
	Timezone        string         `toml:"timezone"`
	AutoEndMinutes  int            `toml:"auto_end_minutes"`
	AutoPostMinutes int            `toml:"auto_post_minutes"`
	DefaultActivity string         `toml:"default_activity"`
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBotToken); v != "" {
		c.Bot.Token = v
	}
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.DB.Password = v
	}
	if v := os.Getenv(EnvDBDriver); v != "" {
		c.DB.Driver = strings.ToLower(v)
	}
}

// Validate rejects settings the bot cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case database.DriverPostgres, database.DriverSQLite:
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	if c.Focus.AutoEndMinutes <= 0 || c.Focus.AutoPostMinutes <= 0 {
		return fmt.Errorf("focus delays must be positive")
	}
	if _, err := c.Focus.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the timezone used for day, week and month boundaries.
func (f FocusConfig) Location() (*time.Location, error) {
	if f.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(f.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", f.Timezone, err)
	}
	return loc, nil
}

func (f FocusConfig) AutoEndDelay() time.Duration {
	return time.Duration(f.AutoEndMinutes) * time.Minute
}

func (f FocusConfig) AutoPostDelay() time.Duration {
	return time.Duration(f.AutoPostMinutes) * time.Minute
}

// RoomIDs returns the focus rooms in the string form voice events carry.
func (f FocusConfig) RoomIDs() []string {
	ids := make([]string, len(f.FocusRooms))
	for i, id := range f.FocusRooms {
		ids[i] = id.String()
	}
	return ids
}
