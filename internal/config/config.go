// Package config loads bot and CLI settings from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// Config holds settings shared by the bot and the CLI
type Config struct {
	// Redis connection
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Discord, only required by the bot
	DiscordToken  string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	// Game rules
	MaxPlayers    int  `env:"BANK_MAX_PLAYERS" envDefault:"50"`
	DefaultRounds int  `env:"BANK_DEFAULT_ROUNDS" envDefault:"10"`
	SevenRule     bool `env:"BANK_SEVEN_RULE" envDefault:"true"`

	// Undo snapshots kept per table
	HistoryLimit int64 `env:"BANK_HISTORY_LIMIT" envDefault:"100"`

	LogLevel string `env:"BANK_LOG_LEVEL" envDefault:"info"`
}

// Load reads the given .env files, if present, then parses the environment.
// Variables already set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values env cannot constrain
func (c *Config) Validate() error {
	if c.MaxPlayers < 2 {
		return fmt.Errorf("BANK_MAX_PLAYERS must be at least 2, got %d", c.MaxPlayers)
	}

	if c.DefaultRounds < 1 {
		return fmt.Errorf("BANK_DEFAULT_ROUNDS must be at least 1, got %d", c.DefaultRounds)
	}

	if c.HistoryLimit < 1 {
		return fmt.Errorf("BANK_HISTORY_LIMIT must be at least 1, got %d", c.HistoryLimit)
	}

	if _, err := log.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("BANK_LOG_LEVEL: %w", err)
	}

	return nil
}

// RedisOptions returns client options for the configured Redis
func (c *Config) RedisOptions() *redis.Options {
	return &redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

// NewLogger returns a stderr logger at the configured level
func (c *Config) NewLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})

	level, err := log.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
