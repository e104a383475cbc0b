package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 50, cfg.MaxPlayers)
	assert.Equal(t, 10, cfg.DefaultRounds)
	assert.True(t, cfg.SevenRule)
	assert.Equal(t, int64(100), cfg.HistoryLimit)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("BANK_MAX_PLAYERS", "8")
	t.Setenv("BANK_SEVEN_RULE", "false")
	t.Setenv("BANK_LOG_LEVEL", "DEBUG")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "redis:6380", cfg.RedisOptions().Addr)
	assert.Equal(t, 2, cfg.RedisOptions().DB)
	assert.Equal(t, 8, cfg.MaxPlayers)
	assert.False(t, cfg.SevenRule)
	assert.Equal(t, log.DebugLevel, cfg.NewLogger().GetLevel())
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GUILD_ID=guild-from-file\nBANK_DEFAULT_ROUNDS=5\n"), 0o600))

	// godotenv sets these with os.Setenv, register them for cleanup
	t.Setenv("GUILD_ID", "")
	os.Unsetenv("GUILD_ID")
	t.Setenv("BANK_DEFAULT_ROUNDS", "")
	os.Unsetenv("BANK_DEFAULT_ROUNDS")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "guild-from-file", cfg.GuildID)
	assert.Equal(t, 5, cfg.DefaultRounds)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"BANK_MAX_PLAYERS":   "1",
		"BANK_HISTORY_LIMIT": "0",
		"BANK_LOG_LEVEL":     "loud",
		"REDIS_DB":           "not-a-number",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
