package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Table.NumDecks)
	assert.Equal(t, 10.0, cfg.Table.DefaultBet)
	require.Len(t, cfg.Players, 1)
	assert.Equal(t, StrategyHuman, cfg.Players[0].Strategy)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
table {
  num_decks     = 2
  default_bet   = 25
  deal_delay_ms = 150
  seed          = 99
}

session {
  log_level  = "debug"
  log_game   = true
  log_dir    = "out"
  show_graph = true
}

player "Ian" {
  strategy = "human"
  balance  = 1000
}

player "Bot" {
  strategy = "ai"
  balance  = 500
  model    = "bot.gob"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 2, cfg.Table.NumDecks)
	assert.Equal(t, 25.0, cfg.Table.DefaultBet)
	assert.Equal(t, int64(99), cfg.Table.Seed)
	assert.Equal(t, "out", cfg.Session.LogDir)
	require.Len(t, cfg.Players, 2)
	assert.Equal(t, "Bot", cfg.Players[1].Name)
	assert.Equal(t, "bot.gob", cfg.Players[1].Model)
}

func TestDefaultsFillMissingFields(t *testing.T) {
	path := writeConfig(t, `
table {}
session {}

player "Solo" {
  strategy = "by_the_books"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Table.NumDecks)
	assert.Equal(t, 10.0, cfg.Table.DefaultBet)
	assert.Equal(t, "info", cfg.Session.LogLevel)
	assert.Equal(t, 500.0, cfg.Players[0].Balance)
}

func TestMalformedFileErrors(t *testing.T) {
	path := writeConfig(t, `table { num_decks = `)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero decks", func(c *Config) { c.Table.NumDecks = 0 }},
		{"negative bet", func(c *Config) { c.Table.DefaultBet = -5 }},
		{"negative delay", func(c *Config) { c.Table.DealDelayMs = -1 }},
		{"no players", func(c *Config) { c.Players = nil }},
		{"bad log level", func(c *Config) { c.Session.LogLevel = "loud" }},
		{"unknown strategy", func(c *Config) { c.Players[0].Strategy = "martingale" }},
		{"unnamed player", func(c *Config) { c.Players[0].Name = "" }},
		{"model on non-ai", func(c *Config) { c.Players[0].Model = "x.gob" }},
		{"duplicate names", func(c *Config) {
			c.Players = append(c.Players, PlayerConfig{Name: c.Players[0].Name, Strategy: StrategyDefault, Balance: 100})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
