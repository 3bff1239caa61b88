// Package config loads table and player settings from an HCL file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete game configuration
type Config struct {
	Table   TableSettings   `hcl:"table,block"`
	Session SessionSettings `hcl:"session,block"`
	Players []PlayerConfig  `hcl:"player,block"`
}

// TableSettings contains shoe and betting settings
type TableSettings struct {
	NumDecks    int     `hcl:"num_decks,optional"`
	DefaultBet  float64 `hcl:"default_bet,optional"`
	DealDelayMs int     `hcl:"deal_delay_ms,optional"`
	Seed        int64   `hcl:"seed,optional"`
}

// SessionSettings contains output and logging settings
type SessionSettings struct {
	LogLevel  string `hcl:"log_level,optional"`
	LogGame   bool   `hcl:"log_game,optional"`
	LogDir    string `hcl:"log_dir,optional"`
	ShowGraph bool   `hcl:"show_graph,optional"`
}

// PlayerConfig describes one seat at the table
type PlayerConfig struct {
	Name     string  `hcl:"name,label"`
	Strategy string  `hcl:"strategy"`
	Balance  float64 `hcl:"balance,optional"`
	Model    string  `hcl:"model,optional"`
}

// Strategy names accepted in player blocks.
const (
	StrategyHuman   = "human"
	StrategyDefault = "default"
	StrategyBook    = "by_the_books"
	StrategyAI      = "ai"
)

// Default returns the default configuration: one human seat against the
// dealer, six-deck shoe.
func Default() *Config {
	return &Config{
		Table: TableSettings{
			NumDecks:    6,
			DefaultBet:  10,
			DealDelayMs: 0,
		},
		Session: SessionSettings{
			LogLevel:  "info",
			LogGame:   true,
			LogDir:    "logs",
			ShowGraph: true,
		},
		Players: []PlayerConfig{
			{Name: "Player", Strategy: StrategyHuman, Balance: 500},
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults; a present but malformed file is an error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := Default()

	if cfg.Table.NumDecks == 0 {
		cfg.Table.NumDecks = defaults.Table.NumDecks
	}
	if cfg.Table.DefaultBet == 0 {
		cfg.Table.DefaultBet = defaults.Table.DefaultBet
	}
	if cfg.Session.LogLevel == "" {
		cfg.Session.LogLevel = defaults.Session.LogLevel
	}
	if cfg.Session.LogDir == "" {
		cfg.Session.LogDir = defaults.Session.LogDir
	}
	if len(cfg.Players) == 0 {
		cfg.Players = defaults.Players
	}
	for i := range cfg.Players {
		if cfg.Players[i].Balance == 0 {
			cfg.Players[i].Balance = 500
		}
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.NumDecks <= 0 {
		return fmt.Errorf("num_decks must be positive")
	}
	if c.Table.DefaultBet <= 0 {
		return fmt.Errorf("default_bet must be positive")
	}
	if c.Table.DealDelayMs < 0 {
		return fmt.Errorf("deal_delay_ms cannot be negative")
	}
	if len(c.Players) == 0 {
		return fmt.Errorf("at least one player is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Session.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.Session.LogLevel)
	}

	validStrategies := map[string]bool{
		StrategyHuman:   true,
		StrategyDefault: true,
		StrategyBook:    true,
		StrategyAI:      true,
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player name is required")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player name: %s", p.Name)
		}
		seen[p.Name] = true

		if !validStrategies[p.Strategy] {
			return fmt.Errorf("invalid strategy for %s: %s", p.Name, p.Strategy)
		}
		if p.Balance < 0 {
			return fmt.Errorf("balance for %s cannot be negative", p.Name)
		}
		if p.Model != "" && p.Strategy != StrategyAI {
			return fmt.Errorf("model is only valid for ai players, set on %s", p.Name)
		}
	}
	return nil
}
