package main

import (
	"fmt"
	"os"

	"github.com/ianjackson/blackjack/internal/config"
	"github.com/ianjackson/blackjack/internal/session"
)

// PlayCmd runs an interactive table from an HCL configuration file.
type PlayCmd struct {
	Config   string  `short:"c" default:"blackjack.hcl" help:"Path to HCL configuration file"`
	Seed     int64   `help:"Shuffle seed (overrides config, 0 means random)"`
	Decks    int     `help:"Number of decks in the shoe (overrides config)"`
	Bet      float64 `help:"Default bet (overrides config)"`
	LogLevel string  `short:"l" help:"Log level: debug, info, warn, error (overrides config)"`
	NoLog    bool    `help:"Disable the JSON session log"`
}

func (p *PlayCmd) Run() error {
	cfg, err := config.Load(p.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Apply command line overrides
	if p.Seed != 0 {
		cfg.Table.Seed = p.Seed
	}
	if p.Decks != 0 {
		cfg.Table.NumDecks = p.Decks
	}
	if p.Bet != 0 {
		cfg.Table.DefaultBet = p.Bet
	}
	if p.LogLevel != "" {
		cfg.Session.LogLevel = p.LogLevel
	}
	if p.NoLog {
		cfg.Session.LogGame = false
	}

	logger := setupLogger(cfg.Session.LogLevel)
	ctx := setupSignalHandler(logger)

	s, err := session.New(cfg, os.Stdin, os.Stdout, logger)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}
