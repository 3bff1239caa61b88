package session

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ianjackson/blackjack/internal/deck"
	"github.com/ianjackson/blackjack/internal/game"
	"github.com/ianjackson/blackjack/internal/randutil"
	"github.com/ianjackson/blackjack/internal/rl"
	"github.com/ianjackson/blackjack/internal/statistics"
)

// TrainConfig holds settings for a closed training run: one learning agent
// heads-up against the dealer, no pacing, no display.
type TrainConfig struct {
	Rounds     int
	Balance    float64
	DefaultBet float64
	NumDecks   int
	Seed       int64
	ModelPath  string
	SaveEvery  int // checkpoint interval in rounds; 0 saves only at the end
	LogEvery   int // progress log interval in rounds
}

// Trainer drives the training loop.
type Trainer struct {
	cfg    TrainConfig
	engine *game.Engine
	agent  *rl.Agent
	player *game.Player
	stats  *statistics.Statistics
	logger *log.Logger
}

// NewTrainer builds a training table, resuming from the model checkpoint
// when one exists.
func NewTrainer(cfg TrainConfig, logger *log.Logger) (*Trainer, error) {
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive")
	}
	if cfg.Balance <= 0 {
		return nil, fmt.Errorf("balance must be positive")
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 100
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	rng := randutil.New(cfg.Seed)
	shoe, err := deck.NewShoe(rng, cfg.NumDecks)
	if err != nil {
		return nil, err
	}

	agent := rl.LoadAgent("trainee", cfg.ModelPath, rng, rl.DefaultConfig(), logger)
	player := game.NewPlayer("trainee", cfg.Balance, agent)

	t := &Trainer{
		cfg:    cfg,
		agent:  agent,
		player: player,
		stats:  statistics.New(),
		logger: logger.WithPrefix("trainer"),
	}
	t.engine = game.NewEngine(shoe, []*game.Player{player}, game.EngineConfig{
		DefaultBet: cfg.DefaultBet,
	}, logger)
	t.engine.AddObserver(t.stats)
	return t, nil
}

// Run plays the configured number of rounds, checkpointing along the way.
// Training stops early when the agent goes broke or the context is
// cancelled; the model is saved either way.
func (t *Trainer) Run(ctx context.Context) (*statistics.Statistics, error) {
	t.logger.Info("Training started",
		"rounds", t.cfg.Rounds,
		"balance", t.cfg.Balance,
		"epsilon", t.agent.Epsilon(),
		"episodes", t.agent.Episodes())

	var runErr error
	for round := 1; round <= t.cfg.Rounds; round++ {
		if _, err := t.engine.PlayRound(ctx); err != nil {
			runErr = err
			break
		}

		if t.player.Balance <= 0 {
			t.logger.Warn("Agent went broke, stopping early", "round", round)
			break
		}
		if t.cfg.SaveEvery > 0 && round%t.cfg.SaveEvery == 0 && t.cfg.ModelPath != "" {
			if err := t.agent.Save(t.cfg.ModelPath); err != nil {
				t.logger.Error("Checkpoint save failed", "error", err)
			}
		}
		if round%t.cfg.LogEvery == 0 {
			ps := t.stats.Player("trainee")
			t.logger.Info("Training progress",
				"round", round,
				"balance", t.player.Balance,
				"epsilon", t.agent.Epsilon(),
				"win_rate", fmt.Sprintf("%.3f", ps.WinRate()))
		}
	}

	if t.cfg.ModelPath != "" {
		if err := t.agent.Save(t.cfg.ModelPath); err != nil && runErr == nil {
			runErr = err
		}
	}

	ps := t.stats.Player("trainee")
	if ps != nil {
		t.logger.Info("Training finished",
			"rounds", ps.Rounds,
			"win_rate", fmt.Sprintf("%.3f", ps.WinRate()),
			"net", ps.Net,
			"epsilon", t.agent.Epsilon())
	}
	return t.stats, runErr
}
