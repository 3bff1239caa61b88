package main

import (
	"github.com/ianjackson/blackjack/internal/session"
)

// TrainCmd runs the learning agent heads-up against the dealer with no
// display and no pacing, checkpointing the model as it goes.
type TrainCmd struct {
	Rounds    int     `default:"10000" help:"Number of rounds to play"`
	Balance   float64 `default:"10000" help:"Agent starting balance"`
	Bet       float64 `default:"1" help:"Bet per round"`
	Decks     int     `default:"6" help:"Number of decks in the shoe"`
	Seed      int64   `help:"Shuffle seed (0 means random)"`
	Model     string  `short:"m" default:"model.gob" help:"Model checkpoint path"`
	SaveEvery int     `default:"1000" help:"Checkpoint interval in rounds"`
	LogLevel  string  `short:"l" default:"info" help:"Log level: debug, info, warn, error"`
}

func (t *TrainCmd) Run() error {
	logger := setupLogger(t.LogLevel)
	ctx := setupSignalHandler(logger)

	trainer, err := session.NewTrainer(session.TrainConfig{
		Rounds:     t.Rounds,
		Balance:    t.Balance,
		DefaultBet: t.Bet,
		NumDecks:   t.Decks,
		Seed:       t.Seed,
		ModelPath:  t.Model,
		SaveEvery:  t.SaveEvery,
	}, logger)
	if err != nil {
		return err
	}

	_, err = trainer.Run(ctx)
	return err
}
