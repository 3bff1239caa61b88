// Package strategy provides the built-in bot strategies: the naive default
// and the basic-strategy book table. The learning strategy lives in
// internal/rl.
package strategy

import "github.com/ianjackson/blackjack/internal/game"

// Default hits below 17 and stands otherwise. It never doubles.
type Default struct{}

// NewDefault creates the default strategy.
func NewDefault() *Default {
	return &Default{}
}

// Name identifies the strategy in logs and round records.
func (s *Default) Name() string { return "default" }

// Decide hits on any total below 17.
func (s *Default) Decide(view game.HandView, legal []game.Action) game.Action {
	if view.Total < 17 {
		return game.Hit
	}
	return game.Stand
}

// PlaceBet bets the table default, capped at balance.
func (s *Default) PlaceBet(balance, defaultBet float64) float64 {
	return min(defaultBet, balance)
}
