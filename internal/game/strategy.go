package game

import "github.com/ianjackson/blackjack/internal/deck"

// HandView is the read-only state a strategy sees when deciding. It carries
// only information visible at the table: the acting hand, the dealer's
// upcard, and the acting player's money.
type HandView struct {
	Cards        []deck.Card
	Total        int
	Soft         bool
	DealerUpcard deck.Card
	Balance      float64
	Bet          float64
}

// Strategy decides actions for a hand. Implementations must return an action
// from the legal set and must not mutate anything outside themselves; the
// engine only ever offers currently-legal actions, so an illegal choice is
// structurally unreachable.
type Strategy interface {
	// Name identifies the strategy for logging and round records.
	Name() string

	// Decide picks one of the legal actions for the viewed hand.
	Decide(view HandView, legal []Action) Action

	// PlaceBet commits a bet for the round. A return of zero or more than
	// balance marks the player inactive for the round.
	PlaceBet(balance, defaultBet float64) float64
}

// Learner is a Strategy that learns from round outcomes. The engine resolves
// each learner-controlled hand after settlement and gives the learner one
// training opportunity per round.
type Learner interface {
	Strategy

	// ResolveHand reports the settled outcome of the hand this learner just
	// played, so recorded decisions can be credited with their reward.
	ResolveHand(result Result, doubled bool)

	// FinishRound marks the end of a round; the learner may run a training
	// step here.
	FinishRound()
}
