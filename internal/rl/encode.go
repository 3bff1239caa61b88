package rl

import "github.com/ianjackson/blackjack/internal/game"

// Encode maps the visible hand state to the network's input features. All
// features sit in [0,1] so the approximator generalizes across totals:
// hand total over 21, the soft flag, and the dealer upcard value over 11.
func Encode(view game.HandView) []float64 {
	soft := 0.0
	if view.Soft {
		soft = 1.0
	}
	return []float64{
		float64(view.Total) / 21.0,
		soft,
		float64(view.DealerUpcard.Value()) / 11.0,
	}
}
