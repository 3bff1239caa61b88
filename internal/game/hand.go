package game

import (
	"fmt"
	"strings"

	"github.com/ianjackson/blackjack/internal/deck"
)

// Hand is an ordered set of dealt cards with a derived blackjack value.
// Hands only ever grow; a new round starts from a fresh Hand.
type Hand struct {
	Cards []deck.Card
}

// Add appends a drawn card to the hand.
func (h *Hand) Add(card deck.Card) {
	h.Cards = append(h.Cards, card)
}

// Total returns the best total not exceeding 21 when possible. Each ace
// starts at 11 and is demoted to 1 while the total is over 21.
func (h *Hand) Total() int {
	total, _ := h.evaluate()
	return total
}

// IsSoft reports whether an ace is currently counted as 11 in the total.
func (h *Hand) IsSoft() bool {
	_, soft := h.evaluate()
	return soft
}

// IsBust reports whether even the minimal total (all aces as 1) exceeds 21.
func (h *Hand) IsBust() bool {
	return h.Total() > 21
}

// IsNatural reports whether the hand is a two-card 21.
func (h *Hand) IsNatural() bool {
	return len(h.Cards) == 2 && h.Total() == 21
}

// NumCards returns the number of cards in the hand.
func (h *Hand) NumCards() int {
	return len(h.Cards)
}

func (h *Hand) evaluate() (total int, soft bool) {
	aces := 0
	for _, c := range h.Cards {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for aces > 0 && total > 21 {
		total -= 10
		aces--
	}
	return total, aces > 0
}

// String returns the cards and total, e.g. "[A♠, K♥] (21)".
func (h *Hand) String() string {
	names := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		names[i] = c.String()
	}
	return fmt.Sprintf("[%s] (%d)", strings.Join(names, ", "), h.Total())
}
