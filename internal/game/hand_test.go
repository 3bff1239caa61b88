package game

import (
	"testing"

	"github.com/ianjackson/blackjack/internal/deck"
)

func hand(ranks ...deck.Rank) *Hand {
	h := &Hand{}
	for _, r := range ranks {
		h.Add(deck.NewCard(deck.Spades, r))
	}
	return h
}

func TestHandTotal(t *testing.T) {
	tests := []struct {
		name  string
		ranks []deck.Rank
		total int
		soft  bool
	}{
		{"simple", []deck.Rank{deck.Ten, deck.Seven}, 17, false},
		{"face cards", []deck.Rank{deck.King, deck.Queen}, 20, false},
		{"soft ace", []deck.Rank{deck.Ace, deck.Six}, 17, true},
		{"natural", []deck.Rank{deck.Ace, deck.King}, 21, true},
		{"demoted ace", []deck.Rank{deck.Ace, deck.Six, deck.Nine}, 16, false},
		{"two aces", []deck.Rank{deck.Ace, deck.Ace}, 12, true},
		{"two aces plus nine", []deck.Rank{deck.Ace, deck.Ace, deck.Nine}, 21, true},
		{"all four aces", []deck.Rank{deck.Ace, deck.Ace, deck.Ace, deck.Ace}, 14, true},
		{"hard twenty", []deck.Rank{deck.Ten, deck.Five, deck.Five}, 20, false},
		{"bust", []deck.Rank{deck.Ten, deck.Ten, deck.Five}, 25, false},
		{"ace saves bust", []deck.Rank{deck.Ace, deck.King, deck.Queen}, 21, false},
		{"empty", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := hand(tt.ranks...)
			if got := h.Total(); got != tt.total {
				t.Errorf("expected total %d, got %d", tt.total, got)
			}
			if got := h.IsSoft(); got != tt.soft {
				t.Errorf("expected soft=%v, got %v", tt.soft, got)
			}
		})
	}
}

func TestIsNatural(t *testing.T) {
	if !hand(deck.Ace, deck.King).IsNatural() {
		t.Error("A+K should be a natural")
	}
	if hand(deck.Ten, deck.Seven, deck.Four).IsNatural() {
		t.Error("three-card 21 is not a natural")
	}
	if hand(deck.Ten, deck.Seven).IsNatural() {
		t.Error("two-card 17 is not a natural")
	}
}

// Hand (10,10,5) busts with a minimal total of 25.
func TestIsBust(t *testing.T) {
	h := hand(deck.Ten, deck.Ten, deck.Five)
	if !h.IsBust() {
		t.Error("25 should be bust")
	}
	if h.Total() != 25 {
		t.Errorf("expected total 25, got %d", h.Total())
	}

	if hand(deck.Ace, deck.Ten, deck.Ten).IsBust() {
		t.Error("A+10+10 = 21 should not be bust")
	}
}

// The evaluator must find a total <= 21 whenever any assignment of ace
// values achieves one.
func TestAceAssignmentIsOptimal(t *testing.T) {
	tests := []struct {
		ranks []deck.Rank
		total int
	}{
		{[]deck.Rank{deck.Ace, deck.Ace, deck.Ten, deck.Nine}, 21},
		{[]deck.Rank{deck.Ace, deck.Ace, deck.Ace, deck.King, deck.Eight}, 21},
		{[]deck.Rank{deck.Ace, deck.Nine}, 20},
		{[]deck.Rank{deck.Ace, deck.Nine, deck.Ace}, 21},
	}

	for _, tt := range tests {
		h := hand(tt.ranks...)
		if got := h.Total(); got != tt.total {
			t.Errorf("%v: expected %d, got %d", tt.ranks, tt.total, got)
		}
		if h.Total() > 21 && !h.IsBust() {
			t.Errorf("%v: total over 21 must be bust", tt.ranks)
		}
	}
}

func TestHandString(t *testing.T) {
	h := hand(deck.Ace, deck.King)
	if got := h.String(); got != "[A♠, K♠] (21)" {
		t.Errorf("unexpected hand string %q", got)
	}
}
