package deck

import "fmt"

// Suit represents a card suit. Suits are cosmetic in blackjack; they never
// affect hand value.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Ace Rank = 1 + iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r == Ace:
		return "A"
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	default:
		return "?"
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Value returns the blackjack value of the card. Face cards count 10 and
// aces count 11 here; demoting an ace to 1 is the hand evaluator's job.
func (c Card) Value() int {
	switch {
	case c.Rank == Ace:
		return 11
	case c.Rank >= Ten:
		return 10
	default:
		return int(c.Rank)
	}
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}
