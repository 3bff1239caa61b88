package deck

import (
	"errors"
	"math/rand"
)

// ErrNoDecks is returned when a shoe is configured with zero decks. Every
// other form of depletion is handled by reshuffling.
var ErrNoDecks = errors.New("shoe requires at least one deck")

// DefaultReshuffleThreshold is the fraction of the shoe that must remain
// before a between-rounds reshuffle is triggered.
const DefaultReshuffleThreshold = 0.25

// Shoe is a multi-deck card source. Cards are drawn from a shuffled sequence
// via a cursor; Reshuffle rebuilds the sequence and resets the cursor.
type Shoe struct {
	cards     []Card
	cursor    int
	numDecks  int
	threshold float64
	rng       *rand.Rand
}

// NewShoe creates a shoe holding numDecks standard 52-card decks, shuffled
// with the provided RNG.
func NewShoe(rng *rand.Rand, numDecks int) (*Shoe, error) {
	if numDecks <= 0 {
		return nil, ErrNoDecks
	}

	s := &Shoe{
		cards:     make([]Card, 0, 52*numDecks),
		numDecks:  numDecks,
		threshold: DefaultReshuffleThreshold,
		rng:       rng,
	}
	s.rebuild()
	return s, nil
}

// NewStacked creates a single-deck shoe that deals exactly the given cards
// in order, for deterministic tests. Drawing past the end rebuilds a
// standard shuffled deck.
func NewStacked(rng *rand.Rand, cards ...Card) *Shoe {
	return &Shoe{
		cards:    append([]Card(nil), cards...),
		numDecks: 1,
		rng:      rng,
	}
}

// rebuild repopulates the full shoe and shuffles it.
func (s *Shoe) rebuild() {
	s.cards = s.cards[:0]
	for d := 0; d < s.numDecks; d++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Ace; rank <= King; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.shuffle()
	s.cursor = 0
}

// shuffle randomizes the order of the remaining sequence (Fisher-Yates)
func (s *Shoe) shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw returns the next card and advances the cursor. If the shoe runs dry
// mid-round it rebuilds in place rather than failing; the engine avoids this
// in normal play by reshuffling between rounds.
func (s *Shoe) Draw() Card {
	if s.cursor >= len(s.cards) {
		s.rebuild()
	}
	card := s.cards[s.cursor]
	s.cursor++
	return card
}

// Remaining returns the number of undrawn cards.
func (s *Shoe) Remaining() int {
	return len(s.cards) - s.cursor
}

// Size returns the total number of cards the shoe holds when full.
func (s *Shoe) Size() int {
	return 52 * s.numDecks
}

// NumDecks returns the number of decks in the shoe.
func (s *Shoe) NumDecks() int {
	return s.numDecks
}

// NeedsReshuffle reports whether the remaining fraction of the shoe has
// fallen below the reshuffle threshold. Checked between rounds only, so a
// reshuffle never lands in the middle of a deal.
func (s *Shoe) NeedsReshuffle() bool {
	return float64(s.Remaining()) < float64(s.Size())*s.threshold
}

// Reshuffle rebuilds the full shoe and reshuffles it.
func (s *Shoe) Reshuffle() {
	s.rebuild()
}
