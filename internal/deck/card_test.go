package deck

import "testing"

func TestCardValue(t *testing.T) {
	tests := []struct {
		card  Card
		value int
	}{
		{NewCard(Spades, Ace), 11},
		{NewCard(Hearts, Two), 2},
		{NewCard(Diamonds, Nine), 9},
		{NewCard(Clubs, Ten), 10},
		{NewCard(Spades, Jack), 10},
		{NewCard(Hearts, Queen), 10},
		{NewCard(Diamonds, King), 10},
	}

	for _, tt := range tests {
		if got := tt.card.Value(); got != tt.value {
			t.Errorf("%s: expected value %d, got %d", tt.card, tt.value, got)
		}
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{NewCard(Spades, Ace), "A♠"},
		{NewCard(Hearts, Ten), "10♥"},
		{NewCard(Diamonds, Queen), "Q♦"},
		{NewCard(Clubs, Seven), "7♣"},
	}

	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestIsAce(t *testing.T) {
	if !NewCard(Spades, Ace).IsAce() {
		t.Error("ace should report IsAce")
	}
	if NewCard(Spades, King).IsAce() {
		t.Error("king should not report IsAce")
	}
}

func TestSuitIsRed(t *testing.T) {
	if !Hearts.IsRed() || !Diamonds.IsRed() {
		t.Error("hearts and diamonds are red")
	}
	if Spades.IsRed() || Clubs.IsRed() {
		t.Error("spades and clubs are black")
	}
}
