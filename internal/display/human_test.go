package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ianjackson/blackjack/internal/deck"
	"github.com/ianjackson/blackjack/internal/game"
)

func humanWith(input string, commands CommandFunc) (*Human, *bytes.Buffer) {
	var out bytes.Buffer
	return NewHuman(strings.NewReader(input), NewRenderer(&out), commands), &out
}

func view(total int) game.HandView {
	return game.HandView{
		Cards:        []deck.Card{deck.NewCard(deck.Spades, deck.Ten), deck.NewCard(deck.Hearts, deck.Six)},
		Total:        total,
		DealerUpcard: deck.NewCard(deck.Clubs, deck.Nine),
		Balance:      100,
		Bet:          10,
	}
}

func TestHotkeysMapToActions(t *testing.T) {
	tests := []struct {
		input string
		want  game.Action
	}{
		{"1\n", game.Hit},
		{"hit\n", game.Hit},
		{"2\n", game.Stand},
		{"s\n", game.Stand},
		{"3\n", game.Double},
		{"double\n", game.Double},
	}
	legal := []game.Action{game.Hit, game.Stand, game.Double}

	for _, tt := range tests {
		h, _ := humanWith(tt.input, nil)
		assert.Equal(t, tt.want, h.Decide(view(16), legal), "input %q", tt.input)
	}
}

func TestDoubleRejectedWhenNotOffered(t *testing.T) {
	h, out := humanWith("3\n2\n", nil)
	got := h.Decide(view(16), []game.Action{game.Hit, game.Stand})
	assert.Equal(t, game.Stand, got)
	assert.Contains(t, out.String(), "not available")
}

func TestClosedInputStands(t *testing.T) {
	h, _ := humanWith("", nil)
	assert.Equal(t, game.Stand, h.Decide(view(16), []game.Action{game.Hit, game.Stand}))
}

func TestGarbageReprompts(t *testing.T) {
	h, out := humanWith("banana\n1\n", nil)
	assert.Equal(t, game.Hit, h.Decide(view(16), []game.Action{game.Hit, game.Stand}))
	assert.Contains(t, out.String(), "Unrecognised")
}

func TestCommandsForwardedAndReprompted(t *testing.T) {
	var got []string
	h, _ := humanWith("/showbalance\n2\n", func(line string) { got = append(got, line) })
	assert.Equal(t, game.Stand, h.Decide(view(16), []game.Action{game.Hit, game.Stand}))
	assert.Equal(t, []string{"/showbalance"}, got)
}

func TestPlaceBetDefaultsOnEnter(t *testing.T) {
	h, _ := humanWith("\n", nil)
	assert.Equal(t, 10.0, h.PlaceBet(100, 10))
}

func TestPlaceBetDefaultCappedAtBalance(t *testing.T) {
	h, _ := humanWith("", nil)
	assert.Equal(t, 4.0, h.PlaceBet(4, 10))
}

func TestPlaceBetParsesAmount(t *testing.T) {
	h, _ := humanWith("25\n", nil)
	assert.Equal(t, 25.0, h.PlaceBet(100, 10))
}

func TestPlaceBetRejectsOversizedAndGarbage(t *testing.T) {
	h, out := humanWith("banana\n500\n50\n", nil)
	assert.Equal(t, 50.0, h.PlaceBet(100, 10))
	assert.Contains(t, out.String(), "positive amount")
	assert.Contains(t, out.String(), "exceeds balance")
}
