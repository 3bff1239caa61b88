// Package display renders the table to a terminal with lipgloss styling and
// reads human input.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/ianjackson/blackjack/internal/deck"
	"github.com/ianjackson/blackjack/internal/game"
)

// Renderer writes the table state to a terminal.
type Renderer struct {
	out    io.Writer
	styles *Styles
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, styles: NewStyles()}
}

// Card renders one card, red suits in red.
func (r *Renderer) Card(c deck.Card) string {
	if c.Suit.IsRed() {
		return r.styles.CardRed.Render(c.String())
	}
	return r.styles.CardBlack.Render(c.String())
}

func (r *Renderer) cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.Card(c)
	}
	return strings.Join(parts, " ")
}

// RoundHeader prints the banner that opens each round.
func (r *Renderer) RoundHeader(round int) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.styles.Header.Render(fmt.Sprintf("Round %d", round)))
}

// Deal shows the opening deal: each player's hand and the dealer's upcard
// with the hole card hidden.
func (r *Renderer) Deal(players []*game.Player, upcard deck.Card) {
	fmt.Fprintf(r.out, "%s ?? %s\n", r.styles.SubHeader.Render("Dealer:"), r.Card(upcard))
	for _, p := range players {
		if !p.Active {
			fmt.Fprintf(r.out, "%s sitting out\n", p.Name)
			continue
		}
		r.PlayerHand(p)
	}
}

// PlayerHand shows one player's current hand and total.
func (r *Renderer) PlayerHand(p *game.Player) {
	total := fmt.Sprintf("(%d)", p.Hand.Total())
	if p.Hand.IsSoft() {
		total = fmt.Sprintf("(soft %d)", p.Hand.Total())
	}
	fmt.Fprintf(r.out, "%s %s %s  bet %s\n",
		r.styles.SubHeader.Render(p.Name+":"),
		r.cards(p.Hand.Cards),
		total,
		r.styles.Money.Render(fmt.Sprintf("$%.0f", p.Bet)))
}

// DealerReveal shows the dealer's full hand after the hole card flips.
func (r *Renderer) DealerReveal(dealer *game.Player) {
	fmt.Fprintf(r.out, "%s %s (%d)\n",
		r.styles.SubHeader.Render("Dealer:"),
		r.cards(dealer.Hand.Cards),
		dealer.Hand.Total())
}

// Settlement prints each player's outcome and balance for the round.
func (r *Renderer) Settlement(record game.RoundRecord) {
	for _, pr := range record.Players {
		if pr.SatOut {
			continue
		}
		var styled string
		switch pr.Result {
		case "win", "blackjack":
			styled = r.styles.Win.Render(strings.ToUpper(pr.Result))
		case "lose", "busted":
			styled = r.styles.Lose.Render(strings.ToUpper(pr.Result))
		default:
			styled = r.styles.Push.Render(strings.ToUpper(pr.Result))
		}
		fmt.Fprintf(r.out, "%s: %s  balance %s\n",
			pr.Name, styled, r.styles.Money.Render(fmt.Sprintf("$%.2f", pr.Balance)))
	}
	fmt.Fprintln(r.out, r.styles.Separator.Render(strings.Repeat("─", 40)))
}

// Message prints a plain line.
func (r *Renderer) Message(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Error prints an error line.
func (r *Renderer) Error(format string, args ...any) {
	fmt.Fprintln(r.out, r.styles.Lose.Render(fmt.Sprintf(format, args...)))
}
