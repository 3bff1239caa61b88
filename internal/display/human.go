package display

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ianjackson/blackjack/internal/game"
)

// CommandFunc handles a slash command typed at any prompt. It receives the
// full line, "/graph" style.
type CommandFunc func(line string)

// Human is an interactive strategy reading decisions from a terminal.
// Hotkeys follow the on-screen menu; slash commands are forwarded to the
// session's command handler.
type Human struct {
	in       *bufio.Reader
	renderer *Renderer
	commands CommandFunc
	eof      bool
}

// NewHuman creates a human strategy reading from in.
func NewHuman(in io.Reader, renderer *Renderer, commands CommandFunc) *Human {
	return &Human{
		in:       bufio.NewReader(in),
		renderer: renderer,
		commands: commands,
	}
}

func (h *Human) Name() string { return "human" }

// Decide prompts until the player picks a legal action. A closed input
// stream stands, so a piped session ends gracefully.
func (h *Human) Decide(view game.HandView, legal []game.Action) game.Action {
	for {
		prompt := fmt.Sprintf("Your hand: %s (%d)  Dealer shows: %s\n[1] hit  [2] stand",
			h.renderer.cards(view.Cards), view.Total, h.renderer.Card(view.DealerUpcard))
		if game.Contains(legal, game.Double) {
			prompt += "  [3] double"
		}
		h.renderer.Message("%s", h.renderer.styles.Prompt.Render(prompt))

		line, ok := h.readLine()
		if !ok {
			return game.Stand
		}

		switch strings.ToLower(line) {
		case "1", "h", "hit":
			return game.Hit
		case "2", "s", "stand":
			return game.Stand
		case "3", "d", "double":
			if game.Contains(legal, game.Double) {
				return game.Double
			}
			h.renderer.Error("Double is not available on this hand")
		case "":
			// Re-prompt on a bare enter.
		default:
			if h.dispatchCommand(line) {
				continue
			}
			h.renderer.Error("Unrecognised input %q", line)
		}
	}
}

// PlaceBet prompts for a bet, enter accepting the default. Bets the player
// cannot cover are rejected and re-prompted.
func (h *Human) PlaceBet(balance, defaultBet float64) float64 {
	fallback := min(defaultBet, balance)
	for {
		h.renderer.Message("%s", h.renderer.styles.Prompt.Render(
			fmt.Sprintf("Balance $%.2f. Bet [$%.0f]:", balance, fallback)))

		line, ok := h.readLine()
		if !ok || line == "" {
			return fallback
		}
		if h.dispatchCommand(line) {
			continue
		}

		bet, err := strconv.ParseFloat(strings.TrimPrefix(line, "$"), 64)
		if err != nil || bet <= 0 {
			h.renderer.Error("Enter a positive amount")
			continue
		}
		if bet > balance {
			h.renderer.Error("Bet $%.2f exceeds balance $%.2f", bet, balance)
			continue
		}
		return bet
	}
}

func (h *Human) dispatchCommand(line string) bool {
	if !strings.HasPrefix(line, "/") {
		return false
	}
	if h.commands == nil {
		h.renderer.Error("Commands are not available here")
		return true
	}
	h.commands(line)
	return true
}

func (h *Human) readLine() (string, bool) {
	if h.eof {
		return "", false
	}
	line, err := h.in.ReadString('\n')
	if err != nil {
		h.eof = true
		if len(strings.TrimSpace(line)) == 0 {
			return "", false
		}
	}
	return strings.TrimSpace(line), true
}
