package display

import (
	"fmt"
	"strings"

	"github.com/ianjackson/blackjack/internal/game"
)

// Markers assigned to players in seat order; wraps if the table is huge.
var graphMarkers = []rune{'*', '+', 'o', 'x', '#', '@'}

// RenderGraph draws balance history as an ASCII chart, one marker per
// player, rounds left to right. Returns "" when there is nothing to plot.
func RenderGraph(history []game.BalancePoint, width, height int) string {
	if len(history) == 0 || width < 2 || height < 2 {
		return ""
	}

	var players []string
	seen := make(map[string]bool)
	minB, maxB := history[0].Balance, history[0].Balance
	maxRound := 1
	for _, pt := range history {
		if !seen[pt.Player] {
			seen[pt.Player] = true
			players = append(players, pt.Player)
		}
		if pt.Balance < minB {
			minB = pt.Balance
		}
		if pt.Balance > maxB {
			maxB = pt.Balance
		}
		if pt.Round > maxRound {
			maxRound = pt.Round
		}
	}

	marker := make(map[string]rune, len(players))
	for i, name := range players {
		marker[name] = graphMarkers[i%len(graphMarkers)]
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	span := maxB - minB
	for _, pt := range history {
		col := 0
		if maxRound > 1 {
			col = (pt.Round - 1) * (width - 1) / (maxRound - 1)
		}
		row := height - 1
		if span > 0 {
			row = height - 1 - int((pt.Balance-minB)/span*float64(height-1)+0.5)
		}
		grid[row][col] = marker[pt.Player]
	}

	var b strings.Builder
	for i, line := range grid {
		switch i {
		case 0:
			fmt.Fprintf(&b, "%8.0f │%s\n", maxB, string(line))
		case height - 1:
			fmt.Fprintf(&b, "%8.0f │%s\n", minB, string(line))
		default:
			fmt.Fprintf(&b, "         │%s\n", string(line))
		}
	}
	fmt.Fprintf(&b, "         └%s\n", strings.Repeat("─", width))
	fmt.Fprintf(&b, "          round 1%sround %d\n",
		strings.Repeat(" ", max(1, width-7-len(fmt.Sprintf("round %d", maxRound)))), maxRound)
	for _, name := range players {
		fmt.Fprintf(&b, "          %c %s\n", marker[name], name)
	}
	return b.String()
}
