package strategy

import "github.com/ianjackson/blackjack/internal/game"

// Book plays basic strategy from a lookup table keyed by player total, soft
// flag, and dealer upcard value. Any key outside the table falls back to
// Stand, and a Double the table asks for but the rules don't offer degrades
// to the hand's fallback action.
type Book struct {
	hard map[int]map[int]game.Action
}

// NewBook creates the by-the-books strategy.
func NewBook() *Book {
	return &Book{hard: buildHardTable()}
}

// Name identifies the strategy in logs and round records.
func (s *Book) Name() string { return "by_the_books" }

// Decide looks the hand up in the book.
func (s *Book) Decide(view game.HandView, legal []game.Action) game.Action {
	var action game.Action
	var fallback game.Action

	if view.Soft {
		action, fallback = s.softAction(view.Total, view.DealerUpcard.Value())
	} else {
		action = s.hardAction(view.Total, view.DealerUpcard.Value())
		fallback = game.Hit
	}

	if action == game.Double && !game.Contains(legal, game.Double) {
		return fallback
	}
	return action
}

// PlaceBet bets the table default, capped at balance.
func (s *Book) PlaceBet(balance, defaultBet float64) float64 {
	return min(defaultBet, balance)
}

func (s *Book) hardAction(total, upcard int) game.Action {
	row, ok := s.hard[upcard]
	if !ok {
		return game.Stand
	}
	action, ok := row[total]
	if !ok {
		return game.Stand
	}
	return action
}

// softAction covers hands with an ace counted as 11. Returns the preferred
// action plus what to do when a called-for Double is unavailable.
func (s *Book) softAction(total, upcard int) (action, fallback game.Action) {
	switch {
	case total >= 19:
		return game.Stand, game.Stand
	case total == 18:
		switch {
		case upcard >= 3 && upcard <= 6:
			return game.Double, game.Stand
		case upcard <= 8:
			return game.Stand, game.Stand
		default:
			return game.Hit, game.Hit
		}
	case total == 17:
		if upcard >= 3 && upcard <= 6 {
			return game.Double, game.Hit
		}
		return game.Hit, game.Hit
	case total >= 15:
		if upcard >= 4 && upcard <= 6 {
			return game.Double, game.Hit
		}
		return game.Hit, game.Hit
	default:
		if upcard >= 5 && upcard <= 6 {
			return game.Double, game.Hit
		}
		return game.Hit, game.Hit
	}
}

// buildHardTable produces the hard-total table: rows are dealer upcard
// values 2-11, columns player totals 4-21.
func buildHardTable() map[int]map[int]game.Action {
	table := make(map[int]map[int]game.Action, 10)
	for upcard := 2; upcard <= 11; upcard++ {
		row := make(map[int]game.Action, 18)
		for total := 4; total <= 21; total++ {
			row[total] = hardEntry(total, upcard)
		}
		table[upcard] = row
	}
	return table
}

func hardEntry(total, upcard int) game.Action {
	switch {
	case total >= 17:
		return game.Stand
	case total == 11:
		if upcard <= 10 {
			return game.Double
		}
		return game.Hit
	case total == 10:
		if upcard <= 9 {
			return game.Double
		}
		return game.Hit
	case total == 9:
		if upcard >= 3 && upcard <= 6 {
			return game.Double
		}
		return game.Hit
	case total >= 13:
		if upcard <= 6 {
			return game.Stand
		}
		return game.Hit
	case total == 12:
		if upcard >= 4 && upcard <= 6 {
			return game.Stand
		}
		return game.Hit
	default:
		return game.Hit
	}
}
