package game

// Player holds a seat at the table: identity, money, the current hand and
// the strategy that plays it. The dealer is a Player with no strategy.
type Player struct {
	Name     string
	Balance  float64
	Strategy Strategy

	// Per-round state, reset by resetForRound.
	Hand    Hand
	Bet     float64
	Doubled bool
	Active  bool
	Result  Result
	actions []ActionRecord
}

// NewPlayer creates a player with a starting balance and a strategy.
func NewPlayer(name string, balance float64, strategy Strategy) *Player {
	return &Player{
		Name:     name,
		Balance:  balance,
		Strategy: strategy,
	}
}

// resetForRound clears per-round state ahead of betting.
func (p *Player) resetForRound() {
	p.Hand = Hand{}
	p.Bet = 0
	p.Doubled = false
	p.Active = false
	p.Result = NoResult
	p.actions = nil
}

// recordAction appends an action snapshot for the round record.
func (p *Player) recordAction(action Action, upcard string) {
	cards := make([]string, len(p.Hand.Cards))
	for i, c := range p.Hand.Cards {
		cards[i] = c.String()
	}
	p.actions = append(p.actions, ActionRecord{
		Action:       action.String(),
		Hand:         cards,
		HandValue:    p.Hand.Total(),
		DealerUpcard: upcard,
	})
}
