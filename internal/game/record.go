package game

import "time"

// Result is the settled outcome of a hand.
type Result int

const (
	NoResult Result = iota
	Win
	Lose
	Push
	Blackjack
	Busted
)

// String returns the string representation of a result
func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Push:
		return "push"
	case Blackjack:
		return "blackjack"
	case Busted:
		return "busted"
	default:
		return "none"
	}
}

// Multiplier returns the payout multiplier applied to the bet at settlement.
func (r Result) Multiplier() float64 {
	switch r {
	case Blackjack:
		return 1.5
	case Win:
		return 1.0
	case Push:
		return 0
	case Lose, Busted:
		return -1.0
	default:
		return 0
	}
}

// ActionRecord is a snapshot of one action taken during a round, in the
// shape the session log stores.
type ActionRecord struct {
	Action       string   `json:"action"`
	Hand         []string `json:"player_hand"`
	HandValue    int      `json:"hand_value"`
	DealerUpcard string   `json:"dealer_visible_card"`
}

// PlayerRecord is one player's slice of a round record.
type PlayerRecord struct {
	Name       string         `json:"name"`
	Strategy   string         `json:"strategy"`
	Bet        float64        `json:"bet"`
	Actions    []ActionRecord `json:"actions"`
	FinalHand  []string       `json:"final_hand"`
	FinalValue int            `json:"final_value"`
	Result     string         `json:"result"`
	Balance    float64        `json:"balance"`
	SatOut     bool           `json:"sat_out,omitempty"`
}

// DealerRecord captures the dealer's hand for a round record.
type DealerRecord struct {
	InitialHand []string `json:"initial_hand"`
	FinalHand   []string `json:"final_hand"`
	FinalValue  int      `json:"final_value"`
}

// RoundRecord is the structured record emitted at RoundEnd. The session
// logger persists it and the balance graph is derived from its balances.
type RoundRecord struct {
	RoundNumber int            `json:"game_number"`
	Dealer      DealerRecord   `json:"dealer"`
	Players     []PlayerRecord `json:"players"`
	Timestamp   time.Time      `json:"timestamp"`
}

// BalancePoint is one sample of a player's balance after a settled round.
type BalancePoint struct {
	Round   int
	Player  string
	Balance float64
}

// RoundObserver consumes round records as rounds complete. The session log
// writer and the renderer both subscribe through this interface.
type RoundObserver interface {
	RoundComplete(record RoundRecord)
}
