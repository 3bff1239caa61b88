package game

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/ianjackson/blackjack/internal/deck"
)

// Phase tags the round state machine. A round runs
// Betting → Dealing → PlayerTurns → DealerTurn → Settlement → RoundEnd.
type Phase int

const (
	Betting Phase = iota
	Dealing
	PlayerTurns
	DealerTurn
	Settlement
	RoundEnd
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case Betting:
		return "betting"
	case Dealing:
		return "dealing"
	case PlayerTurns:
		return "player_turns"
	case DealerTurn:
		return "dealer_turn"
	case Settlement:
		return "settlement"
	case RoundEnd:
		return "round_end"
	default:
		return "unknown"
	}
}

// dealerStand is the total the dealer stands on, soft or hard.
const dealerStand = 17

// EngineConfig holds table-level settings for the engine.
type EngineConfig struct {
	// DefaultBet is the stake bots commit each round (capped at balance).
	DefaultBet float64

	// DealDelay is a purely presentational pause between card draws. Zero
	// disables pacing entirely; training runs always leave it at zero.
	DealDelay time.Duration

	// Clock drives the pacing delay. Defaults to the real clock; tests
	// inject a mock so paced rounds run instantly.
	Clock quartz.Clock

	// OnDeal, when set, is called after the opening deal and before player
	// turns. The interactive session renders the table here; the dealer's
	// hole card stays hidden.
	OnDeal func(active []*Player, upcard deck.Card)
}

// Engine orchestrates rounds over a single shoe and a fixed seat list,
// querying each player's Strategy for decisions and settling bets. All state
// lives on the engine; nothing here is safe for concurrent use and nothing
// needs to be, one hand acts at a time.
type Engine struct {
	shoe      *deck.Shoe
	dealer    *Player
	players   []*Player
	cfg       EngineConfig
	clock     quartz.Clock
	logger    *log.Logger
	observers []RoundObserver

	phase      Phase
	roundNum   int
	houseNet   float64
	startTotal float64
	history    []BalancePoint
	lastRecord *RoundRecord
}

// NewEngine creates an engine for the given shoe and players.
func NewEngine(shoe *deck.Shoe, players []*Player, cfg EngineConfig, logger *log.Logger) *Engine {
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	e := &Engine{
		shoe:    shoe,
		dealer:  &Player{Name: "Dealer"},
		players: players,
		cfg:     cfg,
		clock:   clock,
		logger:  logger.WithPrefix("engine"),
		phase:   Betting,
	}

	// Baseline for conservation checks: chips only move between players and
	// the house, never appear or vanish.
	for _, p := range players {
		e.startTotal += p.Balance
	}
	return e
}

// AddObserver subscribes an observer to completed-round records.
func (e *Engine) AddObserver(o RoundObserver) {
	e.observers = append(e.observers, o)
}

// Players returns the seated players in turn order.
func (e *Engine) Players() []*Player {
	return e.players
}

// Dealer returns the dealer's seat.
func (e *Engine) Dealer() *Player {
	return e.dealer
}

// RoundNumber returns the number of completed rounds.
func (e *Engine) RoundNumber() int {
	return e.roundNum
}

// Phase returns the current round phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Balance returns a player's balance by name.
func (e *Engine) Balance(name string) (float64, bool) {
	if p := e.findPlayer(name); p != nil {
		return p.Balance, true
	}
	return 0, false
}

// SetBalance overrides a player's balance with no legality checks. This is
// the admin escape hatch; the conservation baseline shifts with it.
func (e *Engine) SetBalance(name string, balance float64) bool {
	p := e.findPlayer(name)
	if p == nil {
		return false
	}
	e.startTotal += balance - p.Balance
	e.logger.Info("Balance override", "player", p.Name, "old", p.Balance, "new", balance)
	p.Balance = balance
	return true
}

// BalanceHistory returns every (round, player, balance) sample recorded at
// settlement, in round order.
func (e *Engine) BalanceHistory() []BalancePoint {
	return e.history
}

// LastRecord returns the most recent round record, or nil before the first
// settled round.
func (e *Engine) LastRecord() *RoundRecord {
	return e.lastRecord
}

// ForceReshuffle rebuilds and reshuffles the shoe between rounds.
func (e *Engine) ForceReshuffle() {
	e.logger.Info("Reshuffling shoe", "remaining", e.shoe.Remaining())
	e.shoe.Reshuffle()
}

// PlayRound runs one complete round. Cancelling the context abandons the
// round between phases; balances only change during settlement, which never
// observes the context, so an interrupted round leaves money untouched.
func (e *Engine) PlayRound(ctx context.Context) (*RoundRecord, error) {
	// Reshuffle only between rounds, never mid-deal.
	if e.shoe.NeedsReshuffle() {
		e.ForceReshuffle()
	}

	e.phase = Betting
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	active := e.collectBets()
	if len(active) == 0 {
		e.logger.Warn("No active players this round")
		return e.finishRound(), nil
	}

	e.phase = Dealing
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.deal(ctx, active); err != nil {
		return nil, err
	}

	e.phase = PlayerTurns
	for _, p := range active {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.playTurn(ctx, p); err != nil {
			return nil, err
		}
	}

	e.phase = DealerTurn
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.dealerTurn(ctx); err != nil {
		return nil, err
	}

	// Settlement is atomic with respect to cancellation: once entered it
	// completes fully.
	e.phase = Settlement
	e.settle(active)

	e.phase = RoundEnd
	return e.finishRound(), nil
}

// collectBets resets every seat and commits bets for the round. Players who
// cannot produce a legal bet sit out; a broke player never ends the session.
func (e *Engine) collectBets() []*Player {
	e.dealer.resetForRound()

	var active []*Player
	for _, p := range e.players {
		p.resetForRound()

		if p.Balance <= 0 {
			e.logger.Debug("Player is broke, sitting out", "player", p.Name)
			continue
		}

		bet := p.Strategy.PlaceBet(p.Balance, e.cfg.DefaultBet)
		if bet <= 0 || bet > p.Balance {
			e.logger.Warn("No legal bet, sitting out", "player", p.Name, "bet", bet, "balance", p.Balance)
			continue
		}

		p.Bet = bet
		p.Active = true
		active = append(active, p)
		e.logger.Debug("Bet placed", "player", p.Name, "bet", bet)
	}
	return active
}

// deal gives two cards to each active player and two to the dealer. The
// dealer's first card stays hidden until the dealer's turn.
func (e *Engine) deal(ctx context.Context, active []*Player) error {
	for range 2 {
		for _, p := range active {
			card, err := e.draw(ctx)
			if err != nil {
				return err
			}
			p.Hand.Add(card)
		}
	}
	for range 2 {
		card, err := e.draw(ctx)
		if err != nil {
			return err
		}
		e.dealer.Hand.Add(card)
	}
	e.logger.Debug("Cards dealt", "upcard", e.Upcard(), "remaining", e.shoe.Remaining())
	if e.cfg.OnDeal != nil {
		e.cfg.OnDeal(active, e.Upcard())
	}
	return nil
}

// Upcard returns the dealer's visible card. Only valid once dealing is done.
func (e *Engine) Upcard() deck.Card {
	return e.dealer.Hand.Cards[1]
}

// legalActions computes the action set offered to a hand. Hit and Stand are
// always legal; Double only as the very first action on a two-card hand with
// enough balance to cover the doubled stake.
func (e *Engine) legalActions(p *Player, firstAction bool) []Action {
	legal := []Action{Hit, Stand}
	if firstAction && p.Hand.NumCards() == 2 && p.Balance >= 2*p.Bet {
		legal = append(legal, Double)
	}
	return legal
}

// playTurn runs one player's turn until they stand, double, bust, or sit on
// a natural.
func (e *Engine) playTurn(ctx context.Context, p *Player) error {
	upcard := e.Upcard()
	firstAction := true

	for !p.Hand.IsNatural() && !p.Hand.IsBust() {
		legal := e.legalActions(p, firstAction)
		view := HandView{
			Cards:        p.Hand.Cards,
			Total:        p.Hand.Total(),
			Soft:         p.Hand.IsSoft(),
			DealerUpcard: upcard,
			Balance:      p.Balance,
			Bet:          p.Bet,
		}

		action := p.Strategy.Decide(view, legal)
		if !Contains(legal, action) {
			// Strategies are only offered legal actions, so this is a bug in
			// the strategy. Fall back to the safest legal action.
			e.logger.Error("Strategy returned illegal action", "player", p.Name, "action", action)
			action = Stand
		}
		firstAction = false

		e.logger.Debug("Player action", "player", p.Name, "action", action, "hand", p.Hand.String())

		switch action {
		case Hit:
			card, err := e.draw(ctx)
			if err != nil {
				return err
			}
			p.Hand.Add(card)
			p.recordAction(Hit, upcard.String())

		case Stand:
			p.recordAction(Stand, upcard.String())
			return nil

		case Double:
			p.Bet *= 2
			p.Doubled = true
			card, err := e.draw(ctx)
			if err != nil {
				return err
			}
			p.Hand.Add(card)
			p.recordAction(Double, upcard.String())
			return nil
		}
	}
	return nil
}

// dealerTurn plays out the dealer: hit below 17, stand on any 17, soft
// included.
func (e *Engine) dealerTurn(ctx context.Context) error {
	for e.dealer.Hand.Total() < dealerStand {
		card, err := e.draw(ctx)
		if err != nil {
			return err
		}
		e.dealer.Hand.Add(card)
		e.logger.Debug("Dealer hits", "hand", e.dealer.Hand.String())
	}
	return nil
}

// settle compares every active hand against the dealer, applies payouts, and
// feeds outcomes back to learning strategies. The only place besides
// SetBalance that mutates a balance.
func (e *Engine) settle(active []*Player) {
	for _, p := range active {
		result := settleHand(&p.Hand, &e.dealer.Hand)
		delta := p.Bet * result.Multiplier()
		p.Balance += delta
		e.houseNet -= delta
		p.Result = result

		e.logger.Debug("Hand settled",
			"player", p.Name,
			"result", result,
			"hand", p.Hand.String(),
			"dealer", e.dealer.Hand.String(),
			"delta", delta,
			"balance", p.Balance)

		if learner, ok := p.Strategy.(Learner); ok {
			learner.ResolveHand(result, p.Doubled)
		}
	}

	for _, p := range active {
		if learner, ok := p.Strategy.(Learner); ok {
			learner.FinishRound()
		}
	}

	if err := e.validateConservation(); err != nil {
		e.logger.Error("Chip conservation violation", "error", err)
	}
}

// settleHand resolves one hand against the dealer. Bust always loses, a
// natural beats a non-natural 21, dealer bust pays everyone still standing.
func settleHand(hand, dealer *Hand) Result {
	switch {
	case hand.IsBust():
		return Busted
	case hand.IsNatural():
		if dealer.IsNatural() {
			return Push
		}
		return Blackjack
	case dealer.IsNatural():
		return Lose
	case dealer.IsBust():
		return Win
	case hand.Total() > dealer.Total():
		return Win
	case hand.Total() == dealer.Total():
		return Push
	default:
		return Lose
	}
}

// finishRound records balances, builds the round record, and notifies
// observers.
func (e *Engine) finishRound() *RoundRecord {
	e.roundNum++

	record := RoundRecord{
		RoundNumber: e.roundNum,
		Timestamp:   time.Now(),
	}
	if e.dealer.Hand.NumCards() > 0 {
		final := make([]string, len(e.dealer.Hand.Cards))
		for i, c := range e.dealer.Hand.Cards {
			final[i] = c.String()
		}
		record.Dealer = DealerRecord{
			InitialHand: []string{"Hidden", e.dealer.Hand.Cards[1].String()},
			FinalHand:   final,
			FinalValue:  e.dealer.Hand.Total(),
		}
	}

	for _, p := range e.players {
		finalHand := make([]string, len(p.Hand.Cards))
		for i, c := range p.Hand.Cards {
			finalHand[i] = c.String()
		}
		record.Players = append(record.Players, PlayerRecord{
			Name:       p.Name,
			Strategy:   p.Strategy.Name(),
			Bet:        p.Bet,
			Actions:    p.actions,
			FinalHand:  finalHand,
			FinalValue: p.Hand.Total(),
			Result:     p.Result.String(),
			Balance:    p.Balance,
			SatOut:     !p.Active,
		})
		e.history = append(e.history, BalancePoint{
			Round:   e.roundNum,
			Player:  p.Name,
			Balance: p.Balance,
		})
	}

	e.lastRecord = &record
	for _, o := range e.observers {
		o.RoundComplete(record)
	}
	return &record
}

// draw pulls the next card, applying the presentational pacing delay.
func (e *Engine) draw(ctx context.Context) (deck.Card, error) {
	card := e.shoe.Draw()
	if e.cfg.DealDelay > 0 {
		timer := e.clock.NewTimer(e.cfg.DealDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return card, ctx.Err()
		}
	}
	return card, nil
}

// validateConservation checks that player balances plus the house net still
// sum to the starting total.
func (e *Engine) validateConservation() error {
	total := e.houseNet
	for _, p := range e.players {
		total += p.Balance
	}
	if math.Abs(total-e.startTotal) > 1e-6 {
		return fmt.Errorf("expected %v chips in play, found %v", e.startTotal, total)
	}
	return nil
}

func (e *Engine) findPlayer(name string) *Player {
	for _, p := range e.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}
