// Package rl implements the trainable blackjack strategy: an online
// Q-learning agent with a small feed-forward approximator, epsilon-greedy
// action selection, and experience replay.
package rl

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/ianjackson/blackjack/internal/game"
)

// Config holds the agent's learning hyperparameters.
type Config struct {
	Epsilon      float64 // starting exploration rate (overridden by a checkpoint)
	EpsilonDecay float64 // multiplicative decay per training step
	EpsilonMin   float64 // exploration floor
	Gamma        float64 // discount factor
	LearningRate float64
	BufferSize   int
	BatchSize    int
}

// DefaultConfig returns the standard hyperparameters.
func DefaultConfig() Config {
	return Config{
		Epsilon:      1.0,
		EpsilonDecay: 0.995,
		EpsilonMin:   0.01,
		Gamma:        0.95,
		LearningRate: 0.001,
		BufferSize:   10000,
		BatchSize:    32,
	}
}

// greedyOrder is the fixed tie-break priority for exploitation.
var greedyOrder = []game.Action{game.Stand, game.Hit, game.Double}

// pendingDecision is a decision awaiting its reward. Next stays nil until
// the following decision in the same hand records its state, or forever if
// the hand ended here.
type pendingDecision struct {
	state  []float64
	action int
	next   []float64
}

// Agent is the learning strategy. It records every decision it makes during
// a hand and back-fills rewards when the engine reports the outcome, then
// trains on replayed minibatches once per round.
type Agent struct {
	name   string
	cfg    Config
	net    *QNetwork
	buffer *Buffer
	rng    *rand.Rand
	logger *log.Logger

	epsilon  float64
	episodes int
	steps    int

	// Pending decisions for the hand currently being played. The engine is
	// single-threaded, so one list per agent suffices.
	pending []pendingDecision
}

// NewAgent creates an agent with freshly initialized parameters.
func NewAgent(name string, rng *rand.Rand, cfg Config, logger *log.Logger) *Agent {
	return &Agent{
		name:    name,
		cfg:     cfg,
		net:     NewQNetwork(rng, cfg.LearningRate),
		buffer:  NewBuffer(cfg.BufferSize),
		rng:     rng,
		logger:  logger.WithPrefix("rl").With("agent", name),
		epsilon: cfg.Epsilon,
	}
}

// Name identifies the strategy in logs and round records.
func (a *Agent) Name() string { return "ai" }

// Epsilon returns the current exploration rate.
func (a *Agent) Epsilon() float64 { return a.epsilon }

// SetEpsilon overrides the exploration rate. Zero makes the agent purely
// greedy, which evaluation and tests rely on.
func (a *Agent) SetEpsilon(epsilon float64) { a.epsilon = epsilon }

// Episodes returns the number of resolved hands.
func (a *Agent) Episodes() int { return a.episodes }

// PlaceBet bets the table default, capped at balance.
func (a *Agent) PlaceBet(balance, defaultBet float64) float64 {
	return min(defaultBet, balance)
}

// Decide chooses epsilon-greedily among the legal actions and records the
// decision for later reward attribution.
func (a *Agent) Decide(view game.HandView, legal []game.Action) game.Action {
	state := Encode(view)

	// The previous decision in this hand led here.
	if n := len(a.pending); n > 0 && a.pending[n-1].next == nil {
		a.pending[n-1].next = state
	}

	var action game.Action
	if a.rng.Float64() < a.epsilon {
		action = legal[a.rng.Intn(len(legal))]
	} else {
		action = a.greedy(state, legal)
	}

	a.pending = append(a.pending, pendingDecision{state: state, action: int(action)})
	a.logger.Debug("Decision", "action", action, "epsilon", a.epsilon, "total", view.Total)
	return action
}

// greedy picks the legal action with the highest Q-value, ties broken by
// fixed priority Stand > Hit > Double.
func (a *Agent) greedy(state []float64, legal []game.Action) game.Action {
	q := a.net.Predict(state)

	best := game.Action(-1)
	bestQ := 0.0
	for _, candidate := range greedyOrder {
		if !game.Contains(legal, candidate) {
			continue
		}
		if best < 0 || q[candidate] > bestQ {
			best = candidate
			bestQ = q[candidate]
		}
	}
	return best
}

// ResolveHand back-fills the round outcome into every pending decision of
// the hand and moves them into the replay buffer. The final decision is
// terminal; earlier ones bootstrap from the state they led to. A doubled
// stake doubles the reward.
func (a *Agent) ResolveHand(result game.Result, doubled bool) {
	if len(a.pending) == 0 {
		return
	}

	reward := outcomeReward(result)
	if doubled {
		reward *= 2
	}

	for _, p := range a.pending {
		a.buffer.Add(Experience{
			State:    p.state,
			Action:   p.action,
			Reward:   reward,
			Next:     p.next,
			Terminal: p.next == nil,
		})
	}

	a.logger.Debug("Hand resolved",
		"result", result,
		"reward", reward,
		"decisions", len(a.pending),
		"buffered", a.buffer.Len())

	a.pending = a.pending[:0]
	a.episodes++
}

// outcomeReward maps a settled result to the learning reward.
func outcomeReward(result game.Result) float64 {
	switch result {
	case game.Blackjack:
		return 1.5
	case game.Win:
		return 1.0
	case game.Push:
		return 0.0
	case game.Lose, game.Busted:
		return -1.0
	default:
		return 0.0
	}
}

// FinishRound runs one training step if the buffer covers a minibatch, then
// decays epsilon toward its floor.
func (a *Agent) FinishRound() {
	if a.buffer.Len() < a.cfg.BatchSize {
		return
	}

	for _, exp := range a.buffer.Sample(a.rng, a.cfg.BatchSize) {
		target := exp.Reward
		if !exp.Terminal {
			next := a.net.Predict(exp.Next)
			target += a.cfg.Gamma * maxQ(next)
		}
		a.net.Update(exp.State, exp.Action, target)
	}

	a.steps++
	a.epsilon = max(a.epsilon*a.cfg.EpsilonDecay, a.cfg.EpsilonMin)
}

func maxQ(q [NumActions]float64) float64 {
	best := q[0]
	for _, v := range q[1:] {
		if v > best {
			best = v
		}
	}
	return best
}
