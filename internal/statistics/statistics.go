// Package statistics aggregates per-player session results.
package statistics

import (
	"math"

	"github.com/ianjackson/blackjack/internal/game"
)

// PlayerStats tracks one player's results across a session.
type PlayerStats struct {
	Name string

	Rounds     int
	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Busts      int
	SatOut     int
	Doubles    int

	Net     float64 // total balance change across the session
	SumNet  float64 // per-round deltas, for the mean
	SumNet2 float64 // sum of squares, for variance

	PeakBalance  float64
	FinalBalance float64

	currentStreak int
	BestStreak    int // longest run of consecutive wins
	WorstStreak   int // longest run of consecutive losses (negative)
}

// Statistics accumulates round records for every seat at the table.
type Statistics struct {
	players map[string]*PlayerStats
	order   []string
	Rounds  int
}

// New creates an empty statistics collector.
func New() *Statistics {
	return &Statistics{players: make(map[string]*PlayerStats)}
}

// RoundComplete incorporates one settled round. Statistics subscribes to the
// engine as a round observer.
func (s *Statistics) RoundComplete(record game.RoundRecord) {
	s.Rounds++
	for _, pr := range record.Players {
		ps := s.player(pr.Name)
		ps.FinalBalance = pr.Balance
		if pr.Balance > ps.PeakBalance {
			ps.PeakBalance = pr.Balance
		}

		if pr.SatOut {
			ps.SatOut++
			continue
		}
		ps.Rounds++

		var delta float64
		switch pr.Result {
		case "win":
			ps.Wins++
			delta = pr.Bet
		case "blackjack":
			ps.Blackjacks++
			delta = pr.Bet * 1.5
		case "push":
			ps.Pushes++
		case "lose":
			ps.Losses++
			delta = -pr.Bet
		case "busted":
			ps.Busts++
			delta = -pr.Bet
		}
		for _, a := range pr.Actions {
			if a.Action == "double" {
				ps.Doubles++
			}
		}

		ps.Net += delta
		ps.SumNet += delta
		ps.SumNet2 += delta * delta
		ps.updateStreak(delta)
	}
}

func (ps *PlayerStats) updateStreak(delta float64) {
	switch {
	case delta > 0:
		if ps.currentStreak < 0 {
			ps.currentStreak = 0
		}
		ps.currentStreak++
		if ps.currentStreak > ps.BestStreak {
			ps.BestStreak = ps.currentStreak
		}
	case delta < 0:
		if ps.currentStreak > 0 {
			ps.currentStreak = 0
		}
		ps.currentStreak--
		if ps.currentStreak < ps.WorstStreak {
			ps.WorstStreak = ps.currentStreak
		}
	}
}

// Player returns the stats for a named player, or nil if never seen.
func (s *Statistics) Player(name string) *PlayerStats {
	return s.players[name]
}

// Players returns per-player stats in first-seen order.
func (s *Statistics) Players() []*PlayerStats {
	out := make([]*PlayerStats, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.players[name])
	}
	return out
}

func (s *Statistics) player(name string) *PlayerStats {
	ps, ok := s.players[name]
	if !ok {
		ps = &PlayerStats{Name: name}
		s.players[name] = ps
		s.order = append(s.order, name)
	}
	return ps
}

// WinRate returns the fraction of played rounds that won, naturals included.
func (ps *PlayerStats) WinRate() float64 {
	if ps.Rounds == 0 {
		return 0
	}
	return float64(ps.Wins+ps.Blackjacks) / float64(ps.Rounds)
}

// Mean returns the mean per-round balance change.
func (ps *PlayerStats) Mean() float64 {
	if ps.Rounds == 0 {
		return 0
	}
	return ps.SumNet / float64(ps.Rounds)
}

// Variance returns the sample variance of per-round balance changes.
func (ps *PlayerStats) Variance() float64 {
	if ps.Rounds < 2 {
		return 0
	}
	mean := ps.Mean()
	return (ps.SumNet2 - float64(ps.Rounds)*mean*mean) / float64(ps.Rounds-1)
}

// StdDev returns the sample standard deviation of per-round balance changes.
func (ps *PlayerStats) StdDev() float64 {
	return math.Sqrt(ps.Variance())
}
