package statistics

import (
	"math"
	"testing"

	"github.com/ianjackson/blackjack/internal/game"
)

func round(players ...game.PlayerRecord) game.RoundRecord {
	return game.RoundRecord{Players: players}
}

func rec(name, result string, bet, balance float64) game.PlayerRecord {
	return game.PlayerRecord{Name: name, Result: result, Bet: bet, Balance: balance}
}

func TestCountsPerResult(t *testing.T) {
	s := New()
	s.RoundComplete(round(rec("A", "win", 10, 110)))
	s.RoundComplete(round(rec("A", "blackjack", 10, 125)))
	s.RoundComplete(round(rec("A", "push", 10, 125)))
	s.RoundComplete(round(rec("A", "lose", 10, 115)))
	s.RoundComplete(round(rec("A", "busted", 10, 105)))

	ps := s.Player("A")
	if ps == nil {
		t.Fatal("player not tracked")
	}
	if ps.Rounds != 5 || ps.Wins != 1 || ps.Blackjacks != 1 || ps.Pushes != 1 || ps.Losses != 1 || ps.Busts != 1 {
		t.Errorf("result counts wrong: %+v", ps)
	}
	if ps.Net != 10+15+0-10-10 {
		t.Errorf("expected net 5, got %v", ps.Net)
	}
	if got := ps.WinRate(); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("expected win rate 0.4, got %v", got)
	}
}

func TestSatOutRoundsDoNotCount(t *testing.T) {
	s := New()
	s.RoundComplete(round(game.PlayerRecord{Name: "A", SatOut: true, Balance: 0}))
	s.RoundComplete(round(rec("A", "win", 10, 10)))

	ps := s.Player("A")
	if ps.Rounds != 1 || ps.SatOut != 1 {
		t.Errorf("sat-out accounting wrong: rounds=%d satout=%d", ps.Rounds, ps.SatOut)
	}
	if s.Rounds != 2 {
		t.Errorf("table rounds should still count, got %d", s.Rounds)
	}
}

func TestStreaks(t *testing.T) {
	s := New()
	results := []string{"win", "win", "win", "lose", "lose", "push", "win"}
	for _, r := range results {
		s.RoundComplete(round(rec("A", r, 10, 100)))
	}

	ps := s.Player("A")
	if ps.BestStreak != 3 {
		t.Errorf("expected best streak 3, got %d", ps.BestStreak)
	}
	if ps.WorstStreak != -2 {
		t.Errorf("expected worst streak -2, got %d", ps.WorstStreak)
	}
}

func TestMeanAndStdDev(t *testing.T) {
	s := New()
	s.RoundComplete(round(rec("A", "win", 10, 110)))
	s.RoundComplete(round(rec("A", "lose", 10, 100)))

	ps := s.Player("A")
	if got := ps.Mean(); got != 0 {
		t.Errorf("expected mean 0, got %v", got)
	}
	// Sample std dev of {+10, -10} is sqrt(200).
	if got := ps.StdDev(); math.Abs(got-math.Sqrt(200)) > 1e-9 {
		t.Errorf("expected stddev %.4f, got %v", math.Sqrt(200), got)
	}
}

func TestDoublesAndPeakBalance(t *testing.T) {
	s := New()
	s.RoundComplete(round(game.PlayerRecord{
		Name: "A", Result: "win", Bet: 20, Balance: 120,
		Actions: []game.ActionRecord{{Action: "double"}},
	}))
	s.RoundComplete(round(rec("A", "lose", 10, 110)))

	ps := s.Player("A")
	if ps.Doubles != 1 {
		t.Errorf("expected 1 double, got %d", ps.Doubles)
	}
	if ps.PeakBalance != 120 || ps.FinalBalance != 110 {
		t.Errorf("peak/final wrong: %v/%v", ps.PeakBalance, ps.FinalBalance)
	}
}

func TestPlayersPreservesSeatOrder(t *testing.T) {
	s := New()
	s.RoundComplete(round(rec("B", "win", 10, 110), rec("A", "lose", 10, 90)))

	players := s.Players()
	if len(players) != 2 || players[0].Name != "B" || players[1].Name != "A" {
		t.Errorf("expected seat order B, A; got %v", players)
	}
}
