package rl

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianjackson/blackjack/internal/deck"
	"github.com/ianjackson/blackjack/internal/game"
)

// Persisted then reloaded parameters must reproduce the exact greedy action
// choices of the original agent.
func TestCheckpointRoundTripGreedyChoices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob")

	original := newTestAgent(1)
	original.SetEpsilon(0.42)
	original.episodes = 77

	// Nudge weights off their init so the round trip carries real training.
	for i := 0; i < 50; i++ {
		original.net.Update([]float64{0.6, 0, 0.5}, i%NumActions, 0.5)
	}
	require.NoError(t, original.Save(path))

	restored := LoadAgent("TestBot", path, rand.New(rand.NewSource(99)), DefaultConfig(), testLogger())
	assert.Equal(t, 0.42, restored.Epsilon())
	assert.Equal(t, 77, restored.Episodes())

	original.SetEpsilon(0)
	restored.SetEpsilon(0)

	legal := []game.Action{game.Hit, game.Stand, game.Double}
	for total := 4; total <= 21; total++ {
		for _, upcard := range []deck.Rank{deck.Two, deck.Six, deck.Nine, deck.Ace} {
			view := testView(total, false, upcard)
			want := original.Decide(view, legal)
			got := restored.Decide(view, legal)
			assert.Equal(t, want, got, "total %d vs %s", total, upcard)
			original.pending = nil
			restored.pending = nil
		}
	}
}

func TestLoadAgentMissingFile(t *testing.T) {
	agent := LoadAgent("TestBot", filepath.Join(t.TempDir(), "absent.gob"),
		rand.New(rand.NewSource(1)), DefaultConfig(), testLogger())
	assert.Equal(t, 1.0, agent.Epsilon(), "missing checkpoint should start fresh")
}

func TestLoadAgentCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob")
	require.NoError(t, os.WriteFile(path, []byte("not a checkpoint"), 0o644))

	agent := LoadAgent("TestBot", path, rand.New(rand.NewSource(1)), DefaultConfig(), testLogger())
	assert.Equal(t, 1.0, agent.Epsilon(), "corrupt checkpoint should fall back to fresh parameters")
}
