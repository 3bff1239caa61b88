package gamelog

import (
	"encoding/json"
	"io"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianjackson/blackjack/internal/game"
)

func newWriter(t *testing.T) *Writer {
	t.Helper()
	w, err := New(t.TempDir(), time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC), log.New(io.Discard))
	require.NoError(t, err)
	return w
}

func record(n int) game.RoundRecord {
	return game.RoundRecord{
		RoundNumber: n,
		Players: []game.PlayerRecord{
			{Name: "Ian", Result: "win", Bet: 10, Balance: 110, FinalHand: []string{"A♠", "K♥"}},
		},
	}
}

func readLog(t *testing.T, path string) []game.RoundRecord {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []game.RoundRecord
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

func TestCloseWritesAllRecords(t *testing.T) {
	w := newWriter(t)
	for i := 1; i <= 3; i++ {
		w.RoundComplete(record(i))
	}
	require.NoError(t, w.Close())

	records := readLog(t, w.Path())
	require.Len(t, records, 3)
	assert.Equal(t, 1, records[0].RoundNumber)
	assert.Equal(t, "Ian", records[0].Players[0].Name)
	assert.Equal(t, []string{"A♠", "K♥"}, records[0].Players[0].FinalHand)
}

func TestPeriodicFlush(t *testing.T) {
	w := newWriter(t)
	for i := 1; i <= flushEvery; i++ {
		w.RoundComplete(record(i))
	}

	// The threshold flush ran without Close.
	records := readLog(t, w.Path())
	assert.Len(t, records, flushEvery)
}

func TestFlushRewritesWholeFile(t *testing.T) {
	w := newWriter(t)
	w.RoundComplete(record(1))
	require.NoError(t, w.Flush())
	w.RoundComplete(record(2))
	require.NoError(t, w.Flush())

	records := readLog(t, w.Path())
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[1].RoundNumber)
}

func TestCloseWithNoRecordsWritesNothing(t *testing.T) {
	w := newWriter(t)
	require.NoError(t, w.Close())
	_, err := os.Stat(w.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestFilenameEncodesSessionStart(t *testing.T) {
	w := newWriter(t)
	assert.Contains(t, w.Path(), "blackjack_20250314_150926.json")
}
