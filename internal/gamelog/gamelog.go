// Package gamelog persists round records as a JSON session log.
package gamelog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ianjackson/blackjack/internal/fileutil"
	"github.com/ianjackson/blackjack/internal/game"
)

// flushEvery bounds how many rounds can be lost to a crash.
const flushEvery = 10

// Writer accumulates round records and writes them to one JSON file per
// session. It subscribes to the engine as a round observer; the file is
// rewritten atomically on each flush so it is always valid JSON.
type Writer struct {
	path    string
	logger  *log.Logger
	records []game.RoundRecord
	dirty   int
}

// New creates a session log under dir, named by the session start time.
func New(dir string, now time.Time, logger *log.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("blackjack_%s.json", now.Format("20060102_150405")))
	w := &Writer{
		path:   path,
		logger: logger.WithPrefix("gamelog"),
	}
	w.logger.Info("Logging rounds", "path", path)
	return w, nil
}

// Path returns the session log file path.
func (w *Writer) Path() string {
	return w.path
}

// RoundComplete appends a record, flushing periodically.
func (w *Writer) RoundComplete(record game.RoundRecord) {
	w.records = append(w.records, record)
	w.dirty++
	if w.dirty >= flushEvery {
		if err := w.Flush(); err != nil {
			w.logger.Error("Could not write session log", "error", err)
		}
	}
}

// Flush rewrites the log file with every record seen so far.
func (w *Writer) Flush() error {
	data, err := json.MarshalIndent(w.records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session log: %w", err)
	}
	if err := fileutil.WriteFileAtomic(w.path, data, 0o644); err != nil {
		return err
	}
	w.dirty = 0
	return nil
}

// Close flushes any buffered records. Call once at session end.
func (w *Writer) Close() error {
	if len(w.records) == 0 {
		return nil
	}
	return w.Flush()
}
