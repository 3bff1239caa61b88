package rl

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"

	"github.com/ianjackson/blackjack/internal/fileutil"
)

// checkpointVersion tags the persisted blob so future layout changes can be
// detected instead of silently misread.
const checkpointVersion = 1

// checkpoint is the gob-encoded policy snapshot: approximator parameters
// plus the epsilon schedule cursor, so exploration resumes where the last
// session left off.
type checkpoint struct {
	Version  int
	Weights  [][]float64
	Biases   [][]float64
	Epsilon  float64
	Episodes int
	Steps    int
}

// Save writes the agent's parameters to path. The write is atomic so an
// interrupted save never corrupts an existing model file.
func (a *Agent) Save(path string) error {
	weights, biases := a.net.marshalWeights()
	ck := checkpoint{
		Version:  checkpointVersion,
		Weights:  weights,
		Biases:   biases,
		Epsilon:  a.epsilon,
		Episodes: a.episodes,
		Steps:    a.steps,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(ck); err != nil {
		return fmt.Errorf("encoding checkpoint: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}

	a.logger.Info("Checkpoint saved", "path", path, "epsilon", a.epsilon, "episodes", a.episodes)
	return nil
}

// Load restores the agent's parameters from path.
func (a *Agent) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var ck checkpoint
	if err := gob.NewDecoder(f).Decode(&ck); err != nil {
		return fmt.Errorf("decoding checkpoint: %w", err)
	}
	if ck.Version != checkpointVersion {
		return fmt.Errorf("unsupported checkpoint version %d", ck.Version)
	}
	if err := a.net.setWeights(ck.Weights, ck.Biases); err != nil {
		return fmt.Errorf("restoring weights: %w", err)
	}

	a.epsilon = ck.Epsilon
	a.episodes = ck.Episodes
	a.steps = ck.Steps
	return nil
}

// LoadAgent creates an agent from a checkpoint, falling back to fresh
// parameters when the file is missing or corrupt. A missing model is the
// normal first-run case; either way the session proceeds.
func LoadAgent(name, path string, rng *rand.Rand, cfg Config, logger *log.Logger) *Agent {
	agent := NewAgent(name, rng, cfg, logger)
	if path == "" {
		return agent
	}

	if err := agent.Load(path); err != nil {
		if os.IsNotExist(err) {
			agent.logger.Info("No saved model found, starting fresh", "path", path)
		} else {
			agent.logger.Warn("Could not load saved model, starting fresh", "path", path, "error", err)
		}
		return agent
	}

	agent.logger.Info("Model loaded", "path", path, "epsilon", agent.epsilon, "episodes", agent.episodes)
	return agent
}
