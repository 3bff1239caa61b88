package rl

import "math/rand"

// Experience is one settled decision: the encoded state it was made in, the
// action taken, the reward it earned, and the encoded state that followed.
// Next is nil when the hand ended with this decision.
type Experience struct {
	State    []float64
	Action   int
	Reward   float64
	Next     []float64
	Terminal bool
}

// Buffer is a bounded experience ring. Once full, each Add evicts the
// oldest entry; Sample draws uniformly with replacement.
type Buffer struct {
	items []Experience
	next  int
	full  bool
}

// NewBuffer creates a buffer holding at most capacity experiences.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{items: make([]Experience, capacity)}
}

// Add stores an experience, evicting the oldest when full.
func (b *Buffer) Add(exp Experience) {
	b.items[b.next] = exp
	b.next++
	if b.next == len(b.items) {
		b.next = 0
		b.full = true
	}
}

// Len returns the number of stored experiences.
func (b *Buffer) Len() int {
	if b.full {
		return len(b.items)
	}
	return b.next
}

// Sample draws n experiences uniformly with replacement.
func (b *Buffer) Sample(rng *rand.Rand, n int) []Experience {
	size := b.Len()
	if size == 0 {
		return nil
	}
	batch := make([]Experience, n)
	for i := range batch {
		batch[i] = b.items[rng.Intn(size)]
	}
	return batch
}
