package rl

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Network dimensions: the encoded state feeds two ReLU hidden layers and
// one linear Q-value output per action.
const (
	StateSize  = 3
	NumActions = 3
	hidden1    = 128
	hidden2    = 64
)

// QNetwork is a feed-forward value approximator mapping an encoded hand
// state to one estimated Q-value per action. Updates are plain SGD on the
// squared TD error of the taken action.
type QNetwork struct {
	w1, w2, w3 *mat.Dense
	b1, b2, b3 *mat.VecDense
	lr         float64
}

// NewQNetwork creates a network with small random weights.
func NewQNetwork(rng *rand.Rand, learningRate float64) *QNetwork {
	return &QNetwork{
		w1: randomDense(rng, hidden1, StateSize),
		w2: randomDense(rng, hidden2, hidden1),
		w3: randomDense(rng, NumActions, hidden2),
		b1: mat.NewVecDense(hidden1, nil),
		b2: mat.NewVecDense(hidden2, nil),
		b3: mat.NewVecDense(NumActions, nil),
		lr: learningRate,
	}
}

// randomDense initializes weights uniformly in ±1/sqrt(fanIn).
func randomDense(rng *rand.Rand, rows, cols int) *mat.Dense {
	scale := 1.0 / math.Sqrt(float64(cols))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = (rng.Float64()*2 - 1) * scale
	}
	return mat.NewDense(rows, cols, data)
}

// Predict runs a forward pass and returns the Q-value for each action.
func (n *QNetwork) Predict(state []float64) [NumActions]float64 {
	_, _, out := n.forward(state)
	var q [NumActions]float64
	copy(q[:], out.RawVector().Data)
	return q
}

// forward returns both hidden activations and the output so Update can
// backpropagate without a second pass.
func (n *QNetwork) forward(state []float64) (a1, a2, out *mat.VecDense) {
	x := mat.NewVecDense(StateSize, state)

	a1 = mat.NewVecDense(hidden1, nil)
	a1.MulVec(n.w1, x)
	a1.AddVec(a1, n.b1)
	relu(a1)

	a2 = mat.NewVecDense(hidden2, nil)
	a2.MulVec(n.w2, a1)
	a2.AddVec(a2, n.b2)
	relu(a2)

	out = mat.NewVecDense(NumActions, nil)
	out.MulVec(n.w3, a2)
	out.AddVec(out, n.b3)
	return a1, a2, out
}

func relu(v *mat.VecDense) {
	data := v.RawVector().Data
	for i, x := range data {
		if x < 0 {
			data[i] = 0
		}
	}
}

// Update nudges the Q-value of the taken action toward target with one SGD
// step. Other action outputs are untouched, matching a squared error on the
// selected output alone.
func (n *QNetwork) Update(state []float64, action int, target float64) {
	a1, a2, out := n.forward(state)

	// Output layer: error only on the taken action's Q-value.
	errOut := out.AtVec(action) - target

	// Hidden layer two gradient, through the taken action's output row.
	dz2 := make([]float64, hidden2)
	for j := 0; j < hidden2; j++ {
		if a2.AtVec(j) > 0 {
			dz2[j] = n.w3.At(action, j) * errOut
		}
	}

	// Hidden layer one gradient.
	dz1 := make([]float64, hidden1)
	for j := 0; j < hidden1; j++ {
		if a1.AtVec(j) > 0 {
			var sum float64
			for k := 0; k < hidden2; k++ {
				sum += n.w2.At(k, j) * dz2[k]
			}
			dz1[j] = sum
		}
	}

	// Descend, output layer first.
	for j := 0; j < hidden2; j++ {
		n.w3.Set(action, j, n.w3.At(action, j)-n.lr*errOut*a2.AtVec(j))
	}
	n.b3.SetVec(action, n.b3.AtVec(action)-n.lr*errOut)

	for k := 0; k < hidden2; k++ {
		if dz2[k] == 0 {
			continue
		}
		for j := 0; j < hidden1; j++ {
			n.w2.Set(k, j, n.w2.At(k, j)-n.lr*dz2[k]*a1.AtVec(j))
		}
		n.b2.SetVec(k, n.b2.AtVec(k)-n.lr*dz2[k])
	}

	for k := 0; k < hidden1; k++ {
		if dz1[k] == 0 {
			continue
		}
		for j := 0; j < StateSize; j++ {
			n.w1.Set(k, j, n.w1.At(k, j)-n.lr*dz1[k]*state[j])
		}
		n.b1.SetVec(k, n.b1.AtVec(k)-n.lr*dz1[k])
	}
}

// marshalWeights flattens the layers for persistence, weights then biases,
// input layer first.
func (n *QNetwork) marshalWeights() (weights, biases [][]float64) {
	for _, w := range []*mat.Dense{n.w1, n.w2, n.w3} {
		raw := w.RawMatrix().Data
		weights = append(weights, append([]float64(nil), raw...))
	}
	for _, b := range []*mat.VecDense{n.b1, n.b2, n.b3} {
		raw := b.RawVector().Data
		biases = append(biases, append([]float64(nil), raw...))
	}
	return weights, biases
}

// setWeights restores flattened layers, validating shapes.
func (n *QNetwork) setWeights(weights, biases [][]float64) error {
	if len(weights) != 3 || len(biases) != 3 {
		return fmt.Errorf("expected 3 layers, got %d weights and %d biases", len(weights), len(biases))
	}

	dims := []struct{ rows, cols int }{
		{hidden1, StateSize},
		{hidden2, hidden1},
		{NumActions, hidden2},
	}
	mats := []*mat.Dense{n.w1, n.w2, n.w3}
	vecs := []*mat.VecDense{n.b1, n.b2, n.b3}

	for i, d := range dims {
		if len(weights[i]) != d.rows*d.cols {
			return fmt.Errorf("layer %d: expected %d weights, got %d", i, d.rows*d.cols, len(weights[i]))
		}
		if len(biases[i]) != d.rows {
			return fmt.Errorf("layer %d: expected %d biases, got %d", i, d.rows, len(biases[i]))
		}
		copy(mats[i].RawMatrix().Data, weights[i])
		copy(vecs[i].RawVector().Data, biases[i])
	}
	return nil
}
