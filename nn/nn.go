// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks over scalar autodiff values.
//
// # Overview
//
// This package contains:
//   - Modules: Neuron, Layer, MLP
//   - Activations: Tanh, ReLU, Linear
//   - Loss functions: MSELoss
//   - Utilities: Module interface, Parameter, Bind/Collect/ZeroGrad helpers
//   - Initialization: Uniform, NewRand
//
// # Basic Usage
//
//	model := nn.NewMLP(3, []int{4, 4, 1}, nn.Tanh, nn.NewRand(42))
//
//	g := autodiff.NewGraph()
//	preds := make([]autodiff.Value, len(xs))
//	for i, x := range xs {
//	    preds[i] = model.Predict(g, x)
//	}
//	loss, err := nn.MSELoss(g, preds, ys)
//
//	nn.ZeroGrad(model)
//	loss.Backward()
//	nn.Collect(model)
package nn

import (
	"math/rand"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/nn"
)

// Module is the base interface for all neural network components.
type Module = nn.Module

// Parameter is a trainable scalar.
type Parameter = nn.Parameter

// Neuron computes act(w·x + b).
type Neuron = nn.Neuron

// Layer is a list of neurons sharing inputs.
type Layer = nn.Layer

// MLP is a multi-layer perceptron.
type MLP = nn.MLP

// Activation selects a neuron's non-linearity.
type Activation = nn.Activation

// Supported activations.
const (
	Tanh   = nn.Tanh
	ReLU   = nn.ReLU
	Linear = nn.Linear
)

// Errors.
var (
	ErrLengthMismatch = nn.ErrLengthMismatch
	ErrStateDict      = nn.ErrStateDict
)

// NewParameter creates a named trainable scalar.
func NewParameter(name string, data float64) *Parameter {
	return nn.NewParameter(name, data)
}

// NewNeuron creates a neuron with nin inputs.
func NewNeuron(prefix string, nin int, act Activation, rng *rand.Rand) *Neuron {
	return nn.NewNeuron(prefix, nin, act, rng)
}

// NewLayer creates a layer of nout neurons with nin inputs each.
func NewLayer(prefix string, nin, nout int, act Activation, rng *rand.Rand) *Layer {
	return nn.NewLayer(prefix, nin, nout, act, rng)
}

// NewMLP creates a multi-layer perceptron.
//
// Example:
//
//	model := nn.NewMLP(3, []int{4, 4, 1}, nn.Tanh, nn.NewRand(42))
func NewMLP(nin int, nouts []int, act Activation, rng *rand.Rand) *MLP {
	return nn.NewMLP(nin, nouts, act, rng)
}

// ParseActivation parses "tanh", "relu" or "linear".
func ParseActivation(s string) (Activation, error) {
	return nn.ParseActivation(s)
}

// MSELoss returns the summed squared error of preds against targets.
func MSELoss(g *autodiff.Graph, preds []autodiff.Value, targets []float64) (autodiff.Value, error) {
	return nn.MSELoss(g, preds, targets)
}

// NewRand returns a seeded generator for parameter initialization.
func NewRand(seed int64) *rand.Rand {
	return nn.NewRand(seed)
}

// Uniform draws from U(lo, hi).
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	return nn.Uniform(rng, lo, hi)
}

// Bind attaches every parameter of m to g.
func Bind(m Module, g *autodiff.Graph) {
	nn.Bind(m, g)
}

// Collect copies leaf gradients into every parameter of m.
func Collect(m Module) {
	nn.Collect(m)
}

// ZeroGrad resets every parameter gradient of m.
func ZeroGrad(m Module) {
	nn.ZeroGrad(m)
}
