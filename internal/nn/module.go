// Package nn implements small neural network modules on top of the scalar
// autodiff engine.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Parameter: Trainable scalars that survive across forward passes
//   - Neuron, Layer, MLP: Fully connected building blocks
//   - Activations: Tanh, ReLU, Linear
//   - Loss functions: MSE
//
// Every forward pass takes the *autodiff.Graph to record into. Parameters bind
// to a leaf of that graph on first use, so a parameter shared by several
// samples in one pass is a single fan-out node.
package nn

import "github.com/born-ml/micrograd/internal/autodiff"

// Module is the base interface for all neural network components.
//
// Modules can be composed to build larger networks:
//
//	rng := rand.New(rand.NewSource(42))
//	model := nn.NewMLP(3, []int{4, 4, 1}, nn.Tanh, rng)
type Module interface {
	// Parameters returns all trainable parameters of this module,
	// including those of nested modules, in a stable order.
	Parameters() []*Parameter
}

// Bind attaches every parameter of m to g. See Parameter.Bind.
func Bind(m Module, g *autodiff.Graph) {
	for _, p := range m.Parameters() {
		p.Bind(g)
	}
}

// Collect copies leaf gradients into every parameter of m.
// See Parameter.Collect.
func Collect(m Module) {
	for _, p := range m.Parameters() {
		p.Collect()
	}
}

// ZeroGrad resets the gradient of every parameter of m.
func ZeroGrad(m Module) {
	for _, p := range m.Parameters() {
		p.ZeroGrad()
	}
}
