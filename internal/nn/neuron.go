package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Neuron computes act(w·x + b) for a fixed number of inputs.
//
// Weights and bias are drawn from U(-1, 1).
type Neuron struct {
	weights    []*Parameter
	bias       *Parameter
	activation Activation
}

// NewNeuron creates a neuron with nin inputs. Parameter names are prefix
// followed by "w.<i>" and "b".
func NewNeuron(prefix string, nin int, act Activation, rng *rand.Rand) *Neuron {
	weights := make([]*Parameter, nin)
	for i := range weights {
		weights[i] = NewParameter(fmt.Sprintf("%sw.%d", prefix, i), Uniform(rng, -1, 1))
	}
	bias := NewParameter(prefix+"b", Uniform(rng, -1, 1))

	return &Neuron{
		weights:    weights,
		bias:       bias,
		activation: act,
	}
}

// Forward records the neuron's output for xs in g.
//
// The sum starts from the bias and adds w_i*x_i left to right.
func (n *Neuron) Forward(g *autodiff.Graph, xs []autodiff.Value) autodiff.Value {
	if len(xs) != len(n.weights) {
		panic(fmt.Sprintf("Neuron: expected %d inputs, got %d", len(n.weights), len(xs)))
	}

	acc := n.bias.Bind(g)
	for i, w := range n.weights {
		acc = acc.Add(w.Bind(g).Mul(xs[i]))
	}
	return n.activation.Apply(acc)
}

// Eval computes the neuron's output without recording a graph.
// The result matches Forward bit for bit.
func (n *Neuron) Eval(xs []float64) float64 {
	if len(xs) != len(n.weights) {
		panic(fmt.Sprintf("Neuron: expected %d inputs, got %d", len(n.weights), len(xs)))
	}

	acc := n.bias.data
	for i, w := range n.weights {
		acc += w.data * xs[i]
	}
	return n.activation.Eval(acc)
}

// Weights returns the weight parameters.
func (n *Neuron) Weights() []*Parameter {
	return n.weights
}

// Bias returns the bias parameter.
func (n *Neuron) Bias() *Parameter {
	return n.bias
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []*Parameter {
	params := make([]*Parameter, 0, len(n.weights)+1)
	params = append(params, n.weights...)
	return append(params, n.bias)
}
