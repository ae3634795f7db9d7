package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Layer is a list of independent neurons reading the same inputs.
type Layer struct {
	neurons []*Neuron
}

// NewLayer creates nout neurons with nin inputs each.
func NewLayer(prefix string, nin, nout int, act Activation, rng *rand.Rand) *Layer {
	neurons := make([]*Neuron, nout)
	for i := range neurons {
		neurons[i] = NewNeuron(fmt.Sprintf("%sneurons.%d.", prefix, i), nin, act, rng)
	}
	return &Layer{neurons: neurons}
}

// Forward returns one output per neuron.
func (l *Layer) Forward(g *autodiff.Graph, xs []autodiff.Value) []autodiff.Value {
	out := make([]autodiff.Value, len(l.neurons))
	for i, n := range l.neurons {
		out[i] = n.Forward(g, xs)
	}
	return out
}

// Eval returns one output per neuron without recording a graph.
func (l *Layer) Eval(xs []float64) []float64 {
	out := make([]float64, len(l.neurons))
	for i, n := range l.neurons {
		out[i] = n.Eval(xs)
	}
	return out
}

// Neurons returns the layer's neurons.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

// Parameters returns every neuron's parameters in neuron order.
func (l *Layer) Parameters() []*Parameter {
	var params []*Parameter
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}
