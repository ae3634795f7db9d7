package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// MLP is a multi-layer perceptron: a chain of fully connected layers.
//
// Example:
//
//	model := nn.NewMLP(3, []int{4, 4, 1}, nn.Tanh, nn.NewRand(42))
//	g := autodiff.NewGraph()
//	y := model.Predict(g, []float64{2.0, 3.0, -1.0})
type MLP struct {
	nin    int
	sizes  []int
	layers []*Layer
}

// NewMLP creates a network with nin inputs and one layer per entry of nouts.
// Every layer, the last included, applies act.
func NewMLP(nin int, nouts []int, act Activation, rng *rand.Rand) *MLP {
	if nin <= 0 || len(nouts) == 0 {
		panic(fmt.Sprintf("MLP: invalid architecture nin=%d nouts=%v", nin, nouts))
	}

	sizes := append([]int{nin}, nouts...)
	layers := make([]*Layer, len(nouts))
	for i := range layers {
		if sizes[i+1] <= 0 {
			panic(fmt.Sprintf("MLP: layer %d has %d neurons", i, sizes[i+1]))
		}
		layers[i] = NewLayer(fmt.Sprintf("layers.%d.", i), sizes[i], sizes[i+1], act, rng)
	}

	return &MLP{nin: nin, sizes: sizes, layers: layers}
}

// InFeatures returns the number of inputs.
func (m *MLP) InFeatures() int {
	return m.nin
}

// OutFeatures returns the width of the last layer.
func (m *MLP) OutFeatures() int {
	return m.sizes[len(m.sizes)-1]
}

// Layers returns the layers in order.
func (m *MLP) Layers() []*Layer {
	return m.layers
}

// Forward records the network's outputs for one input sample.
// Input values become unlabeled leaves in g.
func (m *MLP) Forward(g *autodiff.Graph, x []float64) []autodiff.Value {
	if len(x) != m.nin {
		panic(fmt.Sprintf("MLP: expected %d inputs, got %d", m.nin, len(x)))
	}

	xs := make([]autodiff.Value, len(x))
	for i, v := range x {
		xs[i] = g.Leaf(v)
	}
	for _, l := range m.layers {
		xs = l.Forward(g, xs)
	}
	return xs
}

// Predict returns the first output of Forward.
func (m *MLP) Predict(g *autodiff.Graph, x []float64) autodiff.Value {
	return m.Forward(g, x)[0]
}

// Eval runs the network on plain floats. It only reads parameter data,
// so concurrent calls are safe as long as no optimizer step runs.
func (m *MLP) Eval(x []float64) []float64 {
	if len(x) != m.nin {
		panic(fmt.Sprintf("MLP: expected %d inputs, got %d", m.nin, len(x)))
	}
	for _, l := range m.layers {
		x = l.Eval(x)
	}
	return x
}

// Parameters returns every parameter, layer by layer.
func (m *MLP) Parameters() []*Parameter {
	var params []*Parameter
	for _, l := range m.layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

// String describes the architecture, e.g. "MLP(3 -> 4 -> 4 -> 1, tanh)".
func (m *MLP) String() string {
	s := fmt.Sprintf("MLP(%d", m.sizes[0])
	for _, n := range m.sizes[1:] {
		s += fmt.Sprintf(" -> %d", n)
	}
	act := Tanh
	if len(m.layers) > 0 && len(m.layers[0].neurons) > 0 {
		act = m.layers[0].neurons[0].activation
	}
	return s + ", " + act.String() + ")"
}
