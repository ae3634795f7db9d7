package nn

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrStateDict is returned by LoadStateDict for missing or malformed entries.
var ErrStateDict = errors.New("invalid state dict")

// StateDict exports the parameters grouped per neuron:
//
//	layers.<l>.neurons.<n>.w -> weights, one per input
//	layers.<l>.neurons.<n>.b -> [bias]
func (m *MLP) StateDict() map[string][]float64 {
	state := make(map[string][]float64)
	for li, l := range m.layers {
		for ni, n := range l.neurons {
			prefix := neuronPrefix(li, ni)
			w := make([]float64, len(n.weights))
			for i, p := range n.weights {
				w[i] = p.data
			}
			state[prefix+"w"] = w
			state[prefix+"b"] = []float64{n.bias.data}
		}
	}
	return state
}

// LoadStateDict overwrites parameter values from state.
// Every neuron must be present with the right number of weights; extra keys
// are rejected so that architecture mismatches are not silently ignored.
func (m *MLP) LoadStateDict(state map[string][]float64) error {
	expected := 0
	for li, l := range m.layers {
		for ni, n := range l.neurons {
			prefix := neuronPrefix(li, ni)

			w, ok := state[prefix+"w"]
			if !ok {
				return errors.Wrapf(ErrStateDict, "missing %sw", prefix)
			}
			if len(w) != len(n.weights) {
				return errors.Wrapf(ErrStateDict, "%sw: expected %d values, got %d", prefix, len(n.weights), len(w))
			}
			b, ok := state[prefix+"b"]
			if !ok || len(b) != 1 {
				return errors.Wrapf(ErrStateDict, "%sb: expected a single value", prefix)
			}
			expected += 2
		}
	}
	if len(state) != expected {
		return errors.Wrapf(ErrStateDict, "expected %d entries, got %d", expected, len(state))
	}

	for li, l := range m.layers {
		for ni, n := range l.neurons {
			prefix := neuronPrefix(li, ni)
			for i, v := range state[prefix+"w"] {
				n.weights[i].data = v
			}
			n.bias.data = state[prefix+"b"][0]
		}
	}
	return nil
}

func neuronPrefix(layer, neuron int) string {
	return fmt.Sprintf("layers.%d.neurons.%d.", layer, neuron)
}
