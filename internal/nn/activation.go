package nn

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/autodiff/ops"
)

// Activation selects the non-linearity a neuron applies to its weighted sum.
type Activation int

// Supported activations.
const (
	Tanh Activation = iota
	ReLU
	Linear
)

// String returns the activation name.
func (a Activation) String() string {
	switch a {
	case Tanh:
		return "tanh"
	case ReLU:
		return "relu"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// ParseActivation parses an activation name as printed by String.
func ParseActivation(s string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tanh", "":
		return Tanh, nil
	case "relu":
		return ReLU, nil
	case "linear", "identity":
		return Linear, nil
	default:
		return 0, errors.Errorf("unknown activation %q", s)
	}
}

// Apply records the activation of x in x's graph.
func (a Activation) Apply(x autodiff.Value) autodiff.Value {
	switch a {
	case Tanh:
		return x.Tanh()
	case ReLU:
		return x.ReLU()
	case Linear:
		return x
	default:
		panic(fmt.Sprintf("nn: unknown activation %d", int(a)))
	}
}

// Eval applies the activation to a plain float, using the same forward
// rule the graph records.
func (a Activation) Eval(x float64) float64 {
	switch a {
	case Tanh:
		return ops.Lookup(ops.Tanh).Forward(ops.Inputs{A: x})
	case ReLU:
		return ops.Lookup(ops.ReLU).Forward(ops.Inputs{A: x})
	case Linear:
		return x
	default:
		panic(fmt.Sprintf("nn: unknown activation %d", int(a)))
	}
}
