// Package ops defines the scalar operations known to the autodiff engine.
//
// Each operation implements the Operation interface, which provides:
//   - Forward pass: the output value computed from the input values
//   - Backward pass: the contributions to add into each input's gradient
//
// Rules are pure functions of the stored values. They never touch the graph,
// which lets the engine keep nodes in a flat arena and dispatch by Kind.
//
// Supported operations:
//   - AddOp: a + b (d/da = 1, d/db = 1)
//   - MulOp: a * b (d/da = b, d/db = a)
//   - PowOp: a ** k for a constant k (d/da = k * a**(k-1))
//   - ExpOp: e**a (d/da = e**a)
//   - TanhOp: tanh(a) (d/da = 1 - tanh²(a))
//   - ReLUOp: max(0, a) (d/da = 1 if a > 0, else 0)
//   - LogOp: ln(a) (d/da = 1/a)
package ops

import "fmt"

// Kind tags how a node was produced.
type Kind uint8

// Operation kinds.
const (
	Leaf Kind = iota
	Add
	Mul
	Pow
	Exp
	Tanh
	ReLU
	Log
)

// String returns the short symbol used when printing a graph.
func (k Kind) String() string {
	switch k {
	case Leaf:
		return ""
	case Add:
		return "+"
	case Mul:
		return "*"
	case Pow:
		return "**"
	case Exp:
		return "exp"
	case Tanh:
		return "tanh"
	case ReLU:
		return "relu"
	case Log:
		return "log"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Inputs carries the stored values an operation reads.
type Inputs struct {
	A, B     float64 // predecessor values; B is unused by unary operations
	Exponent float64 // only meaningful for Pow
}

// Grads holds the local gradient contributions for each input.
type Grads struct {
	A, B float64
}

// Operation is the forward and backward rule for one Kind.
type Operation interface {
	// Kind returns the tag stored on nodes produced by this operation.
	Kind() Kind

	// Arity returns the number of predecessors (1 or 2).
	Arity() int

	// Forward computes the output value.
	Forward(in Inputs) float64

	// Backward returns the amounts to add into each input's gradient,
	// already scaled by outGrad.
	//
	// Example for MulOp:
	//   in: {A: a, B: b}
	//   returns: {A: b * outGrad, B: a * outGrad}
	Backward(in Inputs, out, outGrad float64) Grads
}

var registry = [...]Operation{
	Add:  AddOp{},
	Mul:  MulOp{},
	Pow:  PowOp{},
	Exp:  ExpOp{},
	Tanh: TanhOp{},
	ReLU: ReLUOp{},
	Log:  LogOp{},
}

// Lookup returns the operation for k.
// Leaf nodes have no rule; Lookup returns nil for them.
func Lookup(k Kind) Operation {
	if int(k) >= len(registry) {
		panic(fmt.Sprintf("ops: unknown kind %d", uint8(k)))
	}
	return registry[k]
}
