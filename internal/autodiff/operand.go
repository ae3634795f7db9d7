package autodiff

import (
	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/autodiff/ops"
)

// Operand is anything a graph operation accepts as an input: a Value already
// in the graph, or a Const literal that becomes a fresh leaf.
type Operand interface {
	resolve(g *Graph) Value
}

// Const is a bare numeric literal used as an operand.
//
//	y := x.Mul(autodiff.Const(2))     // x * 2
//	z := g.Sub(autodiff.Const(1), x)  // 1 - x
type Const float64

func (c Const) resolve(g *Graph) Value {
	return g.Leaf(float64(c))
}

func (v Value) resolve(g *Graph) Value {
	v.node()
	if v.graph != g {
		panic("autodiff: operands belong to different graphs")
	}
	return v
}

// Add returns a + b.
func (g *Graph) Add(a, b Operand) Value {
	av := a.resolve(g)
	bv := b.resolve(g)
	return g.binary(ops.Add, av, bv)
}

// Mul returns a * b.
func (g *Graph) Mul(a, b Operand) Value {
	av := a.resolve(g)
	bv := b.resolve(g)
	return g.binary(ops.Mul, av, bv)
}

// Pow returns a ** k for a constant exponent k.
func (g *Graph) Pow(a Operand, k float64) Value {
	return g.unary(ops.Pow, a.resolve(g), k)
}

// Power returns a ** exponent. Only Const exponents are supported;
// a Value exponent yields ErrUnsupportedExponent and records nothing.
func (g *Graph) Power(a, exponent Operand) (Value, error) {
	k, ok := exponent.(Const)
	if !ok {
		return Value{}, errors.WithStack(ErrUnsupportedExponent)
	}
	return g.Pow(a, float64(k)), nil
}

// Exp returns e ** a.
func (g *Graph) Exp(a Operand) Value {
	return g.unary(ops.Exp, a.resolve(g), 0)
}

// Tanh returns tanh(a).
func (g *Graph) Tanh(a Operand) Value {
	return g.unary(ops.Tanh, a.resolve(g), 0)
}

// ReLU returns max(0, a).
func (g *Graph) ReLU(a Operand) Value {
	return g.unary(ops.ReLU, a.resolve(g), 0)
}

// Log returns ln(a).
func (g *Graph) Log(a Operand) Value {
	return g.unary(ops.Log, a.resolve(g), 0)
}

// Neg returns a * -1.
func (g *Graph) Neg(a Operand) Value {
	return g.Mul(a, Const(-1))
}

// Sub returns a + (-b).
func (g *Graph) Sub(a, b Operand) Value {
	av := a.resolve(g)
	return g.Add(av, g.Neg(b))
}

// Div returns a * b**-1.
func (g *Graph) Div(a, b Operand) Value {
	av := a.resolve(g)
	return g.Mul(av, g.Pow(b, -1))
}

// Sum folds terms left to right with Add. An empty sum is a leaf holding 0.
func (g *Graph) Sum(terms ...Operand) Value {
	if len(terms) == 0 {
		return g.Leaf(0)
	}
	acc := terms[0].resolve(g)
	for _, t := range terms[1:] {
		acc = g.Add(acc, t)
	}
	return acc
}

// Add returns v + other.
func (v Value) Add(other Operand) Value { return v.graph.Add(v, other) }

// Mul returns v * other.
func (v Value) Mul(other Operand) Value { return v.graph.Mul(v, other) }

// Sub returns v - other.
func (v Value) Sub(other Operand) Value { return v.graph.Sub(v, other) }

// Div returns v / other.
func (v Value) Div(other Operand) Value { return v.graph.Div(v, other) }

// Pow returns v ** k.
func (v Value) Pow(k float64) Value { return v.graph.Pow(v, k) }

// Power returns v ** exponent, failing for non-constant exponents.
func (v Value) Power(exponent Operand) (Value, error) { return v.graph.Power(v, exponent) }

// Neg returns -v.
func (v Value) Neg() Value { return v.graph.Neg(v) }

// Exp returns e ** v.
func (v Value) Exp() Value { return v.graph.Exp(v) }

// Tanh returns tanh(v).
func (v Value) Tanh() Value { return v.graph.Tanh(v) }

// ReLU returns max(0, v).
func (v Value) ReLU() Value { return v.graph.ReLU(v) }

// Log returns ln(v).
func (v Value) Log() Value { return v.graph.Log(v) }
