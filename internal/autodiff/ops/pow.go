package ops

import "math"

// PowOp raises a value to a constant exponent: output = a ** k.
//
// The exponent is part of the node, not a predecessor, so no gradient
// flows into it.
//
// Backward pass:
//   - d(a**k)/da = k * a**(k-1)
type PowOp struct{}

// Kind returns Pow.
func (PowOp) Kind() Kind { return Pow }

// Arity returns 1.
func (PowOp) Arity() int { return 1 }

// Forward returns a ** k.
func (PowOp) Forward(in Inputs) float64 {
	return math.Pow(in.A, in.Exponent)
}

// Backward applies the power rule.
func (PowOp) Backward(in Inputs, _, outGrad float64) Grads {
	k := in.Exponent
	return Grads{A: k * math.Pow(in.A, k-1) * outGrad}
}
