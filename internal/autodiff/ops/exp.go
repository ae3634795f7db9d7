package ops

import "math"

// ExpOp represents the exponential operation: y = exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x) = y
//   - grad_input = grad_output * output
type ExpOp struct{}

// Kind returns Exp.
func (ExpOp) Kind() Kind { return Exp }

// Arity returns 1.
func (ExpOp) Arity() int { return 1 }

// Forward returns e**x.
func (ExpOp) Forward(in Inputs) float64 {
	return math.Exp(in.A)
}

// Backward reuses the stored output instead of recomputing exp(x).
func (ExpOp) Backward(_ Inputs, out, outGrad float64) Grads {
	return Grads{A: out * outGrad}
}
