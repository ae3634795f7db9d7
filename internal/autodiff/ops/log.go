package ops

import "math"

// LogOp represents the natural logarithm: y = ln(x).
//
// Backward pass:
//   - d(ln(x))/dx = 1/x
type LogOp struct{}

// Kind returns Log.
func (LogOp) Kind() Kind { return Log }

// Arity returns 1.
func (LogOp) Arity() int { return 1 }

// Forward returns ln(x). Non-positive inputs follow math.Log (NaN or -Inf).
func (LogOp) Forward(in Inputs) float64 {
	return math.Log(in.A)
}

// Backward returns outGrad / x.
func (LogOp) Backward(in Inputs, _, outGrad float64) Grads {
	return Grads{A: outGrad / in.A}
}
