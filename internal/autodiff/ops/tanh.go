package ops

import "math"

// TanhOp represents the hyperbolic tangent: tanh(x) = (e**2x - 1) / (e**2x + 1).
type TanhOp struct{}

// Kind returns Tanh.
func (TanhOp) Kind() Kind { return Tanh }

// Arity returns 1.
func (TanhOp) Arity() int { return 1 }

// Forward returns tanh(x).
// math.Tanh saturates to ±1 where the closed form would produce Inf/Inf.
func (TanhOp) Forward(in Inputs) float64 {
	return math.Tanh(in.A)
}

// Backward computes the gradient for tanh.
//
// For tanh(x):
// d(tanh(x))/dx = 1 - tanh²(x)
//
// Since we have the output tanh(x) already computed:
// grad_input = grad_output * (1 - output²).
func (TanhOp) Backward(_ Inputs, out, outGrad float64) Grads {
	return Grads{A: (1 - out*out) * outGrad}
}
