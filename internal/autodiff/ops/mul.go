package ops

// MulOp represents multiplication: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct{}

// Kind returns Mul.
func (MulOp) Kind() Kind { return Mul }

// Arity returns 2.
func (MulOp) Arity() int { return 2 }

// Forward returns a * b.
func (MulOp) Forward(in Inputs) float64 {
	return in.A * in.B
}

// Backward swaps the operands: each input receives the other one scaled by outGrad.
func (MulOp) Backward(in Inputs, _, outGrad float64) Grads {
	return Grads{A: in.B * outGrad, B: in.A * outGrad}
}
