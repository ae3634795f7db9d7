package ops

// AddOp represents addition: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
type AddOp struct{}

// Kind returns Add.
func (AddOp) Kind() Kind { return Add }

// Arity returns 2.
func (AddOp) Arity() int { return 2 }

// Forward returns a + b.
func (AddOp) Forward(in Inputs) float64 {
	return in.A + in.B
}

// Backward passes the output gradient through unchanged to both inputs.
func (AddOp) Backward(_ Inputs, _, outGrad float64) Grads {
	return Grads{A: outGrad, B: outGrad}
}
