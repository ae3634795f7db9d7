package ops

// ReLUOp represents the rectified linear unit: y = max(0, x).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 if x > 0, else 0
type ReLUOp struct{}

// Kind returns ReLU.
func (ReLUOp) Kind() Kind { return ReLU }

// Arity returns 1.
func (ReLUOp) Arity() int { return 1 }

// Forward returns max(0, x).
func (ReLUOp) Forward(in Inputs) float64 {
	if in.A > 0 {
		return in.A
	}
	return 0
}

// Backward lets the gradient through only where the input was positive.
func (ReLUOp) Backward(in Inputs, _, outGrad float64) Grads {
	if in.A > 0 {
		return Grads{A: outGrad}
	}
	return Grads{}
}
