package nn

import "github.com/born-ml/micrograd/internal/autodiff"

// Parameter represents a trainable scalar in a neural network.
//
// The graph of a forward pass is discarded after each iteration, so the
// parameter keeps its own data and gradient and binds to a fresh leaf in
// every new graph.
//
// Example:
//
//	w := nn.NewParameter("w", 0.5)
//	x := w.Bind(g)          // leaf in g holding 0.5
//	loss := x.Mul(x)
//	loss.Backward()
//	w.Collect()             // w.Grad() == 1.0
type Parameter struct {
	name string
	data float64
	grad float64
	leaf autodiff.Value // valid only while its graph is live
}

// NewParameter creates a new trainable parameter.
func NewParameter(name string, data float64) *Parameter {
	return &Parameter{name: name, data: data}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Data returns the current value.
func (p *Parameter) Data() float64 {
	return p.data
}

// SetData overwrites the current value. Leaves already bound keep the old value.
func (p *Parameter) SetData(x float64) {
	p.data = x
}

// Grad returns the gradient collected since the last ZeroGrad.
func (p *Parameter) Grad() float64 {
	return p.grad
}

// ZeroGrad clears the collected gradient and the bound leaf's gradient.
//
// This should be called before each backward pass to avoid
// accumulating gradients from previous iterations.
func (p *Parameter) ZeroGrad() {
	p.grad = 0
	if p.leaf.Valid() {
		p.leaf.ZeroGrad()
	}
}

// Bind returns the leaf for p in g, creating it on first use in g.
func (p *Parameter) Bind(g *autodiff.Graph) autodiff.Value {
	if p.leaf.Valid() && p.leaf.Graph() == g {
		return p.leaf
	}
	p.leaf = g.LeafLabeled(p.data, p.name)
	return p.leaf
}

// Leaf returns the currently bound leaf. It is invalid if p was never bound
// or its graph has since been reset.
func (p *Parameter) Leaf() autodiff.Value {
	return p.leaf
}

// Collect adds the bound leaf's gradient into p.
// Parameters without a live leaf did not take part in the pass and are skipped.
func (p *Parameter) Collect() {
	if p.leaf.Valid() {
		p.grad += p.leaf.Grad()
	}
}
