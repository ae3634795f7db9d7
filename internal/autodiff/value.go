package autodiff

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff/ops"
)

// Value is a handle to one scalar node in a Graph.
//
// Values are cheap to copy; all copies refer to the same node. The zero Value
// is invalid, as is any Value obtained before its graph was Reset.
type Value struct {
	graph *Graph
	id    int32
	epoch uint32
}

// node returns the referenced slot, panicking on invalid handles.
func (v Value) node() *node {
	if v.graph == nil {
		panic("autodiff: use of zero Value")
	}
	if v.epoch != v.graph.epoch {
		panic("autodiff: use of Value after its graph was reset")
	}
	return &v.graph.nodes[v.id]
}

// Valid reports whether v refers to a live node.
func (v Value) Valid() bool {
	return v.graph != nil && v.epoch == v.graph.epoch
}

// Graph returns the graph v belongs to.
func (v Value) Graph() *Graph {
	return v.graph
}

// Data returns the forward-computed value.
func (v Value) Data() float64 {
	return v.node().data
}

// SetData overwrites v's data. Nodes already built from v keep the values
// they computed.
func (v Value) SetData(x float64) {
	v.node().data = x
}

// Grad returns the accumulated gradient of the last backward root with
// respect to v. It reads 0 until a backward pass reaches v.
func (v Value) Grad() float64 {
	return v.node().grad
}

// ZeroGrad resets v's gradient to 0.
func (v Value) ZeroGrad() {
	v.node().grad = 0
}

// Op returns the kind of operation that produced v.
func (v Value) Op() ops.Kind {
	return v.node().kind
}

// Exponent returns the constant exponent of a Pow node and 0 otherwise.
func (v Value) Exponent() float64 {
	return v.node().exponent
}

// Label returns the diagnostic label.
func (v Value) Label() string {
	return v.node().label
}

// SetLabel attaches a diagnostic label. It has no effect on computation.
func (v Value) SetLabel(label string) Value {
	v.node().label = label
	return v
}

// Prev returns the direct predecessors in operand order.
func (v Value) Prev() []Value {
	n := v.node()
	prev := make([]Value, n.nprev)
	for i := range prev {
		prev[i] = Value{graph: v.graph, id: n.prev[i], epoch: v.epoch}
	}
	return prev
}

// String formats v the way it prints in training output.
func (v Value) String() string {
	if !v.Valid() {
		return "Value(invalid)"
	}
	n := v.node()
	if n.label != "" {
		return fmt.Sprintf("Value(data=%g, label=%s)", n.data, n.label)
	}
	return fmt.Sprintf("Value(data=%g)", n.data)
}
