// Package autodiff implements reverse-mode automatic differentiation over scalars.
//
// Architecture:
//   - Graph: an append-only arena holding every node of one forward pass
//   - Value: a small handle (graph, slot) returned by every operation
//   - ops.Operation: per-kind forward and backward rules, dispatched by tag
//   - Backward: iterative topological sort, then a reverse walk applying rules
//
// Predecessors are stored as arena slots strictly lower than the node's own
// slot, so every graph built through this package is acyclic.
//
// Usage:
//
//	g := autodiff.NewGraph()
//	a := g.Leaf(2.0)
//	b := g.Leaf(-3.0)
//	d := a.Mul(b).Add(autodiff.Const(10))
//	d.Backward()
//	fmt.Println(a.Grad()) // -3
package autodiff

import (
	"github.com/born-ml/micrograd/internal/autodiff/ops"
)

// node is one arena slot.
type node struct {
	data     float64
	grad     float64
	exponent float64 // Pow only
	prev     [2]int32
	nprev    uint8
	kind     ops.Kind
	label    string
}

// Graph records the nodes created during one forward pass.
//
// A Graph is not safe for concurrent use. Build a fresh graph (or Reset this
// one) for every training iteration; gradients are never carried across.
type Graph struct {
	nodes []node
	epoch uint32 // bumped by Reset to invalidate outstanding Values
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make([]node, 0, 64), // Pre-allocate for common case
	}
}

// Len returns the number of nodes recorded so far.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Reset discards every node while keeping the arena's memory.
// Values obtained before Reset become invalid and panic on use.
func (g *Graph) Reset() {
	g.nodes = g.nodes[:0]
	g.epoch++
}

// Leaf creates a node with no predecessors.
func (g *Graph) Leaf(x float64) Value {
	return g.push(node{data: x, kind: ops.Leaf})
}

// LeafLabeled creates a leaf carrying a diagnostic label.
func (g *Graph) LeafLabeled(x float64, label string) Value {
	return g.push(node{data: x, kind: ops.Leaf, label: label})
}

// ZeroGrad resets the gradient of every node in the graph to 0.
func (g *Graph) ZeroGrad() {
	for i := range g.nodes {
		g.nodes[i].grad = 0
	}
}

func (g *Graph) push(n node) Value {
	id := int32(len(g.nodes)) //nolint:gosec // G115: arenas beyond 2^31 nodes are not supported.
	g.nodes = append(g.nodes, n)
	return Value{graph: g, id: id, epoch: g.epoch}
}

// unary records a one-input node and computes its value with the op's forward rule.
func (g *Graph) unary(kind ops.Kind, a Value, exponent float64) Value {
	in := ops.Inputs{A: g.nodes[a.id].data, Exponent: exponent}
	return g.push(node{
		data:     ops.Lookup(kind).Forward(in),
		exponent: exponent,
		prev:     [2]int32{a.id},
		nprev:    1,
		kind:     kind,
	})
}

// binary records a two-input node. Order matters: a is the left operand.
func (g *Graph) binary(kind ops.Kind, a, b Value) Value {
	in := ops.Inputs{A: g.nodes[a.id].data, B: g.nodes[b.id].data}
	return g.push(node{
		data:  ops.Lookup(kind).Forward(in),
		prev:  [2]int32{a.id, b.id},
		nprev: 2,
		kind:  kind,
	})
}

// inputs gathers the stored values a node's rule reads.
func (g *Graph) inputs(n *node) ops.Inputs {
	in := ops.Inputs{Exponent: n.exponent}
	if n.nprev > 0 {
		in.A = g.nodes[n.prev[0]].data
	}
	if n.nprev > 1 {
		in.B = g.nodes[n.prev[1]].data
	}
	return in
}
