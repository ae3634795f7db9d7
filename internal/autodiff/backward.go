package autodiff

import (
	"github.com/pkg/errors"

	"github.com/born-ml/micrograd/internal/autodiff/ops"
)

// Backward computes d(v)/d(n) for every node n reachable from v.
//
// Algorithm:
//  1. Build a topological order of the nodes reachable from v
//  2. Seed v's gradient with 1.0
//  3. Walk the order in reverse, applying each node's backward rule
//  4. Accumulate contributions, so fan-out nodes sum over all consumers
//
// The seed overwrites v's gradient but every other gradient accumulates.
// Calling Backward twice without ZeroGrad therefore doubles every gradient
// except the root's. Reset gradients with Graph.ZeroGrad between passes.
func (v Value) Backward() {
	v.node()
	v.graph.backward(v.id, nil)
}

// Backward is equivalent to root.Backward().
func (g *Graph) Backward(root Value) {
	root.resolve(g)
	g.backward(root.id, nil)
}

// TopoOrder returns every node reachable from root, each one after all of
// its predecessors. root is always last.
func (g *Graph) TopoOrder(root Value) []Value {
	root.resolve(g)
	order := g.topo(root.id)
	values := make([]Value, len(order))
	for i, id := range order {
		values[i] = Value{graph: g, id: id, epoch: g.epoch}
	}
	return values
}

// backward runs the reverse pass from root. visit, if non-nil, is called with
// each node's slot just before its rule is applied.
func (g *Graph) backward(root int32, visit func(int32)) {
	order := g.topo(root)

	g.nodes[root].grad = 1.0

	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		if visit != nil {
			visit(id)
		}
		n := &g.nodes[id]
		if n.kind == ops.Leaf {
			continue
		}
		grads := ops.Lookup(n.kind).Backward(g.inputs(n), n.data, n.grad)
		g.nodes[n.prev[0]].grad += grads.A
		if n.nprev > 1 {
			g.nodes[n.prev[1]].grad += grads.B
		}
	}
}

// topo returns the depth-first postorder of the nodes reachable from root.
//
// This is the iterative form of
//
//	visit(n): if !visited[n] { visited[n] = true; for p in prev(n) { visit(p) }; append(n) }
//
// with an explicit stack, so deep chains cannot exhaust the goroutine stack.
// Predecessor slots are always lower than their consumer's, which bounds the
// visited set to root+1 entries.
func (g *Graph) topo(root int32) []int32 {
	type frame struct {
		id   int32
		next uint8 // index of the next predecessor to explore
	}

	visited := make([]bool, root+1)
	order := make([]int32, 0, root+1)
	stack := []frame{{id: root}}
	visited[root] = true

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		n := &g.nodes[top.id]
		if top.next < n.nprev {
			p := n.prev[top.next]
			top.next++
			if p >= top.id {
				panic(errors.Wrapf(ErrCyclicGraph, "autodiff: node %d lists predecessor %d", top.id, p))
			}
			if !visited[p] {
				visited[p] = true
				stack = append(stack, frame{id: p})
			}
			continue
		}
		order = append(order, top.id)
		stack = stack[:len(stack)-1]
	}

	return order
}
