// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over scalars.
//
// Every arithmetic operation on a Value records a new node in its Graph.
// Calling Backward on a result fills in the gradient of that result with
// respect to every node it depends on.
//
// Example:
//
//	import "github.com/born-ml/micrograd/autodiff"
//
//	func main() {
//	    g := autodiff.NewGraph()
//	    a := g.Leaf(2.0)
//	    b := g.Leaf(-3.0)
//	    c := g.Leaf(10.0)
//
//	    d := a.Mul(b).Add(c) // 4.0
//	    d.Backward()
//
//	    fmt.Println(a.Grad(), b.Grad(), c.Grad()) // -3 2 1
//	}
//
// Literals enter the graph as Const operands on either side:
//
//	y := x.Mul(autodiff.Const(2))
//	z := g.Sub(autodiff.Const(1), x)
package autodiff

import (
	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/autodiff/ops"
)

// Graph records the nodes of one forward pass.
type Graph = autodiff.Graph

// Value is a handle to one scalar node.
type Value = autodiff.Value

// Operand is a Value or a Const.
type Operand = autodiff.Operand

// Const is a numeric literal operand.
type Const = autodiff.Const

// Kind tags the operation that produced a Value.
type Kind = ops.Kind

// Operation kinds.
const (
	Leaf = ops.Leaf
	Add  = ops.Add
	Mul  = ops.Mul
	Pow  = ops.Pow
	Exp  = ops.Exp
	Tanh = ops.Tanh
	ReLU = ops.ReLU
	Log  = ops.Log
)

// Errors.
var (
	ErrUnsupportedExponent = autodiff.ErrUnsupportedExponent
	ErrCyclicGraph         = autodiff.ErrCyclicGraph
)

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return autodiff.NewGraph()
}
