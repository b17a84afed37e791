// Package graph provides the compact weighted digraph and shortest-path
// primitives used by the route solver to evaluate leg costs. Nodes are dense
// integer indices aligned 1:1 with the solver's stop indices; adjacency lists
// live in SmallArray storage so small fan-outs stay off the heap.
package graph

import "fmt"

// Edge is a directed arc between two node indices. Weights is optional: an
// edge may carry zero weights (a free hop) or one or more scalar weights that
// the shortest-path reducer folds into the cumulative path cost.
type Edge struct {
	From    int
	To      int
	Weights []float64
}

// Weighted builds an edge carrying a single scalar weight.
func Weighted(from, to int, weight float64) Edge {
	return Edge{From: from, To: to, Weights: []float64{weight}}
}

// Unweighted builds an edge with no weight payload.
func Unweighted(from, to int) Edge {
	return Edge{From: from, To: to}
}

// Graph is a compact directed graph over a fixed node set. V is the per-node
// payload (the solver stores stop indices). Node indices are stable for the
// life of the graph.
type Graph[V any] struct {
	nodes []V
	adj   []SmallArray[Edge]
}

// New builds a graph over the given node payloads. The node count is fixed;
// edges are added afterwards.
func New[V any](nodes []V) *Graph[V] {
	return &Graph[V]{
		nodes: nodes,
		adj:   make([]SmallArray[Edge], len(nodes)),
	}
}

// Len returns the number of nodes.
func (g *Graph[V]) Len() int { return len(g.nodes) }

// Node returns the payload at index i. ok is false for an unknown index.
func (g *Graph[V]) Node(i int) (V, bool) {
	if i < 0 || i >= len(g.nodes) {
		var zero V
		return zero, false
	}
	return g.nodes[i], true
}

// AddEdge appends a directed edge. Both endpoints must name existing nodes.
func (g *Graph[V]) AddEdge(e Edge) error {
	if e.From < 0 || e.From >= len(g.nodes) {
		return fmt.Errorf("graph: edge from unknown node %d", e.From)
	}
	if e.To < 0 || e.To >= len(g.nodes) {
		return fmt.Errorf("graph: edge to unknown node %d", e.To)
	}
	g.adj[e.From].Push(e)
	return nil
}

// Neighbors returns the outgoing edges of node i. ok is false when i does not
// name a node in the graph; a known node with no outgoing edges returns an
// empty slice with ok=true, so callers can tell the two apart.
func (g *Graph[V]) Neighbors(i int) ([]Edge, bool) {
	if i < 0 || i >= len(g.adj) {
		return nil, false
	}
	edges := g.adj[i].Slice()
	if edges == nil {
		edges = []Edge{}
	}
	return edges, true
}

// Degree returns the out-degree of node i, or 0 for an unknown node.
func (g *Graph[V]) Degree(i int) int {
	if i < 0 || i >= len(g.adj) {
		return 0
	}
	return g.adj[i].Len()
}
