// SPDX-License-Identifier: MPL-2.0

// Package dag orders workflow steps. Nodes are command names and an edge
// from A to B records that B consumes a file A produces, so A must run first.
package dag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is the sentinel error wrapped by CycleError.
var ErrCycle = errors.New("dependency cycle")

type (
	// CycleError indicates that the graph contains a cycle, preventing topological ordering.
	CycleError struct {
		// Cycle lists the nodes left unordered, in insertion order. They include
		// every node on a cycle and anything downstream of one.
		Cycle []string
	}

	// Graph is a directed graph with insertion-ordered nodes.
	Graph struct {
		adjacency map[string][]string
		edges     map[[2]string]bool
		nodes     []string
		seen      map[string]bool
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// Unwrap returns ErrCycle for errors.Is.
func (e *CycleError) Unwrap() error { return ErrCycle }

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[string][]string),
		edges:     make(map[[2]string]bool),
		seen:      make(map[string]bool),
	}
}

// AddNode adds a node to the graph. If the node already exists, this is a no-op.
func (g *Graph) AddNode(name string) {
	if g.seen[name] {
		return
	}
	g.seen[name] = true
	g.nodes = append(g.nodes, name)
}

// AddEdge adds a directed edge from -> to, meaning "from" must run before "to".
// Both nodes are implicitly added if they don't exist. Repeated edges are ignored.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	key := [2]string{from, to}
	if g.edges[key] {
		return
	}
	g.edges[key] = true
	g.adjacency[from] = append(g.adjacency[from], to)
}

// TopologicalSort returns an execution order. Among the nodes that are ready
// at any point, the one added first is emitted first, so a graph whose edges
// agree with insertion order sorts to exactly the insertion order.
// Returns CycleError if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[string]int, len(g.nodes))
	for _, neighbors := range g.adjacency {
		for _, neighbor := range neighbors {
			inDegree[neighbor]++
		}
	}

	done := make(map[string]bool, len(g.nodes))
	result := make([]string, 0, len(g.nodes))
	for len(result) < len(g.nodes) {
		next := ""
		for _, node := range g.nodes {
			if !done[node] && inDegree[node] == 0 {
				next = node
				break
			}
		}
		if next == "" {
			break
		}
		done[next] = true
		result = append(result, next)
		for _, neighbor := range g.adjacency[next] {
			inDegree[neighbor]--
		}
	}

	if len(result) != len(g.nodes) {
		var remaining []string
		for _, node := range g.nodes {
			if !done[node] {
				remaining = append(remaining, node)
			}
		}
		return nil, &CycleError{Cycle: remaining}
	}

	return result, nil
}
