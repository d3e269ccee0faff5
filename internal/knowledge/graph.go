// Package knowledge holds the topic dependency graph: each topic maps to
// the ordered list of topics it depends on.
package knowledge

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// ErrUnknownTopic is returned for a topic that is not a node of the graph.
var ErrUnknownTopic = errors.New("unknown topic")

// CycleError reports a dependency cycle. Path starts and ends on the same
// topic.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Path, " -> "))
}

// Graph is an immutable topic dependency graph. Edge T -> P means T
// depends on P, so P is studied first.
type Graph struct {
	prereqs    map[string][]string
	nodes      []string
	nodeSet    map[string]bool
	dependents map[string][]string
}

// New builds a graph from an adjacency map. Every key and every listed
// prerequisite becomes a node.
func New(prereqs map[string][]string) *Graph {
	g := &Graph{
		prereqs:    make(map[string][]string, len(prereqs)),
		nodeSet:    make(map[string]bool),
		dependents: make(map[string][]string),
	}
	for topic, ps := range prereqs {
		g.prereqs[topic] = slices.Clone(ps)
		g.nodeSet[topic] = true
		for _, p := range ps {
			g.nodeSet[p] = true
			if !slices.Contains(g.dependents[p], topic) {
				g.dependents[p] = append(g.dependents[p], topic)
			}
		}
	}
	for n := range g.nodeSet {
		g.nodes = append(g.nodes, n)
	}
	sort.Strings(g.nodes)
	for _, deps := range g.dependents {
		sort.Strings(deps)
	}
	return g
}

// Topics returns every node, sorted.
func (g *Graph) Topics() []string {
	return slices.Clone(g.nodes)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Has reports whether topic is a node.
func (g *Graph) Has(topic string) bool {
	return g.nodeSet[topic]
}

// Prerequisites returns the direct prerequisites of topic in stored order.
func (g *Graph) Prerequisites(topic string) []string {
	return slices.Clone(g.prereqs[topic])
}

// Dependents returns the topics that directly depend on topic, sorted.
func (g *Graph) Dependents(topic string) []string {
	return slices.Clone(g.dependents[topic])
}

// Roots returns the topics with no prerequisites, sorted.
func (g *Graph) Roots() []string {
	var roots []string
	for _, n := range g.nodes {
		if len(g.prereqs[n]) == 0 {
			roots = append(roots, n)
		}
	}
	return roots
}

type visitState uint8

const (
	unvisited visitState = iota
	onStack
	done
)

type frame struct {
	topic string
	next  int
}

// PostOrder returns the topics reachable from target, each after all of
// its prerequisites, ending with target. Prerequisites are explored depth
// first in stored order and each topic appears once. The graph must be
// acyclic along every path from target; a cycle is reported as
// *CycleError.
func (g *Graph) PostOrder(target string) ([]string, error) {
	if !g.nodeSet[target] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, target)
	}

	state := map[string]visitState{target: onStack}
	stack := []frame{{topic: target}}
	var order []string

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		ps := g.prereqs[top.topic]
		if top.next < len(ps) {
			p := ps[top.next]
			top.next++
			switch state[p] {
			case onStack:
				return nil, &CycleError{Path: cyclePath(stack, p)}
			case unvisited:
				state[p] = onStack
				stack = append(stack, frame{topic: p})
			}
			continue
		}
		state[top.topic] = done
		order = append(order, top.topic)
		stack = stack[:len(stack)-1]
	}
	return order, nil
}

// cyclePath extracts the cycle closed by an edge back to topic.
func cyclePath(stack []frame, topic string) []string {
	var path []string
	for i := len(stack) - 1; i >= 0; i-- {
		path = append(path, stack[i].topic)
		if stack[i].topic == topic {
			break
		}
	}
	slices.Reverse(path)
	return append(path, topic)
}
