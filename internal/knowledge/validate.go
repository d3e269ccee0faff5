package knowledge

import (
	"fmt"
	"sort"
	"strings"
)

// Validate checks the whole graph for cycles using Kahn's algorithm.
// It returns an error naming every topic left on a cycle, or nil.
func (g *Graph) Validate() error {
	inDegree := make(map[string]int, len(g.nodes))
	for _, n := range g.nodes {
		inDegree[n] = len(g.prereqs[n])
	}

	var queue []string
	for _, n := range g.nodes {
		if inDegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, dep := range g.dependents[id] {
			// A dependent lists id once per occurrence in its prerequisites.
			for _, p := range g.prereqs[dep] {
				if p == id {
					inDegree[dep]--
				}
			}
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if visited == len(g.nodes) {
		return nil
	}
	var cycleNodes []string
	for n, deg := range inDegree {
		if deg > 0 {
			cycleNodes = append(cycleNodes, n)
		}
	}
	sort.Strings(cycleNodes)
	return fmt.Errorf("cycle detected involving topics: %s", strings.Join(cycleNodes, ", "))
}
