package query

import (
	"claimgraph-backend/internal/domain/casegraph"
)

// EventChain walks the causal chain starting at the given event, following
// only followed_by and caused_by edges, depth first. Each node appears at
// most once.
//
// The visited set is a safety requirement, not an optimization: a malformed
// but structurally possible edge set can contain cycles, and the walk must
// terminate on them rather than recurse forever.
func EventChain(g *casegraph.Graph, startID string) []casegraph.Node {
	start := g.NodeByID(startID)
	if start == nil || start.Kind != casegraph.KindEvent {
		return nil
	}

	visited := map[string]bool{}
	var chain []casegraph.Node
	var walk func(id string)
	walk = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		node := g.NodeByID(id)
		if node == nil {
			return
		}
		chain = append(chain, *node)
		for _, e := range g.Edges {
			if e.Source != id {
				continue
			}
			if e.Kind == casegraph.EdgeFollowedBy || e.Kind == casegraph.EdgeCausedBy {
				walk(e.Target)
			}
		}
	}
	walk(startID)
	return chain
}
