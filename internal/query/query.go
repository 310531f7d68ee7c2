// Package query provides the read-only derivation layer over a case graph.
// Every function is pure: no graph passed in is ever mutated.
package query

import (
	"sort"

	"claimgraph-backend/internal/domain/casegraph"
)

// NodesOfKind returns the nodes of the given kind in insertion order.
func NodesOfKind(g *casegraph.Graph, kind casegraph.NodeKind) []casegraph.Node {
	var out []casegraph.Node
	for _, n := range g.Nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// Events returns all event nodes.
func Events(g *casegraph.Graph) []casegraph.Node {
	return NodesOfKind(g, casegraph.KindEvent)
}

// Demands returns all demand nodes.
func Demands(g *casegraph.Graph) []casegraph.Node {
	return NodesOfKind(g, casegraph.KindDemand)
}

// Evidence returns all evidence nodes.
func Evidence(g *casegraph.Graph) []casegraph.Node {
	return NodesOfKind(g, casegraph.KindEvidence)
}

// Communications returns all communication nodes.
func Communications(g *casegraph.Graph) []casegraph.Node {
	return NodesOfKind(g, casegraph.KindCommunication)
}

// Parties returns all party nodes.
func Parties(g *casegraph.Graph) []casegraph.Node {
	return NodesOfKind(g, casegraph.KindParty)
}

// Risks returns all risk nodes.
func Risks(g *casegraph.Graph) []casegraph.Node {
	return NodesOfKind(g, casegraph.KindRisk)
}

// Plaintiff returns the first party node with the plaintiff role, or nil.
func Plaintiff(g *casegraph.Graph) *casegraph.Node {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Kind == casegraph.KindParty && n.Party != nil && n.Party.Role == casegraph.RolePlaintiff {
			return n
		}
	}
	return nil
}

// Defendants returns all party nodes with the defendant role.
func Defendants(g *casegraph.Graph) []casegraph.Node {
	var out []casegraph.Node
	for _, n := range g.Nodes {
		if n.Kind == casegraph.KindParty && n.Party != nil && n.Party.Role == casegraph.RoleDefendant {
			out = append(out, n)
		}
	}
	return out
}

// EventsChronological returns events sorted by date. Dates are free text:
// both sides are parsed first and compared as calendar dates; only when both
// fail to parse does the comparison fall back to lexicographic. Undated
// events sort after all dated ones, keeping insertion order among themselves.
func EventsChronological(g *casegraph.Graph) []casegraph.Node {
	events := Events(g)
	sorted := make([]casegraph.Node, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i].Event.Date, sorted[j].Event.Date
		if di == "" || dj == "" {
			return di != "" && dj == ""
		}
		return compareDates(di, dj) < 0
	})
	return sorted
}

// EdgesByKind returns all edges of the given kind.
func EdgesByKind(g *casegraph.Graph, kind casegraph.EdgeKind) []casegraph.Edge {
	var out []casegraph.Edge
	for _, e := range g.Edges {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// EdgesFrom returns all edges whose source is the given node.
func EdgesFrom(g *casegraph.Graph, nodeID string) []casegraph.Edge {
	var out []casegraph.Edge
	for _, e := range g.Edges {
		if e.Source == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// EdgesTo returns all edges whose target is the given node.
func EdgesTo(g *casegraph.Graph, nodeID string) []casegraph.Edge {
	var out []casegraph.Edge
	for _, e := range g.Edges {
		if e.Target == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// Neighbors returns the nodes connected to the given node in either
// direction, deduplicated, optionally restricted to the given edge kinds.
func Neighbors(g *casegraph.Graph, nodeID string, kinds ...casegraph.EdgeKind) []casegraph.Node {
	allowed := map[casegraph.EdgeKind]bool{}
	for _, k := range kinds {
		allowed[k] = true
	}
	seen := map[string]bool{}
	var out []casegraph.Node
	for _, e := range g.Edges {
		if len(allowed) > 0 && !allowed[e.Kind] {
			continue
		}
		var otherID string
		switch nodeID {
		case e.Source:
			otherID = e.Target
		case e.Target:
			otherID = e.Source
		default:
			continue
		}
		if seen[otherID] {
			continue
		}
		seen[otherID] = true
		if n := g.NodeByID(otherID); n != nil {
			out = append(out, *n)
		}
	}
	return out
}

// coveredIDs collects the ids of nodes targeted by at least one supports edge.
func coveredIDs(g *casegraph.Graph) map[string]bool {
	covered := map[string]bool{}
	for _, e := range g.Edges {
		if e.Kind == casegraph.EdgeSupports {
			covered[e.Target] = true
		}
	}
	return covered
}

// CoveredEvents returns events that have at least one supporting evidence edge.
func CoveredEvents(g *casegraph.Graph) []casegraph.Node {
	return filterByCoverage(Events(g), coveredIDs(g), true)
}

// UncoveredEvents returns events with no supporting evidence edge.
func UncoveredEvents(g *casegraph.Graph) []casegraph.Node {
	return filterByCoverage(Events(g), coveredIDs(g), false)
}

// CoveredDemands returns demands that have at least one supporting evidence edge.
func CoveredDemands(g *casegraph.Graph) []casegraph.Node {
	return filterByCoverage(Demands(g), coveredIDs(g), true)
}

// UncoveredDemands returns demands with no supporting evidence edge.
func UncoveredDemands(g *casegraph.Graph) []casegraph.Node {
	return filterByCoverage(Demands(g), coveredIDs(g), false)
}

func filterByCoverage(nodes []casegraph.Node, covered map[string]bool, want bool) []casegraph.Node {
	var out []casegraph.Node
	for _, n := range nodes {
		if covered[n.ID] == want {
			out = append(out, n)
		}
	}
	return out
}

// UnlinkedEvidence returns evidence nodes that are not the source of any
// supports edge.
func UnlinkedEvidence(g *casegraph.Graph) []casegraph.Node {
	linked := map[string]bool{}
	for _, e := range g.Edges {
		if e.Kind == casegraph.EdgeSupports {
			linked[e.Source] = true
		}
	}
	var out []casegraph.Node
	for _, n := range Evidence(g) {
		if !linked[n.ID] {
			out = append(out, n)
		}
	}
	return out
}
