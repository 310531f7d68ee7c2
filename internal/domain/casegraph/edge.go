package casegraph

// Edge is a directed, typed relationship between two nodes of the same graph.
type Edge struct {
	ID       string         `json:"id"`
	Kind     EdgeKind       `json:"kind"`
	Source   string         `json:"source"`
	Target   string         `json:"target"`
	Label    string         `json:"label,omitempty"`
	Weight   float64        `json:"weight,omitempty"` // 0.0 to 1.0
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewEdge creates an edge with a fresh id.
func NewEdge(kind EdgeKind, source, target string) Edge {
	return Edge{
		ID:     newID(),
		Kind:   kind,
		Source: source,
		Target: target,
	}
}

// Validate checks the edge's structural rules. Endpoint existence is checked
// by the graph, not here.
func (e *Edge) Validate() error {
	if e.ID == "" {
		return ErrEmptyEdgeID
	}
	if !e.Kind.IsValid() {
		return ErrUnknownEdgeKind
	}
	if e.Source == "" || e.Target == "" {
		return ErrEdgeMissingEndpoint
	}
	if e.Weight < 0.0 || e.Weight > 1.0 {
		return ErrInvalidWeight
	}
	return nil
}

// Touches reports whether the edge references the given node id as either
// endpoint.
func (e *Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}
