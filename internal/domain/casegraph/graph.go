package casegraph

// SchemaVersion is the current persisted graph schema version.
const SchemaVersion = 1

// Graph is the aggregate root for one case. Nodes and edges keep insertion
// order; all lookups that need another order sort copies.
//
// The graph is a single mutable in-memory value with single-writer semantics
// per case. DocVersion is the optimistic-concurrency token checked by the
// repository on save, so two clients that loaded the same revision cannot
// silently clobber each other.
type Graph struct {
	ClaimID    string `json:"claimId"`
	Version    int    `json:"version"` // schema version
	Nodes      []Node `json:"nodes"`
	Edges      []Edge `json:"edges"`
	CreatedAt  int64  `json:"createdAt"`
	UpdatedAt  int64  `json:"updatedAt"`
	DocVersion int    `json:"docVersion"`
}

// NewGraph creates an empty graph for a case.
func NewGraph(claimID string) (*Graph, error) {
	if claimID == "" {
		return nil, ErrEmptyClaimID
	}
	now := nowMillis()
	return &Graph{
		ClaimID:   claimID,
		Version:   SchemaVersion,
		Nodes:     []Node{},
		Edges:     []Edge{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// touch advances UpdatedAt; called on every structural mutation.
func (g *Graph) touch() {
	g.UpdatedAt = nowMillis()
}

// NodeByID returns a pointer to the node with the given id, or nil.
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// EdgeByID returns a pointer to the edge with the given id, or nil.
func (g *Graph) EdgeByID(id string) *Edge {
	for i := range g.Edges {
		if g.Edges[i].ID == id {
			return &g.Edges[i]
		}
	}
	return nil
}

// AddNode appends a node to the graph after validating it.
func (g *Graph) AddNode(n Node) (*Node, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	if g.NodeByID(n.ID) != nil {
		return nil, ErrDuplicateNodeID
	}
	g.Nodes = append(g.Nodes, n)
	g.touch()
	return &g.Nodes[len(g.Nodes)-1], nil
}

// UpdateNode replaces the fields of an existing node. The id, kind and
// creation time are immutable; everything else is taken from the update.
func (g *Graph) UpdateNode(update Node) (*Node, error) {
	existing := g.NodeByID(update.ID)
	if existing == nil {
		return nil, ErrNodeNotFound
	}
	if update.Kind != existing.Kind {
		return nil, ErrKindImmutable
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}
	update.CreatedAt = existing.CreatedAt
	update.UpdatedAt = nowMillis()
	*existing = update
	g.touch()
	return existing, nil
}

// RemoveNode deletes a node and cascades to every edge touching it, so the
// graph never holds dangling edges.
func (g *Graph) RemoveNode(id string) error {
	idx := -1
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNodeNotFound
	}
	g.Nodes = append(g.Nodes[:idx], g.Nodes[idx+1:]...)

	kept := g.Edges[:0]
	for _, e := range g.Edges {
		if !e.Touches(id) {
			kept = append(kept, e)
		}
	}
	g.Edges = kept
	g.touch()
	return nil
}

// FindEdge returns the edge with the given (source, target, kind) triple,
// or nil.
func (g *Graph) FindEdge(source, target string, kind EdgeKind) *Edge {
	for i := range g.Edges {
		e := &g.Edges[i]
		if e.Source == source && e.Target == target && e.Kind == kind {
			return e
		}
	}
	return nil
}

// AddEdge appends an edge after validating it and checking both endpoints
// exist. Adding a duplicate (source, target, kind) triple is a no-op that
// returns the existing edge.
func (g *Graph) AddEdge(e Edge) (*Edge, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if g.NodeByID(e.Source) == nil || g.NodeByID(e.Target) == nil {
		return nil, ErrEdgeEndpointMissing
	}
	if existing := g.FindEdge(e.Source, e.Target, e.Kind); existing != nil {
		return existing, nil
	}
	g.Edges = append(g.Edges, e)
	g.touch()
	return &g.Edges[len(g.Edges)-1], nil
}

// RemoveEdge deletes an edge by id.
func (g *Graph) RemoveEdge(id string) error {
	for i := range g.Edges {
		if g.Edges[i].ID == id {
			g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
			g.touch()
			return nil
		}
	}
	return ErrEdgeNotFound
}

// Convenience constructors used by the interview flow.

// AddEvent creates and adds an event node in one step.
func (g *Graph) AddEvent(label string, attrs EventAttrs) (*Node, error) {
	return g.AddNode(NewEventNode(label, attrs))
}

// AddDemand creates and adds a demand node in one step.
func (g *Graph) AddDemand(label string, attrs DemandAttrs) (*Node, error) {
	return g.AddNode(NewDemandNode(label, attrs))
}

// LinkEvidenceToEvent creates a full-weight supports edge from an evidence
// node to an event node.
func (g *Graph) LinkEvidenceToEvent(evidenceID, eventID string) (*Edge, error) {
	return g.linkSupports(evidenceID, eventID, KindEvent)
}

// LinkEvidenceToDemand creates a full-weight supports edge from an evidence
// node to a demand node.
func (g *Graph) LinkEvidenceToDemand(evidenceID, demandID string) (*Edge, error) {
	return g.linkSupports(evidenceID, demandID, KindDemand)
}

func (g *Graph) linkSupports(evidenceID, targetID string, targetKind NodeKind) (*Edge, error) {
	source := g.NodeByID(evidenceID)
	if source == nil || source.Kind != KindEvidence {
		return nil, ErrNodeNotFound
	}
	target := g.NodeByID(targetID)
	if target == nil || target.Kind != targetKind {
		return nil, ErrNodeNotFound
	}
	e := NewEdge(EdgeSupports, evidenceID, targetID)
	e.Weight = 1.0
	return g.AddEdge(e)
}
