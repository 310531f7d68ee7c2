// Package memory provides an in-memory GraphRepository used by tests and
// local development runs. It honors the same optimistic-locking contract as
// the DynamoDB store.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"claimgraph-backend/internal/domain/casegraph"
	"claimgraph-backend/internal/repository"
)

// Repository is a mutex-guarded map of claim id to serialized graph.
// Documents are stored as JSON so callers can never alias stored state.
type Repository struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{docs: map[string][]byte{}}
}

var _ repository.GraphRepository = (*Repository)(nil)

// FindByClaimID loads the graph for a case.
func (r *Repository) FindByClaimID(_ context.Context, claimID string) (*casegraph.Graph, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raw, ok := r.docs[claimID]
	if !ok {
		return nil, repository.ErrGraphNotFound
	}
	var g casegraph.Graph
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Save writes the graph, enforcing the DocVersion check.
func (r *Repository) Save(_ context.Context, g *casegraph.Graph) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if raw, ok := r.docs[g.ClaimID]; ok {
		var stored casegraph.Graph
		if err := json.Unmarshal(raw, &stored); err != nil {
			return err
		}
		if stored.DocVersion != g.DocVersion {
			return repository.ErrVersionConflict
		}
	} else if g.DocVersion != 0 {
		return repository.ErrVersionConflict
	}

	g.DocVersion++
	raw, err := json.Marshal(g)
	if err != nil {
		g.DocVersion--
		return err
	}
	r.docs[g.ClaimID] = raw
	return nil
}

// Delete removes the document for a case.
func (r *Repository) Delete(_ context.Context, claimID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[claimID]; !ok {
		return repository.ErrGraphNotFound
	}
	delete(r.docs, claimID)
	return nil
}
