// Package repository defines the persistence contracts for case graphs.
// Graphs are stored as whole documents, one per case id; there is no partial
// or streaming update model.
package repository

import (
	"context"
	"errors"

	"claimgraph-backend/internal/domain/casegraph"
)

// Sentinel errors surfaced by every GraphRepository implementation.
var (
	// ErrGraphNotFound indicates no graph document exists for the case id.
	ErrGraphNotFound = errors.New("graph not found")

	// ErrVersionConflict indicates the document changed since it was
	// loaded: another writer saved in between. Callers reload and retry.
	ErrVersionConflict = errors.New("graph document version conflict")
)

// GraphRepository reads and writes one graph document per case id.
type GraphRepository interface {
	// FindByClaimID loads the full graph for a case.
	FindByClaimID(ctx context.Context, claimID string) (*casegraph.Graph, error)

	// Save writes the full graph. The write is conditional on the
	// document's DocVersion matching the stored one; on success the
	// graph's DocVersion is advanced in place.
	Save(ctx context.Context, g *casegraph.Graph) error

	// Delete removes the graph document for a case.
	Delete(ctx context.Context, claimID string) error
}

// IsNotFound reports whether err is the missing-document sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrGraphNotFound)
}

// IsVersionConflict reports whether err is the optimistic-locking sentinel.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}
