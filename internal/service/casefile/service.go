// Package casefile provides the business operations over a case: loading the
// graph, applying mutations, persisting, and running the evaluation engines.
// Every mutation is a load-apply-save round trip guarded by the repository's
// optimistic version check.
package casefile

import (
	"context"
	"errors"

	"claimgraph-backend/internal/domain/casegraph"
	"claimgraph-backend/internal/domain/claim"
	"claimgraph-backend/internal/eligibility"
	"claimgraph-backend/internal/infrastructure/events"
	"claimgraph-backend/internal/query"
	"claimgraph-backend/internal/repository"
	"claimgraph-backend/internal/rules"
	"claimgraph-backend/internal/scoring"
	appErrors "claimgraph-backend/pkg/errors"

	"go.uber.org/zap"
)

// maxSaveAttempts bounds the reload-and-retry loop on version conflicts.
const maxSaveAttempts = 3

// Service defines the case-level operations exposed to the transport layer.
type Service interface {
	// CreateCase creates an empty graph for a new case.
	CreateCase(ctx context.Context, claimID string) (*casegraph.Graph, error)

	// MigrateLegacy builds a graph from a legacy flat record, once, for a
	// case that has no graph yet.
	MigrateLegacy(ctx context.Context, legacy claim.LegacyClaim) (*casegraph.Graph, error)

	// GetGraph loads the full graph for a case.
	GetGraph(ctx context.Context, claimID string) (*casegraph.Graph, error)

	// DeleteCase removes the case graph.
	DeleteCase(ctx context.Context, claimID string) error

	// AddNode appends a node and persists the graph.
	AddNode(ctx context.Context, claimID string, n casegraph.Node) (*casegraph.Graph, error)

	// UpdateNode replaces a node's fields and persists the graph.
	UpdateNode(ctx context.Context, claimID string, n casegraph.Node) (*casegraph.Graph, error)

	// RemoveNode deletes a node, cascading edge cleanup, and persists.
	RemoveNode(ctx context.Context, claimID, nodeID string) (*casegraph.Graph, error)

	// AddEdge appends an edge (deduplicated) and persists the graph.
	AddEdge(ctx context.Context, claimID string, e casegraph.Edge) (*casegraph.Graph, error)

	// RemoveEdge deletes an edge and persists the graph.
	RemoveEdge(ctx context.Context, claimID, edgeID string) (*casegraph.Graph, error)

	// LinkEvidence creates a full-weight supports edge from an evidence node
	// to an event or demand, checking both node kinds, and persists.
	LinkEvidence(ctx context.Context, claimID, evidenceID, targetID string, targetKind casegraph.NodeKind) (*casegraph.Graph, error)

	// Readiness evaluates the rules engine over the case graph.
	Readiness(ctx context.Context, claimID string) (rules.Output, error)

	// Score runs the canonical graph scorer over the case graph.
	Score(ctx context.Context, claimID string) (scoring.GraphScoreResult, error)

	// Health derives the lightweight completeness summary.
	Health(ctx context.Context, claimID string) (query.HealthReport, error)

	// ScoreLegacy scores a flat record through the migration adapter.
	ScoreLegacy(ctx context.Context, legacy claim.LegacyClaim) (scoring.ConfidenceResult, error)

	// CheckEligibility screens a pre-case summary.
	CheckEligibility(ctx context.Context, in eligibility.Input) eligibility.Result
}

type service struct {
	repo      repository.GraphRepository
	rules     *rules.Engine
	scorer    *scoring.Scorer
	checker   *eligibility.Checker
	publisher *events.Publisher
	logger    *zap.Logger
}

// NewService wires the case service.
func NewService(
	repo repository.GraphRepository,
	rulesEngine *rules.Engine,
	scorer *scoring.Scorer,
	checker *eligibility.Checker,
	publisher *events.Publisher,
	logger *zap.Logger,
) Service {
	return &service{
		repo:      repo,
		rules:     rulesEngine,
		scorer:    scorer,
		checker:   checker,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *service) CreateCase(ctx context.Context, claimID string) (*casegraph.Graph, error) {
	if _, err := s.repo.FindByClaimID(ctx, claimID); err == nil {
		return nil, appErrors.NewConflict("a graph already exists for this case")
	} else if !repository.IsNotFound(err) {
		return nil, appErrors.NewInternal("failed to check for existing graph", err)
	}

	g, err := casegraph.NewGraph(claimID)
	if err != nil {
		return nil, appErrors.NewValidation(err.Error())
	}
	if err := s.repo.Save(ctx, g); err != nil {
		return nil, s.mapRepoError(err)
	}

	s.logger.Info("case graph created", zap.String("claim_id", claimID))
	s.publisher.PublishGraphUpdated(ctx, claimID, "created", g.DocVersion)
	return g, nil
}

func (s *service) MigrateLegacy(ctx context.Context, legacy claim.LegacyClaim) (*casegraph.Graph, error) {
	if legacy.ClaimID == "" {
		return nil, appErrors.NewValidation("claimId is required")
	}
	if _, err := s.repo.FindByClaimID(ctx, legacy.ClaimID); err == nil {
		return nil, appErrors.NewConflict("case already has a graph; migration runs only once")
	} else if !repository.IsNotFound(err) {
		return nil, appErrors.NewInternal("failed to check for existing graph", err)
	}

	g, err := casegraph.BuildFromClaim(legacy)
	if err != nil {
		return nil, appErrors.NewValidation(err.Error())
	}
	if err := s.repo.Save(ctx, g); err != nil {
		return nil, s.mapRepoError(err)
	}

	s.logger.Info("legacy record migrated to graph",
		zap.String("claim_id", legacy.ClaimID),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
	)
	s.publisher.PublishGraphUpdated(ctx, legacy.ClaimID, "migrated", g.DocVersion)
	return g, nil
}

func (s *service) GetGraph(ctx context.Context, claimID string) (*casegraph.Graph, error) {
	g, err := s.repo.FindByClaimID(ctx, claimID)
	if err != nil {
		return nil, s.mapRepoError(err)
	}
	return g, nil
}

func (s *service) DeleteCase(ctx context.Context, claimID string) error {
	if err := s.repo.Delete(ctx, claimID); err != nil {
		return s.mapRepoError(err)
	}
	s.publisher.PublishGraphUpdated(ctx, claimID, "deleted", 0)
	return nil
}

func (s *service) AddNode(ctx context.Context, claimID string, n casegraph.Node) (*casegraph.Graph, error) {
	return s.mutate(ctx, claimID, "node_added", func(g *casegraph.Graph) error {
		_, err := g.AddNode(n)
		return err
	})
}

func (s *service) UpdateNode(ctx context.Context, claimID string, n casegraph.Node) (*casegraph.Graph, error) {
	return s.mutate(ctx, claimID, "node_updated", func(g *casegraph.Graph) error {
		_, err := g.UpdateNode(n)
		return err
	})
}

func (s *service) RemoveNode(ctx context.Context, claimID, nodeID string) (*casegraph.Graph, error) {
	return s.mutate(ctx, claimID, "node_removed", func(g *casegraph.Graph) error {
		return g.RemoveNode(nodeID)
	})
}

func (s *service) AddEdge(ctx context.Context, claimID string, e casegraph.Edge) (*casegraph.Graph, error) {
	return s.mutate(ctx, claimID, "edge_added", func(g *casegraph.Graph) error {
		_, err := g.AddEdge(e)
		return err
	})
}

func (s *service) RemoveEdge(ctx context.Context, claimID, edgeID string) (*casegraph.Graph, error) {
	return s.mutate(ctx, claimID, "edge_removed", func(g *casegraph.Graph) error {
		return g.RemoveEdge(edgeID)
	})
}

func (s *service) LinkEvidence(ctx context.Context, claimID, evidenceID, targetID string, targetKind casegraph.NodeKind) (*casegraph.Graph, error) {
	return s.mutate(ctx, claimID, "evidence_linked", func(g *casegraph.Graph) error {
		var err error
		switch targetKind {
		case casegraph.KindEvent:
			_, err = g.LinkEvidenceToEvent(evidenceID, targetID)
		case casegraph.KindDemand:
			_, err = g.LinkEvidenceToDemand(evidenceID, targetID)
		default:
			return casegraph.ErrUnknownNodeKind
		}
		return err
	})
}

func (s *service) Readiness(ctx context.Context, claimID string) (rules.Output, error) {
	g, err := s.repo.FindByClaimID(ctx, claimID)
	if err != nil {
		return rules.Output{}, s.mapRepoError(err)
	}
	return s.rules.Evaluate(g), nil
}

func (s *service) Score(ctx context.Context, claimID string) (scoring.GraphScoreResult, error) {
	g, err := s.repo.FindByClaimID(ctx, claimID)
	if err != nil {
		return scoring.GraphScoreResult{}, s.mapRepoError(err)
	}
	return s.scorer.ScoreGraph(g), nil
}

func (s *service) Health(ctx context.Context, claimID string) (query.HealthReport, error) {
	g, err := s.repo.FindByClaimID(ctx, claimID)
	if err != nil {
		return query.HealthReport{}, s.mapRepoError(err)
	}
	return query.Health(g), nil
}

func (s *service) ScoreLegacy(_ context.Context, legacy claim.LegacyClaim) (scoring.ConfidenceResult, error) {
	res, err := s.scorer.CalculateConfidence(legacy)
	if err != nil {
		return scoring.ConfidenceResult{}, appErrors.NewValidation(err.Error())
	}
	return res, nil
}

func (s *service) CheckEligibility(_ context.Context, in eligibility.Input) eligibility.Result {
	return s.checker.Check(in)
}

// mutate runs one load-apply-save round trip, reloading and retrying when
// another writer saved the document first.
func (s *service) mutate(ctx context.Context, claimID, action string, apply func(*casegraph.Graph) error) (*casegraph.Graph, error) {
	var lastErr error
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		g, err := s.repo.FindByClaimID(ctx, claimID)
		if err != nil {
			return nil, s.mapRepoError(err)
		}
		if err := apply(g); err != nil {
			return nil, mapDomainError(err)
		}
		if err := s.repo.Save(ctx, g); err != nil {
			if repository.IsVersionConflict(err) {
				lastErr = err
				s.logger.Warn("retrying mutation after version conflict",
					zap.String("claim_id", claimID),
					zap.String("action", action),
					zap.Int("attempt", attempt+1),
				)
				continue
			}
			return nil, s.mapRepoError(err)
		}
		s.publisher.PublishGraphUpdated(ctx, claimID, action, g.DocVersion)
		return g, nil
	}
	return nil, s.mapRepoError(lastErr)
}

func (s *service) mapRepoError(err error) error {
	switch {
	case repository.IsNotFound(err):
		return appErrors.NewNotFound("no graph exists for this case")
	case repository.IsVersionConflict(err):
		return appErrors.NewConflict("the case was modified concurrently; reload and retry")
	default:
		return appErrors.NewInternal("graph store operation failed", err)
	}
}

// mapDomainError converts mutation-API errors into the application taxonomy.
func mapDomainError(err error) error {
	switch {
	case errors.Is(err, casegraph.ErrNodeNotFound), errors.Is(err, casegraph.ErrEdgeNotFound):
		return appErrors.NewNotFound(err.Error())
	default:
		return appErrors.NewValidation(err.Error())
	}
}
