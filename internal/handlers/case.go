// Package handlers provides HTTP handlers with clean dependency injection.
package handlers

import (
	"encoding/json"
	"net/http"

	"claimgraph-backend/internal/domain/casegraph"
	"claimgraph-backend/internal/domain/claim"
	"claimgraph-backend/internal/service/casefile"
	"claimgraph-backend/pkg/api"
	appErrors "claimgraph-backend/pkg/errors"
	"claimgraph-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CaseHandler handles case-graph HTTP requests with injected dependencies.
type CaseHandler struct {
	service  casefile.Service
	validate *validator.Validate
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewCaseHandler creates a new case handler.
func NewCaseHandler(service casefile.Service, validate *validator.Validate, metrics *observability.Metrics, logger *zap.Logger) *CaseHandler {
	return &CaseHandler{
		service:  service,
		validate: validate,
		metrics:  metrics,
		logger:   logger,
	}
}

// CreateCase handles POST /api/v1/cases
func (h *CaseHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCaseRequest
	if !h.decode(w, r, &req) {
		return
	}

	g, err := h.service.CreateCase(r.Context(), req.ClaimID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.Success(w, http.StatusCreated, g)
}

// GetGraph handles GET /api/v1/cases/{caseId}/graph
func (h *CaseHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	g, err := h.service.GetGraph(r.Context(), chi.URLParam(r, "caseId"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.Success(w, http.StatusOK, g)
}

// DeleteCase handles DELETE /api/v1/cases/{caseId}
func (h *CaseHandler) DeleteCase(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCase(r.Context(), chi.URLParam(r, "caseId")); err != nil {
		handleServiceError(w, err)
		return
	}
	api.Success(w, http.StatusNoContent, nil)
}

// MigrateCase handles POST /api/v1/cases/{caseId}/migrate
func (h *CaseHandler) MigrateCase(w http.ResponseWriter, r *http.Request) {
	var legacy claim.LegacyClaim
	if err := json.NewDecoder(r.Body).Decode(&legacy); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	legacy.ClaimID = chi.URLParam(r, "caseId")

	g, err := h.service.MigrateLegacy(r.Context(), legacy)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.Success(w, http.StatusCreated, g)
}

// AddNode handles POST /api/v1/cases/{caseId}/nodes
func (h *CaseHandler) AddNode(w http.ResponseWriter, r *http.Request) {
	var req api.AddNodeRequest
	if !h.decode(w, r, &req) {
		return
	}

	node, err := nodeFromRequest(req.Kind, req.Label, req.NodePayload)
	if err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := h.service.AddNode(r.Context(), chi.URLParam(r, "caseId"), node)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.Success(w, http.StatusCreated, g)
}

// UpdateNode handles PUT /api/v1/cases/{caseId}/nodes/{nodeId}
func (h *CaseHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateNodeRequest
	if !h.decode(w, r, &req) {
		return
	}

	node, err := nodeFromRequest(req.Kind, req.Label, req.NodePayload)
	if err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	node.ID = chi.URLParam(r, "nodeId")

	g, err := h.service.UpdateNode(r.Context(), chi.URLParam(r, "caseId"), node)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.Success(w, http.StatusOK, g)
}

// RemoveNode handles DELETE /api/v1/cases/{caseId}/nodes/{nodeId}
func (h *CaseHandler) RemoveNode(w http.ResponseWriter, r *http.Request) {
	g, err := h.service.RemoveNode(r.Context(), chi.URLParam(r, "caseId"), chi.URLParam(r, "nodeId"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.Success(w, http.StatusOK, g)
}

// AddEdge handles POST /api/v1/cases/{caseId}/edges
func (h *CaseHandler) AddEdge(w http.ResponseWriter, r *http.Request) {
	var req api.AddEdgeRequest
	if !h.decode(w, r, &req) {
		return
	}

	edge := casegraph.NewEdge(casegraph.EdgeKind(req.Kind), req.Source, req.Target)
	edge.Label = req.Label
	edge.Weight = req.Weight

	g, err := h.service.AddEdge(r.Context(), chi.URLParam(r, "caseId"), edge)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.Success(w, http.StatusCreated, g)
}

// RemoveEdge handles DELETE /api/v1/cases/{caseId}/edges/{edgeId}
func (h *CaseHandler) RemoveEdge(w http.ResponseWriter, r *http.Request) {
	g, err := h.service.RemoveEdge(r.Context(), chi.URLParam(r, "caseId"), chi.URLParam(r, "edgeId"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.Success(w, http.StatusOK, g)
}

// LinkEvidence handles POST /api/v1/cases/{caseId}/links. The declared
// target kind is enforced against the stored nodes, so a link can never
// cover anything but an event or a demand.
func (h *CaseHandler) LinkEvidence(w http.ResponseWriter, r *http.Request) {
	var req api.LinkEvidenceRequest
	if !h.decode(w, r, &req) {
		return
	}

	g, err := h.service.LinkEvidence(r.Context(), chi.URLParam(r, "caseId"),
		req.EvidenceID, req.TargetID, casegraph.NodeKind(req.TargetKind))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	api.Success(w, http.StatusCreated, g)
}

// Readiness handles GET /api/v1/cases/{caseId}/readiness
func (h *CaseHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.Readiness(r.Context(), chi.URLParam(r, "caseId"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.metrics.RecordEvaluation("rules")
	api.Success(w, http.StatusOK, out)
}

// Score handles GET /api/v1/cases/{caseId}/score
func (h *CaseHandler) Score(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Score(r.Context(), chi.URLParam(r, "caseId"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.metrics.RecordEvaluation("score")
	api.Success(w, http.StatusOK, res)
}

// Health handles GET /api/v1/cases/{caseId}/health
func (h *CaseHandler) Health(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Health(r.Context(), chi.URLParam(r, "caseId"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.metrics.RecordEvaluation("health")
	api.Success(w, http.StatusOK, report)
}

// ScoreLegacy handles POST /api/v1/claims/score
func (h *CaseHandler) ScoreLegacy(w http.ResponseWriter, r *http.Request) {
	var legacy claim.LegacyClaim
	if err := json.NewDecoder(r.Body).Decode(&legacy); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.ScoreLegacy(r.Context(), legacy)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.metrics.RecordEvaluation("confidence")
	api.Success(w, http.StatusOK, res)
}

// decode parses and validates a JSON request body.
func (h *CaseHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// nodeFromRequest builds a domain node from the wire payload. Server-side
// construction keeps id and timestamp generation out of clients' hands.
func nodeFromRequest(kind, label string, p api.NodePayload) (casegraph.Node, error) {
	switch casegraph.NodeKind(kind) {
	case casegraph.KindEvent:
		if p.Event == nil {
			return casegraph.Node{}, casegraph.ErrPayloadKindMismatch
		}
		return casegraph.NewEventNode(label, casegraph.EventAttrs{
			Date:        p.Event.Date,
			Description: p.Event.Description,
			Category:    casegraph.EventCategory(p.Event.Category),
		}), nil
	case casegraph.KindDemand:
		if p.Demand == nil {
			return casegraph.Node{}, casegraph.ErrPayloadKindMismatch
		}
		return casegraph.NewDemandNode(label, casegraph.DemandAttrs{
			Amount:      p.Demand.Amount,
			Description: p.Demand.Description,
			LegalBasis:  p.Demand.LegalBasis,
		}), nil
	case casegraph.KindEvidence:
		if p.Evidence == nil {
			return casegraph.Node{}, casegraph.ErrPayloadKindMismatch
		}
		return casegraph.NewEvidenceNode(label, casegraph.EvidenceAttrs{
			FileID:      p.Evidence.FileID,
			Kind:        casegraph.EvidenceKind(p.Evidence.Kind),
			Tag:         casegraph.EvidenceTag(p.Evidence.Tag),
			Description: p.Evidence.Description,
		}), nil
	case casegraph.KindCommunication:
		if p.Communication == nil {
			return casegraph.Node{}, casegraph.ErrPayloadKindMismatch
		}
		return casegraph.NewCommunicationNode(label, casegraph.CommunicationAttrs{
			Direction:     casegraph.Direction(p.Communication.Direction),
			Medium:        p.Communication.Medium,
			Summary:       p.Communication.Summary,
			IsPriorNotice: p.Communication.IsPriorNotice,
		}), nil
	case casegraph.KindParty:
		if p.Party == nil {
			return casegraph.Node{}, casegraph.ErrPayloadKindMismatch
		}
		return casegraph.NewPartyNode(label, casegraph.PartyAttrs{
			Role:      casegraph.PartyRole(p.Party.Role),
			FullName:  p.Party.FullName,
			IDNumber:  p.Party.IDNumber,
			Phone:     p.Party.Phone,
			Address:   p.Party.Address,
			PartyType: p.Party.PartyType,
		}), nil
	case casegraph.KindRisk:
		if p.Risk == nil {
			return casegraph.Node{}, casegraph.ErrPayloadKindMismatch
		}
		return casegraph.NewRiskNode(label, casegraph.RiskAttrs{
			Severity:    casegraph.RiskSeverity(p.Risk.Severity),
			Description: p.Risk.Description,
			Mitigation:  p.Risk.Mitigation,
		}), nil
	default:
		return casegraph.Node{}, casegraph.ErrUnknownNodeKind
	}
}

// handleServiceError maps application errors to HTTP status codes.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case appErrors.IsValidation(err):
		api.Error(w, http.StatusBadRequest, err.Error())
	case appErrors.IsNotFound(err):
		api.Error(w, http.StatusNotFound, err.Error())
	case appErrors.IsConflict(err):
		api.Error(w, http.StatusConflict, err.Error())
	default:
		api.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
