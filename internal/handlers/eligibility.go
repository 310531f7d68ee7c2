package handlers

import (
	"encoding/json"
	"net/http"

	"claimgraph-backend/internal/eligibility"
	"claimgraph-backend/internal/service/casefile"
	"claimgraph-backend/pkg/api"
	"claimgraph-backend/pkg/observability"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// EligibilityHandler serves the pre-case screening endpoint.
type EligibilityHandler struct {
	service  casefile.Service
	validate *validator.Validate
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewEligibilityHandler creates a new eligibility handler.
func NewEligibilityHandler(service casefile.Service, validate *validator.Validate, metrics *observability.Metrics, logger *zap.Logger) *EligibilityHandler {
	return &EligibilityHandler{
		service:  service,
		validate: validate,
		metrics:  metrics,
		logger:   logger,
	}
}

// Check handles POST /api/v1/eligibility
func (h *EligibilityHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req api.EligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.service.CheckEligibility(r.Context(), eligibility.Input{
		PlaintiffType:       req.PlaintiffType,
		Amount:              req.Amount,
		ClaimType:           req.ClaimType,
		GovernmentDefendant: req.GovernmentDefendant,
		ClassAction:         req.ClassAction,
		StatuteConcern:      req.StatuteConcern,
		RealEstateOwnership: req.RealEstateOwnership,
	})

	h.metrics.RecordEvaluation("eligibility")
	h.logger.Info("eligibility checked",
		zap.String("verdict", string(result.Verdict)),
		zap.Int("blockers", len(result.Blockers)),
	)
	api.Success(w, http.StatusOK, result)
}
