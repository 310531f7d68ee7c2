// Package api defines the contracts for API requests and responses.
// It decouples the API structure from the internal domain models.
package api

// CreateCaseRequest is the expected body for POST /cases.
type CreateCaseRequest struct {
	ClaimID string `json:"claimId" validate:"required"`
}

// NodePayload carries the kind-specific attributes of a node request.
// Exactly one member must be set, matching Kind.
type NodePayload struct {
	Event         *EventPayload         `json:"event,omitempty"`
	Demand        *DemandPayload        `json:"demand,omitempty"`
	Evidence      *EvidencePayload      `json:"evidence,omitempty"`
	Communication *CommunicationPayload `json:"communication,omitempty"`
	Party         *PartyPayload         `json:"party,omitempty"`
	Risk          *RiskPayload          `json:"risk,omitempty"`
}

// EventPayload mirrors casegraph.EventAttrs on the wire.
type EventPayload struct {
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// DemandPayload mirrors casegraph.DemandAttrs on the wire.
type DemandPayload struct {
	Amount      float64 `json:"amount,omitempty" validate:"gte=0"`
	Description string  `json:"description,omitempty"`
	LegalBasis  string  `json:"legalBasis,omitempty"`
}

// EvidencePayload mirrors casegraph.EvidenceAttrs on the wire.
type EvidencePayload struct {
	FileID      string `json:"fileId,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Tag         string `json:"tag,omitempty"`
	Description string `json:"description,omitempty"`
}

// CommunicationPayload mirrors casegraph.CommunicationAttrs on the wire.
type CommunicationPayload struct {
	Direction     string `json:"direction,omitempty"`
	Medium        string `json:"medium,omitempty"`
	Summary       string `json:"summary,omitempty"`
	IsPriorNotice bool   `json:"isPriorNotice,omitempty"`
}

// PartyPayload mirrors casegraph.PartyAttrs on the wire.
type PartyPayload struct {
	Role      string `json:"role" validate:"required,oneof=plaintiff defendant witness"`
	FullName  string `json:"fullName" validate:"required"`
	IDNumber  string `json:"idNumber,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	PartyType string `json:"partyType,omitempty"`
}

// RiskPayload mirrors casegraph.RiskAttrs on the wire.
type RiskPayload struct {
	Severity    string `json:"severity,omitempty" validate:"omitempty,oneof=high medium low"`
	Description string `json:"description" validate:"required"`
	Mitigation  string `json:"mitigation,omitempty"`
}

// AddNodeRequest is the expected body for POST /cases/{caseId}/nodes.
type AddNodeRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=event demand evidence communication party risk"`
	Label string `json:"label" validate:"required,max=200"`
	NodePayload
}

// UpdateNodeRequest is the expected body for PUT /cases/{caseId}/nodes/{nodeId}.
// The node id comes from the URL; kind must match the stored node.
type UpdateNodeRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=event demand evidence communication party risk"`
	Label string `json:"label" validate:"required,max=200"`
	NodePayload
}

// AddEdgeRequest is the expected body for POST /cases/{caseId}/edges.
type AddEdgeRequest struct {
	Kind   string  `json:"kind" validate:"required,oneof=caused_by followed_by supports undermines addresses filed_by filed_against relates_to"`
	Source string  `json:"source" validate:"required"`
	Target string  `json:"target" validate:"required"`
	Label  string  `json:"label,omitempty"`
	Weight float64 `json:"weight,omitempty" validate:"gte=0,lte=1"`
}

// LinkEvidenceRequest is the expected body for POST /cases/{caseId}/links.
type LinkEvidenceRequest struct {
	EvidenceID string `json:"evidenceId" validate:"required"`
	TargetID   string `json:"targetId" validate:"required"`
	TargetKind string `json:"targetKind" validate:"required,oneof=event demand"`
}

// EligibilityRequest is the expected body for POST /eligibility.
type EligibilityRequest struct {
	PlaintiffType       string  `json:"plaintiffType" validate:"required"`
	Amount              float64 `json:"amount" validate:"gte=0"`
	ClaimType           string  `json:"claimType,omitempty"`
	GovernmentDefendant bool    `json:"governmentDefendant,omitempty"`
	ClassAction         bool    `json:"classAction,omitempty"`
	StatuteConcern      bool    `json:"statuteConcern,omitempty"`
	RealEstateOwnership bool    `json:"realEstateOwnership,omitempty"`
}

// ErrorResponse is a standardized error message for API responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
