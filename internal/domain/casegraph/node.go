// Package casegraph implements the case graph: the typed node/edge structure
// that represents every fact of a small-claims case (parties, events, demands,
// evidence, communications, risks) and the mutation API over it.
//
// The graph is the single source of truth for the rest of the system; the
// query layer, rules engine and scorers are all pure reads over it.
package casegraph

import (
	"time"

	"github.com/google/uuid"
)

// Node is a tagged union: Kind selects which one of the attribute payloads is
// set. Exactly one payload pointer is non-nil on a well-formed node.
//
// Consumers must switch over all kinds; a node of an unknown kind is dropped
// by queries rather than misread.
type Node struct {
	ID        string         `json:"id"`
	Kind      NodeKind       `json:"kind"`
	Label     string         `json:"label"`
	CreatedAt int64          `json:"createdAt"`
	UpdatedAt int64          `json:"updatedAt"`
	Metadata  map[string]any `json:"metadata,omitempty"`

	Event         *EventAttrs         `json:"event,omitempty"`
	Demand        *DemandAttrs        `json:"demand,omitempty"`
	Evidence      *EvidenceAttrs      `json:"evidence,omitempty"`
	Communication *CommunicationAttrs `json:"communication,omitempty"`
	Party         *PartyAttrs         `json:"party,omitempty"`
	Risk          *RiskAttrs          `json:"risk,omitempty"`
}

// EventAttrs describes a point in time in the case narrative.
type EventAttrs struct {
	Date        string        `json:"date,omitempty"` // free text, best-effort parseable
	Description string        `json:"description,omitempty"`
	Category    EventCategory `json:"category"`
}

// DemandAttrs describes a requested relief.
type DemandAttrs struct {
	Amount      float64 `json:"amount,omitempty"`
	Description string  `json:"description,omitempty"`
	LegalBasis  string  `json:"legalBasis,omitempty"`
}

// EvidenceAttrs references an external file supporting the case.
type EvidenceAttrs struct {
	FileID      string       `json:"fileId,omitempty"`
	Kind        EvidenceKind `json:"evidenceKind"`
	Tag         EvidenceTag  `json:"tag,omitempty"`
	Description string       `json:"description,omitempty"`
}

// CommunicationAttrs describes an interaction between the parties.
type CommunicationAttrs struct {
	Direction     Direction `json:"direction"`
	Medium        string    `json:"medium,omitempty"`
	Summary       string    `json:"summary,omitempty"`
	IsPriorNotice bool      `json:"isPriorNotice"`
}

// PartyAttrs describes a person involved in the claim.
type PartyAttrs struct {
	Role      PartyRole `json:"role"`
	FullName  string    `json:"fullName"`
	IDNumber  string    `json:"idNumber,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	PartyType string    `json:"partyType,omitempty"`
}

// RiskAttrs flags a weakness of the case.
type RiskAttrs struct {
	Severity    RiskSeverity `json:"severity"`
	Description string       `json:"description"`
	Mitigation  string       `json:"mitigation,omitempty"`
}

// newID returns a fresh globally unique identifier, shared by node and edge
// construction.
//
// Ids are UUIDs generated per call rather than a process-wide counter, so
// concurrent clients editing the same case can never mint colliding ids.
func newID() string {
	return uuid.New().String()
}

// NewNodeID returns a fresh node identifier.
func NewNodeID() string {
	return newID()
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// newNode builds the common envelope shared by all node constructors.
func newNode(kind NodeKind, label string) Node {
	now := nowMillis()
	return Node{
		ID:        newID(),
		Kind:      kind,
		Label:     label,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewEventNode creates an event node. An empty category defaults to "other".
func NewEventNode(label string, attrs EventAttrs) Node {
	if attrs.Category == "" {
		attrs.Category = EventOther
	}
	n := newNode(KindEvent, label)
	n.Event = &attrs
	return n
}

// NewDemandNode creates a demand node.
func NewDemandNode(label string, attrs DemandAttrs) Node {
	n := newNode(KindDemand, label)
	n.Demand = &attrs
	return n
}

// NewEvidenceNode creates an evidence node. An empty evidence kind defaults
// to "document".
func NewEvidenceNode(label string, attrs EvidenceAttrs) Node {
	if attrs.Kind == "" {
		attrs.Kind = EvidenceDocument
	}
	n := newNode(KindEvidence, label)
	n.Evidence = &attrs
	return n
}

// NewCommunicationNode creates a communication node.
func NewCommunicationNode(label string, attrs CommunicationAttrs) Node {
	if attrs.Direction == "" {
		attrs.Direction = DirectionOutgoing
	}
	n := newNode(KindCommunication, label)
	n.Communication = &attrs
	return n
}

// NewPartyNode creates a party node.
func NewPartyNode(label string, attrs PartyAttrs) Node {
	n := newNode(KindParty, label)
	n.Party = &attrs
	return n
}

// NewRiskNode creates a risk node. An empty severity defaults to "medium".
func NewRiskNode(label string, attrs RiskAttrs) Node {
	if attrs.Severity == "" {
		attrs.Severity = RiskMedium
	}
	n := newNode(KindRisk, label)
	n.Risk = &attrs
	return n
}

// Validate checks that the node's payload matches its kind.
func (n *Node) Validate() error {
	if n.ID == "" {
		return ErrEmptyNodeID
	}
	if !n.Kind.IsValid() {
		return ErrUnknownNodeKind
	}
	var payloads int
	if n.Event != nil {
		payloads++
	}
	if n.Demand != nil {
		payloads++
	}
	if n.Evidence != nil {
		payloads++
	}
	if n.Communication != nil {
		payloads++
	}
	if n.Party != nil {
		payloads++
	}
	if n.Risk != nil {
		payloads++
	}
	if payloads != 1 {
		return ErrAmbiguousPayload
	}
	kindMatches := map[NodeKind]bool{
		KindEvent:         n.Event != nil,
		KindDemand:        n.Demand != nil,
		KindEvidence:      n.Evidence != nil,
		KindCommunication: n.Communication != nil,
		KindParty:         n.Party != nil,
		KindRisk:          n.Risk != nil,
	}
	if !kindMatches[n.Kind] {
		return ErrPayloadKindMismatch
	}
	return nil
}
