package casegraph

// NodeKind discriminates the variant of a Node. Exactly one attribute
// payload on the Node corresponds to each kind.
type NodeKind string

const (
	KindEvent         NodeKind = "event"
	KindDemand        NodeKind = "demand"
	KindEvidence      NodeKind = "evidence"
	KindCommunication NodeKind = "communication"
	KindParty         NodeKind = "party"
	KindRisk          NodeKind = "risk"
)

// AllNodeKinds lists every node kind; consumers that switch over kinds use
// this in tests to stay exhaustive when a kind is added.
var AllNodeKinds = []NodeKind{
	KindEvent, KindDemand, KindEvidence, KindCommunication, KindParty, KindRisk,
}

// IsValid reports whether the kind is one of the known node kinds.
func (k NodeKind) IsValid() bool {
	switch k {
	case KindEvent, KindDemand, KindEvidence, KindCommunication, KindParty, KindRisk:
		return true
	}
	return false
}

// EdgeKind discriminates the relationship a directed edge represents.
type EdgeKind string

const (
	EdgeCausedBy     EdgeKind = "caused_by"
	EdgeFollowedBy   EdgeKind = "followed_by"
	EdgeSupports     EdgeKind = "supports"
	EdgeUndermines   EdgeKind = "undermines"
	EdgeAddresses    EdgeKind = "addresses"
	EdgeFiledBy      EdgeKind = "filed_by"
	EdgeFiledAgainst EdgeKind = "filed_against"
	EdgeRelatesTo    EdgeKind = "relates_to"
)

// IsValid reports whether the kind is one of the known edge kinds.
func (k EdgeKind) IsValid() bool {
	switch k {
	case EdgeCausedBy, EdgeFollowedBy, EdgeSupports, EdgeUndermines,
		EdgeAddresses, EdgeFiledBy, EdgeFiledAgainst, EdgeRelatesTo:
		return true
	}
	return false
}

// EventCategory classifies timeline events.
type EventCategory string

const (
	EventPurchase         EventCategory = "purchase"
	EventIncident         EventCategory = "incident"
	EventComplaint        EventCategory = "complaint"
	EventDemandSent       EventCategory = "demand_sent"
	EventResponseReceived EventCategory = "response_received"
	EventEscalation       EventCategory = "escalation"
	EventFiling           EventCategory = "filing"
	EventHearing          EventCategory = "hearing"
	EventOther            EventCategory = "other"
)

// IsValid reports whether the category is known.
func (c EventCategory) IsValid() bool {
	switch c {
	case EventPurchase, EventIncident, EventComplaint, EventDemandSent,
		EventResponseReceived, EventEscalation, EventFiling, EventHearing, EventOther:
		return true
	}
	return false
}

// EvidenceKind classifies the medium of an evidence file.
type EvidenceKind string

const (
	EvidenceImage    EvidenceKind = "image"
	EvidenceDocument EvidenceKind = "document"
	EvidenceVideo    EvidenceKind = "video"
	EvidenceAudio    EvidenceKind = "audio"
	EvidenceText     EvidenceKind = "text"
)

// EvidenceTag is an optional semantic tag on evidence.
type EvidenceTag string

const (
	TagReceipt        EvidenceTag = "receipt"
	TagContract       EvidenceTag = "contract"
	TagCorrespondence EvidenceTag = "correspondence"
)

// Direction indicates who initiated a communication.
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
)

// PartyRole identifies a party's role in the claim.
type PartyRole string

const (
	RolePlaintiff PartyRole = "plaintiff"
	RoleDefendant PartyRole = "defendant"
	RoleWitness   PartyRole = "witness"
)

// RiskSeverity grades risk nodes.
type RiskSeverity string

const (
	RiskHigh   RiskSeverity = "high"
	RiskMedium RiskSeverity = "medium"
	RiskLow    RiskSeverity = "low"
)
