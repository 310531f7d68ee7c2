// Package claim holds the legacy flat case record and the loosely-typed
// extraction payload produced by the interview AI. Both are external input
// contracts: the graph engine consumes them only through the one-time
// migration and the flat-record scoring adapter.
package claim

// LegacyClaim is the flat case record kept by the previous storage schema.
// Every field is optional; absence is the zero value.
type LegacyClaim struct {
	ClaimID string `json:"claimId,omitempty"`

	PlaintiffName    string `json:"plaintiffName,omitempty"`
	PlaintiffID      string `json:"plaintiffId,omitempty"`
	PlaintiffPhone   string `json:"plaintiffPhone,omitempty"`
	PlaintiffAddress string `json:"plaintiffAddress,omitempty"`
	PlaintiffType    string `json:"plaintiffType,omitempty"`

	// Defendants is the structured list; DefendantName is the older
	// single-defendant field used as a fallback when the list is empty.
	Defendants    []Defendant `json:"defendants,omitempty"`
	DefendantName string      `json:"defendantName,omitempty"`

	Amount     float64  `json:"amount,omitempty"`
	Demands    []string `json:"demands,omitempty"`
	LegalBasis string   `json:"legalBasis,omitempty"`

	Timeline []TimelineEntry `json:"timeline,omitempty"`
	Evidence []EvidenceFile  `json:"evidence,omitempty"`

	HasPriorNotice bool `json:"hasPriorNotice,omitempty"`
	HasSignature   bool `json:"hasSignature,omitempty"`

	RiskFlags []string `json:"riskFlags,omitempty"`
}

// Defendant is one structured defendant entry on the flat record.
type Defendant struct {
	Name    string `json:"name"`
	ID      string `json:"id,omitempty"`
	Address string `json:"address,omitempty"`
	Type    string `json:"type,omitempty"`
}

// TimelineEntry is one flat timeline row. Older records used "event" for the
// narrative text, newer ones "description"; Text() reconciles the two.
type TimelineEntry struct {
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Event       string `json:"event,omitempty"`
}

// Text returns the narrative text of the entry regardless of which legacy
// field carries it.
func (t TimelineEntry) Text() string {
	if t.Description != "" {
		return t.Description
	}
	return t.Event
}

// EvidenceFile is one flat evidence entry.
type EvidenceFile struct {
	FileID      string `json:"fileId,omitempty"`
	FileName    string `json:"fileName,omitempty"`
	Kind        string `json:"kind,omitempty"` // image/document/video/audio/text
	Tag         string `json:"tag,omitempty"`  // receipt/contract/correspondence
	Description string `json:"description,omitempty"`
}

// Extraction is the structured payload returned by the AI interview service.
// It is consumed by claim-update logic and the flat-record scorer, never by
// the graph engine directly.
type Extraction struct {
	FactsSummary   string          `json:"factsSummary,omitempty"`
	Timeline       []TimelineEntry `json:"timeline,omitempty"`
	Demands        []string        `json:"demands,omitempty"`
	MissingFields  []string        `json:"missingFields,omitempty"`
	EvidenceNeeded []string        `json:"evidenceNeeded,omitempty"`
	Defendant      string          `json:"defendant,omitempty"`
	Amount         float64         `json:"amount,omitempty"`
	HasPriorNotice bool            `json:"hasPriorNotice,omitempty"`
}

// ApplyExtraction merges an extraction payload into a flat claim record.
// Existing values win; the extraction only fills gaps, since the AI output
// is a best-effort guess while the record holds user-confirmed facts.
func ApplyExtraction(c *LegacyClaim, e Extraction) {
	if c.DefendantName == "" && len(c.Defendants) == 0 {
		c.DefendantName = e.Defendant
	}
	if c.Amount == 0 {
		c.Amount = e.Amount
	}
	if len(c.Timeline) == 0 {
		c.Timeline = e.Timeline
	}
	if len(c.Demands) == 0 {
		c.Demands = e.Demands
	}
	if e.HasPriorNotice {
		c.HasPriorNotice = true
	}
}
