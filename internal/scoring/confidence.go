package scoring

import (
	"math"
	"sort"

	"claimgraph-backend/internal/domain/casegraph"
	"claimgraph-backend/internal/domain/claim"
	"claimgraph-backend/internal/query"
	"claimgraph-backend/internal/rules"
)

// Priority buckets for missing fields and suggestions on the legacy contract.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var priorityRank = map[Priority]int{PriorityHigh: 0, PriorityMedium: 1, PriorityLow: 2}

// ConfidenceBreakdown itemizes the legacy flat-record confidence score.
type ConfidenceBreakdown struct {
	RequiredFields int `json:"requiredFields"` // max 40
	Amount         int `json:"amount"`         // max 10
	Demands        int `json:"demands"`        // max 10
	Timeline       int `json:"timeline"`       // max 10
	Evidence       int `json:"evidence"`       // max 15
	Signature      int `json:"signature"`      // max 15
}

// Sum adds every component.
func (b ConfidenceBreakdown) Sum() int {
	return b.RequiredFields + b.Amount + b.Demands + b.Timeline + b.Evidence + b.Signature
}

// MissingField names one gap in the flat record.
type MissingField struct {
	Field    string   `json:"field"`
	Label    string   `json:"label"`
	Priority Priority `json:"priority"`
}

// Suggestion is one improvement hint on the legacy contract.
type Suggestion struct {
	Text     string   `json:"text"`
	Priority Priority `json:"priority"`
}

// ConfidenceResult is the legacy flat-record scoring contract.
type ConfidenceResult struct {
	Confidence    int                 `json:"confidence"`
	Breakdown     ConfidenceBreakdown `json:"breakdown"`
	MissingFields []MissingField      `json:"missingFields"`
	RiskFlags     []string            `json:"riskFlags"`
	Suggestions   []Suggestion        `json:"suggestions"`
}

// missingFieldCatalogue maps rule codes to flat-record field descriptors.
var missingFieldCatalogue = map[string]MissingField{
	rules.CodeMissingPlaintiff:        {Field: "plaintiffName", Label: "Plaintiff full name", Priority: PriorityHigh},
	rules.CodeMissingPlaintiffID:      {Field: "plaintiffId", Label: "Plaintiff ID number", Priority: PriorityHigh},
	rules.CodeMissingPlaintiffAddress: {Field: "plaintiffAddress", Label: "Plaintiff address", Priority: PriorityHigh},
	rules.CodeMissingDefendant:        {Field: "defendantName", Label: "Defendant name", Priority: PriorityHigh},
	rules.CodeMissingAmount:           {Field: "amount", Label: "Claim amount", Priority: PriorityHigh},
	rules.CodeNoTimeline:              {Field: "timeline", Label: "Event timeline", Priority: PriorityMedium},
	rules.CodeInsufficientNarrative:   {Field: "timeline", Label: "Event timeline", Priority: PriorityMedium},
	rules.CodeNoEvidence:              {Field: "evidence", Label: "Supporting evidence", Priority: PriorityMedium},
	rules.CodeMissingLegalBasis:       {Field: "legalBasis", Label: "Legal basis", Priority: PriorityLow},
}

// CalculateConfidence scores a legacy flat record. It is a thin adapter over
// the canonical graph scorer: the record is migrated to a graph and every
// fact is derived from that graph, so the two paths cannot drift. Only the
// signature component reads the flat record directly, because signatures are
// not represented in the graph.
func (s *Scorer) CalculateConfidence(c claim.LegacyClaim) (ConfidenceResult, error) {
	if c.ClaimID == "" {
		c.ClaimID = "legacy"
	}
	g, err := casegraph.BuildFromClaim(c)
	if err != nil {
		return ConfidenceResult{}, err
	}

	breakdown := s.confidenceBreakdown(g, c)
	out := s.rules.Evaluate(g)

	return ConfidenceResult{
		Confidence:    breakdown.Sum(),
		Breakdown:     breakdown,
		MissingFields: missingFields(out),
		RiskFlags:     riskFlags(g, out),
		Suggestions:   suggestions(out),
	}, nil
}

func (s *Scorer) confidenceBreakdown(g *casegraph.Graph, c claim.LegacyClaim) ConfidenceBreakdown {
	var b ConfidenceBreakdown

	// Required plaintiff/defendant fields, rescaled from the canonical
	// 20+10 party components onto the legacy 40-point band.
	canonical := s.scoreBreakdown(g)
	b.RequiredFields = int(math.Round(40.0 * float64(canonical.Plaintiff+canonical.Defendant) / 30.0))

	var total float64
	for _, d := range query.Demands(g) {
		total += d.Demand.Amount
	}
	if total > 0 {
		b.Amount = 10
	}

	switch demandCount := len(query.Demands(g)); {
	case demandCount >= 2:
		b.Demands = 10
	case demandCount == 1:
		b.Demands = 6
	}

	switch eventCount := len(query.Events(g)); {
	case eventCount >= 3:
		b.Timeline = 10
	case eventCount >= 1:
		b.Timeline = 5
	}

	switch evidenceCount := len(query.Evidence(g)); {
	case evidenceCount >= 3:
		b.Evidence = 15
	case evidenceCount >= 1:
		b.Evidence = 8
	}

	if c.HasSignature {
		b.Signature = 15
	}

	return b
}

func missingFields(out rules.Output) []MissingField {
	seen := map[string]bool{}
	fields := []MissingField{}
	for _, f := range append(append([]rules.Finding{}, out.Blockers...), out.Warnings...) {
		mf, ok := missingFieldCatalogue[f.Code]
		if !ok || seen[mf.Field] {
			continue
		}
		seen[mf.Field] = true
		fields = append(fields, mf)
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return priorityRank[fields[i].Priority] < priorityRank[fields[j].Priority]
	})
	return fields
}

func riskFlags(g *casegraph.Graph, out rules.Output) []string {
	flags := []string{}
	for _, n := range query.Risks(g) {
		flags = append(flags, n.Risk.Description)
	}
	for _, f := range out.Blockers {
		if f.Code == rules.CodeAmountOverCeiling {
			flags = append(flags, f.Description)
		}
	}
	return flags
}

func suggestions(out rules.Output) []Suggestion {
	var sugg []Suggestion
	for _, a := range out.NextActions {
		var p Priority
		switch {
		case a.Priority <= 4:
			p = PriorityHigh
		case a.Priority <= 8:
			p = PriorityMedium
		default:
			p = PriorityLow
		}
		sugg = append(sugg, Suggestion{Text: a.Title, Priority: p})
	}
	sort.SliceStable(sugg, func(i, j int) bool {
		return priorityRank[sugg[i].Priority] < priorityRank[sugg[j].Priority]
	})
	return sugg
}
