package query

import (
	"claimgraph-backend/internal/domain/casegraph"
)

// HealthReport is a lightweight 0-100 completeness summary shown next to the
// case while it is being assembled. It is intentionally coarser than the
// canonical readiness score, which also consults the rules engine.
type HealthReport struct {
	Score      int `json:"score"`
	Parties    int `json:"parties"`    // max 20
	Timeline   int `json:"timeline"`   // max 15
	Demands    int `json:"demands"`    // max 15
	Evidence   int `json:"evidence"`   // max 25
	Procedural int `json:"procedural"` // max 10
	LegalBasis int `json:"legalBasis"` // max 15
}

// Health derives the summary report from the graph.
func Health(g *casegraph.Graph) HealthReport {
	var r HealthReport

	if Plaintiff(g) != nil {
		r.Parties += 10
	}
	if len(Defendants(g)) > 0 {
		r.Parties += 10
	}

	events := Events(g)
	switch {
	case len(events) >= 4:
		r.Timeline = 15
	case len(events) >= 2:
		r.Timeline = 10
	case len(events) >= 1:
		r.Timeline = 5
	}

	demands := Demands(g)
	if len(demands) > 0 {
		r.Demands += 8
		for _, d := range demands {
			if d.Demand.Amount > 0 {
				r.Demands += 7
				break
			}
		}
	}

	evidence := Evidence(g)
	switch {
	case len(evidence) >= 3:
		r.Evidence = 15
	case len(evidence) >= 2:
		r.Evidence = 10
	case len(evidence) >= 1:
		r.Evidence = 5
	}
	targets := len(events) + len(demands)
	if targets > 0 {
		covered := len(CoveredEvents(g)) + len(CoveredDemands(g))
		r.Evidence += int(10.0 * float64(covered) / float64(targets))
	}

	for _, c := range Communications(g) {
		if c.Communication.IsPriorNotice {
			r.Procedural = 10
			break
		}
	}

	if len(demands) > 0 {
		substantiated := 0
		for _, d := range demands {
			if d.Demand.LegalBasis != "" {
				substantiated++
			}
		}
		r.LegalBasis = int(15.0 * float64(substantiated) / float64(len(demands)))
	}

	r.Score = r.Parties + r.Timeline + r.Demands + r.Evidence + r.Procedural + r.LegalBasis
	if r.Score > 100 {
		r.Score = 100
	}
	return r
}

// HasPriorNotice reports whether any communication in the graph is marked as
// a pre-filing demand notice.
func HasPriorNotice(g *casegraph.Graph) bool {
	for _, c := range Communications(g) {
		if c.Communication.IsPriorNotice {
			return true
		}
	}
	return false
}
