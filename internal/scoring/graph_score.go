// Package scoring reduces a case graph to weighted 0-100 completeness
// metrics. ScoreGraph is the canonical scorer; the flat-record confidence
// path in confidence.go is a thin adapter that migrates the record to a
// graph first, so there is exactly one set of scoring semantics.
package scoring

import (
	"math"

	"claimgraph-backend/internal/domain/casegraph"
	"claimgraph-backend/internal/query"
	"claimgraph-backend/internal/rules"
)

// Strength classifies the averaged metrics.
type Strength string

const (
	StrengthStrong Strength = "strong"
	StrengthMedium Strength = "medium"
	StrengthWeak   Strength = "weak"
)

// Breakdown itemizes the readiness score. Each component is capped; the sum
// of the caps is 100.
type Breakdown struct {
	Plaintiff  int `json:"plaintiff"`  // max 20
	Defendant  int `json:"defendant"`  // max 10
	Claim      int `json:"claim"`      // max 15
	Narrative  int `json:"narrative"`  // max 15
	Evidence   int `json:"evidence"`   // max 20
	Procedural int `json:"procedural"` // max 10
	LegalBasis int `json:"legalBasis"` // max 10
}

// Sum adds every component.
func (b Breakdown) Sum() int {
	return b.Plaintiff + b.Defendant + b.Claim + b.Narrative + b.Evidence + b.Procedural + b.LegalBasis
}

// GraphScoreResult is the canonical scoring contract consumed by the UI.
type GraphScoreResult struct {
	ReadinessScore      int       `json:"readinessScore"`
	EvidenceCoverage    int       `json:"evidenceCoverage"`
	TimelineConsistency int       `json:"timelineConsistency"`
	LegalCompleteness   int       `json:"legalCompleteness"`
	StrengthScore       Strength  `json:"strengthScore"`
	Breakdown           Breakdown `json:"breakdown"`
}

// Scorer computes graph scores. It holds the rules engine because legal
// completeness is a penalty over the rule findings.
type Scorer struct {
	rules *rules.Engine
}

// NewScorer creates a scorer backed by the given rules engine.
func NewScorer(rulesEngine *rules.Engine) *Scorer {
	return &Scorer{rules: rulesEngine}
}

// ScoreGraph computes the four independent metrics and the breakdown.
func (s *Scorer) ScoreGraph(g *casegraph.Graph) GraphScoreResult {
	breakdown := s.scoreBreakdown(g)
	readiness := breakdown.Sum()
	if readiness > 100 {
		readiness = 100
	}

	coverage := evidenceCoverage(g)
	timeline := timelineConsistency(g)

	out := s.rules.Evaluate(g)
	legal := 100 - 15*len(out.Blockers) - 5*len(out.Warnings)
	if legal < 0 {
		legal = 0
	}

	avg := (float64(readiness) + float64(coverage) + float64(timeline)) / 3.0
	strength := StrengthWeak
	switch {
	case avg >= 70:
		strength = StrengthStrong
	case avg >= 40:
		strength = StrengthMedium
	}

	return GraphScoreResult{
		ReadinessScore:      readiness,
		EvidenceCoverage:    coverage,
		TimelineConsistency: timeline,
		LegalCompleteness:   legal,
		StrengthScore:       strength,
		Breakdown:           breakdown,
	}
}

func (s *Scorer) scoreBreakdown(g *casegraph.Graph) Breakdown {
	var b Breakdown

	if p := query.Plaintiff(g); p != nil {
		if p.Party.FullName != "" {
			b.Plaintiff += 6
		}
		if p.Party.IDNumber != "" {
			b.Plaintiff += 5
		}
		if p.Party.Phone != "" {
			b.Plaintiff += 4
		}
		if p.Party.Address != "" {
			b.Plaintiff += 5
		}
	}

	if defendants := query.Defendants(g); len(defendants) > 0 {
		d := defendants[0]
		if d.Party.FullName != "" {
			b.Defendant += 6
		}
		if d.Party.Address != "" {
			b.Defendant += 4
		}
	}

	demands := query.Demands(g)
	var total float64
	for _, d := range demands {
		total += d.Demand.Amount
	}
	if total > 0 {
		b.Claim += 5
		if total <= s.rules.Ceiling() {
			b.Claim += 3
		}
	}
	if len(demands) >= 1 {
		b.Claim += 4
	}
	if len(demands) >= 2 {
		b.Claim += 3
	}

	events := query.Events(g)
	if len(events) >= 1 {
		b.Narrative += 4
	}
	if len(events) >= 3 {
		b.Narrative += 4
	}
	if len(events) >= 5 {
		b.Narrative += 3
	}
	described := 0
	for _, ev := range events {
		if len([]rune(ev.Event.Description)) > 20 {
			described++
		}
	}
	if described >= 2 {
		b.Narrative += 4
	}

	evidence := query.Evidence(g)
	if len(evidence) >= 1 {
		b.Evidence += 5
	}
	if len(evidence) >= 2 {
		b.Evidence += 5
	}
	if len(evidence) >= 3 {
		b.Evidence += 3
	}
	linked := len(evidence) - len(query.UnlinkedEvidence(g))
	if linked >= 1 {
		b.Evidence += 3
	}
	if linked >= 3 {
		b.Evidence += 4
	}

	if query.HasPriorNotice(g) {
		b.Procedural += 7
	}
	if len(query.Communications(g)) >= 2 {
		b.Procedural += 3
	}

	if len(demands) > 0 {
		substantiated := 0
		for _, d := range demands {
			if d.Demand.LegalBasis != "" {
				substantiated++
			}
		}
		if substantiated >= 1 {
			b.LegalBasis += 5
		}
		if substantiated == len(demands) {
			b.LegalBasis += 5
		}
	}

	return b
}

// evidenceCoverage is the percentage of events and demands backed by at
// least one supports edge. Evidence with nothing to link scores 50; no
// evidence at all scores 0.
func evidenceCoverage(g *casegraph.Graph) int {
	if len(query.Evidence(g)) == 0 {
		return 0
	}
	targets := len(query.Events(g)) + len(query.Demands(g))
	if targets == 0 {
		return 50
	}
	covered := len(query.CoveredEvents(g)) + len(query.CoveredDemands(g))
	return int(math.Round(100.0 * float64(covered) / float64(targets)))
}

// timelineConsistency scores how much of a usable chronology the events
// form: multiplicity, dated fraction, described fraction, and a bonus when
// the dated events are already in order.
func timelineConsistency(g *casegraph.Graph) int {
	events := query.Events(g)
	switch len(events) {
	case 0:
		return 0
	case 1:
		return 40
	}

	score := 30
	dated := 0
	described := 0
	dates := make([]string, 0, len(events))
	for _, ev := range events {
		if ev.Event.Date != "" {
			dated++
			dates = append(dates, ev.Event.Date)
		}
		if len([]rune(ev.Event.Description)) > 10 {
			described++
		}
	}
	n := float64(len(events))
	score += int(math.Round(30.0 * float64(dated) / n))
	score += int(math.Round(20.0 * float64(described) / n))
	if dated > 0 && query.DatesNonDecreasing(dates) {
		score += 20
	}
	if score > 100 {
		score = 100
	}
	return score
}
