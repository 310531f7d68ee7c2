// Package rules implements the filing-readiness rules engine: a fixed,
// ordered list of independent predicates over the case graph, each producing
// at most one finding. Rules never consult each other's output and never
// perform I/O; evaluation is total over any structurally valid graph.
package rules

import (
	"fmt"
	"math"
	"sync/atomic"

	"claimgraph-backend/internal/domain/casegraph"
	"claimgraph-backend/internal/query"
)

// Severity grades a finding. Only blockers prevent filing.
type Severity string

const (
	SeverityBlocker Severity = "blocker"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding codes. Stable identifiers: the next-action catalogue and the
// flat-record scoring adapter key off them.
const (
	CodeMissingPlaintiff        = "missing_plaintiff"
	CodeMissingPlaintiffID      = "missing_plaintiff_id"
	CodeMissingPlaintiffAddress = "missing_plaintiff_address"
	CodeMissingDefendant        = "missing_defendant"
	CodeMissingAmount           = "missing_amount"
	CodeAmountOverCeiling       = "amount_over_ceiling"
	CodeInsufficientNarrative   = "insufficient_narrative"
	CodeNoPriorNotice           = "no_prior_notice"
	CodeNoEvidence              = "no_evidence"
	CodeUncoveredEvents         = "uncovered_events"
	CodeUnlinkedEvidence        = "unlinked_evidence"
	CodeNoTimeline              = "no_timeline"
	CodeThinNarrative           = "thin_narrative"
	CodeContractNotEvidenced    = "contract_not_evidenced"
	CodeMissingLegalBasis       = "missing_legal_basis"
	CodeStrongCase              = "strong_case"
)

// Finding is one rule result surfaced to the user.
type Finding struct {
	Code        string   `json:"code"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	NodeIDs     []string `json:"nodeIds,omitempty"`
}

// Output is the full evaluation result consumed by the presentation layer.
type Output struct {
	Blockers    []Finding `json:"blockers"`
	Warnings    []Finding `json:"warnings"`
	Infos       []Finding `json:"infos"`
	NextActions []Action  `json:"nextActions"`
	CanFile     bool      `json:"canFile"`
}

// Engine evaluates the rule list against a graph. The jurisdictional ceiling
// is injected so tests and per-forum deployments can vary it, and may be
// replaced at runtime when the configuration reloads.
type Engine struct {
	ceilingBits atomic.Uint64
}

// NewEngine creates a rules engine with the given claim-amount ceiling.
func NewEngine(ceiling float64) *Engine {
	e := &Engine{}
	e.SetCeiling(ceiling)
	return e
}

// Ceiling returns the configured jurisdictional maximum.
func (e *Engine) Ceiling() float64 {
	return math.Float64frombits(e.ceilingBits.Load())
}

// SetCeiling replaces the jurisdictional maximum. Safe to call while other
// goroutines evaluate.
func (e *Engine) SetCeiling(ceiling float64) {
	e.ceilingBits.Store(math.Float64bits(ceiling))
}

// rule is one predicate: nil means the rule did not fire.
type rule func(e *Engine, g *casegraph.Graph) *Finding

// ruleSet is the fixed evaluation order. Blockers first, then warnings, then
// info; within a band the order matches the interview flow.
var ruleSet = []rule{
	missingPlaintiff,
	missingPlaintiffID,
	missingPlaintiffAddress,
	missingDefendant,
	missingAmount,
	amountOverCeiling,
	insufficientNarrative,
	noPriorNotice,
	noEvidence,
	uncoveredEvents,
	unlinkedEvidence,
	noTimeline,
	thinNarrative,
	contractNotEvidenced,
	missingLegalBasis,
	strongCase,
}

// Evaluate runs every rule and assembles the output. CanFile holds exactly
// when no blocker fired.
func (e *Engine) Evaluate(g *casegraph.Graph) Output {
	out := Output{
		Blockers: []Finding{},
		Warnings: []Finding{},
		Infos:    []Finding{},
	}
	for _, r := range ruleSet {
		f := r(e, g)
		if f == nil {
			continue
		}
		switch f.Severity {
		case SeverityBlocker:
			out.Blockers = append(out.Blockers, *f)
		case SeverityWarning:
			out.Warnings = append(out.Warnings, *f)
		case SeverityInfo:
			out.Infos = append(out.Infos, *f)
		}
	}
	out.CanFile = len(out.Blockers) == 0
	out.NextActions = nextActions(out)
	return out
}

func missingPlaintiff(_ *Engine, g *casegraph.Graph) *Finding {
	p := query.Plaintiff(g)
	if p != nil && p.Party.FullName != "" {
		return nil
	}
	return &Finding{
		Code:        CodeMissingPlaintiff,
		Severity:    SeverityBlocker,
		Title:       "No plaintiff",
		Description: "The claim has no plaintiff name. A statement of claim cannot be filed anonymously.",
		Icon:        "user",
	}
}

func missingPlaintiffID(_ *Engine, g *casegraph.Graph) *Finding {
	p := query.Plaintiff(g)
	if p == nil || p.Party.FullName == "" || p.Party.IDNumber != "" {
		return nil
	}
	return &Finding{
		Code:        CodeMissingPlaintiffID,
		Severity:    SeverityBlocker,
		Title:       "Plaintiff ID number missing",
		Description: "The court requires the plaintiff's identification number on the filing form.",
		Icon:        "id-card",
		NodeIDs:     []string{p.ID},
	}
}

func missingPlaintiffAddress(_ *Engine, g *casegraph.Graph) *Finding {
	p := query.Plaintiff(g)
	if p == nil || p.Party.FullName == "" || p.Party.Address != "" {
		return nil
	}
	return &Finding{
		Code:        CodeMissingPlaintiffAddress,
		Severity:    SeverityBlocker,
		Title:       "Plaintiff address missing",
		Description: "The court requires the plaintiff's address for service of documents.",
		Icon:        "map-pin",
		NodeIDs:     []string{p.ID},
	}
}

func missingDefendant(_ *Engine, g *casegraph.Graph) *Finding {
	if len(query.Defendants(g)) > 0 {
		return nil
	}
	return &Finding{
		Code:        CodeMissingDefendant,
		Severity:    SeverityBlocker,
		Title:       "No defendant",
		Description: "At least one defendant must be named to file the claim.",
		Icon:        "users",
	}
}

func missingAmount(_ *Engine, g *casegraph.Graph) *Finding {
	if totalClaimed(g) > 0 {
		return nil
	}
	return &Finding{
		Code:        CodeMissingAmount,
		Severity:    SeverityBlocker,
		Title:       "No amount",
		Description: "No demand carries a positive claim amount.",
		Icon:        "banknote",
	}
}

func amountOverCeiling(e *Engine, g *casegraph.Graph) *Finding {
	total := totalClaimed(g)
	ceiling := e.Ceiling()
	if total <= ceiling {
		return nil
	}
	return &Finding{
		Code:     CodeAmountOverCeiling,
		Severity: SeverityBlocker,
		Title:    "Amount exceeds the small-claims ceiling",
		Description: fmt.Sprintf(
			"The total claimed amount %.0f exceeds the jurisdictional maximum of %.0f. Reduce the claim or file in a higher instance.",
			total, ceiling),
		Icon: "scale",
	}
}

func insufficientNarrative(_ *Engine, g *casegraph.Graph) *Finding {
	events := query.Events(g)
	demands := query.Demands(g)
	if len(events) >= 2 {
		return nil
	}
	if len(events) >= 1 && len(demands) >= 1 {
		return nil
	}
	return &Finding{
		Code:        CodeInsufficientNarrative,
		Severity:    SeverityBlocker,
		Title:       "Story too thin to file",
		Description: "Describe at least two events, or one event together with a demand, so the claim states what happened and what is asked for.",
		Icon:        "file-text",
	}
}

func noPriorNotice(_ *Engine, g *casegraph.Graph) *Finding {
	if query.HasPriorNotice(g) {
		return nil
	}
	return &Finding{
		Code:        CodeNoPriorNotice,
		Severity:    SeverityWarning,
		Title:       "No prior demand notice",
		Description: "Courts expect the defendant to have been given a chance to settle. Send a demand letter before filing.",
		Icon:        "mail",
	}
}

func noEvidence(_ *Engine, g *casegraph.Graph) *Finding {
	if len(query.Evidence(g)) > 0 {
		return nil
	}
	return &Finding{
		Code:        CodeNoEvidence,
		Severity:    SeverityWarning,
		Title:       "No evidence",
		Description: "The case has no attached evidence. Receipts, photos and correspondence substantially improve the odds.",
		Icon:        "paperclip",
	}
}

func uncoveredEvents(_ *Engine, g *casegraph.Graph) *Finding {
	if len(query.Evidence(g)) == 0 {
		return nil // noEvidence already covers the empty case
	}
	uncovered := query.UncoveredEvents(g)
	if len(uncovered) == 0 {
		return nil
	}
	return &Finding{
		Code:        CodeUncoveredEvents,
		Severity:    SeverityWarning,
		Title:       "Events without supporting evidence",
		Description: fmt.Sprintf("%d event(s) in the timeline have no evidence linked to them.", len(uncovered)),
		Icon:        "link",
		NodeIDs:     nodeIDs(uncovered),
	}
}

func unlinkedEvidence(_ *Engine, g *casegraph.Graph) *Finding {
	unlinked := query.UnlinkedEvidence(g)
	if len(unlinked) == 0 {
		return nil
	}
	return &Finding{
		Code:        CodeUnlinkedEvidence,
		Severity:    SeverityWarning,
		Title:       "Evidence not linked to the story",
		Description: fmt.Sprintf("%d piece(s) of evidence are not linked to any event or demand.", len(unlinked)),
		Icon:        "unlink",
		NodeIDs:     nodeIDs(unlinked),
	}
}

func noTimeline(_ *Engine, g *casegraph.Graph) *Finding {
	if len(query.Events(g)) > 0 {
		return nil
	}
	return &Finding{
		Code:        CodeNoTimeline,
		Severity:    SeverityWarning,
		Title:       "No timeline",
		Description: "The claim has no narrated events yet.",
		Icon:        "clock",
	}
}

func thinNarrative(_ *Engine, g *casegraph.Graph) *Finding {
	events := query.Events(g)
	if len(events) == 0 {
		return nil // noTimeline already covers the empty case
	}
	total := 0
	for _, ev := range events {
		total += len([]rune(ev.Event.Description))
	}
	if total >= 100 {
		return nil
	}
	return &Finding{
		Code:        CodeThinNarrative,
		Severity:    SeverityWarning,
		Title:       "Narrative is very short",
		Description: "The event descriptions add up to less than a paragraph. Judges need enough detail to follow what happened.",
		Icon:        "file-text",
	}
}

// contractKeywords mark a contract-flavored narrative.
var contractKeywords = []string{"contract", "agreement", "lease", "warranty", "signed"}

func contractNotEvidenced(_ *Engine, g *casegraph.Graph) *Finding {
	if !mentionsContract(g) {
		return nil
	}
	for _, ev := range query.Evidence(g) {
		if ev.Evidence.Tag == casegraph.TagContract {
			return nil
		}
	}
	return &Finding{
		Code:        CodeContractNotEvidenced,
		Severity:    SeverityWarning,
		Title:       "Contract mentioned but not attached",
		Description: "The story refers to an agreement, but no written agreement is attached as evidence.",
		Icon:        "file-signature",
	}
}

func missingLegalBasis(_ *Engine, g *casegraph.Graph) *Finding {
	var lacking []casegraph.Node
	for _, d := range query.Demands(g) {
		if d.Demand.LegalBasis == "" {
			lacking = append(lacking, d)
		}
	}
	if len(lacking) == 0 {
		return nil
	}
	return &Finding{
		Code:        CodeMissingLegalBasis,
		Severity:    SeverityWarning,
		Title:       "Demands without a legal basis",
		Description: fmt.Sprintf("%d demand(s) cite no statutory ground.", len(lacking)),
		Icon:        "scale",
		NodeIDs:     nodeIDs(lacking),
	}
}

func strongCase(_ *Engine, g *casegraph.Graph) *Finding {
	if len(query.Evidence(g)) < 3 || len(query.Events(g)) < 3 {
		return nil
	}
	demands := query.Demands(g)
	if len(demands) < 1 || len(query.UncoveredDemands(g)) > 0 {
		return nil
	}
	if !query.HasPriorNotice(g) {
		return nil
	}
	return &Finding{
		Code:        CodeStrongCase,
		Severity:    SeverityInfo,
		Title:       "Strong case",
		Description: "Rich timeline, every demand backed by evidence, and prior notice given. This claim is well positioned.",
		Icon:        "sparkles",
	}
}

func totalClaimed(g *casegraph.Graph) float64 {
	var total float64
	for _, d := range query.Demands(g) {
		total += d.Demand.Amount
	}
	return total
}

func mentionsContract(g *casegraph.Graph) bool {
	texts := make([]string, 0, len(g.Nodes))
	for _, ev := range query.Events(g) {
		texts = append(texts, ev.Event.Description)
	}
	for _, d := range query.Demands(g) {
		texts = append(texts, d.Demand.Description)
	}
	for _, t := range texts {
		if containsAnyFold(t, contractKeywords) {
			return true
		}
	}
	return false
}

func nodeIDs(nodes []casegraph.Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
