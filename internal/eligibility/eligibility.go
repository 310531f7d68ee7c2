// Package eligibility screens a claim summary for absolute and soft
// disqualifications before a case is opened. It is a pure function over a
// small record, deliberately independent of the case graph: screening
// happens before any graph exists.
package eligibility

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Verdict is the screening outcome.
type Verdict string

const (
	VerdictEligible    Verdict = "eligible"
	VerdictIneligible  Verdict = "ineligible"
	VerdictNeedsReview Verdict = "needs_review"
)

// Plaintiff types barred from the small-claims forum.
const (
	PlaintiffIndividual  = "individual"
	PlaintiffCorporation = "corporation"
	PlaintiffAssociation = "association"
)

// Claim types with special handling.
const (
	ClaimDefamation = "defamation"
)

// Blocker codes.
const (
	CodeBlockedPlaintiffType = "blocked_plaintiff_type"
	CodeAmountOverCeiling    = "amount_over_ceiling"
	CodeGovernmentDefendant  = "government_defendant"
	CodeClassAction          = "class_action"
	CodeStatuteOfLimitations = "statute_of_limitations"
	CodeRealEstateOwnership  = "real_estate_ownership"
	CodeDefamationClaim      = "defamation_claim"
)

// Alternative forums suggested when the claim cannot proceed here.
const (
	CourtMagistrate     = "magistrate_court"
	CourtDistrict       = "district_court"
	CourtAdministrative = "administrative_court"
)

// Input is the pre-case claim summary.
type Input struct {
	PlaintiffType       string  `json:"plaintiffType"`
	Amount              float64 `json:"amount"`
	ClaimType           string  `json:"claimType,omitempty"`
	GovernmentDefendant bool    `json:"governmentDefendant,omitempty"`
	ClassAction         bool    `json:"classAction,omitempty"`
	StatuteConcern      bool    `json:"statuteConcern,omitempty"`
	RealEstateOwnership bool    `json:"realEstateOwnership,omitempty"`
}

// Blocker is one disqualification that fired. Fixable blockers can be
// resolved by amending the claim; unfixable ones bar this forum entirely.
type Blocker struct {
	Code    string `json:"code"`
	Reason  string `json:"reason"`
	Fixable bool   `json:"fixable"`
}

// Result is the screening output contract.
type Result struct {
	Verdict          Verdict   `json:"verdict"`
	Blockers         []Blocker `json:"blockers"`
	VerdictText      string    `json:"verdictText"`
	AlternativeCourt string    `json:"alternativeCourt,omitempty"`
}

// Checker evaluates eligibility with an injected jurisdictional ceiling. The
// ceiling may be replaced at runtime when the configuration reloads.
type Checker struct {
	ceilingBits atomic.Uint64
}

// NewChecker creates a checker for the given claim-amount ceiling.
func NewChecker(ceiling float64) *Checker {
	c := &Checker{}
	c.SetCeiling(ceiling)
	return c
}

// Ceiling returns the configured jurisdictional maximum.
func (c *Checker) Ceiling() float64 {
	return math.Float64frombits(c.ceilingBits.Load())
}

// SetCeiling replaces the jurisdictional maximum. Safe to call concurrently
// with Check.
func (c *Checker) SetCeiling(ceiling float64) {
	c.ceilingBits.Store(math.Float64bits(ceiling))
}

// Check runs the fixed predicate sequence and derives the verdict:
// ineligible iff any unfixable blocker fired, needs_review iff only fixable
// blockers fired, eligible otherwise.
func (c *Checker) Check(in Input) Result {
	blockers := []Blocker{}

	if in.PlaintiffType == PlaintiffCorporation || in.PlaintiffType == PlaintiffAssociation {
		blockers = append(blockers, Blocker{
			Code:    CodeBlockedPlaintiffType,
			Reason:  "Only private individuals may sue in the small-claims forum.",
			Fixable: false,
		})
	}
	if ceiling := c.Ceiling(); in.Amount > ceiling {
		blockers = append(blockers, Blocker{
			Code:    CodeAmountOverCeiling,
			Reason:  fmt.Sprintf("The amount %.0f exceeds the small-claims ceiling of %.0f.", in.Amount, ceiling),
			Fixable: true,
		})
	}
	if in.GovernmentDefendant {
		blockers = append(blockers, Blocker{
			Code:    CodeGovernmentDefendant,
			Reason:  "Claims against a government body belong in the administrative court.",
			Fixable: false,
		})
	}
	if in.ClassAction {
		blockers = append(blockers, Blocker{
			Code:    CodeClassAction,
			Reason:  "Class actions cannot be heard in the small-claims forum.",
			Fixable: false,
		})
	}
	if in.StatuteConcern {
		blockers = append(blockers, Blocker{
			Code:    CodeStatuteOfLimitations,
			Reason:  "The events may fall outside the limitation period.",
			Fixable: false,
		})
	}
	if in.RealEstateOwnership {
		blockers = append(blockers, Blocker{
			Code:    CodeRealEstateOwnership,
			Reason:  "Real-estate ownership disputes are outside small-claims jurisdiction.",
			Fixable: false,
		})
	}
	if in.ClaimType == ClaimDefamation {
		blockers = append(blockers, Blocker{
			Code:    CodeDefamationClaim,
			Reason:  "Defamation claims need review before filing in this forum.",
			Fixable: true,
		})
	}

	verdict := VerdictEligible
	for _, b := range blockers {
		if !b.Fixable {
			verdict = VerdictIneligible
			break
		}
		verdict = VerdictNeedsReview
	}

	res := Result{
		Verdict:     verdict,
		Blockers:    blockers,
		VerdictText: verdictText(verdict, blockers),
	}
	if verdict == VerdictIneligible {
		res.AlternativeCourt = alternativeCourt(blockers)
	}
	return res
}

func verdictText(v Verdict, blockers []Blocker) string {
	switch v {
	case VerdictEligible:
		return "The claim can be filed in the small-claims forum."
	case VerdictNeedsReview:
		return fmt.Sprintf("The claim may be filed after resolving %d issue(s).", len(blockers))
	default:
		return "The claim cannot be filed in the small-claims forum."
	}
}

// alternativeCourt is a priority lookup: the most specific blocker that
// fired decides the suggestion.
func alternativeCourt(blockers []Blocker) string {
	fired := map[string]bool{}
	for _, b := range blockers {
		fired[b.Code] = true
	}
	switch {
	case fired[CodeClassAction]:
		return CourtDistrict
	case fired[CodeGovernmentDefendant]:
		return CourtAdministrative
	case fired[CodeRealEstateOwnership]:
		return CourtMagistrate
	case fired[CodeAmountOverCeiling]:
		return CourtMagistrate
	default:
		return CourtMagistrate
	}
}
