package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCeiling = 39900

func TestCheck(t *testing.T) {
	checker := NewChecker(testCeiling)

	tests := []struct {
		name         string
		in           Input
		wantVerdict  Verdict
		wantBlockers []string
		wantCourt    string
	}{
		{
			name:        "plain individual claim is eligible",
			in:          Input{PlaintiffType: PlaintiffIndividual, Amount: 10000},
			wantVerdict: VerdictEligible,
		},
		{
			name:         "amount over ceiling needs review",
			in:           Input{PlaintiffType: PlaintiffIndividual, Amount: 50000},
			wantVerdict:  VerdictNeedsReview,
			wantBlockers: []string{CodeAmountOverCeiling},
		},
		{
			name:         "corporation cannot sue here",
			in:           Input{PlaintiffType: PlaintiffCorporation, Amount: 10000},
			wantVerdict:  VerdictIneligible,
			wantBlockers: []string{CodeBlockedPlaintiffType},
			wantCourt:    CourtMagistrate,
		},
		{
			name:         "association cannot sue here",
			in:           Input{PlaintiffType: PlaintiffAssociation, Amount: 100},
			wantVerdict:  VerdictIneligible,
			wantBlockers: []string{CodeBlockedPlaintiffType},
			wantCourt:    CourtMagistrate,
		},
		{
			name:         "government defendant goes to the administrative court",
			in:           Input{PlaintiffType: PlaintiffIndividual, Amount: 1000, GovernmentDefendant: true},
			wantVerdict:  VerdictIneligible,
			wantBlockers: []string{CodeGovernmentDefendant},
			wantCourt:    CourtAdministrative,
		},
		{
			name: "class action outranks the government suggestion",
			in: Input{
				PlaintiffType: PlaintiffIndividual, Amount: 1000,
				GovernmentDefendant: true, ClassAction: true,
			},
			wantVerdict:  VerdictIneligible,
			wantBlockers: []string{CodeGovernmentDefendant, CodeClassAction},
			wantCourt:    CourtDistrict,
		},
		{
			name:         "statute of limitations concern",
			in:           Input{PlaintiffType: PlaintiffIndividual, Amount: 1000, StatuteConcern: true},
			wantVerdict:  VerdictIneligible,
			wantBlockers: []string{CodeStatuteOfLimitations},
			wantCourt:    CourtMagistrate,
		},
		{
			name:         "real estate ownership dispute",
			in:           Input{PlaintiffType: PlaintiffIndividual, Amount: 1000, RealEstateOwnership: true},
			wantVerdict:  VerdictIneligible,
			wantBlockers: []string{CodeRealEstateOwnership},
			wantCourt:    CourtMagistrate,
		},
		{
			name:         "defamation is fixable",
			in:           Input{PlaintiffType: PlaintiffIndividual, Amount: 1000, ClaimType: ClaimDefamation},
			wantVerdict:  VerdictNeedsReview,
			wantBlockers: []string{CodeDefamationClaim},
		},
		{
			name: "mixed fixable and unfixable is ineligible",
			in: Input{
				PlaintiffType: PlaintiffIndividual, Amount: 50000,
				RealEstateOwnership: true,
			},
			wantVerdict:  VerdictIneligible,
			wantBlockers: []string{CodeAmountOverCeiling, CodeRealEstateOwnership},
			wantCourt:    CourtMagistrate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := checker.Check(tt.in)

			assert.Equal(t, tt.wantVerdict, res.Verdict)
			assert.NotEmpty(t, res.VerdictText)
			assert.Equal(t, tt.wantCourt, res.AlternativeCourt)

			var gotCodes []string
			for _, b := range res.Blockers {
				gotCodes = append(gotCodes, b.Code)
			}
			if tt.wantBlockers == nil {
				assert.Empty(t, gotCodes)
			} else {
				assert.Equal(t, tt.wantBlockers, gotCodes)
			}
		})
	}
}

func TestCheckBlockerFixability(t *testing.T) {
	checker := NewChecker(testCeiling)
	res := checker.Check(Input{
		PlaintiffType:       PlaintiffCorporation,
		Amount:              50000,
		ClaimType:           ClaimDefamation,
		GovernmentDefendant: true,
		ClassAction:         true,
		StatuteConcern:      true,
		RealEstateOwnership: true,
	})

	require.Len(t, res.Blockers, 7)
	fixable := map[string]bool{}
	for _, b := range res.Blockers {
		fixable[b.Code] = b.Fixable
	}
	assert.True(t, fixable[CodeAmountOverCeiling])
	assert.True(t, fixable[CodeDefamationClaim])
	assert.False(t, fixable[CodeBlockedPlaintiffType])
	assert.False(t, fixable[CodeGovernmentDefendant])
	assert.False(t, fixable[CodeClassAction])
	assert.False(t, fixable[CodeStatuteOfLimitations])
	assert.False(t, fixable[CodeRealEstateOwnership])
}

func TestSetCeilingTakesEffect(t *testing.T) {
	checker := NewChecker(testCeiling)
	in := Input{PlaintiffType: PlaintiffIndividual, Amount: 30000}
	assert.Equal(t, VerdictEligible, checker.Check(in).Verdict)

	checker.SetCeiling(25000)
	assert.Equal(t, 25000.0, checker.Ceiling())
	res := checker.Check(in)
	assert.Equal(t, VerdictNeedsReview, res.Verdict)
	require.Len(t, res.Blockers, 1)
	assert.Equal(t, CodeAmountOverCeiling, res.Blockers[0].Code)
}

func TestCheckNoCourtSuggestionUnlessIneligible(t *testing.T) {
	checker := NewChecker(testCeiling)

	res := checker.Check(Input{PlaintiffType: PlaintiffIndividual, Amount: 50000})
	assert.Equal(t, VerdictNeedsReview, res.Verdict)
	assert.Empty(t, res.AlternativeCourt, "fixable-only blockers suggest no other forum")
}
