package scoring

import (
	"testing"

	"claimgraph-backend/internal/domain/casegraph"
	"claimgraph-backend/internal/domain/claim"
	"claimgraph-backend/internal/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCeiling = 39900

func newTestScorer() *Scorer {
	return NewScorer(rules.NewEngine(testCeiling))
}

func emptyGraph(t *testing.T) *casegraph.Graph {
	t.Helper()
	g, err := casegraph.NewGraph("claim-1")
	require.NoError(t, err)
	return g
}

// assembledGraph builds a well-prepared case: complete parties, three dated
// and described events, one substantiated demand, three linked evidence
// pieces and a prior demand notice.
func assembledGraph(t *testing.T) *casegraph.Graph {
	t.Helper()
	g := emptyGraph(t)

	_, err := g.AddNode(casegraph.NewPartyNode("Dana Levi", casegraph.PartyAttrs{
		Role:     casegraph.RolePlaintiff,
		FullName: "Dana Levi",
		IDNumber: "012345678",
		Phone:    "050-0000000",
		Address:  "1 Main St, Haifa",
	}))
	require.NoError(t, err)
	_, err = g.AddNode(casegraph.NewPartyNode("Movers Ltd", casegraph.PartyAttrs{
		Role:     casegraph.RoleDefendant,
		FullName: "Movers Ltd",
		Address:  "2 Dock Rd, Haifa",
	}))
	require.NoError(t, err)

	events := []struct{ label, date, text string }{
		{"booking", "2024-01-10", "Booked the move and paid a deposit of 800 over the phone"},
		{"late arrival", "2024-02-01", "The movers arrived four hours late without advance warning"},
		{"damage", "2024-02-01", "The dining table was dropped on the stairs and its top cracked"},
	}
	var eventIDs []string
	for _, e := range events {
		n, err := g.AddEvent(e.label, casegraph.EventAttrs{Date: e.date, Description: e.text})
		require.NoError(t, err)
		eventIDs = append(eventIDs, n.ID)
	}

	demand, err := g.AddDemand("refund and repair", casegraph.DemandAttrs{
		Amount:      5000,
		Description: "Refund of the fee plus the repair cost",
		LegalBasis:  "Contract Law s.2",
	})
	require.NoError(t, err)

	var evidenceIDs []string
	for _, label := range []string{"receipt", "photo of the table", "late-arrival texts"} {
		n, err := g.AddNode(casegraph.NewEvidenceNode(label, casegraph.EvidenceAttrs{}))
		require.NoError(t, err)
		evidenceIDs = append(evidenceIDs, n.ID)
	}
	for i, evID := range evidenceIDs {
		_, err := g.LinkEvidenceToEvent(evID, eventIDs[i])
		require.NoError(t, err)
	}
	_, err = g.LinkEvidenceToDemand(evidenceIDs[0], demand.ID)
	require.NoError(t, err)

	_, err = g.AddNode(casegraph.NewCommunicationNode("demand letter", casegraph.CommunicationAttrs{
		IsPriorNotice: true,
	}))
	require.NoError(t, err)

	return g
}

func TestScoreGraphEmpty(t *testing.T) {
	res := newTestScorer().ScoreGraph(emptyGraph(t))

	assert.Equal(t, 0, res.ReadinessScore)
	assert.Equal(t, 0, res.EvidenceCoverage)
	assert.Equal(t, 0, res.TimelineConsistency)
	// 4 blockers and 3 warnings fire on an empty graph.
	assert.Equal(t, 25, res.LegalCompleteness)
	assert.Equal(t, StrengthWeak, res.StrengthScore)
	assert.Equal(t, Breakdown{}, res.Breakdown)
}

func TestScoreGraphAssembled(t *testing.T) {
	res := newTestScorer().ScoreGraph(assembledGraph(t))

	assert.Equal(t, Breakdown{
		Plaintiff:  20,
		Defendant:  10,
		Claim:      12,
		Narrative:  12,
		Evidence:   20,
		Procedural: 7,
		LegalBasis: 10,
	}, res.Breakdown)
	assert.Equal(t, 91, res.ReadinessScore)
	assert.Equal(t, 100, res.EvidenceCoverage)
	assert.Equal(t, 100, res.TimelineConsistency)
	assert.Equal(t, 100, res.LegalCompleteness)
	assert.Equal(t, StrengthStrong, res.StrengthScore)
}

func TestEvidenceCoverage(t *testing.T) {
	t.Run("no evidence scores zero", func(t *testing.T) {
		g := emptyGraph(t)
		_, err := g.AddEvent("delivery failed", casegraph.EventAttrs{})
		require.NoError(t, err)
		assert.Equal(t, 0, evidenceCoverage(g))
	})

	t.Run("evidence with nothing to link scores fifty", func(t *testing.T) {
		g := emptyGraph(t)
		_, err := g.AddNode(casegraph.NewEvidenceNode("receipt", casegraph.EvidenceAttrs{}))
		require.NoError(t, err)
		assert.Equal(t, 50, evidenceCoverage(g))
	})

	t.Run("partial coverage is a rounded percentage", func(t *testing.T) {
		g := emptyGraph(t)
		e1, err := g.AddEvent("a", casegraph.EventAttrs{})
		require.NoError(t, err)
		_, err = g.AddEvent("b", casegraph.EventAttrs{})
		require.NoError(t, err)
		ev, err := g.AddNode(casegraph.NewEvidenceNode("receipt", casegraph.EvidenceAttrs{}))
		require.NoError(t, err)
		_, err = g.LinkEvidenceToEvent(ev.ID, e1.ID)
		require.NoError(t, err)
		assert.Equal(t, 50, evidenceCoverage(g))
	})
}

func TestTimelineConsistency(t *testing.T) {
	t.Run("no events", func(t *testing.T) {
		assert.Equal(t, 0, timelineConsistency(emptyGraph(t)))
	})

	t.Run("single event", func(t *testing.T) {
		g := emptyGraph(t)
		_, err := g.AddEvent("delivery failed", casegraph.EventAttrs{})
		require.NoError(t, err)
		assert.Equal(t, 40, timelineConsistency(g))
	})

	t.Run("bare multi-event timeline gets the base only", func(t *testing.T) {
		g := emptyGraph(t)
		_, err := g.AddEvent("a", casegraph.EventAttrs{Description: "short"})
		require.NoError(t, err)
		_, err = g.AddEvent("b", casegraph.EventAttrs{Description: "short"})
		require.NoError(t, err)
		assert.Equal(t, 30, timelineConsistency(g))
	})

	t.Run("out-of-order dates forfeit the ordering bonus", func(t *testing.T) {
		g := emptyGraph(t)
		_, err := g.AddEvent("later", casegraph.EventAttrs{
			Date: "2024-03-01", Description: "a fairly described event",
		})
		require.NoError(t, err)
		_, err = g.AddEvent("earlier", casegraph.EventAttrs{
			Date: "2024-01-01", Description: "another described event",
		})
		require.NoError(t, err)
		// 30 base + 30 all dated + 20 all described, no ordering bonus.
		assert.Equal(t, 80, timelineConsistency(g))
	})
}

func TestCalculateConfidence(t *testing.T) {
	scorer := newTestScorer()

	t.Run("complete record scores full marks", func(t *testing.T) {
		res, err := scorer.CalculateConfidence(claim.LegacyClaim{
			ClaimID:          "claim-legacy",
			PlaintiffName:    "Dana Levi",
			PlaintiffID:      "012345678",
			PlaintiffPhone:   "050-0000000",
			PlaintiffAddress: "1 Main St",
			Defendants: []claim.Defendant{
				{Name: "Movers Ltd", Address: "2 Dock Rd"},
			},
			Amount:     5000,
			Demands:    []string{"Refund of the fee", "Repair of the table"},
			LegalBasis: "Contract Law s.2",
			Timeline: []claim.TimelineEntry{
				{Date: "2024-01-10", Description: "Signed the agreement"},
				{Date: "2024-02-01", Description: "Movers arrived late"},
				{Date: "2024-02-01", Description: "Table broken on the stairs"},
			},
			Evidence: []claim.EvidenceFile{
				{FileName: "contract.pdf", Tag: "contract"},
				{FileName: "receipt.pdf", Tag: "receipt"},
				{FileName: "table.jpg"},
			},
			HasPriorNotice: true,
			HasSignature:   true,
		})
		require.NoError(t, err)

		assert.Equal(t, ConfidenceBreakdown{
			RequiredFields: 40,
			Amount:         10,
			Demands:        10,
			Timeline:       10,
			Evidence:       15,
			Signature:      15,
		}, res.Breakdown)
		assert.Equal(t, 100, res.Confidence)
	})

	t.Run("empty record defaults the claim id and scores zero", func(t *testing.T) {
		res, err := scorer.CalculateConfidence(claim.LegacyClaim{})
		require.NoError(t, err)

		assert.Equal(t, 0, res.Confidence)
		require.NotEmpty(t, res.MissingFields)
		assert.Equal(t, PriorityHigh, res.MissingFields[0].Priority)

		fields := map[string]bool{}
		for _, mf := range res.MissingFields {
			fields[mf.Field] = true
		}
		assert.True(t, fields["plaintiffName"])
		assert.True(t, fields["defendantName"])
		assert.True(t, fields["amount"])
	})

	t.Run("risk flags carry over and the ceiling is flagged", func(t *testing.T) {
		res, err := scorer.CalculateConfidence(claim.LegacyClaim{
			ClaimID:       "c",
			PlaintiffName: "Dana Levi",
			DefendantName: "Movers Ltd",
			Amount:        testCeiling + 100,
			RiskFlags:     []string{"No written damage report"},
		})
		require.NoError(t, err)

		require.Len(t, res.RiskFlags, 2)
		assert.Equal(t, "No written damage report", res.RiskFlags[0])
		assert.Contains(t, res.RiskFlags[1], "exceeds the jurisdictional maximum")
	})

	t.Run("suggestions are bucketed by action priority", func(t *testing.T) {
		res, err := scorer.CalculateConfidence(claim.LegacyClaim{ClaimID: "c"})
		require.NoError(t, err)

		require.NotEmpty(t, res.Suggestions)
		for i := 1; i < len(res.Suggestions); i++ {
			assert.LessOrEqual(t,
				priorityRank[res.Suggestions[i-1].Priority],
				priorityRank[res.Suggestions[i].Priority],
			)
		}
	})
}
