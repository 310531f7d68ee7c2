package query

import (
	"testing"

	"claimgraph-backend/internal/domain/casegraph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGraph(t *testing.T) *casegraph.Graph {
	t.Helper()
	g, err := casegraph.NewGraph("claim-1")
	require.NoError(t, err)
	return g
}

func addEvent(t *testing.T, g *casegraph.Graph, label, date string) *casegraph.Node {
	t.Helper()
	n, err := g.AddEvent(label, casegraph.EventAttrs{Date: date, Description: label})
	require.NoError(t, err)
	return n
}

func addEvidence(t *testing.T, g *casegraph.Graph, label string) *casegraph.Node {
	t.Helper()
	n, err := g.AddNode(casegraph.NewEvidenceNode(label, casegraph.EvidenceAttrs{}))
	require.NoError(t, err)
	return n
}

func TestPlaintiffAndDefendants(t *testing.T) {
	g := newGraph(t)
	assert.Nil(t, Plaintiff(g))
	assert.Empty(t, Defendants(g))

	_, err := g.AddNode(casegraph.NewPartyNode("Dana Levi", casegraph.PartyAttrs{
		Role: casegraph.RolePlaintiff, FullName: "Dana Levi",
	}))
	require.NoError(t, err)
	_, err = g.AddNode(casegraph.NewPartyNode("Movers Ltd", casegraph.PartyAttrs{
		Role: casegraph.RoleDefendant, FullName: "Movers Ltd",
	}))
	require.NoError(t, err)

	require.NotNil(t, Plaintiff(g))
	assert.Equal(t, "Dana Levi", Plaintiff(g).Party.FullName)
	assert.Len(t, Defendants(g), 1)
}

func TestEventsChronological(t *testing.T) {
	g := newGraph(t)
	undated := addEvent(t, g, "undated", "")
	late := addEvent(t, g, "late", "2024-03-01")
	early := addEvent(t, g, "early", "15/01/2024") // non-ISO but parseable
	mid := addEvent(t, g, "mid", "2024-02-20")

	sorted := EventsChronological(g)
	require.Len(t, sorted, 4)
	assert.Equal(t, early.ID, sorted[0].ID)
	assert.Equal(t, mid.ID, sorted[1].ID)
	assert.Equal(t, late.ID, sorted[2].ID)
	assert.Equal(t, undated.ID, sorted[3].ID, "undated events sort last")

	// Input order untouched.
	assert.Equal(t, undated.ID, Events(g)[0].ID)
}

func TestEventsChronologicalLexicographicFallback(t *testing.T) {
	g := newGraph(t)
	b := addEvent(t, g, "b", "sometime in spring")
	a := addEvent(t, g, "a", "around winter")

	sorted := EventsChronological(g)
	assert.Equal(t, a.ID, sorted[0].ID, "unparseable dates compare lexicographically")
	assert.Equal(t, b.ID, sorted[1].ID)
}

func TestCoveragePartition(t *testing.T) {
	g := newGraph(t)
	e1 := addEvent(t, g, "delivery failed", "2024-01-01")
	e2 := addEvent(t, g, "table broken", "2024-01-02")
	d, err := g.AddDemand("refund", casegraph.DemandAttrs{Amount: 500})
	require.NoError(t, err)
	ev1 := addEvidence(t, g, "receipt")
	ev2 := addEvidence(t, g, "photo")

	_, err = g.LinkEvidenceToEvent(ev1.ID, e1.ID)
	require.NoError(t, err)
	_, err = g.LinkEvidenceToDemand(ev1.ID, d.ID)
	require.NoError(t, err)

	covered := CoveredEvents(g)
	uncovered := UncoveredEvents(g)
	require.Len(t, covered, 1)
	require.Len(t, uncovered, 1)
	assert.Equal(t, e1.ID, covered[0].ID)
	assert.Equal(t, e2.ID, uncovered[0].ID)

	assert.Len(t, CoveredDemands(g), 1)
	assert.Empty(t, UncoveredDemands(g))

	unlinked := UnlinkedEvidence(g)
	require.Len(t, unlinked, 1)
	assert.Equal(t, ev2.ID, unlinked[0].ID)
}

func TestNeighbors(t *testing.T) {
	g := newGraph(t)
	e1 := addEvent(t, g, "a", "")
	e2 := addEvent(t, g, "b", "")
	e3 := addEvent(t, g, "c", "")

	_, err := g.AddEdge(casegraph.NewEdge(casegraph.EdgeFollowedBy, e1.ID, e2.ID))
	require.NoError(t, err)
	_, err = g.AddEdge(casegraph.NewEdge(casegraph.EdgeCausedBy, e2.ID, e1.ID))
	require.NoError(t, err)
	_, err = g.AddEdge(casegraph.NewEdge(casegraph.EdgeRelatesTo, e2.ID, e3.ID))
	require.NoError(t, err)

	t.Run("both directions, deduplicated", func(t *testing.T) {
		got := Neighbors(g, e2.ID)
		assert.Len(t, got, 2)
	})

	t.Run("restricted to edge kinds", func(t *testing.T) {
		got := Neighbors(g, e2.ID, casegraph.EdgeRelatesTo)
		require.Len(t, got, 1)
		assert.Equal(t, e3.ID, got[0].ID)
	})
}

func TestEventChain(t *testing.T) {
	g := newGraph(t)
	e1 := addEvent(t, g, "a", "")
	e2 := addEvent(t, g, "b", "")
	e3 := addEvent(t, g, "c", "")
	ev := addEvidence(t, g, "receipt")

	_, err := g.AddEdge(casegraph.NewEdge(casegraph.EdgeFollowedBy, e1.ID, e2.ID))
	require.NoError(t, err)
	_, err = g.AddEdge(casegraph.NewEdge(casegraph.EdgeCausedBy, e2.ID, e3.ID))
	require.NoError(t, err)
	// Cycle back to the start.
	_, err = g.AddEdge(casegraph.NewEdge(casegraph.EdgeFollowedBy, e3.ID, e1.ID))
	require.NoError(t, err)
	// Non-causal edge, must not be followed.
	_, err = g.AddEdge(casegraph.NewEdge(casegraph.EdgeSupports, ev.ID, e1.ID))
	require.NoError(t, err)

	t.Run("terminates on cycles and visits each node once", func(t *testing.T) {
		chain := EventChain(g, e1.ID)
		require.Len(t, chain, 3)
		assert.Equal(t, e1.ID, chain[0].ID)
		assert.Equal(t, e2.ID, chain[1].ID)
		assert.Equal(t, e3.ID, chain[2].ID)
	})

	t.Run("non-event start yields nil", func(t *testing.T) {
		assert.Nil(t, EventChain(g, ev.ID))
		assert.Nil(t, EventChain(g, "missing"))
	})
}

func TestDatesNonDecreasing(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  bool
	}{
		{"empty", nil, true},
		{"ordered", []string{"2024-01-01", "2024-02-01"}, true},
		{"mixed formats ordered", []string{"15/01/2024", "2024-02-01"}, true},
		{"out of order", []string{"2024-02-01", "2024-01-01"}, false},
		{"unparseable entries skipped", []string{"2024-01-01", "soon after", "2024-03-01"}, true},
		{"all unparseable", []string{"spring", "winter"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DatesNonDecreasing(tt.dates))
		})
	}
}

func TestHealth(t *testing.T) {
	t.Run("empty graph scores zero", func(t *testing.T) {
		r := Health(newGraph(t))
		assert.Equal(t, 0, r.Score)
	})

	t.Run("assembled case", func(t *testing.T) {
		g := newGraph(t)
		_, err := g.AddNode(casegraph.NewPartyNode("Dana Levi", casegraph.PartyAttrs{
			Role: casegraph.RolePlaintiff, FullName: "Dana Levi",
		}))
		require.NoError(t, err)
		_, err = g.AddNode(casegraph.NewPartyNode("Movers Ltd", casegraph.PartyAttrs{
			Role: casegraph.RoleDefendant, FullName: "Movers Ltd",
		}))
		require.NoError(t, err)
		e1 := addEvent(t, g, "delivery failed", "2024-01-01")
		addEvent(t, g, "table broken", "2024-01-02")
		_, err = g.AddDemand("refund", casegraph.DemandAttrs{Amount: 500, LegalBasis: "Contract Law s.2"})
		require.NoError(t, err)
		ev := addEvidence(t, g, "receipt")
		_, err = g.LinkEvidenceToEvent(ev.ID, e1.ID)
		require.NoError(t, err)
		_, err = g.AddNode(casegraph.NewCommunicationNode("demand letter", casegraph.CommunicationAttrs{
			IsPriorNotice: true,
		}))
		require.NoError(t, err)

		r := Health(g)
		assert.Equal(t, 20, r.Parties)
		assert.Equal(t, 10, r.Timeline)
		assert.Equal(t, 15, r.Demands)
		// 1 evidence (5) + coverage 1 of 3 targets (3).
		assert.Equal(t, 8, r.Evidence)
		assert.Equal(t, 10, r.Procedural)
		assert.Equal(t, 15, r.LegalBasis)
		assert.Equal(t, 78, r.Score)
	})
}

func TestHasPriorNotice(t *testing.T) {
	g := newGraph(t)
	assert.False(t, HasPriorNotice(g))

	_, err := g.AddNode(casegraph.NewCommunicationNode("call", casegraph.CommunicationAttrs{}))
	require.NoError(t, err)
	assert.False(t, HasPriorNotice(g))

	_, err = g.AddNode(casegraph.NewCommunicationNode("demand letter", casegraph.CommunicationAttrs{
		IsPriorNotice: true,
	}))
	require.NoError(t, err)
	assert.True(t, HasPriorNotice(g))
}
