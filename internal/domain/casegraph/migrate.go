package casegraph

import (
	"fmt"

	"claimgraph-backend/internal/domain/claim"
)

// maxMigratedLabel caps event labels derived from legacy timeline text.
const maxMigratedLabel = 60

// BuildFromClaim derives a graph from a legacy flat case record. It runs once
// per case, when a case that predates the graph schema is first opened.
//
// The derivation is deterministic in structure: the same input cardinalities
// always produce the same node and edge counts. Generated ids and timestamps
// differ per invocation.
func BuildFromClaim(c claim.LegacyClaim) (*Graph, error) {
	g, err := NewGraph(c.ClaimID)
	if err != nil {
		return nil, err
	}

	var plaintiffID string
	if c.PlaintiffName != "" {
		n, err := g.AddNode(NewPartyNode(c.PlaintiffName, PartyAttrs{
			Role:      RolePlaintiff,
			FullName:  c.PlaintiffName,
			IDNumber:  c.PlaintiffID,
			Phone:     c.PlaintiffPhone,
			Address:   c.PlaintiffAddress,
			PartyType: c.PlaintiffType,
		}))
		if err != nil {
			return nil, err
		}
		plaintiffID = n.ID
	}

	var defendantIDs []string
	if len(c.Defendants) > 0 {
		for _, d := range c.Defendants {
			n, err := g.AddNode(NewPartyNode(d.Name, PartyAttrs{
				Role:      RoleDefendant,
				FullName:  d.Name,
				IDNumber:  d.ID,
				Address:   d.Address,
				PartyType: d.Type,
			}))
			if err != nil {
				return nil, err
			}
			defendantIDs = append(defendantIDs, n.ID)
		}
	} else if c.DefendantName != "" {
		n, err := g.AddNode(NewPartyNode(c.DefendantName, PartyAttrs{
			Role:     RoleDefendant,
			FullName: c.DefendantName,
		}))
		if err != nil {
			return nil, err
		}
		defendantIDs = append(defendantIDs, n.ID)
	}

	var eventIDs []string
	for _, entry := range c.Timeline {
		n, err := g.AddEvent(truncateLabel(entry.Text()), EventAttrs{
			Date:        entry.Date,
			Description: entry.Text(),
			Category:    EventOther,
		})
		if err != nil {
			return nil, err
		}
		eventIDs = append(eventIDs, n.ID)
	}

	var demandIDs []string
	if len(c.Demands) > 0 {
		for i, text := range c.Demands {
			attrs := DemandAttrs{Description: text}
			if i == 0 {
				// Best-effort guess: the flat record kept one total amount,
				// attributed to the first demand.
				attrs.Amount = c.Amount
			}
			attrs.LegalBasis = c.LegalBasis
			n, err := g.AddDemand(truncateLabel(text), attrs)
			if err != nil {
				return nil, err
			}
			demandIDs = append(demandIDs, n.ID)
		}
	} else if c.Amount > 0 {
		n, err := g.AddDemand(
			fmt.Sprintf("Compensation of %.0f", c.Amount),
			DemandAttrs{Amount: c.Amount, LegalBasis: c.LegalBasis},
		)
		if err != nil {
			return nil, err
		}
		demandIDs = append(demandIDs, n.ID)
	}

	for _, f := range c.Evidence {
		label := f.FileName
		if label == "" {
			label = f.Description
		}
		if _, err := g.AddNode(NewEvidenceNode(truncateLabel(label), EvidenceAttrs{
			FileID:      f.FileID,
			Kind:        EvidenceKind(f.Kind),
			Tag:         EvidenceTag(f.Tag),
			Description: f.Description,
		})); err != nil {
			return nil, err
		}
	}

	if c.HasPriorNotice {
		if _, err := g.AddNode(NewCommunicationNode("Prior demand notice", CommunicationAttrs{
			Direction:     DirectionOutgoing,
			Summary:       "Demand letter sent before filing",
			IsPriorNotice: true,
		})); err != nil {
			return nil, err
		}
	}

	for _, flag := range c.RiskFlags {
		if _, err := g.AddNode(NewRiskNode(truncateLabel(flag), RiskAttrs{
			Severity:    RiskMedium,
			Description: flag,
		})); err != nil {
			return nil, err
		}
	}

	// Every demand is filed by the plaintiff against the first defendant.
	for _, demandID := range demandIDs {
		if plaintiffID != "" {
			if _, err := g.AddEdge(NewEdge(EdgeFiledBy, demandID, plaintiffID)); err != nil {
				return nil, err
			}
		}
		if len(defendantIDs) > 0 {
			if _, err := g.AddEdge(NewEdge(EdgeFiledAgainst, demandID, defendantIDs[0])); err != nil {
				return nil, err
			}
		}
	}

	// Chain consecutive events in their original order.
	for i := 1; i < len(eventIDs); i++ {
		if _, err := g.AddEdge(NewEdge(EdgeFollowedBy, eventIDs[i-1], eventIDs[i])); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func truncateLabel(s string) string {
	if s == "" {
		return "untitled"
	}
	runes := []rune(s)
	if len(runes) <= maxMigratedLabel {
		return s
	}
	return string(runes[:maxMigratedLabel])
}
