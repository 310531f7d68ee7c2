package rules

import (
	"sort"
	"strings"
)

// Action is one suggested remediation step, priority-ordered (lower first).
type Action struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    int    `json:"priority"`
}

// Terminal actions appended once no blocker remains.
const (
	ActionGenerateFiling = "generate_filing"
	ActionMockHearing    = "mock_hearing"
)

// actionCatalogue maps finding codes to their remediation. Several findings
// can map to the same action; the output is deduplicated by action code.
var actionCatalogue = map[string]Action{
	CodeMissingPlaintiff:        {Code: "complete_plaintiff", Title: "Complete plaintiff details", Description: "Fill in name, ID number, phone and address.", Priority: 1},
	CodeMissingPlaintiffID:      {Code: "complete_plaintiff", Title: "Complete plaintiff details", Description: "Fill in name, ID number, phone and address.", Priority: 1},
	CodeMissingPlaintiffAddress: {Code: "complete_plaintiff", Title: "Complete plaintiff details", Description: "Fill in name, ID number, phone and address.", Priority: 1},
	CodeMissingDefendant:        {Code: "add_defendant", Title: "Name the defendant", Description: "Add the person or business the claim is against.", Priority: 2},
	CodeMissingAmount:           {Code: "set_amount", Title: "Set the claim amount", Description: "State how much is being demanded.", Priority: 3},
	CodeAmountOverCeiling:       {Code: "adjust_amount", Title: "Bring the amount under the ceiling", Description: "Reduce the claim or choose a higher court.", Priority: 3},
	CodeInsufficientNarrative:   {Code: "add_events", Title: "Tell more of the story", Description: "Add the events that led to the dispute, in order.", Priority: 4},
	CodeNoTimeline:              {Code: "add_events", Title: "Tell more of the story", Description: "Add the events that led to the dispute, in order.", Priority: 4},
	CodeThinNarrative:           {Code: "expand_events", Title: "Expand the event descriptions", Priority: 5},
	CodeNoEvidence:              {Code: "add_evidence", Title: "Add evidence", Description: "Upload receipts, photos or correspondence.", Priority: 6},
	CodeUncoveredEvents:         {Code: "link_evidence", Title: "Link evidence to events", Priority: 7},
	CodeUnlinkedEvidence:        {Code: "link_evidence", Title: "Link evidence to events", Priority: 7},
	CodeContractNotEvidenced:    {Code: "attach_agreement", Title: "Attach the written agreement", Priority: 8},
	CodeNoPriorNotice:           {Code: "send_prior_notice", Title: "Send a demand letter first", Priority: 9},
	CodeMissingLegalBasis:       {Code: "add_legal_basis", Title: "Cite a legal basis for each demand", Priority: 10},
}

// nextActions maps the fired findings to the fixed remediation catalogue.
// When no blockers remain, the terminal actions are appended. The result is
// always sorted by ascending priority.
func nextActions(out Output) []Action {
	seen := map[string]bool{}
	actions := []Action{}

	add := func(a Action) {
		if seen[a.Code] {
			return
		}
		seen[a.Code] = true
		actions = append(actions, a)
	}

	for _, f := range out.Blockers {
		if a, ok := actionCatalogue[f.Code]; ok {
			add(a)
		}
	}
	for _, f := range out.Warnings {
		if a, ok := actionCatalogue[f.Code]; ok {
			add(a)
		}
	}

	if len(out.Blockers) == 0 {
		add(Action{Code: ActionGenerateFiling, Title: "Generate the statement of claim", Priority: 90})
		add(Action{Code: ActionMockHearing, Title: "Run a mock hearing", Priority: 95})
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Priority < actions[j].Priority
	})
	return actions
}

func containsAnyFold(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
