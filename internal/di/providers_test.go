package di

import (
	"testing"

	"claimgraph-backend/internal/config"
	"claimgraph-backend/internal/eligibility"
	"claimgraph-backend/internal/rules"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestApplyTunablesUpdatesEngines(t *testing.T) {
	engine := rules.NewEngine(config.DefaultCeiling)
	checker := eligibility.NewChecker(config.DefaultCeiling)

	applyTunables(&config.Config{CeilingAmount: 25000}, engine, checker, zap.NewNop())

	assert.Equal(t, 25000.0, engine.Ceiling())
	assert.Equal(t, 25000.0, checker.Ceiling())

	res := checker.Check(eligibility.Input{
		PlaintiffType: eligibility.PlaintiffIndividual,
		Amount:        30000,
	})
	assert.Equal(t, eligibility.VerdictNeedsReview, res.Verdict)
}
