package memory

import (
	"context"
	"testing"

	"claimgraph-backend/internal/domain/casegraph"
	"claimgraph-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndFind(t *testing.T) {
	repo := New()
	ctx := context.Background()

	_, err := repo.FindByClaimID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrGraphNotFound)

	g, err := casegraph.NewGraph("claim-1")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, g))
	assert.Equal(t, 1, g.DocVersion)

	loaded, err := repo.FindByClaimID(ctx, "claim-1")
	require.NoError(t, err)
	assert.Equal(t, g.ClaimID, loaded.ClaimID)
	assert.Equal(t, 1, loaded.DocVersion)
}

func TestSaveVersionCheck(t *testing.T) {
	repo := New()
	ctx := context.Background()

	t.Run("new document must start at version zero", func(t *testing.T) {
		g, err := casegraph.NewGraph("claim-1")
		require.NoError(t, err)
		g.DocVersion = 5
		assert.ErrorIs(t, repo.Save(ctx, g), repository.ErrVersionConflict)
	})

	t.Run("stale writer is rejected", func(t *testing.T) {
		g, err := casegraph.NewGraph("claim-2")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, g))

		first, err := repo.FindByClaimID(ctx, "claim-2")
		require.NoError(t, err)
		second, err := repo.FindByClaimID(ctx, "claim-2")
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, first))
		assert.ErrorIs(t, repo.Save(ctx, second), repository.ErrVersionConflict)
	})
}

func TestFindReturnsIndependentCopies(t *testing.T) {
	repo := New()
	ctx := context.Background()

	g, err := casegraph.NewGraph("claim-1")
	require.NoError(t, err)
	_, err = g.AddEvent("delivery failed", casegraph.EventAttrs{})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, g))

	a, err := repo.FindByClaimID(ctx, "claim-1")
	require.NoError(t, err)
	a.Nodes[0].Label = "mutated"

	b, err := repo.FindByClaimID(ctx, "claim-1")
	require.NoError(t, err)
	assert.Equal(t, "delivery failed", b.Nodes[0].Label, "stored state must not alias returned graphs")
}

func TestDelete(t *testing.T) {
	repo := New()
	ctx := context.Background()

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), repository.ErrGraphNotFound)

	g, err := casegraph.NewGraph("claim-1")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, g))
	require.NoError(t, repo.Delete(ctx, "claim-1"))

	_, err = repo.FindByClaimID(ctx, "claim-1")
	assert.ErrorIs(t, err, repository.ErrGraphNotFound)
}
