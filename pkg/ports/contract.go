package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSolutionStoreContract runs a suite of tests to verify that a SolutionStore implementation
// adheres to the defined interface contract.
func RunSolutionStoreContract(t *testing.T, store SolutionStore) {
	ctx := context.Background()
	id := "contract-test-" + time.Now().Format("20060102150405.000000000")

	newSolution := func(id string) *domain.Solution {
		return &domain.Solution{
			ID:       id,
			Strategy: domain.BreadthFirst,
			Status:   domain.StatusFound,
			Goal:     domain.CellID{X: 2},
			Path: []domain.Step{
				{Cell: domain.CellID{X: 1}, Direction: domain.East},
				{Cell: domain.CellID{X: 2}, Direction: domain.East},
			},
			Visits: []domain.CellID{domain.Origin, {X: 1}},
			Stats:  domain.Stats{Peeks: 7, Moves: 1, Discovered: 3, Visited: 2},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		sol := newSolution(id)

		err := store.Save(ctx, sol)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sol.ID, loaded.ID)
		assert.Equal(t, sol.Status, loaded.Status)
		assert.Equal(t, sol.Goal, loaded.Goal)
		assert.Equal(t, sol.Path, loaded.Path)
		assert.Equal(t, sol.Stats, loaded.Stats)
	})

	t.Run("Loaded copy is isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		loaded.Path[0].Direction = domain.West

		again, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.East, again.Path[0].Direction)
	})

	t.Run("Save requires ID", func(t *testing.T) {
		err := store.Save(ctx, newSolution(""))
		assert.Error(t, err)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrSolutionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, newSolution(id))
		require.NoError(t, err)

		err = store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrSolutionNotFound, "Load after Delete should return ErrSolutionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, store.Save(ctx, newSolution(id1)))
		require.NoError(t, store.Save(ctx, newSolution(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
