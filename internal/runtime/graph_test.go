package runtime_test

import (
	"testing"

	"github.com/aretw0/wayfinder/internal/runtime"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_Register(t *testing.T) {
	g := runtime.NewGraph()
	east := domain.Origin.Step(domain.East)

	assert.True(t, g.Discover(domain.Origin))
	assert.False(t, g.Discover(domain.Origin), "second discovery is not new")

	err := g.Register(east, domain.West, domain.LinkedSlot(domain.Origin))
	assert.ErrorIs(t, err, domain.ErrGraphCorrupted, "undiscovered cell")

	err = g.Register(domain.Origin, domain.East, domain.Slot{})
	assert.ErrorIs(t, err, domain.ErrGraphCorrupted, "unresolved slot")

	require.NoError(t, g.Register(domain.Origin, domain.East, domain.LinkedSlot(east)))
	require.NoError(t, g.Register(domain.Origin, domain.East, domain.LinkedSlot(east)), "same value is a no-op")

	err = g.Register(domain.Origin, domain.East, domain.BlockedSlot())
	assert.ErrorIs(t, err, domain.ErrSlotConflict)

	slots, ok := g.Neighbors(domain.Origin)
	require.True(t, ok)
	assert.Equal(t, domain.LinkedSlot(east), slots.Get(domain.East))
	assert.Equal(t, []domain.Direction{domain.North, domain.South, domain.West}, slots.Unresolved())

	_, ok = g.Neighbors(east)
	assert.False(t, ok)
}

func TestGraph_DirectionTo(t *testing.T) {
	g := runtime.NewGraph()
	south := domain.Origin.Step(domain.South)
	g.Discover(domain.Origin)
	g.Discover(south)
	require.NoError(t, g.Register(domain.Origin, domain.South, domain.LinkedSlot(south)))

	d, ok := g.DirectionTo(domain.Origin, south)
	assert.True(t, ok)
	assert.Equal(t, domain.South, d)

	_, ok = g.DirectionTo(south, domain.Origin)
	assert.False(t, ok, "the reverse side was never registered")

	assert.Equal(t, []domain.CellID{domain.Origin, south}, g.Cells())
	assert.Equal(t, 2, g.Len())
	assert.True(t, g.Has(south))
}

func TestFrontier(t *testing.T) {
	cells := []domain.CellID{{X: 1}, {X: 2}, {X: 3}}

	fifo := runtime.NewFrontier(domain.BreadthFirst)
	lifo := runtime.NewFrontier(domain.DepthFirst)
	for _, c := range cells {
		fifo.Push(c)
		lifo.Push(c)
	}
	assert.Equal(t, 3, fifo.Len())

	for i := range cells {
		c, ok := fifo.Pop()
		require.True(t, ok)
		assert.Equal(t, cells[i], c)

		c, ok = lifo.Pop()
		require.True(t, ok)
		assert.Equal(t, cells[len(cells)-1-i], c)
	}

	_, ok := fifo.Pop()
	assert.False(t, ok)
	_, ok = lifo.Pop()
	assert.False(t, ok)
}
