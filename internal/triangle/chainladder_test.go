package triangle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestChainLadderProject tests projection on a small triangle with
// hand-computed development factors.
func TestChainLadderProject(t *testing.T) {
	// Cumulative triangle:
	//   origin 1: 100  200  300
	//   origin 2: 110  220
	//   origin 3: 120
	// f(1->2) = (200+220)/(100+110) = 2.0, f(2->3) = 300/200 = 1.5
	cumulative := Triangle{
		{Origin: 1, Development: 1}: 100,
		{Origin: 1, Development: 2}: 200,
		{Origin: 1, Development: 3}: 300,
		{Origin: 2, Development: 1}: 110,
		{Origin: 2, Development: 2}: 220,
		{Origin: 3, Development: 1}: 120,
	}

	projector := NewChainLadder(nil)
	projected, err := projector.Project(context.Background(), cumulative)
	require.NoError(t, err)

	assert.Len(t, projected, 9)
	assert.InDelta(t, 330.0, projected[Cell{Origin: 2, Development: 3}], 1e-9)
	assert.InDelta(t, 240.0, projected[Cell{Origin: 3, Development: 2}], 1e-9)
	assert.InDelta(t, 360.0, projected[Cell{Origin: 3, Development: 3}], 1e-9)

	// Observed cells pass through untouched and the input is not mutated.
	assert.Equal(t, 220.0, projected[Cell{Origin: 2, Development: 2}])
	assert.Len(t, cumulative, 6)
}

// TestChainLadderConstantIncrements tests that a seasonality-neutral
// triangle with constant increments develops to the exact square.
func TestChainLadderConstantIncrements(t *testing.T) {
	observations := Synthetic(8, SeasonalPattern{1: 60, 2: 60, 3: 60, 4: 60})
	tri, err := NewTriangle(observations)
	require.NoError(t, err)

	projected, err := NewChainLadder(nil).Project(context.Background(), tri.Cumulative())
	require.NoError(t, err)
	assert.Len(t, projected, 64)

	for origin := 1; origin <= 8; origin++ {
		assert.InDelta(t, 480.0, projected[Cell{Origin: origin, Development: 8}], 1e-6,
			"origin %d", origin)
	}
}

// TestChainLadderErrors tests projection failure modes
func TestChainLadderErrors(t *testing.T) {
	projector := NewChainLadder(nil)

	t.Run("empty triangle", func(t *testing.T) {
		_, err := projector.Project(context.Background(), Triangle{})
		var insufficientErr *InsufficientDataError
		assert.True(t, errors.As(err, &insufficientErr))
	})

	t.Run("no paired columns", func(t *testing.T) {
		// Two origins observed at disjoint developments: no adjacent pair
		// shares an origin, so no factor can be measured.
		cumulative := Triangle{
			{Origin: 1, Development: 1}: 100,
			{Origin: 2, Development: 3}: 50,
		}

		_, err := projector.Project(context.Background(), cumulative)
		var insufficientErr *InsufficientDataError
		assert.True(t, errors.As(err, &insufficientErr))
	})
}
