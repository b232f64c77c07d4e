package triangle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewTriangle tests triangle construction
func TestNewTriangle(t *testing.T) {
	t.Run("builds sparse mapping", func(t *testing.T) {
		observations := []Observation{
			{Origin: 1, Development: 1, Amount: 100},
			{Origin: 1, Development: 2, Amount: 50},
			{Origin: 2, Development: 1, Amount: 60},
		}

		tri, err := NewTriangle(observations)
		require.NoError(t, err)
		assert.Len(t, tri, 3)
		assert.Equal(t, 50.0, tri[Cell{Origin: 1, Development: 2}])
		assert.Equal(t, 2, tri.MaxOrigin())
		assert.Equal(t, 2, tri.MaxDevelopment())

		// Absent cells are missing, not zero.
		_, ok := tri[Cell{Origin: 2, Development: 2}]
		assert.False(t, ok)
	})

	t.Run("rejects duplicate cells", func(t *testing.T) {
		observations := []Observation{
			{Origin: 1, Development: 1, Amount: 100},
			{Origin: 1, Development: 1, Amount: 5},
		}

		_, err := NewTriangle(observations)
		var invalidErr *InvalidInputError
		require.True(t, errors.As(err, &invalidErr))
	})
}

// TestCumulativeIncremental tests the incremental/cumulative transforms
func TestCumulativeIncremental(t *testing.T) {
	t.Run("cumulative sums within origins", func(t *testing.T) {
		tri, err := NewTriangle([]Observation{
			{Origin: 1, Development: 1, Amount: 100},
			{Origin: 1, Development: 2, Amount: 50},
			{Origin: 1, Development: 3, Amount: 50},
			{Origin: 2, Development: 1, Amount: 50},
			{Origin: 2, Development: 2, Amount: 50},
		})
		require.NoError(t, err)

		cum := tri.Cumulative()
		assert.Equal(t, 100.0, cum[Cell{Origin: 1, Development: 1}])
		assert.Equal(t, 150.0, cum[Cell{Origin: 1, Development: 2}])
		assert.Equal(t, 200.0, cum[Cell{Origin: 1, Development: 3}])
		assert.Equal(t, 50.0, cum[Cell{Origin: 2, Development: 1}])
		assert.Equal(t, 100.0, cum[Cell{Origin: 2, Development: 2}])

		// Source triangle stays incremental.
		assert.Equal(t, 50.0, tri[Cell{Origin: 1, Development: 3}])
	})

	t.Run("cumulative amounts are non-decreasing", func(t *testing.T) {
		tri, err := NewTriangle(Synthetic(8, nil))
		require.NoError(t, err)

		cum := tri.Cumulative()
		for cell, amount := range cum {
			if cell.Development == 1 {
				continue
			}
			prev, ok := cum[Cell{Origin: cell.Origin, Development: cell.Development - 1}]
			require.True(t, ok)
			assert.GreaterOrEqual(t, amount, prev)
		}
	})

	t.Run("round trip is exact", func(t *testing.T) {
		tri, err := NewTriangle(Synthetic(8, nil))
		require.NoError(t, err)

		back := tri.Cumulative().Incremental()
		require.Len(t, back, len(tri))
		for cell, amount := range tri {
			assert.InDelta(t, amount, back[cell], 1e-9, "cell %+v", cell)
		}
	})

	t.Run("round trip with fractional amounts", func(t *testing.T) {
		tri, err := NewTriangle([]Observation{
			{Origin: 1, Development: 1, Amount: 0.1},
			{Origin: 1, Development: 2, Amount: 0.2},
			{Origin: 1, Development: 3, Amount: 0.30000000004},
			{Origin: 3, Development: 1, Amount: 17.25},
		})
		require.NoError(t, err)

		back := tri.Cumulative().Incremental()
		for cell, amount := range tri {
			assert.InDelta(t, amount, back[cell], 1e-9, "cell %+v", cell)
		}
	})
}

// TestTriangleObservations tests the sorted flattening
func TestTriangleObservations(t *testing.T) {
	tri := Triangle{
		{Origin: 2, Development: 1}: 60,
		{Origin: 1, Development: 2}: 50,
		{Origin: 1, Development: 1}: 100,
	}

	obs := tri.Observations()
	require.Len(t, obs, 3)
	assert.Equal(t, Observation{Origin: 1, Development: 1, Amount: 100}, obs[0])
	assert.Equal(t, Observation{Origin: 1, Development: 2, Amount: 50}, obs[1])
	assert.Equal(t, Observation{Origin: 2, Development: 1, Amount: 60}, obs[2])
}

// TestTriangleClone tests copy independence
func TestTriangleClone(t *testing.T) {
	tri := Triangle{{Origin: 1, Development: 1}: 100}
	cp := tri.Clone()
	cp[Cell{Origin: 1, Development: 1}] = 7

	assert.Equal(t, 100.0, tri[Cell{Origin: 1, Development: 1}])
}
