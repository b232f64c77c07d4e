package triangle

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeveloper() *Developer {
	logger := slog.Default()
	return NewDeveloper(NewChainLadder(logger), logger)
}

// TestDevelopSeasonalityAdjusted is the end-to-end correctness check: on the
// 8-origin synthetic dataset every origin's true ultimate over 8 development
// periods is 480 (two full cycles of 100+50+50+40), and the
// seasonality-adjusted projection must recover it.
func TestDevelopSeasonalityAdjusted(t *testing.T) {
	observations := Synthetic(8, nil)

	result, err := newTestDeveloper().Develop(context.Background(), observations, DevelopOptions{})
	require.NoError(t, err)

	require.Len(t, result.Ultimates, 8)
	for origin, ultimate := range result.Ultimates {
		assert.InDelta(t, 480.0, ultimate, 1e-6, "origin %d", origin)
	}

	assert.Equal(t, 8, result.ObservedHorizon)
	assert.InDelta(t, 1.0, result.Relativities.Mean(), 1e-12)

	// 8x8 square: 36 observed cells, 28 forecast cells.
	observedCount, forecastCount := 0, 0
	for _, dc := range result.Cells {
		switch dc.Source {
		case ProvenanceObserved:
			observedCount++
		case ProvenanceForecast:
			forecastCount++
		}
	}
	assert.Equal(t, 36, observedCount)
	assert.Equal(t, 28, forecastCount)
}

// TestDevelopNaiveIsDistorted tests the contrast that motivates the
// pipeline: naive chain-ladder on the same seasonal data must NOT reproduce
// 480 for every origin.
func TestDevelopNaiveIsDistorted(t *testing.T) {
	observations := Synthetic(8, nil)

	result, err := newTestDeveloper().Develop(context.Background(), observations, DevelopOptions{
		SkipAdjustment: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Ultimates, 8)

	maxDeviation := 0.0
	for _, ultimate := range result.Ultimates {
		if d := math.Abs(ultimate - 480.0); d > maxDeviation {
			maxDeviation = d
		}
	}
	assert.Greater(t, maxDeviation, 1.0,
		"naive projection should be visibly distorted by seasonality")

	// The fully observed first origin is untouched by projection.
	assert.InDelta(t, 480.0, result.Ultimates[1], 1e-9)
}

// TestDevelopObservedCellsUntouched tests that projection never rewrites
// real observations.
func TestDevelopObservedCellsUntouched(t *testing.T) {
	observations := Synthetic(8, nil)

	result, err := newTestDeveloper().Develop(context.Background(), observations, DevelopOptions{})
	require.NoError(t, err)

	byCell := make(map[Cell]DevelopedCell)
	for _, dc := range result.Cells {
		byCell[Cell{Origin: dc.Origin, Development: dc.Development}] = dc
	}

	for _, o := range observations {
		dc, ok := byCell[Cell{Origin: o.Origin, Development: o.Development}]
		require.True(t, ok)
		assert.Equal(t, ProvenanceObserved, dc.Source)
		assert.Equal(t, o.Amount, dc.Amount)
	}
}

// TestDevelopAdversarialHorizon tests that an overlapping observed/forecast
// split surfaces as DuplicateCellError rather than silently overwriting.
func TestDevelopAdversarialHorizon(t *testing.T) {
	observations := Synthetic(8, nil)

	_, err := newTestDeveloper().Develop(context.Background(), observations, DevelopOptions{
		ObservedHorizon: 4,
	})
	require.Error(t, err)

	var dupErr *DuplicateCellError
	assert.True(t, errors.As(err, &dupErr))
}

// TestDevelopInvalidInput tests fail-fast precondition checks
func TestDevelopInvalidInput(t *testing.T) {
	tests := []struct {
		name         string
		observations []Observation
	}{
		{"empty input", nil},
		{"negative amount", []Observation{{Origin: 1, Development: 1, Amount: -10}}},
		{"NaN amount", []Observation{{Origin: 1, Development: 1, Amount: math.NaN()}}},
		{"zero origin", []Observation{{Origin: 0, Development: 1, Amount: 10}}},
		{"zero development", []Observation{{Origin: 1, Development: 0, Amount: 10}}},
		{
			"duplicate cell",
			[]Observation{
				{Origin: 1, Development: 1, Amount: 10},
				{Origin: 1, Development: 1, Amount: 20},
			},
		},
	}

	developer := newTestDeveloper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := developer.Develop(context.Background(), tt.observations, DevelopOptions{})
			require.Error(t, err)

			var invalidErr *InvalidInputError
			assert.True(t, errors.As(err, &invalidErr))
		})
	}
}

// TestDevelopInsufficientHistory tests that a dataset without one complete
// seasonal cycle cannot be developed.
func TestDevelopInsufficientHistory(t *testing.T) {
	observations := []Observation{
		{Origin: 1, Development: 1, Amount: 100},
		{Origin: 1, Development: 2, Amount: 50},
		{Origin: 2, Development: 1, Amount: 60},
	}

	_, err := newTestDeveloper().Develop(context.Background(), observations, DevelopOptions{})
	require.Error(t, err)

	var insufficientErr *InsufficientDataError
	assert.True(t, errors.As(err, &insufficientErr))
}
