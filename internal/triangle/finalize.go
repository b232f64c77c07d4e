package triangle

import (
	"sort"
)

// Finalize completes the pipeline after projection. The projector's
// cumulative output (still on the seasonality-adjusted scale) is converted
// back to incremental amounts; cells beyond the observed horizon are
// rescaled by their quarter's relativity and merged with the original,
// unadjusted observations.
//
// Observed cells are never replaced with re-derived values: the round trip
// through cumulative and incremental form is not bit-exact, so only cells
// with a calendar period past the horizon are taken from the projection. A
// forecast cell landing on an observed one violates that invariant and
// aborts with DuplicateCellError.
func Finalize(projected Triangle, observed []Observation, table RelativityTable, observedHorizon int) ([]DevelopedCell, error) {
	incremental := projected.Incremental()

	var forecasts []Observation
	for cell, amount := range incremental {
		if cell.CalendarPeriod() <= observedHorizon {
			continue
		}
		forecasts = append(forecasts, Observation{
			Origin:      cell.Origin,
			Development: cell.Development,
			Amount:      amount,
		})
	}

	restored, err := Restore(forecasts, table)
	if err != nil {
		return nil, err
	}

	merged := make(map[Cell]DevelopedCell, len(observed)+len(restored))
	for _, o := range observed {
		merged[Cell{Origin: o.Origin, Development: o.Development}] = DevelopedCell{
			Observation: o,
			Source:      ProvenanceObserved,
		}
	}
	for _, o := range restored {
		cell := Cell{Origin: o.Origin, Development: o.Development}
		if _, exists := merged[cell]; exists {
			return nil, &DuplicateCellError{Origin: o.Origin, Development: o.Development}
		}
		merged[cell] = DevelopedCell{
			Observation: o,
			Source:      ProvenanceForecast,
		}
	}

	out := make([]DevelopedCell, 0, len(merged))
	for _, dc := range merged {
		out = append(out, dc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Origin != out[j].Origin {
			return out[i].Origin < out[j].Origin
		}
		return out[i].Development < out[j].Development
	})
	return out, nil
}
