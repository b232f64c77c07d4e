package triangle

import (
	"fmt"
	"sort"
)

// EstimateRelativities measures the seasonal shape of the loss data and
// returns one relativity factor per calendar quarter.
//
// Only observations inside the first development cycle (development index up
// to quartersPerCycle) are used, which isolates a consistent window for
// measuring seasonality independent of development trend. Observations are
// grouped by origin; with completeOnly set, origins missing any quarter
// bucket are dropped so partial years do not bias the averages. Each
// retained origin contributes amount / (yearTotal / quartersPerCycle) per
// quarter, and the table holds the arithmetic mean of those raw relativities
// across origins.
//
// Because every complete origin's raw relativities average to 1.0, the
// returned factors average to 1.0 as well.
func EstimateRelativities(observations []Observation, quartersPerCycle int, completeOnly bool) (RelativityTable, error) {
	if quartersPerCycle < 1 {
		return nil, &InvalidInputError{
			Field:   "quartersPerCycle",
			Message: fmt.Sprintf("quarters per cycle must be positive, got %d", quartersPerCycle),
			Value:   quartersPerCycle,
		}
	}

	// Bucket first-cycle amounts by origin and quarter.
	byOrigin := make(map[int]map[int]float64)
	for _, o := range observations {
		if o.Development > quartersPerCycle {
			continue
		}
		buckets := byOrigin[o.Origin]
		if buckets == nil {
			buckets = make(map[int]float64, quartersPerCycle)
			byOrigin[o.Origin] = buckets
		}
		buckets[o.CalendarQuarter()] += o.Amount
	}

	sums := make(map[int]float64, quartersPerCycle)
	counts := make(map[int]int, quartersPerCycle)
	retained := 0

	origins := make([]int, 0, len(byOrigin))
	for origin := range byOrigin {
		origins = append(origins, origin)
	}
	sort.Ints(origins)

	for _, origin := range origins {
		buckets := byOrigin[origin]
		if completeOnly && len(buckets) < quartersPerCycle {
			continue
		}

		yearTotal := 0.0
		for _, amount := range buckets {
			yearTotal += amount
		}
		if yearTotal <= 0 {
			continue
		}

		expected := yearTotal / float64(len(buckets))
		for quarter, amount := range buckets {
			sums[quarter] += amount / expected
			counts[quarter]++
		}
		retained++
	}

	if retained == 0 {
		return nil, &InsufficientDataError{
			Reason: fmt.Sprintf("no origin has a complete %d-quarter cycle", quartersPerCycle),
		}
	}

	table := make(RelativityTable, quartersPerCycle)
	for quarter, sum := range sums {
		table[quarter] = sum / float64(counts[quarter])
	}
	return table, nil
}
