package triangle

import (
	"math"
)

// QuartersPerYear is the fixed seasonal cycle length. The calendar-quarter
// bucketing rule (calendar period mod 4, wrapping 0 to 4) is a domain
// convention aligned with development period 1 = quarter 1 and is kept
// literal rather than generalized.
const QuartersPerYear = 4

// relativityTolerance bounds the floating-point drift allowed when checking
// that estimated relativities average to 1.0.
const relativityTolerance = 1e-9

// Observation is a single incremental loss record located by origin period
// and development period, both 1-based.
type Observation struct {
	Origin      int     `json:"origin"`
	Development int     `json:"development"`
	Amount      float64 `json:"amount"`
}

// CalendarPeriod returns the calendar period the observation falls in.
func (o Observation) CalendarPeriod() int {
	return o.Origin + o.Development - 1
}

// CalendarQuarter returns the calendar quarter (1..4) of the observation.
func (o Observation) CalendarQuarter() int {
	q := o.CalendarPeriod() % QuartersPerYear
	if q == 0 {
		q = QuartersPerYear
	}
	return q
}

// IsValid checks that indices are 1-based and the amount is finite and
// non-negative.
func (o Observation) IsValid() bool {
	return o.Origin >= 1 && o.Development >= 1 &&
		!math.IsNaN(o.Amount) && !math.IsInf(o.Amount, 0) && o.Amount >= 0
}

// Cell identifies one triangle position.
type Cell struct {
	Origin      int `json:"origin"`
	Development int `json:"development"`
}

// CalendarPeriod returns the calendar period of the cell.
func (c Cell) CalendarPeriod() int {
	return c.Origin + c.Development - 1
}

// CalendarQuarter returns the calendar quarter (1..4) of the cell.
func (c Cell) CalendarQuarter() int {
	q := c.CalendarPeriod() % QuartersPerYear
	if q == 0 {
		q = QuartersPerYear
	}
	return q
}

// RelativityTable maps a calendar quarter to its seasonal relativity factor.
// Tables produced by EstimateRelativities average to 1.0 across the four
// quarters, so de-adjustment preserves aggregate amounts over a full year.
type RelativityTable map[int]float64

// Factor returns the relativity for a quarter.
func (rt RelativityTable) Factor(quarter int) (float64, bool) {
	f, ok := rt[quarter]
	return f, ok
}

// Mean returns the arithmetic mean of the factors.
func (rt RelativityTable) Mean() float64 {
	if len(rt) == 0 {
		return 0
	}
	sum := 0.0
	for _, f := range rt {
		sum += f
	}
	return sum / float64(len(rt))
}

// IsValid checks that every factor is positive and finite.
func (rt RelativityTable) IsValid() bool {
	if len(rt) == 0 {
		return false
	}
	for _, f := range rt {
		if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			return false
		}
	}
	return true
}

// identityTable returns a table that leaves amounts unchanged. Used for
// unadjusted (naive) development runs so both modes share one code path.
func identityTable(quarters int) RelativityTable {
	rt := make(RelativityTable, quarters)
	for q := 1; q <= quarters; q++ {
		rt[q] = 1.0
	}
	return rt
}

// Provenance records whether a completed cell was observed or projected.
type Provenance string

const (
	// ProvenanceObserved marks cells carried through from the input data.
	ProvenanceObserved Provenance = "observed"
	// ProvenanceForecast marks cells supplied by the projector.
	ProvenanceForecast Provenance = "forecast"
)

// DevelopedCell is one cell of a completed triangle together with its
// provenance.
type DevelopedCell struct {
	Observation
	Source Provenance `json:"source"`
}
