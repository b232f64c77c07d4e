package triangle

// Adjust divides each observation's amount by its quarter's relativity
// factor, producing a seasonality-neutral series. The transformation is
// elementwise and order-preserving. An observation whose quarter has no
// table entry aborts with MissingRelativityError.
func Adjust(observations []Observation, table RelativityTable) ([]Observation, error) {
	out := make([]Observation, 0, len(observations))
	for _, o := range observations {
		factor, ok := table.Factor(o.CalendarQuarter())
		if !ok {
			return nil, &MissingRelativityError{
				Quarter:     o.CalendarQuarter(),
				Origin:      o.Origin,
				Development: o.Development,
			}
		}
		o.Amount /= factor
		out = append(out, o)
	}
	return out, nil
}

// Restore is the inverse of Adjust: it multiplies each amount by its
// quarter's relativity factor, putting real-world seasonal variation back
// into an adjusted series.
func Restore(observations []Observation, table RelativityTable) ([]Observation, error) {
	out := make([]Observation, 0, len(observations))
	for _, o := range observations {
		factor, ok := table.Factor(o.CalendarQuarter())
		if !ok {
			return nil, &MissingRelativityError{
				Quarter:     o.CalendarQuarter(),
				Origin:      o.Origin,
				Development: o.Development,
			}
		}
		o.Amount *= factor
		out = append(out, o)
	}
	return out, nil
}
