package triangle

import (
	"fmt"
	"math"
)

// ValidateObservations checks the pipeline's input preconditions. Amounts
// must be finite and non-negative, indices 1-based, and no two observations
// may share a cell. Any violation aborts the run with InvalidInputError;
// there is no silent coercion.
func ValidateObservations(observations []Observation) error {
	if len(observations) == 0 {
		return &InvalidInputError{
			Field:   "observations",
			Message: "no observations provided",
		}
	}

	seen := make(map[Cell]bool, len(observations))
	for i, o := range observations {
		if o.Origin < 1 {
			return &InvalidInputError{
				Field:   "origin",
				Message: fmt.Sprintf("observation %d: origin index must be 1-based, got %d", i, o.Origin),
				Value:   o.Origin,
			}
		}
		if o.Development < 1 {
			return &InvalidInputError{
				Field:   "development",
				Message: fmt.Sprintf("observation %d: development index must be 1-based, got %d", i, o.Development),
				Value:   o.Development,
			}
		}
		if math.IsNaN(o.Amount) || math.IsInf(o.Amount, 0) {
			return &InvalidInputError{
				Field:   "amount",
				Message: fmt.Sprintf("observation %d: amount is not finite", i),
				Value:   o.Amount,
			}
		}
		if o.Amount < 0 {
			return &InvalidInputError{
				Field:   "amount",
				Message: fmt.Sprintf("observation %d: amount is negative", i),
				Value:   o.Amount,
			}
		}
		cell := Cell{Origin: o.Origin, Development: o.Development}
		if seen[cell] {
			return &InvalidInputError{
				Field:   "observations",
				Message: fmt.Sprintf("duplicate observation for origin %d, development %d", o.Origin, o.Development),
				Value:   cell,
			}
		}
		seen[cell] = true
	}

	return nil
}
