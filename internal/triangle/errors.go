package triangle

import "fmt"

// InsufficientDataError reports that no complete seasonal cycle (or no
// usable development-factor pair) was available. The run cannot proceed;
// the caller must supply more history.
type InsufficientDataError struct {
	Reason string
}

// Error implements the error interface
func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %s", e.Reason)
}

// MissingRelativityError reports an observation whose calendar quarter has
// no entry in the relativity table.
type MissingRelativityError struct {
	Quarter     int
	Origin      int
	Development int
}

// Error implements the error interface
func (e *MissingRelativityError) Error() string {
	return fmt.Sprintf("no relativity factor for quarter %d (origin %d, development %d)",
		e.Quarter, e.Origin, e.Development)
}

// DuplicateCellError reports two records landing on the same (origin,
// development) cell. During the final merge this is an invariant violation:
// forecast cells must never overlap observed ones.
type DuplicateCellError struct {
	Origin      int
	Development int
}

// Error implements the error interface
func (e *DuplicateCellError) Error() string {
	return fmt.Sprintf("duplicate cell at origin %d, development %d", e.Origin, e.Development)
}

// InvalidInputError reports a precondition violation in the input data.
// Negative or non-finite amounts and non-positive indices fail fast rather
// than propagating distortions through the triangle.
type InvalidInputError struct {
	Field   string
	Message string
	Value   interface{}
}

// Error implements the error interface
func (e *InvalidInputError) Error() string {
	return e.Message
}
