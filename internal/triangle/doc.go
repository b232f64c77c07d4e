// Package triangle implements seasonality-adjusted loss-development-triangle
// projection.
//
// Loss triangles built from quarterly data carry a seasonal signature: a
// quarter that systematically books more loss than the annual average
// distorts the age-to-age factors of a naive chain-ladder projection. This
// package neutralizes that distortion with a four-stage pipeline:
//
//  1. EstimateRelativities measures one relativity factor per calendar
//     quarter from the first development cycle of each complete origin year.
//  2. Adjust divides every incremental amount by its quarter's factor,
//     yielding a seasonality-neutral series.
//  3. A Projector (the included ChainLadder, or any implementation of the
//     interface) fills the unobserved lower-right cells of the cumulative
//     adjusted triangle.
//  4. Finalize converts the projection back to incremental amounts,
//     multiplies the new cells by their quarter's factor, and merges them
//     with the untouched original observations.
//
// # Architecture
//
//   - types.go: Observation, Cell, Triangle, RelativityTable, provenance
//   - relativity.go: seasonal relativity estimation
//   - adjust.go: adjustment and its inverse
//   - triangle.go: sparse triangle with incremental/cumulative transforms
//   - chainladder.go: Projector interface and development-factor projector
//   - finalize.go: de-adjustment and observed/forecast merge
//   - developer.go: Developer, the pipeline orchestrator
//   - synthetic.go: deterministic illustrative datasets
//   - validate.go: fail-fast input validation
//   - errors.go: typed pipeline errors
//
// # Usage Example
//
//	developer := triangle.NewDeveloper(triangle.NewChainLadder(logger), logger)
//	result, err := developer.Develop(ctx, observations, triangle.DevelopOptions{})
//	if err != nil {
//	    return err
//	}
//	for origin, ultimate := range result.Ultimates {
//	    fmt.Printf("origin %d: ultimate %.2f\n", origin, ultimate)
//	}
//
// The pipeline is stateless and single-threaded: every stage takes immutable
// inputs and returns a new artifact, and any failure aborts the run with one
// of the typed errors (InvalidInputError, InsufficientDataError,
// MissingRelativityError, DuplicateCellError).
package triangle
