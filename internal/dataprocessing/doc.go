// Package dataprocessing loads loss observations from delimited and Excel
// datasets into the triangle package's record form.
//
// Input files carry one row per (origin, development, amount) triple.
// Header names are matched against common actuarial aliases (accident_year,
// dev, lag, loss, ...), amounts may be cumulative or incremental, and
// malformed rows are an error rather than being skipped: the pipeline
// refuses silent coercion.
package dataprocessing
