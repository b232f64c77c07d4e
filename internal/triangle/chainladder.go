package triangle

import (
	"context"
	"fmt"
	"log/slog"
)

// Projector fills the unobserved lower-right cells of a cumulative triangle.
// Implementations must return a new triangle and leave the input untouched.
type Projector interface {
	Project(ctx context.Context, cumulative Triangle) (Triangle, error)
}

// ChainLadder projects a cumulative triangle with the classic
// development-factor method: volume-weighted age-to-age factors are measured
// on every pair of adjacent development columns, then applied iteratively
// from each origin's latest observed cell out to the full square.
type ChainLadder struct {
	logger *slog.Logger
}

// NewChainLadder creates a chain-ladder projector.
func NewChainLadder(logger *slog.Logger) *ChainLadder {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChainLadder{logger: logger}
}

// Project implements the Projector interface.
func (cl *ChainLadder) Project(ctx context.Context, cumulative Triangle) (Triangle, error) {
	if len(cumulative) == 0 {
		return nil, &InsufficientDataError{Reason: "empty triangle"}
	}

	maxDev := cumulative.MaxDevelopment()
	factors := cl.ageToAgeFactors(cumulative, maxDev)

	cl.logger.DebugContext(ctx, "computed age-to-age factors",
		slog.Int("columns", len(factors)),
		slog.Int("max_development", maxDev),
	)

	out := cumulative.Clone()
	for _, origin := range out.origins() {
		devs := out.developments(origin)
		latest := devs[len(devs)-1]
		for dev := latest; dev < maxDev; dev++ {
			next := Cell{Origin: origin, Development: dev + 1}
			if _, exists := out[next]; exists {
				continue
			}
			factor, ok := factors[dev]
			if !ok {
				return nil, &InsufficientDataError{
					Reason: fmt.Sprintf("no age-to-age factor from development %d to %d", dev, dev+1),
				}
			}
			out[next] = out[Cell{Origin: origin, Development: dev}] * factor
		}
	}

	return out, nil
}

// ageToAgeFactors computes the volume-weighted development factor for each
// adjacent column pair, keyed by the earlier development index. Column pairs
// sharing no origin get no factor; Project fails only if a fill needs one.
func (cl *ChainLadder) ageToAgeFactors(cumulative Triangle, maxDev int) map[int]float64 {
	factors := make(map[int]float64, maxDev-1)
	for dev := 1; dev < maxDev; dev++ {
		numerator := 0.0
		denominator := 0.0
		for cell, amount := range cumulative {
			if cell.Development != dev {
				continue
			}
			next, ok := cumulative[Cell{Origin: cell.Origin, Development: dev + 1}]
			if !ok {
				continue
			}
			numerator += next
			denominator += amount
		}
		if denominator > 0 {
			factors[dev] = numerator / denominator
		}
	}
	return factors
}
