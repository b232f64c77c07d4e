package triangle

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DevelopOptions configures a development run.
type DevelopOptions struct {
	// QuartersPerCycle is the seasonal cycle length used for relativity
	// estimation. Zero means QuartersPerYear.
	QuartersPerCycle int

	// ObservedHorizon is the last fully observed calendar period. Cells
	// beyond it are taken from the projector. Zero means the highest origin
	// index, which is the horizon of a full upper-left triangle.
	ObservedHorizon int

	// SkipAdjustment runs the projector on the raw amounts with an identity
	// relativity table, i.e. naive chain-ladder. Used to contrast adjusted
	// and unadjusted ultimates.
	SkipAdjustment bool
}

// Result is the outcome of one development run.
type Result struct {
	// Cells is the completed triangle, observed plus forecast, sorted by
	// origin then development.
	Cells []DevelopedCell `json:"cells"`

	// Relativities is the table the run used. Identity when SkipAdjustment
	// was set.
	Relativities RelativityTable `json:"relativities"`

	// Ultimates maps each origin to its fully developed loss amount.
	Ultimates map[int]float64 `json:"ultimates"`

	// ObservedHorizon is the horizon the run resolved to.
	ObservedHorizon int `json:"observed_horizon"`
}

// Developer orchestrates the four pipeline stages: relativity estimation,
// adjustment, projection, and de-adjustment with merge. Each stage consumes
// immutable inputs and produces a new artifact; any stage failure aborts the
// run with no partial result.
type Developer struct {
	projector Projector
	logger    *slog.Logger
}

// NewDeveloper creates a developer using the given projector.
func NewDeveloper(projector Projector, logger *slog.Logger) *Developer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Developer{
		projector: projector,
		logger:    logger,
	}
}

// Develop runs the full seasonality-adjusted development pipeline over the
// incremental observations.
func (d *Developer) Develop(ctx context.Context, observations []Observation, opts DevelopOptions) (*Result, error) {
	start := time.Now()

	if err := ValidateObservations(observations); err != nil {
		return nil, fmt.Errorf("validate observations: %w", err)
	}

	quarters := opts.QuartersPerCycle
	if quarters == 0 {
		quarters = QuartersPerYear
	}

	horizon := opts.ObservedHorizon
	if horizon == 0 {
		for _, o := range observations {
			if o.Origin > horizon {
				horizon = o.Origin
			}
		}
	}

	d.logger.InfoContext(ctx, "starting triangle development",
		slog.Int("observations", len(observations)),
		slog.Int("observed_horizon", horizon),
		slog.Int("quarters_per_cycle", quarters),
		slog.Bool("seasonality_adjusted", !opts.SkipAdjustment),
	)

	var table RelativityTable
	if opts.SkipAdjustment {
		table = identityTable(quarters)
	} else {
		var err error
		table, err = EstimateRelativities(observations, quarters, true)
		if err != nil {
			return nil, fmt.Errorf("estimate relativities: %w", err)
		}
		d.logger.DebugContext(ctx, "estimated seasonal relativities",
			slog.Any("table", table),
			slog.Float64("mean", table.Mean()),
		)
	}

	adjusted, err := Adjust(observations, table)
	if err != nil {
		return nil, fmt.Errorf("adjust observations: %w", err)
	}

	incremental, err := NewTriangle(adjusted)
	if err != nil {
		return nil, fmt.Errorf("build triangle: %w", err)
	}

	projected, err := d.projector.Project(ctx, incremental.Cumulative())
	if err != nil {
		return nil, fmt.Errorf("project triangle: %w", err)
	}

	cells, err := Finalize(projected, observations, table, horizon)
	if err != nil {
		return nil, fmt.Errorf("finalize triangle: %w", err)
	}

	ultimates := make(map[int]float64)
	for _, dc := range cells {
		ultimates[dc.Origin] += dc.Amount
	}

	d.logger.InfoContext(ctx, "triangle development completed",
		slog.Int("cells", len(cells)),
		slog.Int("origins", len(ultimates)),
		slog.Duration("duration", time.Since(start)),
	)

	return &Result{
		Cells:           cells,
		Relativities:    table,
		Ultimates:       ultimates,
		ObservedHorizon: horizon,
	}, nil
}
