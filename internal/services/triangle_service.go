// Package services orchestrates full development runs: input resolution,
// the pipeline itself, and report generation.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"lossdev/internal/dataprocessing"
	"lossdev/internal/exporter"
	"lossdev/internal/infrastructure"
	"lossdev/internal/triangle"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lossdev_runs_total",
		Help: "Total development runs by outcome",
	}, []string{"status"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lossdev_run_duration_seconds",
		Help:    "Duration of development runs",
		Buckets: prometheus.DefBuckets,
	})

	observationsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lossdev_observations_loaded_total",
		Help: "Total observations loaded across runs",
	})
)

// RunRequest describes one development run. Exactly one input source must be
// set: inline observations, a source file, or a synthetic dataset size.
type RunRequest struct {
	Observations     []triangle.Observation
	SourceFile       string
	Cumulative       bool // source file amounts are cumulative
	RebaseOrigins    bool
	SyntheticOrigins int

	QuartersPerCycle int
	Compare          bool // also run naive chain-ladder for contrast
	WriteReports     bool
}

// RunResult is the outcome of one development run.
type RunResult struct {
	RunID       string           `json:"run_id"`
	Adjusted    *triangle.Result `json:"adjusted"`
	Naive       *triangle.Result `json:"naive,omitempty"`
	ReportPaths []string         `json:"report_paths,omitempty"`
}

// TriangleService runs the development pipeline and writes reports.
type TriangleService struct {
	developer *triangle.Developer
	csv       *exporter.CSVWriter
	xlsx      *exporter.ExcelWriter
	logger    *slog.Logger
}

// NewTriangleService creates a triangle service writing reports under
// reportsDir.
func NewTriangleService(developer *triangle.Developer, reportsDir string, logger *slog.Logger) *TriangleService {
	return &TriangleService{
		developer: developer,
		csv:       exporter.NewCSVWriter(reportsDir),
		xlsx:      exporter.NewExcelWriter(reportsDir),
		logger:    logger.With(slog.String("service", "triangle")),
	}
}

// Run executes one development run.
func (s *TriangleService) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	runID := uuid.New().String()
	start := time.Now()

	ctx, span := infrastructure.Tracer().Start(ctx, "triangle.run")
	defer span.End()
	span.SetAttributes(attribute.String("run_id", runID))

	s.logger.InfoContext(ctx, "starting development run",
		slog.String("run_id", runID),
		slog.Bool("compare", req.Compare),
		slog.Bool("write_reports", req.WriteReports),
	)

	observations, err := s.resolveInput(ctx, req)
	if err != nil {
		runsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	observationsLoaded.Add(float64(len(observations)))

	opts := triangle.DevelopOptions{QuartersPerCycle: req.QuartersPerCycle}
	adjusted, err := s.developer.Develop(ctx, observations, opts)
	if err != nil {
		runsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("develop adjusted triangle: %w", err)
	}

	result := &RunResult{
		RunID:    runID,
		Adjusted: adjusted,
	}

	if req.Compare {
		opts.SkipAdjustment = true
		naive, err := s.developer.Develop(ctx, observations, opts)
		if err != nil {
			runsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("develop naive triangle: %w", err)
		}
		result.Naive = naive
	}

	if req.WriteReports {
		paths, err := s.writeReports(ctx, runID, result)
		if err != nil {
			runsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("write reports: %w", err)
		}
		result.ReportPaths = paths
	}

	runsTotal.WithLabelValues("success").Inc()
	runDuration.Observe(time.Since(start).Seconds())

	s.logger.InfoContext(ctx, "development run completed",
		slog.String("run_id", runID),
		slog.Int("origins", len(adjusted.Ultimates)),
		slog.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// resolveInput produces the observation set from whichever source the
// request names.
func (s *TriangleService) resolveInput(ctx context.Context, req RunRequest) ([]triangle.Observation, error) {
	sources := 0
	if len(req.Observations) > 0 {
		sources++
	}
	if req.SourceFile != "" {
		sources++
	}
	if req.SyntheticOrigins > 0 {
		sources++
	}
	if sources != 1 {
		return nil, &triangle.InvalidInputError{
			Field:   "input",
			Message: fmt.Sprintf("exactly one input source required, got %d", sources),
		}
	}

	switch {
	case len(req.Observations) > 0:
		return req.Observations, nil
	case req.SourceFile != "":
		s.logger.InfoContext(ctx, "loading observations",
			slog.String("path", req.SourceFile),
			slog.Bool("cumulative", req.Cumulative),
		)
		return dataprocessing.LoadFile(req.SourceFile, dataprocessing.LoadOptions{
			Cumulative:    req.Cumulative,
			RebaseOrigins: req.RebaseOrigins,
		})
	default:
		return triangle.Synthetic(req.SyntheticOrigins, nil), nil
	}
}

// writeReports writes the CSV and Excel artifacts concurrently.
func (s *TriangleService) writeReports(ctx context.Context, runID string, result *RunResult) ([]string, error) {
	prefix := runID[:8]
	paths := make([]string, 3)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		path, err := s.csv.WriteTriangleCSV(prefix+"_triangle.csv", result.Adjusted.Cells)
		paths[0] = path
		return err
	})
	g.Go(func() error {
		path, err := s.csv.WriteUltimatesCSV(prefix+"_ultimates.csv", result.Adjusted.Cells)
		paths[1] = path
		return err
	})
	g.Go(func() error {
		path, err := s.xlsx.WriteTriangleXLSX(prefix+"_triangle.xlsx", result.Adjusted.Cells, result.Adjusted.Relativities)
		paths[2] = path
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
