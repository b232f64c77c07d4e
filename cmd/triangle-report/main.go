// Command triangle-report develops a loss triangle from a data file (or the
// built-in synthetic dataset) and writes CSV and Excel reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"lossdev/internal/config"
	"lossdev/internal/services"
	"lossdev/internal/triangle"
)

func main() {
	inputFile := flag.String("input", "", "path to a CSV or XLSX observations file")
	syntheticOrigins := flag.Int("synthetic", 0, "develop a synthetic triangle with this many origin quarters instead of reading a file")
	cumulative := flag.Bool("cumulative", false, "input amounts are cumulative rather than incremental")
	rebase := flag.Bool("rebase", false, "rebase origin labels so the earliest origin becomes 1")
	quarters := flag.Int("quarters", 0, "quarters per seasonal cycle (default 4)")
	compare := flag.Bool("compare", false, "also run the unadjusted chain ladder for contrast")
	outputDir := flag.String("out", "", "output directory for reports (defaults to the configured reports directory)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := cfg.Logging.NewLogger()
	slog.SetDefault(logger)

	if *outputDir == "" {
		*outputDir = cfg.Paths.ReportsDir
	}
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		slog.Error("Failed to create output directory", "path", *outputDir, "error", err)
		os.Exit(1)
	}

	if *inputFile == "" && *syntheticOrigins == 0 {
		slog.Error("No input specified",
			"hint", "pass -input <file> or -synthetic <origins>")
		os.Exit(1)
	}
	if *inputFile != "" {
		if _, err := os.Stat(*inputFile); os.IsNotExist(err) {
			slog.Error("Input file not found", "path", *inputFile)
			os.Exit(1)
		}
	}

	developer := triangle.NewDeveloper(triangle.NewChainLadder(logger), logger)
	service := services.NewTriangleService(developer, *outputDir, logger)

	slog.Info("Developing triangle...",
		"input", *inputFile,
		"synthetic_origins", *syntheticOrigins,
		"compare", *compare,
	)

	ctx := context.Background()
	result, err := service.Run(ctx, services.RunRequest{
		SourceFile:       *inputFile,
		Cumulative:       *cumulative,
		RebaseOrigins:    *rebase,
		SyntheticOrigins: *syntheticOrigins,
		QuartersPerCycle: *quarters,
		Compare:          *compare,
		WriteReports:     true,
	})
	if err != nil {
		slog.Error("Development run failed", "error", err)
		os.Exit(1)
	}

	printSummary(result)

	slog.Info("Reports written", "run_id", result.RunID)
	for _, path := range result.ReportPaths {
		slog.Info("Report", "path", path)
	}
}

// printSummary writes a per-origin ultimate table to stdout.
func printSummary(result *services.RunResult) {
	origins := make([]int, 0, len(result.Adjusted.Ultimates))
	for origin := range result.Adjusted.Ultimates {
		origins = append(origins, origin)
	}
	sort.Ints(origins)

	if result.Naive != nil {
		fmt.Printf("%-8s %14s %14s\n", "origin", "ultimate", "naive")
	} else {
		fmt.Printf("%-8s %14s\n", "origin", "ultimate")
	}

	var total, naiveTotal float64
	for _, origin := range origins {
		ultimate := result.Adjusted.Ultimates[origin]
		total += ultimate
		if result.Naive != nil {
			naive := result.Naive.Ultimates[origin]
			naiveTotal += naive
			fmt.Printf("%-8d %14.2f %14.2f\n", origin, ultimate, naive)
		} else {
			fmt.Printf("%-8d %14.2f\n", origin, ultimate)
		}
	}
	if result.Naive != nil {
		fmt.Printf("%-8s %14.2f %14.2f\n", "total", total, naiveTotal)
	} else {
		fmt.Printf("%-8s %14.2f\n", "total", total)
	}

	quarters := make([]int, 0, len(result.Adjusted.Relativities))
	for q := range result.Adjusted.Relativities {
		quarters = append(quarters, q)
	}
	sort.Ints(quarters)
	fmt.Println()
	fmt.Printf("%-8s %14s\n", "quarter", "relativity")
	for _, q := range quarters {
		fmt.Printf("%-8d %14.4f\n", q, result.Adjusted.Relativities[q])
	}
}
