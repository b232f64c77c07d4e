package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"lossdev/internal/triangle"
)

// LoadOptions configures observation loading.
type LoadOptions struct {
	// Cumulative marks the amount column as cumulative per origin; values
	// are converted to incremental amounts on load so the core only ever
	// sees incremental data.
	Cumulative bool

	// RebaseOrigins shifts origin identifiers so the earliest becomes 1.
	// Needed for datasets keyed by calendar year (2017, 2018, ...). Note
	// that rebasing assumes the earliest origin starts at calendar
	// quarter 1.
	RebaseOrigins bool
}

// Column aliases accepted in header rows, lowercased.
var (
	originAliases      = []string{"origin", "origin_period", "accident_year", "accident_quarter", "ay", "uy"}
	developmentAliases = []string{"development", "development_period", "development_lag", "dev", "lag", "maturity"}
	amountAliases      = []string{"amount", "loss", "losses", "paid", "incurred", "value"}
)

// LoadFile reads observations from a CSV or Excel file, dispatching on the
// file extension.
func LoadFile(path string, opts LoadOptions) ([]triangle.Observation, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return ParseCSV(f, opts)
	case ".xlsx":
		return ParseExcelFile(path, opts)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

// ParseCSV reads observations from delimited data with a header row.
func ParseCSV(r io.Reader, opts LoadOptions) ([]triangle.Observation, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("csv has no data rows")
	}

	return parseRows(rows, opts)
}

// parseRows converts a header row plus data rows into observations.
func parseRows(rows [][]string, opts LoadOptions) ([]triangle.Observation, error) {
	originCol, devCol, amountCol, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	observations := make([]triangle.Observation, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2 // 1-based, after header

		if len(row) <= originCol || len(row) <= devCol || len(row) <= amountCol {
			return nil, fmt.Errorf("row %d: expected at least %d columns, got %d",
				line, maxInt(originCol, devCol, amountCol)+1, len(row))
		}

		origin, err := strconv.Atoi(strings.TrimSpace(row[originCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid origin %q: %w", line, row[originCol], err)
		}
		dev, err := strconv.Atoi(strings.TrimSpace(row[devCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid development %q: %w", line, row[devCol], err)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(row[amountCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount %q: %w", line, row[amountCol], err)
		}

		observations = append(observations, triangle.Observation{
			Origin:      origin,
			Development: dev,
			Amount:      amount,
		})
	}

	if opts.RebaseOrigins {
		observations = rebaseOrigins(observations)
	}

	if opts.Cumulative {
		return decumulate(observations)
	}
	return observations, nil
}

// resolveColumns matches header names against the known aliases.
func resolveColumns(header []string) (origin, development, amount int, err error) {
	origin, development, amount = -1, -1, -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		switch {
		case origin < 0 && matchesAlias(name, originAliases):
			origin = i
		case development < 0 && matchesAlias(name, developmentAliases):
			development = i
		case amount < 0 && matchesAlias(name, amountAliases):
			amount = i
		}
	}

	var missing []string
	if origin < 0 {
		missing = append(missing, "origin")
	}
	if development < 0 {
		missing = append(missing, "development")
	}
	if amount < 0 {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return 0, 0, 0, fmt.Errorf("header is missing columns: %s", strings.Join(missing, ", "))
	}
	return origin, development, amount, nil
}

func matchesAlias(name string, aliases []string) bool {
	for _, alias := range aliases {
		if name == alias {
			return true
		}
	}
	return false
}

// rebaseOrigins shifts origin identifiers so the earliest maps to 1.
func rebaseOrigins(observations []triangle.Observation) []triangle.Observation {
	if len(observations) == 0 {
		return observations
	}
	min := observations[0].Origin
	for _, o := range observations {
		if o.Origin < min {
			min = o.Origin
		}
	}
	if min == 1 {
		return observations
	}

	slog.Debug("rebasing origin identifiers", slog.Int("earliest", min))
	out := make([]triangle.Observation, len(observations))
	for i, o := range observations {
		o.Origin = o.Origin - min + 1
		out[i] = o
	}
	return out
}

// decumulate converts cumulative amounts to incremental ones per origin.
func decumulate(observations []triangle.Observation) ([]triangle.Observation, error) {
	tri, err := triangle.NewTriangle(observations)
	if err != nil {
		return nil, fmt.Errorf("decumulate: %w", err)
	}
	return tri.Incremental().Observations(), nil
}

func maxInt(values ...int) int {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
