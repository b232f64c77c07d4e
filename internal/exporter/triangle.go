package exporter

import (
	"fmt"
	"sort"

	"lossdev/internal/triangle"
)

// PivotMatrix arranges developed cells into a dense table keyed by origin
// (rows) and development lag (columns). Cells absent from the input are left
// blank, distinguishing missing from zero.
func PivotMatrix(cells []triangle.DevelopedCell) (headers []string, rows [][]string) {
	maxOrigin, maxDev := 0, 0
	byCell := make(map[triangle.Cell]triangle.DevelopedCell, len(cells))
	for _, dc := range cells {
		byCell[triangle.Cell{Origin: dc.Origin, Development: dc.Development}] = dc
		if dc.Origin > maxOrigin {
			maxOrigin = dc.Origin
		}
		if dc.Development > maxDev {
			maxDev = dc.Development
		}
	}

	headers = make([]string, 0, maxDev+1)
	headers = append(headers, "origin")
	for dev := 1; dev <= maxDev; dev++ {
		headers = append(headers, fmt.Sprintf("dev_%d", dev))
	}

	rows = make([][]string, 0, maxOrigin)
	for origin := 1; origin <= maxOrigin; origin++ {
		row := make([]string, 0, maxDev+1)
		row = append(row, formatInt(origin))
		for dev := 1; dev <= maxDev; dev++ {
			if dc, ok := byCell[triangle.Cell{Origin: origin, Development: dev}]; ok {
				row = append(row, formatAmount(dc.Amount))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return headers, rows
}

// WriteTriangleCSV writes the completed triangle as a dense pivot table.
func (w *CSVWriter) WriteTriangleCSV(name string, cells []triangle.DevelopedCell) (string, error) {
	headers, rows := PivotMatrix(cells)
	return w.WriteCSV(name, WriteOptions{
		Headers:   headers,
		Records:   rows,
		BOMPrefix: true,
	})
}

// WriteUltimatesCSV writes per-origin ultimates with the observed/forecast
// split, sorted by origin.
func (w *CSVWriter) WriteUltimatesCSV(name string, cells []triangle.DevelopedCell) (string, error) {
	type split struct {
		observed float64
		forecast float64
	}
	totals := make(map[int]*split)
	for _, dc := range cells {
		s := totals[dc.Origin]
		if s == nil {
			s = &split{}
			totals[dc.Origin] = s
		}
		if dc.Source == triangle.ProvenanceForecast {
			s.forecast += dc.Amount
		} else {
			s.observed += dc.Amount
		}
	}

	origins := make([]int, 0, len(totals))
	for origin := range totals {
		origins = append(origins, origin)
	}
	sort.Ints(origins)

	records := make([][]string, 0, len(origins))
	for _, origin := range origins {
		s := totals[origin]
		records = append(records, []string{
			formatInt(origin),
			formatAmount(s.observed),
			formatAmount(s.forecast),
			formatAmount(s.observed + s.forecast),
		})
	}

	return w.WriteCSV(name, WriteOptions{
		Headers:   []string{"origin", "observed", "forecast", "ultimate"},
		Records:   records,
		BOMPrefix: true,
	})
}
