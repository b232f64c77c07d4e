package dataprocessing

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"lossdev/internal/triangle"
)

// ParseExcelFile reads observations from an Excel workbook. The first sheet
// whose header row carries recognizable origin/development/amount columns is
// used; leading non-header rows (titles, blank lines) are skipped.
func ParseExcelFile(path string, opts LoadOptions) ([]triangle.Observation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) < 2 {
			continue
		}

		headerRow := findHeaderRow(rows)
		if headerRow < 0 {
			continue
		}

		slog.Info("found observation data in sheet",
			slog.String("sheet_name", sheet),
			slog.Int("header_row", headerRow),
			slog.Int("total_rows", len(rows)))

		return parseRows(trimTrailingBlank(rows[headerRow:]), opts)
	}

	return nil, fmt.Errorf("no sheet with origin/development/amount columns found")
}

// findHeaderRow scans the first few rows for one that resolves to the three
// required columns.
func findHeaderRow(rows [][]string) int {
	limit := len(rows)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		if _, _, _, err := resolveColumns(rows[i]); err == nil {
			return i
		}
	}
	return -1
}

// trimTrailingBlank drops empty rows at the bottom of a sheet.
func trimTrailingBlank(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && isBlankRow(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
