package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"lossdev/internal/triangle"
)

// ExcelWriter writes triangle workbooks under a reports directory.
type ExcelWriter struct {
	dir string
}

// NewExcelWriter creates a new Excel writer writing under dir.
func NewExcelWriter(dir string) *ExcelWriter {
	return &ExcelWriter{dir: dir}
}

// WriteTriangleXLSX writes a workbook with the developed triangle on one
// sheet and the relativity table on another.
func (w *ExcelWriter) WriteTriangleXLSX(name string, cells []triangle.DevelopedCell, table triangle.RelativityTable) (string, error) {
	fullPath := filepath.Join(w.dir, name)

	slog.Info("writing Excel report",
		slog.String("path", fullPath),
		slog.Int("cell_count", len(cells)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const triangleSheet = "Triangle"
	if err := f.SetSheetName("Sheet1", triangleSheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return "", fmt.Errorf("create header style: %w", err)
	}

	headers, rows := PivotMatrix(cells)
	if err := writeSheet(f, triangleSheet, headers, rows, headerStyle); err != nil {
		return "", err
	}

	relSheet := "Relativities"
	if _, err := f.NewSheet(relSheet); err != nil {
		return "", fmt.Errorf("add relativity sheet: %w", err)
	}
	if err := writeSheet(f, relSheet, []string{"quarter", "relativity"}, relativityRows(table), headerStyle); err != nil {
		return "", err
	}

	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return fullPath, nil
}

// writeSheet fills a sheet with a styled header row followed by records.
func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string, headerStyle int) error {
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("resolve cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	endHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("resolve header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", endHeader, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

func relativityRows(table triangle.RelativityTable) [][]string {
	quarters := make([]int, 0, len(table))
	for q := range table {
		quarters = append(quarters, q)
	}
	sort.Ints(quarters)

	rows := make([][]string, 0, len(quarters))
	for _, q := range quarters {
		rows = append(rows, []string{formatInt(q), formatFactor(table[q])})
	}
	return rows
}
