package exporter

import (
	"fmt"
)

// formatAmount formats a loss amount for report output with exactly 2
// decimal places, so values like 13.4 appear as 13.40.
func formatAmount(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatFactor formats a relativity or development factor with 4 decimal
// places.
func formatFactor(f float64) string {
	return fmt.Sprintf("%.4f", f)
}

// formatInt formats an integer index for report output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
