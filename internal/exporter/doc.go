// Package exporter writes completed triangles and ultimate-loss summaries to
// CSV and Excel report files.
//
// The computational contract ends at the triangle package's DevelopedCell
// records; everything here is presentation: pivoting the sparse cells into a
// dense origin-by-development matrix and formatting it for spreadsheets.
package exporter
