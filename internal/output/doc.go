// Package output formats validation reports and canonical issue records for
// display or machine consumption.
//
// Validation reports support two formats:
//   - text: human-readable terminal output with PASS/FAIL coloring (default)
//   - json: full structured JSON report
//
// Canonical record export supports three:
//   - yaml: the normalized authoring format, ready to commit back
//   - json: the same records as JSON
//   - sarif: SARIF v2.1.0, one result per occurrence, for review tooling
//
// Use [GetReportWriter] or [GetExporter] to obtain a writer for a format
// string; [WriteReport] and [WriteExport] handle destination selection
// (file path or stdout).
package output
