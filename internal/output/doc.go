// Package output formats conflict reports for display or machine
// consumption.
//
// Three formats are supported:
//   - text     — human-readable terminal output (default)
//   - json     — full structured JSON report
//   - markdown — PR-comment-friendly conflict table
//
// Use [GetWriter] to obtain a [Writer] for a given format string, or
// [WriteReport] to select the format and destination in one call.
package output
