// Package report renders tagged transcripts for the terminal or for other
// tools: go-pretty tables (also as CSV and Markdown) and JSON/YAML documents
// that carry the cues together with a per-channel summary.
package report
