package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"chtagger/internal/tagging"
	"chtagger/internal/transcript"
)

// Supported output formats.
const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Document is everything a report can show about one run.
type Document struct {
	RunID     string           `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Audio     string           `json:"audio" yaml:"audio"`
	Subtitles string           `json:"subtitles" yaml:"subtitles"`
	Cues      []transcript.Cue `json:"cues" yaml:"cues"`
	Summary   tagging.Summary  `json:"summary" yaml:"summary"`
}

// Options selects the output shape.
type Options struct {
	Format       string
	ShowActivity bool
	TableStyle   string
}

// Write renders doc to w in the requested format.
func Write(w io.Writer, doc Document, opts Options) error {
	if doc.Cues == nil {
		doc.Cues = []transcript.Cue{}
	}
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatTable:
		return writeLine(w, renderTable(doc, opts, tableText))
	case FormatCSV:
		return writeCSV(w, doc, opts)
	case FormatMarkdown:
		return writeLine(w, renderTable(doc, opts, tableMarkdown))
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("report: unsupported format %q", opts.Format)
	}
}

func writeLine(w io.Writer, text string) error {
	if text == "" {
		return nil
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

// writeCSV emits RFC 4180 records with the same columns as the table.
func writeCSV(w io.Writer, doc Document, opts Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers(opts.ShowActivity)); err != nil {
		return err
	}
	if err := cw.WriteAll(cueRows(doc, opts)); err != nil {
		return err
	}
	return cw.Error()
}
