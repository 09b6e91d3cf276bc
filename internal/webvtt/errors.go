package webvtt

import (
	"fmt"
	"strings"

	"chtagger/internal/failure"
)

// ParseError reports malformed WEBVTT input.
type ParseError struct {
	Path   string
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("webvtt")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Text != "" {
		fmt.Fprintf(&b, " (%q)", e.Text)
	}
	return b.String()
}

// Unwrap exposes the shared parse marker so callers can use errors.Is.
func (e *ParseError) Unwrap() error {
	return failure.ErrParse
}
