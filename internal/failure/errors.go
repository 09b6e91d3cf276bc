// Package failure defines the error markers shared across chtagger stages.
//
// Every fatal condition is tagged with one of the sentinel markers so callers
// can classify it with errors.Is while the message keeps the stage, operation,
// and offending input for the user.
package failure

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

var (
	ErrParse             = errors.New("parse error")
	ErrIO                = errors.New("io error")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrExternalTool      = errors.New("external tool error")
	ErrConfiguration     = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short label for the marker carried by err, suitable for
// structured log fields.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, ErrExternalTool):
		return "external_tool"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	default:
		return "unknown"
	}
}

// ToolMarker picks the marker for an external command failure: a binary that
// could not be started is an ExternalTool error, anything the tool itself
// rejected gets fallback.
func ToolMarker(err error, fallback error) error {
	var execErr *exec.Error
	if errors.Is(err, exec.ErrNotFound) || errors.As(err, &execErr) {
		return ErrExternalTool
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && errors.Is(err, fs.ErrNotExist) {
		return ErrExternalTool
	}
	if fallback == nil {
		return ErrExternalTool
	}
	return fallback
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "failure"
	}
	return strings.Join(parts, ": ")
}
