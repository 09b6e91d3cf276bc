package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler prints one line per record:
//
//	2024-05-01T10:00:00Z INFO workflow: tagging completed run_id=... cues=12
//
// A top-level component attribute becomes the message prefix. Attributes
// added through WithAttrs are rendered once and reused for every record.
type consoleHandler struct {
	out        *syncWriter
	level      slog.Level
	withSource bool
	component  string
	group      string
	fields     string
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) write(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(p)
	return err
}

func newConsoleHandler(w io.Writer, level slog.Level, withSource bool) *consoleHandler {
	return &consoleHandler{out: &syncWriter{w: w}, level: level, withSource: withSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	component := h.component
	var fields strings.Builder
	fields.WriteString(h.fields)
	record.Attrs(func(attr slog.Attr) bool {
		if h.takesComponent(component, attr) {
			component = attrString(attr.Value)
			return true
		}
		writeField(&fields, h.group, attr)
		return true
	})

	stamp := record.Time
	if stamp.IsZero() {
		stamp = time.Now()
	}

	var line strings.Builder
	line.WriteString(stamp.UTC().Format(time.RFC3339))
	line.WriteByte(' ')
	line.WriteString(levelLabel(record.Level))
	line.WriteByte(' ')
	if component != "" {
		line.WriteString(component)
		line.WriteString(": ")
	}
	if msg := strings.TrimSpace(record.Message); msg != "" {
		line.WriteString(msg)
	} else {
		line.WriteString("(no message)")
	}
	if h.withSource {
		if src := record.Source(); src != nil && src.File != "" {
			line.WriteString(" [" + filepath.Base(src.File) + ":" + strconv.Itoa(src.Line) + "]")
		}
	}
	line.WriteString(fields.String())
	line.WriteByte('\n')
	return h.out.write([]byte(line.String()))
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	var fields strings.Builder
	fields.WriteString(h.fields)
	for _, attr := range attrs {
		if next.takesComponent(next.component, attr) {
			next.component = attrString(attr.Value)
			continue
		}
		writeField(&fields, h.group, attr)
	}
	next.fields = fields.String()
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = h.group + name + "."
	return &next
}

// takesComponent reports whether attr sets the line prefix. Only the first
// ungrouped component attribute counts.
func (h *consoleHandler) takesComponent(current string, attr slog.Attr) bool {
	return current == "" && h.group == "" && attr.Key == FieldComponent
}

func writeField(b *strings.Builder, prefix string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		nested := prefix
		if attr.Key != "" {
			nested += attr.Key + "."
		}
		for _, member := range value.Group() {
			writeField(b, nested, member)
		}
		return
	}
	key := strings.TrimSuffix(prefix+attr.Key, ".")
	if key == "" {
		return
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(formatValue(value))
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
