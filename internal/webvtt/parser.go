package webvtt

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"chtagger/internal/transcript"
)

const (
	timingSeparator = "-->"
	headerMagic     = "WEBVTT"
	byteOrderMark   = "\ufeff"
)

// Options adjusts parser behaviour beyond the default line-oriented rules.
type Options struct {
	// SkipCueIdentifiers stops appending text to a cue once a blank line has
	// ended its payload, so cue identifiers and NOTE blocks that precede the
	// next timing line are dropped instead of joined into the previous cue.
	SkipCueIdentifiers bool
	// RequireHeader rejects input whose first non-blank line is not a WEBVTT
	// signature.
	RequireHeader bool
}

// cueBuilder is the cue currently under construction.
type cueBuilder struct {
	cue    transcript.Cue
	parts  []string
	closed bool
}

func (b *cueBuilder) add(line string, opts Options) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		b.closed = true
		return
	}
	if b.closed && opts.SkipCueIdentifiers {
		return
	}
	b.parts = append(b.parts, trimmed)
}

func (b *cueBuilder) finish() transcript.Cue {
	cue := b.cue
	cue.Text = norm.NFC.String(strings.Join(b.parts, " "))
	return cue
}

// Parse converts WEBVTT content into cues in order of appearance. Every cue
// is returned with Channel set to transcript.None.
func Parse(content string, opts Options) ([]transcript.Cue, error) {
	lines := splitLines(content)
	if opts.RequireHeader {
		if err := checkHeader(lines); err != nil {
			return nil, err
		}
	}

	var (
		cues    []transcript.Cue
		current *cueBuilder
	)
	for i, line := range lines {
		if !strings.Contains(line, timingSeparator) {
			if current != nil {
				current.add(line, opts)
			}
			continue
		}
		if current != nil {
			cues = append(cues, current.finish())
		}
		start, end, err := parseTimingLine(line)
		if err != nil {
			err.Line = i + 1
			err.Text = line
			return nil, err
		}
		current = &cueBuilder{cue: transcript.Cue{
			StartMS: start,
			EndMS:   end,
			Channel: transcript.None,
			Timing:  line,
		}}
	}
	if current != nil {
		cues = append(cues, current.finish())
	}
	return cues, nil
}

// parseTimingLine splits "start --> end [settings]" into millisecond bounds.
func parseTimingLine(line string) (int64, int64, *ParseError) {
	parts := strings.Split(line, timingSeparator)
	if len(parts) != 2 {
		return 0, 0, &ParseError{Reason: "timing line must contain exactly one start and one end timestamp"}
	}
	startText := strings.TrimSpace(parts[0])
	endFields := strings.Fields(parts[1])
	if startText == "" || len(endFields) == 0 {
		return 0, 0, &ParseError{Reason: "timing line must contain exactly one start and one end timestamp"}
	}
	start, err := ParseTimestamp(startText)
	if err != nil {
		return 0, 0, &ParseError{Reason: "invalid start timestamp " + strconv.Quote(startText)}
	}
	end, err := ParseTimestamp(endFields[0])
	if err != nil {
		return 0, 0, &ParseError{Reason: "invalid end timestamp " + strconv.Quote(endFields[0])}
	}
	return start, end, nil
}

func checkHeader(lines []string) error {
	for i, line := range lines {
		trimmed := strings.TrimSpace(strings.TrimPrefix(line, byteOrderMark))
		if trimmed == "" {
			continue
		}
		if trimmed == headerMagic || strings.HasPrefix(trimmed, headerMagic+" ") || strings.HasPrefix(trimmed, headerMagic+"\t") {
			return nil
		}
		return &ParseError{Line: i + 1, Text: line, Reason: "missing WEBVTT header"}
	}
	return &ParseError{Reason: "missing WEBVTT header"}
}

func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}
