package silence

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"

	"chtagger/internal/activity"
)

var (
	startPattern    = regexp.MustCompile(`silence_start:\s*(-?[\d.]+)`)
	endPattern      = regexp.MustCompile(`silence_end:\s*(-?[\d.]+)`)
	durationPattern = regexp.MustCompile(`Duration:\s*(\d+):(\d+):(\d+(?:\.\d+)?)`)
)

// Report is what a silencedetect run printed.
type Report struct {
	Silences []activity.Span
	// Duration is the input duration in seconds: what ffmpeg printed, else the
	// caller's fallback, else 0.
	Duration float64
}

// ParseLog extracts silences and the input duration from ffmpeg stderr:
//
//	Duration: 00:01:02.50, start: 0.000000, bitrate: 1411 kb/s
//	[silencedetect @ 0x...] silence_start: 42.123
//	[silencedetect @ 0x...] silence_end: 43.456 | silence_duration: 1.333
//
// fallbackDuration stands in when no Duration line is present. A
// silence_start without a matching silence_end runs to the end of input.
func ParseLog(output []byte, fallbackDuration float64) Report {
	var report Report
	openStart := -1.0

	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if report.Duration == 0 {
			if m := durationPattern.FindStringSubmatch(line); m != nil {
				report.Duration = clockSeconds(m[1], m[2], m[3])
				continue
			}
		}
		if m := startPattern.FindStringSubmatch(line); m != nil {
			if value, err := strconv.ParseFloat(m[1], 64); err == nil {
				openStart = max(value, 0)
			}
			continue
		}
		if m := endPattern.FindStringSubmatch(line); m != nil && openStart >= 0 {
			if value, err := strconv.ParseFloat(m[1], 64); err == nil {
				report.Silences = append(report.Silences, activity.Span{Start: openStart, End: max(value, openStart)})
				openStart = -1
			}
		}
	}

	if report.Duration <= 0 {
		report.Duration = max(fallbackDuration, 0)
	}
	if openStart >= 0 {
		end := max(report.Duration, openStart)
		report.Silences = append(report.Silences, activity.Span{Start: openStart, End: end})
	}
	return report
}

func clockSeconds(hours, minutes, seconds string) float64 {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.ParseFloat(seconds, 64)
	return float64(h*3600+m*60) + s
}

// Invert returns the gaps between ordered silences over [0, duration]. When
// duration is unknown (<= 0) nothing is reported past the last silence.
func Invert(silences []activity.Span, duration float64) []activity.Span {
	var spans []activity.Span
	cursor := 0.0
	for _, s := range silences {
		if s.Start > cursor {
			spans = append(spans, activity.Span{Start: cursor, End: s.Start})
		}
		cursor = max(cursor, s.End)
	}
	if duration > cursor {
		spans = append(spans, activity.Span{Start: cursor, End: duration})
	}
	if len(silences) == 0 && duration <= 0 {
		return nil
	}
	return spans
}
