package activity

import (
	"context"
	"fmt"
	"math"

	"chtagger/internal/transcript"
)

// Span is a non-silent region reported by a detector, in seconds.
type Span struct {
	Start float64
	End   float64
}

// Interval is a non-silent region in milliseconds. StartMS <= EndMS.
type Interval struct {
	StartMS int64
	EndMS   int64
}

// DurationMS returns the interval length.
func (i Interval) DurationMS() int64 {
	return i.EndMS - i.StartMS
}

// ToMillis converts detector spans to millisecond intervals, rounding to the
// nearest millisecond. Spans with an inverted range collapse to zero length
// at their start.
func ToMillis(spans []Span) []Interval {
	out := make([]Interval, 0, len(spans))
	for _, span := range spans {
		start := secondsToMS(span.Start)
		end := secondsToMS(span.End)
		if end < start {
			end = start
		}
		out = append(out, Interval{StartMS: start, EndMS: end})
	}
	return out
}

func secondsToMS(seconds float64) int64 {
	if math.IsNaN(seconds) || seconds < 0 {
		return 0
	}
	return int64(math.Round(seconds * 1000))
}

// TotalMS sums the interval lengths.
func TotalMS(intervals []Interval) int64 {
	var total int64
	for _, iv := range intervals {
		total += iv.DurationMS()
	}
	return total
}

// Source identifies one channel of an audio file.
type Source struct {
	Path    string
	Channel transcript.Channel
	// DurationSeconds is the probed stream duration, or 0 when unknown.
	DurationSeconds float64
}

// Detector finds the non-silent regions of a single audio channel. Results
// are ordered, non-overlapping, and expressed in seconds.
type Detector interface {
	NonSilent(ctx context.Context, src Source) ([]Span, error)
}

// StaticDetector returns canned spans per channel.
type StaticDetector map[transcript.Channel][]Span

// NonSilent implements Detector.
func (d StaticDetector) NonSilent(ctx context.Context, src Source) ([]Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	spans, ok := d[src.Channel]
	if !ok {
		return nil, fmt.Errorf("no activity recorded for %s channel", src.Channel)
	}
	return append([]Span(nil), spans...), nil
}
