package tagging

import (
	"chtagger/internal/activity"
	"chtagger/internal/transcript"
)

// OverlapMS sums how much of [startMS, endMS) is covered by intervals.
func OverlapMS(intervals []activity.Interval, startMS, endMS int64) int64 {
	var total int64
	for _, iv := range intervals {
		lo := max(iv.StartMS, startMS)
		hi := min(iv.EndMS, endMS)
		if hi > lo {
			total += hi - lo
		}
	}
	return total
}

// Decide picks the channel with strictly more activity. Ties resolve to None.
func Decide(leftMS, rightMS int64) transcript.Channel {
	switch {
	case leftMS > rightMS:
		return transcript.Left
	case rightMS > leftMS:
		return transcript.Right
	default:
		return transcript.None
	}
}

// Tag returns a copy of cues with every channel assigned. Order and length
// are preserved and the input slice is not modified.
func Tag(cues []transcript.Cue, left, right []activity.Interval) []transcript.Cue {
	out := make([]transcript.Cue, len(cues))
	for i, cue := range cues {
		leftMS := OverlapMS(left, cue.StartMS, cue.EndMS)
		rightMS := OverlapMS(right, cue.StartMS, cue.EndMS)
		out[i] = cue.WithChannel(Decide(leftMS, rightMS), leftMS, rightMS)
	}
	return out
}

// TagTranscript tags every cue of t.
func TagTranscript(t transcript.Transcript, left, right []activity.Interval) transcript.Transcript {
	return transcript.Transcript{Source: t.Source, Cues: Tag(t.Cues, left, right)}
}
