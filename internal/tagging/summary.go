package tagging

import "chtagger/internal/transcript"

// Summary counts tagged cues per channel.
type Summary struct {
	Cues          int   `json:"cues" yaml:"cues"`
	Left          int   `json:"left" yaml:"left"`
	Right         int   `json:"right" yaml:"right"`
	None          int   `json:"none" yaml:"none"`
	LeftActiveMS  int64 `json:"left_active_ms" yaml:"left_active_ms"`
	RightActiveMS int64 `json:"right_active_ms" yaml:"right_active_ms"`
}

// Summarize tallies the channel assignments of tagged cues.
func Summarize(cues []transcript.Cue) Summary {
	s := Summary{Cues: len(cues)}
	for _, cue := range cues {
		switch cue.Channel {
		case transcript.Left:
			s.Left++
		case transcript.Right:
			s.Right++
		default:
			s.None++
		}
		s.LeftActiveMS += cue.LeftActiveMS
		s.RightActiveMS += cue.RightActiveMS
	}
	return s
}
