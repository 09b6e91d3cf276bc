package transcript

import (
	"encoding/json"
	"strings"
)

// Channel identifies the stereo channel a cue was attributed to.
type Channel int

const (
	// None means neither channel was more active (including ties and 0/0).
	None Channel = iota
	Left
	Right
)

// String returns the long channel name.
func (c Channel) String() string {
	switch c {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "None"
	}
}

// Short returns the compact label used in tabular output.
func (c Channel) Short() string {
	switch c {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return "None"
	}
}

// Index returns the zero-based stereo channel index (0 for Left, 1 for Right)
// or -1 for None.
func (c Channel) Index() int {
	switch c {
	case Left:
		return 0
	case Right:
		return 1
	default:
		return -1
	}
}

func (c Channel) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(c.String())), nil
}

var _ json.Marshaler = Cue{}

// Cue is one WEBVTT cue with its attributed channel.
type Cue struct {
	StartMS int64
	EndMS   int64
	Channel Channel
	// Timing is the raw cue-timing line as it appeared in the source.
	Timing string
	Text   string
	// LeftActiveMS and RightActiveMS record the non-silent overlap measured
	// for each channel when the cue was tagged.
	LeftActiveMS  int64
	RightActiveMS int64
}

// DurationMS returns the cue window length; negative windows report zero.
func (c Cue) DurationMS() int64 {
	if c.EndMS < c.StartMS {
		return 0
	}
	return c.EndMS - c.StartMS
}

// WithChannel returns a copy of the cue carrying the decided channel and the
// measured per-channel activity.
func (c Cue) WithChannel(ch Channel, leftMS, rightMS int64) Cue {
	c.Channel = ch
	c.LeftActiveMS = leftMS
	c.RightActiveMS = rightMS
	return c
}

type cueJSON struct {
	StartMS       int64   `json:"start_ms" yaml:"start_ms"`
	EndMS         int64   `json:"end_ms" yaml:"end_ms"`
	Channel       Channel `json:"channel" yaml:"channel"`
	Timing        string  `json:"timestamp" yaml:"timestamp"`
	Text          string  `json:"content" yaml:"content"`
	LeftActiveMS  int64   `json:"left_active_ms" yaml:"left_active_ms"`
	RightActiveMS int64   `json:"right_active_ms" yaml:"right_active_ms"`
}

// MarshalJSON emits snake_case keys matching the report column names.
func (c Cue) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.record())
}

// MarshalYAML mirrors MarshalJSON for YAML reports.
func (c Cue) MarshalYAML() (any, error) {
	return c.record(), nil
}

func (c Cue) record() cueJSON {
	return cueJSON{
		StartMS:       c.StartMS,
		EndMS:         c.EndMS,
		Channel:       c.Channel,
		Timing:        c.Timing,
		Text:          c.Text,
		LeftActiveMS:  c.LeftActiveMS,
		RightActiveMS: c.RightActiveMS,
	}
}

// Transcript is the ordered cue sequence read from one WEBVTT file.
type Transcript struct {
	Source string
	Cues   []Cue
}

// Len returns the number of cues.
func (t Transcript) Len() int {
	return len(t.Cues)
}
