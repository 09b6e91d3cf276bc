package transcript

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestChannelLabels(t *testing.T) {
	tests := []struct {
		ch    Channel
		long  string
		short string
		index int
	}{
		{None, "None", "None", -1},
		{Left, "Left", "L", 0},
		{Right, "Right", "R", 1},
	}
	for _, tt := range tests {
		if got := tt.ch.String(); got != tt.long {
			t.Fatalf("String() = %q, want %q", got, tt.long)
		}
		if got := tt.ch.Short(); got != tt.short {
			t.Fatalf("Short() = %q, want %q", got, tt.short)
		}
		if got := tt.ch.Index(); got != tt.index {
			t.Fatalf("Index() = %d, want %d", got, tt.index)
		}
	}
}

func TestWithChannelLeavesOriginalUntouched(t *testing.T) {
	original := Cue{StartMS: 1000, EndMS: 2000, Timing: "00:00:01.000 --> 00:00:02.000", Text: "Hello"}
	tagged := original.WithChannel(Left, 900, 100)
	if original.Channel != None || original.LeftActiveMS != 0 {
		t.Fatalf("original cue was modified: %+v", original)
	}
	if tagged.Channel != Left || tagged.LeftActiveMS != 900 || tagged.RightActiveMS != 100 {
		t.Fatalf("unexpected tagged cue: %+v", tagged)
	}
	if tagged.Text != original.Text || tagged.Timing != original.Timing {
		t.Fatalf("tagging changed cue payload: %+v", tagged)
	}
}

func TestDurationMS(t *testing.T) {
	if got := (Cue{StartMS: 3000, EndMS: 4500}).DurationMS(); got != 1500 {
		t.Fatalf("DurationMS = %d, want 1500", got)
	}
	if got := (Cue{StartMS: 5000, EndMS: 4000}).DurationMS(); got != 0 {
		t.Fatalf("expected inverted window to report 0, got %d", got)
	}
}

func TestCueJSONUsesReportKeys(t *testing.T) {
	data, err := json.Marshal(Cue{StartMS: 1, EndMS: 2, Channel: Right, Timing: "t", Text: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	for _, fragment := range []string{`"start_ms":1`, `"end_ms":2`, `"channel":"right"`, `"timestamp":"t"`, `"content":"x"`} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %s in %s", fragment, out)
		}
	}
}
