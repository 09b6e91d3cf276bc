package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to dir/name and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ProbeJSON returns an ffprobe payload describing a single audio stream.
func ProbeJSON(channels int, durationSeconds float64) string {
	return fmt.Sprintf(`{
  "streams": [
    {"index": 0, "codec_name": "pcm_s16le", "codec_type": "audio", "sample_rate": "44100", "channels": %d, "duration": "%.3f"}
  ],
  "format": {"filename": "talk.wav", "nb_streams": 1, "format_name": "wav", "duration": "%.3f"}
}
`, channels, durationSeconds, durationSeconds)
}

// SilenceLog renders ffmpeg silencedetect stderr for the given silences,
// expressed as start/end pairs in seconds.
func SilenceLog(durationSeconds float64, silences ...[2]float64) string {
	hours := int(durationSeconds) / 3600
	minutes := int(durationSeconds) % 3600 / 60
	seconds := durationSeconds - float64(hours*3600+minutes*60)
	out := fmt.Sprintf("Input #0, wav, from 'talk.wav':\n  Duration: %02d:%02d:%05.2f, bitrate: 1411 kb/s\n", hours, minutes, seconds)
	for _, s := range silences {
		out += fmt.Sprintf("[silencedetect @ 0x1] silence_start: %g\n", s[0])
		out += fmt.Sprintf("[silencedetect @ 0x1] silence_end: %g | silence_duration: %g\n", s[1], s[1]-s[0])
	}
	return out
}
