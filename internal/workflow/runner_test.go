package workflow_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"chtagger/internal/activity"
	"chtagger/internal/config"
	"chtagger/internal/failure"
	"chtagger/internal/logging"
	"chtagger/internal/media/ffprobe"
	"chtagger/internal/testsupport"
	"chtagger/internal/transcript"
	"chtagger/internal/webvtt"
	"chtagger/internal/workflow"
)

const twoCues = `WEBVTT

00:00:00.000 --> 00:00:02.000
Hello there

00:00:02.000 --> 00:00:04.000
General Kenobi
`

func stereoProbe(channels int) workflow.Prober {
	return func(context.Context, string, string) (ffprobe.Result, error) {
		return ffprobe.Result{
			Streams: []ffprobe.Stream{{Index: 0, CodecType: "audio", Channels: channels}},
			Format:  ffprobe.Format{Duration: "4.0"},
		}, nil
	}
}

func writeInputs(t *testing.T, vtt string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	audio := testsupport.WriteFile(t, dir, "talk.wav", "RIFF")
	subs := testsupport.WriteFile(t, dir, "talk.vtt", vtt)
	return audio, subs
}

func TestRunTagsCuesByDominantChannel(t *testing.T) {
	audio, subs := writeInputs(t, twoCues)
	detector := activity.StaticDetector{
		transcript.Left:  {{Start: 0, End: 1.5}},
		transcript.Right: {{Start: 1.8, End: 4}},
	}
	runner := workflow.NewRunner(nil, nil,
		workflow.WithDetector(detector),
		workflow.WithProber(stereoProbe(2)),
		workflow.WithRunID(func() string { return "run-1" }),
	)

	result, err := runner.Run(context.Background(), audio, subs)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.RunID != "run-1" {
		t.Fatalf("unexpected run id %q", result.RunID)
	}
	if result.Transcript.Source != subs {
		t.Fatalf("unexpected source %q", result.Transcript.Source)
	}

	got := make([]transcript.Channel, 0, result.Transcript.Len())
	for _, cue := range result.Transcript.Cues {
		got = append(got, cue.Channel)
	}
	want := []transcript.Channel{transcript.Left, transcript.Right}
	if !slices.Equal(got, want) {
		t.Fatalf("channels = %v, want %v", got, want)
	}

	first := result.Transcript.Cues[0]
	if first.LeftActiveMS != 1500 || first.RightActiveMS != 200 {
		t.Fatalf("unexpected first cue activity %+v", first)
	}
	if result.Summary.Left != 1 || result.Summary.Right != 1 || result.Summary.None != 0 {
		t.Fatalf("unexpected summary %+v", result.Summary)
	}
	if result.DurationSeconds != 4 {
		t.Fatalf("unexpected duration %v", result.DurationSeconds)
	}
}

func TestRunParallelChannelsMatchesSequential(t *testing.T) {
	audio, subs := writeInputs(t, twoCues)
	detector := activity.StaticDetector{
		transcript.Left:  {{Start: 0, End: 1}},
		transcript.Right: {{Start: 0, End: 1}, {Start: 2, End: 4}},
	}

	run := func(parallel bool) []transcript.Cue {
		cfg := config.Default()
		cfg.Detector.ParallelChannels = parallel
		runner := workflow.NewRunner(&cfg, nil, workflow.WithDetector(detector), workflow.WithProber(stereoProbe(2)))
		result, err := runner.Run(context.Background(), audio, subs)
		if err != nil {
			t.Fatalf("Run(parallel=%v) returned error: %v", parallel, err)
		}
		return result.Transcript.Cues
	}

	sequential := run(false)
	parallel := run(true)
	if !slices.Equal(sequential, parallel) {
		t.Fatalf("parallel %+v differs from sequential %+v", parallel, sequential)
	}
	if sequential[0].Channel != transcript.None {
		t.Fatalf("expected tie on first cue to be None, got %v", sequential[0].Channel)
	}
	if sequential[1].Channel != transcript.Right {
		t.Fatalf("expected second cue Right, got %v", sequential[1].Channel)
	}
}

func TestRunRejectsMonoAudio(t *testing.T) {
	audio, subs := writeInputs(t, twoCues)
	runner := workflow.NewRunner(nil, nil,
		workflow.WithDetector(activity.StaticDetector{}),
		workflow.WithProber(stereoProbe(1)),
	)

	_, err := runner.Run(context.Background(), audio, subs)
	if !errors.Is(err, failure.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
}

func TestRunRejectsAudioWithoutStreams(t *testing.T) {
	audio, subs := writeInputs(t, twoCues)
	probe := func(context.Context, string, string) (ffprobe.Result, error) {
		return ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "video"}}}, nil
	}
	runner := workflow.NewRunner(nil, nil, workflow.WithDetector(activity.StaticDetector{}), workflow.WithProber(probe))

	_, err := runner.Run(context.Background(), audio, subs)
	if !errors.Is(err, failure.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
}

func TestRunReportsParseErrorBeforeProbing(t *testing.T) {
	audio, subs := writeInputs(t, "WEBVTT\n\n00:00:0x.000 --> 00:00:02.000\nbroken\n")
	probed := false
	probe := func(context.Context, string, string) (ffprobe.Result, error) {
		probed = true
		return ffprobe.Result{}, nil
	}
	runner := workflow.NewRunner(nil, nil, workflow.WithDetector(activity.StaticDetector{}), workflow.WithProber(probe))

	_, err := runner.Run(context.Background(), audio, subs)
	if !errors.Is(err, failure.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
	var perr *webvtt.ParseError
	if !errors.As(err, &perr) || perr.Line != 3 {
		t.Fatalf("expected parse error on line 3, got %v", err)
	}
	if probed {
		t.Fatal("expected audio probe to be skipped after parse failure")
	}
}

func TestRunMissingInputIsIOError(t *testing.T) {
	_, subs := writeInputs(t, twoCues)
	runner := workflow.NewRunner(nil, nil, workflow.WithDetector(activity.StaticDetector{}), workflow.WithProber(stereoProbe(2)))

	_, err := runner.Run(context.Background(), filepath.Join(t.TempDir(), "missing.wav"), subs)
	if !errors.Is(err, failure.ErrIO) {
		t.Fatalf("expected io error, got %v", err)
	}
}

func TestRunDetectorFailureAborts(t *testing.T) {
	audio, subs := writeInputs(t, twoCues)
	detector := activity.StaticDetector{transcript.Left: {{Start: 0, End: 1}}}
	runner := workflow.NewRunner(nil, nil, workflow.WithDetector(detector), workflow.WithProber(stereoProbe(2)))

	_, err := runner.Run(context.Background(), audio, subs)
	if err == nil {
		t.Fatal("expected error when right channel detection fails")
	}
	if failure.Kind(err) == "unknown" {
		t.Fatalf("expected classified error, got %v", err)
	}
}

func TestRunMissingProbeBinaryIsExternalTool(t *testing.T) {
	audio, subs := writeInputs(t, twoCues)
	cfg := config.Default()
	cfg.Tools.FFprobeBinary = filepath.Join(t.TempDir(), "no-ffprobe")
	runner := workflow.NewRunner(&cfg, nil, workflow.WithDetector(activity.StaticDetector{}))

	_, err := runner.Run(context.Background(), audio, subs)
	if !errors.Is(err, failure.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	audio, subs := writeInputs(t, twoCues)
	runner := workflow.NewRunner(nil, nil,
		workflow.WithDetector(activity.StaticDetector{transcript.Left: nil, transcript.Right: nil}),
		workflow.WithProber(stereoProbe(2)),
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, audio, subs)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunWithStubbedTools(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithMinSilence(250),
		testsupport.WithStubbedTools(
			testsupport.ProbeJSON(2, 4),
			testsupport.SilenceLog(4, [2]float64{2, 4}),
			testsupport.SilenceLog(4, [2]float64{0, 2}),
		),
	)
	audio, subs := writeInputs(t, twoCues)

	result, err := workflow.NewRunner(cfg, nil).Run(context.Background(), audio, subs)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	got := []transcript.Channel{result.Transcript.Cues[0].Channel, result.Transcript.Cues[1].Channel}
	want := []transcript.Channel{transcript.Left, transcript.Right}
	if !slices.Equal(got, want) {
		t.Fatalf("channels = %v, want %v", got, want)
	}
	if result.RunID == "" {
		t.Fatal("expected generated run id")
	}
}

func TestRunFfmpegDecodeFailureIsUnsupported(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithStubbedTools(testsupport.ProbeJSON(2, 4), "", ""),
		testsupport.WithFailingTool("ffmpeg", "Invalid data found when processing input"),
	)
	audio, subs := writeInputs(t, twoCues)

	_, err := workflow.NewRunner(cfg, nil).Run(context.Background(), audio, subs)
	if !errors.Is(err, failure.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
}

func TestRunLogsActivityTotals(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	audio, subs := writeInputs(t, twoCues)
	detector := activity.StaticDetector{
		transcript.Left:  {{Start: 0, End: 1.5}},
		transcript.Right: {{Start: 1.8, End: 4}},
	}
	runner := workflow.NewRunner(nil, logger,
		workflow.WithDetector(detector),
		workflow.WithProber(stereoProbe(2)),
	)
	if _, err := runner.Run(context.Background(), audio, subs); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	var completed map[string]any
	var cueDurations []float64
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", scanner.Text(), err)
		}
		switch entry["msg"] {
		case "tagging started":
			if entry["parallel"] != false {
				t.Fatalf("expected parallel=false, got %v", entry["parallel"])
			}
		case "cue tagged":
			cueDurations = append(cueDurations, entry["cue_ms"].(float64))
		case "tagging completed":
			completed = entry
		}
	}
	if completed == nil {
		t.Fatalf("missing completion log in %q", buf.String())
	}
	if completed["left_active_ms"] != float64(1500) || completed["right_active_ms"] != float64(2200) {
		t.Fatalf("unexpected activity totals: left=%v right=%v", completed["left_active_ms"], completed["right_active_ms"])
	}
	if !slices.Equal(cueDurations, []float64{2000, 2000}) {
		t.Fatalf("cue durations = %v, want [2000 2000]", cueDurations)
	}
}
