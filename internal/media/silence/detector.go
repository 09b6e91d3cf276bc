package silence

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"chtagger/internal/activity"
	"chtagger/internal/config"
	"chtagger/internal/failure"
	"chtagger/internal/logging"
)

// RunFunc executes ffmpeg and returns its stderr, where silencedetect reports.
type RunFunc func(ctx context.Context, binary string, args []string) ([]byte, error)

// Detector implements activity.Detector on top of ffmpeg.
type Detector struct {
	binary      string
	minSilence  float64
	thresholdDB float64
	logger      *slog.Logger
	run         RunFunc
}

// Option configures a Detector.
type Option func(*Detector)

// WithRunner swaps the ffmpeg executor, mainly for tests.
func WithRunner(fn RunFunc) Option {
	return func(d *Detector) {
		if fn != nil {
			d.run = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		d.logger = logging.NewComponentLogger(logger, "silence")
	}
}

// NewDetector builds a detector from the detector and tool settings of cfg.
func NewDetector(cfg *config.Config, opts ...Option) *Detector {
	defaults := config.Default()
	if cfg == nil {
		cfg = &defaults
	}
	d := &Detector{
		binary:      cfg.FFmpegBinary(),
		minSilence:  cfg.MinSilenceSeconds(),
		thresholdDB: cfg.Detector.SilenceThreshDB,
		logger:      logging.NewComponentLogger(nil, "silence"),
		run:         runFFmpeg,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NonSilent implements activity.Detector.
func (d *Detector) NonSilent(ctx context.Context, src activity.Source) ([]activity.Span, error) {
	index := src.Channel.Index()
	if index < 0 {
		return nil, fmt.Errorf("silence detect: channel %s has no stereo index", src.Channel)
	}

	args := d.args(src.Path, index)
	d.logger.Debug("running silencedetect",
		logging.String(logging.FieldChannel, src.Channel.String()),
		logging.String("filter", args[len(args)-4]),
	)

	stderr, err := d.run(ctx, d.binary, args)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		marker := failure.ToolMarker(err, failure.ErrUnsupportedFormat)
		return nil, failure.Wrap(marker, "silence", "ffmpeg", fmt.Sprintf("%s channel of %s", strings.ToLower(src.Channel.String()), src.Path), err)
	}

	report := ParseLog(stderr, src.DurationSeconds)
	duration := report.Duration
	spans := Invert(report.Silences, duration)

	d.logger.Debug("silencedetect finished",
		logging.String(logging.FieldChannel, src.Channel.String()),
		logging.Int("silences", len(report.Silences)),
		logging.Int("non_silent", len(spans)),
		logging.Float64("duration_seconds", duration),
	)
	return spans, nil
}

func (d *Detector) args(path string, channelIndex int) []string {
	filter := fmt.Sprintf("pan=mono|c0=c%d,silencedetect=noise=%sdB:d=%s",
		channelIndex,
		strconv.FormatFloat(d.thresholdDB, 'f', -1, 64),
		strconv.FormatFloat(d.minSilence, 'f', -1, 64),
	)
	return []string{
		"-hide_banner", "-nostats",
		"-i", path,
		"-vn",
		"-af", filter,
		"-f", "null",
		"-",
	}
}

func runFFmpeg(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stderr.Bytes(), fmt.Errorf("ffmpeg silencedetect: %w: %s", err, lastLine(stderr.String()))
	}
	return stderr.Bytes(), nil
}

func lastLine(output string) string {
	output = strings.TrimSpace(output)
	if idx := strings.LastIndexByte(output, '\n'); idx >= 0 {
		return strings.TrimSpace(output[idx+1:])
	}
	return output
}
