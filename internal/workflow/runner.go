package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"chtagger/internal/activity"
	"chtagger/internal/config"
	"chtagger/internal/logging"
	"chtagger/internal/media/ffprobe"
	"chtagger/internal/media/silence"
	"chtagger/internal/tagging"
	"chtagger/internal/transcript"
)

// Prober inspects an audio file.
type Prober func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Result is the outcome of a successful run.
type Result struct {
	RunID           string
	Transcript      transcript.Transcript
	Summary         tagging.Summary
	Left            []activity.Interval
	Right           []activity.Interval
	DurationSeconds float64
	Elapsed         time.Duration
}

// Runner coordinates a single tagging pass.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	detector activity.Detector
	probe    Prober
	newRunID func() string
}

// Option configures optional Runner behavior.
type Option func(*Runner)

// WithDetector replaces the ffmpeg-backed activity detector.
func WithDetector(detector activity.Detector) Option {
	return func(r *Runner) {
		if detector != nil {
			r.detector = detector
		}
	}
}

// WithProber replaces the ffprobe inspection.
func WithProber(probe Prober) Option {
	return func(r *Runner) {
		if probe != nil {
			r.probe = probe
		}
	}
}

// WithRunID fixes the run identifier generator.
func WithRunID(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newRunID = fn
		}
	}
}

// NewRunner constructs a runner. A nil cfg uses defaults and a nil logger
// discards output.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...Option) *Runner {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Runner{
		cfg:      cfg,
		logger:   logger,
		probe:    ffprobe.Inspect,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.detector == nil {
		r.detector = silence.NewDetector(cfg, silence.WithLogger(logger))
	}
	return r
}

// Run tags every cue of subtitlePath with the channel most active in
// audioPath during that cue.
func (r *Runner) Run(ctx context.Context, audioPath, subtitlePath string) (Result, error) {
	started := time.Now()
	runID := r.newRunID()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.NewComponentLogger(logging.WithContext(ctx, r.logger), "workflow")

	logger.Debug("tagging started",
		logging.String("audio", audioPath),
		logging.String("subtitles", subtitlePath),
		logging.Bool("parallel", r.cfg.Detector.ParallelChannels),
	)

	if err := r.preflight(audioPath, subtitlePath); err != nil {
		return Result{}, r.fail(logger, stagePreflight, err)
	}

	doc, err := r.readSubtitles(subtitlePath)
	if err != nil {
		return Result{}, r.fail(logger, stageSubtitles, err)
	}
	logger.Debug("subtitles parsed", logging.Int("cues", doc.Len()))

	duration, err := r.checkStereo(ctx, audioPath)
	if err != nil {
		return Result{}, r.fail(logger, stageProbe, err)
	}

	left, right, err := r.detect(ctx, audioPath, duration)
	if err != nil {
		return Result{}, r.fail(logger, stageDetect, err)
	}

	tagged := tagging.TagTranscript(doc, left, right)
	summary := tagging.Summarize(tagged.Cues)
	r.logDecisions(ctx, logger, tagged)
	r.warnOutOfRange(logger, tagged, duration)

	elapsed := time.Since(started)
	logger.Debug("tagging completed",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("cues", summary.Cues),
		logging.Int("left", summary.Left),
		logging.Int("right", summary.Right),
		logging.Int("none", summary.None),
		logging.Int64("left_active_ms", activity.TotalMS(left)),
		logging.Int64("right_active_ms", activity.TotalMS(right)),
		logging.Duration("elapsed", elapsed),
	)

	return Result{
		RunID:           runID,
		Transcript:      tagged,
		Summary:         summary,
		Left:            left,
		Right:           right,
		DurationSeconds: duration,
		Elapsed:         elapsed,
	}, nil
}
