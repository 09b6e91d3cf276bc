package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"chtagger/internal/activity"
	"chtagger/internal/failure"
	"chtagger/internal/logging"
	"chtagger/internal/preflight"
	"chtagger/internal/transcript"
	"chtagger/internal/webvtt"
)

const (
	stagePreflight = "preflight"
	stageSubtitles = "subtitles"
	stageProbe     = "probe"
	stageDetect    = "detect"
)

func (r *Runner) preflight(audioPath, subtitlePath string) error {
	return preflight.CheckInputs(audioPath, subtitlePath)
}

func (r *Runner) readSubtitles(path string) (transcript.Transcript, error) {
	return webvtt.ReadFile(path, webvtt.Options{
		SkipCueIdentifiers: r.cfg.Subtitles.SkipCueIdentifiers,
		RequireHeader:      r.cfg.Subtitles.RequireHeader,
	})
}

// checkStereo verifies the first audio stream has exactly two channels and
// returns the probed duration in seconds (0 when unknown).
func (r *Runner) checkStereo(ctx context.Context, path string) (float64, error) {
	result, err := r.probe(ctx, r.cfg.FFprobeBinary(), path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		return 0, failure.Wrap(failure.ToolMarker(err, failure.ErrUnsupportedFormat), stageProbe, "ffprobe", path, err)
	}
	stream, ok := result.FirstAudioStream()
	if !ok {
		return 0, failure.Wrap(failure.ErrUnsupportedFormat, stageProbe, "", fmt.Sprintf("%s has no audio stream", path), nil)
	}
	if stream.Channels != 2 {
		return 0, failure.Wrap(failure.ErrUnsupportedFormat, stageProbe, "", fmt.Sprintf("%s: expected 2 channels, found %d", path, stream.Channels), nil)
	}
	return result.DurationSeconds(), nil
}

func (r *Runner) detect(ctx context.Context, path string, duration float64) ([]activity.Interval, []activity.Interval, error) {
	sources := [2]activity.Source{
		{Path: path, Channel: transcript.Left, DurationSeconds: duration},
		{Path: path, Channel: transcript.Right, DurationSeconds: duration},
	}
	var spans [2][]activity.Span

	if r.cfg.Detector.ParallelChannels {
		group, groupCtx := errgroup.WithContext(ctx)
		for i := range sources {
			group.Go(func() error {
				found, err := r.detectChannel(groupCtx, sources[i])
				spans[i] = found
				return err
			})
		}
		if err := group.Wait(); err != nil {
			return nil, nil, err
		}
	} else {
		for i := range sources {
			found, err := r.detectChannel(ctx, sources[i])
			if err != nil {
				return nil, nil, err
			}
			spans[i] = found
		}
	}

	return activity.ToMillis(spans[0]), activity.ToMillis(spans[1]), nil
}

func (r *Runner) detectChannel(ctx context.Context, src activity.Source) ([]activity.Span, error) {
	spans, err := r.detector.NonSilent(ctx, src)
	if err == nil {
		return spans, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return nil, err
	}
	if failure.Kind(err) != "unknown" {
		return nil, err
	}
	return nil, failure.Wrap(failure.ToolMarker(err, failure.ErrUnsupportedFormat), stageDetect, src.Channel.String(), src.Path, err)
}

func (r *Runner) logDecisions(ctx context.Context, logger *slog.Logger, doc transcript.Transcript) {
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for i, cue := range doc.Cues {
		reason := fmt.Sprintf("left %d ms, right %d ms", cue.LeftActiveMS, cue.RightActiveMS)
		attrs := append(
			logging.DecisionAttrs("cue_channel", cue.Channel.String(), reason),
			logging.Int("cue", i+1),
			logging.Int64("start_ms", cue.StartMS),
			logging.Int64("cue_ms", cue.DurationMS()),
		)
		logger.Debug("cue tagged", logging.Args(attrs...)...)
	}
}

// warnOutOfRange flags cues that end past the probed audio, which usually
// means the subtitle file belongs to a different recording.
func (r *Runner) warnOutOfRange(logger *slog.Logger, doc transcript.Transcript, duration float64) {
	if duration <= 0 {
		return
	}
	limit := int64(duration * 1000)
	late := 0
	for _, cue := range doc.Cues {
		if cue.EndMS > limit {
			late++
		}
	}
	if late == 0 {
		return
	}
	logger.Warn("cues extend past end of audio",
		logging.String(logging.FieldEventType, "cue_out_of_range"),
		logging.Int("cues", late),
		logging.Int64("audio_ms", limit),
	)
}

func (r *Runner) fail(logger *slog.Logger, stage string, err error) error {
	logger.Debug("stage failed",
		logging.String(logging.FieldEventType, "stage_failure"),
		logging.String("stage", stage),
		logging.String(logging.FieldErrorKind, failure.Kind(err)),
		logging.Error(err),
	)
	return err
}
