package main

import (
	"github.com/spf13/cobra"

	"chtagger/internal/logging"
	"chtagger/internal/report"
	"chtagger/internal/workflow"
)

func runTag(cmd *cobra.Command, ctx *commandContext, args []string) error {
	cfg, err := ctx.ensureConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}
	if len(args) > 2 {
		logger.Debug("ignoring extra arguments", logging.Any("extra", args[2:]))
	}
	audioPath, subtitlePath := args[0], args[1]

	result, err := workflow.NewRunner(cfg, logger).Run(cmd.Context(), audioPath, subtitlePath)
	if err != nil {
		return err
	}

	doc := report.Document{
		RunID:     result.RunID,
		Audio:     audioPath,
		Subtitles: subtitlePath,
		Cues:      result.Transcript.Cues,
		Summary:   result.Summary,
	}
	return report.Write(cmd.OutOrStdout(), doc, report.Options{
		Format:       cfg.Output.Format,
		ShowActivity: cfg.Output.ShowActivity,
		TableStyle:   cfg.Output.TableStyle,
	})
}
