package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chtagger/internal/deps"
	"chtagger/internal/failure"
	"chtagger/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report configuration and external tool readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			lines := renderSectionHeader("Configuration", colorize)
			source := ctx.configPath
			if !ctx.configSeen {
				source = "defaults (no config file found)"
			}
			lines = append(lines,
				renderStatusLine("Config", statusOK, source, colorize),
				renderStatusLine("Min silence", statusInfo, fmt.Sprintf("%d ms", cfg.Detector.MinSilenceMS), colorize),
				renderStatusLine("Silence threshold", statusInfo, fmt.Sprintf("%g dBFS", cfg.Detector.SilenceThreshDB), colorize),
				renderStatusLine("Parallel channels", statusInfo, yesNo(cfg.Detector.ParallelChannels), colorize),
				renderStatusLine("Output format", statusInfo, cfg.Output.Format, colorize),
				"",
			)

			statuses := preflight.CheckSystemDeps(cfg)
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			lines = append(lines, dependencyLines(statuses, colorize)...)
			fmt.Fprintln(out, strings.Join(lines, "\n"))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				names := make([]string, 0, len(missing))
				for _, dep := range missing {
					names = append(names, dep.Command)
				}
				return failure.Wrap(failure.ErrExternalTool, "check", "", "missing "+strings.Join(names, ", "), nil)
			}
			return nil
		},
	}
}
