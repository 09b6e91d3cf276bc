package main

import (
	"github.com/spf13/cobra"
)

const usageLine = "chtagger [flags] <audio_file_path> <webvtt_file_path>"

func newRootCommand() *cobra.Command {
	flags := &cliFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:   usageLine,
		Short: "Tag WEBVTT cues with the stereo channel that was speaking",
		Long: "chtagger measures non-silent audio on the left and right channels of a stereo\n" +
			"recording and attributes every subtitle cue to the channel that was more\n" +
			"active during the cue. Ties, including cues with no activity, are tagged None.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			if cmd == cmd.Root() && len(args) < 2 {
				return nil
			}
			_, err := ctx.ensureConfig(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return writeUsage(cmd)
			}
			return runTag(cmd, ctx, args)
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	persistent.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	local := rootCmd.Flags()
	local.StringVarP(&flags.format, "format", "f", "", "Output format (table, json, yaml, csv, markdown)")
	local.IntVar(&flags.minSilenceMS, "min-silence-ms", 0, "Minimum silence length in milliseconds")
	local.Float64Var(&flags.silenceThreshDB, "silence-thresh-db", 0, "Silence threshold in dBFS (negative)")
	local.BoolVar(&flags.parallel, "parallel", false, "Analyze both channels concurrently")
	local.BoolVar(&flags.showActivity, "show-activity", false, "Add per-channel active milliseconds to the output")
	local.BoolVar(&flags.skipCueIdentifiers, "skip-cue-identifiers", false, "Do not append cue identifiers and NOTE blocks to the previous cue")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))

	return rootCmd
}

// writeUsage prints the usage block to stdout; running without both inputs
// is not an error.
func writeUsage(cmd *cobra.Command) error {
	_, err := cmd.OutOrStdout().Write([]byte(cmd.UsageString()))
	return err
}
