package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"chtagger/internal/config"
	"chtagger/internal/failure"
	"chtagger/internal/logging"
)

type cliFlags struct {
	configPath         string
	logLevel           string
	format             string
	minSilenceMS       int
	silenceThreshDB    float64
	parallel           bool
	showActivity       bool
	skipCueIdentifiers bool
}

type commandContext struct {
	flags *cliFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(flags *cliFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the configuration once and applies any flags the user
// set explicitly.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.configPath))
		if err != nil {
			c.configErr = failure.Wrap(failure.ErrConfiguration, "config", "load", "", err)
			return
		}
		c.applyFlags(cmd, cfg)
		cfg.Normalize()
		if err := cfg.Validate(); err != nil {
			c.configErr = failure.Wrap(failure.ErrConfiguration, "config", "flags", "", err)
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if flagChanged(cmd, "log-level") {
		cfg.Logging.Level = c.flags.logLevel
	}
	if flagChanged(cmd, "format") {
		cfg.Output.Format = c.flags.format
	}
	if flagChanged(cmd, "min-silence-ms") {
		cfg.Detector.MinSilenceMS = c.flags.minSilenceMS
	}
	if flagChanged(cmd, "silence-thresh-db") {
		cfg.Detector.SilenceThreshDB = c.flags.silenceThreshDB
	}
	if flagChanged(cmd, "parallel") {
		cfg.Detector.ParallelChannels = c.flags.parallel
	}
	if flagChanged(cmd, "show-activity") {
		cfg.Output.ShowActivity = c.flags.showActivity
	}
	if flagChanged(cmd, "skip-cue-identifiers") {
		cfg.Subtitles.SkipCueIdentifiers = c.flags.skipCueIdentifiers
	}
}

// logger builds a logger writing to the command's stderr.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
