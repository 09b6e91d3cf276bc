package config

import "strings"

func (c *Config) normalize() {
	c.normalizeTools()
	c.normalizeOutput()
	c.normalizeLogging()
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpegBinary = strings.TrimSpace(c.Tools.FFmpegBinary)
	if c.Tools.FFmpegBinary == "" {
		c.Tools.FFmpegBinary = defaultFFmpegBinary
	}
	c.Tools.FFprobeBinary = strings.TrimSpace(c.Tools.FFprobeBinary)
	if c.Tools.FFprobeBinary == "" {
		c.Tools.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultOutputFormat
	}
	if c.Output.Format == "md" {
		c.Output.Format = "markdown"
	}
	if c.Output.Format == "yml" {
		c.Output.Format = "yaml"
	}
	c.Output.TableStyle = strings.ToLower(strings.TrimSpace(c.Output.TableStyle))
	if c.Output.TableStyle == "" {
		c.Output.TableStyle = defaultTableStyle
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// Normalize applies canonical casing and defaults after callers override
// fields (for example from command-line flags).
func (c *Config) Normalize() {
	c.normalize()
}
