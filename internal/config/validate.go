package config

import (
	"errors"
	"fmt"
	"math"
)

var (
	validOutputFormats = []string{"table", "json", "yaml", "csv", "markdown"}
	validTableStyles   = []string{"rounded", "light", "default", "bold", "double"}
	validLogFormats    = []string{"console", "json"}
	validLogLevels     = []string{"debug", "info", "warn", "error"}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDetector(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDetector() error {
	if c.Detector.MinSilenceMS <= 0 {
		return errors.New("detector.min_silence_ms must be positive")
	}
	thresh := c.Detector.SilenceThreshDB
	if math.IsNaN(thresh) || math.IsInf(thresh, 0) {
		return errors.New("detector.silence_thresh_db must be a finite number")
	}
	if thresh >= 0 {
		return fmt.Errorf("detector.silence_thresh_db must be below 0 dBFS, got %g", thresh)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if !contains(validOutputFormats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %v, got %q", validOutputFormats, c.Output.Format)
	}
	if !contains(validTableStyles, c.Output.TableStyle) {
		return fmt.Errorf("output.table_style must be one of %v, got %q", validTableStyles, c.Output.TableStyle)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !contains(validLogFormats, c.Logging.Format) {
		return fmt.Errorf("logging.format must be one of %v, got %q", validLogFormats, c.Logging.Format)
	}
	if !contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of %v, got %q", validLogLevels, c.Logging.Level)
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
