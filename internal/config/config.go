package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Detector contains the silence detection parameters applied to each channel.
type Detector struct {
	// MinSilenceMS is the shortest quiet stretch, in milliseconds, that counts as silence.
	MinSilenceMS int `toml:"min_silence_ms"`
	// SilenceThreshDB is the amplitude in dBFS below which audio is considered silent.
	SilenceThreshDB float64 `toml:"silence_thresh_db"`
	// ParallelChannels runs left and right detection concurrently.
	ParallelChannels bool `toml:"parallel_channels"`
}

// Tools names the external binaries used for audio inspection and analysis.
type Tools struct {
	FFmpegBinary  string `toml:"ffmpeg_binary"`
	FFprobeBinary string `toml:"ffprobe_binary"`
}

// Subtitles contains WEBVTT parsing options.
type Subtitles struct {
	SkipCueIdentifiers bool `toml:"skip_cue_identifiers"`
	RequireHeader      bool `toml:"require_header"`
}

// Output contains report rendering options.
type Output struct {
	Format       string `toml:"format"`
	ShowActivity bool   `toml:"show_activity"`
	TableStyle   string `toml:"table_style"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for chtagger.
//
// Configuration sections by subsystem:
//   - Detector: silence detection thresholds and channel scheduling
//   - Tools: ffmpeg/ffprobe executable names
//   - Subtitles: WEBVTT parser behaviour
//   - Output: report format and table appearance
//   - Logging: log format and level
type Config struct {
	Detector  Detector  `toml:"detector"`
	Tools     Tools     `toml:"tools"`
	Subtitles Subtitles `toml:"subtitles"`
	Output    Output    `toml:"output"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error; defaults are returned with exists=false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, fmt.Errorf("parse config %s: %s", resolvedPath, strict.String())
			}
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := expandPath(strings.TrimSpace(path))
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %q is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(defaultProjectConfig)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// MinSilenceSeconds returns the minimum silence duration in seconds.
func (c *Config) MinSilenceSeconds() float64 {
	return float64(c.Detector.MinSilenceMS) / 1000
}

// FFmpegBinary returns the ffmpeg executable used for silence detection.
func (c *Config) FFmpegBinary() string {
	return c.Tools.FFmpegBinary
}

// FFprobeBinary returns the ffprobe executable used for audio inspection.
func (c *Config) FFprobeBinary() string {
	return c.Tools.FFprobeBinary
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return buf.String(), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
