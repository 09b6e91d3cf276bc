// Package config loads, normalizes, and validates chtagger configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads an optional TOML file. The Config type centralizes the
// silence-detection parameters, external tool names, subtitle parsing options,
// report formatting, and logging settings so the CLI and workflow packages
// discover every knob in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized values, canonical formats, and clear validation errors.
package config
