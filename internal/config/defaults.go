package config

const (
	defaultConfigPath      = "~/.config/chtagger/config.toml"
	defaultProjectConfig   = "chtagger.toml"
	defaultMinSilenceMS    = 1000
	defaultSilenceThreshDB = -50.0
	defaultFFmpegBinary    = "ffmpeg"
	defaultFFprobeBinary   = "ffprobe"
	defaultOutputFormat    = "table"
	defaultTableStyle      = "rounded"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Detector: Detector{
			MinSilenceMS:    defaultMinSilenceMS,
			SilenceThreshDB: defaultSilenceThreshDB,
		},
		Tools: Tools{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Output: Output{
			Format:     defaultOutputFormat,
			TableStyle: defaultTableStyle,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
