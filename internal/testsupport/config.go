package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"chtagger/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config backed by a unique temp directory and
// applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	builder := &configBuilder{
		t:       t,
		baseDir: t.TempDir(),
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithMinSilence overrides the minimum silence length.
func WithMinSilence(ms int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Detector.MinSilenceMS = ms
	}
}

// WithStubbedTools writes ffprobe and ffmpeg stand-ins and points the config
// at them. ffprobe prints probeJSON; ffmpeg prints leftLog or rightLog on
// stderr depending on which channel the pan filter selects.
func WithStubbedTools(probeJSON, leftLog, rightLog string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}

		probeOut := writeFixture(b.t, binDir, "probe.json", probeJSON)
		leftOut := writeFixture(b.t, binDir, "left.log", leftLog)
		rightOut := writeFixture(b.t, binDir, "right.log", rightLog)

		ffprobe := "#!/bin/sh\ncat '" + probeOut + "'\n"
		ffmpeg := "#!/bin/sh\n" +
			"case \"$*\" in\n" +
			"  *c0=c0,*) cat '" + leftOut + "' >&2 ;;\n" +
			"  *c0=c1,*) cat '" + rightOut + "' >&2 ;;\n" +
			"  *) echo 'unexpected filter' >&2; exit 1 ;;\n" +
			"esac\n"

		b.cfg.Tools.FFprobeBinary = writeScript(b.t, binDir, "ffprobe", ffprobe)
		b.cfg.Tools.FFmpegBinary = writeScript(b.t, binDir, "ffmpeg", ffmpeg)
	}
}

// WithFailingTool replaces the named tool with a script that prints message
// and exits non-zero.
func WithFailingTool(name, message string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := "#!/bin/sh\necho '" + message + "' >&2\nexit 1\n"
		path := writeScript(b.t, binDir, name+"-failing", script)
		switch name {
		case "ffprobe":
			b.cfg.Tools.FFprobeBinary = path
		case "ffmpeg":
			b.cfg.Tools.FFmpegBinary = path
		default:
			b.t.Fatalf("unknown tool %q", name)
		}
	}
}

func writeFixture(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

func writeScript(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}
