package preflight

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"chtagger/internal/config"
	"chtagger/internal/deps"
)

// CheckFileAccess verifies that path names an existing, readable regular file.
func CheckFileAccess(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "path is empty", Err: errors.New("empty path")}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s does not exist", path), Err: err}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s: stat failed", path), Err: err}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is a directory", path), Err: errors.New("not a regular file")}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not readable", path), Err: err}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckSystemDeps evaluates the external binaries needed for the given config.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Required for per-channel silence detection",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Required for stereo layout and duration inspection",
		},
	}
	return deps.CheckBinaries(requirements)
}
