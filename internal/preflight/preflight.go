package preflight

import (
	"chtagger/internal/failure"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	Err    error
}

// CheckInputs verifies that the audio and subtitle files can be read.
// The first failing check is returned as an IO error.
func CheckInputs(audioPath, subtitlePath string) error {
	results := []Result{
		CheckFileAccess("audio file", audioPath),
		CheckFileAccess("subtitle file", subtitlePath),
	}
	for _, result := range results {
		if result.Passed {
			continue
		}
		return failure.Wrap(failure.ErrIO, "preflight", result.Name, result.Detail, result.Err)
	}
	return nil
}
