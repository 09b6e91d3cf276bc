// Package preflight verifies the inputs and external tools a tagging run
// needs before any expensive work starts.
//
// The workflow runner calls CheckInputs so a missing or unreadable file fails
// fast with an IO error, and the CLI "check" command uses CheckSystemDeps to
// report whether ffmpeg and ffprobe resolve.
package preflight
