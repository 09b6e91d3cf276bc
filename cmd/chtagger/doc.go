// Package main hosts the chtagger CLI entrypoint and command graph.
//
// The root command takes an audio file and a WEBVTT file, runs the tagging
// workflow, and prints one row per cue naming the stereo channel that was
// more active while the cue was on screen. Subcommands scaffold and inspect
// configuration and report whether ffmpeg and ffprobe are available.
//
// Keep this package lean: behavior lives in internal packages and is only
// surfaced here through flags and output formatting.
package main
