// Package workflow runs one tagging pass from input files to tagged cues.
//
// The Runner checks that both inputs are readable, parses the WEBVTT file,
// confirms through ffprobe that the audio is two-channel, asks the configured
// activity detector for each channel's non-silent intervals, and attributes
// every cue to the dominant channel. Any failure aborts the run before a
// result is produced; there is no partial output.
//
// Detection and probing are injectable so tests and alternate front ends can
// drive the pipeline without ffmpeg.
package workflow
