// Package webvtt parses WEBVTT subtitle files into transcript cues.
//
// Parsing is line oriented: any line containing the cue-timing separator
// starts a new cue, and the lines that follow (until the next timing line)
// become its text. Cue settings after the end timestamp are ignored. Header
// blocks before the first timing line are skipped.
//
// Malformed timestamps and timing lines produce a *ParseError that carries the
// file path, line number, and offending text, and matches failure.ErrParse.
package webvtt
