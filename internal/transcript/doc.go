// Package transcript holds the cue model shared by the WEBVTT parser, the
// channel tagger, and the report renderers.
//
// Cues are plain values. The parser creates them with Channel set to None and
// the tagger returns copies with the channel decided; nothing mutates a cue in
// place after it has been appended to a transcript.
package transcript
