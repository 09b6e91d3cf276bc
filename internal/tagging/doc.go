// Package tagging attributes subtitle cues to the stereo channel that was
// more active during each cue's window.
//
// For every cue the tagger sums the overlap between the cue's [start, end)
// window and each channel's non-silent intervals. The strictly larger sum
// wins; equal sums (including both zero) leave the cue on None.
package tagging
