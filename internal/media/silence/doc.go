// Package silence finds the non-silent regions of one stereo channel by
// running ffmpeg's silencedetect filter and inverting the reported silences.
//
// The ffmpeg invocation and its stderr parsing live here; callers receive
// activity.Span values in seconds and stay unaware of the log format.
package silence
