// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual stream properties (codec, channels, layout)
//   - Format: container-level metadata (duration, format name)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods on Result locate the first audio stream and parse the
// reported duration.
package ffprobe
