package webvtt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"chtagger/internal/failure"
	"chtagger/internal/transcript"
)

// ReadFile loads and parses a WEBVTT file. A leading byte order mark is
// honoured (UTF-8 by default, UTF-16 when the BOM says so) and stripped.
func ReadFile(path string, opts Options) (transcript.Transcript, error) {
	file, err := os.Open(path)
	if err != nil {
		return transcript.Transcript{}, failure.Wrap(failure.ErrIO, "webvtt", "open", path, err)
	}
	defer file.Close()

	cues, err := Read(file, opts)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
			return transcript.Transcript{}, perr
		}
		return transcript.Transcript{}, failure.Wrap(failure.ErrIO, "webvtt", "read", path, err)
	}
	return transcript.Transcript{Source: path, Cues: cues}, nil
}

// Read decodes WEBVTT content from r and parses it.
func Read(r io.Reader, opts Options) ([]transcript.Cue, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("decode subtitles: %w", err)
	}
	return Parse(string(data), opts)
}
