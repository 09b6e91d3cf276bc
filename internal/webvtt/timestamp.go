package webvtt

import (
	"strconv"
	"strings"
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

// ParseTimestamp converts an H:MM:SS.mmm timestamp to milliseconds. Hours may
// have any number of digits and the fractional seconds are optional; digits
// beyond millisecond precision are truncated.
func ParseTimestamp(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	parts := strings.Split(trimmed, ":")
	if len(parts) != 3 {
		return 0, &ParseError{Text: value, Reason: "timestamp must have hours, minutes, and seconds"}
	}
	hours, err := parseDigits(parts[0])
	if err != nil {
		return 0, &ParseError{Text: value, Reason: "invalid hours"}
	}
	minutes, err := parseDigits(parts[1])
	if err != nil {
		return 0, &ParseError{Text: value, Reason: "invalid minutes"}
	}
	millis, err := parseSeconds(parts[2])
	if err != nil {
		return 0, &ParseError{Text: value, Reason: "invalid seconds"}
	}
	return hours*msPerHour + minutes*msPerMinute + millis, nil
}

// parseSeconds returns SS[.fff] as whole milliseconds. Either side of the
// point may be empty ("01." or ".5"), but not both.
func parseSeconds(value string) (int64, error) {
	whole, frac, hasFrac := strings.Cut(value, ".")
	if hasFrac && whole == "" && frac == "" {
		return 0, strconv.ErrSyntax
	}
	var seconds int64
	if whole != "" || !hasFrac {
		var err error
		if seconds, err = parseDigits(whole); err != nil {
			return 0, err
		}
	}
	millis := seconds * msPerSecond
	if !hasFrac || frac == "" {
		return millis, nil
	}
	if len(frac) > 3 {
		if _, err := parseDigits(frac); err != nil {
			return 0, err
		}
		frac = frac[:3]
	}
	frac += strings.Repeat("0", 3-len(frac))
	fraction, err := parseDigits(frac)
	if err != nil {
		return 0, err
	}
	return millis + fraction, nil
}

func parseDigits(value string) (int64, error) {
	if value == "" {
		return 0, strconv.ErrSyntax
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.ParseInt(value, 10, 64)
}
