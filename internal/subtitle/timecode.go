package subtitle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedOffset is returned when a word time offset from the
// recognition service cannot be parsed as a duration.
var ErrMalformedOffset = fmt.Errorf("malformed time offset")

// ParseOffset parses a textual time offset like "59.900s" into a duration.
// The trailing unit marker is stripped before parsing. Non-numeric or
// negative values are rejected.
func ParseOffset(s string) (time.Duration, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), "s")
	if trimmed == "" {
		return 0, fmt.Errorf("%w: %q", ErrMalformedOffset, s)
	}

	seconds, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedOffset, s)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("%w: negative offset %q", ErrMalformedOffset, s)
	}

	// Round to the nearest nanosecond so values like 59.9 do not land
	// one nanosecond short of the millisecond they name.
	return time.Duration(math.Round(seconds * float64(time.Second))), nil
}

// FormatTimecode renders a non-negative duration as a WebVTT clock value
// in HH:MM:SS.mmm form. Milliseconds are truncated, not rounded. The hour
// field wraps at 24 like a wall clock.
func FormatTimecode(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalSeconds := int64(d / time.Second)
	millis := int64(d/time.Millisecond) % 1000

	hours := (totalSeconds / 3600) % 24
	minutes := (totalSeconds / 60) % 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}
