package domain

import (
	"strconv"
	"strings"
)

// Timestamp is a point in the input media, in seconds.
type Timestamp float64

// ParseTimestamp reads H:MM:SS, M:SS or SS forms. Malformed input returns
// ok=false rather than an error: trim bounds are best-effort and a bad bound
// falls open to "unset" instead of rejecting the whole request.
func ParseTimestamp(s string) (Timestamp, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, false
	}

	var secs float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 {
			return 0, false
		}
		secs = secs*60 + v
	}
	return Timestamp(secs), true
}

// Seconds returns the timestamp as float seconds.
func (t Timestamp) Seconds() float64 {
	return float64(t)
}

// String formats the timestamp the way ffmpeg accepts it.
func (t Timestamp) String() string {
	return strconv.FormatFloat(float64(t), 'f', 3, 64)
}

// Window bounds a trim or voice conversion. Nil bounds are unset.
type Window struct {
	Start *Timestamp
	End   *Timestamp
}

// ParseWindow builds a Window from raw start/end strings, applying the
// best-effort bound policy: anything unparseable becomes an unset bound.
func ParseWindow(start, end string) Window {
	var w Window
	if ts, ok := ParseTimestamp(start); ok {
		w.Start = &ts
	}
	if ts, ok := ParseTimestamp(end); ok {
		w.End = &ts
	}
	return w
}

// Duration returns the seek duration in seconds when both bounds are set,
// clamped to non-negative. ok is false when the window does not define one.
func (w Window) Duration() (float64, bool) {
	if w.Start == nil || w.End == nil {
		return 0, false
	}
	d := w.End.Seconds() - w.Start.Seconds()
	if d < 0 {
		d = 0
	}
	return d, true
}

// IsZero reports whether both bounds are unset.
func (w Window) IsZero() bool {
	return w.Start == nil && w.End == nil
}
