package domain

import (
	"errors"
	"fmt"
)

var (
	// Resolution errors
	ErrResolution     = errors.New("could not enumerate formats for URL")
	ErrNoFormats      = errors.New("no downloadable formats found")
	ErrUnsupportedURL = errors.New("unsupported or invalid media URL")

	// Download errors
	ErrDownload = errors.New("download failed after fallback")

	// Transcode errors
	ErrEffectUnsupported = errors.New("unknown audio effect")

	// Ephemeral state errors
	ErrStateExpired = errors.New("selection state expired")

	// Dependency errors
	ErrYtDlpNotFound  = errors.New("yt-dlp not found")
	ErrFFmpegNotFound = errors.New("ffmpeg not found")
)

// TranscodeError reports a non-zero exit from the external transcoding
// engine. Stderr carries the engine's diagnostic output verbatim so the
// caller can render it.
type TranscodeError struct {
	Recipe string
	Stderr string
	Err    error
}

func (e *TranscodeError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("transcode %s failed: %s", e.Recipe, e.Stderr)
	}
	return fmt.Sprintf("transcode %s failed: %v", e.Recipe, e.Err)
}

func (e *TranscodeError) Unwrap() error {
	return e.Err
}
