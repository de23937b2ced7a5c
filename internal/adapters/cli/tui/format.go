package tui

import (
	"fmt"

	"github.com/devbush/clipsave/internal/domain"
)

// FormatSize formats a byte count with KB/MB/GB suffix
// Examples: 892 -> "892 B", 1536 -> "1.5 KB", 3145728 -> "3.0 MB"
func FormatSize(size int64) string {
	switch {
	case size >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(size)/(1<<30))
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	}
	return fmt.Sprintf("%d B", size)
}

// FormatDuration formats seconds as "M:SS" or "H:MM:SS"
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "--:--"
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatOptionLine formats a quality option as a single line for display
// Example: " 1080p  mp4"
func FormatOptionLine(opt domain.FormatOption) string {
	if opt.AudioOnly() {
		return fmt.Sprintf("%6s  %s", "audio", "mp3")
	}
	ext := opt.Ext
	if ext == "" {
		ext = "mp4"
	}
	return fmt.Sprintf("%6s  %s", opt.Label, ext)
}
