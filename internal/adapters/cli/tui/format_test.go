package tui

import (
	"strings"
	"testing"

	"github.com/devbush/clipsave/internal/domain"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{892, "892 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1 << 20, "1.0 MB"},
		{3 << 20, "3.0 MB"},
		{1 << 30, "1.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatSize(tt.input)
			if result != tt.expected {
				t.Errorf("FormatSize(%d) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "--:--"},
		{-5, "--:--"},
		{9, "0:09"},
		{65, "1:05"},
		{600, "10:00"},
		{3723, "1:02:03"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatDuration(tt.input)
			if result != tt.expected {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatOptionLine(t *testing.T) {
	video := domain.FormatOption{Height: 1080, Label: "1080p", Ext: "mp4"}
	line := FormatOptionLine(video)
	if !strings.Contains(line, "1080p") || !strings.Contains(line, "mp4") {
		t.Errorf("FormatOptionLine(video) = %q", line)
	}

	noExt := domain.FormatOption{Height: 720, Label: "720p"}
	if !strings.Contains(FormatOptionLine(noExt), "mp4") {
		t.Errorf("missing ext should default to mp4: %q", FormatOptionLine(noExt))
	}

	audio := domain.FormatOption{Label: "Audio", HasAudio: true}
	line = FormatOptionLine(audio)
	if !strings.Contains(line, "audio") {
		t.Errorf("FormatOptionLine(audio) = %q", line)
	}
}

func TestFormatListModelChoice(t *testing.T) {
	options := []domain.FormatOption{
		{Height: 360, Label: "360p"},
		{Height: 720, Label: "720p"},
	}

	m := NewFormatListModel("clip", options)
	if m.Choice() != nil {
		t.Error("Choice before confirm should be nil")
	}

	m.cursor = 1
	m.chosen = true
	choice := m.Choice()
	if choice == nil || choice.Height != 720 {
		t.Errorf("Choice() = %+v, want 720p", choice)
	}
}
