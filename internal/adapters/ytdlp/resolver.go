package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/devbush/clipsave/internal/domain"
)

// rawInfo is the subset of yt-dlp's JSON output the resolver reads.
type rawInfo struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	WebpageURL string      `json:"webpage_url"`
	Duration   float64     `json:"duration"`
	Formats    []rawFormat `json:"formats"`
}

type rawFormat struct {
	Height int    `json:"height"`
	VCodec string `json:"vcodec"`
	ACodec string `json:"acodec"`
	Ext    string `json:"ext"`
}

// Probe enumerates the variants of url and normalizes them into a sorted
// option list. Implements ports.MediaResolver.
func (c *Client) Probe(ctx context.Context, url string) (*domain.ProbeResult, error) {
	binPath := c.GetBinaryPath()
	if binPath == "" {
		return nil, domain.ErrYtDlpNotFound
	}

	output, err := c.run(ctx, probeArgs(c.cookiesFile, url))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrResolution, err)
	}

	var info rawInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("%w: bad extractor output: %v", domain.ErrResolution, err)
	}

	result := &domain.ProbeResult{
		ID:       info.ID,
		Title:    info.Title,
		URL:      info.WebpageURL,
		Options:  mergeFormats(info.Formats),
		Duration: int(info.Duration),
	}
	if result.ID == "" {
		result.ID = "unknown"
	}
	if result.Title == "" {
		result.Title = "Video"
	}
	if result.URL == "" {
		result.URL = url
	}

	// Only source families with a clean best-audio stream get the
	// audio-only row.
	if domain.SupportsAudioOnly(result.URL) {
		result.Options = append(result.Options, domain.FormatOption{
			Label:    "Audio",
			HasAudio: true,
			Selector: "bestaudio/best",
		})
	}

	c.log.Debug("probe complete", "url", url, "id", result.ID, "options", len(result.Options))
	return result, nil
}

// mergeFormats groups variants by vertical resolution. Audio availability
// merges with logical OR and a non-empty container extension wins over an
// empty one. One option per distinct height, ascending.
func mergeFormats(formats []rawFormat) []domain.FormatOption {
	type merged struct {
		hasAudio bool
		ext      string
	}
	found := make(map[int]*merged)

	for _, f := range formats {
		// An absent vcodec with a height still counts as a video variant;
		// only an explicit "none" marks an audio-only entry.
		if f.VCodec == "none" || f.Height <= 0 {
			continue
		}
		hasAudio := f.ACodec != "" && f.ACodec != "none"

		m, ok := found[f.Height]
		if !ok {
			found[f.Height] = &merged{hasAudio: hasAudio, ext: f.Ext}
			continue
		}
		m.hasAudio = m.hasAudio || hasAudio
		if m.ext == "" && f.Ext != "" {
			m.ext = f.Ext
		}
	}

	heights := make([]int, 0, len(found))
	for h := range found {
		heights = append(heights, h)
	}
	sort.Ints(heights)

	options := make([]domain.FormatOption, 0, len(heights))
	for _, h := range heights {
		m := found[h]
		options = append(options, domain.FormatOption{
			Height:   h,
			Label:    fmt.Sprintf("%dp", h),
			HasAudio: m.hasAudio,
			Ext:      m.ext,
			Selector: exactSelector(h),
		})
	}
	return options
}
