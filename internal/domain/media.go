package domain

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
)

// FormatOption is one downloadable encoding of a source, keyed by vertical
// resolution. Immutable once built by the resolver.
type FormatOption struct {
	Height   int
	Label    string
	HasAudio bool
	Ext      string
	// Selector is the format expression handed to yt-dlp to fetch exactly
	// this resolution: best video at this height plus best audio, else the
	// best combined stream at this height.
	Selector string
}

// AudioOnly reports whether this option is the synthetic audio-only row.
func (o FormatOption) AudioOnly() bool {
	return o.Height == 0
}

// ProbeResult is the normalized outcome of resolving a media URL. It lives
// only for the span of one resolution plus one later selection; ID is the
// stable content identifier used as the artifact cache key.
type ProbeResult struct {
	ID       string
	Title    string
	URL      string
	Options  []FormatOption
	Duration int
}

// RequestKey derives the short stable key the front-end uses to carry
// selection state for a URL across stateless interactions.
func RequestKey(url string) string {
	sum := blake3.Sum256([]byte(url))
	return hex.EncodeToString(sum[:8])
}

// Effect identifies one of the fixed audio filter recipes.
type Effect string

const (
	EffectEightD  Effect = "8d"
	EffectConcert Effect = "concert"
	EffectReverb  Effect = "reverb"
	EffectSlow    Effect = "slow"
)

// Effects lists the supported effect names in display order.
func Effects() []Effect {
	return []Effect{EffectEightD, EffectConcert, EffectReverb, EffectSlow}
}

// ParseEffect validates a user-supplied effect name.
func ParseEffect(s string) (Effect, error) {
	switch Effect(strings.ToLower(strings.TrimSpace(s))) {
	case EffectEightD:
		return EffectEightD, nil
	case EffectConcert:
		return EffectConcert, nil
	case EffectReverb:
		return EffectReverb, nil
	case EffectSlow:
		return EffectSlow, nil
	}
	return "", fmt.Errorf("%w: %q", ErrEffectUnsupported, s)
}

// SupportsAudioOnly reports whether the source family behind url exposes a
// clean best-audio stream, which decides if the resolver appends the
// synthetic audio-only option.
func SupportsAudioOnly(url string) bool {
	u := strings.ToLower(url)
	return strings.Contains(u, "youtube.com") || strings.Contains(u, "youtu.be")
}

// ValidateURL rejects input that is not an absolute http(s) link.
func ValidateURL(input string) (string, error) {
	u := strings.TrimSpace(input)
	if u == "" {
		return "", fmt.Errorf("%w: empty input", ErrUnsupportedURL)
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedURL, input)
	}
	return u, nil
}
