package ports

import (
	"context"

	"github.com/devbush/clipsave/internal/domain"
)

// Transcoder runs the four fixed audio recipes against a locally staged
// input file, each as one blocking external invocation.
type Transcoder interface {
	// ApplyEffect re-encodes the audio stream through one fixed filter
	// graph, dropping any video stream.
	ApplyEffect(ctx context.Context, input string, effect domain.Effect, outputDir string) (string, error)

	// ExtractAudio drops video and transcodes audio to mp3, no filter.
	ExtractAudio(ctx context.Context, input string, outputDir string) (string, error)

	// Trim cuts the input to the given window and re-encodes to mp3.
	Trim(ctx context.Context, input string, window domain.Window, outputDir string) (string, error)

	// ConvertToVoice applies the same window semantics as Trim but encodes
	// a low-bitrate opus stream suitable for voice-message delivery.
	ConvertToVoice(ctx context.Context, input string, window domain.Window, outputDir string) (string, error)
}
