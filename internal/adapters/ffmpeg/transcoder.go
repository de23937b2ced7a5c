// Package ffmpeg runs the external transcoding engine through four fixed
// audio recipes: effect application, raw extraction, trimming, and
// voice-message conversion.
package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/devbush/clipsave/internal/config"
	"github.com/devbush/clipsave/internal/domain"
	"github.com/devbush/clipsave/internal/ports"
)

// Filter graphs are literal per effect, never user-controlled.
var effectFilters = map[domain.Effect]string{
	domain.EffectEightD:  "apulsator=hz=0.3",
	domain.EffectConcert: "aecho=0.8:0.9:1000:0.3,aecho=0.8:0.9:1800:0.25",
	domain.EffectReverb:  "aecho=0.6:0.7:50:0.5",
	domain.EffectSlow:    "atempo=0.85",
}

var (
	mp3Codec   = []string{"-c:a", "libmp3lame", "-q:a", "2"}
	voiceCodec = []string{"-c:a", "libopus", "-b:a", "64k", "-vbr", "on", "-compression_level", "10", "-application", "voip"}
)

// Transcoder implements ports.Transcoder over the ffmpeg binary.
type Transcoder struct {
	binPath string
	log     *slog.Logger
}

// NewTranscoder creates an ffmpeg transcoder.
func NewTranscoder(log *slog.Logger) *Transcoder {
	if log == nil {
		log = slog.Default()
	}
	return &Transcoder{log: log}
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}

func (t *Transcoder) findBinary() string {
	bundled := filepath.Join(config.BinDir(), binaryName())
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}

	if path, err := exec.LookPath(binaryName()); err == nil {
		return path
	}

	return ""
}

func (t *Transcoder) GetBinaryPath() string {
	if t.binPath != "" {
		return t.binPath
	}
	t.binPath = t.findBinary()
	return t.binPath
}

func (t *Transcoder) IsAvailable() bool {
	return t.GetBinaryPath() != ""
}

// baseName strips directory and extension from input for output naming.
func baseName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// windowArgs translates a trim window into seek arguments around the input.
// Both bounds: seek to start, encode for end-start seconds (clamped).
// End only: cut at end from the beginning. Neither: pass through.
func windowArgs(input string, w domain.Window) []string {
	args := []string{}
	if w.Start != nil {
		args = append(args, "-ss", w.Start.String())
	}
	args = append(args, "-i", input)
	if d, ok := w.Duration(); ok && d > 0 {
		args = append(args, "-t", fmt.Sprintf("%.3f", d))
	} else if w.End != nil && w.Start == nil {
		args = append(args, "-to", w.End.String())
	}
	return args
}

// ApplyEffect re-encodes input's audio through one fixed filter graph.
// Unknown effects fail before any external invocation.
func (t *Transcoder) ApplyEffect(ctx context.Context, input string, effect domain.Effect, outputDir string) (string, error) {
	filter, ok := effectFilters[effect]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrEffectUnsupported, effect)
	}

	out := filepath.Join(outputDir, fmt.Sprintf("%s_%s.mp3", baseName(input), effect))
	args := []string{"-y", "-i", input, "-vn", "-af", filter}
	args = append(args, mp3Codec...)
	args = append(args, out)

	if err := t.run(ctx, "effect", args, outputDir); err != nil {
		return "", err
	}
	return out, nil
}

// ExtractAudio drops video and transcodes audio to mp3, no filter.
func (t *Transcoder) ExtractAudio(ctx context.Context, input string, outputDir string) (string, error) {
	out := filepath.Join(outputDir, baseName(input)+".mp3")
	args := []string{"-y", "-i", input, "-vn"}
	args = append(args, mp3Codec...)
	args = append(args, out)

	if err := t.run(ctx, "extract", args, outputDir); err != nil {
		return "", err
	}
	return out, nil
}

// Trim cuts input to the window and re-encodes to mp3.
func (t *Transcoder) Trim(ctx context.Context, input string, window domain.Window, outputDir string) (string, error) {
	out := filepath.Join(outputDir, baseName(input)+"_trim.mp3")
	args := []string{"-y"}
	args = append(args, windowArgs(input, window)...)
	args = append(args, "-vn")
	args = append(args, mp3Codec...)
	args = append(args, out)

	if err := t.run(ctx, "trim", args, outputDir); err != nil {
		return "", err
	}
	return out, nil
}

// ConvertToVoice cuts input to the window and encodes low-bitrate opus for
// voice-message delivery.
func (t *Transcoder) ConvertToVoice(ctx context.Context, input string, window domain.Window, outputDir string) (string, error) {
	out := filepath.Join(outputDir, baseName(input)+".ogg")
	args := []string{"-y"}
	args = append(args, windowArgs(input, window)...)
	args = append(args, "-vn")
	args = append(args, voiceCodec...)
	args = append(args, out)

	if err := t.run(ctx, "voice", args, outputDir); err != nil {
		return "", err
	}
	return out, nil
}

// run executes one blocking ffmpeg invocation. Non-zero exit surfaces the
// engine's stderr verbatim in a TranscodeError.
func (t *Transcoder) run(ctx context.Context, recipe string, args []string, outputDir string) error {
	binPath := t.GetBinaryPath()
	if binPath == "" {
		return domain.ErrFFmpegNotFound
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	t.log.Debug("running ffmpeg", "recipe", recipe, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, binPath, args...)
	if _, err := cmd.Output(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &domain.TranscodeError{
				Recipe: recipe,
				Stderr: strings.TrimSpace(string(exitErr.Stderr)),
				Err:    err,
			}
		}
		return &domain.TranscodeError{Recipe: recipe, Err: err}
	}
	return nil
}

var _ ports.Transcoder = (*Transcoder)(nil)
