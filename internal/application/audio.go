package application

import (
	"context"
	"log/slog"

	"github.com/devbush/clipsave/internal/domain"
	"github.com/devbush/clipsave/internal/limiter"
	"github.com/devbush/clipsave/internal/ports"
)

// AudioService runs the four transcode recipes on staged local files, each
// gated by the job limiter since transcoding is as expensive as a fetch.
type AudioService struct {
	transcoder ports.Transcoder
	jobs       *limiter.Limiter
	outputDir  string
	log        *slog.Logger
}

// NewAudioService wires an audio service writing into outputDir.
func NewAudioService(transcoder ports.Transcoder, jobs *limiter.Limiter, outputDir string, log *slog.Logger) *AudioService {
	if log == nil {
		log = slog.Default()
	}
	return &AudioService{
		transcoder: transcoder,
		jobs:       jobs,
		outputDir:  outputDir,
		log:        log,
	}
}

// ApplyEffect validates the effect name before taking a slot: an unknown
// effect must not consume admission capacity or reach the engine.
func (s *AudioService) ApplyEffect(ctx context.Context, input, effectName string) (string, error) {
	effect, err := domain.ParseEffect(effectName)
	if err != nil {
		return "", err
	}

	var out string
	err = s.jobs.Do(ctx, func() error {
		var tErr error
		out, tErr = s.transcoder.ApplyEffect(ctx, input, effect, s.outputDir)
		return tErr
	})
	if err != nil {
		return "", err
	}
	s.log.Info("effect applied", "input", input, "effect", effect, "output", out)
	return out, nil
}

// ExtractAudio pulls the audio track of input into an mp3.
func (s *AudioService) ExtractAudio(ctx context.Context, input string) (string, error) {
	var out string
	err := s.jobs.Do(ctx, func() error {
		var tErr error
		out, tErr = s.transcoder.ExtractAudio(ctx, input, s.outputDir)
		return tErr
	})
	if err != nil {
		return "", err
	}
	s.log.Info("audio extracted", "input", input, "output", out)
	return out, nil
}

// Trim cuts input to the range given by raw start/end timestamps, applying
// the best-effort bound policy for malformed values.
func (s *AudioService) Trim(ctx context.Context, input, start, end string) (string, error) {
	window := domain.ParseWindow(start, end)

	var out string
	err := s.jobs.Do(ctx, func() error {
		var tErr error
		out, tErr = s.transcoder.Trim(ctx, input, window, s.outputDir)
		return tErr
	})
	if err != nil {
		return "", err
	}
	s.log.Info("trimmed", "input", input, "output", out)
	return out, nil
}

// ConvertToVoice converts input into a voice-message shaped opus file,
// optionally bounded by raw start/end timestamps.
func (s *AudioService) ConvertToVoice(ctx context.Context, input, start, end string) (string, error) {
	window := domain.ParseWindow(start, end)

	var out string
	err := s.jobs.Do(ctx, func() error {
		var tErr error
		out, tErr = s.transcoder.ConvertToVoice(ctx, input, window, s.outputDir)
		return tErr
	})
	if err != nil {
		return "", err
	}
	s.log.Info("voice converted", "input", input, "output", out)
	return out, nil
}
