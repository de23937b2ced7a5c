package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/devbush/clipsave/internal/domain"
	"github.com/devbush/clipsave/internal/limiter"
	"github.com/devbush/clipsave/internal/ports"
	"github.com/devbush/clipsave/internal/state"
)

// FetchResult reports where an artifact came from.
type FetchResult struct {
	Path      string
	ContentID string
	FromCache bool
}

// FetchService resolves media URLs and executes downloads: artifact-cache
// fast path outside the admission gate, limiter-gated fetch on a miss.
// All collaborators are injected; the service owns no global state.
type FetchService struct {
	resolver   ports.MediaResolver
	downloader ports.Downloader
	artifacts  ports.ArtifactStore
	jobs       *limiter.Limiter
	selections *state.Store
	probes     *expirable.LRU[string, *domain.ProbeResult]
	log        *slog.Logger
}

// NewFetchService wires a fetch service. probeLen/probeTTL size the probe
// memoization so a selection and its follow-up download reuse one probe.
func NewFetchService(
	resolver ports.MediaResolver,
	downloader ports.Downloader,
	artifacts ports.ArtifactStore,
	jobs *limiter.Limiter,
	selections *state.Store,
	probeLen int,
	probeTTL time.Duration,
	log *slog.Logger,
) *FetchService {
	if log == nil {
		log = slog.Default()
	}
	return &FetchService{
		resolver:   resolver,
		downloader: downloader,
		artifacts:  artifacts,
		jobs:       jobs,
		selections: selections,
		probes:     expirable.NewLRU[string, *domain.ProbeResult](probeLen, nil, probeTTL),
		log:        log,
	}
}

// Probe resolves rawURL into its option list and writes the selection state
// (canonical URL and content id) under the returned request key, so a later
// stateless interaction can resume from just the key.
func (s *FetchService) Probe(ctx context.Context, rawURL string) (*domain.ProbeResult, string, error) {
	url, err := domain.ValidateURL(rawURL)
	if err != nil {
		return nil, "", err
	}
	key := domain.RequestKey(url)

	if pr, ok := s.probes.Get(url); ok {
		s.stash(key, pr)
		return pr, key, nil
	}

	pr, err := s.resolver.Probe(ctx, url)
	if err != nil {
		return nil, "", err
	}
	if len(pr.Options) == 0 {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrNoFormats, url)
	}

	s.probes.Add(url, pr)
	s.stash(key, pr)
	s.log.Info("probed", "key", key, "id", pr.ID, "options", len(pr.Options))
	return pr, key, nil
}

// stash refreshes the selection state for key.
func (s *FetchService) stash(key string, pr *domain.ProbeResult) {
	s.selections.Set("url:"+key, pr.URL)
	s.selections.Set("vid:"+key, pr.ID)
}

// Download produces the artifact for the selection under key at height.
// The cache check runs before admission; duplicate concurrent work for the
// same variant is tolerated since filenames are deterministic.
func (s *FetchService) Download(ctx context.Context, key string, height int) (*FetchResult, error) {
	url, id, err := s.selection(key)
	if err != nil {
		return nil, err
	}

	if path, ok := s.artifacts.FindVideo(id, height); ok {
		s.log.Info("cache hit", "id", id, "height", height, "path", path)
		return &FetchResult{Path: path, ContentID: id, FromCache: true}, nil
	}

	var result *ports.DownloadResult
	err = s.jobs.Do(ctx, func() error {
		// Re-check: another admitted job may have produced this variant
		// while we waited for a slot.
		if path, ok := s.artifacts.FindVideo(id, height); ok {
			result = &ports.DownloadResult{ContentID: id, Path: path}
			return nil
		}
		var dlErr error
		result, dlErr = s.downloader.Download(ctx, url, height)
		return dlErr
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("downloaded", "id", result.ContentID, "height", height, "path", result.Path)
	return &FetchResult{Path: result.Path, ContentID: result.ContentID}, nil
}

// DownloadAudio produces the audio artifact for the selection under key.
func (s *FetchService) DownloadAudio(ctx context.Context, key string, codec string) (*FetchResult, error) {
	url, id, err := s.selection(key)
	if err != nil {
		return nil, err
	}
	if codec == "" {
		codec = "mp3"
	}

	if path, ok := s.artifacts.FindAudio(id); ok {
		s.log.Info("audio cache hit", "id", id, "path", path)
		return &FetchResult{Path: path, ContentID: id, FromCache: true}, nil
	}

	var result *ports.DownloadResult
	err = s.jobs.Do(ctx, func() error {
		if path, ok := s.artifacts.FindAudio(id); ok {
			result = &ports.DownloadResult{ContentID: id, Path: path}
			return nil
		}
		var dlErr error
		result, dlErr = s.downloader.DownloadAudio(ctx, url, codec)
		return dlErr
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("audio downloaded", "id", result.ContentID, "path", result.Path)
	return &FetchResult{Path: result.Path, ContentID: result.ContentID}, nil
}

// selection reads the state written by Probe. A miss means the user waited
// past the TTL and must submit the link again.
func (s *FetchService) selection(key string) (url, id string, err error) {
	url, okURL := s.selections.GetString("url:" + key)
	id, okID := s.selections.GetString("vid:" + key)
	if !okURL || !okID {
		return "", "", domain.ErrStateExpired
	}
	return url, id, nil
}
