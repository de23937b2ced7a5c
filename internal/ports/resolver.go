package ports

import (
	"context"

	"github.com/devbush/clipsave/internal/domain"
)

// MediaResolver enumerates the downloadable variants of a source URL and
// normalizes them into a deduplicated, sorted option list.
type MediaResolver interface {
	// Probe queries the extraction collaborator without downloading anything.
	Probe(ctx context.Context, url string) (*domain.ProbeResult, error)
}
