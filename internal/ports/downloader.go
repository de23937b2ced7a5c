package ports

import "context"

// DownloadResult contains the outcome of a fetch operation.
type DownloadResult struct {
	ContentID string // stable identifier assigned by the extraction collaborator
	Path      string // artifact written to the storage directory
	Title     string
}

// Downloader drives the extraction collaborator to fetch a chosen variant.
type Downloader interface {
	// Download fetches the exact-height variant, falling back once to a
	// relaxed selector with expanded client identities on any primary
	// failure.
	Download(ctx context.Context, url string, height int) (*DownloadResult, error)

	// DownloadAudio fetches best-available audio and transcodes it to the
	// requested codec. Single strategy, no fallback.
	DownloadAudio(ctx context.Context, url string, codec string) (*DownloadResult, error)
}

// ToolManager reports and manages the external extraction binary.
type ToolManager interface {
	IsAvailable() bool
	GetBinaryPath() string
	Install(ctx context.Context, progress func(downloaded, total int64)) error
	Update(ctx context.Context) error
}
