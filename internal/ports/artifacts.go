package ports

// ArtifactStore locates previously produced artifacts on persistent storage.
// The naming convention is the index: {id}_h{height}.{ext} for video,
// {id}_audio.{ext} for audio. Lookups are pure reads over the filesystem and
// must never compete for a job admission slot.
type ArtifactStore interface {
	// FindVideo returns the cached artifact for (id, height), if any.
	FindVideo(contentID string, height int) (string, bool)

	// FindAudio returns the cached audio artifact for id, if any.
	FindAudio(contentID string) (string, bool)

	// CleanVariants removes every artifact for id so a retry starts clean.
	CleanVariants(contentID string) (int, error)

	// Stats reports artifact count and total size in bytes.
	Stats() (count int, totalSize int64, err error)

	// Clear removes all artifacts.
	Clear() error

	// Dir returns the storage directory.
	Dir() string
}
