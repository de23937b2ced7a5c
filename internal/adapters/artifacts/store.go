// Package artifacts resolves content-addressed files in the flat storage
// directory. There is no manifest: the filename convention is the index.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/devbush/clipsave/internal/ports"
)

// Store finds cached artifacts by (content id, variant) glob. All operations
// are pure filesystem reads except CleanVariants and Clear.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore creates a store over the OS filesystem rooted at dir.
func NewStore(dir string) *Store {
	return NewStoreFs(afero.NewOsFs(), dir)
}

// NewStoreFs creates a store over an explicit filesystem, used by tests.
func NewStoreFs(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// FindVideo matches {id}_h{height}.* and returns the lexicographically last
// hit. Retries can leave multiple extensions for the same variant; the last
// one sorts as authoritative.
func (s *Store) FindVideo(contentID string, height int) (string, bool) {
	return s.findLast(fmt.Sprintf("%s_h%d.*", contentID, height))
}

// FindAudio matches {id}_audio.*.
func (s *Store) FindAudio(contentID string) (string, bool) {
	return s.findLast(contentID + "_audio.*")
}

func (s *Store) findLast(pattern string) (string, bool) {
	matches, err := afero.Glob(s.fs, filepath.Join(s.dir, pattern))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[len(matches)-1], true
}

// CleanVariants removes every artifact for contentID, video and audio alike,
// and returns the count removed. Callers use it to discard stale partial
// artifacts before a clean retry; nothing calls it implicitly.
func (s *Store) CleanVariants(contentID string) (int, error) {
	matches, err := afero.Glob(s.fs, filepath.Join(s.dir, contentID+"_*"))
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, m := range matches {
		if err := s.fs.Remove(m); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Stats returns artifact count and total size in bytes.
func (s *Store) Stats() (int, int64, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}

	count := 0
	var totalSize int64
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		count++
		totalSize += info.Size()
	}
	return count, totalSize, nil
}

// Clear removes all artifacts.
func (s *Store) Clear() error {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		if err := s.fs.Remove(filepath.Join(s.dir, info.Name())); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.ArtifactStore = (*Store)(nil)
