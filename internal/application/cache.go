package application

import (
	"github.com/devbush/clipsave/internal/ports"
)

// CacheStats holds artifact cache statistics
type CacheStats struct {
	ItemCount int
	TotalSize int64
}

// CacheService handles artifact cache management operations
type CacheService struct {
	artifacts ports.ArtifactStore
}

// NewCacheService creates a new cache service
func NewCacheService(artifacts ports.ArtifactStore) *CacheService {
	return &CacheService{artifacts: artifacts}
}

// Stats returns cache statistics
func (s *CacheService) Stats() (*CacheStats, error) {
	count, size, err := s.artifacts.Stats()
	if err != nil {
		return nil, err
	}
	return &CacheStats{
		ItemCount: count,
		TotalSize: size,
	}, nil
}

// CleanVariants removes all artifacts for one content id
func (s *CacheService) CleanVariants(contentID string) (int, error) {
	return s.artifacts.CleanVariants(contentID)
}

// Clear removes all artifacts
func (s *CacheService) Clear() error {
	return s.artifacts.Clear()
}
