// Package state holds short-lived selection state that bridges otherwise
// stateless interaction steps: the resolved URL and content id written when a
// link is probed, read back when the user later confirms a choice.
package state

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is a thread-safe key-value map with per-entry expiry. Absent keys
// are a normal return value, not a failure. Expired entries are removed
// lazily on Get; Sweep is optional amortized maintenance.
type Store struct {
	mu         sync.Mutex
	data       map[string]entry
	defaultTTL time.Duration
	now        func() time.Time // overridable in tests
}

// NewStore creates a store whose Set uses defaultTTL.
func NewStore(defaultTTL time.Duration) *Store {
	return &Store{
		data:       make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Set stores value under key with the default TTL, overwriting any prior
// entry.
func (s *Store) Set(key string, value any) {
	s.SetTTL(key, value, s.defaultTTL)
}

// SetTTL stores value under key expiring at now+ttl.
func (s *Store) SetTTL(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{value: value, expiresAt: s.now().Add(ttl)}
}

// Get returns the value for key if present and unexpired. A found-but-expired
// entry is deleted as a side effect.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return nil, false
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.data, key)
		return nil, false
	}
	return e.value, true
}

// GetString is Get for string values, the common case for selection state.
func (s *Store) GetString(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Delete removes key.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// Sweep removes all expired entries and returns the count removed. Get alone
// preserves the expiry guarantees; Sweep only reclaims memory for keys never
// read again.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, e := range s.data {
		if !now.Before(e.expiresAt) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// StartJanitor sweeps every interval until ctx is cancelled.
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}
