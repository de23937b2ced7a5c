package state

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestStoreSetGet(t *testing.T) {
	s := NewStore(time.Minute)

	s.Set("url:abc", "https://youtu.be/abc")

	v, ok := s.GetString("url:abc")
	if !ok {
		t.Fatal("Get() missed fresh key")
	}
	if v != "https://youtu.be/abc" {
		t.Errorf("Get() = %s, want stored URL", v)
	}
}

func TestStoreGetMiss(t *testing.T) {
	s := NewStore(time.Minute)

	if _, ok := s.Get("nope"); ok {
		t.Error("Get() returned value for absent key")
	}
}

func TestStoreExpiry(t *testing.T) {
	s := NewStore(time.Minute)
	clock := time.Now()
	s.now = func() time.Time { return clock }

	s.SetTTL("k", "v", 10*time.Second)

	clock = clock.Add(9 * time.Second)
	if _, ok := s.Get("k"); !ok {
		t.Error("Get() missed key before expiry")
	}

	clock = clock.Add(time.Second)
	if _, ok := s.Get("k"); ok {
		t.Error("Get() returned value at expiry instant")
	}

	// lazy eviction removed the entry
	if s.Len() != 0 {
		t.Errorf("Len() = %d after expired Get, want 0", s.Len())
	}
}

func TestStoreOverwrite(t *testing.T) {
	s := NewStore(time.Minute)
	clock := time.Now()
	s.now = func() time.Time { return clock }

	s.SetTTL("k", "old", time.Second)
	clock = clock.Add(30 * time.Second)
	s.SetTTL("k", "new", time.Minute)

	v, ok := s.GetString("k")
	if !ok || v != "new" {
		t.Errorf("Get() = %q, %v, want refreshed value", v, ok)
	}
}

func TestStoreSweep(t *testing.T) {
	s := NewStore(time.Minute)
	clock := time.Now()
	s.now = func() time.Time { return clock }

	s.SetTTL("expired1", 1, time.Second)
	s.SetTTL("expired2", 2, 2*time.Second)
	s.SetTTL("fresh", 3, time.Hour)

	clock = clock.Add(10 * time.Second)

	if got := s.Sweep(); got != 2 {
		t.Errorf("Sweep() = %d, want 2", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d after sweep, want 1", s.Len())
	}
	if _, ok := s.Get("fresh"); !ok {
		t.Error("Sweep() removed an unexpired key")
	}
}

func TestStoreExpiryUnaffectedByOtherKeys(t *testing.T) {
	s := NewStore(time.Minute)
	clock := time.Now()
	s.now = func() time.Time { return clock }

	s.SetTTL("target", "v", 10*time.Second)
	for i := 0; i < 100; i++ {
		s.Set(fmt.Sprintf("noise:%d", i), i)
		s.Get(fmt.Sprintf("noise:%d", i%7))
	}

	if _, ok := s.Get("target"); !ok {
		t.Error("unrelated traffic evicted a live key")
	}

	clock = clock.Add(11 * time.Second)
	if _, ok := s.Get("target"); ok {
		t.Error("key survived past expiry")
	}
}

func TestStoreConcurrent(t *testing.T) {
	s := NewStore(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("k:%d", j%20)
				s.Set(key, n)
				s.Get(key)
				if j%50 == 0 {
					s.Sweep()
				}
			}
		}(i)
	}
	wg.Wait()
}
