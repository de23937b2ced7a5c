package limiter

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLimiterCap(t *testing.T) {
	const n = 2
	const callers = 10

	l := New(n)
	ctx := context.Background()

	var inFlight, peak, ran int64
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.Do(ctx, func() error {
				cur := atomic.AddInt64(&inFlight, 1)
				for {
					p := atomic.LoadInt64(&peak)
					if cur <= p || atomic.CompareAndSwapInt64(&peak, p, cur) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt64(&inFlight, -1)
				atomic.AddInt64(&ran, 1)
				return nil
			})
			if err != nil {
				t.Errorf("Do() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if peak > n {
		t.Errorf("peak concurrency = %d, want <= %d", peak, n)
	}
	if ran != callers {
		t.Errorf("ran = %d, want %d (every caller admitted)", ran, callers)
	}
}

func TestLimiterReleaseOnError(t *testing.T) {
	l := New(1)
	ctx := context.Background()

	wantErr := errors.New("job failed")
	if err := l.Do(ctx, func() error { return wantErr }); !errors.Is(err, wantErr) {
		t.Errorf("Do() error = %v, want %v", err, wantErr)
	}

	// Slot must be free again after the failed job.
	if l.InFlight() != 0 {
		t.Errorf("InFlight() = %d after failed job, want 0", l.InFlight())
	}
	done := make(chan struct{})
	go func() {
		_ = l.Do(ctx, func() error { return nil })
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("slot not released after failed job")
	}
}

func TestLimiterAcquireCancelled(t *testing.T) {
	l := New(1)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer l.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() error = %v, want deadline exceeded", err)
	}
}

func TestLimiterMinimumCapacity(t *testing.T) {
	l := New(0)
	if l.Cap() != 1 {
		t.Errorf("Cap() = %d, want clamp to 1", l.Cap())
	}
}
