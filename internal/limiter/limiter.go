// Package limiter bounds how many expensive external jobs (network fetches,
// transcodes) run at once. Cheap work such as cache lookups must not go
// through it.
package limiter

import "context"

// Limiter is a counting semaphore. Admission is in channel receive order;
// no caller waits forever once slots are being released.
type Limiter struct {
	slots chan struct{}
}

// New creates a limiter admitting at most n concurrent jobs.
func New(n int) *Limiter {
	if n < 1 {
		n = 1
	}
	return &Limiter{slots: make(chan struct{}, n)}
}

// Acquire blocks until a slot is free or ctx is done.
func (l *Limiter) Acquire(ctx context.Context) error {
	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot acquired with Acquire.
func (l *Limiter) Release() {
	<-l.slots
}

// Do runs fn holding a slot, releasing it on every exit path.
func (l *Limiter) Do(ctx context.Context, fn func() error) error {
	if err := l.Acquire(ctx); err != nil {
		return err
	}
	defer l.Release()
	return fn()
}

// InFlight returns the number of currently admitted jobs.
func (l *Limiter) InFlight() int {
	return len(l.slots)
}

// Cap returns the configured maximum.
func (l *Limiter) Cap() int {
	return cap(l.slots)
}
