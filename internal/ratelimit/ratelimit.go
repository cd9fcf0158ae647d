// Package ratelimit paces outgoing API calls so that a client stays inside
// the per-second and per-minute budgets the server enforces.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config defines the request budgets. Zero disables a budget.
type Config struct {
	// PerSecond spaces calls at least 1/PerSecond apart.
	PerSecond int

	// PerMinute caps calls inside any sliding one-minute window.
	PerMinute int
}

// DefaultConfig returns the budgets published for the public API.
func DefaultConfig() Config {
	return Config{PerSecond: 5, PerMinute: 90}
}

// Limiter combines a pacing limiter with a sliding-window budget. Callers
// are admitted in arrival order.
type Limiter struct {
	pace   *rate.Limiter
	window *Window
}

// New creates a limiter for cfg.
func New(cfg Config) *Limiter {
	l := &Limiter{}
	if cfg.PerSecond > 0 {
		l.pace = rate.NewLimiter(rate.Every(time.Second/time.Duration(cfg.PerSecond)), 1)
	}
	if cfg.PerMinute > 0 {
		l.window = NewWindow(cfg.PerMinute, time.Minute)
	}
	return l
}

// Wait blocks until a call may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	if l.pace != nil {
		if err := l.pace.Wait(ctx); err != nil {
			return err
		}
	}
	if l.window != nil {
		return l.window.Wait(ctx)
	}
	return nil
}

// Window admits at most limit calls in any sliding window of the given
// length. Each caller reserves a slot under the lock and then sleeps until
// it, so slots are handed out first come first served.
type Window struct {
	limit  int
	length time.Duration
	now    func() time.Time

	mu    sync.Mutex
	slots []time.Time // ascending
}

// NewWindow creates a sliding-window limiter.
func NewWindow(limit int, length time.Duration) *Window {
	return &Window{limit: limit, length: length, now: time.Now}
}

// Reserve books the next free slot and returns when it starts.
func (w *Window) Reserve() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	cutoff := now.Add(-w.length)
	drop := 0
	for drop < len(w.slots) && !w.slots[drop].After(cutoff) {
		drop++
	}
	w.slots = w.slots[drop:]

	at := now
	if len(w.slots) >= w.limit {
		if free := w.slots[len(w.slots)-w.limit].Add(w.length); free.After(at) {
			at = free
		}
	}
	w.slots = append(w.slots, at)
	return at
}

// Wait reserves a slot and sleeps until it. A cancelled caller keeps its
// slot, which can only make later callers wait longer, never shorter.
func (w *Window) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	delay := w.Reserve().Sub(w.now())
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
