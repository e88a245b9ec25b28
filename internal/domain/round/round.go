// Package round tracks the player-side clock of a single game round.
package round

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultTickInterval is how often the displayed time refreshes.
const DefaultTickInterval = 500 * time.Millisecond

// Round is a stopwatch with an active flag. Clicks are only meaningful while
// the round is active; Stop freezes the elapsed time as the final result.
type Round struct {
	mu      sync.Mutex
	now     func() time.Time
	started time.Time
	final   time.Duration
	active  bool
	done    chan struct{}
}

// Option applies a configuration option to a Round.
type Option func(*Round)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Round) {
		if now != nil {
			r.now = now
		}
	}
}

// New returns an inactive round showing 00:00.
func New(opts ...Option) *Round {
	r := &Round{now: time.Now, done: closedChan()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// Start begins (or restarts) the round from zero.
func (r *Round) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		close(r.done)
	}
	r.started = r.now()
	r.final = 0
	r.active = true
	r.done = make(chan struct{})
}

// Stop ends the round and returns the frozen elapsed time. Stopping an
// inactive round returns the last result unchanged.
func (r *Round) Stop() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return r.final
	}
	r.final = r.now().Sub(r.started)
	r.active = false
	close(r.done)
	return r.final
}

// Reset stops the round and clears the displayed time.
func (r *Round) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		close(r.done)
		r.done = closedChan()
	}
	r.active = false
	r.final = 0
}

// Active reports whether clicks should be accepted.
func (r *Round) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Elapsed is the running time while active, the final time otherwise.
func (r *Round) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		return r.now().Sub(r.started)
	}
	return r.final
}

// Display formats Elapsed as MM:SS.
func (r *Round) Display() string {
	return FormatElapsed(r.Elapsed())
}

// Done is closed when the current round stops or resets.
func (r *Round) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// FormatElapsed renders d as zero-padded minutes and seconds. Minutes are
// not wrapped at an hour.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// Run calls onTick with the displayed time every interval until the round
// stops or ctx is cancelled. It returns immediately for an inactive round.
func Run(ctx context.Context, r *Round, interval time.Duration, onTick func(string)) {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	done := r.Done()
	select {
	case <-done:
		return
	default:
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
			onTick(r.Display())
		}
	}
}
