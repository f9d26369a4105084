package app

import (
	"sync"
	"time"

	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/core"
)

// Rate limiting defaults: 8 accepted messages per 5 second window.
const (
	DefaultRateMax    = 8
	DefaultRateWindow = 5 * time.Second
)

type rateWindow struct {
	count int
	start time.Time
}

// RateLimiter bounds accepted messages per connection with a fixed
// window: the counter resets once the window expires and a message is
// accepted while the incremented count stays within the limit. Rejected
// attempts also count against the window.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[core.ConnID]*rateWindow
	max     int
	window  time.Duration
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	if max <= 0 {
		max = DefaultRateMax
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &RateLimiter{
		windows: make(map[core.ConnID]*rateWindow),
		max:     max,
		window:  window,
	}
}

// TryAccept counts a message against the connection's current window.
// The cutoff is hard, not a token bucket: a burst straddling a window
// boundary can admit up to 2*max-1 messages.
func (rl *RateLimiter) TryAccept(id core.ConnID, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	w, ok := rl.windows[id]
	if !ok || now.Sub(w.start) > rl.window {
		w = &rateWindow{start: now}
		rl.windows[id] = w
	}
	w.count++
	return w.count <= rl.max
}

// Forget drops the connection's window on disconnect. There is no idle
// sweep; an entry lives as long as its connection does.
func (rl *RateLimiter) Forget(id core.ConnID) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.windows, id)
}
