package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiterWindow(t *testing.T) {
	l := newIPRateLimiter(3, time.Minute)
	now := time.Unix(1700000000, 0)

	for i := 0; i < 3; i++ {
		assert.True(t, l.allow("1.2.3.4", now))
	}
	assert.False(t, l.allow("1.2.3.4", now))

	// A different client has its own window.
	assert.True(t, l.allow("5.6.7.8", now))

	// Past the window the counter resets.
	assert.True(t, l.allow("1.2.3.4", now.Add(time.Minute+time.Second)))
}
