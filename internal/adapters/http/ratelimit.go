package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type ipWindow struct {
	count int
	reset time.Time
}

// ipRateLimiter is a coarse fixed-window counter keyed by client IP. It
// guards the history endpoint against scraping, nothing more.
type ipRateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*ipWindow
}

func newIPRateLimiter(limit int, window time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*ipWindow),
	}
}

func (l *ipRateLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	st, ok := l.clients[ip]
	if !ok || now.After(st.reset) {
		l.clients[ip] = &ipWindow{count: 1, reset: now.Add(l.window)}
		return true
	}
	if st.count >= l.limit {
		return false
	}
	st.count++
	return true
}

func rateLimitMiddleware(l *ipRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
