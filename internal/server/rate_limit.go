package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter caps the number of requests per client IP within a fixed
// window. A simulation run allocates a 2^(m+1) statevector and samples up to
// hundreds of thousands of shots, so unthrottled clients can exhaust the
// server; the limiter bounds that exposure.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientWindow
	rate     int
	window   time.Duration
	cleanup  time.Duration
	stopChan chan struct{}
}

// clientWindow tracks the remaining request budget for one client.
type clientWindow struct {
	remaining   int
	windowStart time.Time
}

// RateLimiterConfig holds configuration for the rate limiter.
type RateLimiterConfig struct {
	// RequestsPerMinute is the per-client request budget within one minute.
	RequestsPerMinute int
	// CleanupInterval is how often expired client entries are removed.
	CleanupInterval time.Duration
}

// DefaultRateLimiterConfig returns the default rate limiter configuration:
// 60 requests per minute per client, cleanup every 5 minutes.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerMinute: 60,
		CleanupInterval:   5 * time.Minute,
	}
}

// NewRateLimiter creates a rate limiter and starts its background cleanup
// goroutine. Call Stop to release it.
//
// Parameters:
//   - config: The rate limiter configuration; non-positive fields fall back
//     to the defaults.
//
// Returns:
//   - *RateLimiter: A new rate limiter instance.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = 60
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}

	rl := &RateLimiter{
		clients:  make(map[string]*clientWindow),
		rate:     config.RequestsPerMinute,
		window:   time.Minute,
		cleanup:  config.CleanupInterval,
		stopChan: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether a request from the given client fits its budget.
//
// Parameters:
//   - clientIP: The client's IP address.
//
// Returns:
//   - bool: true if the request is allowed, false if rate limited.
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists || now.Sub(client.windowStart) >= rl.window {
		rl.clients[clientIP] = &clientWindow{
			remaining:   rl.rate - 1,
			windowStart: now,
		}
		return true
	}

	if client.remaining > 0 {
		client.remaining--
		return true
	}
	return false
}

// cleanupLoop periodically drops clients whose window expired long ago.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for ip, client := range rl.clients {
				if now.Sub(client.windowStart) > rl.window*2 {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopChan:
			return
		}
	}
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopChan)
}

// rateLimitMiddleware rejects requests over the client's budget with a 429.
// Without a configured limiter it passes requests through unchanged.
func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.rateLimiter != nil && !s.rateLimiter.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			s.writeErrorResponse(w, http.StatusTooManyRequests,
				"Rate limit exceeded. Please try again later.")
			return
		}
		next(w, r)
	}
}

// clientIP extracts the client IP from the request, preferring the
// X-Forwarded-For and X-Real-IP headers set by proxies over RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The first entry is the originating client.
		if idx := strings.IndexByte(xff, ','); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// No port, or an unparseable address; strip IPv6 brackets.
		return strings.Trim(r.RemoteAddr, "[]")
	}
	return host
}
