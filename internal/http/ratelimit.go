package http

import (
	"sync"
	"time"
)

const (
	rateLimitWindow   = time.Minute
	rateLimitRequests = 60
	cleanupInterval   = 5 * time.Minute
)

// rateLimiter applies a fixed-window per-IP limit to mutating requests.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	done    chan struct{}
}

type clientWindow struct {
	count       int
	windowStart time.Time
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients: make(map[string]*clientWindow),
		done:    make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *rateLimiter) allow(clientIP string, metrics *securityMetrics) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cw, ok := rl.clients[clientIP]
	if !ok || now.Sub(cw.windowStart) >= rateLimitWindow {
		rl.clients[clientIP] = &clientWindow{count: 1, windowStart: now}
		return true
	}
	if cw.count >= rateLimitRequests {
		if metrics != nil {
			metrics.recordRateLimitHit()
			metrics.recordBlocked()
		}
		return false
	}
	cw.count++
	return true
}

func (rl *rateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.done:
			return
		}
	}
}

func (rl *rateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := time.Now().Add(-2 * rateLimitWindow)
	for ip, cw := range rl.clients {
		if cw.windowStart.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	close(rl.done)
}
