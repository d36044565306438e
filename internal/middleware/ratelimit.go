// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// clientWindow holds the request times of one client inside the window.
type clientWindow struct {
	mu   sync.Mutex
	hits []time.Time
}

// RateLimiter limits requests per client IP over a sliding window. The
// editor posts an op per keystroke burst, so the limit guards the
// generator against runaway clients rather than normal use.
type RateLimiter struct {
	mu      sync.RWMutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
	stopCh  chan struct{}
}

// NewRateLimiter allows limit requests per window and client. A
// background goroutine drops idle clients until Stop is called.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-rl.stopCh:
				return
			}
		}
	}()

	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *RateLimiter) windowFor(key string) *clientWindow {
	rl.mu.RLock()
	cw, ok := rl.clients[key]
	rl.mu.RUnlock()
	if ok {
		return cw
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if cw, ok = rl.clients[key]; !ok {
		cw = &clientWindow{}
		rl.clients[key] = cw
	}
	return cw
}

// allow records a request for key and reports whether it is within the
// limit. When it is not, retry is the time until the oldest hit expires.
func (rl *RateLimiter) allow(key string) (ok bool, retry time.Duration) {
	cw := rl.windowFor(key)
	now := time.Now()
	cutoff := now.Add(-rl.window)

	cw.mu.Lock()
	defer cw.mu.Unlock()

	kept := cw.hits[:0]
	for _, ts := range cw.hits {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	cw.hits = kept

	if len(cw.hits) >= rl.limit {
		return false, cw.hits[0].Sub(cutoff)
	}
	cw.hits = append(cw.hits, now)
	return true, 0
}

// cleanup forgets clients with no hit inside the window.
func (rl *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, cw := range rl.clients {
		cw.mu.Lock()
		idle := len(cw.hits) == 0 || !cw.hits[len(cw.hits)-1].After(cutoff)
		cw.mu.Unlock()
		if idle {
			delete(rl.clients, key)
		}
	}
}

// Middleware rejects requests over the limit with 429 and Retry-After.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, retry := rl.allow(clientIP(r))
		if !ok {
			secs := int(retry.Round(time.Second) / time.Second)
			w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
			jsonError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the leftmost X-Forwarded-For address, then X-Real-IP,
// then the connection's remote address without its port.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
