package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimitExceededMessage is returned to a client once its budget is spent.
const RateLimitExceededMessage = "Rate limit exceeded. Please wait a moment."

// IPRateLimiter allows every client address at most requests within any
// window, keeping the time of each accepted request.
type IPRateLimiter struct {
	mu        sync.Mutex
	ips       map[string][]time.Time
	requests  int
	window    time.Duration
	lastSweep time.Time

	now func() time.Time
}

// NewIPRateLimiter allows requests per window for every address. A budget of
// zero or less disables limiting.
func NewIPRateLimiter(requests int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		ips:      make(map[string][]time.Time),
		requests: requests,
		window:   window,
		now:      time.Now,
	}
}

// Allow records a request for ip when it still fits in the window.
func (i *IPRateLimiter) Allow(ip string) bool {
	if i.requests <= 0 || i.window <= 0 {
		return true
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	cutoff := now.Add(-i.window)

	if now.Sub(i.lastSweep) > i.window {
		i.sweep(cutoff)
		i.lastSweep = now
	}

	recent := prune(i.ips[ip], cutoff)

	if len(recent) >= i.requests {
		i.ips[ip] = recent
		return false
	}

	i.ips[ip] = append(recent, now)
	return true
}

// sweep drops addresses without a request inside the window.
func (i *IPRateLimiter) sweep(cutoff time.Time) {
	for ip, times := range i.ips {
		if len(prune(times, cutoff)) == 0 {
			delete(i.ips, ip)
		}
	}
}

// prune removes the times at or before cutoff, times are kept in order.
func prune(times []time.Time, cutoff time.Time) []time.Time {
	index := 0

	for index < len(times) && !times[index].After(cutoff) {
		index++
	}

	return times[index:]
}

// getIP prefers the first address of X-Forwarded-For, the client closest to
// the original request.
func (i *IPRateLimiter) getIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}

func (i *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !i.Allow(i.getIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": RateLimitExceededMessage})

			return
		}

		next.ServeHTTP(w, r)
	})
}

func RateLimitMiddleware(requests int, window time.Duration) func(http.Handler) http.Handler {
	return NewIPRateLimiter(requests, window).Middleware
}
