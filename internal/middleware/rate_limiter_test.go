package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimitMiddleware(10, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(forwardedFor string, remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/code/run", nil)
		req.RemoteAddr = remoteAddr

		if forwardedFor != "" {
			req.Header.Set("X-Forwarded-For", forwardedFor)
		}

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		return recorder
	}

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, send("203.0.113.7", "10.0.0.1:1234").Code, "request %d", i)
	}

	limited := send("203.0.113.7, 10.0.0.2", "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.JSONEq(t, `{"error":"Rate limit exceeded. Please wait a moment."}`, limited.Body.String())

	assert.Equal(t, http.StatusOK, send("198.51.100.1", "10.0.0.1:1234").Code,
		"a different client has its own budget")
	assert.Equal(t, http.StatusOK, send("", "192.0.2.10:5555").Code,
		"the remote address is used without a forwarded header")
}

func TestIPRateLimiter_getIP(t *testing.T) {
	limiter := NewIPRateLimiter(1, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:4000"
	assert.Equal(t, "192.0.2.1", limiter.getIP(req))

	req.RemoteAddr = "not-an-address"
	assert.Equal(t, "not-an-address", limiter.getIP(req))

	req.Header.Set("X-Forwarded-For", " 203.0.113.9 , 10.0.0.1")
	assert.Equal(t, "203.0.113.9", limiter.getIP(req))
}

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func TestIPRateLimiter_SlidingWindow(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}

	limiter := NewIPRateLimiter(10, time.Minute)
	limiter.now = clock.now

	t.Run("should allow no more than the budget within any window", func(t *testing.T) {
		allowed := 0

		for second := 0; second < 60; second++ {
			if limiter.Allow("203.0.113.7") {
				allowed++
			}

			clock.advance(time.Second)
		}

		assert.Equal(t, 10, allowed)
	})

	t.Run("should allow requests again once the oldest leave the window", func(t *testing.T) {
		// the first ten requests were accepted at seconds 0 to 9 and the
		// clock now reads second 60.
		assert.True(t, limiter.Allow("203.0.113.7"))
		assert.False(t, limiter.Allow("203.0.113.7"))

		clock.advance(time.Second)
		assert.True(t, limiter.Allow("203.0.113.7"))
	})

	t.Run("should reject the request after the budget inside the window", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			assert.True(t, limiter.Allow("198.51.100.1"), "request %d", i)
			clock.advance(time.Second)
		}

		clock.advance(40 * time.Second)
		assert.False(t, limiter.Allow("198.51.100.1"))
	})

	t.Run("should forget addresses without recent requests", func(t *testing.T) {
		clock.advance(2 * time.Minute)
		assert.True(t, limiter.Allow("192.0.2.44"))

		limiter.mu.Lock()
		defer limiter.mu.Unlock()

		assert.Len(t, limiter.ips, 1)
		assert.Contains(t, limiter.ips, "192.0.2.44")
	})
}

func TestIPRateLimiter_Disabled(t *testing.T) {
	limiter := NewIPRateLimiter(0, time.Minute)

	for i := 0; i < 100; i++ {
		assert.True(t, limiter.Allow("203.0.113.7"))
	}
}
