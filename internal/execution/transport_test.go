package execution

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := NewClient(&http.Client{}, &Config{
		Judge0URL:      baseURL,
		PistonURL:      baseURL,
		DefaultTimeout: 5 * time.Second,
	})

	require.NoError(t, err)
	return client
}

// slowServer never answers in time. The body is drained so the server
// notices the client hanging up and Close does not wait for the fallback.
func slowServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)

		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
}

func TestSubmit_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client := newTestClient(t, baseURL)
	result, err := client.Submit(context.Background(), &Request{
		Platform:   Judge0,
		LanguageID: 71,
		SourceCode: "print(1)",
	}, time.Second)

	var networkErr *NetworkError
	require.True(t, errors.As(err, &networkErr), "expected a network error, got %v", err)
	assert.Equal(t, Judge0, networkErr.Platform)
	assert.Equal(t, baseURL+"/submissions?base64_encoded=false&wait=true", networkErr.Endpoint)
	assert.False(t, networkErr.Timeout())
	assert.Nil(t, result)
}

func TestSubmit_TimeoutExceeded(t *testing.T) {
	srv := slowServer()
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	result, err := client.Submit(context.Background(), &Request{
		Platform:   Piston,
		Language:   "python",
		SourceCode: "import time; time.sleep(10)",
	}, 100*time.Millisecond)

	var networkErr *NetworkError
	require.True(t, errors.As(err, &networkErr), "expected a network error, got %v", err)
	assert.True(t, networkErr.Timeout())
	assert.False(t, errors.Is(err, ErrCancelled))
	assert.Nil(t, result)

	// the server notices the abandoned request instead of holding it open.
	closed := make(chan struct{})

	go func() {
		srv.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("server kept serving the timed out request")
	}
}

func TestSubmit_Cancelled(t *testing.T) {
	srv := slowServer()
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	client := newTestClient(t, srv.URL)
	result, err := client.Submit(ctx, &Request{
		Platform:   Piston,
		Language:   "python",
		SourceCode: "import time; time.sleep(10)",
	}, 5*time.Second)

	assert.True(t, errors.Is(err, ErrCancelled), "expected cancellation, got %v", err)
	assert.Nil(t, result)
}

func TestSubmit_ConcurrentCallers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"run":{"stdout":"ok\n"}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	errs := make(chan error, 8)

	for i := 0; i < cap(errs); i++ {
		go func() {
			result, err := client.Submit(context.Background(), &Request{
				Platform:   Piston,
				Language:   "python",
				SourceCode: "print('ok')",
			}, time.Second)

			if err == nil && (result.Stdout == nil || *result.Stdout != "ok\n") {
				err = errors.New("unexpected stdout")
			}

			errs <- err
		}()
	}

	for i := 0; i < cap(errs); i++ {
		assert.NoError(t, <-errs)
	}
}

func TestNewClient(t *testing.T) {
	t.Run("should require an http client", func(t *testing.T) {
		_, err := NewClient(nil, &Config{DefaultTimeout: time.Second})
		assert.Error(t, err)
	})

	t.Run("should require a positive default timeout", func(t *testing.T) {
		_, err := NewClient(&http.Client{}, &Config{})
		assert.Error(t, err)

		_, err = NewClient(&http.Client{}, nil)
		assert.Error(t, err)
	})

	t.Run("should fill in the public endpoints", func(t *testing.T) {
		client, err := NewClient(&http.Client{}, &Config{DefaultTimeout: time.Second})
		require.NoError(t, err)

		assert.Equal(t, DefaultJudge0URL, client.config.Judge0URL)
		assert.Equal(t, DefaultPistonURL, client.config.PistonURL)
		assert.Equal(t, DefaultMaxResponseSize, client.config.MaxResponseSize)
	})
}
