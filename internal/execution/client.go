package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"remote-execution-client/internal/memory"
	"remote-execution-client/internal/validation"
)

const (
	DefaultJudge0URL = "https://ce.judge0.com"
	DefaultPistonURL = "https://emkc.org"

	DefaultMaxResponseSize = 10 * memory.Megabyte
)

//go:generate mockgen -destination=mocks/mock_submitter.go -package=mocks remote-execution-client/internal/execution Submitter

// Submitter executes a single request on a remote platform.
type Submitter interface {
	Submit(ctx context.Context, request *Request, timeout time.Duration) (*Result, error)
}

type Config struct {
	// Base URLs of the platforms, without the endpoint path.
	Judge0URL string
	PistonURL string
	// DefaultTimeout bounds every submission that does not provide its own
	// timeout. It must be positive.
	DefaultTimeout time.Duration
	// MaxResponseSize limits how much of a response body is read.
	MaxResponseSize memory.Memory
}

// Client sends execution requests to Judge0 or Piston. It holds no mutable
// state and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	config     Config

	validate   *validator.Validate
	translator ut.Translator
}

var _ Submitter = (*Client)(nil)

// NewClient creates a client on top of the caller-owned httpClient, which
// carries the connection pool shared by all submissions.
func NewClient(httpClient *http.Client, config *Config) (*Client, error) {
	if httpClient == nil {
		return nil, errors.New("an http client is required")
	}

	if config == nil || config.DefaultTimeout <= 0 {
		return nil, errors.New("a positive default timeout is required")
	}

	client := &Client{httpClient: httpClient, config: *config}

	if client.config.Judge0URL == "" {
		client.config.Judge0URL = DefaultJudge0URL
	}

	if client.config.PistonURL == "" {
		client.config.PistonURL = DefaultPistonURL
	}

	if client.config.MaxResponseSize <= 0 {
		client.config.MaxResponseSize = DefaultMaxResponseSize
	}

	client.validate, client.translator = validation.NewValidator()
	client.validate.RegisterStructValidation(requestStructLevelValidation, Request{})

	return client, nil
}

// Submit sends the request to its platform and blocks until the response has
// been received or the timeout has passed. A timeout of zero or less uses the
// configured default.
//
// A non-2xx response is not an error: the result carries the status code and
// the decoded body. When the platform reports an error in the body, the
// result is returned together with an *UpstreamError.
func (c *Client) Submit(ctx context.Context, request *Request, timeout time.Duration) (*Result, error) {
	if err := c.Validate(request); err != nil {
		return nil, err
	}

	if timeout <= 0 {
		timeout = c.config.DefaultTimeout
	}

	endpoint, body, err := c.encode(request)

	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, endpoint, bytes.NewReader(body))

	if err != nil {
		return nil, errors.Wrap(err, "failed to create execution request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	log.Debug().
		Object("request", request).
		Str("endpoint", endpoint).
		Dur("timeout", timeout).
		Msg("submitting execution")

	resp, err := c.httpClient.Do(httpReq)

	if err != nil {
		return nil, c.transportError(ctx, request.Platform, endpoint, err)
	}

	defer resp.Body.Close()

	limit := c.config.MaxResponseSize.Bytes()
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))

	if err != nil {
		return nil, c.transportError(ctx, request.Platform, endpoint, err)
	}

	if int64(len(respBody)) > limit {
		return nil, &DecodeError{
			Platform:   request.Platform,
			StatusCode: resp.StatusCode,
			Body:       respBody[:limit],
			Err:        errors.Wrapf(memory.LimitExceeded, "response larger than %s", c.config.MaxResponseSize),
		}
	}

	result, err := decodeResult(request.Platform, resp.StatusCode, respBody)

	if err != nil {
		return nil, err
	}

	log.Debug().Object("result", result).Msg("execution completed")

	if upstreamErr := result.upstreamError(); upstreamErr != nil {
		return result, upstreamErr
	}

	return result, nil
}

// Validate checks the request without sending it.
func (c *Client) Validate(request *Request) error {
	if request == nil {
		return &ValidationError{Errors: []string{"request is required"}}
	}

	if err := c.validate.Struct(request); err != nil {
		return &ValidationError{Errors: validation.TranslateError(err, c.translator)}
	}

	return nil
}

func (c *Client) encode(request *Request) (endpoint string, body []byte, err error) {
	var payload any

	switch request.Platform {
	case Judge0:
		endpoint = strings.TrimRight(c.config.Judge0URL, "/") + judge0SubmissionPath
		payload = newJudge0Request(request)
	case Piston:
		endpoint = strings.TrimRight(c.config.PistonURL, "/") + pistonExecutePath
		payload = newPistonRequest(request)
	default:
		return "", nil, errors.Errorf("unsupported platform %s", request.Platform)
	}

	body, err = json.Marshal(payload)

	if err != nil {
		return "", nil, errors.Wrap(err, "failed to marshal execution request")
	}

	return endpoint, body, nil
}

// transportError separates a cancellation by the caller from every other
// failure of the call, which includes the call's own timeout.
func (c *Client) transportError(ctx context.Context, platform Platform, endpoint string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return errors.Wrapf(ErrCancelled, "%s submission", platform)
	}

	return &NetworkError{Platform: platform, Endpoint: endpoint, Err: err}
}
