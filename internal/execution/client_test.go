package execution

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"

	"remote-execution-client/internal/memory"
)

type ClientSuite struct {
	suite.Suite

	ctx    context.Context
	server *httptest.Server
	client *Client

	// the response the fake platform replies with and what it last received.
	responseStatus int
	responseBody   string
	calls          atomic.Int32
	lastPath       string
	lastQuery      map[string]string
	lastBody       map[string]any
}

func (s *ClientSuite) SetupTest() {
	s.ctx = context.Background()
	s.responseStatus = http.StatusOK
	s.responseBody = `{}`
	s.calls.Store(0)
	s.lastBody = nil

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		s.lastPath = r.URL.Path
		s.lastQuery = map[string]string{}

		for key := range r.URL.Query() {
			s.lastQuery[key] = r.URL.Query().Get(key)
		}

		data, _ := io.ReadAll(r.Body)
		s.lastBody = nil
		_ = json.Unmarshal(data, &s.lastBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.responseStatus)
		_, _ = w.Write([]byte(s.responseBody))
	}))

	client, err := NewClient(s.server.Client(), &Config{
		Judge0URL:      s.server.URL,
		PistonURL:      s.server.URL + "/",
		DefaultTimeout: 5 * time.Second,
	})

	s.Require().NoError(err)
	s.client = client
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestJudge0RequestBody() {
	_, err := s.client.Submit(s.ctx, &Request{
		Platform:   Judge0,
		LanguageID: 71,
		SourceCode: "print(1)\n",
	}, 0)

	s.Require().NoError(err)
	s.Equal("/submissions", s.lastPath)
	s.Equal(map[string]string{"base64_encoded": "false", "wait": "true"}, s.lastQuery)
	s.Equal(map[string]any{
		"language_id": float64(71),
		"source_code": "print(1)\n",
	}, s.lastBody)
}

func (s *ClientSuite) TestPistonRequestBody() {
	s.Run("should send the language, version and a single main.py file", func() {
		_, err := s.client.Submit(s.ctx, &Request{
			Platform:   Piston,
			Language:   "python",
			Version:    "3.10.0",
			SourceCode: "print(2)",
		}, time.Second)

		s.Require().NoError(err)
		s.Equal("/api/v2/piston/execute", s.lastPath)
		s.Equal(map[string]any{
			"language": "python",
			"version":  "3.10.0",
			"files": []any{
				map[string]any{"name": "main.py", "content": "print(2)"},
			},
		}, s.lastBody)
	})

	s.Run("should default to the newest version and keep a custom file name", func() {
		_, err := s.client.Submit(s.ctx, &Request{
			Platform:   Piston,
			Language:   "javascript",
			FileName:   "index.js",
			SourceCode: "console.log(2)",
		}, time.Second)

		s.Require().NoError(err)
		s.Equal("*", s.lastBody["version"])
		s.Equal([]any{
			map[string]any{"name": "index.js", "content": "console.log(2)"},
		}, s.lastBody["files"])
	})
}

func (s *ClientSuite) TestJudge0Extraction() {
	s.responseBody = `{"stdout":"1\n","status":{"description":"Accepted"}}`

	result, err := s.client.Submit(s.ctx, &Request{
		Platform:   Judge0,
		LanguageID: 71,
		SourceCode: "print(1)",
	}, time.Second)

	s.Require().NoError(err)
	s.Equal(map[string]any{
		"stdout": "1\n",
		"status": map[string]any{"description": "Accepted"},
	}, result.RawPayload)
	s.Require().NotNil(result.Stdout)
	s.Equal("1\n", *result.Stdout)
	s.Require().NotNil(result.Status)
	s.Equal("Accepted", *result.Status)
	s.Nil(result.Stderr)
	s.Equal(http.StatusOK, result.StatusCode)
	s.JSONEq(s.responseBody, string(result.Body))
}

func (s *ClientSuite) TestPistonExtraction() {
	s.responseBody = `{"run":{"stdout":"2\n","stderr":"","code":0}}`

	result, err := s.client.Submit(s.ctx, &Request{
		Platform:   Piston,
		Language:   "python",
		Version:    "3.10.0",
		SourceCode: "print(2)",
	}, time.Second)

	s.Require().NoError(err)
	s.Require().NotNil(result.Stdout)
	s.Equal("2\n", *result.Stdout)
	s.Require().NotNil(result.Stderr)
	s.Equal("", *result.Stderr)
	s.Nil(result.Status)
}

func (s *ClientSuite) TestNullValuesAreLeftUnset() {
	s.responseBody = `{"stdout":null,"stderr":null,"status":"not an object"}`

	result, err := s.client.Submit(s.ctx, &Request{
		Platform:   Judge0,
		LanguageID: 71,
		SourceCode: "pass",
	}, time.Second)

	s.Require().NoError(err)
	s.Nil(result.Stdout)
	s.Nil(result.Stderr)
	s.Nil(result.Status)
}

func (s *ClientSuite) TestIdenticalSubmissionsYieldIdenticalPayloads() {
	s.responseBody = `{"run":{"stdout":"same\n","code":0},"language":"python","version":"3.10.0"}`

	request := &Request{Platform: Piston, Language: "python", SourceCode: "print('same')"}

	first, err := s.client.Submit(s.ctx, request, time.Second)
	s.Require().NoError(err)

	second, err := s.client.Submit(s.ctx, request, time.Second)
	s.Require().NoError(err)

	s.Equal(first.RawPayload, second.RawPayload)
	s.Equal(int32(2), s.calls.Load())
}

func (s *ClientSuite) TestValidationHappensBeforeAnyNetworkCall() {
	tests := []struct {
		name    string
		request *Request
		want    []string
	}{{
		name:    "nil request",
		request: nil,
		want:    []string{"request is required"},
	}, {
		name:    "empty source code",
		request: &Request{Platform: Judge0, LanguageID: 71},
		want:    []string{"SourceCode is a required field"},
	}, {
		name:    "judge0 without a language id",
		request: &Request{Platform: Judge0, Language: "python", SourceCode: "print(1)"},
		want:    []string{"LanguageID must be greater than 0"},
	}, {
		name:    "piston without a language",
		request: &Request{Platform: Piston, LanguageID: 71, SourceCode: "print(1)"},
		want:    []string{"Language is a required field"},
	}, {
		name:    "unknown platform",
		request: &Request{SourceCode: "print(1)"},
		want:    []string{"Platform must be one of [Judge0 Piston]"},
	}}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			result, err := s.client.Submit(s.ctx, tt.request, time.Second)

			var validationErr *ValidationError
			s.Require().True(errors.As(err, &validationErr), "expected a validation error, got %v", err)
			s.Equal(tt.want, validationErr.Errors)
			s.Nil(result)
		})
	}

	s.Equal(int32(0), s.calls.Load())
}

func (s *ClientSuite) TestNonSuccessStatusIsReturnedNotFailed() {
	s.responseStatus = http.StatusServiceUnavailable
	s.responseBody = `{"status":{"id":13,"description":"Internal Error"}}`

	result, err := s.client.Submit(s.ctx, &Request{Platform: Judge0, LanguageID: 71, SourceCode: "print(1)"}, time.Second)

	s.Require().NoError(err)
	s.Equal(http.StatusServiceUnavailable, result.StatusCode)
	s.Require().NotNil(result.Status)
	s.Equal("Internal Error", *result.Status)
}

func (s *ClientSuite) TestUpstreamErrorIsReturnedWithTheResult() {
	s.Run("piston message", func() {
		s.responseStatus = http.StatusBadRequest
		s.responseBody = `{"message":"python-9.9.9 runtime is unknown"}`

		result, err := s.client.Submit(s.ctx, &Request{Platform: Piston, Language: "python", Version: "9.9.9", SourceCode: "print(1)"}, time.Second)

		var upstreamErr *UpstreamError
		s.Require().True(errors.As(err, &upstreamErr))
		s.Equal("python-9.9.9 runtime is unknown", upstreamErr.Message)
		s.Equal(http.StatusBadRequest, upstreamErr.StatusCode)
		s.Equal(Piston, upstreamErr.Platform)

		s.Require().NotNil(result)
		s.Equal(map[string]any{"message": "python-9.9.9 runtime is unknown"}, result.RawPayload)
	})

	s.Run("judge0 error", func() {
		s.responseStatus = http.StatusUnprocessableEntity
		s.responseBody = `{"error":"wait not allowed"}`

		result, err := s.client.Submit(s.ctx, &Request{Platform: Judge0, LanguageID: 71, SourceCode: "print(1)"}, time.Second)

		var upstreamErr *UpstreamError
		s.Require().True(errors.As(err, &upstreamErr))
		s.Equal("wait not allowed", upstreamErr.Message)
		s.Require().NotNil(result)
		s.Equal(http.StatusUnprocessableEntity, result.StatusCode)
	})
}

func (s *ClientSuite) TestMalformedResponseIsADecodeError() {
	s.responseBody = `{"stdout": "1\n"`

	result, err := s.client.Submit(s.ctx, &Request{Platform: Judge0, LanguageID: 71, SourceCode: "print(1)"}, time.Second)

	var decodeErr *DecodeError
	s.Require().True(errors.As(err, &decodeErr))
	s.Equal([]byte(s.responseBody), decodeErr.Body)
	s.Equal(http.StatusOK, decodeErr.StatusCode)
	s.Nil(result)
}

func (s *ClientSuite) TestOversizedResponseIsADecodeError() {
	client, err := NewClient(s.server.Client(), &Config{
		Judge0URL:       s.server.URL,
		DefaultTimeout:  time.Second,
		MaxResponseSize: 8 * memory.Byte,
	})
	s.Require().NoError(err)

	s.responseBody = `{"stdout":"far too long"}`

	_, err = client.Submit(s.ctx, &Request{Platform: Judge0, LanguageID: 71, SourceCode: "print(1)"}, 0)

	var decodeErr *DecodeError
	s.Require().True(errors.As(err, &decodeErr))
	s.True(errors.Is(err, memory.LimitExceeded))
	s.Len(decodeErr.Body, 8)
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}
