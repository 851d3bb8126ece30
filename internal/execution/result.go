package execution

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

type Result struct {
	Platform Platform
	// The HTTP status code returned by the platform. Non-2xx codes are kept
	// here for the caller to inspect and never turned into an error.
	StatusCode int
	// RawPayload is exactly the deserialized JSON response.
	RawPayload any
	// Body holds the response bytes as they were received.
	Body json.RawMessage

	// Best-effort extractions, nil when the payload does not carry the value
	// as a string at the known key path.
	Stdout *string
	Stderr *string
	Status *string
}

func (r *Result) MarshalZerologObject(e *zerolog.Event) {
	e.Str("platform", r.Platform.String()).
		Int("statusCode", r.StatusCode).
		Int("bodyBytes", len(r.Body))

	if r.Status != nil {
		e.Str("status", *r.Status)
	}
}

func decodeResult(platform Platform, statusCode int, body []byte) (*Result, error) {
	result := &Result{
		Platform:   platform,
		StatusCode: statusCode,
		Body:       body,
	}

	if err := json.Unmarshal(body, &result.RawPayload); err != nil {
		return nil, &DecodeError{
			Platform:   platform,
			StatusCode: statusCode,
			Body:       body,
			Err:        err,
		}
	}

	switch platform {
	case Judge0:
		extractJudge0(result)
	case Piston:
		extractPiston(result)
	}

	return result, nil
}

// upstreamError returns the platform's own error report when the payload
// carries one, without interpreting it any further.
func (r *Result) upstreamError() *UpstreamError {
	var message *string

	switch r.Platform {
	case Judge0:
		message = judge0ErrorMessage(r.RawPayload)
	case Piston:
		message = pistonErrorMessage(r.RawPayload)
	}

	if message == nil {
		return nil
	}

	return &UpstreamError{
		Platform:   r.Platform,
		StatusCode: r.StatusCode,
		Message:    *message,
	}
}

// lookupString walks nested JSON objects along path and returns the string
// found at the end of it.
func lookupString(payload any, path ...string) *string {
	current := payload

	for _, key := range path {
		object, ok := current.(map[string]any)

		if !ok {
			return nil
		}

		if current, ok = object[key]; !ok {
			return nil
		}
	}

	value, ok := current.(string)

	if !ok {
		return nil
	}

	return &value
}
