package queue

import (
	"time"

	"github.com/rs/zerolog"

	"remote-execution-client/internal/execution"
)

// ExecutionMessage is the body of a queued execution request.
type ExecutionMessage struct {
	ID             string `json:"id" validate:"required,uuid"`
	Platform       string `json:"platform" validate:"required,oneof=judge0 piston"`
	LanguageID     int    `json:"language_id,omitempty" validate:"gte=0"`
	Language       string `json:"language,omitempty"`
	Version        string `json:"version,omitempty"`
	SourceCode     string `json:"source_code" validate:"required"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" validate:"gte=0"`
}

func (m *ExecutionMessage) MarshalZerologObject(e *zerolog.Event) {
	e.Str("id", m.ID).
		Str("platform", m.Platform).
		Int("timeoutSeconds", m.TimeoutSeconds)
}

// Request converts the message into an execution request. The language
// identifier rules of the platform are enforced by the client.
func (m *ExecutionMessage) Request() (*execution.Request, error) {
	platform, err := execution.ParsePlatform(m.Platform)

	if err != nil {
		return nil, err
	}

	return &execution.Request{
		Platform:   platform,
		LanguageID: m.LanguageID,
		Language:   m.Language,
		Version:    m.Version,
		SourceCode: m.SourceCode,
	}, nil
}

func (m *ExecutionMessage) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}
