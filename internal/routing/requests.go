package routing

import (
	"strings"

	"remote-execution-client/internal/execution"
)

// RunRequest is the body of a synchronous execution. Platform defaults to
// piston; judge0 takes its language either as language_id or as a numeric
// language.
type RunRequest struct {
	Platform   string `json:"platform"`
	Language   string `json:"language"`
	LanguageID int    `json:"language_id"`
	Version    string `json:"version"`
	Content    string `json:"content"`
}

func (r *RunRequest) complete() bool {
	return strings.TrimSpace(r.Content) != "" && (r.Language != "" || r.LanguageID > 0)
}

func (r *RunRequest) executionRequest() (*execution.Request, error) {
	platform := execution.Piston

	if r.Platform != "" {
		parsed, err := execution.ParsePlatform(r.Platform)

		if err != nil {
			return nil, err
		}

		platform = parsed
	}

	request := &execution.Request{
		Platform:   platform,
		LanguageID: r.LanguageID,
		Version:    r.Version,
		SourceCode: r.Content,
	}

	if platform == execution.Judge0 && request.LanguageID > 0 {
		return request, nil
	}

	if err := execution.ParseLanguage(platform, r.Language, request); err != nil {
		return nil, err
	}

	return request, nil
}

// SubmissionRequest is the body of an asynchronous execution.
type SubmissionRequest struct {
	Platform       string `json:"platform" validate:"required,oneof=judge0 piston"`
	LanguageID     int    `json:"language_id" validate:"required_if=Platform judge0,gte=0"`
	Language       string `json:"language" validate:"required_if=Platform piston"`
	Version        string `json:"version"`
	SourceCode     string `json:"source_code" validate:"required"`
	TimeoutSeconds int    `json:"timeout_seconds" validate:"gte=0,lte=300"`
}
