package queue

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"remote-execution-client/internal/execution"
	"remote-execution-client/internal/files"
	"remote-execution-client/internal/repository"
	"remote-execution-client/internal/validation"
)

// ExecutionHandler runs queued execution requests against the remote
// platform and records their outcome.
type ExecutionHandler struct {
	Client      execution.Submitter
	FileHandler files.Files
	Repo        repository.Repository
	Translator  ut.Translator
	Validator   *validator.Validate
	// Timeout is used for messages that do not carry their own.
	Timeout time.Duration
}

// HandleMessage returns an error only when the message could not be processed
// at all. A failed execution is recorded against the execution and is not an
// error of the handler.
func (h *ExecutionHandler) HandleMessage(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	var message ExecutionMessage

	if err := json.Unmarshal(data, &message); err != nil {
		return errors.Wrap(err, "failed to parse execution request")
	}

	if err := h.Validator.Struct(&message); err != nil {
		return errors.Errorf("invalid execution request: %s",
			strings.Join(validation.TranslateError(err, h.Translator), "; "))
	}

	log.Info().Object("message", &message).Msg("handling execution request")

	if _, err := h.Repo.UpdateExecution(message.ID, repository.Execution{Status: repository.StatusRunning}); err != nil {
		return err
	}

	request, err := message.Request()

	if err != nil {
		return h.fail(message.ID, nil, err)
	}

	timeout := message.Timeout()

	if timeout <= 0 {
		timeout = h.Timeout
	}

	result, err := h.Client.Submit(context.Background(), request, timeout)

	if result == nil {
		return h.fail(message.ID, nil, err)
	}

	payload, marshalErr := files.MarshalJSON(result.RawPayload)

	if marshalErr != nil {
		return h.fail(message.ID, result, marshalErr)
	}

	if writeErr := h.FileHandler.WriteFile(&files.File{
		ID:   message.ID,
		Name: files.ResultFileName,
		Data: payload,
	}); writeErr != nil {
		return h.fail(message.ID, result, writeErr)
	}

	// an upstream error comes with a result, the execution is stored but
	// marked as failed with the platform's message.
	if err != nil {
		return h.fail(message.ID, result, err)
	}

	log.Info().Str("id", message.ID).Object("result", result).Msg("execution completed")

	_, updateErr := h.Repo.UpdateExecution(message.ID, withResult(repository.Execution{
		Status: repository.StatusCompleted,
	}, result))

	return updateErr
}

func (h *ExecutionHandler) fail(id string, result *execution.Result, cause error) error {
	log.Warn().Err(cause).Str("id", id).Msg("execution failed")

	_, err := h.Repo.UpdateExecution(id, withResult(repository.Execution{
		Status: repository.StatusFailed,
		Error:  cause.Error(),
	}, result))

	return err
}

func withResult(columns repository.Execution, result *execution.Result) repository.Execution {
	if result == nil {
		return columns
	}

	columns.HTTPStatus = result.StatusCode

	if result.Status != nil {
		columns.UpstreamStatus = *result.Status
	}

	return columns
}
