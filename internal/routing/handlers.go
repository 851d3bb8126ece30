package routing

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"remote-execution-client/internal/execution"
	"remote-execution-client/internal/files"
	"remote-execution-client/internal/queue"
	"remote-execution-client/internal/repository"
)

type ExecutionHandlers struct {
	Client      execution.Submitter
	FileHandler files.Files
	Repo        repository.Repository
	Queue       queue.Queue
	Translator  ut.Translator
	Validator   *validator.Validate
	// Timeout bounds synchronous executions.
	Timeout time.Duration
}
