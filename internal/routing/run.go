package routing

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"remote-execution-client/internal/execution"
)

// HandleRun executes the code synchronously and replies with the platform's
// response body as it was received. A platform error in the body is passed
// through, only failures to get a response at all become a 500.
func (h ExecutionHandlers) HandleRun(w http.ResponseWriter, r *http.Request) {
	var body RunRequest

	if err := decodeJSONBody(w, r, &body); err != nil {
		handleDecodeError(w, err)
		return
	}

	if !body.complete() {
		handleJSONResponse(w, ErrorResponse{Error: RequiredFieldsMessage}, http.StatusBadRequest)
		return
	}

	request, err := body.executionRequest()

	if err != nil {
		handleJSONResponse(w, ErrorResponse{Error: err.Error()}, http.StatusBadRequest)
		return
	}

	result, err := h.Client.Submit(r.Context(), request, h.Timeout)

	var validationErr *execution.ValidationError

	switch {
	case result != nil:
		if err != nil {
			log.Warn().Err(err).Msg("platform rejected the execution")
		}

		handleRawJSONResponse(w, result.Body, http.StatusOK)

	case errors.As(err, &validationErr):
		handleJSONResponse(w, ErrorResponse{Error: strings.Join(validationErr.Errors, "; ")}, http.StatusBadRequest)

	default:
		log.Error().Err(err).Msg("code execution failed")
		handleJSONResponse(w, ErrorResponse{Error: ExecutionFailedMessage}, http.StatusInternalServerError)
	}
}
