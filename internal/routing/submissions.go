package routing

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"remote-execution-client/internal/files"
	"remote-execution-client/internal/queue"
	"remote-execution-client/internal/repository"
	"remote-execution-client/internal/validation"
)

// marshalMessage encodes the message published to the queue.
var marshalMessage = json.Marshal

// HandleQueueSubmission records the execution and queues it for a worker.
func (h ExecutionHandlers) HandleQueueSubmission(w http.ResponseWriter, r *http.Request) {
	var body SubmissionRequest

	if err := decodeJSONBody(w, r, &body); err != nil {
		handleDecodeError(w, err)
		return
	}

	if err := h.Validator.Struct(&body); err != nil {
		handleJSONResponse(w, ErrorResponse{
			Errors: validation.TranslateError(err, h.Translator),
		}, http.StatusBadRequest)

		return
	}

	requestID := uuid.NewString()

	language := body.Language
	if language == "" {
		language = strconv.Itoa(body.LanguageID)
	}

	if err := h.FileHandler.WriteFile(&files.File{
		ID:   requestID,
		Name: files.SourceFileName,
		Data: []byte(body.SourceCode),
	}); err != nil {
		log.Error().Err(err).Str("id", requestID).Msg("failed to store source code")
	}

	if err := h.Repo.InsertExecution(&repository.Execution{
		ID:       requestID,
		Platform: body.Platform,
		Language: language,
		Status:   repository.StatusPending,
	}); err != nil {
		log.Error().Err(err).Msg("failed to create execution record")
		handleJSONResponse(w, ErrorResponse{Error: "failed to create execution record"}, http.StatusInternalServerError)

		return
	}

	message, err := marshalMessage(queue.ExecutionMessage{
		ID:             requestID,
		Platform:       body.Platform,
		LanguageID:     body.LanguageID,
		Language:       body.Language,
		Version:        body.Version,
		SourceCode:     body.SourceCode,
		TimeoutSeconds: body.TimeoutSeconds,
	})

	if err != nil {
		log.Error().Err(err).Str("id", requestID).Msg("failed to encode execution request")

		_, _ = h.Repo.UpdateExecution(requestID, repository.Execution{
			Status: repository.StatusFailed,
			Error:  err.Error(),
		})

		handleJSONResponse(w, ErrorResponse{Error: "failed to queue execution request"}, http.StatusInternalServerError)

		return
	}

	if err := h.Queue.SubmitMessageToQueue(message); err != nil {
		log.Error().Err(err).Str("id", requestID).Msg("failed to queue execution request")

		_, _ = h.Repo.UpdateExecution(requestID, repository.Execution{
			Status: repository.StatusFailed,
			Error:  err.Error(),
		})

		handleJSONResponse(w, ErrorResponse{Error: "failed to queue execution request"}, http.StatusInternalServerError)

		return
	}

	handleJSONResponse(w, QueueSubmissionResponse{ID: requestID}, http.StatusAccepted)
}

// HandleGetSubmission returns the execution record and, once stored, the
// platform's response.
func (h ExecutionHandlers) HandleGetSubmission(w http.ResponseWriter, r *http.Request) {
	idValue, ok := mux.Vars(r)["id"]

	if !ok {
		handleJSONResponse(w, ErrorResponse{Error: "no or invalid execution id provided."}, http.StatusBadRequest)
		return
	}

	parsedID, err := uuid.Parse(idValue)

	if err != nil {
		handleJSONResponse(w, ErrorResponse{Error: "failed to parse id value"}, http.StatusBadRequest)
		return
	}

	record, err := h.Repo.GetExecution(parsedID.String())

	if errors.Is(err, repository.ErrExecutionNotFound) {
		handleJSONResponse(w, ErrorResponse{Error: "the execution does not exist by the provided id."}, http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error().Err(err).Str("id", parsedID.String()).Msg("failed to get execution")
		handleJSONResponse(w, ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)

		return
	}

	resp := SubmissionInfoResponse{
		ID:             record.ID,
		Platform:       record.Platform,
		Language:       record.Language,
		Status:         string(record.Status),
		HTTPStatus:     record.HTTPStatus,
		UpstreamStatus: record.UpstreamStatus,
		Error:          record.Error,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}

	if data, fileErr := h.FileHandler.GetFile(record.ID, files.ResultFileName); fileErr == nil && json.Valid(data) {
		resp.Result = data
	}

	handleJSONResponse(w, resp, http.StatusOK)
}
