package routing

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	RequiredFieldsMessage  = "Language and content are required."
	ExecutionFailedMessage = "Failed to execute code."
)

type ErrorResponse struct {
	Error  string   `json:"error,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

type QueueSubmissionResponse struct {
	ID string `json:"id"`
}

type SubmissionInfoResponse struct {
	ID             string          `json:"id"`
	Platform       string          `json:"platform"`
	Language       string          `json:"language"`
	Status         string          `json:"status"`
	HTTPStatus     int             `json:"http_status,omitempty"`
	UpstreamStatus string          `json:"upstream_status,omitempty"`
	Error          string          `json:"error,omitempty"`
	Result         json.RawMessage `json:"result,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func handleJSONResponse(w http.ResponseWriter, body any, code int) {
	response, err := json.Marshal(body)

	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	handleRawJSONResponse(w, response, code)
}

func handleRawJSONResponse(w http.ResponseWriter, body []byte, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}
