package routing

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"remote-execution-client/internal/memory"
)

// maxRequestBodySize bounds every request body read by the handlers.
const maxRequestBodySize = 2 * memory.Megabyte

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize.Bytes())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	return dec.Decode(dst)
}

func handleDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var maxBytesError *http.MaxBytesError

	badRequest := func(msg string, code int) {
		handleJSONResponse(w, ErrorResponse{Error: msg}, code)
	}

	switch {
	case errors.As(err, &syntaxError):
		badRequest(fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset), http.StatusBadRequest)

	case errors.Is(err, io.ErrUnexpectedEOF):
		badRequest("Request body contains badly-formed JSON", http.StatusBadRequest)

	case errors.As(err, &unmarshalTypeError):
		badRequest(fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset), http.StatusBadRequest)

	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		badRequest(fmt.Sprintf("Request body contains unknown field %s", fieldName), http.StatusBadRequest)

	case errors.Is(err, io.EOF):
		badRequest("Request body must not be empty", http.StatusBadRequest)

	case errors.As(err, &maxBytesError):
		badRequest(fmt.Sprintf("Request body must not be larger than %s", maxRequestBodySize), http.StatusRequestEntityTooLarge)

	// Otherwise default to logging the error and sending a 500 Internal
	// Server Error response.
	default:
		log.Error().Err(err).Msg("failed to decode request body")
		badRequest(http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
