package routing

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers the execution endpoints. The limiter wraps every
// endpoint that reaches out to a platform.
func NewRouter(h ExecutionHandlers, limiter func(http.Handler) http.Handler) *mux.Router {
	r := mux.NewRouter()

	r.Handle("/api/code/run", limiter(http.HandlerFunc(h.HandleRun))).
		Methods(http.MethodPost)

	r.Handle("/api/code/submissions", limiter(http.HandlerFunc(h.HandleQueueSubmission))).
		Methods(http.MethodPost)

	r.HandleFunc("/api/code/submissions/{id}", h.HandleGetSubmission).
		Methods(http.MethodGet)

	return r
}
