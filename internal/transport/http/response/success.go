package response

import (
	"encoding/json"
	"net/http"
)

type envelope struct {
	Data      any    `json:"data"`
	RequestID string `json:"request_id,omitempty"`
}

// Write renders data in the standard envelope with an explicit status.
func Write(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data, RequestID: RequestID(r)})
}

func OK(w http.ResponseWriter, r *http.Request, data any) {
	Write(w, r, http.StatusOK, data)
}

func Created(w http.ResponseWriter, r *http.Request, data any) {
	Write(w, r, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
