// Package httputil holds the JSON response helpers shared by every HTTP handler.
package httputil

import (
	"encoding/json"
	"net/http"
)

// Error codes written in the "error" field of JSON error bodies.
const (
	CodeBadRequest         = "bad_request"
	CodeNotFound           = "not_found"
	CodeContentUnavailable = "content_unavailable"
	CodeBadGateway         = "bad_gateway"
	CodeInternal           = "internal_error"
)

var statusByCode = map[string]int{
	CodeBadRequest:         http.StatusBadRequest,
	CodeNotFound:           http.StatusNotFound,
	CodeContentUnavailable: http.StatusNotFound,
	CodeBadGateway:         http.StatusBadGateway,
	CodeInternal:           http.StatusInternalServerError,
}

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an error body for code. Internal errors never expose the
// description since it may carry backend details.
func WriteError(w http.ResponseWriter, code, description string) {
	status, ok := statusByCode[code]
	if !ok {
		code = CodeInternal
		status = http.StatusInternalServerError
	}
	resp := ErrorResponse{Error: code}
	if code != CodeInternal {
		resp.ErrorDescription = description
	}
	WriteJSON(w, status, resp)
}
