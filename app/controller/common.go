package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"salestrack/service"
)

// SessionHeader carries the opaque session token on every request
const SessionHeader = "X-Session-Token"

// writeJSON encodes v as the JSON response body
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ writeJSON: Error encoding response: %v", err)
	}
}

// statusForError maps service errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
