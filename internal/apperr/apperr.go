// Package apperr carries an HTTP status alongside an error message so the
// handler layer can translate service failures without inspecting their
// origin.
package apperr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Invalid returns a 400 error for malformed or rejected client input.
func Invalid(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// NotFound returns the generic 404 error. Ownership failures use the same
// message as true absence so a non-owner cannot probe for existence.
func NotFound() *Error {
	return New(http.StatusNotFound, "resource not found")
}

// Unauthorized returns the 401 error used by the auth middleware.
func Unauthorized() *Error {
	return New(http.StatusUnauthorized, "unauthorized")
}

// Status reports the HTTP status for err, defaulting to 500 for anything
// that is not an *Error.
func Status(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// Write logs err with its status and writes the JSON error body. Unclassified
// errors surface their text in a 500 body.
func Write(w http.ResponseWriter, err error) {
	status := Status(err)
	slog.Error(err.Error(), "status", status)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
}
