// Package httpx writes the JSON envelope shared by every JSON endpoint:
// {"ok":true} on success and {"ok":false,"error":"..."} on failure.
package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ContentTypeJSON is the content type of every JSON response.
const ContentTypeJSON = "application/json; charset=UTF-8"

// Envelope is the body of a plain acknowledgement or error.
type Envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Error is an error that carries the status and public message to answer with.
type Error struct {
	Status  int
	Message string
	Err     error
}

// NewError constructs an Error. A zero status means 500.
func NewError(status int, message string, err error) *Error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &Error{Status: status, Message: sanitize(message, 512), Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// WriteJSON encodes v with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteOK writes 200 {"ok":true}.
func WriteOK(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, Envelope{OK: true})
}

// WriteError writes {"ok":false,"error":message} with status.
func WriteError(w http.ResponseWriter, status int, message string) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	WriteJSON(w, status, Envelope{Error: sanitize(message, 512)})
}

// WriteErr writes e, or a generic 500 when err is not an *Error.
func WriteErr(w http.ResponseWriter, err error) {
	if e, ok := err.(*Error); ok {
		WriteError(w, e.Status, e.Message)
		return
	}
	WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func sanitize(value string, limit int) string {
	if limit <= 0 {
		limit = 256
	}
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.TrimSpace(value)
	if len(value) > limit {
		value = value[:limit]
	}
	return value
}
