// Package envelope writes the JSON response wrapper shared by every route:
// {success, data?, error?, errors?, timestamp}.
package envelope

import (
	"encoding/json"
	"net/http"
	"time"
)

const ContentType = "application/json"

// Now stamps envelopes. Tests may replace it.
var Now = func() time.Time { return time.Now().UTC() }

// Envelope is the response body of every endpoint.
type Envelope struct {
	Success   bool         `json:"success" example:"true"`
	Data      any          `json:"data,omitempty" swaggertype:"object"`
	Error     string       `json:"error,omitempty" example:"Invalid request parameters"`
	Errors    []FieldError `json:"errors,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2024-01-15T08:00:00Z"`

	status int
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field" example:"days"`
	Message string `json:"message" example:"must be at most 365"`
}

// OK wraps a successful result.
func OK(data any) *Envelope {
	return &Envelope{Success: true, Data: data, Timestamp: Now(), status: http.StatusOK}
}

// Fail wraps an error message with its HTTP status.
func Fail(status int, message string) *Envelope {
	return &Envelope{Success: false, Error: message, Timestamp: Now(), status: status}
}

// WithErrors adds field errors to the envelope
func (e *Envelope) WithErrors(errors []FieldError) *Envelope {
	e.Errors = errors
	return e
}

// Status is the HTTP status the envelope is written with.
func (e *Envelope) Status() int {
	return e.status
}

// Bytes encodes the envelope for transports other than HTTP responses.
func (e *Envelope) Bytes() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		data, _ = json.Marshal(Fail(http.StatusInternalServerError, "Internal server error"))
	}
	return data
}

// Write writes the envelope to the response
func (e *Envelope) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(e.status)
	w.Write(e.Bytes())
}

// Common failure constructors

func BadRequest(message string) *Envelope {
	return Fail(http.StatusBadRequest, message)
}

func NotFound(message string) *Envelope {
	return Fail(http.StatusNotFound, message)
}

func ValidationError(errors []FieldError) *Envelope {
	return Fail(http.StatusUnprocessableEntity, "Invalid request parameters").WithErrors(errors)
}

func InternalError() *Envelope {
	return Fail(http.StatusInternalServerError, "Internal server error")
}
