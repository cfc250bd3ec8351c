package models

import (
	"encoding/json"
	"net/http"
)

// Problem represents an RFC7807 error response.
// Every API error is written with Content-Type: application/problem+json.
type Problem struct {
	// Type is a URI reference that identifies the problem type.
	Type string `json:"type"`

	// Title is a short, human-readable summary of the problem type.
	Title string `json:"title"`

	// Status is the HTTP status code for this occurrence of the problem.
	Status int `json:"status"`

	// Detail is a human-readable explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`

	// Instance is the request path that produced the problem.
	Instance string `json:"instance,omitempty"`

	// TraceID is the request identifier for log correlation.
	TraceID string `json:"traceId"`

	// Errors contains structured field validation errors.
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Field error codes.
const (
	CodeRequired         = "REQUIRED"
	CodeOutOfRange       = "OUT_OF_RANGE"
	CodeUnknownPollutant = "UNKNOWN_POLLUTANT"
	CodeUnknownStandard  = "UNKNOWN_STANDARD"
)

const problemBase = "https://airindex.breatheroute.dev/problems/"

// Problem types returned by the API.
const (
	ProblemTypeValidation           = problemBase + "validation-error"
	ProblemTypeNotFound             = problemBase + "not-found"
	ProblemTypeMethodNotAllowed     = problemBase + "method-not-allowed"
	ProblemTypeUnsupportedMediaType = problemBase + "unsupported-media-type"
	ProblemTypeTLSRequired          = problemBase + "tls-required"
	ProblemTypeTooManyRequests      = problemBase + "too-many-requests"
	ProblemTypeInternal             = problemBase + "internal-error"
)

// NewProblem creates a new Problem with the given parameters.
func NewProblem(problemType, title string, status int, traceID string) *Problem {
	return &Problem{
		Type:    problemType,
		Title:   title,
		Status:  status,
		TraceID: traceID,
	}
}

// Write writes the Problem as JSON to the ResponseWriter.
func (p *Problem) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	if p.TraceID != "" {
		w.Header().Set("X-Request-Id", p.TraceID)
	}
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func newDetailed(problemType, title string, status int, traceID, detail string) *Problem {
	p := NewProblem(problemType, title, status, traceID)
	p.Detail = detail
	return p
}

// NewBadRequest creates a 400 problem carrying the failed fields.
func NewBadRequest(traceID, detail string, errors []FieldError) *Problem {
	p := newDetailed(ProblemTypeValidation, "Validation error", http.StatusBadRequest, traceID, detail)
	p.Errors = errors
	return p
}

// NewNotFound creates a 404 problem.
func NewNotFound(traceID, detail string) *Problem {
	return newDetailed(ProblemTypeNotFound, "Not found", http.StatusNotFound, traceID, detail)
}

// NewMethodNotAllowed creates a 405 problem.
func NewMethodNotAllowed(traceID, detail string) *Problem {
	return newDetailed(ProblemTypeMethodNotAllowed, "Method not allowed", http.StatusMethodNotAllowed, traceID, detail)
}

// NewUnsupportedMediaType creates a 415 problem.
func NewUnsupportedMediaType(traceID, detail string) *Problem {
	return newDetailed(ProblemTypeUnsupportedMediaType, "Unsupported media type", http.StatusUnsupportedMediaType, traceID, detail)
}

// NewTLSRequired creates a 403 problem for plain-HTTP requests.
func NewTLSRequired(traceID, detail string) *Problem {
	return newDetailed(ProblemTypeTLSRequired, "TLS required", http.StatusForbidden, traceID, detail)
}

// NewTooManyRequests creates a 429 problem.
func NewTooManyRequests(traceID, detail string) *Problem {
	return newDetailed(ProblemTypeTooManyRequests, "Too many requests", http.StatusTooManyRequests, traceID, detail)
}

// NewInternalError creates a 500 problem.
func NewInternalError(traceID, detail string) *Problem {
	return newDetailed(ProblemTypeInternal, "Internal server error", http.StatusInternalServerError, traceID, detail)
}
