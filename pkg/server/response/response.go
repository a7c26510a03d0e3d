// Package response provides the standardized HTTP response envelope
// for the Centroid API. Successful responses carry a data field and
// failures an error field with a machine-readable code, a message,
// and sometimes a suggestion when the input was probably a typo.
package response

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every API endpoint answers with.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error describes an API failure.
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail creates an error response.
func Fail(code, message, suggestion string) Response {
	return Response{
		Error: &Error{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
		},
	}
}

// JSON writes a response with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding errors are ignored as headers are already sent
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// Created writes a successful response with 201 status.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, Success(data))
}

// NoContent writes a 204 response with no body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, code, message, suggestion string) {
	JSON(w, http.StatusBadRequest, Fail(code, message, suggestion))
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, code, message, suggestion string) {
	JSON(w, http.StatusNotFound, Fail(code, message, suggestion))
}

// Internal writes a 500 error response. The underlying error is not
// exposed to the client.
func Internal(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(
		"internal_error",
		"internal server error",
		"",
	))
}

// ServiceUnavailable writes a 503 error response.
func ServiceUnavailable(w http.ResponseWriter, code, message string) {
	JSON(w, http.StatusServiceUnavailable, Fail(code, message, ""))
}
