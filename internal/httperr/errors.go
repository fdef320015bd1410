// Package httperr defines the JSON error body returned by every endpoint.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Details any    `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// New builds an ErrorResponse; only the first detail is kept.
func New(code int, message string, details ...any) *ErrorResponse {
	e := &ErrorResponse{Message: message, Code: code}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

func BadRequest(message string, details ...any) *ErrorResponse {
	return New(http.StatusBadRequest, message, details...)
}

func Unauthorized(message string) *ErrorResponse {
	return New(http.StatusUnauthorized, message)
}

func NotFound(message string) *ErrorResponse {
	return New(http.StatusNotFound, message)
}

func Conflict(message string, details ...any) *ErrorResponse {
	return New(http.StatusConflict, message, details...)
}

func Unprocessable(message string, details ...any) *ErrorResponse {
	return New(http.StatusUnprocessableEntity, message, details...)
}

func Internal() *ErrorResponse {
	return New(http.StatusInternalServerError, "internal error")
}

// Write encodes e with its status code.
func Write(w http.ResponseWriter, e *ErrorResponse) {
	if e.Code == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Code)
	_ = json.NewEncoder(w).Encode(e)
}

// FieldErrors converts validator failures to a field → message map.
// Other errors yield nil.
func FieldErrors(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = message(fe.Tag(), fe.Kind().String(), fe.Param())
	}
	return out
}

func message(tag, kind, param string) string {
	text := kind == "string"
	switch tag {
	case "required":
		return "This field is required"
	case "max":
		if text {
			return "This field must have a maximum length of " + param
		}
		return "This field must be less than or equal to " + param
	case "min":
		if text {
			return "This field must have a minimum length of " + param
		}
		return "This field must be greater than or equal to " + param
	case "gt":
		return "This field must be greater than " + param
	case "gte":
		return "This field must be greater than or equal to " + param
	case "email":
		return "This field must be a valid email address"
	case "latitude", "longitude":
		return "This field must be a valid " + tag
	}
	return "This field is invalid"
}
