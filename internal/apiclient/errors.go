package apiclient

import (
	"fmt"
	"strings"
)

// NetworkError wraps a transport failure: the request never produced a response
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// FieldError is one entry of a validation problem
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx response, decoded from its Problem Details body when possible
type APIError struct {
	StatusCode int          `json:"status"`
	Type       string       `json:"type"`
	Title      string       `json:"title"`
	Detail     string       `json:"detail"`
	Errors     []FieldError `json:"errors"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error %d", e.StatusCode)
	if e.Title != "" {
		msg += ": " + e.Title
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if len(e.Errors) > 0 {
		fields := make([]string, len(e.Errors))
		for i, fe := range e.Errors {
			fields[i] = fe.Field + " " + fe.Message
		}
		msg += " (" + strings.Join(fields, "; ") + ")"
	}
	return msg
}

// IsValidation reports whether the server rejected the request body or query
func (e *APIError) IsValidation() bool {
	return e.StatusCode == 400
}

// IsNotFound reports whether the target resource does not exist
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}
