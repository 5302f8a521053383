// Package apierror carries an upstream HTTP status alongside an error so the
// boundary layer can propagate provider-classified failures.
package apierror

import "errors"

// APIError is an error classified by an upstream API status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// New builds a classified API error.
func New(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// From extracts an APIError from an error chain.
func From(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
