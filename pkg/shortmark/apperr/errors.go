// Package apperr defines the error types surfaced by the API and how each
// maps onto an HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError represents malformed client input, such as a bad URL
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError represents a uniqueness violation caused by the client
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NotFoundError represents a missing resource. Resources owned by another
// user are reported the same way.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// AuthError represents a missing or invalid identity token
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// ExhaustedError is returned when no free short code could be found within
// the configured number of attempts.
type ExhaustedError struct {
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no free short code after %d attempts", e.Attempts)
}

// Status returns the HTTP status code for err. Unknown errors map to 500.
func Status(err error) int {
	var (
		validation *ValidationError
		conflict   *ConflictError
		notFound   *NotFoundError
		auth       *AuthError
		exhausted  *ExhaustedError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &auth):
		return http.StatusUnauthorized
	case errors.As(err, &exhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
