package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized indicates rejected credentials or an expired token
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRateLimited indicates the backend throttled the request
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrNotFound indicates the resource does not exist
	ErrNotFound = errors.New("resource not found")
)

// StatusError is returned for any non-2xx response
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error %d", e.StatusCode)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Is lets callers match status classes with errors.Is
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// StatusCode extracts the HTTP status from err, or 0 when err did not come
// from a response.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

type errorResponse struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorResponse) text() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Message != "":
		return e.Message
	default:
		return e.Error
	}
}
