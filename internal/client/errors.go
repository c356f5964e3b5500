package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response. Message is the backend's own explanation.
type APIError struct {
	StatusCode int
	Message    string
	Method     string
	Path       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// TransportError is a failure before any HTTP status was received.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsNotFound()
}

const (
	msgNetwork = "Sunucuya ulaşılamadı"
	msgTimeout = "İstek zaman aşımına uğradı"
)

// UserMessage turns any client failure into a short Turkish UI string. The
// backend's message wins when it sent one; fallback covers the rest.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return msgTimeout
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return msgNetwork
	}
	return fallback
}
