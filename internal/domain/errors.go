package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrCacheMiss is returned by Cache.Get for a missing or expired entry.
	ErrCacheMiss = errors.New("entry not found in cache")

	// ErrSessionExpired means the refresh token was rejected: both
	// tokens have been cleared and the user must authenticate again.
	ErrSessionExpired = errors.New("session expired, authentication required")

	// ErrNotAuthenticated is returned by operations that need a logged
	// in user when no valid token pair is present.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound is the typed form of an upstream 404 on a single
	// resource lookup.
	ErrNotFound = errors.New("resource not found")
)

// APIError mirrors the server's error envelope. It is returned for any
// response the server declares as a failure (4xx/5xx with a JSON body).
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Message    string `json:"message"`
	Errors     []any  `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d on %s: %s", e.StatusCode, e.Path, e.Message)
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// IsNotFound reports whether err represents a missing upstream resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || IsStatus(err, http.StatusNotFound)
}
