package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard API-related errors. An *APIError matches one of these with errors.Is
// according to its status code.
var (
	ErrUnauthorized       = errors.New("freesound: unauthorized (invalid API key or token)")
	ErrForbidden          = errors.New("freesound: forbidden (insufficient permissions)")
	ErrNotFound           = errors.New("freesound: resource not found")
	ErrRateLimited        = errors.New("freesound: rate limit exceeded")
	ErrServiceUnavailable = errors.New("freesound: service unavailable or internal server error")

	// Operation specific errors
	ErrNoPreviewAvailable  = errors.New("download: no preview available for this sound")
	ErrNoDownloadURL       = errors.New("download: sound detail has no download URL (is the access token valid?)")
	ErrAccessTokenRequired = errors.New("download: an OAuth2 access token is required for original downloads")

	// Input validation errors
	ErrEmptyQuery         = errors.New("search: query must not be empty")
	ErrInvalidMaxDuration = errors.New("search: maxDuration must be a positive number")
	ErrInvalidSoundID     = errors.New("download: soundId must be a positive integer")
	ErrInvalidQuality     = errors.New("download: quality must be 'hq' or 'lq'")
)

// APIError is returned when a metadata or search request gets a non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("freesound API error: %d - %s", e.StatusCode, e.Body)
}

// Is maps the status code onto the sentinel errors above.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrServiceUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// DownloadError is returned when fetching a binary asset gets a non-2xx response.
type DownloadError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download failed: %d - %s", e.StatusCode, e.Body)
}
