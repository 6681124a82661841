package planet

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBaseURL is returned when a base URL option is invalid.
	ErrInvalidBaseURL = errors.New("planet: invalid base URL")
	// ErrNilHTTPClient indicates a nil HTTP client was provided.
	ErrNilHTTPClient = errors.New("planet: http client cannot be nil")
	// ErrMissingAcquired indicates a scene has no acquired property.
	ErrMissingAcquired = errors.New("planet: scene has no acquired property")
)

// APIError represents a Planet Data API error payload or HTTP failure.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	General []struct {
		Message string `json:"message"`
	} `json:"general"`
	Raw []byte `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return fmt.Sprintf("planet: %s (status=%d)", e.Message, e.Status)
	}
	if len(e.General) > 0 && e.General[0].Message != "" {
		return fmt.Sprintf("planet: %s (status=%d)", e.General[0].Message, e.Status)
	}
	return fmt.Sprintf("planet: api error status=%d", e.Status)
}
