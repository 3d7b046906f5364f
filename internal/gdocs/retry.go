package gdocs

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// APIError is a non-2xx reply from the Docs or Drive API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote api: status %d", e.StatusCode)
}

// Transient reports whether the failure is worth retrying: rate
// limiting or a server-side error.
func (e *APIError) Transient() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// IsTransient checks if an error is worth retrying.
func IsTransient(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Transient()
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}
