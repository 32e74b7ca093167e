package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure reported by the backend, carrying the HTTP status and
// the backend-provided message when one was present in the response body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (%d): %s", e.Status, http.StatusText(e.Status))
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
