package api

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned for a response whose status is not 2xx and whose
// body could not be read as an API reply.
type StatusError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
}

// IsServerError reports whether err is a 5xx from the server.
func IsServerError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode >= http.StatusInternalServerError
}
