package interviewdost

import (
	"fmt"
	"strings"
)

// StatusError is returned for any non-2xx response. Error() yields the raw
// response body text when the server sent one, otherwise a generic message
// with the status code. Callers across the CLI rely on this exact fallback
// chain for uniform error display.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return body
	}

	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}
