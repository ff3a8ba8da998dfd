package httputil

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of an error response ends up in the message.
const maxErrorBody = 512

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// CheckStatus returns nil for 2xx responses. Other responses produce a
// [*StatusError], wrapped in [RetryableError] when the status is 5xx or 429.
// The body is read (up to a small limit) but not closed.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	err := &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	if Transient(resp.StatusCode) {
		return &RetryableError{Err: err}
	}
	return err
}

// Transient reports whether a status code is worth retrying.
func Transient(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
