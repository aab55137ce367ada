package scm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAlreadyExists is reported when the platform rejects a create because the
	// resource is already present (HTTP 422 validation failure).
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotFound is reported for HTTP 404 responses.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports a malformed repository identifier.
type ValidationError struct {
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid repository %q: %s", e.Value, e.Reason)
}

// StatusError reports an unexpected HTTP status from the platform API.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
	Body       []byte
	Err        error
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Is maps well-known status codes onto the package sentinels.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrAlreadyExists:
		return e.StatusCode == http.StatusUnprocessableEntity
	}

	return false
}

// JSONBody returns the response body as raw JSON if it parses as JSON, or nil otherwise.
func (e *StatusError) JSONBody() json.RawMessage {
	if len(e.Body) == 0 || !json.Valid(e.Body) {
		return nil
	}

	return json.RawMessage(e.Body)
}

// StatusCode extracts the HTTP status code from err, or 0 if it carries none.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}

	return 0
}
