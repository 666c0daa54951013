package ingest

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError means no response was received: DNS, connection refused,
// timeout, or a cancelled context.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e == nil || e.Err == nil {
		return "transport error"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BackendError means a response arrived but did not report a successful
// ingestion.
type BackendError struct {
	Status   int
	Message  string
	Response Response
	Err      error
}

func (e *BackendError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return statusMessage(e.Status)
}

func (e *BackendError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ErrMissingNovelID is wrapped when a 2xx reply lacks novel_id.
var ErrMissingNovelID = errors.New("response missing novel_id")

func statusMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("ingest returned status %d (%s)", status, text)
	}
	return fmt.Sprintf("ingest returned status %d", status)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

// IsBackend reports whether err is a BackendError.
func IsBackend(err error) bool {
	var b *BackendError
	return errors.As(err, &b)
}
