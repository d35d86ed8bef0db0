package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrForeignOrigin is returned when a request targets anything other than
// the configured HTTPS API origin
var ErrForeignOrigin = errors.New("request outside the GitHub API origin")

// TransportError reports a request that failed at the network layer, was
// refused before being sent, or returned a non-success status.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports a response body that could not be parsed
// into the expected structure.
type MalformedResponseError struct {
	Endpoint string
	Reason   string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: malformed response: %s: %v", e.Endpoint, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: malformed response: %s", e.Endpoint, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// classifyError wraps an error returned by go-github into the client's
// error taxonomy
func classifyError(endpoint string, err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &MalformedResponseError{Endpoint: endpoint, Reason: "invalid JSON", Err: err}
	}
	return &TransportError{Endpoint: endpoint, Err: err}
}

func malformed(endpoint, reason string) error {
	return &MalformedResponseError{Endpoint: endpoint, Reason: reason}
}
