package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingContent is returned when there is no text to work on.
	ErrMissingContent = errors.New("content is required")
	// ErrMissingQuestion is returned when a Q&A request has no question.
	ErrMissingQuestion = errors.New("question is required")
)

// ConfigError lists identifiers that must be configured before dispatch.
type ConfigError struct {
	Task    Kind
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: missing configuration %s", e.Task, strings.Join(e.Missing, ", "))
}

// RemoteError wraps any failure raised by the inference call.
type RemoteError struct {
	Task Kind
	Err  error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: generate: %v", e.Task, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// EmptyResultError reports a successful call that produced no text.
type EmptyResultError struct {
	Task Kind
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s: empty response", e.Task)
}
