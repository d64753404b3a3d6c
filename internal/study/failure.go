package study

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"smartstudy/internal/credentials"
	"smartstudy/internal/extract"
	"smartstudy/internal/task"
)

var errUnknownTask = errors.New("unknown task")

// Failure ends a submission. Message is what the user sees.
type Failure struct {
	ID    uuid.UUID
	Task  task.Kind
	Class Class
	// Stage is the last state the submission reached before failing.
	Stage State
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("submission %s failed after %s: %v", f.ID, f.Stage, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Message is a short human-readable description for the user.
func (f *Failure) Message() string {
	return userMessage(f.Err)
}

func classify(err error) Class {
	var (
		extErr     *extract.ExtractionError
		missingKey *credentials.MissingKeyError
		cfgErr     *task.ConfigError
		remote     *task.RemoteError
		empty      *task.EmptyResultError
	)
	switch {
	case errors.Is(err, extract.ErrUnsupportedType),
		errors.As(err, &extErr),
		errors.Is(err, task.ErrMissingContent),
		errors.Is(err, task.ErrMissingQuestion),
		errors.Is(err, errUnknownTask):
		return ClassInput
	case errors.As(err, &missingKey), errors.As(err, &cfgErr):
		return ClassConfiguration
	case errors.As(err, &empty):
		return ClassEmpty
	case errors.As(err, &remote):
		return ClassRemote
	default:
		return ClassRemote
	}
}

func userMessage(err error) string {
	var (
		extErr     *extract.ExtractionError
		missingKey *credentials.MissingKeyError
		cfgErr     *task.ConfigError
		remote     *task.RemoteError
		empty      *task.EmptyResultError
	)
	switch {
	case errors.Is(err, extract.ErrUnsupportedType):
		return "Unsupported file type."
	case errors.As(err, &extErr):
		return fmt.Sprintf("Error extracting text from file: %v", extErr.Err)
	case errors.Is(err, task.ErrMissingContent):
		return "Please provide the content to generate the response."
	case errors.Is(err, task.ErrMissingQuestion):
		return "Please provide a question to generate the Q/A response."
	case errors.Is(err, errUnknownTask):
		return "Please choose one of the available tasks."
	case errors.As(err, &missingKey):
		return fmt.Sprintf("API key for %s is not set.", missingKey.Slot)
	case errors.As(err, &cfgErr):
		id := "Model ID"
		if p, ok := task.ProfileFor(cfgErr.Task); ok && p.UsesDeployment() {
			id = "Deployment ID"
		}
		return fmt.Sprintf("Project ID or %s for %s is not set (%s).", id, cfgErr.Task.Label(), strings.Join(cfgErr.Missing, ", "))
	case errors.As(err, &empty):
		return fmt.Sprintf("No valid response generated for the %s.", taskName(empty.Task))
	case errors.As(err, &remote):
		return fmt.Sprintf("Error generating %s: %v", taskName(remote.Task), remote.Err)
	default:
		return "Something went wrong while generating the response."
	}
}

func taskName(k task.Kind) string {
	if p, ok := task.ProfileFor(k); ok {
		return p.Name
	}
	return k.String()
}
