// Package study runs one submission from raw input to generated text.
package study

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartstudy/internal/credentials"
	"smartstudy/internal/events"
	"smartstudy/internal/extract"
	"smartstudy/internal/llm"
	"smartstudy/internal/task"
)

const (
	publishAttempts = 3
	publishBackoff  = 100 * time.Millisecond
	publishTimeout  = 3 * time.Second
)

// Invoker runs a single task request.
type Invoker interface {
	Invoke(ctx context.Context, req task.Request) (string, error)
}

// Submission is everything the user provided for one submit action. When
// Upload is set its extracted text replaces Text.
type Submission struct {
	Upload   *extract.Upload
	Text     string
	Task     task.Kind
	Question string
}

// Result is a successful submission.
type Result struct {
	ID      uuid.UUID
	Task    task.Kind
	Heading string
	Text    string
}

// Service routes submissions to the invoker of their task.
type Service struct {
	invokers map[task.Kind]Invoker
	events   events.Publisher
	log      *slog.Logger
	now      func() time.Time
}

// NewService wires one invoker per task kind over resolver and gen.
func NewService(resolver *credentials.Resolver, gen llm.Generator, pub events.Publisher, log *slog.Logger) *Service {
	invokers := make(map[task.Kind]Invoker)
	for k, inv := range task.NewInvokers(resolver, gen, log) {
		invokers[k] = inv
	}
	if pub == nil {
		pub = events.Noop{}
	}
	return &Service{invokers: invokers, events: pub, log: log, now: time.Now}
}

// Extract previews the text of an upload, or returns a *Failure of class input.
// It is not a submission and publishes no event.
func (s *Service) Extract(u extract.Upload) (string, error) {
	text, err := extract.Text(u)
	if err != nil {
		s.log.Warn("extraction failed", "file_ext", u.Ext(), "err", err)
		return "", &Failure{ID: uuid.New(), Class: ClassInput, Stage: Idle, Err: err}
	}
	return text, nil
}

// Submit carries sub through input collection, task selection and dispatch.
// It returns either a Result or a *Failure, never both.
func (s *Service) Submit(ctx context.Context, sub Submission) (Result, error) {
	id := uuid.New()
	start := s.now()
	state := Idle
	advance := func(next State) {
		s.log.Debug("submission state", "submission_id", id, "from", state.String(), "to", next.String())
		state = next
	}

	fail := func(err error) (Result, error) {
		f := &Failure{ID: id, Task: sub.Task, Class: classify(err), Stage: state, Err: err}
		s.finish(ctx, id, sub.Task, Failed, f.Class, start, err)
		return Result{}, f
	}

	content, err := s.collect(sub)
	if err != nil {
		return fail(err)
	}
	advance(InputCollected)

	inv, ok := s.invokers[sub.Task]
	if !ok {
		return fail(errUnknownTask)
	}
	if sub.Task.NeedsQuestion() && strings.TrimSpace(sub.Question) == "" {
		return fail(task.ErrMissingQuestion)
	}
	advance(TaskSelected)

	advance(Submitted)
	text, err := inv.Invoke(ctx, task.Request{Kind: sub.Task, Content: content, Question: sub.Question})
	if err != nil {
		return fail(err)
	}

	s.finish(ctx, id, sub.Task, Success, 0, start, nil)
	return Result{ID: id, Task: sub.Task, Heading: sub.Task.Heading(), Text: text}, nil
}

func (s *Service) collect(sub Submission) (string, error) {
	content := sub.Text
	if sub.Upload != nil {
		text, err := extract.Text(*sub.Upload)
		if err != nil {
			return "", err
		}
		content = text
	}
	if strings.TrimSpace(content) == "" {
		return "", task.ErrMissingContent
	}
	return content, nil
}

// finish logs the outcome and publishes it. Publishing never affects the result.
func (s *Service) finish(ctx context.Context, id uuid.UUID, k task.Kind, state State, class Class, start time.Time, err error) {
	elapsed := s.now().Sub(start)
	attrs := []any{
		"submission_id", id,
		"task", k.String(),
		"state", state.String(),
		"duration_ms", elapsed.Milliseconds(),
	}
	if err != nil {
		attrs = append(attrs, "class", class.String(), "err", err)
		if class == ClassInput {
			s.log.Info("submission rejected", attrs...)
		} else {
			s.log.Error("submission failed", attrs...)
		}
	} else {
		s.log.Info("submission completed", attrs...)
	}

	ev := events.Event{
		ID:         id,
		Task:       k.String(),
		State:      state.String(),
		DurationMs: elapsed.Milliseconds(),
		At:         s.now().UTC(),
	}
	if err != nil {
		ev.Class = class.String()
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if perr := events.PublishWithRetry(pubCtx, s.events, ev, publishAttempts, publishBackoff); perr != nil {
		s.log.Warn("failed to publish submission event", "submission_id", id, "err", perr)
	}
}
