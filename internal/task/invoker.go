package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"smartstudy/internal/credentials"
	"smartstudy/internal/llm"
)

// Request is one user submission for a single task.
type Request struct {
	Kind     Kind
	Content  string
	Question string
}

// Invoker builds a task's prompt and dispatches it to the generator.
type Invoker struct {
	profile  Profile
	resolver *credentials.Resolver
	gen      llm.Generator
	log      *slog.Logger
}

func NewInvoker(profile Profile, resolver *credentials.Resolver, gen llm.Generator, log *slog.Logger) *Invoker {
	return &Invoker{profile: profile, resolver: resolver, gen: gen, log: log.With("task", profile.Kind.String())}
}

// NewInvokers returns one invoker per task kind sharing resolver and generator.
func NewInvokers(resolver *credentials.Resolver, gen llm.Generator, log *slog.Logger) map[Kind]*Invoker {
	out := make(map[Kind]*Invoker, len(profiles))
	for _, k := range Kinds() {
		p, _ := ProfileFor(k)
		out[k] = NewInvoker(p, resolver, gen, log)
	}
	return out
}

// Profile returns the invoker's task profile.
func (inv *Invoker) Profile() Profile {
	return inv.profile
}

// Invoke validates req, resolves configuration and sends exactly one
// generation call. Every failure before dispatch returns without calling the
// generator.
func (inv *Invoker) Invoke(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Content) == "" {
		return "", ErrMissingContent
	}
	if inv.profile.Kind.NeedsQuestion() && strings.TrimSpace(req.Question) == "" {
		return "", ErrMissingQuestion
	}

	llmReq, err := inv.request()
	if err != nil {
		return "", err
	}
	prompt, err := BuildPrompt(inv.profile.Kind, req.Content, req.Question)
	if err != nil {
		return "", err
	}
	llmReq.Prompt = prompt

	inv.log.Debug("dispatching generation",
		"model", llmReq.ModelID,
		"deployment", llmReq.DeploymentID,
		"max_new_tokens", llmReq.Params.MaxNewTokens,
		"guardrails", llmReq.Params.Guardrails,
		"prompt_chars", len(prompt),
	)
	text, err := inv.gen.Generate(ctx, llmReq)
	if err != nil {
		return "", &RemoteError{Task: inv.profile.Kind, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &EmptyResultError{Task: inv.profile.Kind}
	}
	return text, nil
}

// request resolves identifiers and credentials into an llm.Request without a prompt.
func (inv *Invoker) request() (llm.Request, error) {
	p := inv.profile
	var missing []string

	project, ok := inv.resolver.Value(p.ProjectKey)
	if !ok {
		missing = append(missing, p.ProjectKey)
	}
	var model, deployment string
	if p.UsesDeployment() {
		if deployment, ok = inv.resolver.Value(p.DeploymentKey); !ok {
			missing = append(missing, p.DeploymentKey)
		}
	} else {
		if model, ok = inv.resolver.Value(p.ModelKey); !ok {
			model = p.DefaultModel
		}
		if model == "" {
			missing = append(missing, p.ModelKey)
		}
	}
	if len(missing) > 0 {
		return llm.Request{}, &ConfigError{Task: p.Kind, Missing: missing}
	}

	creds, err := inv.resolver.Resolve(p.APIKeySlot)
	if err != nil {
		return llm.Request{}, fmt.Errorf("%s: %w", p.Kind, err)
	}
	return llm.Request{
		Endpoint:     creds.URL,
		APIKey:       creds.APIKey,
		ModelID:      model,
		ProjectID:    project,
		DeploymentID: deployment,
		Params:       p.Params,
	}, nil
}
