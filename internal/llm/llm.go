package llm

import "context"

// DecodingGreedy always picks the most likely token.
const DecodingGreedy = "greedy"

// Params are the decoding parameters sent with a prompt.
type Params struct {
	DecodingMethod    string
	MaxNewTokens      int
	RepetitionPenalty float64
	StopSequences     []string
	Guardrails        bool
}

// Request is one prompt plus everything the endpoint needs to serve it.
// Either ModelID or DeploymentID selects the model.
type Request struct {
	Prompt       string
	Endpoint     string
	APIKey       string
	ModelID      string
	ProjectID    string
	DeploymentID string
	Params       Params
}

// Generator is a minimal text-generation interface to allow pluggable providers.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
