package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient serves Requests through an OpenAI-compatible Chat Completions
// endpoint. Guardrails have no equivalent there and are ignored.
type OpenAIClient struct {
	client  *openai.Client
	timeout time.Duration
}

const defaultChatTimeout = 2 * time.Minute

// NewOpenAIClient builds a client against baseURL, or api.openai.com when empty.
// The API key is supplied per request.
func NewOpenAIClient(baseURL string, timeout time.Duration) *OpenAIClient {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout <= 0 {
		timeout = defaultChatTimeout
	}
	cli := openai.NewClient(opts...)
	return &OpenAIClient{client: &cli, timeout: timeout}
}

func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("nil openai client")
	}
	if req.APIKey == "" {
		return "", errors.New("openai: api key required")
	}
	model := req.ModelID
	if model == "" {
		model = req.DeploymentID
	}
	if model == "" {
		return "", errors.New("openai: model id required")
	}
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(reqCtx, chatParams(openai.ChatModel(model), req), option.WithAPIKey(req.APIKey))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func chatParams(model openai.ChatModel, req Request) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(req.Prompt),
					},
				},
			},
		},
	}
	if req.Params.DecodingMethod == DecodingGreedy {
		params.Temperature = openai.Float(0)
	}
	if req.Params.MaxNewTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.Params.MaxNewTokens))
	}
	if len(req.Params.StopSequences) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: req.Params.StopSequences}
	}
	if req.Params.RepetitionPenalty > 1 {
		params.FrequencyPenalty = openai.Float(req.Params.RepetitionPenalty - 1)
	}
	return params
}
