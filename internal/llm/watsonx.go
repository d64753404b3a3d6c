package llm

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"smartstudy/internal/cache"
)

const (
	defaultWatsonxTimeout = 2 * time.Minute
	defaultWatsonxVersion = "2023-05-29"
	defaultIAMURL         = "https://iam.cloud.ibm.com/identity/token"
	iamGrantType          = "urn:ibm:params:oauth:grant-type:apikey"

	// tokens are refreshed this long before IAM says they expire
	tokenExpiryMargin = time.Minute

	hapThreshold = 0.5
)

// APIError is a non-2xx answer from IAM or the inference endpoint.
type APIError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Service, e.StatusCode, e.Message)
}

// WatsonxOptions configures a WatsonxClient. Zero values fall back to defaults.
type WatsonxOptions struct {
	IAMURL     string
	Version    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Tokens     cache.TokenCache
}

// WatsonxClient calls the watsonx.ai text generation REST API.
type WatsonxClient struct {
	iamURL  string
	version string
	timeout time.Duration
	http    *http.Client
	tokens  cache.TokenCache
}

func NewWatsonxClient(opts WatsonxOptions) *WatsonxClient {
	c := &WatsonxClient{
		iamURL:  opts.IAMURL,
		version: opts.Version,
		timeout: opts.Timeout,
		http:    opts.HTTPClient,
		tokens:  opts.Tokens,
	}
	if c.iamURL == "" {
		c.iamURL = defaultIAMURL
	}
	if c.version == "" {
		c.version = defaultWatsonxVersion
	}
	if c.timeout <= 0 {
		c.timeout = defaultWatsonxTimeout
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.tokens == nil {
		c.tokens = cache.NewMemoryCache()
	}
	return c
}

type watsonxParameters struct {
	DecodingMethod    string   `json:"decoding_method,omitempty"`
	MaxNewTokens      int      `json:"max_new_tokens,omitempty"`
	RepetitionPenalty float64  `json:"repetition_penalty,omitempty"`
	StopSequences     []string `json:"stop_sequences,omitempty"`
}

type moderationSwitch struct {
	Enabled   bool    `json:"enabled"`
	Threshold float64 `json:"threshold,omitempty"`
}

type moderationFilter struct {
	Input  moderationSwitch `json:"input"`
	Output moderationSwitch `json:"output"`
}

type watsonxModerations struct {
	HAP moderationFilter `json:"hap"`
}

type watsonxRequest struct {
	Input       string              `json:"input"`
	ModelID     string              `json:"model_id,omitempty"`
	ProjectID   string              `json:"project_id,omitempty"`
	Parameters  watsonxParameters   `json:"parameters"`
	Moderations *watsonxModerations `json:"moderations,omitempty"`
}

func (c *WatsonxClient) Generate(ctx context.Context, req Request) (string, error) {
	if c == nil || c.http == nil {
		return "", errors.New("nil watsonx client")
	}
	if req.Endpoint == "" {
		return "", errors.New("watsonx: endpoint url required")
	}
	if req.ModelID == "" && req.DeploymentID == "" {
		return "", errors.New("watsonx: model or deployment id required")
	}
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	token, err := c.token(reqCtx, req.APIKey)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(generationBody(req))
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.generationURL(req), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	status, data, err := c.do(httpReq)
	if err != nil {
		return "", err
	}
	if status == http.StatusUnauthorized {
		_ = c.tokens.DeleteToken(ctx, tokenKey(req.APIKey))
	}
	if status/100 != 2 {
		return "", &APIError{Service: "watsonx", StatusCode: status, Message: errorMessage(data)}
	}
	text := gjson.GetBytes(data, "results.0.generated_text")
	if !text.Exists() {
		return "", errors.New("watsonx: no results returned")
	}
	return text.String(), nil
}

func generationBody(req Request) watsonxRequest {
	body := watsonxRequest{
		Input: req.Prompt,
		Parameters: watsonxParameters{
			DecodingMethod:    req.Params.DecodingMethod,
			MaxNewTokens:      req.Params.MaxNewTokens,
			RepetitionPenalty: req.Params.RepetitionPenalty,
			StopSequences:     req.Params.StopSequences,
		},
	}
	// deployments carry their own model and project binding
	if req.DeploymentID == "" {
		body.ModelID = req.ModelID
		body.ProjectID = req.ProjectID
	}
	if req.Params.Guardrails {
		on := moderationSwitch{Enabled: true, Threshold: hapThreshold}
		body.Moderations = &watsonxModerations{HAP: moderationFilter{Input: on, Output: on}}
	}
	return body
}

func (c *WatsonxClient) generationURL(req Request) string {
	base := strings.TrimRight(req.Endpoint, "/")
	path := "/ml/v1/text/generation"
	if req.DeploymentID != "" {
		path = "/ml/v1/deployments/" + url.PathEscape(req.DeploymentID) + "/text/generation"
	}
	return base + path + "?version=" + url.QueryEscape(c.version)
}

// token returns a cached IAM bearer token for apiKey, exchanging the key when
// the cache misses.
func (c *WatsonxClient) token(ctx context.Context, apiKey string) (string, error) {
	if apiKey == "" {
		return "", errors.New("watsonx: api key required")
	}
	key := tokenKey(apiKey)
	if token, ok, err := c.tokens.GetToken(ctx, key); err == nil && ok {
		return token, nil
	}

	form := url.Values{}
	form.Set("grant_type", iamGrantType)
	form.Set("apikey", apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.iamURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	status, data, err := c.do(httpReq)
	if err != nil {
		return "", err
	}
	if status/100 != 2 {
		return "", &APIError{Service: "iam", StatusCode: status, Message: errorMessage(data)}
	}
	token := gjson.GetBytes(data, "access_token").String()
	if token == "" {
		return "", errors.New("iam: no access token returned")
	}
	ttl := time.Duration(gjson.GetBytes(data, "expires_in").Int())*time.Second - tokenExpiryMargin
	// a failed cache write only costs another exchange next time
	_ = c.tokens.SetToken(ctx, key, token, ttl)
	return token, nil
}

func (c *WatsonxClient) do(req *http.Request) (int, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, data, nil
}

// errorMessage pulls a human-readable message out of the IAM and watsonx error
// shapes, falling back to the raw body.
func errorMessage(data []byte) string {
	for _, path := range []string{"errors.0.message", "errorMessage", "message"} {
		if v := gjson.GetBytes(data, path); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	msg := strings.TrimSpace(string(data))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

func tokenKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:16])
}
