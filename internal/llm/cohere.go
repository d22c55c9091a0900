package llm

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// DefaultCohereBaseURL is the production chat endpoint.
const DefaultCohereBaseURL = "https://api.cohere.com"

var cohereModels = []string{"command-r-plus", "command-r", "command"}

// CohereClient talks to the Cohere chat API.
type CohereClient struct {
	apiKey string
	models []string
	http   *resty.Client
}

// NewCohereClient builds a Cohere client. baseURL may be empty for the
// production endpoint.
func NewCohereClient(apiKey, baseURL string) (*CohereClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("cohere: API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultCohereBaseURL
	}
	return &CohereClient{
		apiKey: apiKey,
		models: cohereModels,
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(DefaultRequestTimeout).
			SetHeader("Content-Type", "application/json").
			SetAuthToken(apiKey),
	}, nil
}

// Name returns the provider tag.
func (c *CohereClient) Name() Provider { return ProviderCohere }

// Complete iterates the candidate models in priority order and returns the
// first non-empty completion.
func (c *CohereClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	opts = opts.withDefaults()

	var lastErr error
	attempts := 0
	for _, model := range c.models {
		attempts++
		body := map[string]any{
			"model":       model,
			"message":     prompt,
			"preamble":    opts.SystemContext,
			"temperature": opts.Temperature,
			"max_tokens":  opts.MaxTokens,
		}

		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(body).
			Post("/v1/chat")
		if err != nil {
			lastErr = fmt.Errorf("model %s: %w", model, err)
			continue
		}
		if resp.IsError() {
			lastErr = fmt.Errorf("model %s: HTTP %d", model, resp.StatusCode())
			continue
		}

		content := gjson.Get(resp.String(), "text").String()
		if content == "" {
			lastErr = fmt.Errorf("model %s: empty completion payload", model)
			continue
		}
		return content, nil
	}

	return "", &ExhaustedError{Provider: ProviderCohere, Attempts: attempts, Last: lastErr}
}

// Close is a no-op for the HTTP client.
func (c *CohereClient) Close() error { return nil }
