package llm

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// DefaultOpenAIBaseURL is the production chat-completions endpoint.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// openAIModels are tried most capable first.
var openAIModels = []string{"gpt-4o", "gpt-4-turbo", "gpt-4", "gpt-3.5-turbo"}

// OpenAIClient talks to the OpenAI chat-completions API.
type OpenAIClient struct {
	apiKey string
	models []string
	http   *resty.Client
}

// NewOpenAIClient builds an OpenAI client. baseURL may be empty for the
// production endpoint.
func NewOpenAIClient(apiKey, baseURL string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	return &OpenAIClient{
		apiKey: apiKey,
		models: openAIModels,
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(DefaultRequestTimeout).
			SetHeader("Content-Type", "application/json").
			SetAuthToken(apiKey),
	}, nil
}

// Name returns the provider tag.
func (c *OpenAIClient) Name() Provider { return ProviderOpenAI }

// Complete iterates the candidate models in priority order and returns the
// first non-empty completion.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	opts = opts.withDefaults()

	var lastErr error
	attempts := 0
	for _, model := range c.models {
		attempts++
		body := map[string]any{
			"model": model,
			"messages": []map[string]string{
				{"role": "system", "content": opts.SystemContext},
				{"role": "user", "content": prompt},
			},
			"temperature": opts.Temperature,
			"max_tokens":  opts.MaxTokens,
		}

		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(body).
			Post("/chat/completions")
		if err != nil {
			lastErr = fmt.Errorf("model %s: %w", model, err)
			continue
		}
		if resp.IsError() {
			lastErr = fmt.Errorf("model %s: HTTP %d", model, resp.StatusCode())
			continue
		}

		content := gjson.Get(resp.String(), "choices.0.message.content").String()
		if content == "" {
			lastErr = fmt.Errorf("model %s: empty completion payload", model)
			continue
		}
		return content, nil
	}

	return "", &ExhaustedError{Provider: ProviderOpenAI, Attempts: attempts, Last: lastErr}
}

// Close is a no-op for the HTTP client.
func (c *OpenAIClient) Close() error { return nil }
