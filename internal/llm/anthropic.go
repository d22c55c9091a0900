package llm

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// DefaultAnthropicBaseURL is the production messages endpoint.
const DefaultAnthropicBaseURL = "https://api.anthropic.com"

var anthropicModels = []string{
	"claude-3-5-sonnet-20241022",
	"claude-3-sonnet-20240229",
	"claude-3-haiku-20240307",
}

// anthropicVersions are API surface versions tried inside the model loop,
// newest first.
var anthropicVersions = []string{"2023-06-01", "2023-01-01"}

// AnthropicClient talks to the Anthropic messages API.
type AnthropicClient struct {
	apiKey   string
	models   []string
	versions []string
	http     *resty.Client
}

// NewAnthropicClient builds an Anthropic client. baseURL may be empty for
// the production endpoint.
func NewAnthropicClient(apiKey, baseURL string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultAnthropicBaseURL
	}
	return &AnthropicClient{
		apiKey:   apiKey,
		models:   anthropicModels,
		versions: anthropicVersions,
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(DefaultRequestTimeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("x-api-key", apiKey),
	}, nil
}

// Name returns the provider tag.
func (c *AnthropicClient) Name() Provider { return ProviderAnthropic }

// Complete iterates candidate models, and API versions inside each model,
// returning the first non-empty completion.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	opts = opts.withDefaults()

	var lastErr error
	attempts := 0
	for _, model := range c.models {
		for _, version := range c.versions {
			attempts++
			body := map[string]any{
				"model":      model,
				"system":     opts.SystemContext,
				"max_tokens": opts.MaxTokens,
				"messages": []map[string]string{
					{"role": "user", "content": prompt},
				},
				"temperature": opts.Temperature,
			}

			resp, err := c.http.R().
				SetContext(ctx).
				SetHeader("anthropic-version", version).
				SetBody(body).
				Post("/v1/messages")
			if err != nil {
				lastErr = fmt.Errorf("model %s (api %s): %w", model, version, err)
				continue
			}
			if resp.IsError() {
				lastErr = fmt.Errorf("model %s (api %s): HTTP %d", model, version, resp.StatusCode())
				continue
			}

			content := gjson.Get(resp.String(), "content.0.text").String()
			if content == "" {
				lastErr = fmt.Errorf("model %s (api %s): empty completion payload", model, version)
				continue
			}
			return content, nil
		}
	}

	return "", &ExhaustedError{Provider: ProviderAnthropic, Attempts: attempts, Last: lastErr}
}

// Close is a no-op for the HTTP client.
func (c *AnthropicClient) Close() error { return nil }
