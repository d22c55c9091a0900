package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var geminiModels = []string{
	"gemini-1.5-pro",
	"gemini-1.5-flash",
	"gemini-1.0-pro",
	"gemini-pro",
}

// GeminiClient talks to Google Gemini through the official SDK.
type GeminiClient struct {
	client *genai.Client
	models []string
}

// NewGeminiClient builds a Gemini client.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	return &GeminiClient{client: client, models: geminiModels}, nil
}

// Name returns the provider tag.
func (c *GeminiClient) Name() Provider { return ProviderGemini }

// Complete iterates the candidate models in priority order and returns the
// first non-empty completion.
func (c *GeminiClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	opts = opts.withDefaults()

	var lastErr error
	attempts := 0
	for _, name := range c.models {
		attempts++
		model := c.client.GenerativeModel(name)
		model.SetTemperature(opts.Temperature)
		model.SetMaxOutputTokens(int32(opts.MaxTokens))

		// The system context is prepended; older Gemini models reject a
		// dedicated system role.
		full := opts.SystemContext + " " + prompt

		reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
		resp, err := model.GenerateContent(reqCtx, genai.Text(full))
		cancel()
		if err != nil {
			lastErr = fmt.Errorf("model %s: %w", name, err)
			continue
		}

		text, err := geminiResponseText(resp)
		if err != nil {
			lastErr = fmt.Errorf("model %s: %w", name, err)
			continue
		}
		return text, nil
	}

	return "", &ExhaustedError{Provider: ProviderGemini, Attempts: attempts, Last: lastErr}
}

// Close releases the underlying SDK client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func geminiResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	joined := strings.Join(parts, "")
	if strings.TrimSpace(joined) == "" {
		return "", fmt.Errorf("empty completion payload")
	}
	return joined, nil
}
