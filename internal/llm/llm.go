// Package llm provides the completion collaborator: provider clients for
// remote language-model APIs and a router that layers retry, fallback and
// local degradation on top of them.
package llm

import (
	"context"
	"fmt"
	"time"
)

// Provider identifies a completion provider.
type Provider string

// Supported providers.
const (
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
	ProviderCohere    Provider = "cohere"
)

// Options carries per-request generation parameters.
type Options struct {
	Temperature   float32
	MaxTokens     int
	SystemContext string
}

// DefaultOptions returns the generation defaults used when a caller leaves
// fields zero.
func DefaultOptions() Options {
	return Options{
		Temperature:   0.7,
		MaxTokens:     2000,
		SystemContext: "You are an expert assistant for job applications.",
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxTokens == 0 {
		o.MaxTokens = def.MaxTokens
	}
	if o.SystemContext == "" {
		o.SystemContext = def.SystemContext
	}
	return o
}

// Client is a single completion provider. Complete returns the first
// non-empty completion from the provider's candidate models, or an error
// once every candidate is exhausted.
type Client interface {
	Name() Provider
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
	Close() error
}

// DefaultRequestTimeout bounds one provider attempt; the remote APIs set no
// deadline of their own.
const DefaultRequestTimeout = 45 * time.Second

// ExhaustedError reports that every model/version candidate of a provider
// failed for one request.
type ExhaustedError struct {
	Provider Provider
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	if e.Last != nil {
		return fmt.Sprintf("provider %s exhausted after %d attempts: %v", e.Provider, e.Attempts, e.Last)
	}
	return fmt.Sprintf("provider %s exhausted after %d attempts", e.Provider, e.Attempts)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}
