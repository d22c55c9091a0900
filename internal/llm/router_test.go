package llm

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient is a scripted provider for router tests.
type stubClient struct {
	name   Provider
	text   string
	err    error
	calls  atomic.Int64
	closed atomic.Bool
}

func (c *stubClient) Name() Provider { return c.name }

func (c *stubClient) Complete(_ context.Context, _ string, _ Options) (string, error) {
	c.calls.Add(1)
	if c.err != nil {
		return "", c.err
	}
	return c.text, nil
}

func (c *stubClient) Close() error {
	c.closed.Store(true)
	return nil
}

func exhausted(p Provider) error {
	return &ExhaustedError{Provider: p, Attempts: 1, Last: fmt.Errorf("HTTP 429")}
}

func TestNewRouterRejectsEmptyAndDuplicates(t *testing.T) {
	_, err := NewRouter(nil, RouterConfig{}, nil, nil)
	assert.Error(t, err)

	_, err = NewRouter([]Client{
		&stubClient{name: ProviderOpenAI},
		&stubClient{name: ProviderOpenAI},
	}, RouterConfig{}, nil, nil)
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewRouter([]Client{
		&stubClient{name: ProviderOpenAI},
	}, RouterConfig{Preferred: ProviderCohere}, nil, nil)
	assert.ErrorContains(t, err, "not registered")
}

func TestRouterPrefersConfiguredProvider(t *testing.T) {
	openai := &stubClient{name: ProviderOpenAI, text: "from openai"}
	gemini := &stubClient{name: ProviderGemini, text: "from gemini"}

	router, err := NewRouter([]Client{openai, gemini},
		RouterConfig{Preferred: ProviderGemini, FallbackEnabled: true}, nil, nil)
	require.NoError(t, err)

	text, provider, err := router.Complete(context.Background(), "prompt", Options{})
	require.NoError(t, err)
	assert.Equal(t, "from gemini", text)
	assert.Equal(t, ProviderGemini, provider)
	assert.EqualValues(t, 0, openai.calls.Load())
}

func TestRouterSequentialFallbackTriesExactlyOneAlternate(t *testing.T) {
	openai := &stubClient{name: ProviderOpenAI, err: exhausted(ProviderOpenAI)}
	gemini := &stubClient{name: ProviderGemini, err: exhausted(ProviderGemini)}
	cohere := &stubClient{name: ProviderCohere, text: "from cohere"}

	router, err := NewRouter([]Client{openai, gemini, cohere},
		RouterConfig{Preferred: ProviderOpenAI, FallbackEnabled: true}, nil, nil)
	require.NoError(t, err)

	_, _, err = router.Complete(context.Background(), "prompt", Options{})
	assert.Error(t, err)
	assert.EqualValues(t, 1, openai.calls.Load())
	assert.EqualValues(t, 1, gemini.calls.Load())
	// The sequential policy never reaches a second alternate.
	assert.EqualValues(t, 0, cohere.calls.Load())
}

func TestRouterFallbackDisabled(t *testing.T) {
	openai := &stubClient{name: ProviderOpenAI, err: exhausted(ProviderOpenAI)}
	gemini := &stubClient{name: ProviderGemini, text: "from gemini"}

	router, err := NewRouter([]Client{openai, gemini},
		RouterConfig{Preferred: ProviderOpenAI, FallbackEnabled: false}, nil, nil)
	require.NoError(t, err)

	_, _, err = router.Complete(context.Background(), "prompt", Options{})
	assert.Error(t, err)
	assert.EqualValues(t, 0, gemini.calls.Load())
}

func TestRouterRaceAllTakesFirstSuccess(t *testing.T) {
	openai := &stubClient{name: ProviderOpenAI, err: exhausted(ProviderOpenAI)}
	gemini := &stubClient{name: ProviderGemini, err: exhausted(ProviderGemini)}
	cohere := &stubClient{name: ProviderCohere, text: "from cohere"}

	router, err := NewRouter([]Client{openai, gemini, cohere},
		RouterConfig{Preferred: ProviderOpenAI, FallbackEnabled: true, RaceAll: true}, nil, nil)
	require.NoError(t, err)

	text, provider, err := router.Complete(context.Background(), "prompt", Options{})
	require.NoError(t, err)
	assert.Equal(t, "from cohere", text)
	assert.Equal(t, ProviderCohere, provider)
}

func TestRouterRaceAllAllExhausted(t *testing.T) {
	openai := &stubClient{name: ProviderOpenAI, err: exhausted(ProviderOpenAI)}
	gemini := &stubClient{name: ProviderGemini, err: exhausted(ProviderGemini)}

	router, err := NewRouter([]Client{openai, gemini},
		RouterConfig{Preferred: ProviderOpenAI, FallbackEnabled: true, RaceAll: true}, nil, nil)
	require.NoError(t, err)

	_, _, err = router.Complete(context.Background(), "prompt", Options{})
	assert.ErrorContains(t, err, "exhausted")
}

func TestGenerateTextDegradesToLocalFallback(t *testing.T) {
	openai := &stubClient{name: ProviderOpenAI, err: exhausted(ProviderOpenAI)}

	router, err := NewRouter([]Client{openai}, RouterConfig{}, nil, nil)
	require.NoError(t, err)

	text := router.GenerateText(context.Background(), "Rewrite my resume bullet points.", Options{})
	assert.Equal(t, fallbackResume, text)
}

func TestGenerateTextRecordsQuota(t *testing.T) {
	openai := &stubClient{name: ProviderOpenAI, text: "four char response here"}
	quota := NewQuotaTracker(nil, nil)

	router, err := NewRouter([]Client{openai}, RouterConfig{}, quota, nil)
	require.NoError(t, err)

	router.GenerateText(context.Background(), "a prompt", Options{})
	assert.Positive(t, quota.Used(ProviderOpenAI))
}

func TestRouterCloseClosesAllClients(t *testing.T) {
	openai := &stubClient{name: ProviderOpenAI}
	gemini := &stubClient{name: ProviderGemini}

	router, err := NewRouter([]Client{openai, gemini}, RouterConfig{}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, router.Close())
	assert.True(t, openai.closed.Load())
	assert.True(t, gemini.closed.Load())
}
