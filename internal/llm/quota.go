package llm

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// defaultWarnFraction is the share of a provider's quota at which a warning
// fires.
const defaultWarnFraction = 0.8

// warningInterval limits threshold warnings to one per provider per day.
const warningInterval = 24 * time.Hour

// QuotaTracker counts estimated token usage per provider and emits a
// threshold warning at most once per 24 hours.
type QuotaTracker struct {
	mu           sync.Mutex
	used         map[Provider]int64
	limits       map[Provider]int64
	lastWarnedAt map[Provider]time.Time
	warnFraction float64
	logger       *zap.Logger
	now          func() time.Time
}

// NewQuotaTracker builds a tracker. limits maps providers to known token
// quotas; providers without an entry are never warned about.
func NewQuotaTracker(limits map[Provider]int64, logger *zap.Logger) *QuotaTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limits == nil {
		limits = map[Provider]int64{}
	}
	return &QuotaTracker{
		used:         make(map[Provider]int64),
		limits:       limits,
		lastWarnedAt: make(map[Provider]time.Time),
		warnFraction: defaultWarnFraction,
		logger:       logger,
		now:          time.Now,
	}
}

// Record adds the estimated token cost of one successful call and fires the
// threshold warning when usage crosses the configured fraction of the
// provider's quota.
func (t *QuotaTracker) Record(provider Provider, prompt, completion string) {
	tokens := estimateTokens(prompt) + estimateTokens(completion)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.used[provider] += tokens

	limit, ok := t.limits[provider]
	if !ok || limit <= 0 {
		return
	}
	if float64(t.used[provider]) < t.warnFraction*float64(limit) {
		return
	}
	if last, warned := t.lastWarnedAt[provider]; warned && t.now().Sub(last) < warningInterval {
		return
	}
	t.lastWarnedAt[provider] = t.now()
	t.logger.Warn("provider quota threshold crossed",
		zap.String("provider", string(provider)),
		zap.Int64("used_tokens", t.used[provider]),
		zap.Int64("limit_tokens", limit),
	)
}

// Used returns the recorded token usage for a provider.
func (t *QuotaTracker) Used(provider Provider) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.used[provider]
}

// estimateTokens approximates token count as one token per four characters.
func estimateTokens(text string) int64 {
	return int64(len(text)+3) / 4
}
