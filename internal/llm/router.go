package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Completer is the completion collaborator the pipeline components depend
// on. GenerateText degrades to local canned text instead of failing.
type Completer interface {
	GenerateText(ctx context.Context, prompt string, opts Options) string
}

// RouterConfig selects the fan-out policy.
type RouterConfig struct {
	// Preferred is tried first. Defaults to the first registered provider.
	Preferred Provider
	// FallbackEnabled permits trying an alternate provider after the
	// preferred one exhausts.
	FallbackEnabled bool
	// RaceAll races every remaining provider concurrently instead of the
	// default sequential preferred-then-one-fallback policy. It trades
	// provider cost for latency.
	RaceAll bool
}

// Router fans a logical completion request out across providers per the
// configured policy and degrades to deterministic local text when every
// candidate is exhausted.
type Router struct {
	clients map[Provider]Client
	order   []Provider
	cfg     RouterConfig
	quota   *QuotaTracker
	logger  *zap.Logger
}

// NewRouter builds a router over the given clients. Registration order
// fixes the fallback order.
func NewRouter(clients []Client, cfg RouterConfig, quota *QuotaTracker, logger *zap.Logger) (*Router, error) {
	if len(clients) == 0 {
		return nil, fmt.Errorf("at least one provider client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if quota == nil {
		quota = NewQuotaTracker(nil, logger)
	}

	byName := make(map[Provider]Client, len(clients))
	order := make([]Provider, 0, len(clients))
	for _, client := range clients {
		if _, dup := byName[client.Name()]; dup {
			return nil, fmt.Errorf("duplicate provider %s", client.Name())
		}
		byName[client.Name()] = client
		order = append(order, client.Name())
	}

	if cfg.Preferred == "" {
		cfg.Preferred = order[0]
	}
	if _, ok := byName[cfg.Preferred]; !ok {
		return nil, fmt.Errorf("preferred provider %s is not registered", cfg.Preferred)
	}

	mode := "sequential"
	if cfg.RaceAll {
		mode = "race-all"
	}
	logger.Info("completion router ready",
		zap.String("preferred", string(cfg.Preferred)),
		zap.Bool("fallback", cfg.FallbackEnabled),
		zap.String("mode", mode),
	)

	return &Router{clients: byName, order: order, cfg: cfg, quota: quota, logger: logger}, nil
}

// GenerateText resolves one logical completion request. It never fails:
// when every provider candidate is exhausted it returns a canned local
// fallback chosen by prompt keyword sniffing.
func (r *Router) GenerateText(ctx context.Context, prompt string, opts Options) string {
	text, provider, err := r.Complete(ctx, prompt, opts)
	if err != nil {
		r.logger.Warn("all providers exhausted, using local fallback", zap.Error(err))
		return LocalFallback(prompt)
	}
	r.quota.Record(provider, prompt, text)
	return text
}

// Complete resolves one logical completion request against the provider
// set and reports which provider answered. Unlike GenerateText it surfaces
// exhaustion to the caller.
func (r *Router) Complete(ctx context.Context, prompt string, opts Options) (string, Provider, error) {
	text, err := r.clients[r.cfg.Preferred].Complete(ctx, prompt, opts)
	if err == nil {
		return text, r.cfg.Preferred, nil
	}
	r.logger.Debug("preferred provider exhausted",
		zap.String("provider", string(r.cfg.Preferred)), zap.Error(err))

	if !r.cfg.FallbackEnabled {
		return "", "", err
	}

	remaining := r.remainingProviders()
	if len(remaining) == 0 {
		return "", "", err
	}

	if r.cfg.RaceAll {
		return r.raceAll(ctx, remaining, prompt, opts)
	}

	// Sequential policy: exactly one alternate provider.
	alternate := remaining[0]
	text, err = r.clients[alternate].Complete(ctx, prompt, opts)
	if err != nil {
		return "", "", err
	}
	return text, alternate, nil
}

// Close releases every provider client.
func (r *Router) Close() error {
	var firstErr error
	for _, client := range r.clients {
		if err := client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Router) remainingProviders() []Provider {
	out := make([]Provider, 0, len(r.order)-1)
	for _, p := range r.order {
		if p != r.cfg.Preferred {
			out = append(out, p)
		}
	}
	return out
}

// raceAll issues the remaining providers concurrently and takes the first
// settled success. Losing attempts are canceled.
func (r *Router) raceAll(ctx context.Context, providers []Provider, prompt string, opts Options) (string, Provider, error) {
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type answer struct {
		text     string
		provider Provider
	}
	answers := make(chan answer, len(providers))

	g, gctx := errgroup.WithContext(raceCtx)
	for _, p := range providers {
		client := r.clients[p]
		provider := p
		g.Go(func() error {
			text, err := client.Complete(gctx, prompt, opts)
			if err != nil {
				// Per-attempt failures never abort the race.
				return nil
			}
			select {
			case answers <- answer{text: text, provider: provider}:
				cancel()
			default:
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(answers)
	}()

	if first, ok := <-answers; ok {
		return first.text, first.provider, nil
	}
	return "", "", fmt.Errorf("all %d raced providers exhausted", len(providers))
}
