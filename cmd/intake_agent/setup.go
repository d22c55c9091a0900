package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/HRC-Manu/bewerbungs-core/internal/cache"
	"github.com/HRC-Manu/bewerbungs-core/internal/classify"
	"github.com/HRC-Manu/bewerbungs-core/internal/config"
	"github.com/HRC-Manu/bewerbungs-core/internal/extract"
	"github.com/HRC-Manu/bewerbungs-core/internal/generate"
	"github.com/HRC-Manu/bewerbungs-core/internal/history"
	"github.com/HRC-Manu/bewerbungs-core/internal/ingestion"
	"github.com/HRC-Manu/bewerbungs-core/internal/llm"
	"github.com/HRC-Manu/bewerbungs-core/internal/logger"
	"github.com/HRC-Manu/bewerbungs-core/internal/matching"
	"github.com/HRC-Manu/bewerbungs-core/internal/notify"
	"github.com/HRC-Manu/bewerbungs-core/internal/pipeline"
	"github.com/HRC-Manu/bewerbungs-core/internal/store"
)

// app bundles everything a command needs.
type app struct {
	cfg       config.Config
	log       *zap.Logger
	completer llm.Completer
	analyzer  *pipeline.Analyzer
	generator *generate.Generator
	history   *history.History
	closers   []func() error
}

// localCompleter serves canned fallback text when no provider credentials
// are configured.
type localCompleter struct{}

func (localCompleter) GenerateText(_ context.Context, prompt string, _ llm.Options) string {
	return llm.LocalFallback(prompt)
}

// newApp wires the pipeline from config, env keys and flags.
func newApp(ctx context.Context) (*app, error) {
	cfg := config.Defaults()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded.MergeWithDefaults(config.Defaults())
	}
	if flagVerbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(flagJSONLog, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	a := &app{cfg: cfg, log: log}

	kv, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}

	a.completer, err = a.buildCompleter(ctx)
	if err != nil {
		return nil, err
	}

	textCache := cache.New(ctx, "document_texts", kv,
		cache.WithCapacity(cfg.CacheCapacity),
		cache.WithMaxAge(time.Duration(cfg.TextCacheMaxAgeHours)*time.Hour),
		cache.WithLogger(log),
	)
	resultCache := cache.New(ctx, "analysis_results", kv,
		cache.WithCapacity(cfg.CacheCapacity),
		cache.WithMaxAge(time.Duration(cfg.ResultCacheMaxAgeHours)*time.Hour),
		cache.WithLogger(log),
	)

	a.history = history.New(kv)
	a.generator = generate.New(a.completer, log)

	a.analyzer, err = pipeline.New(pipeline.Options{
		Extractor: ingestion.NewFileExtractor(),
		Classifier: classify.New(a.completer,
			classify.WithThreshold(cfg.ClassificationThreshold),
			classify.WithLogger(log),
		),
		Fields:       extract.New(a.completer, log),
		Scorer:       matching.New(a.completer, log),
		TextCache:    textCache,
		ResultCache:  resultCache,
		History:      a.history,
		Notifier:     notify.NewLogger(log),
		Logger:       log,
		BatchWorkers: cfg.BatchWorkers,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) openStore(ctx context.Context) (store.KV, error) {
	if a.cfg.DatabaseURL != "" {
		pg, err := store.ConnectPostgres(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { pg.Close(); return nil })
		return pg, nil
	}

	fs, err := store.NewFileStore(a.cfg.StorePath, a.cfg.StoreQuotaBytes)
	if err != nil {
		return nil, err
	}
	return fs, nil
}

// buildCompleter assembles the provider fan-out router from whichever API
// keys are present. With no keys at all the agent still runs, degraded to
// deterministic local fallback text.
func (a *app) buildCompleter(ctx context.Context) (llm.Completer, error) {
	keys := config.KeysFromEnv()

	var clients []llm.Client
	if keys.OpenAI != "" {
		client, err := llm.NewOpenAIClient(keys.OpenAI, "")
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	if keys.Gemini != "" {
		client, err := llm.NewGeminiClient(ctx, keys.Gemini)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	if keys.Anthropic != "" {
		client, err := llm.NewAnthropicClient(keys.Anthropic, "")
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	if keys.Cohere != "" {
		client, err := llm.NewCohereClient(keys.Cohere, "")
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	if len(clients) == 0 {
		a.log.Warn("no provider API keys configured, all completions will use local fallback text")
		return localCompleter{}, nil
	}

	limits := make(map[llm.Provider]int64, len(a.cfg.QuotaLimits))
	for provider, limit := range a.cfg.QuotaLimits {
		limits[llm.Provider(provider)] = limit
	}

	// The configured preference only applies when that provider has a key.
	preferred := llm.Provider(a.cfg.PreferredProvider)
	available := false
	for _, client := range clients {
		if client.Name() == preferred {
			available = true
			break
		}
	}
	if !available {
		a.log.Info("preferred provider has no API key, falling back to first available",
			zap.String("preferred", string(preferred)),
			zap.String("using", string(clients[0].Name())))
		preferred = clients[0].Name()
	}

	router, err := llm.NewRouter(clients, llm.RouterConfig{
		Preferred:       preferred,
		FallbackEnabled: a.cfg.FallbackOn(),
		RaceAll:         a.cfg.RaceAll,
	}, llm.NewQuotaTracker(limits, a.log), a.log)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, router.Close)
	return router, nil
}

func (a *app) close() {
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			a.log.Warn("cleanup failed", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}
