// Package classify decides the document type of cleaned intake text using
// keyword scoring with structural heuristics, delegating inconclusive
// cases to a completion model.
package classify

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/HRC-Manu/bewerbungs-core/internal/llm"
	"github.com/HRC-Manu/bewerbungs-core/internal/prompts"
	"github.com/HRC-Manu/bewerbungs-core/internal/types"
)

const (
	// DefaultThreshold is the minimum normalized keyword score required
	// to accept the rule-based classification without consulting the
	// model.
	DefaultThreshold = 0.35

	// aiTextLimit caps how much document text the fallback prompt
	// carries.
	aiTextLimit = 2500
)

var (
	exactRegexes     map[string]*regexp.Regexp
	exactRegexesOnce sync.Once
)

func wordBoundaryRegexes() map[string]*regexp.Regexp {
	exactRegexesOnce.Do(func() {
		exactRegexes = make(map[string]*regexp.Regexp)
		for _, keywords := range typeKeywords {
			for _, keyword := range keywords {
				exactRegexes[keyword] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
			}
		}
	})
	return exactRegexes
}

// Classifier scores text against the per-type keyword tables. When the
// winning score stays below the threshold it asks the completion
// collaborator instead. Classification never fails: every error path
// degrades to TypeUnknown.
type Classifier struct {
	completer llm.Completer
	threshold float64
	logger    *zap.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithThreshold overrides the rule-based acceptance threshold.
func WithThreshold(threshold float64) Option {
	return func(c *Classifier) { c.threshold = threshold }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Classifier) { c.logger = logger }
}

// New builds a Classifier. completer may be nil, in which case
// inconclusive documents classify as TypeUnknown without a model call.
func New(completer llm.Completer, opts ...Option) *Classifier {
	c := &Classifier{
		completer: completer,
		threshold: DefaultThreshold,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify determines the document type of cleaned text.
func (c *Classifier) Classify(ctx context.Context, text string) types.DocumentType {
	if strings.TrimSpace(text) == "" {
		return types.TypeUnknown
	}

	scores := c.Scores(text)

	best := types.TypeUnknown
	maxScore := 0
	for _, docType := range types.KnownTypes() {
		if scores[docType] > maxScore {
			maxScore = scores[docType]
			best = docType
		}
	}

	normalized := float64(maxScore) / float64(10+len(types.KnownTypes()))
	c.logger.Debug("rule-based classification",
		zap.Any("scores", scores),
		zap.Float64("normalized", normalized),
	)

	if normalized >= c.threshold {
		return best
	}
	return c.classifyWithAI(ctx, text)
}

// Scores computes the raw keyword score for every known type. Exact
// word-boundary matches count double; substring matches count once. A
// document carrying all structural markers of a type earns its booster
// bonus on top.
func (c *Classifier) Scores(text string) map[types.DocumentType]int {
	textLower := strings.ToLower(text)
	regexes := wordBoundaryRegexes()

	scores := make(map[types.DocumentType]int, len(typeKeywords))
	for docType, keywords := range typeKeywords {
		score := 0
		for _, keyword := range keywords {
			if regexes[keyword].MatchString(textLower) {
				score += 2
			} else if strings.Contains(textLower, keyword) {
				score++
			}
		}
		scores[docType] = score
	}

	for _, b := range boosters {
		allPresent := true
		for _, marker := range b.markers {
			if !marker.MatchString(textLower) {
				allPresent = false
				break
			}
		}
		if allPresent {
			scores[b.docType] += b.bonus
		}
	}

	return scores
}

// classifyWithAI asks the completion collaborator for a single-token
// verdict. Unparseable or missing responses degrade to TypeUnknown.
func (c *Classifier) classifyWithAI(ctx context.Context, text string) types.DocumentType {
	if c.completer == nil {
		return types.TypeUnknown
	}

	// Truncate on a rune boundary; a byte slice could split a umlaut and
	// send invalid UTF-8 to the provider.
	truncated := text
	if runes := []rune(truncated); len(runes) > aiTextLimit {
		truncated = string(runes[:aiTextLimit])
	}

	template := prompts.MustGet("classify.json", "document-type")
	prompt := prompts.Format(template, map[string]string{"Text": truncated})

	response := c.completer.GenerateText(ctx, prompt, llm.Options{
		Temperature:   0.1,
		MaxTokens:     10,
		SystemContext: prompts.MustGet("classify.json", "document-type-context"),
	})

	docType := types.ParseDocumentType(response)
	c.logger.Debug("model-assisted classification",
		zap.String("response", fmt.Sprintf("%.40s", response)),
		zap.String("type", string(docType)),
	)
	return docType
}
