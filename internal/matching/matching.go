// Package matching compares a resume against a job posting through the
// completion collaborator and produces a structured match report.
package matching

import (
	"context"

	"go.uber.org/zap"

	"github.com/HRC-Manu/bewerbungs-core/internal/llm"
	"github.com/HRC-Manu/bewerbungs-core/internal/parsing"
	"github.com/HRC-Manu/bewerbungs-core/internal/prompts"
	"github.com/HRC-Manu/bewerbungs-core/internal/types"
)

var matchOptions = llm.Options{
	Temperature: 0.3,
	MaxTokens:   1500,
}

// Scorer produces match reports.
type Scorer struct {
	completer llm.Completer
	logger    *zap.Logger
}

// New builds a Scorer. A nil logger falls back to a no-op logger.
func New(completer llm.Completer, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{completer: completer, logger: logger}
}

// Match compares resume text against job posting text. It never fails:
// any parse failure yields the canonical empty report, and all
// percentage scores in a real report are clamped to [0,100].
func (s *Scorer) Match(ctx context.Context, resumeText, jobPostingText string) types.MatchingResult {
	template := prompts.MustGet("matching.json", "compare")
	prompt := prompts.Format(template, map[string]string{
		"ResumeText":     resumeText,
		"JobPostingText": jobPostingText,
	})

	opts := matchOptions
	opts.SystemContext = prompts.MustGet("matching.json", "compare-context")

	response := s.completer.GenerateText(ctx, prompt, opts)

	var result types.MatchingResult
	if err := parsing.DecodeLoose(response, &result); err != nil {
		s.logger.Warn("match report did not parse, returning empty report", zap.Error(err))
		return types.EmptyMatchingResult()
	}
	result.Normalize()
	return result
}
