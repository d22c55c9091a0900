// Package generate produces application text (cover letters, alternative
// phrasings) from structured intake results via the completion
// collaborator.
package generate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/HRC-Manu/bewerbungs-core/internal/llm"
	"github.com/HRC-Manu/bewerbungs-core/internal/prompts"
)

// Style selects the overall register of a generated cover letter.
type Style string

const (
	StyleFormal   Style = "formal"
	StyleCasual   Style = "casual"
	StyleCreative Style = "creative"
)

// Tone selects the voice of a generated cover letter.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneEnthusiastic Tone = "enthusiastic"
	ToneConfident    Tone = "confident"
)

// CoverLetterOptions shape the generated letter.
type CoverLetterOptions struct {
	Style                 Style
	Tone                  Tone
	EmphasisOn            []string
	Region                string
	IncludeIntroduction   bool
	IncludeQualifications bool
	IncludeMotivation     bool
}

// DefaultCoverLetterOptions returns the conventional formal letter setup.
func DefaultCoverLetterOptions() CoverLetterOptions {
	return CoverLetterOptions{
		Style:                 StyleFormal,
		Tone:                  ToneProfessional,
		Region:                "Germany",
		IncludeIntroduction:   true,
		IncludeQualifications: true,
		IncludeMotivation:     true,
	}
}

// Generator produces application text.
type Generator struct {
	completer llm.Completer
	logger    *zap.Logger
}

// New builds a Generator. A nil logger falls back to a no-op logger.
func New(completer llm.Completer, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{completer: completer, logger: logger}
}

// CoverLetter writes a letter from resume and posting text. The result is
// always non-empty; provider exhaustion degrades to canned fallback text
// inside the completion collaborator.
func (g *Generator) CoverLetter(ctx context.Context, resumeText, jobPostingText string, opts CoverLetterOptions) string {
	template := prompts.MustGet("generate.json", "cover-letter")
	prompt := prompts.Format(template, map[string]string{
		"Style":          styleDescription(opts.Style),
		"Tone":           toneDescription(opts.Tone),
		"Emphasis":       emphasisClause(opts.EmphasisOn),
		"Structure":      structureClause(opts),
		"Region":         opts.Region,
		"ResumeText":     resumeText,
		"JobPostingText": jobPostingText,
	})

	return g.completer.GenerateText(ctx, prompt, llm.Options{
		Temperature:   0.7,
		MaxTokens:     2000,
		SystemContext: prompts.MustGet("generate.json", "cover-letter-context"),
	})
}

var numberedLine = regexp.MustCompile(`^\d+[.)]`)

// localPatterns rephrase a sentence without any model call.
var localPatterns = []string{
	"In other words, %s",
	"Put differently: %s",
	"That means %s",
	"To phrase it another way: %s",
	"Concretely, this means: %s",
}

// Alternatives produces count alternative phrasings of a sentence. When
// the model yields fewer usable lines than requested, deterministic local
// patterns fill the remainder.
func (g *Generator) Alternatives(ctx context.Context, sentence string, count int) []string {
	if count <= 0 {
		return []string{}
	}

	template := prompts.MustGet("generate.json", "alternatives")
	prompt := prompts.Format(template, map[string]string{
		"Count":    fmt.Sprintf("%d", count),
		"Sentence": sentence,
	})

	response := g.completer.GenerateText(ctx, prompt, llm.Options{
		Temperature:   0.8,
		MaxTokens:     500,
		SystemContext: prompts.MustGet("generate.json", "alternatives-context"),
	})

	alternatives := make([]string, 0, count)
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Alternative") || numberedLine.MatchString(line) {
			continue
		}
		alternatives = append(alternatives, line)
		if len(alternatives) == count {
			return alternatives
		}
	}

	g.logger.Debug("model returned too few alternatives, padding with local patterns",
		zap.Int("got", len(alternatives)), zap.Int("want", count))
	return padWithLocalAlternatives(alternatives, sentence, count)
}

func padWithLocalAlternatives(alternatives []string, sentence string, count int) []string {
	for i := 0; len(alternatives) < count; i++ {
		pattern := localPatterns[i%len(localPatterns)]
		alternatives = append(alternatives, fmt.Sprintf(pattern, sentence))
	}
	return alternatives
}

func styleDescription(style Style) string {
	switch style {
	case StyleCasual:
		return "friendly and personal, yet professional"
	case StyleCreative:
		return "creative and striking, showing personality"
	default:
		return "formal and professional"
	}
}

func toneDescription(tone Tone) string {
	switch tone {
	case ToneEnthusiastic:
		return "enthusiastic and motivated"
	case ToneConfident:
		return "confident and assertive"
	default:
		return "professional and matter-of-fact"
	}
}

func emphasisClause(emphasis []string) string {
	if len(emphasis) == 0 {
		return ""
	}
	return fmt.Sprintf("\nPlease especially highlight the following aspects: %s.", strings.Join(emphasis, ", "))
}

func structureClause(opts CoverLetterOptions) string {
	parts := make([]string, 0, 3)
	if opts.IncludeIntroduction {
		parts = append(parts, "a personal introduction")
	}
	if opts.IncludeQualifications {
		parts = append(parts, "relevant qualifications and experience")
	}
	if opts.IncludeMotivation {
		parts = append(parts, "motivation for the application")
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("\nThe cover letter should contain the following elements: %s.", strings.Join(parts, ", "))
}
