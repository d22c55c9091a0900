// Package extract turns cleaned document text into canonical structured
// data via prompt-templated completion calls. Every extractor guarantees
// the shape invariants of its result type: arrays are never nil, nested
// objects are always present, and no extraction failure escapes to the
// caller.
package extract

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/HRC-Manu/bewerbungs-core/internal/llm"
	"github.com/HRC-Manu/bewerbungs-core/internal/parsing"
	"github.com/HRC-Manu/bewerbungs-core/internal/prompts"
	"github.com/HRC-Manu/bewerbungs-core/internal/types"
)

var extractOptions = llm.Options{
	Temperature: 0.2,
	MaxTokens:   2000,
}

// Extractor resolves structured data from document text through the
// completion collaborator.
type Extractor struct {
	completer llm.Completer
	logger    *zap.Logger
}

// New builds an Extractor. A nil logger falls back to a no-op logger.
func New(completer llm.Completer, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{completer: completer, logger: logger}
}

// Resume extracts canonical resume data from cleaned text.
func (e *Extractor) Resume(ctx context.Context, text string) types.StructuredResumeData {
	var data types.StructuredResumeData
	if err := e.complete(ctx, "resume", text, &data); err != nil {
		e.logger.Warn("resume extraction failed, using generic fallback", zap.Error(err))
		e.genericInto(ctx, text, &data)
		return data
	}
	data.Normalize()
	e.validate(types.TypeResume, data)
	return data
}

// JobPosting extracts canonical job posting data from cleaned text.
func (e *Extractor) JobPosting(ctx context.Context, text string) types.StructuredJobPostingData {
	var data types.StructuredJobPostingData
	if err := e.complete(ctx, "job-posting", text, &data); err != nil {
		e.logger.Warn("job posting extraction failed, using generic fallback", zap.Error(err))
		e.genericInto(ctx, text, &data)
		return data
	}
	data.Normalize()
	e.validate(types.TypeJobPosting, data)
	return data
}

// CoverLetter extracts canonical cover letter data from cleaned text.
func (e *Extractor) CoverLetter(ctx context.Context, text string) types.StructuredCoverLetterData {
	var data types.StructuredCoverLetterData
	if err := e.complete(ctx, "cover-letter", text, &data); err != nil {
		e.logger.Warn("cover letter extraction failed, using generic fallback", zap.Error(err))
		e.genericInto(ctx, text, &data)
		return data
	}
	data.Normalize()
	e.validate(types.TypeCoverLetter, data)
	return data
}

// normalizable is implemented by every structured result type.
type normalizable interface {
	Normalize()
}

// complete fills the named prompt template with text, asks the completion
// collaborator, and loose-decodes the response into out.
func (e *Extractor) complete(ctx context.Context, key, text string, out any) error {
	template := prompts.MustGet("extract.json", key)
	prompt := prompts.Format(template, map[string]string{"Text": text})

	opts := extractOptions
	opts.SystemContext = prompts.MustGet("extract.json", key+"-context")

	response := e.completer.GenerateText(ctx, prompt, opts)
	return parsing.DecodeLoose(response, out)
}

// genericInto runs the catch-all extraction cycle and decodes whatever
// comes back into out. It cannot fail outward: when even the generic
// response does not decode, out keeps its zero value and is normalized to
// the canonical empty structure.
func (e *Extractor) genericInto(ctx context.Context, text string, out normalizable) {
	if err := e.complete(ctx, "generic", text, out); err != nil {
		e.logger.Warn("generic extraction failed, returning empty structure", zap.Error(err))
	}
	out.Normalize()
}

// validate checks the final structure against its schema and logs
// violations. Extraction results are best-effort, so a schema miss is
// diagnostic, never fatal.
func (e *Extractor) validate(docType types.DocumentType, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := parsing.ValidateDocument(docType, string(payload)); err != nil {
		e.logger.Debug("extracted data failed schema validation",
			zap.String("type", string(docType)), zap.Error(err))
	}
}
