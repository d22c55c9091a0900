// Package pipeline provides the high-level orchestration for document
// intake: text extraction, cleaning, classification, field extraction and
// matching, with fingerprint-keyed caching around every expensive step.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/HRC-Manu/bewerbungs-core/internal/cache"
	"github.com/HRC-Manu/bewerbungs-core/internal/extract"
	"github.com/HRC-Manu/bewerbungs-core/internal/history"
	"github.com/HRC-Manu/bewerbungs-core/internal/ingestion"
	"github.com/HRC-Manu/bewerbungs-core/internal/logger"
	"github.com/HRC-Manu/bewerbungs-core/internal/matching"
	"github.com/HRC-Manu/bewerbungs-core/internal/notify"
	"github.com/HRC-Manu/bewerbungs-core/internal/types"
)

// AnalysisResult is the complete outcome of analyzing one document.
type AnalysisResult struct {
	Type        types.DocumentType               `json:"type"`
	Text        string                           `json:"text"`
	FormatLabel string                           `json:"formatLabel"`
	FileName    string                           `json:"fileName,omitempty"`
	Fingerprint string                           `json:"fingerprint"`
	FromCache   bool                             `json:"fromCache,omitempty"`
	Resume      *types.StructuredResumeData      `json:"resume,omitempty"`
	JobPosting  *types.StructuredJobPostingData  `json:"jobPosting,omitempty"`
	CoverLetter *types.StructuredCoverLetterData `json:"coverLetter,omitempty"`
}

// Classifier is the classification collaborator.
type Classifier interface {
	Classify(ctx context.Context, text string) types.DocumentType
}

// Analyzer runs the intake pipeline. All collaborators are injected;
// caches and history may be nil when persistence is not wanted.
type Analyzer struct {
	extractor   ingestion.TextExtractor
	classifier  Classifier
	fields      *extract.Extractor
	scorer      *matching.Scorer
	textCache   *cache.Cache
	resultCache *cache.Cache
	records     *history.History
	notifier    notify.Notifier
	logger      *zap.Logger
	workers     int
}

// Options configure an Analyzer.
type Options struct {
	Extractor   ingestion.TextExtractor
	Classifier  Classifier
	Fields      *extract.Extractor
	Scorer      *matching.Scorer
	TextCache   *cache.Cache
	ResultCache *cache.Cache
	History     *history.History
	Notifier    notify.Notifier
	Logger      *zap.Logger
	// BatchWorkers bounds concurrent documents in AnalyzeBatch.
	BatchWorkers int
}

// New builds an Analyzer. Extractor, Classifier and Fields are required.
func New(opts Options) (*Analyzer, error) {
	if opts.Extractor == nil {
		return nil, fmt.Errorf("text extractor is required")
	}
	if opts.Classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}
	if opts.Fields == nil {
		return nil, fmt.Errorf("field extractor is required")
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.BatchWorkers <= 0 {
		opts.BatchWorkers = 4
	}
	return &Analyzer{
		extractor:   opts.Extractor,
		classifier:  opts.Classifier,
		fields:      opts.Fields,
		scorer:      opts.Scorer,
		textCache:   opts.TextCache,
		resultCache: opts.ResultCache,
		records:     opts.History,
		notifier:    opts.Notifier,
		logger:      opts.Logger,
		workers:     opts.BatchWorkers,
	}, nil
}

// Analyze runs the full sequential chain for one document: extract text,
// clean, classify, extract typed fields. Extraction failures are the only
// error; everything past the text stage degrades instead of failing.
func (a *Analyzer) Analyze(ctx context.Context, doc ingestion.RawDocument) (*AnalysisResult, error) {
	text, err := a.extractText(ctx, doc)
	if err != nil {
		a.notifier.Notify(fmt.Sprintf("Could not read %s: %v", doc.FileName, err), notify.LevelError)
		return nil, err
	}

	cleaned := ingestion.CleanText(text)
	fingerprint := ingestion.Fingerprint(cleaned)

	if result := a.cachedResult(ctx, fingerprint); result != nil {
		a.logger.Debug("analysis served from cache",
			zap.String("file", doc.FileName), zap.String("fingerprint", fingerprint))
		result.FromCache = true
		return result, nil
	}

	docType := a.classifier.Classify(ctx, cleaned)
	a.logger.Info("document classified",
		zap.String("file", doc.FileName),
		zap.String("type", string(docType)),
		zap.String("preview", logger.TruncateForLog(cleaned, 80)),
	)

	result := &AnalysisResult{
		Type:        docType,
		Text:        cleaned,
		FormatLabel: formatLabel(doc),
		FileName:    doc.FileName,
		Fingerprint: fingerprint,
	}

	switch docType {
	case types.TypeResume:
		data := a.fields.Resume(ctx, cleaned)
		result.Resume = &data
	case types.TypeJobPosting:
		data := a.fields.JobPosting(ctx, cleaned)
		result.JobPosting = &data
	case types.TypeCoverLetter:
		data := a.fields.CoverLetter(ctx, cleaned)
		result.CoverLetter = &data
	default:
		a.notifier.Notify(fmt.Sprintf("Could not determine the document type of %s", doc.FileName), notify.LevelWarning)
	}

	a.storeResult(ctx, fingerprint, result)
	a.record(ctx, result)
	return result, nil
}

// Match compares resume text against job posting text, memoized by the
// pair of content fingerprints.
func (a *Analyzer) Match(ctx context.Context, resumeText, jobPostingText string) (types.MatchingResult, error) {
	if a.scorer == nil {
		return types.MatchingResult{}, fmt.Errorf("no matching scorer configured")
	}

	cleanedResume := ingestion.CleanText(resumeText)
	cleanedPosting := ingestion.CleanText(jobPostingText)
	key := "match_" + ingestion.Fingerprint(cleanedResume+"\x00"+cleanedPosting)

	if a.resultCache != nil {
		var cached types.MatchingResult
		if a.resultCache.GetInto(ctx, key, &cached) {
			return cached, nil
		}
	}

	result := a.scorer.Match(ctx, cleanedResume, cleanedPosting)
	if a.resultCache != nil {
		if err := a.resultCache.Put(ctx, key, result); err != nil {
			a.logger.Warn("failed to cache match result", zap.Error(err))
		}
	}
	return result, nil
}

// AnalyzeBatch analyzes documents concurrently through a bounded worker
// pool. Results keep input order; a failed document leaves a nil slot and
// the first error is returned alongside the partial results.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, docs []ingestion.RawDocument) ([]*AnalysisResult, error) {
	results := make([]*AnalysisResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			result, err := a.Analyze(gctx, doc)
			if err != nil {
				return fmt.Errorf("analyzing %s: %w", doc.FileName, err)
			}
			results[i] = result
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

// extractText resolves raw document bytes to text, memoized by a cheap
// fingerprint over the raw content.
func (a *Analyzer) extractText(ctx context.Context, doc ingestion.RawDocument) (string, error) {
	var rawKey string
	if doc.Text != "" {
		rawKey = "text_" + ingestion.Fingerprint(doc.Text)
	} else {
		rawKey = "text_" + ingestion.Fingerprint(string(doc.Bytes))
	}

	if a.textCache != nil {
		var cached string
		if a.textCache.GetInto(ctx, rawKey, &cached) {
			return cached, nil
		}
	}

	extraction := a.extractor.ExtractText(ctx, doc)
	if !extraction.Success {
		return "", fmt.Errorf("text extraction failed: %s", extraction.Error)
	}

	if a.textCache != nil {
		if err := a.textCache.Put(ctx, rawKey, extraction.Text); err != nil {
			a.logger.Warn("failed to cache extracted text", zap.Error(err))
		}
	}
	return extraction.Text, nil
}

func (a *Analyzer) cachedResult(ctx context.Context, fingerprint string) *AnalysisResult {
	if a.resultCache == nil {
		return nil
	}
	var result AnalysisResult
	if !a.resultCache.GetInto(ctx, "analysis_"+fingerprint, &result) {
		return nil
	}
	return &result
}

func (a *Analyzer) storeResult(ctx context.Context, fingerprint string, result *AnalysisResult) {
	if a.resultCache == nil {
		return
	}
	if err := a.resultCache.Put(ctx, "analysis_"+fingerprint, result); err != nil {
		a.logger.Warn("failed to cache analysis result", zap.Error(err))
	}
}

func (a *Analyzer) record(ctx context.Context, result *AnalysisResult) {
	if a.records == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if _, err := a.records.Append(ctx, result.Type, result.FileName, json.RawMessage(payload)); err != nil {
		a.logger.Warn("failed to record analysis in history", zap.Error(err))
	}
}

func formatLabel(doc ingestion.RawDocument) string {
	switch doc.MimeType {
	case ingestion.MimePDF:
		return "PDF"
	case ingestion.MimeDocx, ingestion.MimeDoc:
		return "Word"
	default:
		return "Text"
	}
}
