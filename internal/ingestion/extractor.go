package ingestion

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/HRC-Manu/bewerbungs-core/internal/types"
)

// RawDocument is the caller-owned input to text extraction. Either Bytes or
// Text is set; Text wins when both are present.
type RawDocument struct {
	Bytes    []byte
	Text     string
	MimeType string
	FileName string
	FileSize int64
}

// MIME types accepted by the default extractor.
const (
	MimePDF  = "application/pdf"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDoc  = "application/msword"
	MimeText = "text/plain"
)

var formatLabels = map[string]string{
	MimePDF:  "PDF",
	MimeDocx: "Word",
	MimeDoc:  "Word",
	MimeText: "Text",
}

// TextExtractor converts a raw document to plain text. Implementations
// report input problems inside the result and never panic or return errors
// for unsupported content.
type TextExtractor interface {
	ExtractText(ctx context.Context, doc RawDocument) types.ExtractionResult
}

// FileExtractor extracts text from PDF, DOCX/DOC and plain-text documents.
type FileExtractor struct{}

// NewFileExtractor returns the default extractor.
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

// IsSupported reports whether the MIME type can be extracted.
func (e *FileExtractor) IsSupported(mimeType string) bool {
	_, ok := formatLabels[mimeType]
	return ok
}

// ExtractText extracts and cleans text from a raw document.
func (e *FileExtractor) ExtractText(_ context.Context, doc RawDocument) types.ExtractionResult {
	if doc.Text == "" && len(doc.Bytes) == 0 {
		return failure(doc, "no document content provided")
	}

	if doc.Text != "" {
		return success(doc, MimeText, doc.Text)
	}

	if !e.IsSupported(doc.MimeType) {
		return failure(doc, fmt.Sprintf("unsupported file format: %s", doc.MimeType))
	}

	var (
		text string
		err  error
	)
	switch doc.MimeType {
	case MimePDF:
		text, err = extractPDF(doc.Bytes)
	case MimeDocx, MimeDoc:
		text, err = extractDocx(doc.Bytes)
	case MimeText:
		text = string(doc.Bytes)
	}
	if err != nil {
		return failure(doc, fmt.Sprintf("failed to process file: %v", err))
	}

	return success(doc, doc.MimeType, text)
}

func success(doc RawDocument, mimeType, raw string) types.ExtractionResult {
	cleaned := CleanText(raw)
	return types.ExtractionResult{
		Success:     true,
		Text:        cleaned,
		FormatLabel: formatLabels[mimeType],
		FileName:    doc.FileName,
		FileSize:    doc.FileSize,
		WordCount:   countWords(cleaned),
	}
}

func failure(doc RawDocument, msg string) types.ExtractionResult {
	return types.ExtractionResult{
		Success:  false,
		Text:     "",
		FileName: doc.FileName,
		FileSize: doc.FileSize,
		Error:    msg,
	}
}

// extractPDF pulls text from every page of a PDF.
func extractPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	var lastErr error
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			continue
		}
		if strings.TrimSpace(pageText) != "" {
			sb.WriteString(pageText)
			sb.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		if lastErr != nil {
			return "", lastErr
		}
		return "", fmt.Errorf("no text found in PDF")
	}
	return result, nil
}

var docxTextRun = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
var docxParaEnd = regexp.MustCompile(`</w:p>`)

// extractDocx reads word/document.xml from the DOCX zip container and
// collects the text runs.
func extractDocx(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX container: %w", err)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open document.xml: %w", err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("failed to read document.xml: %w", err)
		}

		xmlText := docxParaEnd.ReplaceAllString(string(content), "\n")
		matches := docxTextRun.FindAllStringSubmatch(xmlText, -1)
		var sb strings.Builder
		for _, m := range matches {
			sb.WriteString(decodeXMLEntities(m[1]))
			sb.WriteString(" ")
		}
		if sb.Len() == 0 {
			return "", fmt.Errorf("no text found in document")
		}
		return sb.String(), nil
	}
	return "", fmt.Errorf("document.xml not found in DOCX container")
}

var xmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

func decodeXMLEntities(s string) string {
	return xmlEntities.Replace(s)
}
