package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrInvalidURL is returned when the URL is malformed.
	ErrInvalidURL = fmt.Errorf("invalid URL")
	// ErrHTTPRequestFailed is returned when the HTTP request fails.
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be extracted.
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

const (
	fetchTimeout = 30 * time.Second
	userAgent    = "Mozilla/5.0 (compatible; IntakeAgent/1.0)"
)

// contentSelectors are tried in order; the first non-empty match wins.
var contentSelectors = []string{
	"main", "article", "[role=main]",
	".job-description", ".description", "#content", "body",
}

// noiseSelectors are stripped before text extraction.
var noiseSelectors = []string{
	"script", "style", "nav", "header", "footer", "aside", "noscript",
}

// IngestFromURL fetches a job posting page, extracts the main text, cleans
// it, and returns the cleaned text with metadata.
func IngestFromURL(ctx context.Context, urlStr string) (string, *Metadata, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", nil, fmt.Errorf("%w: %s", ErrInvalidURL, urlStr)
	}

	html, err := fetchHTML(ctx, urlStr)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	text, err := ExtractMainText(html)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: page contains no text", ErrContentExtractionFailed)
	}

	meta := NewMetadata(cleaned, urlStr)
	return cleaned, meta, nil
}

func fetchHTML(ctx context.Context, urlStr string) (string, error) {
	client := &http.Client{Timeout: fetchTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}

// ExtractMainText pulls the main content text out of an HTML document,
// removing navigation and script noise first.
func ExtractMainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	for _, sel := range contentSelectors {
		selection := doc.Find(sel)
		if selection.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(selection.First().Text())
		if text != "" {
			return text, nil
		}
	}

	return "", fmt.Errorf("no content found")
}
