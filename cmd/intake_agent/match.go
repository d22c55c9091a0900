package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HRC-Manu/bewerbungs-core/internal/ingestion"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score how well a resume matches a job posting",
	Long:  "Compare a resume against a job posting and print a structured match report with an overall score, matching/missing skills and recommendations.",
	RunE:  runMatch,
}

var (
	matchResumeFile  string
	matchPostingFile string
	matchPostingURL  string
	matchOutputFile  string
)

func init() {
	matchCmd.Flags().StringVar(&matchResumeFile, "resume", "", "Path to the resume file (required)")
	matchCmd.Flags().StringVar(&matchPostingFile, "posting", "", "Path to the job posting file")
	matchCmd.Flags().StringVar(&matchPostingURL, "posting-url", "", "URL to fetch the job posting from")
	matchCmd.Flags().StringVarP(&matchOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	_ = matchCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	if (matchPostingFile == "") == (matchPostingURL == "") {
		return fmt.Errorf("exactly one of --posting or --posting-url is required")
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	resumeText, err := documentText(ctx, matchResumeFile)
	if err != nil {
		return err
	}

	postingText, err := resolvePostingText(ctx, matchPostingFile, matchPostingURL)
	if err != nil {
		return err
	}

	result, err := a.analyzer.Match(ctx, resumeText, postingText)
	if err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal match report: %w", err)
	}
	return writeOutput(matchOutputFile, jsonBytes)
}

// resolvePostingText loads job posting text from either a local file or a URL.
func resolvePostingText(ctx context.Context, file, urlStr string) (string, error) {
	if urlStr != "" {
		text, _, err := ingestion.IngestFromURL(ctx, urlStr)
		return text, err
	}
	return documentText(ctx, file)
}

// documentText extracts plain text from any supported document file.
func documentText(ctx context.Context, path string) (string, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return "", err
	}
	extraction := ingestion.NewFileExtractor().ExtractText(ctx, doc)
	if !extraction.Success {
		return "", fmt.Errorf("failed to extract text from %s: %s", path, extraction.Error)
	}
	return extraction.Text, nil
}
