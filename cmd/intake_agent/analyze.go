package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HRC-Manu/bewerbungs-core/internal/ingestion"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Classify documents and extract structured data",
	Long:  "Analyze one or more application documents (PDF, DOCX, TXT): extract their text, determine the document type and extract structured JSON data.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

var analyzeOutputFile string

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	docs := make([]ingestion.RawDocument, 0, len(args))
	for _, path := range args {
		doc, err := loadDocument(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	results, err := a.analyzer.AnalyzeBatch(ctx, docs)
	if err != nil {
		return err
	}

	var out any = results
	if len(results) == 1 {
		out = results[0]
	}
	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	return writeOutput(analyzeOutputFile, jsonBytes)
}

// loadDocument reads a file and tags it with a MIME type derived from its
// extension.
func loadDocument(path string) (ingestion.RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ingestion.RawDocument{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return ingestion.RawDocument{
		Bytes:    data,
		MimeType: mimeTypeFor(path),
		FileName: filepath.Base(path),
		FileSize: int64(len(data)),
	}, nil
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return ingestion.MimePDF
	case ".docx":
		return ingestion.MimeDocx
	case ".doc":
		return ingestion.MimeDoc
	default:
		return ingestion.MimeText
	}
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
