package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HRC-Manu/bewerbungs-core/internal/classify"
	"github.com/HRC-Manu/bewerbungs-core/internal/ingestion"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Determine the document type of a file",
	Long:  "Classify a document as resume, coverLetter, jobPosting or unknown without running field extraction.",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	extraction := ingestion.NewFileExtractor().ExtractText(ctx, doc)
	if !extraction.Success {
		return fmt.Errorf("text extraction failed: %s", extraction.Error)
	}

	cleaned := ingestion.CleanText(extraction.Text)
	classifier := classify.New(a.completer,
		classify.WithThreshold(a.cfg.ClassificationThreshold),
		classify.WithLogger(a.log),
	)
	fmt.Println(classifier.Classify(ctx, cleaned))
	return nil
}
