package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var alternativesCmd = &cobra.Command{
	Use:   "alternatives [sentence]",
	Short: "Suggest alternative phrasings for a sentence",
	Long:  "Generate rewordings of a single sentence, useful for polishing resume bullet points or cover letter lines.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAlternatives,
}

var alternativesCount int

func init() {
	alternativesCmd.Flags().IntVarP(&alternativesCount, "count", "n", 3, "Number of alternatives to generate")

	rootCmd.AddCommand(alternativesCmd)
}

func runAlternatives(cmd *cobra.Command, args []string) error {
	sentence := strings.TrimSpace(strings.Join(args, " "))
	if sentence == "" {
		return fmt.Errorf("sentence must not be empty")
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	for i, alt := range a.generator.Alternatives(ctx, sentence, alternativesCount) {
		cmd.Printf("%d. %s\n", i+1, alt)
	}
	return nil
}
