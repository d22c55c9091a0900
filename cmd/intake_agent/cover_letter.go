package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HRC-Manu/bewerbungs-core/internal/generate"
)

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Generate a cover letter from a resume and a job posting",
	Long:  "Draft a cover letter tailored to a job posting, using the resume text as the applicant's background. Style, tone and emphasis are configurable.",
	RunE:  runCoverLetter,
}

var (
	letterResumeFile   string
	letterPostingFile  string
	letterPostingURL   string
	letterStyle        string
	letterTone         string
	letterEmphasis     []string
	letterRegion       string
	letterNoIntro      bool
	letterNoQuals      bool
	letterNoMotivation bool
	letterOutputFile   string
)

func init() {
	coverLetterCmd.Flags().StringVar(&letterResumeFile, "resume", "", "Path to the resume file (required)")
	coverLetterCmd.Flags().StringVar(&letterPostingFile, "posting", "", "Path to the job posting file")
	coverLetterCmd.Flags().StringVar(&letterPostingURL, "posting-url", "", "URL to fetch the job posting from")
	coverLetterCmd.Flags().StringVar(&letterStyle, "style", string(generate.StyleFormal), "Writing style: formal, casual or creative")
	coverLetterCmd.Flags().StringVar(&letterTone, "tone", string(generate.ToneProfessional), "Voice: professional, enthusiastic or confident")
	coverLetterCmd.Flags().StringSliceVar(&letterEmphasis, "emphasis", nil, "Topics to emphasize (repeatable)")
	coverLetterCmd.Flags().StringVar(&letterRegion, "region", "", "Regional letter conventions to follow (default from config)")
	coverLetterCmd.Flags().BoolVar(&letterNoIntro, "no-introduction", false, "Skip the introduction section")
	coverLetterCmd.Flags().BoolVar(&letterNoQuals, "no-qualifications", false, "Skip the qualifications section")
	coverLetterCmd.Flags().BoolVar(&letterNoMotivation, "no-motivation", false, "Skip the motivation section")
	coverLetterCmd.Flags().StringVarP(&letterOutputFile, "out", "o", "", "Path to output file (default: stdout)")
	_ = coverLetterCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(coverLetterCmd)
}

func runCoverLetter(_ *cobra.Command, _ []string) error {
	if (letterPostingFile == "") == (letterPostingURL == "") {
		return fmt.Errorf("exactly one of --posting or --posting-url is required")
	}

	opts := generate.DefaultCoverLetterOptions()
	switch generate.Style(letterStyle) {
	case generate.StyleFormal, generate.StyleCasual, generate.StyleCreative:
		opts.Style = generate.Style(letterStyle)
	default:
		return fmt.Errorf("unknown style %q", letterStyle)
	}
	switch generate.Tone(letterTone) {
	case generate.ToneProfessional, generate.ToneEnthusiastic, generate.ToneConfident:
		opts.Tone = generate.Tone(letterTone)
	default:
		return fmt.Errorf("unknown tone %q", letterTone)
	}
	opts.EmphasisOn = letterEmphasis
	opts.IncludeIntroduction = !letterNoIntro
	opts.IncludeQualifications = !letterNoQuals
	opts.IncludeMotivation = !letterNoMotivation

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if letterRegion != "" {
		opts.Region = letterRegion
	} else if a.cfg.Region != "" {
		opts.Region = a.cfg.Region
	}

	resumeText, err := documentText(ctx, letterResumeFile)
	if err != nil {
		return err
	}

	postingText, err := resolvePostingText(ctx, letterPostingFile, letterPostingURL)
	if err != nil {
		return err
	}

	letter := a.generator.CoverLetter(ctx, resumeText, postingText, opts)
	return writeOutput(letterOutputFile, []byte(letter+"\n"))
}
