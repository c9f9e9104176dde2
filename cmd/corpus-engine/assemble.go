// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/corpus-engine/internal/assemble"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Concatenate paper texts into one prompt file",
	Long: `Assemble selects converted paper texts by publication date or citation
count, optionally drops a random share of them, truncates each to a
word budget, and concatenates the rest into a single file. The output
name encodes every parameter plus the measured cl100k_base token count,
e.g. w300_from20260101_cit10_37papers_123456tok.txt.`,
	RunE: runAssemble,
}

func init() {
	assembleCmd.Flags().Int("words", 0, "words to take from each paper (required)")
	assembleCmd.Flags().String("priority-date", "", "always include papers published on or after this date (YYYY-MM-DD)")
	assembleCmd.Flags().Int("citations", 0, "minimum citation count for papers before the priority date")
	assembleCmd.Flags().Float64("skip-percentage", 0, "randomly skip this percent of selected papers (0-100)")
	assembleCmd.Flags().Int64("seed", 0, "random seed for the skip sampling (0 = from the clock)")
	assembleCmd.Flags().String("txt-dir", "pdfs_txt", "directory with converted paper texts")
	assembleCmd.Flags().String("out-dir", "paper_prompts", "directory to write prompt files")
	assembleCmd.MarkFlagRequired("words")

	rootCmd.AddCommand(assembleCmd)
}

// assembleParams builds assembly parameters from the command's flags,
// shared with the grid command.
func assembleParams(cmd *cobra.Command) (assemble.Params, error) {
	words, _ := cmd.Flags().GetInt("words")
	citations, _ := cmd.Flags().GetInt("citations")
	skipPct, _ := cmd.Flags().GetFloat64("skip-percentage")
	seed, _ := cmd.Flags().GetInt64("seed")
	txtDir, _ := cmd.Flags().GetString("txt-dir")
	outDir, _ := cmd.Flags().GetString("out-dir")

	p := assemble.Params{
		TxtDir:         txtDir,
		OutDir:         outDir,
		Words:          words,
		MinCitations:   citations,
		SkipPercentage: skipPct,
		Seed:           seed,
	}

	if dateStr, _ := cmd.Flags().GetString("priority-date"); dateStr != "" {
		date, err := parsePriorityDate(dateStr)
		if err != nil {
			return assemble.Params{}, err
		}
		p.PriorityDate = date
	}

	if p.Words <= 0 {
		return assemble.Params{}, fmt.Errorf("--words must be positive")
	}
	if p.SkipPercentage < 0 || p.SkipPercentage >= 100 {
		return assemble.Params{}, fmt.Errorf("--skip-percentage must be in [0, 100)")
	}
	return p, nil
}

func parsePriorityDate(s string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("priority date must be YYYY-MM-DD, got %q", s)
	}
	return date, nil
}

func runAssemble(cmd *cobra.Command, args []string) error {
	p, err := assembleParams(cmd)
	if err != nil {
		return err
	}

	counter, err := assemble.NewCl100kCounter()
	if err != nil {
		return err
	}

	_, err = assemble.Build(p, counter, os.Stdout)
	return err
}
