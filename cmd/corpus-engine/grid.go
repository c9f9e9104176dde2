// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/corpus-engine/internal/assemble"
	"github.com/pdiddy/corpus-engine/internal/grid"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Assemble prompt files across a parameter grid",
	Long: `Grid runs the assembly stage once per combination of word budgets,
priority dates, citation thresholds, and skip percentages, writing one
prompt file per cell. Axis flags take comma-separated lists; a date of
"none" disables the priority-date filter for that cell. A cell that
fails is reported and the sweep continues.`,
	RunE: runGrid,
}

func init() {
	gridCmd.Flags().IntSlice("words", nil, "word budgets to sweep (comma-separated)")
	gridCmd.Flags().StringSlice("priority-dates", nil, "priority dates to sweep (YYYY-MM-DD or \"none\")")
	gridCmd.Flags().IntSlice("citations", nil, "citation thresholds to sweep")
	gridCmd.Flags().Float64Slice("skip-percentages", nil, "skip percentages to sweep")
	gridCmd.Flags().Int64("seed", 0, "random seed for the skip sampling (0 = from the clock)")
	gridCmd.Flags().String("txt-dir", "pdfs_txt", "directory with converted paper texts")
	gridCmd.Flags().String("out-dir", "paper_prompts", "directory to write prompt files")
	gridCmd.MarkFlagRequired("words")

	rootCmd.AddCommand(gridCmd)
}

func gridAxes(cmd *cobra.Command) (grid.Axes, error) {
	words, _ := cmd.Flags().GetIntSlice("words")
	citations, _ := cmd.Flags().GetIntSlice("citations")
	skips, _ := cmd.Flags().GetFloat64Slice("skip-percentages")
	dateStrs, _ := cmd.Flags().GetStringSlice("priority-dates")

	axes := grid.Axes{
		Words:           words,
		Citations:       citations,
		SkipPercentages: skips,
	}
	for _, s := range dateStrs {
		if s == "none" {
			axes.PriorityDates = append(axes.PriorityDates, time.Time{})
			continue
		}
		date, err := parsePriorityDate(s)
		if err != nil {
			return grid.Axes{}, err
		}
		axes.PriorityDates = append(axes.PriorityDates, date)
	}

	for _, w := range axes.Words {
		if w <= 0 {
			return grid.Axes{}, fmt.Errorf("--words values must be positive, got %d", w)
		}
	}
	for _, p := range axes.SkipPercentages {
		if p < 0 || p >= 100 {
			return grid.Axes{}, fmt.Errorf("--skip-percentages values must be in [0, 100), got %g", p)
		}
	}
	return axes, nil
}

func runGrid(cmd *cobra.Command, args []string) error {
	axes, err := gridAxes(cmd)
	if err != nil {
		return err
	}

	seed, _ := cmd.Flags().GetInt64("seed")
	txtDir, _ := cmd.Flags().GetString("txt-dir")
	outDir, _ := cmd.Flags().GetString("out-dir")
	base := assemble.Params{
		TxtDir: txtDir,
		OutDir: outDir,
		Seed:   seed,
	}

	counter, err := assemble.NewCl100kCounter()
	if err != nil {
		return err
	}

	_, summary := grid.Run(base, axes, counter, os.Stdout)
	if summary.Failed > 0 {
		return fmt.Errorf("%d grid cell(s) failed", summary.Failed)
	}
	return nil
}
