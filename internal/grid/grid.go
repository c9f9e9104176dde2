// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package grid sweeps the assembly stage over a Cartesian product of
// parameter values, producing one prompt file per combination.
package grid

import (
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/corpus-engine/internal/assemble"
)

// Axes lists the parameter values to sweep. An empty axis contributes
// the base parameter value unchanged.
type Axes struct {
	Words           []int
	PriorityDates   []time.Time
	Citations       []int
	SkipPercentages []float64
}

// Cell is one grid combination and its outcome.
type Cell struct {
	Params assemble.Params
	Result assemble.Result
	Err    error
}

// Summary counts cell outcomes for a sweep.
type Summary struct {
	OK     int
	Failed int
}

// expand returns the Cartesian product of the axes applied to base, in a
// stable order: words vary slowest, skip percentages fastest.
func expand(base assemble.Params, axes Axes) []assemble.Params {
	words := axes.Words
	if len(words) == 0 {
		words = []int{base.Words}
	}
	dates := axes.PriorityDates
	if len(dates) == 0 {
		dates = []time.Time{base.PriorityDate}
	}
	citations := axes.Citations
	if len(citations) == 0 {
		citations = []int{base.MinCitations}
	}
	skips := axes.SkipPercentages
	if len(skips) == 0 {
		skips = []float64{base.SkipPercentage}
	}

	var cells []assemble.Params
	for _, w := range words {
		for _, d := range dates {
			for _, c := range citations {
				for _, s := range skips {
					p := base
					p.Words = w
					p.PriorityDate = d
					p.MinCitations = c
					p.SkipPercentage = s
					cells = append(cells, p)
				}
			}
		}
	}
	return cells
}

// Run executes the assembly stage once per combination. A failing cell
// is reported and the sweep continues.
func Run(base assemble.Params, axes Axes, counter assemble.TokenCounter, w io.Writer) ([]Cell, Summary) {
	params := expand(base, axes)
	fmt.Fprintf(w, "Grid sweep: %d combinations\n\n", len(params))

	var cells []Cell
	var summary Summary
	for i, p := range params {
		fmt.Fprintf(w, "[%3d/%d] words=%d priority=%s citations=%d skip=%.0f%%\n",
			i+1, len(params), p.Words, describeDate(p.PriorityDate), p.MinCitations, p.SkipPercentage)

		result, err := assemble.Build(p, counter, w)
		if err != nil {
			fmt.Fprintf(w, "        failed: %v\n", err)
			summary.Failed++
		} else {
			summary.OK++
		}
		cells = append(cells, Cell{Params: p, Result: result, Err: err})
	}

	fmt.Fprintf(w, "\nGrid summary: %d ok, %d failed (total: %d)\n",
		summary.OK, summary.Failed, len(params))
	return cells, summary
}

func describeDate(t time.Time) string {
	if t.IsZero() {
		return "none"
	}
	return t.Format("2006-01-02")
}
