// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble builds word-budgeted prompt files from converted
// paper texts. Papers are selected by publication date or citation count
// (both recovered from the filename encoding), optionally thinned by
// random sampling, truncated to a word budget each, and concatenated
// with a separator. The output filename records every parameter along
// with the measured token count.
package assemble

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/corpus-engine/internal/naming"
)

// Separator divides papers in the concatenated output.
const Separator = "\n\n=====\nNEW PAPER\n=====\n\n"

// TokenCounter reports how many LLM tokens a text occupies.
type TokenCounter interface {
	Count(text string) (int, error)
}

// Params holds one assembly run's parameters.
type Params struct {
	// TxtDir is the directory of converted paper texts.
	TxtDir string

	// OutDir is the directory prompt files are written to.
	OutDir string

	// Words is the per-paper word budget.
	Words int

	// PriorityDate admits papers published on or after it regardless of
	// citation count. Zero disables the date rule.
	PriorityDate time.Time

	// MinCitations admits papers at or above this citation count.
	MinCitations int

	// SkipPercentage randomly drops this share (0-100) of the selected
	// papers before concatenation.
	SkipPercentage float64

	// Seed seeds the sampling RNG. 0 means seed from the clock.
	Seed int64
}

// Result describes one produced prompt file.
type Result struct {
	// Path is the written prompt file.
	Path string

	// Selected is the paper count after filtering, Kept the count after
	// random sampling.
	Selected int
	Kept     int

	// Tokens is the measured token count of the concatenated output.
	Tokens int
}

// SelectPapers returns the .txt files in txtDir passing the filters, in
// name order. A paper is admitted when its publication date is on or
// after priorityDate (when one is set), or when its citation count
// reaches minCitations. Files whose names do not parse fall under the
// citation rule with zero citations.
func SelectPapers(txtDir string, priorityDate time.Time, minCitations int) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(txtDir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", txtDir, err)
	}
	sort.Strings(files)

	var selected []string
	for _, f := range files {
		pubDate, citations := naming.ParsePDFBase(filepath.Base(f))
		switch {
		case !priorityDate.IsZero() && !pubDate.Before(priorityDate):
			selected = append(selected, f)
		case citations >= minCitations:
			selected = append(selected, f)
		}
	}
	return selected, nil
}

// sample randomly drops skipPct percent of papers, keeping at least one.
// The kept papers are returned in their original order so output is
// deterministic for a given seed.
func sample(papers []string, skipPct float64, rng *rand.Rand) []string {
	if skipPct <= 0 || len(papers) == 0 {
		return papers
	}

	keep := int(float64(len(papers)) * (1 - skipPct/100))
	if keep < 1 {
		keep = 1
	}

	idx := rng.Perm(len(papers))[:keep]
	sort.Ints(idx)

	kept := make([]string, 0, keep)
	for _, i := range idx {
		kept = append(kept, papers[i])
	}
	return kept
}

// TruncateWords returns the first n whitespace-delimited words of text,
// joined by single spaces.
func TruncateWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// Build runs one assembly: select, sample, truncate, concatenate, count
// tokens, and write the prompt file. An empty selection is an error.
func Build(p Params, counter TokenCounter, w io.Writer) (Result, error) {
	papers, err := SelectPapers(p.TxtDir, p.PriorityDate, p.MinCitations)
	if err != nil {
		return Result{}, err
	}
	if len(papers) == 0 {
		return Result{}, fmt.Errorf("no papers in %s matched the filters", p.TxtDir)
	}
	fmt.Fprintf(w, "Selected %d papers (priority date %s, min citations %d)\n",
		len(papers), formatDate(p.PriorityDate), p.MinCitations)

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	kept := sample(papers, p.SkipPercentage, rand.New(rand.NewSource(seed)))
	if p.SkipPercentage > 0 {
		fmt.Fprintf(w, "After %.0f%% random skip: %d papers remain\n", p.SkipPercentage, len(kept))
	}

	chunks := make([]string, 0, len(kept))
	for _, f := range kept {
		data, err := os.ReadFile(f)
		if err != nil {
			return Result{}, fmt.Errorf("reading %s: %w", f, err)
		}
		chunks = append(chunks, TruncateWords(string(data), p.Words))
	}
	combined := strings.Join(chunks, Separator)

	tokens, err := counter.Count(combined)
	if err != nil {
		return Result{}, fmt.Errorf("counting tokens: %w", err)
	}

	if err := os.MkdirAll(p.OutDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory %s: %w", p.OutDir, err)
	}

	name := naming.PromptName(p.Words, p.PriorityDate, p.MinCitations, p.SkipPercentage, len(kept), tokens)
	outPath := filepath.Join(p.OutDir, name)
	if err := os.WriteFile(outPath, []byte(combined), 0o644); err != nil {
		return Result{}, fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Fprintf(w, "Saved %s (%d papers, %d tokens, %d words per paper)\n",
		outPath, len(kept), tokens, p.Words)

	return Result{
		Path:     outPath,
		Selected: len(papers),
		Kept:     len(kept),
		Tokens:   tokens,
	}, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "none"
	}
	return t.Format("2006-01-02")
}
