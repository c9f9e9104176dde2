// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package naming implements the filename conventions that connect the
// pipeline stages. PDF and text artifacts are named
// YYYY_YYYYMMDD_CCCCC_Title so that later stages can recover the
// publication date and citation count without any side channel; prompt
// files encode the parameters that produced them plus the measured
// token count.
package naming

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pdiddy/corpus-engine/pkg/types"
)

// DefaultSlugLen caps title slugs in citation-batch filenames.
const DefaultSlugLen = 60

// TitleListSlugLen caps title slugs in title-list filenames.
const TitleListSlugLen = 80

// TitleSlug returns a filesystem-safe slug for a paper title: characters
// outside letters, digits, whitespace, underscore, and hyphen are dropped,
// whitespace runs become single underscores, and the result is truncated
// to maxLen. An empty or fully stripped title becomes "untitled".
func TitleSlug(title string, maxLen int) string {
	var b strings.Builder
	inSpace := false
	for _, r := range title {
		switch {
		case unicode.IsSpace(r):
			inSpace = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			if inSpace && b.Len() > 0 {
				b.WriteRune('_')
			}
			inSpace = false
			b.WriteRune(r)
		}
	}

	slug := strings.Trim(b.String(), "_")
	if len(slug) > maxLen {
		slug = strings.Trim(slug[:maxLen], "_")
	}
	if slug == "" {
		return "untitled"
	}
	return slug
}

// PDFName builds the download filename for a citing paper:
// YYYY_YYYYMMDD_CCCCC_Title.pdf. A missing year renders as "0000" and a
// missing publication date falls back to YYYY0000, so lexical order is
// chronological order.
func PDFName(p types.CitingPaper) string {
	year := "0000"
	if p.Year > 0 {
		year = fmt.Sprintf("%04d", p.Year)
	}

	date := strings.ReplaceAll(p.PublicationDate, "-", "")
	if len(date) != 8 {
		date = year + "0000"
	}

	return fmt.Sprintf("%s_%s_%05d_%s.pdf", year, date, p.CitationCount, TitleSlug(p.Title, DefaultSlugLen))
}

// ParsePDFBase extracts the publication date and citation count from an
// artifact filename produced by PDFName (extension included or not).
// Malformed names return a zero time and zero citations, which places the
// paper under the citation-threshold rule during assembly.
func ParsePDFBase(name string) (pubDate time.Time, citations int) {
	parts := strings.Split(name, "_")
	if len(parts) < 3 {
		return time.Time{}, 0
	}

	citations, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, 0
	}

	pubDate, err = time.Parse("20060102", parts[1])
	if err != nil {
		return time.Time{}, citations
	}
	return pubDate, citations
}

// PromptName encodes the assembly parameters and the resulting token count:
// w<N>[_from<YYYYMMDD>]_cit<C>[_skip<P>pct]_<Papers>papers_<Tokens>tok.txt.
// The from part appears only when a priority date was set and the skip part
// only when a nonzero skip percentage was applied.
func PromptName(words int, priorityDate time.Time, minCitations int, skipPct float64, papers, tokens int) string {
	parts := []string{fmt.Sprintf("w%d", words)}
	if !priorityDate.IsZero() {
		parts = append(parts, "from"+priorityDate.Format("20060102"))
	}
	parts = append(parts, fmt.Sprintf("cit%d", minCitations))
	if skipPct > 0 {
		parts = append(parts, fmt.Sprintf("skip%dpct", int(skipPct)))
	}
	parts = append(parts, fmt.Sprintf("%dpapers", papers), fmt.Sprintf("%dtok", tokens))
	return strings.Join(parts, "_") + ".txt"
}
