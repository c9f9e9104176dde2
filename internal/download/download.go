// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download retrieves paper PDFs by trying an ordered waterfall of
// open-access content sources until one yields a real PDF.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pdiddy/corpus-engine/internal/naming"
	"github.com/pdiddy/corpus-engine/pkg/types"
)

// ErrNoOpenAccess indicates that every source in the waterfall was tried
// and none produced a PDF.
var ErrNoOpenAccess = errors.New("no open-access PDF found")

// Outcome classifies what happened to one paper in a batch. The values
// double as catalog status strings.
const (
	StatusDownloaded = "downloaded"
	StatusNoAccess   = "no_access"
	StatusSkipped    = "skipped"
	StatusNotFound   = "not_found"
)

// Recorder receives the outcome of each paper in a batch. A nil Recorder
// disables recording; recording failures are reported but never abort
// the batch.
type Recorder interface {
	Record(paper types.CitingPaper, filename, source, status string) error
}

// Searcher resolves a paper title to its citation-graph record.
type Searcher interface {
	SearchTitle(ctx context.Context, title string) (*types.CitingPaper, error)
}

// BatchResult holds the outcome counts of a batch download run.
type BatchResult struct {
	Downloaded int
	NoAccess   int
	Skipped    int
	NotFound   int
}

// Total returns the number of papers processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.NoAccess + r.Skipped + r.NotFound
}

// FetchPaper tries each source for one paper until a valid PDF lands at
// destPath. It returns the name of the source that succeeded. Individual
// source failures are silent; only full exhaustion is an error
// (ErrNoOpenAccess).
func FetchPaper(ctx context.Context, client *http.Client, paper types.CitingPaper, destPath string, cfg types.DownloadConfig) (string, error) {
	for _, cand := range Candidates(paper) {
		if err := fetchPDF(ctx, client, cand.URL, destPath, cfg.UserAgent); err == nil {
			return cand.Source, nil
		}
	}

	pdfURL, landingURL, err := resolveUnpaywall(ctx, client, paper.ExternalIDs.DOI, cfg.UnpaywallEmail, cfg.UserAgent)
	if err == nil && pdfURL != "" {
		if err := fetchPDF(ctx, client, pdfURL, destPath, cfg.UserAgent); err == nil {
			return "unpaywall", nil
		}
	}
	if landingURL != "" {
		if scraped, err := scrapePDFURL(ctx, client, landingURL, cfg.UserAgent); err == nil && scraped != "" {
			if err := fetchPDF(ctx, client, scraped, destPath, cfg.UserAgent); err == nil {
				return "landing", nil
			}
		}
	}

	return "", ErrNoOpenAccess
}

// fetchPDF downloads url to destPath. The body must start with the %PDF
// magic bytes; anything else (login pages, HTML error pages) is rejected.
// Content is written to a temp file in the destination directory and
// renamed into place so a final name never holds a partial download.
func fetchPDF(ctx context.Context, client *http.Client, url, destPath, userAgent string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	var magic [4]byte
	if _, err := io.ReadFull(resp.Body, magic[:]); err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if string(magic[:]) != "%PDF" {
		return fmt.Errorf("%s did not return a PDF", url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := tmpFile.Write(magic[:])
	if copyErr == nil {
		_, copyErr = io.Copy(tmpFile, resp.Body)
	}
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// SortForDownload orders papers for a batch: papers published in
// priorityYear first, then citation count descending. priorityYear 0
// disables the year boost. The sort is stable so API order breaks ties.
func SortForDownload(papers []types.CitingPaper, priorityYear int) {
	sort.SliceStable(papers, func(i, j int) bool {
		pi := priorityYear != 0 && papers[i].Year == priorityYear
		pj := priorityYear != 0 && papers[j].Year == priorityYear
		if pi != pj {
			return pi
		}
		return papers[i].CitationCount > papers[j].CitationCount
	})
}

// FetchBatch downloads a set of citing papers into cfg.OutDir. Papers are
// sorted (priority year, then citations), optionally cut to cfg.Top,
// and downloaded one at a time with cfg.Delay between attempts. Names
// already on disk are skipped. Per-paper failures never abort the batch.
func FetchBatch(ctx context.Context, client *http.Client, papers []types.CitingPaper, cfg types.DownloadConfig, rec Recorder, w io.Writer) (BatchResult, error) {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating output directory %s: %w", cfg.OutDir, err)
	}

	SortForDownload(papers, cfg.PriorityYear)
	if cfg.Top > 0 && len(papers) > cfg.Top {
		papers = papers[:cfg.Top]
	}

	fmt.Fprintf(w, "\nDownloading %d papers to %s\n\n", len(papers), cfg.OutDir)

	var result BatchResult
	for i, paper := range papers {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		filename := naming.PDFName(paper)
		destPath := filepath.Join(cfg.OutDir, filename)

		if _, err := os.Stat(destPath); err == nil {
			fmt.Fprintf(w, "[%4d/%d] skipped: %s (already exists)\n", i+1, len(papers), filename)
			result.Skipped++
			record(rec, paper, filename, "", StatusSkipped, w)
			continue
		}

		source, err := FetchPaper(ctx, client, paper, destPath, cfg)
		if err != nil {
			fmt.Fprintf(w, "[%4d/%d] no open access: %s\n", i+1, len(papers), filename)
			result.NoAccess++
			record(rec, paper, filename, "", StatusNoAccess, w)
		} else {
			fmt.Fprintf(w, "[%4d/%d] downloaded (%s): %s\n", i+1, len(papers), source, filename)
			result.Downloaded++
			record(rec, paper, filename, source, StatusDownloaded, w)
		}

		if cfg.Delay > 0 && i < len(papers)-1 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(cfg.Delay):
			}
		}
	}

	fmt.Fprintf(w, "\nFetch summary: %d downloaded, %d without open access, %d skipped (total: %d)\n",
		result.Downloaded, result.NoAccess, result.Skipped, result.Total())
	return result, nil
}

// FetchTitles searches for each title and downloads the best match into
// cfg.OutDir under a slug of the requested title. The citation-batch
// sorting and priority year do not apply here; the list is processed in
// the order given.
func FetchTitles(ctx context.Context, client *http.Client, searcher Searcher, titles []string, cfg types.DownloadConfig, rec Recorder, w io.Writer) (BatchResult, error) {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating output directory %s: %w", cfg.OutDir, err)
	}

	fmt.Fprintf(w, "Searching and downloading %d papers to %s\n\n", len(titles), cfg.OutDir)

	var result BatchResult
	for i, title := range titles {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		filename := naming.TitleSlug(title, naming.TitleListSlugLen) + ".pdf"
		destPath := filepath.Join(cfg.OutDir, filename)

		if _, err := os.Stat(destPath); err == nil {
			fmt.Fprintf(w, "[%2d/%d] skipped: %s (already exists)\n", i+1, len(titles), filename)
			result.Skipped++
			continue
		}

		fmt.Fprintf(w, "[%2d/%d] searching: %s\n", i+1, len(titles), title)
		paper, err := searcher.SearchTitle(ctx, title)
		if err != nil {
			return result, err
		}
		if paper == nil {
			fmt.Fprintf(w, "        not found on Semantic Scholar\n")
			result.NotFound++
			record(rec, types.CitingPaper{Title: title}, filename, "", StatusNotFound, w)
			continue
		}
		fmt.Fprintf(w, "        found: %s\n", paper.Title)

		source, err := FetchPaper(ctx, client, *paper, destPath, cfg)
		if err != nil {
			fmt.Fprintf(w, "        no open access\n")
			result.NoAccess++
			record(rec, *paper, filename, "", StatusNoAccess, w)
		} else {
			fmt.Fprintf(w, "        downloaded (%s): %s\n", source, filename)
			result.Downloaded++
			record(rec, *paper, filename, source, StatusDownloaded, w)
		}

		if cfg.Delay > 0 && i < len(titles)-1 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(cfg.Delay):
			}
		}
	}

	fmt.Fprintf(w, "\nFetch summary: %d downloaded, %d without open access, %d not found, %d skipped (total: %d)\n",
		result.Downloaded, result.NoAccess, result.NotFound, result.Skipped, result.Total())
	return result, nil
}

func record(rec Recorder, paper types.CitingPaper, filename, source, status string, w io.Writer) {
	if rec == nil {
		return
	}
	if err := rec.Record(paper, filename, source, status); err != nil {
		fmt.Fprintf(w, "  warning: catalog record failed: %v\n", err)
	}
}
